package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

const cardColumns = `
	c.card_id, c.card_number, c.expiry_date, c.status, c.balance, c.owner_id,
	u.username AS owner_username, c.created_at, c.updated_at
`

const cardFrom = ` FROM cards c JOIN users u ON u.user_id = c.owner_id`

// CardReadRepository reads cards. Every card is returned with its status
// derived from the expiry date.
type CardReadRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCardReadRepository(db *sqlx.DB) *CardReadRepository {
	return &CardReadRepository{db: db, now: time.Now}
}

// GetByID returns the card or nil when there is none.
func (r *CardReadRepository) GetByID(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error) {
	query := `SELECT ` + cardColumns + cardFrom + ` WHERE c.card_id = $1`
	return getCard(ctx, r.db, query, cardID, r.now())
}

// List returns one page of cards and the total count.
func (r *CardReadRepository) List(ctx context.Context, page models.PageRequest) ([]models.CardDB, int, error) {
	query := `SELECT ` + cardColumns + cardFrom + ` ORDER BY c.created_at, c.card_id LIMIT $1 OFFSET $2`

	cards, err := r.selectCards(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM cards`)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListByOwner returns one page of the cards owned by ownerID and their count.
func (r *CardReadRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.CardDB, int, error) {
	query := `SELECT ` + cardColumns + cardFrom + ` WHERE c.owner_id = $1 ORDER BY c.created_at, c.card_id LIMIT $2 OFFSET $3`

	cards, err := r.selectCards(ctx, query, ownerID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM cards WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// ListNumbers returns the number of every stored card in display form.
func (r *CardReadRepository) ListNumbers(ctx context.Context) ([]string, error) {
	const query = `SELECT card_number FROM cards`

	var numbers []string
	err := r.db.SelectContext(ctx, &numbers, query)

	logQuery(query, nil, len(numbers), err)

	return numbers, err
}

func (r *CardReadRepository) selectCards(ctx context.Context, query string, args ...any) ([]models.CardDB, error) {
	var cards []models.CardDB
	err := r.db.SelectContext(ctx, &cards, query, args...)

	logQuery(query, args, len(cards), err)

	if err != nil {
		return nil, err
	}

	now := r.now()
	for i := range cards {
		cards[i].DeriveStatus(now)
	}
	return cards, nil
}

// CardWriteRepository locks and writes cards, joining the transaction carried by the context.
type CardWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
	now      func() time.Time
}

func NewCardWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *CardWriteRepository {
	return &CardWriteRepository{db: db, txGetter: txGetter, now: time.Now}
}

// GetByIDForUpdate loads the card and locks its row until the transaction ends.
// It returns nil when there is no such card.
func (r *CardWriteRepository) GetByIDForUpdate(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error) {
	query := `SELECT ` + cardColumns + cardFrom + ` WHERE c.card_id = $1 FOR UPDATE OF c`
	return getCard(ctx, executor(ctx, r.db, r.txGetter), query, cardID, r.now())
}

// Save inserts the card or updates its status, balance and expiry date.
func (r *CardWriteRepository) Save(ctx context.Context, card *models.CardDB) error {
	query := `
		INSERT INTO cards (card_id, card_number, expiry_date, status, balance, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (card_id) DO UPDATE
		SET status = EXCLUDED.status,
		    balance = EXCLUDED.balance,
		    expiry_date = EXCLUDED.expiry_date,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	args := []any{card.CardID, card.Number, card.ExpiryDate, card.Status, card.Balance, card.OwnerID}
	err := executor(ctx, r.db, r.txGetter).
		QueryRowxContext(ctx, query, args...).
		Scan(&card.CreatedAt, &card.UpdatedAt)

	logQuery(query, []any{card.CardID, card.MaskedNumber(), card.Status, card.Balance}, card.UpdatedAt, err)

	return err
}

// Delete removes the card and its transactions.
func (r *CardWriteRepository) Delete(ctx context.Context, cardID uuid.UUID) error {
	const query = `DELETE FROM cards WHERE card_id = $1`

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, cardID)

	logQuery(query, []any{cardID}, nil, err)

	return err
}

func getCard(ctx context.Context, q sqlx.QueryerContext, query string, cardID uuid.UUID, now time.Time) (*models.CardDB, error) {
	var card models.CardDB
	err := sqlx.GetContext(ctx, q, &card, query, cardID)

	logQuery(query, []any{cardID}, card.MaskedNumber(), err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card.DeriveStatus(now), nil
}
