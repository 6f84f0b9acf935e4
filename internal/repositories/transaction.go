package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

const transactionColumns = `t.transaction_id, t.from_card_id, t.to_card_id, t.amount, t.status, t.created_at`

type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetByID returns the transaction or nil when there is none.
func (r *TransactionReadRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, transactionID)

	logQuery(query, []any{transactionID}, txn.Status, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// List returns one page of transactions, newest first, and the total count.
func (r *TransactionReadRepository) List(ctx context.Context, page models.PageRequest) ([]models.TransactionDB, int, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t
		ORDER BY t.created_at DESC, t.transaction_id LIMIT $1 OFFSET $2`

	return r.page(ctx, query, `SELECT COUNT(*) FROM transactions`, nil, page)
}

// ListByUser returns transactions whose source or destination card belongs to userID.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]models.TransactionDB, int, error) {
	const where = ` FROM transactions t
		WHERE EXISTS (
			SELECT 1 FROM cards c
			WHERE c.owner_id = $1 AND c.card_id IN (t.from_card_id, t.to_card_id)
		)`
	query := `SELECT ` + transactionColumns + where + ` ORDER BY t.created_at DESC, t.transaction_id LIMIT $2 OFFSET $3`

	return r.page(ctx, query, `SELECT COUNT(*)`+where, []any{userID}, page)
}

// ListByCard returns transactions where cardID is the source or destination.
func (r *TransactionReadRepository) ListByCard(ctx context.Context, cardID uuid.UUID, page models.PageRequest) ([]models.TransactionDB, int, error) {
	const where = ` FROM transactions t WHERE t.from_card_id = $1 OR t.to_card_id = $1`
	query := `SELECT ` + transactionColumns + where + ` ORDER BY t.created_at DESC, t.transaction_id LIMIT $2 OFFSET $3`

	return r.page(ctx, query, `SELECT COUNT(*)`+where, []any{cardID}, page)
}

func (r *TransactionReadRepository) page(ctx context.Context, query, countQuery string, args []any, page models.PageRequest) ([]models.TransactionDB, int, error) {
	selectArgs := append(append([]any{}, args...), page.Size, page.Offset())

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, selectArgs...)

	logQuery(query, selectArgs, len(txns), err)

	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.db, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts the transaction or updates its status. The creation time is never changed.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn *models.TransactionDB) error {
	query := `
		INSERT INTO transactions (transaction_id, from_card_id, to_card_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_id) DO UPDATE
		SET status = EXCLUDED.status
	`

	args := []any{txn.TransactionID, txn.FromCardID, txn.ToCardID, txn.Amount, txn.Status, txn.CreatedAt}
	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)

	logQuery(query, args, txn.Status, err)

	return err
}

// Delete removes the transaction record.
func (r *TransactionWriteRepository) Delete(ctx context.Context, transactionID uuid.UUID) error {
	const query = `DELETE FROM transactions WHERE transaction_id = $1`

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, transactionID)

	logQuery(query, []any{transactionID}, nil, err)

	return err
}
