package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// memStore is an in-memory card, transaction and user store whose unit of
// work stages writes and applies them only on commit. Units of work are
// serialized, which stands in for row locks.
type memStore struct {
	mu    sync.Mutex
	txMu  sync.Mutex
	cards map[uuid.UUID]models.CardDB
	txns  map[uuid.UUID]models.TransactionDB
	users map[uuid.UUID]models.UserDB

	failCardSave func(card *models.CardDB) error
	failTxnSave  func(txn *models.TransactionDB) error
}

type stagedKey struct{}

type staged struct {
	cards map[uuid.UUID]models.CardDB
	txns  map[uuid.UUID]models.TransactionDB
}

func newMemStore() *memStore {
	return &memStore{
		cards: map[uuid.UUID]models.CardDB{},
		txns:  map[uuid.UUID]models.TransactionDB{},
		users: map[uuid.UUID]models.UserDB{},
	}
}

func (s *memStore) addUser(username string) models.UserDB {
	u := models.UserDB{UserID: uuid.New(), Username: username, Roles: models.Roles{models.RoleUser}}
	s.users[u.UserID] = u
	return u
}

func (s *memStore) addCard(owner models.UserDB, balance string, expiry time.Time, status models.CardStatus) models.CardDB {
	c := models.CardDB{
		CardID:        uuid.New(),
		Number:        "1234 5678 9012 " + uuid.NewString()[:4],
		ExpiryDate:    expiry,
		Status:        status,
		Balance:       decimal.RequireFromString(balance),
		OwnerID:       owner.UserID,
		OwnerUsername: owner.Username,
	}
	s.cards[c.CardID] = c
	return c
}

func (s *memStore) balance(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards[id].Balance
}

func (s *memStore) transactions() []models.TransactionDB {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TransactionDB, 0, len(s.txns))
	for _, t := range s.txns {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Do implements UnitOfWork.
func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	st := &staged{cards: map[uuid.UUID]models.CardDB{}, txns: map[uuid.UUID]models.TransactionDB{}}
	if err := fn(context.WithValue(ctx, stagedKey{}, st)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range st.cards {
		s.cards[id] = c
	}
	for id, t := range st.txns {
		s.txns[id] = t
	}
	return nil
}

func (s *memStore) loadCard(ctx context.Context, id uuid.UUID) *models.CardDB {
	if st, ok := ctx.Value(stagedKey{}).(*staged); ok {
		if c, ok := st.cards[id]; ok {
			return &c
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	if !ok {
		return nil
	}
	return c.DeriveStatus(time.Now())
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*models.CardDB, error) {
	return s.loadCard(ctx, id), nil
}

func (s *memStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CardDB, error) {
	return s.loadCard(ctx, id), nil
}

func (s *memStore) Save(ctx context.Context, card *models.CardDB) error {
	if s.failCardSave != nil {
		if err := s.failCardSave(card); err != nil {
			return err
		}
	}
	if st, ok := ctx.Value(stagedKey{}).(*staged); ok {
		st.cards[card.CardID] = *card
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.CardID] = *card
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cards, id)
	return nil
}

func (s *memStore) List(_ context.Context, page models.PageRequest) ([]models.CardDB, int, error) {
	return s.page(func(models.CardDB) bool { return true }, page)
}

func (s *memStore) ListByOwner(_ context.Context, ownerID uuid.UUID, page models.PageRequest) ([]models.CardDB, int, error) {
	return s.page(func(c models.CardDB) bool { return c.OwnerID == ownerID }, page)
}

func (s *memStore) page(keep func(models.CardDB) bool, page models.PageRequest) ([]models.CardDB, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.CardDB
	for _, c := range s.cards {
		if keep(c) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Number < all[j].Number })
	from := min(page.Offset(), len(all))
	to := min(from+page.Size, len(all))
	return all[from:to], len(all), nil
}

// memTransactions adapts memStore to TransactionWriter.
type memTransactions struct{ s *memStore }

func (m memTransactions) Save(ctx context.Context, txn *models.TransactionDB) error {
	if m.s.failTxnSave != nil {
		if err := m.s.failTxnSave(txn); err != nil {
			return err
		}
	}
	if st, ok := ctx.Value(stagedKey{}).(*staged); ok {
		st.txns[txn.TransactionID] = *txn
		return nil
	}
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.txns[txn.TransactionID] = *txn
	return nil
}

// memUsers adapts memStore to UserGetter.
type memUsers struct{ s *memStore }

func (m memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.UserDB, error) {
	u, ok := m.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
