package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

type issuerFunc func(ctx context.Context) (string, error)

func (f issuerFunc) Generate(ctx context.Context) (string, error) { return f(ctx) }

func fixedIssuer(number string) issuerFunc {
	return func(context.Context) (string, error) { return number, nil }
}

func newTestCardService(store *memStore, issuer CardNumberIssuer) *CardService {
	return NewCardService(store, store, store, memUsers{store}, issuer)
}

func TestCardService_Create(t *testing.T) {
	genErr := errors.New("boom")

	tests := []struct {
		name    string
		owner   func(s *memStore) uuid.UUID
		expiry  time.Time
		issuer  issuerFunc
		wantErr error
	}{
		{
			name:   "issues active card with zero balance",
			owner:  func(s *memStore) uuid.UUID { return s.addUser("U").UserID },
			expiry: nextYear(),
			issuer: fixedIssuer("4000 1234 5678 9010"),
		},
		{
			name:    "owner does not exist",
			owner:   func(*memStore) uuid.UUID { return uuid.New() },
			expiry:  nextYear(),
			issuer:  fixedIssuer("4000 1234 5678 9010"),
			wantErr: ErrUserNotFound,
		},
		{
			name:    "expiry in the past",
			owner:   func(s *memStore) uuid.UUID { return s.addUser("U").UserID },
			expiry:  time.Now().AddDate(0, 0, -1),
			issuer:  fixedIssuer("4000 1234 5678 9010"),
			wantErr: ErrValidation,
		},
		{
			name:    "number generation fails",
			owner:   func(s *memStore) uuid.UUID { return s.addUser("U").UserID },
			expiry:  nextYear(),
			issuer:  func(context.Context) (string, error) { return "", ErrCardNumberGeneration },
			wantErr: ErrCardNumberGeneration,
		},
		{
			name:    "issuer error is returned",
			owner:   func(s *memStore) uuid.UUID { return s.addUser("U").UserID },
			expiry:  nextYear(),
			issuer:  func(context.Context) (string, error) { return "", genErr },
			wantErr: genErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			ownerID := tt.owner(store)
			svc := newTestCardService(store, tt.issuer)

			card, err := svc.Create(context.Background(), ownerID, tt.expiry)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, card)
				assert.Empty(t, store.cards)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.CardActive, card.Status)
			assert.True(t, card.Balance.IsZero())
			assert.Equal(t, ownerID, card.OwnerID)
			assert.Equal(t, "**** **** **** 9010", card.MaskedNumber())
			assert.Contains(t, store.cards, card.CardID)
		})
	}
}

func TestCardService_GetByID(t *testing.T) {
	store := newMemStore()
	u := store.addUser("U")
	expired := store.addCard(u, "10.00", time.Now().AddDate(0, 0, -2), models.CardActive)
	svc := newTestCardService(store, nil)

	card, err := svc.GetByID(context.Background(), expired.CardID)
	require.NoError(t, err)
	assert.Equal(t, models.CardExpired, card.Status)
	assert.Equal(t, models.CardActive, store.cards[expired.CardID].Status)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_ListByOwner(t *testing.T) {
	store := newMemStore()
	u := store.addUser("U")
	v := store.addUser("V")
	store.addCard(u, "1.00", nextYear(), models.CardActive)
	store.addCard(u, "2.00", nextYear(), models.CardActive)
	store.addCard(v, "3.00", nextYear(), models.CardActive)
	svc := newTestCardService(store, nil)

	page, err := svc.ListByOwner(context.Background(), u.UserID, models.PageRequest{Size: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Size)

	all, err := svc.List(context.Background(), models.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, models.DefaultPageSize, all.Size)

	_, err = svc.ListByOwner(context.Background(), uuid.New(), models.PageRequest{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCardService_Block(t *testing.T) {
	store := newMemStore()
	u := store.addUser("U")
	c := store.addCard(u, "10.00", nextYear(), models.CardActive)
	svc := newTestCardService(store, nil)

	card, err := svc.Block(context.Background(), c.CardID)
	require.NoError(t, err)
	assert.Equal(t, models.CardBlocked, card.Status)
	assert.Equal(t, models.CardBlocked, store.cards[c.CardID].Status)

	_, err = svc.Block(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCardService_TopUp(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		username string
		missing  bool
		wantErr  error
		want     string
	}{
		{name: "owner tops up", amount: "25.50", username: "U", want: "35.50"},
		{name: "other user", amount: "25.50", username: "V", wantErr: ErrForbidden, want: "10.00"},
		{name: "zero amount", amount: "0", username: "U", wantErr: ErrInvalidAmount, want: "10.00"},
		{name: "card missing", amount: "1", username: "U", missing: true, wantErr: ErrCardNotFound, want: "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			u := store.addUser("U")
			c := store.addCard(u, "10.00", nextYear(), models.CardActive)
			svc := newTestCardService(store, nil)

			id := c.CardID
			if tt.missing {
				id = uuid.New()
			}
			_, err := svc.TopUp(context.Background(), id, dec(tt.amount), tt.username)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, dec(tt.want).Equal(store.balance(c.CardID)))
		})
	}
}

func TestCardService_Delete(t *testing.T) {
	store := newMemStore()
	u := store.addUser("U")
	c := store.addCard(u, "10.00", nextYear(), models.CardActive)
	svc := newTestCardService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), c.CardID))
	assert.NotContains(t, store.cards, c.CardID)

	assert.ErrorIs(t, svc.Delete(context.Background(), c.CardID), ErrCardNotFound)
}
