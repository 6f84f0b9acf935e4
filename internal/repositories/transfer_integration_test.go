package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"
)

func TestTransferAgainstPostgres(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	cards := NewCardWriteRepository(db, GetTxFromContext)
	txns := NewTransactionWriteRepository(db, GetTxFromContext)
	svc := services.NewTransferService(NewTxManager(db), cards, txns, nil)

	u := insertUser(t, db, "U", models.RoleUser)
	a := insertCard(t, db, u, "4000 0000 0000 0001", "100.00", nextYear(), models.CardActive)
	b := insertCard(t, db, u, "4000 0000 0000 0002", "50.00", nextYear(), models.CardActive)

	balance := func(t *testing.T, card *models.CardDB) decimal.Decimal {
		got, err := NewCardReadRepository(db).GetByID(ctx, card.CardID)
		require.NoError(t, err)
		return got.Balance
	}

	t.Run("completed transfer", func(t *testing.T) {
		txn, err := svc.Transfer(ctx, a.CardID, b.CardID, decimal.RequireFromString("30.00"), "U")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionCompleted, txn.Status)

		assert.True(t, decimal.RequireFromString("70").Equal(balance(t, a)))
		assert.True(t, decimal.RequireFromString("80").Equal(balance(t, b)))

		stored, err := NewTransactionReadRepository(db).GetByID(ctx, txn.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionCompleted, stored.Status)
	})

	t.Run("concurrent transfers in both directions", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := svc.Transfer(ctx, a.CardID, b.CardID, decimal.RequireFromString("1.00"), "U")
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := svc.Transfer(ctx, b.CardID, a.CardID, decimal.RequireFromString("2.00"), "U")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.True(t, decimal.RequireFromString("80").Equal(balance(t, a)))
		assert.True(t, decimal.RequireFromString("70").Equal(balance(t, b)))
	})

	t.Run("rejected transfer writes nothing", func(t *testing.T) {
		_, err := svc.Transfer(ctx, a.CardID, b.CardID, decimal.RequireFromString("1000.00"), "U")
		assert.ErrorIs(t, err, services.ErrInsufficientFunds)

		_, total, err := NewTransactionReadRepository(db).List(ctx, models.PageRequest{Size: 1})
		require.NoError(t, err)
		assert.Equal(t, 21, total)
	})
}
