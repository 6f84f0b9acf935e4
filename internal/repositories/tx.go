package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
)

// TxManager runs units of work inside a database transaction.
type TxManager struct {
	db *sqlx.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sqlx.DB) *TxManager {
	return &TxManager{db: db}
}

// Do begins a transaction, stores it in the context passed to fn and commits
// when fn returns nil. Any error or panic rolls the transaction back.
// A context that already carries a transaction joins it.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if GetTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Log.Errorw("failed to begin transaction", "error", err)
		return err
	}

	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	if err := fn(setTxToContext(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Log.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Log.Errorw("failed to commit transaction", "error", err)
		return err
	}
	return nil
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

// executor returns the transaction carried by ctx, or db when there is none.
func executor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// inTx runs fn on the transaction carried by ctx, or on a new one committed
// when fn succeeds.
func inTx(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx, fn func(ext sqlx.ExtContext) error) error {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return fn(tx)
		}
	}
	return NewTxManager(db).Do(ctx, func(ctx context.Context) error {
		return fn(GetTxFromContext(ctx))
	})
}

// logQuery logs a query in single-line form with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
