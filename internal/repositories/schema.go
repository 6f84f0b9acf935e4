package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		surname VARCHAR(30) NOT NULL,
		name VARCHAR(15) NOT NULL,
		patronymic VARCHAR(20) NOT NULL DEFAULT '',
		birth_year INT NOT NULL,
		username VARCHAR(30) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		role VARCHAR(10) NOT NULL,
		PRIMARY KEY (user_id, role)
	);`,
	`CREATE TABLE IF NOT EXISTS cards (
		card_id UUID PRIMARY KEY,
		card_number VARCHAR(19) NOT NULL UNIQUE,
		expiry_date DATE NOT NULL,
		status VARCHAR(10) NOT NULL,
		balance NUMERIC(20,2) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		owner_id UUID NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS cards_owner_id_idx ON cards (owner_id);`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id UUID PRIMARY KEY,
		from_card_id UUID NOT NULL REFERENCES cards(card_id) ON DELETE CASCADE,
		to_card_id UUID NOT NULL REFERENCES cards(card_id) ON DELETE CASCADE,
		amount NUMERIC(20,2) NOT NULL,
		status VARCHAR(10) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS transactions_from_card_idx ON transactions (from_card_id);`,
	`CREATE INDEX IF NOT EXISTS transactions_to_card_idx ON transactions (to_card_id);`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var errs []error
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logQuery(stmt, nil, nil, err)
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Log.Errorw("failed to migrate schema", "error", err)
		return err
	}
	return nil
}
