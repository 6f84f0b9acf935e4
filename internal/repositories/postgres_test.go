package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// --- Setup Postgres ---
func setupPostgres(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	logger.Initialize("debug")
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "secret", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:secret@%s:%s/testdb?sslmode=disable", host, port.Port())
	db, err := sqlx.Connect("pgx", dsn)
	require.NoError(t, err)

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	require.NoError(t, Migrate(ctx, db))

	return db, func() {
		db.Close()
		container.Terminate(ctx)
	}
}

// --- Helpers ---
func insertUser(t *testing.T, db *sqlx.DB, username string, roles ...models.RoleType) *models.UserDB {
	t.Helper()
	user := &models.UserDB{
		UserID:       uuid.New(),
		Surname:      "Ivanov",
		Name:         "Ivan",
		BirthYear:    1990,
		Username:     username,
		PasswordHash: "hash",
		Roles:        roles,
	}
	require.NoError(t, NewUserWriteRepository(db, nil).Save(context.Background(), user))
	return user
}

func insertCard(t *testing.T, db *sqlx.DB, owner *models.UserDB, number, balance string, expiry time.Time, status models.CardStatus) *models.CardDB {
	t.Helper()
	card := models.NewCard(number, expiry, owner.UserID)
	card.Status = status
	card.Balance = decimal.RequireFromString(balance)
	require.NoError(t, NewCardWriteRepository(db, nil).Save(context.Background(), card))
	return card
}
