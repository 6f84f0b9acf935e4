package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

func TestUserRepositories(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	reader := NewUserReadRepository(db)
	writer := NewUserWriteRepository(db, GetTxFromContext)

	alice := insertUser(t, db, "alice", models.RoleUser, models.RoleAdmin)
	insertUser(t, db, "bob", models.RoleUser)

	t.Run("GetByUsername loads roles", func(t *testing.T) {
		got, err := reader.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice.UserID, got.UserID)
		assert.Equal(t, "hash", got.PasswordHash)
		assert.ElementsMatch(t, models.Roles{models.RoleUser, models.RoleAdmin}, got.Roles)
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("GetByID missing returns nil", func(t *testing.T) {
		got, err := reader.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Save updates fields and roles", func(t *testing.T) {
		got, err := reader.GetByID(ctx, alice.UserID)
		require.NoError(t, err)

		got.Surname = "Petrov"
		got.Roles = models.Roles{models.RoleUser}
		require.NoError(t, writer.Save(ctx, got))

		again, err := reader.GetByID(ctx, alice.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Petrov", again.Surname)
		assert.Equal(t, models.Roles{models.RoleUser}, again.Roles)
		assert.True(t, again.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("ExistsWithRole", func(t *testing.T) {
		exists, err := reader.ExistsWithRole(ctx, models.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, exists)

		insertUser(t, db, "root", models.RoleAdmin)

		exists, err = reader.ExistsWithRole(ctx, models.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("List pages by username", func(t *testing.T) {
		users, total, err := reader.List(ctx, models.PageRequest{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, users, 1)
		assert.Equal(t, "root", users[0].Username)
	})

	t.Run("Duplicate username is rejected", func(t *testing.T) {
		dup := &models.UserDB{UserID: uuid.New(), Surname: "X", Name: "Xx", BirthYear: 2000, Username: "bob", PasswordHash: "h"}
		assert.Error(t, writer.Save(ctx, dup))
	})

	t.Run("Delete cascades to cards", func(t *testing.T) {
		bob, err := reader.GetByUsername(ctx, "bob")
		require.NoError(t, err)
		card := insertCard(t, db, bob, "1111 2222 3333 4444", "5.00", nextYear(), models.CardActive)

		require.NoError(t, writer.Delete(ctx, bob.UserID))

		got, err := reader.GetByID(ctx, bob.UserID)
		assert.NoError(t, err)
		assert.Nil(t, got)

		c, err := NewCardReadRepository(db).GetByID(ctx, card.CardID)
		assert.NoError(t, err)
		assert.Nil(t, c)
	})
}
