package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

const userColumns = `
	u.user_id, u.surname, u.name, u.patronymic, u.birth_year, u.username,
	u.password_hash, u.created_at, u.updated_at,
	COALESCE((SELECT string_agg(r.role, ',') FROM user_roles r WHERE r.user_id = u.user_id), '') AS role_list
`

// userRow is a users row with its roles aggregated into a comma separated list.
type userRow struct {
	models.UserDB
	RoleList string `db:"role_list"`
}

func (r userRow) toUser() models.UserDB {
	user := r.UserDB
	user.Roles = nil
	if r.RoleList != "" {
		parts := strings.Split(r.RoleList, ",")
		sort.Strings(parts)
		for _, p := range parts {
			user.Roles = user.Roles.Add(models.RoleType(p))
		}
	}
	return user
}

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with userID or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.user_id = $1`
	return r.getOne(ctx, query, userID)
}

// GetByUsername returns the user named username or nil when there is none.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.username = $1`
	return r.getOne(ctx, query, username)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, query, arg)

	logQuery(query, []any{arg}, row.Username, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user := row.toUser()
	return &user, nil
}

// List returns one page of users ordered by username and the total count.
func (r *UserReadRepository) List(ctx context.Context, page models.PageRequest) ([]models.UserDB, int, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.username LIMIT $1 OFFSET $2`

	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, query, page.Size, page.Offset())

	logQuery(query, []any{page.Size, page.Offset()}, len(rows), err)

	if err != nil {
		return nil, 0, err
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return nil, 0, err
	}

	users := make([]models.UserDB, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toUser())
	}
	return users, total, nil
}

// ExistsWithRole reports whether any user holds role.
func (r *UserReadRepository) ExistsWithRole(ctx context.Context, role models.RoleType) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_roles WHERE role = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, role)

	logQuery(query, []any{role}, exists, err)

	return exists, err
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts or updates the user and replaces its roles.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (user_id, surname, name, patronymic, birth_year, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET surname = EXCLUDED.surname,
		    name = EXCLUDED.name,
		    patronymic = EXCLUDED.patronymic,
		    birth_year = EXCLUDED.birth_year,
		    username = EXCLUDED.username,
		    password_hash = EXCLUDED.password_hash,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	return inTx(ctx, r.db, r.txGetter, func(ext sqlx.ExtContext) error {
		args := []any{user.UserID, user.Surname, user.Name, user.Patronymic, user.BirthYear, user.Username, user.PasswordHash}
		err := ext.QueryRowxContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt)

		logQuery(query, []any{user.UserID, user.Username}, user.UpdatedAt, err)

		if err != nil {
			return err
		}
		return r.saveRoles(ctx, ext, user)
	})
}

func (r *UserWriteRepository) saveRoles(ctx context.Context, ext sqlx.ExtContext, user *models.UserDB) error {
	const deleteQuery = `DELETE FROM user_roles WHERE user_id = $1`
	_, err := ext.ExecContext(ctx, deleteQuery, user.UserID)

	logQuery(deleteQuery, []any{user.UserID}, nil, err)

	if err != nil {
		return err
	}

	const insertQuery = `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`
	for _, role := range user.Roles {
		_, err := ext.ExecContext(ctx, insertQuery, user.UserID, role)

		logQuery(insertQuery, []any{user.UserID, role}, nil, err)

		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the user; cards and their transactions go with it.
func (r *UserWriteRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	const query = `DELETE FROM users WHERE user_id = $1`

	_, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID)

	logQuery(query, []any{userID}, nil, err)

	return err
}

// count runs a COUNT query and returns its result.
func count(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n, query, args...)

	logQuery(query, args, n, err)

	return n, err
}
