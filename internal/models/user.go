package models

import (
	"time"

	"github.com/google/uuid"
)

// Birth year bounds for users; the upper bound is the current year.
const MinBirthYear = 1925

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Surname      string    `json:"surname" db:"surname"`       // Family name
	Name         string    `json:"name" db:"name"`             // Given name
	Patronymic   string    `json:"patronymic" db:"patronymic"` // Optional, empty when absent
	BirthYear    int       `json:"birth_year" db:"birth_year"` // Year of birth
	Username     string    `json:"username" db:"username"`     // Unique login
	PasswordHash string    `json:"-" db:"password_hash"`       // bcrypt hash
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
	Roles        Roles     `json:"roles" db:"-"`               // Loaded from user_roles
}

// IsAdmin reports whether the user has the ADMIN role.
func (u *UserDB) IsAdmin() bool {
	return u.Roles.Has(RoleAdmin)
}

// ValidBirthYear reports whether year lies in [MinBirthYear, current year].
func ValidBirthYear(year int, now time.Time) bool {
	return year >= MinBirthYear && year <= now.Year()
}
