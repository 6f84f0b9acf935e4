package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// UserInput carries the editable user fields.
type UserInput struct {
	Surname    string
	Name       string
	Patronymic string
	BirthYear  int
	Username   string
	Password   string
}

// Validate checks field lengths and the birth year range.
func (in UserInput) Validate(now time.Time) error {
	checks := []struct {
		field    string
		value    string
		min, max int
	}{
		{"surname", in.Surname, 1, 30},
		{"name", in.Name, 2, 15},
		{"patronymic", in.Patronymic, 0, 20},
		{"username", in.Username, 1, 30},
		{"password", in.Password, 1, 100},
	}
	for _, c := range checks {
		if n := utf8.RuneCountInString(c.value); n < c.min || n > c.max {
			return validationError("%s length must be between %d and %d", c.field, c.min, c.max)
		}
	}

	if !models.ValidBirthYear(in.BirthYear, now) {
		return validationError("birth year must be between %d and %d", models.MinBirthYear, now.Year())
	}
	return nil
}

// UserService manages user accounts on behalf of administrators.
type UserService struct {
	reader UserReader
	writer UserWriter
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		now:    time.Now,
	}
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, page models.PageRequest) (*models.Page[models.UserDB], error) {
	page = page.Normalize()
	users, total, err := s.reader.List(ctx, page)
	if err != nil {
		logger.Log.Errorw("failed to list users", "error", err)
		return nil, err
	}
	return &models.Page[models.UserDB]{Items: users, Page: page.Page, Size: page.Size, Total: total}, nil
}

// GetByID returns a user or ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := s.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, userNotFound(userID)
	}
	return user, nil
}

// Create stores a new user with the USER role.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.UserDB, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, in.Username); err != nil {
		return nil, err
	}

	user, err := newUser(in, models.Roles{models.RoleUser})
	if err != nil {
		return nil, err
	}

	if err := s.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "username", in.Username, "error", err)
		return nil, err
	}
	return user, nil
}

// Update replaces the editable fields of a user. Id, creation time and roles are kept.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, in UserInput) (*models.UserDB, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing.Username != in.Username {
		if err := s.ensureUsernameFree(ctx, in.Username); err != nil {
			return nil, err
		}
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	existing.Surname = in.Surname
	existing.Name = in.Name
	existing.Patronymic = in.Patronymic
	existing.BirthYear = in.BirthYear
	existing.Username = in.Username
	existing.PasswordHash = hash

	if err := s.writer.Save(ctx, existing); err != nil {
		logger.Log.Errorw("failed to update user", "userID", userID, "error", err)
		return nil, err
	}
	return existing, nil
}

// Delete removes a user and, through the store, their cards.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.writer.Delete(ctx, userID); err != nil {
		logger.Log.Errorw("failed to delete user", "userID", userID, "error", err)
		return err
	}
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string) error {
	user, err := s.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "username", username, "error", err)
		return err
	}
	if user != nil {
		logger.Log.Warnw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}
	return nil
}

func newUser(in UserInput, roles models.Roles) (*models.UserDB, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return &models.UserDB{
		UserID:       uuid.New(),
		Surname:      in.Surname,
		Name:         in.Name,
		Patronymic:   in.Patronymic,
		BirthYear:    in.BirthYear,
		Username:     in.Username,
		PasswordHash: hash,
		Roles:        roles,
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "error", err)
		return "", err
	}
	return string(hash), nil
}
