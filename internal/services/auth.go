package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// UserReader defines read-only operations for users. Missing users are nil, nil.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	List(ctx context.Context, page models.PageRequest) ([]models.UserDB, int, error)
	ExistsWithRole(ctx context.Context, role models.RoleType) (bool, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, username string, roles models.Roles) (string, error)
}

// AuthResult is returned by successful register and login calls.
type AuthResult struct {
	Token    string
	Username string
	Roles    models.Roles
}

// AuthService handles registration, login and password changes.
type AuthService struct {
	reader UserReader
	writer UserWriter
	jwt    JWTGenerator
	now    func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt JWTGenerator) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
		now:    time.Now,
	}
}

// Register creates a USER account and returns a token for it.
func (svc *AuthService) Register(ctx context.Context, in UserInput) (*AuthResult, error) {
	if err := in.Validate(svc.now()); err != nil {
		return nil, err
	}

	user, err := svc.reader.GetByUsername(ctx, in.Username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", in.Username)
		return nil, ErrUserAlreadyExists
	}

	user, err = newUser(in, models.Roles{models.RoleUser})
	if err != nil {
		return nil, err
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return svc.issue(ctx, user)
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	return svc.issue(ctx, user)
}

// ChangePassword replaces the password of username.
func (svc *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if n := len(newPassword); n < 1 || n > 100 {
		return validationError("password length must be between 1 and 100")
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := svc.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save password", "username", username, "err", err)
		return err
	}
	return nil
}

// EnsureAdmin creates an ADMIN account when none exists yet.
func (svc *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := svc.reader.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil {
		logger.Log.Errorw("failed to look up administrators", "err", err)
		return err
	}
	if exists {
		return nil
	}

	admin, err := newUser(UserInput{
		Surname:   username,
		Name:      username,
		BirthYear: svc.now().Year(),
		Username:  username,
		Password:  password,
	}, models.Roles{models.RoleAdmin})
	if err != nil {
		return err
	}

	if err := svc.writer.Save(ctx, admin); err != nil {
		logger.Log.Errorw("failed to save administrator", "username", username, "err", err)
		return err
	}

	logger.Log.Infow("default administrator created", "username", username)
	return nil
}

func (svc *AuthService) issue(ctx context.Context, user *models.UserDB) (*AuthResult, error) {
	token, err := svc.jwt.Generate(ctx, user.Username, user.Roles)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return nil, err
	}

	return &AuthResult{
		Token:    token,
		Username: user.Username,
		Roles:    user.Roles,
	}, nil
}
