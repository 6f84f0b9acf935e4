package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=handlers

// Authenticator defines the interface that the auth service must implement.
type Authenticator interface {
	Register(ctx context.Context, in services.UserInput) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
	ChangePassword(ctx context.Context, username, newPassword string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Family name, 1-30 characters
	// required: true
	Surname string `json:"surname" example:"Ivanov"`

	// Given name, 2-15 characters
	// required: true
	Name string `json:"name" example:"Ivan"`

	// Patronymic, up to 20 characters
	Patronymic string `json:"patronymic" example:"Ivanovich"`

	// Year of birth, 1925 to the current year
	// required: true
	BirthYear int `json:"birthYear" example:"1990"`

	// Username, 1-30 characters
	// required: true
	Username string `json:"username" example:"john_doe"`

	// Password, 1-100 characters
	// required: true
	Password string `json:"password" example:"secret123"`
}

func (r RegisterRequest) input() services.UserInput {
	return services.UserInput{
		Surname:    r.Surname,
		Name:       r.Name,
		Patronymic: r.Patronymic,
		BirthYear:  r.BirthYear,
		Username:   r.Username,
		Password:   r.Password,
	}
}

// LoginRequest represents the JSON body for login
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	Username string `json:"username" example:"john_doe"`
	// required: true
	Password string `json:"password" example:"secret123"`
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// required: true
	NewPassword string `json:"newPassword" example:"n3w-secret"`
}

// AuthResponse is returned after successful registration or login
// swagger:model AuthResponse
type AuthResponse struct {
	// JWT token
	Token    string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string   `json:"username" example:"john_doe"`
	Roles    []string `json:"roles" example:"USER"`
}

// MessageResponse carries a confirmation message
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message" example:"Password changed successfully"`
}

func newAuthResponse(res *services.AuthResult) AuthResponse {
	return AuthResponse{
		Token:    res.Token,
		Username: res.Username,
		Roles:    roleNames(res.Roles),
	}
}

func roleNames(roles models.Roles) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return names
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a USER account and returns a token for it. The username must be free.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Router /auth/register [post]
func NewRegisterHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode register request", "error", err)
			writeBadRequest(w, "Invalid request body")
			return
		}

		res, err := svc.Register(r.Context(), req.input())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newAuthResponse(res))
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary Log in
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.LoginRequest true "Credentials"
// @Success 200 {object} handlers.AuthResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /auth/login [post]
func NewLoginHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
			writeBadRequest(w, "Invalid request body")
			return
		}

		res, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newAuthResponse(res))
	}
}

// NewChangePasswordHandler returns an HTTP handler that changes the caller's password.
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ChangePasswordRequest true "New password"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /auth/change-password [post]
// @Security BearerAuth
func NewChangePasswordHandler(svc Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := principal(w, r)
		if !ok {
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}

		if err := svc.ChangePassword(r.Context(), claims.Username, req.NewPassword); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Password changed successfully"})
	}
}
