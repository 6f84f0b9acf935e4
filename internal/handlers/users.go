package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
	"github.com/sbilibin2017/gw-bank-cards/internal/services"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// UserManager defines the user administration operations.
type UserManager interface {
	List(ctx context.Context, page models.PageRequest) (*models.Page[models.UserDB], error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	Create(ctx context.Context, in services.UserInput) (*models.UserDB, error)
	Update(ctx context.Context, userID uuid.UUID, in services.UserInput) (*models.UserDB, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserResponse is the public view of a user
// swagger:model UserResponse
type UserResponse struct {
	ID         uuid.UUID `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Surname    string    `json:"surname" example:"Ivanov"`
	Name       string    `json:"name" example:"Ivan"`
	Patronymic string    `json:"patronymic" example:"Ivanovich"`
	BirthYear  int       `json:"birthYear" example:"1990"`
	Username   string    `json:"username" example:"john_doe"`
	Roles      []string  `json:"roles" example:"USER"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserPageResponse is one page of users
// swagger:model UserPageResponse
type UserPageResponse struct {
	Content       []UserResponse `json:"content"`
	Page          int            `json:"page" example:"0"`
	Size          int            `json:"size" example:"10"`
	TotalElements int            `json:"totalElements" example:"1"`
}

func newUserResponse(u *models.UserDB) UserResponse {
	return UserResponse{
		ID:         u.UserID,
		Surname:    u.Surname,
		Name:       u.Name,
		Patronymic: u.Patronymic,
		BirthYear:  u.BirthYear,
		Username:   u.Username,
		Roles:      roleNames(u.Roles),
		CreatedAt:  u.CreatedAt,
	}
}

func newUserPageResponse(p *models.Page[models.UserDB]) UserPageResponse {
	content := make([]UserResponse, 0, len(p.Items))
	for i := range p.Items {
		content = append(content, newUserResponse(&p.Items[i]))
	}
	return UserPageResponse{Content: content, Page: p.Page, Size: p.Size, TotalElements: p.Total}
}

// NewListUsersHandler returns a handler listing users.
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.UserPageResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		users, err := svc.List(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserPageResponse(users))
	}
}

// NewGetUserHandler returns a handler fetching one user.
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} handlers.UserResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id} [get]
// @Security BearerAuth
func NewGetUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewCreateUserHandler returns a handler creating a USER account.
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.RegisterRequest true "User"
// @Success 201 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Router /users [post]
// @Security BearerAuth
func NewCreateUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}

		user, err := svc.Create(r.Context(), req.input())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newUserResponse(user))
	}
}

// NewUpdateUserHandler returns a handler replacing a user's editable fields.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body handlers.RegisterRequest true "User"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Router /users/{id} [put]
// @Security BearerAuth
func NewUpdateUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}

		user, err := svc.Update(r.Context(), id, req.input())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewDeleteUserHandler returns a handler deleting a user with their cards.
// @Summary Delete user
// @Tags users
// @Param id path string true "User id"
// @Success 204
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id} [delete]
// @Security BearerAuth
func NewDeleteUserHandler(svc UserManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
