package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

//go:generate mockgen -source=cards.go -destination=cards_mock.go -package=handlers

// dateLayout is the wire format of expiry dates.
const dateLayout = "2006-01-02"

var phonePattern = regexp.MustCompile(`^8-\d{3}-\d{3}-\d{2}-\d{2}$`)

// CardManager defines the card operations used by the card handlers.
type CardManager interface {
	List(ctx context.Context, page models.PageRequest) (*models.Page[models.CardDB], error)
	GetByID(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page models.PageRequest) (*models.Page[models.CardDB], error)
	Create(ctx context.Context, ownerID uuid.UUID, expiryDate time.Time) (*models.CardDB, error)
	Block(ctx context.Context, cardID uuid.UUID) (*models.CardDB, error)
	TopUp(ctx context.Context, cardID uuid.UUID, amount decimal.Decimal, username string) (*models.CardDB, error)
	Delete(ctx context.Context, cardID uuid.UUID) error
}

// CardResponse is the public view of a card; the number is always masked
// swagger:model CardResponse
type CardResponse struct {
	ID         uuid.UUID `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Number     string    `json:"number" example:"**** **** **** 3456"`
	OwnerID    uuid.UUID `json:"ownerId" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	Owner      string    `json:"owner" example:"john_doe"`
	ExpiryDate string    `json:"expiryDate" example:"2030-12-31"`
	Status     string    `json:"status" example:"ACTIVE"`
	Balance    string    `json:"balance" example:"100.00"`
}

// CardPageResponse is one page of cards
// swagger:model CardPageResponse
type CardPageResponse struct {
	Content       []CardResponse `json:"content"`
	Page          int            `json:"page" example:"0"`
	Size          int            `json:"size" example:"10"`
	TotalElements int            `json:"totalElements" example:"1"`
}

// CreateCardRequest is the JSON body for issuing a card
// swagger:model CreateCardRequest
type CreateCardRequest struct {
	// required: true
	OwnerID uuid.UUID `json:"ownerId" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	// Expiry date, must be in the future
	// required: true
	ExpiryDate string `json:"expiryDate" example:"2030-12-31"`
}

// TopUpRequest is the JSON body for topping up a card
// swagger:model TopUpRequest
type TopUpRequest struct {
	// Amount, at least 0.01
	// required: true
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"100.00"`
	// Phone number in the form 8-XXX-XXX-XX-XX
	// required: true
	PhoneNumber string `json:"phoneNumber" example:"8-912-345-67-89"`
}

func newCardResponse(c *models.CardDB) CardResponse {
	return CardResponse{
		ID:         c.CardID,
		Number:     c.MaskedNumber(),
		OwnerID:    c.OwnerID,
		Owner:      c.OwnerUsername,
		ExpiryDate: c.ExpiryDate.Format(dateLayout),
		Status:     string(c.Status),
		Balance:    c.Balance.StringFixed(moneyPlaces),
	}
}

func newCardPageResponse(p *models.Page[models.CardDB]) CardPageResponse {
	content := make([]CardResponse, 0, len(p.Items))
	for i := range p.Items {
		content = append(content, newCardResponse(&p.Items[i]))
	}
	return CardPageResponse{Content: content, Page: p.Page, Size: p.Size, TotalElements: p.Total}
}

// NewListCardsHandler returns a handler listing all cards.
// @Summary List cards
// @Tags cards
// @Produce json
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.CardPageResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Router /cards [get]
// @Security BearerAuth
func NewListCardsHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		cards, err := svc.List(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCardPageResponse(cards))
	}
}

// NewListCardsByOwnerHandler returns a handler listing the cards of one user.
// @Summary List cards of a user
// @Tags cards
// @Produce json
// @Param ownerId query string true "Owner id"
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.CardPageResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cards/user [get]
// @Security BearerAuth
func NewListCardsByOwnerHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := uuidQuery(r, "ownerId")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		cards, err := svc.ListByOwner(r.Context(), ownerID, page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCardPageResponse(cards))
	}
}

// NewGetCardHandler returns a handler fetching one card for its owner or an administrator.
// @Summary Get card
// @Tags cards
// @Produce json
// @Param id path string true "Card id"
// @Success 200 {object} handlers.CardResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cards/{id} [get]
// @Security BearerAuth
func NewGetCardHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := principal(w, r)
		if !ok {
			return
		}

		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		card, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		if card.OwnerUsername != claims.Username && !claims.HasRole(models.RoleAdmin) {
			logger.Log.Warnw("card access denied", "cardID", id, "username", claims.Username)
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Access denied"})
			return
		}

		writeJSON(w, http.StatusOK, newCardResponse(card))
	}
}

// NewCreateCardHandler returns a handler issuing a new card.
// @Summary Issue card
// @Tags cards
// @Accept json
// @Produce json
// @Param request body handlers.CreateCardRequest true "Card"
// @Success 201 {object} handlers.CardResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse "Owner not found"
// @Failure 500 {object} handlers.ErrorResponse "Card number generation failed"
// @Router /cards [post]
// @Security BearerAuth
func NewCreateCardHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}

		expiry, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			writeBadRequest(w, "expiryDate must be formatted as YYYY-MM-DD")
			return
		}

		card, err := svc.Create(r.Context(), req.OwnerID, expiry)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newCardResponse(card))
	}
}

// NewBlockCardHandler returns a handler blocking a card.
// @Summary Block card
// @Tags cards
// @Produce json
// @Param id path string true "Card id"
// @Success 200 {object} handlers.CardResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cards/block/{id} [patch]
// @Security BearerAuth
func NewBlockCardHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		card, err := svc.Block(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCardResponse(card))
	}
}

// NewTopUpCardHandler returns a handler crediting the caller's card from a phone number.
// @Summary Top up card
// @Tags cards
// @Accept json
// @Produce json
// @Param id path string true "Card id"
// @Param request body handlers.TopUpRequest true "Top up"
// @Success 200 {object} handlers.CardResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cards/{id}/top-up [patch]
// @Security BearerAuth
func NewTopUpCardHandler(svc CardManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := principal(w, r)
		if !ok {
			return
		}

		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		var req TopUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if !validMoney(req.Amount) {
			writeBadRequest(w, "amount must have at most two decimal places")
			return
		}
		if !phonePattern.MatchString(req.PhoneNumber) {
			writeBadRequest(w, "phoneNumber must match 8-XXX-XXX-XX-XX")
			return
		}

		card, err := svc.TopUp(r.Context(), id, req.Amount, claims.Username)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newCardResponse(card))
	}
}

// NewDeleteCardHandler returns a handler deleting a card.
// @Summary Delete card
// @Tags cards
// @Param id path string true "Card id"
// @Success 204
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cards/{id} [delete]
// @Security BearerAuth
func NewDeleteCardHandler(svc CardManager) http.HandlerFunc {
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
