package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

//go:generate mockgen -source=transactions.go -destination=transactions_mock.go -package=handlers

// Transferer moves money between two cards of the caller.
type Transferer interface {
	Transfer(ctx context.Context, fromCardID, toCardID uuid.UUID, amount decimal.Decimal, username string) (*models.TransactionDB, error)
}

// TransactionManager defines the transaction history operations.
type TransactionManager interface {
	List(ctx context.Context, page models.PageRequest) (*models.Page[models.TransactionDB], error)
	GetByID(ctx context.Context, transactionID uuid.UUID) (*models.TransactionDB, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) (*models.Page[models.TransactionDB], error)
	ListByUsername(ctx context.Context, username string, page models.PageRequest) (*models.Page[models.TransactionDB], error)
	ListByCard(ctx context.Context, cardID uuid.UUID, page models.PageRequest) (*models.Page[models.TransactionDB], error)
	Delete(ctx context.Context, transactionID uuid.UUID) error
}

// TransferRequest is the JSON body of a transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// required: true
	FromCardID uuid.UUID `json:"fromCardId" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	// required: true
	ToCardID uuid.UUID `json:"toCardId" example:"9b2d5c1e-6a3f-4e8b-a1d7-0c4f2e6b8a90"`
	// Amount, at least 0.01
	// required: true
	Amount decimal.Decimal `json:"amount" swaggertype:"number" example:"30.00"`
}

// TransactionResponse is the public view of a transaction
// swagger:model TransactionResponse
type TransactionResponse struct {
	ID         uuid.UUID `json:"id" example:"3fa85f64-5717-4562-b3fc-2c963f66afa6"`
	FromCardID uuid.UUID `json:"fromCardId"`
	ToCardID   uuid.UUID `json:"toCardId"`
	Amount     string    `json:"amount" example:"30.00"`
	Status     string    `json:"status" example:"COMPLETED"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TransactionPageResponse is one page of transactions
// swagger:model TransactionPageResponse
type TransactionPageResponse struct {
	Content       []TransactionResponse `json:"content"`
	Page          int                   `json:"page" example:"0"`
	Size          int                   `json:"size" example:"10"`
	TotalElements int                   `json:"totalElements" example:"1"`
}

func newTransactionResponse(t *models.TransactionDB) TransactionResponse {
	return TransactionResponse{
		ID:         t.TransactionID,
		FromCardID: t.FromCardID,
		ToCardID:   t.ToCardID,
		Amount:     t.Amount.StringFixed(moneyPlaces),
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
	}
}

func newTransactionPageResponse(p *models.Page[models.TransactionDB]) TransactionPageResponse {
	content := make([]TransactionResponse, 0, len(p.Items))
	for i := range p.Items {
		content = append(content, newTransactionResponse(&p.Items[i]))
	}
	return TransactionPageResponse{Content: content, Page: p.Page, Size: p.Size, TotalElements: p.Total}
}

// NewTransferHandler returns a handler moving money between the caller's cards.
// @Summary Transfer between own cards
// @Description Debits the source card and credits the destination card. Both must be active and owned by the caller.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer"
// @Success 201 {object} handlers.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Rejected transfer"
// @Failure 403 {object} handlers.ErrorResponse "Source card belongs to another user"
// @Failure 404 {object} handlers.ErrorResponse "Card not found"
// @Failure 500 {object} handlers.ErrorResponse "Transfer could not be persisted"
// @Router /transactions/transfer [post]
// @Security BearerAuth
func NewTransferHandler(svc Transferer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := principal(w, r)
		if !ok {
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}
		if !validMoney(req.Amount) {
			writeBadRequest(w, "amount must have at most two decimal places")
			return
		}

		txn, err := svc.Transfer(r.Context(), req.FromCardID, req.ToCardID, req.Amount, claims.Username)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, newTransactionResponse(txn))
	}
}

// NewMyTransactionsHandler returns a handler listing the caller's transactions.
// @Summary List own transactions
// @Tags transactions
// @Produce json
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.TransactionPageResponse
// @Router /transactions/my [get]
// @Security BearerAuth
func NewMyTransactionsHandler(svc TransactionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := principal(w, r)
		if !ok {
			return
		}
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		txns, err := svc.ListByUsername(r.Context(), claims.Username, page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionPageResponse(txns))
	}
}

// NewListTransactionsHandler returns a handler listing all transactions.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.TransactionPageResponse
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		txns, err := svc.List(r.Context(), page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionPageResponse(txns))
	}
}

// NewGetTransactionHandler returns a handler fetching one transaction.
// @Summary Get transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction id"
// @Success 200 {object} handlers.TransactionResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc TransactionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		txn, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionResponse(txn))
	}
}

// NewListTransactionsByUserHandler returns a handler listing the transactions of one user.
// @Summary List transactions of a user
// @Tags transactions
// @Produce json
// @Param ownerId query string true "Owner id"
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.TransactionPageResponse
// @Router /transactions/user [get]
// @Security BearerAuth
func NewListTransactionsByUserHandler(svc TransactionManager) http.HandlerFunc {
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

		txns, err := svc.ListByUser(r.Context(), ownerID, page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionPageResponse(txns))
	}
}

// NewListTransactionsByCardHandler returns a handler listing the transactions of one card.
// @Summary List transactions of a card
// @Tags transactions
// @Produce json
// @Param cardId query string true "Card id"
// @Param page query int false "Page number, from 0"
// @Param size query int false "Page size, 1-100"
// @Success 200 {object} handlers.TransactionPageResponse
// @Router /transactions/card [get]
// @Security BearerAuth
func NewListTransactionsByCardHandler(svc TransactionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := uuidQuery(r, "cardId")
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}
		page, err := pageFromQuery(r)
		if err != nil {
			writeBadRequest(w, err.Error())
			return
		}

		txns, err := svc.ListByCard(r.Context(), cardID, page)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newTransactionPageResponse(txns))
	}
}

// NewDeleteTransactionHandler returns a handler deleting a transaction record.
// @Summary Delete transaction
// @Tags transactions
// @Param id path string true "Transaction id"
// @Success 204
// @Failure 404 {object} handlers.ErrorResponse
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionManager) http.HandlerFunc {
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
