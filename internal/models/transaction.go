package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus is the outcome of a transfer attempt.
type TransactionStatus string

// Transaction statuses
const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCanceled  TransactionStatus = "CANCELED"
)

// TransactionDB represents one attempted transfer between two cards.
type TransactionDB struct {
	TransactionID uuid.UUID         `json:"id" db:"transaction_id"`
	FromCardID    uuid.UUID         `json:"from_card_id" db:"from_card_id"`
	ToCardID      uuid.UUID         `json:"to_card_id" db:"to_card_id"`
	Amount        decimal.Decimal   `json:"amount" db:"amount"`
	Status        TransactionStatus `json:"status" db:"status"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"` // Set once, never updated
}

// NewTransaction returns a PENDING transaction stamped with now.
func NewTransaction(fromCardID, toCardID uuid.UUID, amount decimal.Decimal, now time.Time) *TransactionDB {
	return &TransactionDB{
		TransactionID: uuid.New(),
		FromCardID:    fromCardID,
		ToCardID:      toCardID,
		Amount:        amount,
		Status:        TransactionPending,
		CreatedAt:     now,
	}
}

// TransactionEvent is the message published for every recorded transfer attempt.
type TransactionEvent struct {
	TransactionID string `json:"transaction_id"` // Transaction identifier
	Timestamp     int64  `json:"timestamp"`      // Unix seconds of creation
	FromCardID    string `json:"from_card_id"`
	ToCardID      string `json:"to_card_id"`
	Amount        string `json:"amount"`    // Decimal string
	Status        string `json:"status"`    // COMPLETED or CANCELED
	Initiator     string `json:"initiator"` // Username of the principal
}
