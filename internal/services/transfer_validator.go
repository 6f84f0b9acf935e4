package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// ValidateTransfer applies the ownership and status policy to a loaded pair of
// cards. Checks run in a fixed order and the first failure is returned.
func ValidateTransfer(from, to *models.CardDB, amount decimal.Decimal, username string, now time.Time) error {
	if from.OwnerUsername != username {
		return ErrTransferForbidden
	}

	if from.OwnerID != to.OwnerID {
		return ErrCrossUserTransfer
	}

	if !from.IsActive(now) || !to.IsActive(now) {
		return ErrInactiveCard
	}

	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if from.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	if from.CardID == to.CardID {
		return ErrSelfTransfer
	}

	return nil
}
