package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of a card.
type CardStatus string

// Card statuses
const (
	CardActive  CardStatus = "ACTIVE"
	CardBlocked CardStatus = "BLOCKED"
	CardExpired CardStatus = "EXPIRED"
)

// CardNumberLength is the number of raw digits in a card number.
const CardNumberLength = 16

// CardDB represents a card row in the database.
// The owner is referenced by id; OwnerUsername is filled by reads joining users.
type CardDB struct {
	CardID        uuid.UUID       `json:"id" db:"card_id"`
	Number        string          `json:"-" db:"card_number"` // Display form, "XXXX XXXX XXXX XXXX"
	ExpiryDate    time.Time       `json:"expiry_date" db:"expiry_date"`
	Status        CardStatus      `json:"status" db:"status"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	OwnerID       uuid.UUID       `json:"owner_id" db:"owner_id"`
	OwnerUsername string          `json:"-" db:"owner_username"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// NewCard returns an ACTIVE card with zero balance.
func NewCard(number string, expiry time.Time, ownerID uuid.UUID) *CardDB {
	return &CardDB{
		CardID:     uuid.New(),
		Number:     number,
		ExpiryDate: expiry,
		Status:     CardActive,
		Balance:    decimal.Zero,
		OwnerID:    ownerID,
	}
}

// IsActive reports whether the card is ACTIVE and its expiry date is strictly after today.
func (c *CardDB) IsActive(now time.Time) bool {
	return c.Status == CardActive && dateOf(c.ExpiryDate).After(dateOf(now))
}

// DeriveStatus corrects an ACTIVE card whose expiry date has passed to EXPIRED.
// Only the in-memory value changes; BLOCKED and EXPIRED cards are left alone.
func (c *CardDB) DeriveStatus(now time.Time) *CardDB {
	if c.Status == CardActive && dateOf(c.ExpiryDate).Before(dateOf(now)) {
		c.Status = CardExpired
	}
	return c
}

// MaskedNumber returns "**** **** **** " followed by the last four digits.
func (c *CardDB) MaskedNumber() string {
	return MaskCardNumber(c.Number)
}

// MaskCardNumber masks all but the last four digits of number.
func MaskCardNumber(number string) string {
	raw := RawCardNumber(number)
	if len(raw) < 4 {
		return "**** **** **** " + raw
	}
	return "**** **** **** " + raw[len(raw)-4:]
}

// RawCardNumber strips the group separators from a display card number.
func RawCardNumber(number string) string {
	return strings.ReplaceAll(number, " ", "")
}

// FormatCardNumber splits raw digits into space separated groups of four.
func FormatCardNumber(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
