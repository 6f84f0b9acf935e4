package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// moneyPlaces is the number of fractional digits kept for amounts.
const moneyPlaces = 2

// pageFromQuery reads the page and size query parameters.
func pageFromQuery(r *http.Request) (models.PageRequest, error) {
	var page models.PageRequest
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, fmt.Errorf("invalid page %q", v)
		}
		page.Page = n
	}
	if v := q.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > models.MaxPageSize {
			return page, fmt.Errorf("size must be between 1 and %d", models.MaxPageSize)
		}
		page.Size = n
	}
	return page.Normalize(), nil
}

// uuidParam parses the chi URL parameter name.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(name, chi.URLParam(r, name))
}

// uuidQuery parses the query parameter name.
func uuidQuery(r *http.Request, name string) (uuid.UUID, error) {
	return parseUUID(name, r.URL.Query().Get(name))
}

func parseUUID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, value)
	}
	return id, nil
}

// validMoney reports whether amount has at most two fractional digits.
func validMoney(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(moneyPlaces))
}
