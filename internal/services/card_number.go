package services

import (
	"context"
	"crypto/rand"
	"io"
	"strings"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
	"github.com/sbilibin2017/gw-bank-cards/internal/models"
)

// maxCardNumberAttempts bounds the number of draws per Generate call.
const maxCardNumberAttempts = 50

// CardNumberCache is the process-wide registry of issued raw card numbers.
// Reserve must add number only if absent and report whether it did, atomically.
type CardNumberCache interface {
	Reserve(ctx context.Context, number string) (bool, error)
	Add(ctx context.Context, numbers ...string) error
}

// CardNumberLister returns every card number in the card store.
type CardNumberLister interface {
	ListNumbers(ctx context.Context) ([]string, error)
}

// CardNumberGenerator issues unique 16 digit card numbers.
type CardNumberGenerator struct {
	cache       CardNumberCache
	random      io.Reader
	maxAttempts int
}

// NewCardNumberGenerator creates a generator backed by crypto/rand.
func NewCardNumberGenerator(cache CardNumberCache) *CardNumberGenerator {
	return &CardNumberGenerator{
		cache:       cache,
		random:      rand.Reader,
		maxAttempts: maxCardNumberAttempts,
	}
}

// Warm loads every existing card number into the cache.
// It must run once before the first Generate call.
func (g *CardNumberGenerator) Warm(ctx context.Context, lister CardNumberLister) error {
	numbers, err := lister.ListNumbers(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list card numbers", "error", err)
		return err
	}

	raw := make([]string, 0, len(numbers))
	for _, n := range numbers {
		raw = append(raw, models.RawCardNumber(n))
	}

	if len(raw) > 0 {
		if err := g.cache.Add(ctx, raw...); err != nil {
			logger.Log.Errorw("failed to warm card number cache", "count", len(raw), "error", err)
			return err
		}
	}

	logger.Log.Infow("card number cache warmed", "count", len(raw))
	return nil
}

// Generate draws random numbers until one is not yet issued and returns it in
// display form. The returned number is reserved in the cache.
func (g *CardNumberGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		raw, err := g.draw()
		if err != nil {
			logger.Log.Errorw("failed to draw card number", "error", err)
			return "", err
		}

		reserved, err := g.cache.Reserve(ctx, raw)
		if err != nil {
			logger.Log.Errorw("failed to reserve card number", "error", err)
			return "", err
		}
		if reserved {
			return models.FormatCardNumber(raw), nil
		}

		logger.Log.Warnw("card number collision", "attempt", attempt)
	}

	logger.Log.Errorw("card number attempts exhausted", "attempts", g.maxAttempts)
	return "", ErrCardNumberGeneration
}

// draw reads random bytes and keeps those below 250 so every digit is
// equally likely.
func (g *CardNumberGenerator) draw() (string, error) {
	var (
		b   strings.Builder
		buf [models.CardNumberLength]byte
	)
	b.Grow(models.CardNumberLength)
	for b.Len() < models.CardNumberLength {
		if _, err := io.ReadFull(g.random, buf[:]); err != nil {
			return "", err
		}
		for _, v := range buf {
			if v >= 250 || b.Len() == models.CardNumberLength {
				continue
			}
			b.WriteByte('0' + v%10)
		}
	}
	return b.String(), nil
}
