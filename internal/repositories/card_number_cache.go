package repositories

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-bank-cards/internal/logger"
)

// DefaultCardNumbersKey is the Redis set holding issued card numbers.
const DefaultCardNumbersKey = "cards:numbers"

// cardNumberBatch bounds the members sent in one SADD while warming.
const cardNumberBatch = 1000

// CardNumberCacheRepository keeps issued raw card numbers in a Redis set so
// every instance of the service shares one registry.
type CardNumberCacheRepository struct {
	client *redis.Client
	key    string
}

// NewCardNumberCacheRepository creates a new repository using the given set key.
func NewCardNumberCacheRepository(client *redis.Client, key string) *CardNumberCacheRepository {
	if key == "" {
		key = DefaultCardNumbersKey
	}
	return &CardNumberCacheRepository{client: client, key: key}
}

// Reserve adds number to the set and reports whether it was absent.
func (r *CardNumberCacheRepository) Reserve(ctx context.Context, number string) (bool, error) {
	added, err := r.client.SAdd(ctx, r.key, number).Result()

	logger.Log.Infow(
		"key", r.key,
		"result", added,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return added == 1, nil
}

// Add stores numbers in the set.
func (r *CardNumberCacheRepository) Add(ctx context.Context, numbers ...string) error {
	for start := 0; start < len(numbers); start += cardNumberBatch {
		end := min(start+cardNumberBatch, len(numbers))

		members := make([]any, 0, end-start)
		for _, n := range numbers[start:end] {
			members = append(members, n)
		}

		added, err := r.client.SAdd(ctx, r.key, members...).Result()

		logger.Log.Infow(
			"key", r.key,
			"count", len(members),
			"result", added,
			"error", err,
		)

		if err != nil {
			return err
		}
	}
	return nil
}

// Contains reports whether number is in the set.
func (r *CardNumberCacheRepository) Contains(ctx context.Context, number string) (bool, error) {
	return r.client.SIsMember(ctx, r.key, number).Result()
}

// CardNumberMemoryCache is a process-local registry of issued card numbers.
type CardNumberMemoryCache struct {
	mu      sync.Mutex
	numbers map[string]struct{}
}

// NewCardNumberMemoryCache creates an empty cache.
func NewCardNumberMemoryCache() *CardNumberMemoryCache {
	return &CardNumberMemoryCache{numbers: make(map[string]struct{})}
}

// Reserve adds number and reports whether it was absent.
func (c *CardNumberMemoryCache) Reserve(_ context.Context, number string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.numbers[number]; ok {
		return false, nil
	}
	c.numbers[number] = struct{}{}
	return true, nil
}

// Add stores numbers.
func (c *CardNumberMemoryCache) Add(_ context.Context, numbers ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range numbers {
		c.numbers[n] = struct{}{}
	}
	return nil
}

// Contains reports whether number was issued.
func (c *CardNumberMemoryCache) Contains(_ context.Context, number string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.numbers[number]
	return ok, nil
}
