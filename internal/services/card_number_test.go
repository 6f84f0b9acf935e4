package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setCache is a CardNumberCache over a map.
type setCache struct {
	mu       sync.Mutex
	numbers  map[string]struct{}
	reserves int
	err      error
}

func newSetCache(numbers ...string) *setCache {
	c := &setCache{numbers: map[string]struct{}{}}
	for _, n := range numbers {
		c.numbers[n] = struct{}{}
	}
	return c
}

func (c *setCache) Reserve(_ context.Context, number string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reserves++
	if c.err != nil {
		return false, c.err
	}
	if _, ok := c.numbers[number]; ok {
		return false, nil
	}
	c.numbers[number] = struct{}{}
	return true, nil
}

func (c *setCache) Add(_ context.Context, numbers ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, n := range numbers {
		c.numbers[n] = struct{}{}
	}
	return nil
}

func (c *setCache) has(number string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.numbers[number]
	return ok
}

// digitReader yields the bytes of digits in order, then repeats the last one.
// A byte d below 10 becomes digit d.
type digitReader struct {
	digits []byte
	pos    int
}

func (r *digitReader) Read(p []byte) (int, error) {
	for i := range p {
		if r.pos < len(r.digits) {
			p[i] = r.digits[r.pos]
			r.pos++
			continue
		}
		p[i] = r.digits[len(r.digits)-1]
	}
	return len(p), nil
}

func repeatDigit(d byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = d
	}
	return out
}

type listerFunc func(ctx context.Context) ([]string, error)

func (f listerFunc) ListNumbers(ctx context.Context) ([]string, error) { return f(ctx) }

var displayNumber = regexp.MustCompile(`^\d{4} \d{4} \d{4} \d{4}$`)

func TestCardNumberGenerator_Generate_Format(t *testing.T) {
	cache := newSetCache()
	g := NewCardNumberGenerator(cache)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		n, err := g.Generate(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, displayNumber, n)
		assert.Len(t, n, 19)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func TestCardNumberGenerator_Generate_SkipsIssued(t *testing.T) {
	cache := newSetCache("1111111111111111")
	g := NewCardNumberGenerator(cache)
	g.random = &digitReader{digits: append(repeatDigit(1, 16), repeatDigit(2, 16)...)}

	n, err := g.Generate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2222 2222 2222 2222", n)
	assert.Equal(t, 2, cache.reserves)
}

func TestCardNumberGenerator_Generate_Exhausted(t *testing.T) {
	cache := newSetCache("0000000000000000")
	g := NewCardNumberGenerator(cache)
	g.random = &digitReader{digits: []byte{0}}

	n, err := g.Generate(context.Background())

	assert.Empty(t, n)
	assert.ErrorIs(t, err, ErrCardNumberGeneration)
	assert.Equal(t, maxCardNumberAttempts, cache.reserves)
}

func TestCardNumberGenerator_Generate_ReservesIssuedNumber(t *testing.T) {
	cache := newSetCache()
	g := NewCardNumberGenerator(cache)
	g.random = &digitReader{digits: []byte{7}}

	first, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "7777 7777 7777 7777", first)
	assert.True(t, cache.has("7777777777777777"))

	_, err = g.Generate(context.Background())
	assert.ErrorIs(t, err, ErrCardNumberGeneration)
}

func TestCardNumberGenerator_Generate_CacheError(t *testing.T) {
	cache := newSetCache()
	cache.err = errors.New("redis unavailable")
	g := NewCardNumberGenerator(cache)

	_, err := g.Generate(context.Background())

	assert.ErrorIs(t, err, cache.err)
	assert.Equal(t, 1, cache.reserves)
}

func TestCardNumberGenerator_Generate_Concurrent(t *testing.T) {
	cache := newSetCache()
	g := NewCardNumberGenerator(cache)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got = map[string]int{}
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := g.Generate(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			got[n]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, got, 50)
}

func TestCardNumberGenerator_Warm(t *testing.T) {
	tests := []struct {
		name    string
		numbers []string
		listErr error
		wantErr bool
	}{
		{
			name:    "loads stored numbers without separators",
			numbers: []string{"1234 5678 9012 3456", "1111 2222 3333 4444"},
		},
		{
			name: "empty store",
		},
		{
			name:    "lister error",
			listErr: errors.New("query failed"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newSetCache()
			g := NewCardNumberGenerator(cache)

			err := g.Warm(context.Background(), listerFunc(func(context.Context) ([]string, error) {
				return tt.numbers, tt.listErr
			}))

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.listErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cache.numbers, len(tt.numbers))
			for _, n := range tt.numbers {
				assert.False(t, cache.has(n))
			}
			if len(tt.numbers) > 0 {
				assert.True(t, cache.has("1234567890123456"))
				assert.True(t, cache.has("1111222233334444"))
			}
		})
	}
}

func TestCardNumberGenerator_WarmThenGenerate(t *testing.T) {
	cache := newSetCache()
	g := NewCardNumberGenerator(cache)
	g.random = &digitReader{digits: append(repeatDigit(5, 16), repeatDigit(6, 16)...)}

	require.NoError(t, g.Warm(context.Background(), listerFunc(func(context.Context) ([]string, error) {
		return []string{"5555 5555 5555 5555"}, nil
	})))

	n, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "6666 6666 6666 6666", n)
}
