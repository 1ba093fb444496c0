package roundcache

import (
	"context"
	"sync"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

// MemoryCache keeps encoded documents in process memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (c *MemoryCache) put(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
}

func (c *MemoryCache) get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (c *MemoryCache) SaveActive(ctx context.Context, round *rounddomain.Round) error {
	data, err := encodeRound(round)
	if err != nil {
		return err
	}
	c.put(KeyActiveRound, data)
	return nil
}

func (c *MemoryCache) LoadActive(ctx context.Context) (*rounddomain.Round, error) {
	data, err := c.get(KeyActiveRound)
	if err != nil {
		return nil, err
	}
	return decodeRound(data)
}

func (c *MemoryCache) ClearActive(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, KeyActiveRound)
	return nil
}

func (c *MemoryCache) SaveHistory(ctx context.Context, rounds []*rounddomain.Round) error {
	data, err := encodeHistory(rounds)
	if err != nil {
		return err
	}
	c.put(KeyRoundHistory, data)
	return nil
}

func (c *MemoryCache) LoadHistory(ctx context.Context) ([]*rounddomain.Round, error) {
	data, err := c.get(KeyRoundHistory)
	if err != nil {
		return nil, err
	}
	return decodeHistory(data)
}

func (c *MemoryCache) Close() error { return nil }
