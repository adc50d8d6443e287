package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"recallvantage/internal/domain"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const resultCacheKeyPrefix = "recallvantage:result:"

// ResultCacheRepository stores finished seeded results keyed by the
// simulation input hash. Get returns nil on a miss
type ResultCacheRepository interface {
	Get(ctx context.Context, inputHash string) (*domain.SimulationResult, error)
	Set(ctx context.Context, inputHash string, result domain.SimulationResult) error
	Delete(ctx context.Context, inputHash string) error
}

type redisResultCacheHandler struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCacheRepository(client *redis.Client, ttl time.Duration) ResultCacheRepository {
	return redisResultCacheHandler{
		Client: client,
		TTL:    ttl,
	}
}

func (h redisResultCacheHandler) Get(ctx context.Context, inputHash string) (*domain.SimulationResult, error) {
	b, err := h.Client.Get(ctx, resultCacheKeyPrefix+inputHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}
	return decodeCachedResult(b)
}

func (h redisResultCacheHandler) Set(ctx context.Context, inputHash string, result domain.SimulationResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	err = h.Client.Set(ctx, resultCacheKeyPrefix+inputHash, b, h.TTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache result: %w", err)
	}
	return nil
}

func (h redisResultCacheHandler) Delete(ctx context.Context, inputHash string) error {
	err := h.Client.Del(ctx, resultCacheKeyPrefix+inputHash).Err()
	if err != nil {
		return fmt.Errorf("failed to delete cached result: %w", err)
	}
	return nil
}

type memoryCacheItem struct {
	value   []byte
	expires time.Time
}

// memoryResultCacheHandler is used when redis isn't configured, ie local
// cli runs and tests
type memoryResultCacheHandler struct {
	mu    *sync.RWMutex
	items map[string]memoryCacheItem
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryResultCacheRepository(ttl time.Duration) ResultCacheRepository {
	return memoryResultCacheHandler{
		mu:    &sync.RWMutex{},
		items: map[string]memoryCacheItem{},
		ttl:   ttl,
		now:   time.Now,
	}
}

func (h memoryResultCacheHandler) Get(ctx context.Context, inputHash string) (*domain.SimulationResult, error) {
	h.mu.RLock()
	item, ok := h.items[inputHash]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !item.expires.IsZero() && h.now().After(item.expires) {
		h.mu.Lock()
		delete(h.items, inputHash)
		h.mu.Unlock()
		return nil, nil
	}
	return decodeCachedResult(item.value)
}

func (h memoryResultCacheHandler) Set(ctx context.Context, inputHash string, result domain.SimulationResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	item := memoryCacheItem{value: b}
	if h.ttl > 0 {
		item.expires = h.now().Add(h.ttl)
	}
	h.mu.Lock()
	h.items[inputHash] = item
	h.mu.Unlock()
	return nil
}

func (h memoryResultCacheHandler) Delete(ctx context.Context, inputHash string) error {
	h.mu.Lock()
	delete(h.items, inputHash)
	h.mu.Unlock()
	return nil
}

func decodeCachedResult(b []byte) (*domain.SimulationResult, error) {
	out := &domain.SimulationResult{}
	if err := json.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}
	return out, nil
}
