package idempotency

import (
	"context"
	"time"

	"catalog/internal/cache"
	"catalog/internal/errors"
)

const (
	lockSuffix = ":lock"
	dataSuffix = ":data"
	lockTTL    = 10 * time.Second   // how long to block for a running request
	dataTTL    = 24 * 7 * time.Hour // how long to remember the success response
)

type Store struct {
	cache *cache.RedisClient
}

func NewStore(c *cache.RedisClient) *Store {
	return &Store{cache: c}
}

func (s *Store) SaveResponse(ctx context.Context, key string, resp IdempotencyResponse) error {
	dataKey := key + dataSuffix
	lockKey := key + lockSuffix

	if err := cache.Set(s.cache, ctx, dataKey, resp, dataTTL); err != nil {
		return errors.New(errors.ErrInternal, "Internal error. Please contact support.", err)
	}

	// Delete the lock immediately so waiting requests can read the data.
	// Error ignored; once the data is saved the transaction is done.
	_ = cache.Del(s.cache, ctx, lockKey)

	return nil
}

func (s *Store) GetResponse(ctx context.Context, key string) (*IdempotencyResponse, bool, error) {
	resp, found, err := cache.Get[IdempotencyResponse](s.cache, ctx, key+dataSuffix)
	if err != nil {
		return nil, false, err
	}
	return resp, found, nil
}

func (s *Store) Lock(ctx context.Context, key string) (bool, error) {
	// A finished response counts as a failed lock so the middleware falls
	// through to the replay path.
	_, found, err := s.GetResponse(ctx, key)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}

	return cache.SetNX(s.cache, ctx, key+lockSuffix, "1", lockTTL)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_ = cache.Del(s.cache, ctx, key+lockSuffix)
	_ = cache.Del(s.cache, ctx, key+dataSuffix)
	return nil
}
