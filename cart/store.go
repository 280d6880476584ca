package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps carts in redis keyed by login session, with the session's
// TTL. When the session expires or is deleted the cart goes with it.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string { return fmt.Sprintf("cart:sess:%s", sessionID) }

// Get returns the cart for the session; a missing key is an empty cart.
func (s *Store) Get(ctx context.Context, sessionID string) ([]Item, error) {
	b, err := s.rdb.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Put replaces the session's cart and refreshes the TTL.
func (s *Store) Put(ctx context.Context, sessionID string, items []Item) error {
	if len(items) == 0 {
		return s.Clear(ctx, sessionID)
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(sessionID), b, s.ttl).Err()
}

// Clear empties the cart, e.g. after checkout.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
