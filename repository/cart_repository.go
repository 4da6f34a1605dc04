package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository keeps carts in Redis as JSON blobs, one key per
// (store, session) pair. The TTL is refreshed on every write so an active
// cart survives a full reload of the client.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) key(storeID, sessionID string) string {
	return fmt.Sprintf("cart:%s:%s", storeID, sessionID)
}

func (r *CartRepository) Load(ctx context.Context, storeID, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(storeID, sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.StoreID, sessionID), data, r.ttl).Err()
}

func (r *CartRepository) Delete(ctx context.Context, storeID, sessionID string) error {
	return r.client.Del(ctx, r.key(storeID, sessionID)).Err()
}
