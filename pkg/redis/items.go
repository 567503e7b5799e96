package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kunal8987/Astrape-assignment/pkg/models"
)

const itemCacheTTL = 24 * time.Hour

func itemKey(id string) string {
	return fmt.Sprintf("item:%s", id)
}

// CacheItem stores a single item under item:{id}. Cache writes are
// best-effort; callers log failures and serve from MongoDB regardless.
func CacheItem(ctx context.Context, item *models.Item) error {
	itemJSON, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item %s: %w", item.ID.Hex(), err)
	}

	if err := RedisClient().Set(ctx, itemKey(item.ID.Hex()), itemJSON, itemCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache item %s: %w", item.ID.Hex(), err)
	}
	return nil
}

// GetItemFromCache returns the cached item or an error on a miss.
func GetItemFromCache(ctx context.Context, id string) (*models.Item, error) {
	itemJSON, err := RedisClient().Get(ctx, itemKey(id)).Result()
	if err != nil {
		return nil, err
	}

	var item models.Item
	if err := json.Unmarshal([]byte(itemJSON), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached item: %w", err)
	}
	return &item, nil
}

// RemoveItemFromCache evicts an item after update or delete.
func RemoveItemFromCache(ctx context.Context, id string) error {
	if err := RedisClient().Del(ctx, itemKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to evict item %s from cache: %w", id, err)
	}
	return nil
}
