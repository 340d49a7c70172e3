package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/finance-flow/internal/logger"
	"github.com/sbilibin2017/finance-flow/internal/models"
)

// ErrCacheMiss is returned when no cached category list exists for a type.
var ErrCacheMiss = errors.New("categories not found in cache")

// CategoryCacheRepository caches active category lists in Redis
type CategoryCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached lists
}

// NewCategoryCacheRepository creates a new repository instance with the given TTL
func NewCategoryCacheRepository(client *redis.Client, expiration time.Duration) *CategoryCacheRepository {
	return &CategoryCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func categoryKey(txnType string) string {
	return fmt.Sprintf("categories:%s", strings.ToLower(txnType))
}

// GetActive returns the cached active categories of txnType
func (r *CategoryCacheRepository) GetActive(ctx context.Context, txnType string) ([]models.Category, error) {
	key := categoryKey(txnType)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.FromContext(ctx).Infow("cache get", "key", key, "error", err)
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var categories []models.Category
	if err := json.Unmarshal([]byte(val), &categories); err != nil {
		logger.FromContext(ctx).Infow("cache get", "key", key, "value", val, "error", err)
		return nil, err
	}

	logger.FromContext(ctx).Infow("cache get", "key", key, "result", len(categories))
	return categories, nil
}

// SetActive caches the active categories of txnType with expiration
func (r *CategoryCacheRepository) SetActive(ctx context.Context, txnType string, categories []models.Category) error {
	key := categoryKey(txnType)

	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.FromContext(ctx).Infow("cache set",
		"key", key,
		"result", len(categories),
		"error", err,
	)

	return err
}
