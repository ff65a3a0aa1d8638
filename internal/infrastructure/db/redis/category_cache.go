package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/grandline/theories/internal/core/domain"
	"github.com/grandline/theories/internal/core/ports"
)

const categoriesKey = "categories"
const categoriesTTL = 5 * time.Minute

// CategoryCache fronts a CategoryRepository with a Redis cache. The category
// list is read on every add/edit form render and changes essentially never,
// so a short TTL is plenty. Cache errors fall through to the source.
type CategoryCache struct {
	client *redis.Client
	source ports.CategoryRepository
	log    zerolog.Logger
}

func NewCategoryCache(client *redis.Client, source ports.CategoryRepository, log zerolog.Logger) *CategoryCache {
	return &CategoryCache{client: client, source: source, log: log}
}

func (c *CategoryCache) ListAll(ctx context.Context) ([]domain.Category, error) {
	if b, err := c.client.Get(ctx, categoriesKey).Bytes(); err == nil {
		var names []string
		if json.Unmarshal(b, &names) == nil {
			categories := make([]domain.Category, 0, len(names))
			for _, name := range names {
				categories = append(categories, domain.Category{Name: name})
			}
			return categories, nil
		}
	}

	categories, err := c.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}
	if b, err := json.Marshal(names); err == nil {
		if err := c.client.Set(ctx, categoriesKey, b, categoriesTTL).Err(); err != nil {
			c.log.Warn().Err(err).Msg("failed to cache categories")
		}
	}

	return categories, nil
}
