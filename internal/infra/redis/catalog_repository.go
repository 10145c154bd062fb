package redis

import (
	"context"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"word-quiz/internal/domain"
)

// CatalogLoader enumerates the catalog from a backing asset store.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (domain.Catalog, error)
}

// CatalogRepository caches the catalog in Redis and falls back to a loader on cache miss.
// Item order is kept as:  RPUSH {prefix}:ids    {itemID}...
// Image refs are kept as: HSET  {prefix}:images {itemID} {imageRef}
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	prefix string
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		prefix: "wordquiz:catalog",
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) (domain.Catalog, error) {
	if catalog, ok := r.cached(ctx); ok {
		return catalog, nil
	}

	result, err, _ := r.sf.Do(r.prefix, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if catalog, ok := r.cached(ctx); ok {
			return catalog, nil
		}

		catalog, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return domain.Catalog{}, err
		}
		r.store(ctx, catalog)
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

// cached rebuilds the catalog from Redis. Entries that no longer parse are dropped.
func (r *CatalogRepository) cached(ctx context.Context) (domain.Catalog, bool) {
	ids, err := r.client.LRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil || len(ids) == 0 {
		return domain.Catalog{}, false
	}
	images, err := r.client.HGetAll(ctx, r.imagesKey()).Result()
	if err != nil {
		return domain.Catalog{}, false
	}

	items := make([]domain.Item, 0, len(ids))
	for _, id := range ids {
		item, err := domain.NewItem(id, images[id])
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return domain.Catalog{}, false
	}
	return domain.NewCatalog(items), true
}

// store is best-effort; a failed write only means the next call reloads.
func (r *CatalogRepository) store(ctx context.Context, catalog domain.Catalog) {
	if catalog.Len() == 0 {
		return
	}
	ids := make([]interface{}, 0, catalog.Len())
	images := make(map[string]interface{}, catalog.Len())
	for _, item := range catalog.Items() {
		ids = append(ids, item.ID)
		images[item.ID] = item.ImageRef
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.idsKey(), r.imagesKey())
	pipe.RPush(ctx, r.idsKey(), ids...)
	pipe.HSet(ctx, r.imagesKey(), images)
	if ttl := r.ttlWithJitter(); ttl > 0 {
		pipe.Expire(ctx, r.idsKey(), ttl)
		pipe.Expire(ctx, r.imagesKey(), ttl)
	}
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops the cached catalog so the next call re-lists the assets.
func (r *CatalogRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, r.idsKey(), r.imagesKey()).Err()
}

func (r *CatalogRepository) idsKey() string {
	return r.prefix + ":ids"
}

func (r *CatalogRepository) imagesKey() string {
	return r.prefix + ":images"
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
