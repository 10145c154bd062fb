package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"word-quiz/internal/domain"
	"word-quiz/internal/infra/memory"
)

func TestCatalogRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{CatalogLoader: memory.NewStaticCatalogLoader(sampleItems())}
	repo := NewCatalogRepository(client, loader, time.Minute)

	catalog, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", catalog.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get cached catalog: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Len() != 3 || cached.Item(0).ID != "animals-cat" || cached.Item(0).ImageRef != "animals/animals-cat.png" {
		t.Fatalf("expected catalog rebuilt in order, got %+v", cached.Items())
	}
	if ttl := mr.TTL("wordquiz:catalog:ids"); ttl <= 0 {
		t.Fatalf("expected ttl on cached ids, got %v", ttl)
	}
}

func TestCatalogRepositoryInvalidate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &countingLoader{CatalogLoader: memory.NewStaticCatalogLoader(sampleItems())}
	repo := NewCatalogRepository(newClient(mr), loader, time.Minute)

	_, _ = repo.GetCatalog(context.Background())
	if err := repo.Invalidate(context.Background()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, _ = repo.GetCatalog(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls=%d", loader.calls)
	}
}

type countingLoader struct {
	memory.CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "animals-cat", Category: "animals", Word: "cat", ImageRef: "animals/animals-cat.png"},
		{ID: "animals-dog", Category: "animals", Word: "dog", ImageRef: "animals/animals-dog.png"},
		{ID: "colors-red", Category: "colors", Word: "red", ImageRef: "colors/colors-red.png"},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
