package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"word-quiz/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleItems())}
	repo := NewCatalogRepository(loader, time.Minute)

	catalog, err := repo.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if catalog.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", catalog.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{CatalogLoader: NewStaticCatalogLoader(sampleItems())}
	repo := NewCatalogRepository(loader, time.Minute)
	now := time.Now()
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryDoesNotCacheErrors(t *testing.T) {
	loader := &failingLoader{err: domain.ErrAssetListing}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.GetCatalog(context.Background()); !errors.Is(err, domain.ErrAssetListing) {
		t.Fatalf("expected asset listing error, got %v", err)
	}
	if _, err := repo.GetCatalog(context.Background()); err == nil {
		t.Fatalf("expected error again")
	}
	if loader.calls != 2 {
		t.Fatalf("expected loader retried on next call, got %d", loader.calls)
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

type failingLoader struct {
	err   error
	calls int
}

func (l *failingLoader) LoadCatalog(context.Context) (domain.Catalog, error) {
	l.calls++
	return domain.Catalog{}, l.err
}

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "animals-cat", Category: "animals", Word: "cat", ImageRef: "animals/animals-cat.png"},
		{ID: "animals-dog", Category: "animals", Word: "dog", ImageRef: "animals/animals-dog.png"},
		{ID: "colors-red", Category: "colors", Word: "red", ImageRef: "colors/colors-red.png"},
	}
}
