package assets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"word-quiz/internal/domain"
)

// Loader builds the item catalog from a Lister, one category at a time.
type Loader struct {
	lister     Lister
	categories []string
	logger     *slog.Logger
}

func NewLoader(lister Lister, categories []string, logger *slog.Logger) *Loader {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		lister:     lister,
		categories: categories,
		logger:     logger.With("component", "assets"),
	}
}

// LoadCatalog lists every category. An unreadable category is logged and skipped;
// the load fails only when no category could be listed at all.
func (l *Loader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var (
		items    []domain.Item
		failures []error
	)
	for _, category := range l.categories {
		names, err := l.lister.List(ctx, category)
		if err != nil {
			err = fmt.Errorf("%w: category %q: %w", domain.ErrAssetListing, category, err)
			l.logger.Error("skipping category", slog.String("category", category), slog.Any("error", err))
			failures = append(failures, err)
			continue
		}
		for _, name := range names {
			item, err := domain.NewItem(ItemID(name), path.Join(category, name))
			if err != nil {
				l.logger.Warn("skipping asset", slog.String("category", category), slog.String("file", name), slog.Any("error", err))
				continue
			}
			items = append(items, item)
		}
		l.logger.Debug("listed category", slog.String("category", category), slog.Int("files", len(names)))
	}

	if len(failures) == len(l.categories) {
		return domain.Catalog{}, errors.Join(failures...)
	}
	catalog := domain.NewCatalog(items)
	l.logger.Info("catalog loaded", slog.Int("items", catalog.Len()), slog.Int("failed_categories", len(failures)))
	return catalog, nil
}

// ItemID strips the file extension: "animals-cat.png" becomes "animals-cat".
func ItemID(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}
