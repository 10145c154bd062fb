package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"word-quiz/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderBuildsCatalogFromDirectories(t *testing.T) {
	fsys := fstest.MapFS{
		"animals/animals-cat.png": {Data: []byte("png")},
		"animals/animals-dog.png": {Data: []byte("png")},
		"colors/colors-red.png":   {Data: []byte("png")},
	}
	loader := NewLoader(NewDirLister(fsys), []string{"animals", "colors"}, quietLogger())

	catalog, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, catalog.Len())

	cat := catalog.Item(0)
	assert.Equal(t, "animals-cat", cat.ID)
	assert.Equal(t, "animals", cat.Category)
	assert.Equal(t, "cat", cat.Word)
	assert.Equal(t, "animals/animals-cat.png", cat.ImageRef)
	assert.Equal(t, map[string]int{"animals": 2, "colors": 1}, catalog.CountByCategory())
}

func TestLoaderSkipsUnreadableCategory(t *testing.T) {
	fsys := fstest.MapFS{
		"animals/animals-cat.png": {Data: []byte("png")},
	}
	loader := NewLoader(NewDirLister(fsys), []string{"animals", "missing"}, quietLogger())

	catalog, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
}

func TestLoaderFailsWhenEveryCategoryFails(t *testing.T) {
	loader := NewLoader(NewDirLister(fstest.MapFS{}), []string{"animals", "colors"}, quietLogger())

	_, err := loader.LoadCatalog(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAssetListing))
	assert.Contains(t, err.Error(), `"animals"`)
	assert.Contains(t, err.Error(), `"colors"`)
}

func TestLoaderSkipsMalformedFilenames(t *testing.T) {
	fsys := fstest.MapFS{
		"animals/animals-cat.png": {Data: []byte("png")},
		"animals/justaword.png":   {Data: []byte("png")},
		"animals/sub/nested.png":  {Data: []byte("png")},
	}
	loader := NewLoader(NewDirLister(fsys), []string{"animals"}, quietLogger())

	catalog, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())
	assert.Equal(t, "cat", catalog.Item(0).Word)
}

func TestDefaultManifestCoversDefaultCategories(t *testing.T) {
	manifest := DefaultManifest()
	assert.ElementsMatch(t, DefaultCategories, manifest.Categories())

	catalog, err := NewLoader(manifest, nil, quietLogger()).LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, catalog.Len(), 20)
	assert.Len(t, catalog.Words(), catalog.Len())
}

func TestManifestListerUnknownCategory(t *testing.T) {
	manifest, err := ParseManifest([]byte("animals: [animals-cat.png]\n"))
	require.NoError(t, err)

	_, err = manifest.List(context.Background(), "colors")
	assert.Error(t, err)
}

func TestItemID(t *testing.T) {
	assert.Equal(t, "animals-cat", ItemID("animals-cat.png"))
	assert.Equal(t, "colors-light-blue", ItemID("colors-light-blue.jpeg"))
	assert.Equal(t, "numbers-one", ItemID("numbers-one"))
}
