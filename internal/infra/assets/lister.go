package assets

import (
	"context"
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultCategories are the picture groups shipped with the game.
var DefaultCategories = []string{"animals", "body", "colors", "numbers", "objects"}

//go:embed default_manifest.yaml
var defaultManifest []byte

// Lister enumerates the image filenames stored under one category.
type Lister interface {
	List(ctx context.Context, category string) ([]string, error)
}

// DirLister lists category sub-directories of a file system, e.g. os.DirFS(assetDir).
type DirLister struct {
	fsys fs.FS
}

func NewDirLister(fsys fs.FS) *DirLister {
	return &DirLister{fsys: fsys}
}

func (l *DirLister) List(_ context.Context, category string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, category)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ManifestLister serves listings from a YAML document mapping category to filenames.
type ManifestLister struct {
	categories map[string][]string
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*ManifestLister, error) {
	categories := map[string][]string{}
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("parse asset manifest: %w", err)
	}
	return &ManifestLister{categories: categories}, nil
}

// LoadManifest reads a manifest file from disk.
func LoadManifest(path string) (*ManifestLister, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// DefaultManifest is the embedded listing used when no asset directory is configured.
func DefaultManifest() *ManifestLister {
	lister, err := ParseManifest(defaultManifest)
	if err != nil {
		panic(err)
	}
	return lister
}

func (l *ManifestLister) List(_ context.Context, category string) ([]string, error) {
	names, ok := l.categories[category]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", category, fs.ErrNotExist)
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, nil
}

// Categories returns the manifest's category names sorted.
func (l *ManifestLister) Categories() []string {
	names := make([]string, 0, len(l.categories))
	for name := range l.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
