package datasource

import (
	"fmt"

	"github.com/vanderheijden86/canopy/pkg/loader"
	"github.com/vanderheijden86/canopy/pkg/model"
)

// LoadTree performs smart multi-source detection and loading from dataDir.
// It discovers all available sources (SQLite, JSON), validates them, selects
// the freshest valid one, and loads the tree from it. Falls back to plain
// JSON discovery via the loader when smart detection finds nothing.
func LoadTree(dataDir string) (*model.Node, DataSource, error) {
	root, src, smartErr := loadSmart(dataDir)
	if smartErr == nil {
		return root, src, nil
	}

	// Fall back to legacy JSON-only loading.
	path, err := loader.FindDatasetPath(dataDir)
	if err != nil {
		return nil, DataSource{}, fmt.Errorf("no usable dataset: %w", smartErr)
	}
	root, err = loader.LoadTree(path)
	if err != nil {
		return nil, DataSource{}, err
	}
	return root, DataSource{Type: SourceTypeJSON, Path: path, Valid: true}, nil
}

func loadSmart(dataDir string) (*model.Node, DataSource, error) {
	sources, err := DiscoverSources(DiscoveryOptions{
		DataDir:                dataDir,
		ValidateAfterDiscovery: true,
	})
	if err != nil {
		return nil, DataSource{}, err
	}
	if len(sources) == 0 {
		return nil, DataSource{}, fmt.Errorf("no valid sources discovered")
	}

	best, err := SelectBestSource(sources)
	if err != nil {
		return nil, DataSource{}, err
	}

	root, err := LoadFromSource(best)
	if err != nil {
		return nil, DataSource{}, err
	}
	return root, best, nil
}

// LoadFromSource loads the tree from a specific DataSource, dispatching on
// the source type.
func LoadFromSource(source DataSource) (*model.Node, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		return reader.LoadTree()

	case SourceTypeJSON:
		return loader.LoadTree(source.Path)

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
