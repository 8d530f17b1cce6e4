// Package datasource provides multi-source dataset detection and selection
// for canopy. It discovers, validates, and selects the freshest valid source
// from SQLite databases and flare JSON files in a data directory.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite node database.
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSON is a flare-style JSON dataset file.
	SourceTypeJSON SourceType = "json"
)

// Priority values for source types (higher = more authoritative when
// timestamps are equal).
const (
	PrioritySQLite = 100
	PriorityJSON   = 50
)

// DataSource represents a potential source of dataset nodes.
type DataSource struct {
	Type SourceType `json:"type"`
	Path string     `json:"path"`
	// Priority determines preference when timestamps are equal.
	Priority int       `json:"priority"`
	ModTime  time.Time `json:"mod_time"`
	Valid    bool      `json:"valid"`
	// ValidationError describes why validation failed (if Valid is false).
	ValidationError string `json:"validation_error,omitempty"`
	// NodeCount is the number of nodes in the source (set during validation).
	NodeCount int   `json:"node_count"`
	Size      int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = fmt.Sprintf("invalid: %s", s.ValidationError)
	}
	return fmt.Sprintf("%s (%s, priority=%d, mod=%s, nodes=%d, %s)",
		s.Path, s.Type, s.Priority, s.ModTime.Format(time.RFC3339), s.NodeCount, status)
}

// DiscoveryOptions configures source discovery behavior.
type DiscoveryOptions struct {
	// DataDir is the directory to scan (cwd if empty).
	DataDir string
	// ValidateAfterDiscovery runs validation on each discovered source.
	ValidateAfterDiscovery bool
	// IncludeInvalid includes sources that failed validation in results.
	IncludeInvalid bool
	// Logger receives discovery log messages when non-nil.
	Logger func(msg string)
}

// DiscoverSources finds all potential dataset sources in the data directory.
func DiscoverSources(opts DiscoveryOptions) ([]DataSource, error) {
	log := opts.Logger
	if log == nil {
		log = func(string) {}
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	log(fmt.Sprintf("discovering sources in: %s", dataDir))

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var sources []DataSource
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}

		var src DataSource
		switch {
		case strings.HasSuffix(name, ".sqlite3") || strings.HasSuffix(name, ".db"):
			src = DataSource{Type: SourceTypeSQLite, Priority: PrioritySQLite}
		case strings.HasSuffix(name, ".json"):
			src = DataSource{Type: SourceTypeJSON, Priority: PriorityJSON}
		default:
			continue
		}

		src.Path = filepath.Join(dataDir, name)
		if info, err := e.Info(); err == nil {
			src.ModTime = info.ModTime()
			src.Size = info.Size()
		}
		sources = append(sources, src)
	}

	if opts.ValidateAfterDiscovery {
		for i := range sources {
			validateSource(&sources[i])
			log(sources[i].String())
		}
		if !opts.IncludeInvalid {
			valid := sources[:0]
			for _, s := range sources {
				if s.Valid {
					valid = append(valid, s)
				}
			}
			sources = valid
		}
	}

	return sources, nil
}

// validateSource checks that a source can actually be loaded and records its
// node count.
func validateSource(src *DataSource) {
	if src.Size == 0 {
		src.Valid = false
		src.ValidationError = "empty file"
		return
	}

	root, err := LoadFromSource(*src)
	if err != nil {
		src.Valid = false
		src.ValidationError = err.Error()
		return
	}
	src.Valid = true
	src.NodeCount = countNodes(root)
}

// SelectBestSource picks the freshest valid source, breaking modification
// time ties by priority (SQLite wins over JSON) and then by path for
// determinism.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	var valid []DataSource
	for _, s := range sources {
		if s.Valid {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return DataSource{}, fmt.Errorf("no valid dataset sources")
	}

	sort.Slice(valid, func(i, j int) bool {
		if !valid[i].ModTime.Equal(valid[j].ModTime) {
			return valid[i].ModTime.After(valid[j].ModTime)
		}
		if valid[i].Priority != valid[j].Priority {
			return valid[i].Priority > valid[j].Priority
		}
		return valid[i].Path < valid[j].Path
	})
	return valid[0], nil
}

// countNodes walks the tree iteratively and counts every node.
func countNodes(root *model.Node) int {
	if root == nil {
		return 0
	}
	count := 0
	stack := []*model.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Children...)
	}
	return count
}
