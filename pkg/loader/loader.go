// Package loader locates and parses canopy dataset files.
//
// A dataset is a single flare-style JSON document. The loader finds the
// right file (environment override first, then preferred names in a data
// directory), guards against oversized input, strips a UTF-8 BOM, and
// rejects malformed trees with a descriptive error at load time rather than
// letting a broken dataset reach the engine.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// DatasetEnvVar overrides dataset discovery with an explicit file path.
const DatasetEnvVar = "CANOPY_DATASET"

// PreferredNames defines the priority order for dataset files in a data
// directory.
var PreferredNames = []string{"dataset.json", "tree.json", "flare.json"}

// DefaultMaxSize is the default dataset size cap (64MB). Datasets beyond it
// are rejected rather than loaded partially.
const DefaultMaxSize = 64 * 1024 * 1024

// ParseOptions configures dataset parsing.
type ParseOptions struct {
	// WarningHandler is called with non-fatal load warnings. If nil,
	// warnings go to os.Stderr.
	WarningHandler func(string)

	// MaxSize caps the dataset size in bytes. If 0, DefaultMaxSize is used.
	MaxSize int64
}

// FindDatasetPath locates the dataset file. An explicit CANOPY_DATASET wins;
// otherwise the preferred names are tried in dir (or the working directory
// when dir is empty). Backup files are skipped.
func FindDatasetPath(dir string) (string, error) {
	if envPath := os.Getenv(DatasetEnvVar); envPath != "" {
		return envPath, nil
	}

	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}
		candidates = append(candidates, name)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no dataset JSON file found in %s", dir)
	}

	for _, preferred := range PreferredNames {
		for _, name := range candidates {
			if name != preferred {
				continue
			}
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && info.Size() > 0 {
				return path, nil
			}
		}
	}

	// Fall back to the first non-empty candidate.
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return path, nil
		}
	}
	return filepath.Join(dir, candidates[0]), nil
}

// LoadTree reads and validates the dataset at path.
func LoadTree(path string) (*model.Node, error) {
	return LoadTreeWithOptions(path, ParseOptions{})
}

// LoadTreeWithOptions reads a dataset file with custom options.
func LoadTreeWithOptions(path string, opts ParseOptions) (*model.Node, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no dataset found at %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return ParseTree(file, opts)
}

// ParseTree parses a dataset document from a reader. Handles UTF-8 BOM
// stripping, size capping, and structural validation.
func ParseTree(r io.Reader, opts ParseOptions) (*model.Node, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	warn := opts.WarningHandler
	if warn == nil {
		warn = func(msg string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		}
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("dataset exceeds the %d byte size cap", maxSize)
	}

	if stripped := stripBOM(data); len(stripped) != len(data) {
		warn("dataset starts with a UTF-8 BOM; stripping it")
		data = stripped
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	return model.DecodeTreeBytes(data)
}

// stripBOM removes the UTF-8 Byte Order Mark if present.
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}
