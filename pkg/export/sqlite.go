package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	json "github.com/goccy/go-json"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/canopy/pkg/analysis"
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

// SQLiteExporter exports a dataset tree to a SQLite database. The database
// can be re-read as a data source, so export followed by discovery round
// trips the tree.
type SQLiteExporter struct {
	Tree  *model.Node
	Title string
}

// NewSQLiteExporter creates a new exporter for the given tree.
func NewSQLiteExporter(tree *model.Node, title string) *SQLiteExporter {
	return &SQLiteExporter{Tree: tree, Title: title}
}

// branchSummary is a precomputed aggregate row for a subtree.
type branchSummary struct {
	Path      string
	Name      string
	SumWeight float64
	LeafCount int
	NodeCount int
	MaxDepth  int
}

// Export writes the database to path, replacing any existing file.
func (e *SQLiteExporter) Export(path string) error {
	if e.Tree == nil {
		return fmt.Errorf("no tree to export")
	}
	if err := e.Tree.Validate(); err != nil {
		return fmt.Errorf("refusing to export invalid tree: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	// Aggregate the top-level branches concurrently while the node rows
	// are written.
	var (
		summaries []branchSummary
		summaryMu sync.Mutex
	)
	var g errgroup.Group
	g.Go(func() error {
		s := summarizeBranch(e.Tree, treepath.Path{})
		summaryMu.Lock()
		summaries = append(summaries, s)
		summaryMu.Unlock()
		return nil
	})
	for i := range e.Tree.Children {
		child := e.Tree.Children[i]
		p := treepath.Path{i}
		g.Go(func() error {
			s := summarizeBranch(child, p)
			summaryMu.Lock()
			summaries = append(summaries, s)
			summaryMu.Unlock()
			return nil
		})
	}

	if err := e.insertNodes(db); err != nil {
		return fmt.Errorf("insert nodes: %w", err)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := insertAggregates(db, summaries); err != nil {
		return fmt.Errorf("insert aggregates: %w", err)
	}

	if err := e.insertMeta(db); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	return nil
}

func summarizeBranch(n *model.Node, p treepath.Path) branchSummary {
	return branchSummary{
		Path:      p.String(),
		Name:      n.Name,
		SumWeight: analysis.SumWeights(n),
		LeafCount: analysis.CountLeaves(n),
		NodeCount: analysis.NodeCount(n),
		MaxDepth:  analysis.MaxDepth(n),
	}
}

func createSchema(db *sql.DB) error {
	schema := `
CREATE TABLE nodes (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER REFERENCES nodes(id),
	ord INTEGER NOT NULL,
	name TEXT NOT NULL,
	value REAL,
	meta TEXT
);
CREATE INDEX idx_nodes_parent ON nodes(parent_id, ord);

CREATE TABLE aggregates (
	path TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	sum_weight REAL NOT NULL,
	leaf_count INTEGER NOT NULL,
	node_count INTEGER NOT NULL,
	max_depth INTEGER NOT NULL
);

CREATE TABLE meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

// insertNodes writes the tree in pre-order so parents always precede their
// children. IDs are assigned in visit order starting at 1.
func (e *SQLiteExporter) insertNodes(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (id, parent_id, ord, name, value, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	type frame struct {
		node     *model.Node
		parentID sql.NullInt64
		ord      int
	}

	nextID := int64(1)
	stack := []frame{{node: e.Tree}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := nextID
		nextID++

		var value interface{}
		if f.node.Value != nil {
			value = *f.node.Value
		}
		var meta interface{}
		if f.node.Meta != nil {
			data, err := json.Marshal(f.node.Meta)
			if err != nil {
				return fmt.Errorf("marshal meta for %s: %w", f.node.Name, err)
			}
			meta = string(data)
		}

		if _, err := stmt.Exec(id, f.parentID, f.ord, f.node.Name, value, meta); err != nil {
			return fmt.Errorf("insert node %s: %w", f.node.Name, err)
		}

		parentID := sql.NullInt64{Int64: id, Valid: true}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], parentID: parentID, ord: i})
		}
	}

	return tx.Commit()
}

func insertAggregates(db *sql.DB, summaries []branchSummary) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO aggregates (path, name, sum_weight, leaf_count, node_count, max_depth)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range summaries {
		if _, err := stmt.Exec(s.Path, s.Name, s.SumWeight, s.LeafCount, s.NodeCount, s.MaxDepth); err != nil {
			return fmt.Errorf("insert aggregate %s: %w", s.Path, err)
		}
	}

	return tx.Commit()
}

func (e *SQLiteExporter) insertMeta(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO meta (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	entries := map[string]string{
		"title":        e.Title,
		"root":         e.Tree.Name,
		"node_count":   fmt.Sprintf("%d", analysis.NodeCount(e.Tree)),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range entries {
		if _, err := stmt.Exec(k, v); err != nil {
			return fmt.Errorf("insert meta %s: %w", k, err)
		}
	}

	return tx.Commit()
}
