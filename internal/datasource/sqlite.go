package datasource

import (
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// SQLiteReader provides read access to a canopy node database.
//
// Expected schema (written by the export side, pkg/export):
//
//	nodes(id INTEGER PRIMARY KEY, parent_id INTEGER NULL, ord INTEGER,
//	      name TEXT, value REAL NULL, meta TEXT NULL)
//
// Exactly one row has a NULL parent_id (the root). Child order within a
// parent is given by ord.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type nodeRow struct {
	id       int64
	parentID sql.NullInt64
	ord      int
	node     *model.Node
}

// LoadTree reads all node rows and reassembles the tree, preserving child
// order. The result is validated before being returned.
func (r *SQLiteReader) LoadTree() (*model.Node, error) {
	rows, err := r.db.Query(`SELECT id, parent_id, ord, name, value, meta FROM nodes`)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]*nodeRow)
	var order []int64
	for rows.Next() {
		var nr nodeRow
		var name string
		var value sql.NullFloat64
		var metaJSON sql.NullString

		if err := rows.Scan(&nr.id, &nr.parentID, &nr.ord, &name, &value, &metaJSON); err != nil {
			return nil, fmt.Errorf("scan node row: %w", err)
		}

		node := &model.Node{Name: name}
		if value.Valid {
			v := value.Float64
			node.Value = &v
		}
		if metaJSON.Valid && metaJSON.String != "" {
			var meta model.Meta
			if err := json.Unmarshal([]byte(metaJSON.String), &meta); err != nil {
				return nil, fmt.Errorf("node %d: invalid meta JSON: %w", nr.id, err)
			}
			node.Meta = &meta
		}
		nr.node = node
		byID[nr.id] = &nr
		order = append(order, nr.id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	if len(byID) == 0 {
		return nil, fmt.Errorf("database contains no nodes")
	}

	// Group children under their parents, then sort each sibling list by ord.
	childRows := make(map[int64][]*nodeRow)
	var root *model.Node
	for _, id := range order {
		nr := byID[id]
		if !nr.parentID.Valid {
			if root != nil {
				return nil, fmt.Errorf("database contains more than one root node")
			}
			root = nr.node
			continue
		}
		parent, ok := byID[nr.parentID.Int64]
		if !ok {
			return nil, fmt.Errorf("node %d references missing parent %d", nr.id, nr.parentID.Int64)
		}
		childRows[parent.id] = append(childRows[parent.id], nr)
	}
	if root == nil {
		return nil, fmt.Errorf("database contains no root node")
	}

	for parentID, kids := range childRows {
		sort.Slice(kids, func(i, j int) bool { return kids[i].ord < kids[j].ord })
		parent := byID[parentID]
		parent.node.Children = make([]*model.Node, len(kids))
		for i, kid := range kids {
			parent.node.Children[i] = kid.node
		}
	}

	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tree in database: %w", err)
	}
	return root, nil
}
