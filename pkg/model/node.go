// Package model defines the full-tree data model for canopy.
//
// A dataset is a single rooted, ordered tree of named nodes in the flare
// JSON convention: every node has a "name", an optional ordered "children"
// array, and leaves usually carry a numeric "value" weight. Nodes may also
// carry a structured metadata record (requirements, related blocks,
// ownership) that the navigation engine passes through untouched.
//
// The tree is immutable once loaded; every other package addresses into it
// by child-index paths and treats it as read-only shared state.
package model

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Node is a single node of the full tree.
//
// Children is an ordered slice; child order is the addressing basis for the
// whole engine and must not be reordered after load. A nil and an empty
// Children slice are equivalent: both mean "leaf".
type Node struct {
	Name     string   `json:"name"`
	Children []*Node  `json:"children,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Meta     *Meta    `json:"meta,omitempty"`
}

// Meta is the optional domain metadata attached to a node. All fields are
// optional; the engine never interprets them, it only resolves and returns
// them for the detail panel.
type Meta struct {
	Requirements []Requirement `json:"requirements,omitempty"`
	Related      []string      `json:"related,omitempty"`
	Owner        string        `json:"owner,omitempty"`
	Version      string        `json:"version,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
	Notes        string        `json:"notes,omitempty"` // markdown, rendered by the UI
}

// Requirement is a single requirement reference on a node.
type Requirement struct {
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}

// IsLeaf reports whether the node has no children. Absent and empty children
// are treated identically.
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.Children) == 0
}

// Weight returns the node's own value, or 0 when no value is present.
func (n *Node) Weight() float64 {
	if n == nil || n.Value == nil {
		return 0
	}
	return *n.Value
}

// Validate checks the tree rooted at n for structural problems: a nil root,
// nodes with an empty name, or nil entries inside a children array. It walks
// with an explicit stack so adversarially deep inputs cannot exhaust the
// goroutine stack.
func (n *Node) Validate() error {
	if n == nil {
		return fmt.Errorf("tree root is nil")
	}

	type frame struct {
		node *Node
		path string
	}
	stack := []frame{{node: n, path: n.Name}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node.Name == "" {
			return fmt.Errorf("node at %q has an empty name", f.path)
		}
		if err := f.node.Meta.validate(f.path); err != nil {
			return err
		}
		for i, child := range f.node.Children {
			if child == nil {
				return fmt.Errorf("node %q has a null child at index %d", f.path, i)
			}
			stack = append(stack, frame{node: child, path: f.path + "/" + child.Name})
		}
	}
	return nil
}

func (m *Meta) validate(path string) error {
	if m == nil {
		return nil
	}
	for i, req := range m.Requirements {
		if req.ID == "" {
			return fmt.Errorf("node %q: requirement %d has an empty id", path, i)
		}
	}
	return nil
}

// DecodeTree reads a single JSON document from r and validates it as a full
// tree. Malformed JSON and structurally invalid trees both fail with a
// descriptive error; a partially decoded tree is never returned.
func DecodeTree(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)
	var root Node
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &root, nil
}

// DecodeTreeBytes is DecodeTree over an in-memory document.
func DecodeTreeBytes(data []byte) (*Node, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &root, nil
}
