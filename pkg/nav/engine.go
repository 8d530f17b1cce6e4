// Package nav is the windowed-tree navigation engine.
//
// The engine holds only the immutable full tree and the configured window
// depth. All mutable navigation state lives in an explicit State value that
// is passed into and returned from each command handler, so every transition
// is a pure (state, command) -> state function with no dependence on any
// rendering framework. The hosting UI keeps the latest State and re-renders
// from it; concurrent triggers degrade to last-transition-wins because each
// command is atomic with respect to the read-only tree.
package nav

import (
	"fmt"

	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/treepath"
	"github.com/vanderheijden86/canopy/pkg/window"
)

// State is the full navigation state: the focus path, the logical selection,
// and the window derived from them. Focus and Selection are absolute paths
// into the full tree; the Window is rebuilt on every transition and its view
// nodes are never reused across states.
type State struct {
	Focus     treepath.Path
	Selection treepath.Path
	Selected  bool
	Window    *window.ViewNode
}

// Engine derives windows and applies navigation commands against one loaded
// tree. It carries no mutable state of its own.
type Engine struct {
	tree  *model.Node
	depth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWindowDepth sets the visible window depth (tiers below the focus).
// Values below zero are clamped to zero. The depth is fixed for the life of
// the engine; changing it means constructing a new engine and rebuilding
// state, exactly like a dataset swap.
func WithWindowDepth(d int) Option {
	return func(e *Engine) {
		if d < 0 {
			d = 0
		}
		e.depth = d
	}
}

// New validates the tree and returns an engine over it. An invalid tree is
// the one unrecoverable condition: it surfaces here, once, and no engine is
// returned.
func New(tree *model.Node, opts ...Option) (*Engine, error) {
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("navigation engine: %w", err)
	}
	e := &Engine{tree: tree, depth: window.DefaultDepth}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tree returns the full tree the engine was built over.
func (e *Engine) Tree() *model.Node { return e.tree }

// WindowDepth returns the configured window depth.
func (e *Engine) WindowDepth() int { return e.depth }

// Initial returns the starting state: focus at the true root, no selection.
func (e *Engine) Initial() State {
	return State{
		Focus:  treepath.Path{},
		Window: window.Build(e.tree, e.depth),
	}
}

// FocusNode resolves the state's focus against the full tree. The focus path
// always resolves for states produced by this engine over an unchanged tree.
func (e *Engine) FocusNode(s State) *model.Node {
	node, _ := treepath.Resolve(e.tree, s.Focus)
	return node
}

// SelectionView returns the view node currently representing the selection,
// or nil when nothing is selected. For states produced by the engine the
// selection, when present, always projects onto a visible node.
func (e *Engine) SelectionView(s State) *window.ViewNode {
	if !s.Selected || !treepath.HasPrefix(s.Selection, s.Focus) {
		return nil
	}
	rel := treepath.Slice(s.Selection, len(s.Focus))
	return window.FindByPath(s.Window, rel)
}

// Select marks the given view node of the current window as selected. The
// selection is recorded as an absolute path so it survives later re-rooting.
func (e *Engine) Select(s State, vn *window.ViewNode) State {
	if vn == nil {
		return s
	}
	s.Selection = treepath.Concat(s.Focus, vn.PathFromFocus)
	s.Selected = true
	return s
}

// ReRoot moves the focus to a node of the current window and rebuilds the
// window around it. A pending selection is preserved: its absolute path does
// not move, only the window around it does, and the visible selection is
// re-anchored onto the best still-visible representative. When
// nothing was selected the new focus itself becomes the selection, so a
// re-root always leaves exactly one node selected.
func (e *Engine) ReRoot(s State, vn *window.ViewNode) State {
	if vn == nil {
		return s
	}
	newFocus := treepath.Concat(s.Focus, vn.PathFromFocus)
	return e.focusPreservingSelection(s, newFocus)
}

// FocusAt moves the focus directly to an absolute path (breadcrumb click)
// and deliberately drops the selection: the ancestor itself becomes the
// natural new focus, not a selected descendant. A stale path that no longer
// fully resolves is truncated to its deepest resolvable prefix.
func (e *Engine) FocusAt(s State, abs treepath.Path) State {
	valid := deepestResolvable(e.tree, abs)
	focusNode, _ := treepath.Resolve(e.tree, valid)
	return State{
		Focus:  valid,
		Window: window.Build(focusNode, e.depth),
	}
}

// Reset returns to the initial state: focus at the true root, selection
// cleared. Reset is idempotent.
func (e *Engine) Reset(State) State {
	return e.Initial()
}

// focusPreservingSelection rebuilds the window at newFocus and re-anchors
// the selection.
func (e *Engine) focusPreservingSelection(s State, newFocus treepath.Path) State {
	focusNode, ok := treepath.Resolve(e.tree, newFocus)
	if !ok {
		// Only reachable through a stale view node; degrade like FocusAt.
		return e.FocusAt(s, newFocus)
	}

	next := State{
		Focus:  newFocus,
		Window: window.Build(focusNode, e.depth),
	}

	target := s.Selection
	if !s.Selected {
		target = newFocus
	}
	anchored := reanchor(next.Window, newFocus, target, e.depth)
	next.Selection = treepath.Concat(newFocus, anchored.PathFromFocus)
	next.Selected = true
	return next
}

// reanchor finds the view node representing target (an absolute path) in the
// freshly built window: the exact node when visible, otherwise its deepest
// visible ancestor, with the window root as the final fallback. It never
// fails.
func reanchor(w *window.ViewNode, focus, target treepath.Path, maxDepth int) *window.ViewNode {
	if !treepath.HasPrefix(target, focus) {
		// Target lies outside the focused subtree entirely; the window root
		// is the closest thing to an ancestor the window can offer.
		return w
	}
	rel := treepath.Clip(treepath.Slice(target, len(focus)), maxDepth)

	// Descend toward the target as far as the window allows. Stopping early
	// yields the longest visible prefix of the target's relative path, which
	// is its deepest visible ancestor; a full descent is the exact match.
	node := w
	for _, idx := range rel {
		if idx < 0 || idx >= len(node.Children) {
			break
		}
		node = node.Children[idx]
	}
	return node
}

// deepestResolvable truncates abs to the longest prefix that still resolves
// in the tree.
func deepestResolvable(root *model.Node, abs treepath.Path) treepath.Path {
	node := root
	for i, idx := range abs {
		if node == nil || idx < 0 || idx >= len(node.Children) {
			return treepath.Clip(abs, i)
		}
		node = node.Children[idx]
	}
	return treepath.Clone(abs)
}
