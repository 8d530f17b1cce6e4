package nav

import (
	"github.com/vanderheijden86/canopy/pkg/model"
	"github.com/vanderheijden86/canopy/pkg/treepath"
)

// Crumb is one entry of a breadcrumb chain: a named ancestor and its
// absolute path.
type Crumb struct {
	Name string
	Path treepath.Path
}

// Breadcrumbs reconstructs the named ancestor chain from the true root to
// the target absolute path, extending one segment at a time while each
// successive index resolves. A stale path degrades gracefully: the chain
// stops at the last successfully resolved ancestor instead of failing.
//
// The result always starts with the root (empty path) and each entry's path
// is a proper prefix of the next's; its length is at most len(target)+1.
func Breadcrumbs(root *model.Node, target treepath.Path) []Crumb {
	if root == nil {
		return nil
	}
	crumbs := make([]Crumb, 0, len(target)+1)
	crumbs = append(crumbs, Crumb{Name: root.Name, Path: treepath.Path{}})

	node := root
	for i, idx := range target {
		if idx < 0 || idx >= len(node.Children) {
			break
		}
		node = node.Children[idx]
		crumbs = append(crumbs, Crumb{
			Name: node.Name,
			Path: treepath.Clip(target, i+1),
		})
	}
	return crumbs
}

// Breadcrumbs returns the chain for the state's selection when present,
// falling back to the focus.
func (e *Engine) Breadcrumbs(s State) []Crumb {
	target := s.Focus
	if s.Selected {
		target = s.Selection
	}
	return Breadcrumbs(e.tree, target)
}
