// Package treepath implements child-index path addressing into a full tree.
//
// A Path is an ordered sequence of non-negative child indices; path[i] is the
// index to descend at depth i. The empty path denotes whatever node the path
// is resolved relative to. Paths resolved from the true root are "absolute"
// and identify a node for the whole session; paths resolved from the current
// focus are "relative" and only meaningful together with the focus's own
// absolute path (absolute = focus + relative).
//
// Everything here is a total, side-effect-free function over index slices;
// node content is never inspected beyond the children array.
package treepath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vanderheijden86/canopy/pkg/model"
)

// Path addresses a node by successive child indices.
type Path []int

// Resolve descends root by the indices in p. The boolean is false when any
// index is out of range, including descending past a leaf. Resolution failure
// is a designed degradation path, not an error: callers truncate or fall back.
func Resolve(root *model.Node, p Path) (*model.Node, bool) {
	if root == nil {
		return nil, false
	}
	node := root
	for _, idx := range p {
		if idx < 0 || idx >= len(node.Children) {
			return nil, false
		}
		node = node.Children[idx]
	}
	return node, true
}

// Concat joins prefix and suffix into a new path. No bounds checking is done;
// callers are responsible for validity. The result never aliases its inputs.
func Concat(prefix, suffix Path) Path {
	out := make(Path, 0, len(prefix)+len(suffix))
	out = append(out, prefix...)
	return append(out, suffix...)
}

// Clip truncates p to at most maxLen entries, preserving prefix order. A
// negative maxLen clips to the empty path. The result shares no storage with p.
func Clip(p Path, maxLen int) Path {
	if maxLen < 0 {
		maxLen = 0
	}
	if maxLen > len(p) {
		maxLen = len(p)
	}
	out := make(Path, maxLen)
	copy(out, p[:maxLen])
	return out
}

// Equal reports order-preserving equality of two index sequences.
func Equal(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p starts with prefix. Every path has the empty
// path as a prefix.
func HasPrefix(p, prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Slice returns the tail of p after dropping the first n entries, as a copy.
// Used to turn an absolute path into a focus-relative one.
func Slice(p Path, n int) Path {
	if n < 0 {
		n = 0
	}
	if n >= len(p) {
		return Path{}
	}
	out := make(Path, len(p)-n)
	copy(out, p[n:])
	return out
}

// Clone returns an independent copy of p.
func Clone(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// String renders p as slash-separated indices ("0/2/1"); the empty path
// renders as "/". The format round-trips through Parse.
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// Parse is the inverse of String. It rejects negative and non-numeric
// segments.
func Parse(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	out := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}
		if idx < 0 {
			return nil, fmt.Errorf("negative path segment %d", idx)
		}
		out = append(out, idx)
	}
	return out, nil
}
