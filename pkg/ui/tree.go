package ui

import (
	"strings"

	"github.com/vanderheijden86/canopy/pkg/window"
)

const (
	glyphBranch = "▾"
	glyphHidden = "▸"
	glyphLeaf   = "•"
	hiddenMark  = " …"
)

// renderTreePane renders the flattened window rows, highlighting the cursor
// row. Rows outside [top, top+height) are scrolled out.
func renderTreePane(rows []*window.ViewNode, cursor, top, height, width int, showWeights bool, t Theme) string {
	if len(rows) == 0 {
		return t.MutedText.Render("(empty window)")
	}

	end := top + height
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for i := top; i < end; i++ {
		vn := rows[i]
		line := renderRow(vn, width, showWeights, t, i == cursor)
		b.WriteString(line)
		if i != end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderRow(vn *window.ViewNode, width int, showWeights bool, t Theme, selected bool) string {
	indent := strings.Repeat("  ", vn.Depth())

	glyph := glyphLeaf
	style := t.LeafText
	if len(vn.Children) > 0 {
		glyph = glyphBranch
		style = t.BranchText
	} else if vn.HasHidden {
		glyph = glyphHidden
		style = t.BranchText
	}

	var weight string
	if showWeights && vn.Value != nil {
		weight = " " + FormatWeight(*vn.Value)
	}

	var hidden string
	if vn.HasHidden {
		hidden = hiddenMark
	}

	nameWidth := width - len(indent) - 4
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := truncate(vn.Name, nameWidth)

	if selected {
		return t.Selected.Render(indent + glyph + " " + name + hidden + weight)
	}

	line := indent + glyph + " " + style.Render(name)
	if hidden != "" {
		line += t.HiddenMark.Render(hidden)
	}
	if weight != "" {
		line += t.WeightText.Render(weight)
	}
	return line
}

// clampScroll adjusts the scroll offset so the cursor stays visible.
func clampScroll(cursor, top, height, total int) int {
	if height <= 0 {
		return 0
	}
	if cursor < top {
		top = cursor
	}
	if cursor >= top+height {
		top = cursor - height + 1
	}
	if top > total-height {
		top = total - height
	}
	if top < 0 {
		top = 0
	}
	return top
}
