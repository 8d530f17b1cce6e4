package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/canopy/pkg/nav"
)

// renderDetailPane renders the aggregate detail block for the selected node.
// Notes in the node metadata are markdown and go through glamour when a
// renderer is available.
func renderDetailPane(d nav.Detail, width int, md *glamour.TermRenderer, t Theme) string {
	var b strings.Builder

	kv := func(key, value string) {
		b.WriteString(t.DetailKey.Render(padRight(key, 9)))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	b.WriteString(t.Base.Bold(true).Render(truncate(d.Name, width-4)))
	b.WriteString("\n")
	b.WriteString(t.MutedText.Render(d.Path.String()))
	b.WriteString("\n\n")

	if d.Value != nil {
		kv("weight", FormatWeight(*d.Value))
	}
	kv("subtree", FormatWeight(d.SumWeights))
	kv("leaves", fmt.Sprintf("%d", d.LeafCount))
	kv("nodes", fmt.Sprintf("%d", d.NodeCount))
	kv("children", fmt.Sprintf("%d", d.ChildCount))

	if d.Weights.Leaves > 1 {
		b.WriteByte('\n')
		b.WriteString(t.DetailKey.Render("leaf weights"))
		b.WriteByte('\n')
		kv("  mean", FormatWeight(d.Weights.Mean))
		kv("  median", FormatWeight(d.Weights.Median))
		kv("  stddev", FormatWeight(d.Weights.StdDev))
		kv("  min/max", FormatWeight(d.Weights.Min)+" / "+FormatWeight(d.Weights.Max))
	}

	if d.Meta != nil {
		b.WriteByte('\n')
		if d.Meta.Owner != "" {
			kv("owner", d.Meta.Owner)
		}
		if d.Meta.Version != "" {
			kv("version", d.Meta.Version)
		}
		for _, req := range d.Meta.Requirements {
			kv("req", req.ID+": "+truncate(req.Text, width-16))
		}
		if d.Meta.Notes != "" {
			b.WriteByte('\n')
			b.WriteString(renderNotes(d.Meta.Notes, md))
		}
	}

	return t.DetailPane.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderNotes(notes string, md *glamour.TermRenderer) string {
	if md == nil {
		return notes
	}
	out, err := md.Render(notes)
	if err != nil {
		return notes
	}
	// Strip the excess whitespace glamour adds around the body.
	return strings.TrimSpace(out)
}
