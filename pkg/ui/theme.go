package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the adaptive colors and pre-computed styles used by every
// pane. Styles are created once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Node kinds
	Branch lipgloss.AdaptiveColor
	Leaf   lipgloss.AdaptiveColor
	Hidden lipgloss.AdaptiveColor

	// UI elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base       lipgloss.Style
	Selected   lipgloss.Style
	Header     lipgloss.Style
	Crumb      lipgloss.Style
	CrumbSep   lipgloss.Style
	BranchText lipgloss.Style
	LeafText   lipgloss.Style
	HiddenMark lipgloss.Style
	WeightText lipgloss.Style
	MutedText  lipgloss.Style
	StatusBar  lipgloss.Style
	DetailPane lipgloss.Style
	DetailKey  lipgloss.Style
}

// DefaultTheme returns the standard dark-first adaptive theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#1B7340", Dark: "#50FA7B"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Branch: lipgloss.AdaptiveColor{Light: "#0B5394", Dark: "#8BE9FD"},
		Leaf:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Hidden: lipgloss.AdaptiveColor{Light: "#888888", Dark: "#6272A4"},

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Crumb = r.NewStyle().Foreground(t.Branch).Bold(true)
	t.CrumbSep = r.NewStyle().Foreground(t.Muted)
	t.BranchText = r.NewStyle().Foreground(t.Branch)
	t.LeafText = r.NewStyle().Foreground(t.Leaf)
	t.HiddenMark = r.NewStyle().Foreground(t.Hidden)
	t.WeightText = r.NewStyle().Foreground(t.Subtext)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.StatusBar = r.NewStyle().Foreground(t.Subtext)
	t.DetailPane = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.DetailKey = r.NewStyle().Foreground(t.Secondary).Bold(true)

	return t
}
