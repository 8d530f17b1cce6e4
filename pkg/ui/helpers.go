package ui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// truncateWidth truncates a string to max visual width (cells), adding suffix
// if needed. Uses go-runewidth to handle wide characters correctly.
func truncateWidth(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// truncate truncates string s to maxWidth cells with an ellipsis.
func truncate(s string, maxWidth int) string {
	return truncateWidth(s, maxWidth, "…")
}

// padRight pads string s with spaces on the right to length width.
func padRight(s string, width int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount >= width {
		return s
	}
	return s + strings.Repeat(" ", width-runeCount)
}

// FormatWeight renders a weight compactly: integers without decimals, large
// values with a k/M suffix.
func FormatWeight(w float64) string {
	abs := math.Abs(w)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", w/1e6)
	case abs >= 1e4:
		return fmt.Sprintf("%.1fk", w/1e3)
	case w == math.Trunc(w):
		return fmt.Sprintf("%.0f", w)
	default:
		return fmt.Sprintf("%.2f", w)
	}
}
