// Package render turns review markdown into terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const minWidth = 20

// Markdown renders text with glamour, wrapped to width. If rendering fails
// the text is returned unchanged so the review is always shown.
func Markdown(text string, width int) string {
	if width < minWidth {
		width = minWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
