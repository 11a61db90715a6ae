package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	out := Markdown("## Issues\n\nUse `let` instead of `var`.", 60)

	assert.Contains(t, out, "Issues")
	assert.Contains(t, out, "let")
}

func TestMarkdown_NarrowWidth(t *testing.T) {
	out := Markdown("plain text", 0)
	assert.Contains(t, out, "plain text")
}
