package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptManager_Render(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   PromptKey
		data  any
		check func(t *testing.T, out string)
	}{
		{
			name: "Persona is trimmed of the trailing newline",
			key:  SystemPrompt,
			check: func(t *testing.T, out string) {
				assert.True(t, strings.HasPrefix(out, "**AI System Instruction: Senior Code Reviewer"))
				assert.True(t, strings.HasSuffix(out, "**Adjustments needed? 🚀**"))
			},
		},
		{
			name: "Code without instructions is sent verbatim",
			key:  CodeReviewPrompt,
			data: CodeReviewData{Code: "function sum(){ return 1 + 1 }\n"},
			check: func(t *testing.T, out string) {
				assert.Equal(t, "function sum(){ return 1 + 1 }\n", out)
			},
		},
		{
			name: "Instructions are listed after the code",
			key:  CodeReviewPrompt,
			data: CodeReviewData{
				Code:         "x := 1",
				Instructions: []string{"Prefer early returns", "Flag unchecked errors"},
			},
			check: func(t *testing.T, out string) {
				want := "x := 1\n\n**Additional instructions from the author:**\n- Prefer early returns\n- Flag unchecked errors"
				assert.Equal(t, want, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := pm.Render(tt.key, tt.data)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Render("hyde_code", nil)
	assert.ErrorContains(t, err, "unknown prompt 'hyde_code'")
}

func TestPromptManager_MissingField(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)
	require.NoError(t, pm.add("greeting", "Hello {{.Name}}\n\n"))

	out, err := pm.Render("greeting", map[string]string{"Name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", out)

	_, err = pm.Render("greeting", map[string]string{})
	assert.Error(t, err)
}

func TestPromptManager_InvalidTemplate(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	assert.Error(t, pm.add("broken", "{{.Code"))
	_, err = pm.Render("broken", nil)
	assert.Error(t, err)
}
