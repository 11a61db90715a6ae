package llm

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"text/template"
)

//go:embed prompts/*.prompt
var promptFiles embed.FS

// PromptKey is the base name of a file under prompts/.
type PromptKey string

const (
	SystemPrompt     PromptKey = "system"
	CodeReviewPrompt PromptKey = "code_review"
)

// CodeReviewData is the data rendered into the code_review prompt.
type CodeReviewData struct {
	Code         string
	Instructions []string
}

// PromptManager renders the embedded prompt templates.
type PromptManager struct {
	templates map[PromptKey]*template.Template
}

// NewPromptManager parses every embedded prompt and fails when one the
// reviewer depends on is missing.
func NewPromptManager() (*PromptManager, error) {
	files, err := fs.Glob(promptFiles, "prompts/*.prompt")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded prompts: %w", err)
	}

	pm := &PromptManager{templates: make(map[PromptKey]*template.Template, len(files))}
	for _, file := range files {
		raw, err := promptFiles.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded prompt %s: %w", file, err)
		}
		key := PromptKey(strings.TrimSuffix(path.Base(file), ".prompt"))
		if err := pm.add(key, string(raw)); err != nil {
			return nil, fmt.Errorf("failed to parse prompt %s: %w", file, err)
		}
	}

	for _, key := range []PromptKey{SystemPrompt, CodeReviewPrompt} {
		if _, ok := pm.templates[key]; !ok {
			return nil, fmt.Errorf("prompt '%s' is not embedded", key)
		}
	}
	return pm, nil
}

func (pm *PromptManager) add(key PromptKey, text string) error {
	// Editors leave a trailing newline that must not reach the model.
	text = strings.TrimRight(text, "\n")
	tmpl, err := template.New(string(key)).Option("missingkey=error").Parse(text)
	if err != nil {
		return err
	}
	pm.templates[key] = tmpl
	return nil
}

// Render executes the template stored under key.
func (pm *PromptManager) Render(key PromptKey, data any) (string, error) {
	tmpl, ok := pm.templates[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt '%s'", key)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt '%s': %w", key, err)
	}
	return sb.String(), nil
}
