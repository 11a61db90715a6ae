package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/revu/internal/core"
)

// reviewCmd sends one review request and reports the outcome as a message.
func reviewCmd(reviewer core.Reviewer, timeout time.Duration, code string, instructions []string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		content, err := reviewer.Review(ctx, &core.ReviewRequest{Code: code, Instructions: instructions})
		if err != nil {
			logger.Error("review request failed", "error", err)
			return reviewCompleteMsg{err: err}
		}
		logger.Info("review received", "chars", len(content), "duration", time.Since(start).Round(time.Millisecond))
		return reviewCompleteMsg{content: content}
	}
}

// loadCode returns the file contents to preload. Without a file the editor
// starts empty.
func loadCode(path string) (code, name string, err error) {
	if path == "" {
		return "", "main.js", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), filepath.Base(path), nil
}

var languages = map[string]string{
	".js":   "JavaScript",
	".jsx":  "JavaScript",
	".mjs":  "JavaScript",
	".ts":   "TypeScript",
	".tsx":  "TypeScript",
	".go":   "Go",
	".py":   "Python",
	".rb":   "Ruby",
	".java": "Java",
	".kt":   "Kotlin",
	".rs":   "Rust",
	".c":    "C",
	".h":    "C",
	".cpp":  "C++",
	".cs":   "C#",
	".php":  "PHP",
	".sh":   "Shell",
	".sql":  "SQL",
}

// languageFor names the language shown in the editor header.
func languageFor(name string) string {
	if lang, ok := languages[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return "Plain Text"
}
