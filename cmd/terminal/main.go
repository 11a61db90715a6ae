package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/revu/internal/client"
	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	themeFlag := flag.String("theme", "", "UI theme (cyan, matrix, amber, cyberpunk, ice, dracula, fire)")
	listThemes := flag.Bool("list-themes", false, "List all available themes")
	fileFlag := flag.String("file", "", "Preload the editor with this file")
	serverFlag := flag.String("server", "", "Review proxy URL (overrides REVU_SERVER_URL)")
	flag.Parse()

	if *listThemes {
		fmt.Println("Available themes:")
		for _, theme := range ListThemes() {
			fmt.Printf("  - %s\n", theme)
		}
		return nil
	}

	theme := ThemeName(cfg.Client.Theme)
	if *themeFlag != "" {
		theme = ThemeName(*themeFlag)
	}
	if !isTheme(theme) {
		return fmt.Errorf("invalid theme '%s', use --list-themes to see available options", theme)
	}

	if *serverFlag != "" {
		cfg.Client.ServerURL = strings.TrimRight(*serverFlag, "/")
	}

	// The alternate screen owns stdout.
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "file"
	}
	log := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(log)

	code, fileName, err := loadCode(*fileFlag)
	if err != nil {
		return err
	}

	opts := options{
		code:         code,
		fileName:     fileName,
		instructions: config.ReviewInstructions(".", log),
		timeout:      cfg.Client.Timeout,
	}

	log.Info("RevU editor starting up", "server", cfg.Client.ServerURL, "theme", theme, "file", fileName)

	p := tea.NewProgram(initialModel(theme, client.New(cfg.Client), opts, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("error running program", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}
	log.Info("RevU editor shut down successfully")
	return nil
}
