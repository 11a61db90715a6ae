package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/logger"
)

var (
	serverURL   string
	githubToken string
)

var rootCmd = &cobra.Command{
	Use:   "revu-cli",
	Short: "revu-cli sends code to the RevU review proxy from the command line.",
	Long: `A CLI for RevU.ai. It reviews local files, stdin or GitHub files through the
review proxy (or directly against the model with --direct) and prints the
markdown feedback.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Review proxy URL (default REVU_SERVER_URL)")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub Token")

	for key, flag := range map[string]string{
		"SERVER_URL":   "server",
		"GITHUB_TOKEN": "github-token",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("REVU")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig merges the shared configuration with CLI flags and REVU_* overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	if v := viper.GetString("SERVER_URL"); v != "" {
		cfg.Client.ServerURL = strings.TrimRight(v, "/")
	}
	if v := viper.GetString("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}

	// stdout carries the reviews.
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.Logging.Level = "warn"
	}
	return cfg, logger.NewLogger(cfg.Logging, nil), nil
}
