package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/revu/internal/core"
)

// ReviewConfigFile is looked up in the working directory of the clients.
const ReviewConfigFile = ".revu.yml"

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParsing  = errors.New("config parsing failed")
)

// LoadReviewConfig loads and parses the .revu.yml file from a directory.
// A missing file yields the default config together with ErrConfigNotFound.
func LoadReviewConfig(dir string) (*core.ReviewConfig, error) {
	configPath := filepath.Join(dir, ReviewConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultReviewConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", ReviewConfigFile, err)
	}

	config := core.DefaultReviewConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	return config, nil
}

// ReviewInstructions returns the custom instructions from the .revu.yml in
// dir. A missing or broken file yields no instructions.
func ReviewInstructions(dir string, logger *slog.Logger) []string {
	reviewCfg, err := LoadReviewConfig(dir)
	switch {
	case errors.Is(err, ErrConfigNotFound):
		logger.Debug("no review config found, using defaults", "file", ReviewConfigFile)
	case err != nil:
		logger.Warn("failed to load review config, using defaults", "file", ReviewConfigFile, "error", err)
	}
	if reviewCfg == nil {
		return nil
	}
	return reviewCfg.CustomInstructions
}
