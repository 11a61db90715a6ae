package core

// ReviewConfig represents the structure of the .revu.yml file.
type ReviewConfig struct {
	// Custom instructions for the LLM prompt.
	CustomInstructions []string `yaml:"custom_instructions"`
}

// DefaultReviewConfig returns a config with default values.
func DefaultReviewConfig() *ReviewConfig {
	return &ReviewConfig{
		CustomInstructions: []string{},
	}
}
