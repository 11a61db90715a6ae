package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/revu/internal/client"
	"github.com/sevigo/revu/internal/llm"
	"github.com/sevigo/revu/internal/render"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Print the reviewer persona sent with every review",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		var persona string
		if direct {
			pm, err := llm.NewPromptManager()
			if err != nil {
				return err
			}
			persona, err = pm.Render(llm.SystemPrompt, nil)
			if err != nil {
				return err
			}
		} else {
			persona, err = client.New(cfg.Client).Persona(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch persona: %w", err)
			}
		}

		if raw {
			fmt.Fprintln(cmd.OutOrStdout(), persona)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), render.Markdown(persona, width))
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	personaCmd.Flags().BoolVar(&direct, "direct", false, "Render the embedded persona without contacting the proxy")
	personaCmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown without rendering")
	personaCmd.Flags().IntVarP(&width, "width", "w", 100, "Wrap width for rendered output")
	rootCmd.AddCommand(personaCmd)
}
