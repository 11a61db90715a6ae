package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sevigo/revu/internal/client"
	"github.com/sevigo/revu/internal/core"
)

var (
	historyJSON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived reviews, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		reviews, err := client.New(cfg.Client).History(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}

		if historyJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reviews)
		}
		return printHistory(cmd.OutOrStdout(), reviews)
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the reviews as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Number of reviews to list (server default 20, max 100)")
	rootCmd.AddCommand(historyCmd)
}

func printHistory(out io.Writer, reviews []core.Review) error {
	if len(reviews) == 0 {
		dimColor.Fprintln(out, "No reviews archived yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODEL\tCODE\tSUMMARY")
	for _, r := range reviews {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Provider+"/"+r.Model,
			shortSHA(r.CodeSHA),
			summaryLine(r.Content, 60),
		)
	}
	return w.Flush()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

// summaryLine returns the first non-empty line of a review, without markdown
// heading markers, cut to limit runes.
func summaryLine(content string, limit int) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#>*- "))
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > limit {
			return string(runes[:limit-1]) + "…"
		}
		return line
	}
	return ""
}
