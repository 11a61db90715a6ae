package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/revu/internal/client"
	"github.com/sevigo/revu/internal/config"
	"github.com/sevigo/revu/internal/core"
	"github.com/sevigo/revu/internal/github"
	"github.com/sevigo/revu/internal/render"
	"github.com/sevigo/revu/internal/wire"
)

var (
	githubRefs []string
	direct     bool
	raw        bool
	parallel   int
	width      int
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [files...]",
	Short: "Review source files, stdin or GitHub files",
	Long: `Send one or more snippets to the reviewer and print the markdown feedback.

Use "-" to read from stdin. Files are reviewed concurrently and printed in the
order they were given.

Examples:
  revu-cli review main.js
  cat handler.go | revu-cli review -
  revu-cli review --github octo/app/src/main.js@dev
  revu-cli review --direct --raw a.go b.go`,
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringSliceVarP(&githubRefs, "github", "g", nil, "GitHub file as owner/repo/path[@ref] or a blob URL (repeatable)")
	reviewCmd.Flags().BoolVar(&direct, "direct", false, "Call the model in-process instead of the review proxy")
	reviewCmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown without rendering")
	reviewCmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "Maximum reviews in flight")
	reviewCmd.Flags().IntVarP(&width, "width", "w", 100, "Wrap width for rendered output")
	rootCmd.AddCommand(reviewCmd)
}

// snippet is one unit of code to review.
type snippet struct {
	name string
	code string
}

type reviewResult struct {
	review   string
	err      error
	duration time.Duration
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	snippets, err := collectSnippets(ctx, cfg, args, cmd.InOrStdin(), log)
	if err != nil {
		return err
	}
	if len(snippets) == 0 {
		return errors.New("nothing to review: pass files, \"-\" for stdin, or --github")
	}

	reviewer, err := newReviewer(ctx, cfg)
	if err != nil {
		return err
	}

	instructions := config.ReviewInstructions(".", log)
	results := reviewAll(ctx, reviewer, snippets, instructions, parallel)

	failed := 0
	out := cmd.OutOrStdout()
	for i, s := range snippets {
		res := results[i]
		titleColor.Fprintf(out, "\n📄 %s\n", s.name)
		if res.err != nil {
			failed++
			errorColor.Fprintf(out, "   %s\n", core.FallbackReview)
			dimColor.Fprintf(out, "   %v\n", res.err)
			continue
		}
		dimColor.Fprintf(out, "   reviewed in %s\n\n", res.duration.Round(time.Millisecond))
		if raw {
			fmt.Fprintln(out, res.review)
		} else {
			fmt.Fprintln(out, render.Markdown(res.review, width))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reviews failed", failed, len(snippets))
	}
	successColor.Fprintf(out, "\n✓ %d review(s) complete\n", len(snippets))
	return nil
}

func newReviewer(ctx context.Context, cfg *config.Config) (core.Reviewer, error) {
	if direct {
		reviewer, err := wire.InitializeReviewer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize reviewer: %w", err)
		}
		return reviewer, nil
	}
	return client.New(cfg.Client), nil
}

func collectSnippets(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, log *slog.Logger) ([]snippet, error) {
	snippets := make([]snippet, 0, len(args)+len(githubRefs))
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			snippets = append(snippets, snippet{name: "stdin", code: string(data)})
			continue
		}
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		snippets = append(snippets, snippet{name: filepath.Clean(arg), code: string(data)})
	}

	if len(githubRefs) == 0 {
		return snippets, nil
	}

	gh := github.NewPATClient(ctx, cfg.GitHub.Token, log)
	for _, r := range githubRefs {
		ref, err := github.ParseFileRef(r)
		if err != nil {
			return nil, err
		}
		code, err := gh.GetFileContent(ctx, ref)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, snippet{name: ref.String(), code: code})
	}
	return snippets, nil
}

// reviewAll reviews every snippet with at most limit requests in flight.
// A failed review is recorded in its slot and does not cancel the others.
func reviewAll(ctx context.Context, reviewer core.Reviewer, snippets []snippet, instructions []string, limit int) []reviewResult {
	results := make([]reviewResult, len(snippets))

	g, gctx := errgroup.WithContext(ctx)
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, s := range snippets {
		g.Go(func() error {
			start := time.Now()
			review, err := reviewer.Review(gctx, &core.ReviewRequest{Code: s.code, Instructions: instructions})
			results[i] = reviewResult{review: review, err: err, duration: time.Since(start)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
