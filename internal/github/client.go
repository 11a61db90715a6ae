// Package github fetches source files from GitHub for review.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

var ErrInvalidFileRef = errors.New("invalid GitHub file reference")

// FileRef points at one file in a repository. An empty Ref means the
// default branch.
type FileRef struct {
	Owner string
	Repo  string
	Path  string
	Ref   string
}

func (f FileRef) String() string {
	s := f.Owner + "/" + f.Repo + "/" + f.Path
	if f.Ref != "" {
		s += "@" + f.Ref
	}
	return s
}

// ParseFileRef accepts "owner/repo/path/to/file[@ref]" or a
// https://github.com/owner/repo/blob/ref/path URL.
func ParseFileRef(s string) (FileRef, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return parseBlobURL(s)
	}

	var ref string
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s, ref = s[:i], s[i+1:]
		if ref == "" {
			return FileRef{}, fmt.Errorf("%w: empty ref", ErrInvalidFileRef)
		}
	}

	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || strings.Trim(parts[2], "/") == "" {
		return FileRef{}, fmt.Errorf("%w: expected owner/repo/path[@ref], got %q", ErrInvalidFileRef, s)
	}
	return FileRef{Owner: parts[0], Repo: parts[1], Path: strings.Trim(parts[2], "/"), Ref: ref}, nil
}

func parseBlobURL(raw string) (FileRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return FileRef{}, fmt.Errorf("%w: %w", ErrInvalidFileRef, err)
	}
	if u.Host != "github.com" {
		return FileRef{}, fmt.Errorf("%w: unsupported host %q", ErrInvalidFileRef, u.Host)
	}

	// owner/repo/blob/ref/path...
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 5)
	if len(parts) != 5 || parts[2] != "blob" {
		return FileRef{}, fmt.Errorf("%w: expected a /blob/ URL, got %q", ErrInvalidFileRef, raw)
	}
	return FileRef{Owner: parts[0], Repo: parts[1], Ref: parts[3], Path: parts[4]}, nil
}

// Client reads repository contents.
type Client interface {
	GetFileContent(ctx context.Context, ref FileRef) (string, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a Personal Access Token.
// An empty token gives an anonymous client limited to public repositories.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	if token == "" {
		return &gitHubClient{client: github.NewClient(nil), logger: logger}
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetFileContent downloads a single file and returns its decoded text.
func (g *gitHubClient) GetFileContent(ctx context.Context, ref FileRef) (string, error) {
	var opts *github.RepositoryContentGetOptions
	if ref.Ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref.Ref}
	}

	file, dir, _, err := g.client.Repositories.GetContents(ctx, ref.Owner, ref.Repo, ref.Path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", ref, err)
	}
	if file == nil {
		g.logger.Warn("GitHub path is not a file", "ref", ref.String(), "entries", len(dir))
		return "", fmt.Errorf("%s is a directory, not a file", ref)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", ref, err)
	}

	g.logger.Debug("fetched file from GitHub", "ref", ref.String(), "bytes", len(content))
	return content, nil
}
