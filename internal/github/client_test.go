package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileRef(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    FileRef
		wantErr bool
	}{
		{
			name:  "Path without ref",
			input: "octo/app/src/main.js",
			want:  FileRef{Owner: "octo", Repo: "app", Path: "src/main.js"},
		},
		{
			name:  "Path with ref",
			input: "octo/app/main.go@v1.2.0",
			want:  FileRef{Owner: "octo", Repo: "app", Path: "main.go", Ref: "v1.2.0"},
		},
		{
			name:  "Blob URL",
			input: "https://github.com/octo/app/blob/main/internal/server/router.go",
			want:  FileRef{Owner: "octo", Repo: "app", Path: "internal/server/router.go", Ref: "main"},
		},
		{name: "Missing path", input: "octo/app", wantErr: true},
		{name: "Empty ref", input: "octo/app/main.go@", wantErr: true},
		{name: "Tree URL", input: "https://github.com/octo/app/tree/main/src", wantErr: true},
		{name: "Other host", input: "https://gitlab.com/octo/app/blob/main/a.go", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFileRef(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFileRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFileRef_String(t *testing.T) {
	assert.Equal(t, "o/r/a/b.go@dev", FileRef{Owner: "o", Repo: "r", Path: "a/b.go", Ref: "dev"}.String())
	assert.Equal(t, "o/r/a.go", FileRef{Owner: "o", Repo: "r", Path: "a.go"}.String())
}

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	gh := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = base
	return NewGitHubClient(gh, slog.New(slog.DiscardHandler))
}

func TestGetFileContent(t *testing.T) {
	const source = "const a = 1;\n"

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/app/contents/src/main.js", r.URL.Path)
		assert.Equal(t, "dev", r.URL.Query().Get("ref"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","path":"src/main.js","content":%q}`,
			base64.StdEncoding.EncodeToString([]byte(source)))
	})

	got, err := c.GetFileContent(context.Background(), FileRef{Owner: "octo", Repo: "app", Path: "src/main.js", Ref: "dev"})
	require.NoError(t, err)
	assert.Equal(t, source, got)
}

func TestGetFileContent_Directory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"type":"file","name":"a.go","path":"src/a.go"}]`))
	})

	_, err := c.GetFileContent(context.Background(), FileRef{Owner: "octo", Repo: "app", Path: "src"})
	assert.ErrorContains(t, err, "is a directory")
}

func TestGetFileContent_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := c.GetFileContent(context.Background(), FileRef{Owner: "octo", Repo: "app", Path: "missing.go"})
	assert.Error(t, err)
}
