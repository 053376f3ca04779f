package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"jregfetch/internal/config"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	f := &flags{}
	fs := pflag.NewFlagSet("jregfetch", pflag.ContinueOnError)
	bindFlags(fs, f, config.Default())
	require.NoError(t, fs.Parse(args))

	return buildConfig(f, fs)
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	require.Equal(t, config.DefaultTopicURL, cfg.Crawler.TopicURL)
	require.Equal(t, "docs/yale_symposium", cfg.Output.Dir)
	require.False(t, cfg.Output.Overwrite)
	require.Equal(t, config.EngineBuiltin, cfg.Converter.Engine)
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jregfetch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
crawler:
  topic_url: "https://example.com/topic/from-file/"
output:
  dir: "from-file"
  format_tables: true
`), 0644))

	cfg, err := parse(t, "--config", path, "--out-dir", "from-flag", "--overwrite")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/topic/from-file/", cfg.Crawler.TopicURL)
	require.Equal(t, "from-flag", cfg.Output.Dir)
	require.True(t, cfg.Output.Overwrite)
	require.True(t, cfg.Output.FormatTables)
}

func TestBuildConfig_Invalid(t *testing.T) {
	_, err := parse(t, "--converter", "lynx")
	require.ErrorIs(t, err, config.ErrInvalidEngine)

	_, err = parse(t, "--concurrency", "0")
	require.ErrorIs(t, err, config.ErrInvalidConcurrency)
}

func TestExecute_ExitCodes(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/empty/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing</body></html>"))
	})
	mux.HandleFunc("/topic/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<h1 class="article-header__title"><a href="` + srv.URL + `/nc/test-post/">x</a></h1>`))
	})
	mux.HandleFunc("/nc/test-post/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<h1 class="headline-title">Test Post</h1>` +
			`<li class="meta-date">January 5, 2023</li>` +
			`<div class="pf-content"><p>Hello</p></div>`))
	})

	dir := t.TempDir()
	ctx := context.Background()

	require.Equal(t, 2, execute(ctx, []string{"--topic-url", srv.URL + "/empty/", "--out-dir", dir, "--log-level", "error"}))
	require.Equal(t, 1, execute(ctx, []string{"--converter", "lynx", "--out-dir", dir}))
	require.Equal(t, 1, execute(ctx, []string{"unexpected-arg"}))

	require.Equal(t, 0, execute(ctx, []string{"--topic-url", srv.URL + "/topic/", "--out-dir", dir, "--log-level", "error"}))
	_, err := os.Stat(filepath.Join(dir, "2023-01-05_test-post.en.md"))
	require.NoError(t, err)

	// a second run skips the existing file and still succeeds
	require.Equal(t, 0, execute(ctx, []string{"--topic-url", srv.URL + "/topic/", "--out-dir", dir, "--log-level", "error"}))
}
