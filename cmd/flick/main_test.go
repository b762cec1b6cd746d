package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv points configuration at a temporary home and the given API
func setupEnv(t *testing.T, apiURL, token string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FLICK_API_URL", apiURL)
	t.Setenv("FLICK_API_TOKEN", token)
	t.Setenv("FLICK_API_RATE_LIMIT", "0")
	t.Setenv("FLICK_LOGGING_FILE", filepath.Join(home, "flick.log"))
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/3/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}]}`))
	})
	mux.HandleFunc("/3/search/keyword", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "time travel", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":4379,"name":"time travel"}]}`))
	})
	mux.HandleFunc("/3/discover/movie", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "28", r.URL.Query().Get("with_genres"))
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"page":1,"total_pages":2,"results":[{"id":1,"title":"Heat","popularity":50.5,"backdrop_path":null}]}`))
		default:
			w.Write([]byte(`{"page":2,"total_pages":2,"results":[{"id":2,"title":"Ronin","popularity":20,"backdrop_path":null}]}`))
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "flick dev\n", out)
}

func TestGenresCommand(t *testing.T) {
	server := newAPIServer(t)
	setupEnv(t, server.URL+"/3", "token")

	out, err := execute(t, "genres")
	require.NoError(t, err)
	assert.Contains(t, out, "28  Action")
	assert.Contains(t, out, "878  Science Fiction")
}

func TestKeywordsCommand(t *testing.T) {
	server := newAPIServer(t)
	setupEnv(t, server.URL+"/3", "token")

	out, err := execute(t, "keywords", "time", "travel")
	require.NoError(t, err)
	assert.Contains(t, out, "4379  time travel")
}

func TestDiscoverCommand(t *testing.T) {
	server := newAPIServer(t)
	setupEnv(t, server.URL+"/3", "token")

	out, err := execute(t, "discover", "--genre", "28", "--pages", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "Ronin")

	out, err = execute(t, "discover", "--genre", "28")
	require.NoError(t, err)
	assert.Contains(t, out, "Heat")
	assert.NotContains(t, out, "Ronin")
}

func TestCommandsRequireToken(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1/3", "")

	_, err := execute(t, "genres")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Contains(t, err.Error(), "no API token")
}

func TestLoginLogoutCommands(t *testing.T) {
	home := setupEnv(t, "http://127.0.0.1:1/3", "token")

	out, err := execute(t, "login", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Logged in as alice\n", out)

	data, err := os.ReadFile(filepath.Join(home, ".config", "flick", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "alice")

	out, err = execute(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, "Logged out.\n", out)

	_, err = execute(t, "login", "  ")
	assert.Error(t, err)
}
