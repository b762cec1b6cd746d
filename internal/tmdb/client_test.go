package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/3/", "test-token", WithRateLimit(0, 0))
}

func TestClientSendsAuthHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/configuration", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"images":{"base_url":"https://img/"}}`))
	})

	cfg, err := client.FetchConfiguration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://img/", cfg.ImageBaseURL)
}

func TestFetchMoviesPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/discover/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "3|7", q.Get("with_keywords"))
		assert.Equal(t, "12,28", q.Get("with_genres"))
		w.Write([]byte(`{
			"page": 2,
			"total_pages": 5,
			"results": [
				{"id": 1, "title": "A", "overview": "first", "popularity": 9.5, "backdrop_path": "/a.jpg"},
				{"id": 2, "title": "B", "overview": "second", "popularity": 1.25, "backdrop_path": null}
			]
		}`))
	})

	page, err := client.FetchMoviesPage(context.Background(), domain.Query{
		Page:    2,
		Filters: domain.Filters{Keywords: []int{7, 3, 7}, Genres: []int{28, 12}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.TotalPages)
	assert.True(t, page.HasMorePages())
	require.Len(t, page.Items, 2)
	assert.Equal(t, domain.MovieSummary{ID: 1, Title: "A", Overview: "first", Popularity: 9.5, BackdropPath: "/a.jpg"}, page.Items[0])
	assert.False(t, page.Items[1].HasBackdrop())
}

func TestFetchMoviesPageOmitsEmptyFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.False(t, q.Has("with_keywords"))
		assert.False(t, q.Has("with_genres"))
		w.Write([]byte(`{"page":1,"total_pages":0,"results":[]}`))
	})

	page, err := client.FetchMoviesPage(context.Background(), domain.Query{Page: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMorePages())
}

func TestFetchMoviesPageDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"page":`},
		{"wrong type", `{"page":"one","total_pages":1,"results":[]}`},
		{"missing results", `{"page":1,"total_pages":1}`},
		{"missing total pages", `{"page":1,"results":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchMoviesPage(context.Background(), domain.Query{Page: 1})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDecode)

			var decodeErr *domain.DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestClientNetworkErrors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key"}`))
		})

		_, err := client.FetchGenres(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetwork)
		assert.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("server error carries status message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status_code":43,"status_message":"Service offline"}`))
		})

		_, err := client.FetchGenres(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetwork)

		var netErr *domain.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
		assert.Contains(t, err.Error(), "Service offline")
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, "tok", WithRateLimit(0, 0))
		_, err := client.FetchConfiguration(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetwork)
	})

	t.Run("malformed base url", func(t *testing.T) {
		client := NewClient("://no-scheme", "tok", WithRateLimit(0, 0))
		_, err := client.FetchGenres(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetwork)

		var netErr *domain.NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, 0, netErr.StatusCode)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(server.URL, "tok", WithRateLimit(0, 0), WithTimeout(20*time.Millisecond))
		_, err := client.FetchGenres(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNetwork)
	})
}

func TestSearchKeywords(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/3/search/keyword", r.URL.Path)
		assert.Equal(t, "space opera", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"total_pages":1,"results":[{"id":161176,"name":"space opera"}]}`))
	})

	keywords, err := client.SearchKeywords(context.Background(), "space opera")
	require.NoError(t, err)
	assert.Equal(t, []domain.Keyword{{ID: 161176, Name: "space opera"}}, keywords)

	keywords, err = client.SearchKeywords(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, keywords)
	assert.Equal(t, 1, calls)
}

func TestFetchGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/genre/movie/list", r.URL.Path)
		w.Write([]byte(`{"genres":[{"id":28,"name":"Action"},{"id":12,"name":"Adventure"}]}`))
	})

	genres, err := client.FetchGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}, genres)
}

func TestFetchConfigurationMissingBaseURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"change_keys":[]}`))
	})

	_, err := client.FetchConfiguration(context.Background())
	assert.ErrorIs(t, err, domain.ErrDecode)
}

func TestRateLimitHonorsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"genres":[]}`))
	})
	WithRateLimit(0.001, 1)(client)

	_, err := client.FetchGenres(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = client.FetchGenres(ctx)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
