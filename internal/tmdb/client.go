package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/flick/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRateLimit = 4 // TMDB allows ~40 requests per 10 seconds
	defaultBurst     = 8
	userAgent        = "Flick/1.0"
)

// Client implements domain.CatalogRepository over the TMDB v3 HTTP API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit sets the client-side request rate. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new catalog API client.
// baseURL includes the API version segment, e.g. https://api.themoviedb.org/3
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(defaultRateLimit, defaultBurst),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an authenticated GET request and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &domain.NetworkError{Op: path, Err: err}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.NetworkError{Op: path, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "path", path, "query", query.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "path", path, "error", err)
		return nil, &domain.NetworkError{Op: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Op: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, &domain.NetworkError{Op: path, StatusCode: resp.StatusCode, Err: domain.ErrAuthFailed}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("catalog request error", "path", path, "status", resp.StatusCode, "body", string(body))
		return nil, &domain.NetworkError{Op: path, StatusCode: resp.StatusCode, Err: statusError(body)}
	}

	return body, nil
}

// statusError extracts the API's status message from a failure body
func statusError(body []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusMessage != "" {
		return errors.New(apiErr.StatusMessage)
	}
	return errors.New("unexpected status")
}

// decode unmarshals body into dest, reporting shape mismatches as DecodeError
func decode(op string, body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}

// FetchConfiguration returns the image base URL
func (c *Client) FetchConfiguration(ctx context.Context) (domain.Configuration, error) {
	const op = "/configuration"

	body, err := c.doRequest(ctx, op, nil)
	if err != nil {
		return domain.Configuration{}, err
	}

	var resp configurationResponse
	if err := decode(op, body, &resp); err != nil {
		return domain.Configuration{}, err
	}
	if resp.Images == nil || resp.Images.BaseURL == "" {
		return domain.Configuration{}, &domain.DecodeError{Op: op, Err: errors.New("missing images.base_url")}
	}

	return domain.Configuration{ImageBaseURL: resp.Images.BaseURL}, nil
}

// FetchMoviesPage returns one page of discover results
func (c *Client) FetchMoviesPage(ctx context.Context, q domain.Query) (domain.PageResult, error) {
	const op = "/discover/movie"

	body, err := c.doRequest(ctx, op, discoverQuery(q))
	if err != nil {
		return domain.PageResult{}, err
	}

	var resp pageResponse[movieDTO]
	if err := decode(op, body, &resp); err != nil {
		return domain.PageResult{}, err
	}
	if resp.Results == nil || resp.Page == nil || resp.TotalPages == nil {
		return domain.PageResult{}, &domain.DecodeError{Op: op, Err: errors.New("missing results, page or total_pages")}
	}

	return domain.PageResult{
		Items:      MapMovies(*resp.Results),
		Page:       *resp.Page,
		TotalPages: *resp.TotalPages,
	}, nil
}

// discoverQuery encodes a query the way the discover endpoint expects:
// keywords are OR-ed with "|", genres AND-ed with ",".
func discoverQuery(q domain.Query) url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	filters := q.Filters.Normalize()

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if len(filters.Keywords) > 0 {
		query.Set("with_keywords", joinIDs(filters.Keywords, "|"))
	}
	if len(filters.Genres) > 0 {
		query.Set("with_genres", joinIDs(filters.Genres, ","))
	}
	return query
}

func joinIDs(ids []int, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

// SearchKeywords returns keywords matching text. Empty text returns no
// results without a request.
func (c *Client) SearchKeywords(ctx context.Context, text string) ([]domain.Keyword, error) {
	const op = "/search/keyword"

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	body, err := c.doRequest(ctx, op, url.Values{"query": {text}})
	if err != nil {
		return nil, err
	}

	var resp pageResponse[namedDTO]
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("missing results")}
	}

	return MapKeywords(*resp.Results), nil
}

// FetchGenres returns the movie genre list
func (c *Client) FetchGenres(ctx context.Context) ([]domain.Genre, error) {
	const op = "/genre/movie/list"

	body, err := c.doRequest(ctx, op, nil)
	if err != nil {
		return nil, err
	}

	var resp genreListResponse
	if err := decode(op, body, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		return nil, &domain.DecodeError{Op: op, Err: errors.New("missing genres")}
	}

	return MapGenres(*resp.Genres), nil
}
