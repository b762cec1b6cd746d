package tmdb

// Pointer fields mark the parts of a response that must be present;
// a nil pointer after decoding means the body had the wrong shape.

// configurationResponse is the body of GET /configuration
type configurationResponse struct {
	Images *struct {
		BaseURL       string   `json:"base_url"`
		SecureBaseURL string   `json:"secure_base_url,omitempty"`
		BackdropSizes []string `json:"backdrop_sizes,omitempty"`
	} `json:"images"`
}

// pageResponse is the paginated envelope shared by discover and search endpoints
type pageResponse[T any] struct {
	Page         *int `json:"page"`
	Results      *[]T `json:"results"`
	TotalPages   *int `json:"total_pages"`
	TotalResults int  `json:"total_results,omitempty"`
}

// movieDTO is a single discover result
type movieDTO struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
	BackdropPath *string `json:"backdrop_path"`
	PosterPath   *string `json:"poster_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
}

// namedDTO is an {id, name} pair used by keywords and genres
type namedDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// genreListResponse is the body of GET /genre/movie/list
type genreListResponse struct {
	Genres *[]namedDTO `json:"genres"`
}

// errorResponse is the body returned with failure statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
