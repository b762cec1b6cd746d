package tmdb

import "github.com/mmcdole/flick/internal/domain"

// MapMovies converts discover results to domain movie summaries
func MapMovies(results []movieDTO) []domain.MovieSummary {
	movies := make([]domain.MovieSummary, 0, len(results))
	for _, m := range results {
		movies = append(movies, mapMovie(m))
	}
	return movies
}

func mapMovie(m movieDTO) domain.MovieSummary {
	movie := domain.MovieSummary{
		ID:         m.ID,
		Title:      m.Title,
		Overview:   m.Overview,
		Popularity: m.Popularity,
	}
	if m.BackdropPath != nil {
		movie.BackdropPath = *m.BackdropPath
	}
	return movie
}

// MapGenres converts genre DTOs to domain genres
func MapGenres(items []namedDTO) []domain.Genre {
	genres := make([]domain.Genre, 0, len(items))
	for _, g := range items {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// MapKeywords converts keyword DTOs to domain keywords
func MapKeywords(items []namedDTO) []domain.Keyword {
	keywords := make([]domain.Keyword, 0, len(items))
	for _, k := range items {
		keywords = append(keywords, domain.Keyword{ID: k.ID, Name: k.Name})
	}
	return keywords
}
