package tui

import (
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/service"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// BootstrapMsg carries the configuration and genres loaded at startup
type BootstrapMsg struct {
	Result *service.Bootstrap
	Err    error
}

// MoviesPageMsg carries one fetched page. Epoch identifies the filter set
// the request was issued for.
type MoviesPageMsg struct {
	Epoch  uint64
	Page   int
	Result domain.PageResult
	Err    error
}

// KeywordsLoadedMsg carries keyword suggestions for a debounced query
type KeywordsLoadedMsg struct {
	Seq      int
	Query    string
	Keywords []domain.Keyword
	Err      error
}

// LoginCompleteMsg signals the end of a login attempt
type LoginCompleteMsg struct {
	User  domain.User
	Error error
}

// LogoutCompleteMsg signals the end of a logout
type LogoutCompleteMsg struct {
	Error error
}

// FavoriteResultMsg reports the outcome of the favorite action
type FavoriteResultMsg struct {
	Movie domain.MovieSummary
	Error error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
