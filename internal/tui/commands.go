package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/catalog"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/service"
)

// Command factories for async operations

// BootstrapCmd loads configuration and genres
func BootstrapCmd(svc *service.CatalogService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := svc.Bootstrap(ctx)
		return BootstrapMsg{Result: result, Err: err}
	}
}

// LoadPageCmd resolves the page requested by the catalog state. cancel
// releases ctx once the page is in; callers also use it to abandon the
// request when the filters change.
func LoadPageCmd(ctx context.Context, cancel context.CancelFunc, resolver domain.PageResolver, req catalog.Request) tea.Cmd {
	return func() tea.Msg {
		defer cancel()

		result, err := resolver.Resolve(ctx, req.Query)
		return MoviesPageMsg{
			Epoch:  req.Epoch,
			Page:   req.Query.Page,
			Result: result,
			Err:    err,
		}
	}
}

// SearchKeywordsCmd looks up keyword suggestions for a debounced query
func SearchKeywordsCmd(svc *service.CatalogService, seq int, query string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		keywords, err := svc.SearchKeywords(ctx, query)
		return KeywordsLoadedMsg{Seq: seq, Query: query, Keywords: keywords, Err: err}
	}
}

// LoginCmd starts a session for name
func LoginCmd(svc *service.SessionService, name string) tea.Cmd {
	return func() tea.Msg {
		user, err := svc.Login(name)
		return LoginCompleteMsg{User: user, Error: err}
	}
}

// LogoutCmd ends the session
func LogoutCmd(svc *service.SessionService) tea.Cmd {
	return func() tea.Msg {
		return LogoutCompleteMsg{Error: svc.Logout()}
	}
}

// AddFavoriteCmd runs the favorite action for movie
func AddFavoriteCmd(svc *service.SessionService, movie domain.MovieSummary) tea.Cmd {
	return func() tea.Msg {
		return FavoriteResultMsg{Movie: movie, Error: svc.AddFavorite(movie)}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
