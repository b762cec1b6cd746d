package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/flick/internal/catalog"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/service"
	"github.com/mmcdole/flick/internal/tui/components"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateLogin
	StateConfirmLogout
)

const (
	tickInterval     = 100 * time.Millisecond
	statusDuration   = 5 * time.Second
	defaultTimeout   = 30 * time.Second
	defaultListTitle = "Discover"
)

// Options tunes the model's timing and scroll behaviour
type Options struct {
	Debounce       time.Duration
	Sentinel       components.SentinelOptions
	RequestTimeout time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	CatalogSvc *service.CatalogService
	SessionSvc *service.SessionService

	// UI Components
	List        *components.MovieList
	FilterPanel *components.FilterPanel
	Details     components.Details
	InputModal  components.InputModal

	// Data
	Catalog catalog.State
	Genres  []domain.Genre

	// Dimensions
	Width  int
	Height int
	layout columnLayout

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
	ShowFilters  bool
	ShowDetails  bool

	opts        Options
	cancelFetch context.CancelFunc
	logger      *slog.Logger
}

// NewModel creates a new application model
func NewModel(catalogSvc *service.CatalogService, sessionSvc *service.SessionService, opts Options) Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultTimeout
	}
	if opts.Debounce <= 0 {
		opts.Debounce = components.DefaultDebounce
	}

	list := components.NewMovieList(defaultListTitle, opts.Sentinel)
	list.SetFocused(true)

	return Model{
		State:       StateBrowsing,
		CatalogSvc:  catalogSvc,
		SessionSvc:  sessionSvc,
		List:        list,
		FilterPanel: components.NewFilterPanel(opts.Debounce),
		Details:     components.NewDetails(),
		InputModal:  components.NewInputModal(),
		Catalog:     catalog.NewState(),
		ShowFilters: true,
		ShowDetails: true,
		opts:        opts,
		logger:      slog.Default(),
	}
}

// Init initializes the application. The first page is requested once the
// window size is known and the sentinel is observed.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		BootstrapCmd(m.CatalogSvc, m.opts.RequestTimeout),
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, tea.Batch(m.updateLayout(), m.maybeLoadMore())

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(tickInterval)

	case BootstrapMsg:
		if msg.Err != nil {
			return m, m.setError(bootstrapError(msg.Err))
		}
		m.Genres = msg.Result.Genres
		m.FilterPanel.SetGenres(msg.Result.Genres)
		m.updateDetails()
		return m, nil

	case components.SentinelMsg:
		// The signal may predate a Disconnect or a scroll away
		if !m.List.SentinelVisible() {
			return m, nil
		}
		return m, m.loadNextPage()

	case MoviesPageMsg:
		return m.handlePage(msg)

	case components.ApplyFiltersMsg:
		cmd := m.applyFilters(msg.Filters)
		m.focusList()
		return m, cmd

	case components.KeywordDebounceMsg:
		query, seq, ok := m.FilterPanel.HandleDebounce(msg)
		if !ok {
			return m, nil
		}
		return m, SearchKeywordsCmd(m.CatalogSvc, seq, query, m.opts.RequestTimeout)

	case KeywordsLoadedMsg:
		if msg.Err != nil {
			m.FilterPanel.SearchFailed(msg.Seq)
			return m, m.setError(ErrMsg{Err: msg.Err, Context: "searching keywords"}.Error())
		}
		m.FilterPanel.SetSuggestions(msg.Seq, msg.Keywords)
		return m, nil

	case LoginCompleteMsg:
		if msg.Error != nil {
			return m, m.setError(fmt.Sprintf("Login failed: %v", msg.Error))
		}
		return m, m.setStatus("Logged in as " + msg.User.Name)

	case LogoutCompleteMsg:
		m.State = StateBrowsing
		if msg.Error != nil {
			return m, m.setError(fmt.Sprintf("Logout failed: %v", msg.Error))
		}
		return m, m.setStatus("Logged out")

	case FavoriteResultMsg:
		if msg.Error != nil {
			return m, m.setError(msg.Error.Error())
		}
		return m, m.setStatus("Added " + msg.Movie.Title + " to favorites")

	case ErrMsg:
		return m, m.setError(msg.Error())

	case StatusMsg:
		if msg.IsError {
			return m, m.setError(msg.Message)
		}
		return m, m.setStatus(msg.Message)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handlePage folds a fetched page into the catalog state. Results from an
// older epoch, or for a request that was abandoned, are dropped.
func (m Model) handlePage(msg MoviesPageMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		next, ok := m.Catalog.FetchFailed(msg.Epoch, msg.Err)
		if !ok {
			m.logger.Debug("dropped stale page error", "epoch", msg.Epoch, "page", msg.Page, "error", msg.Err)
			return m, nil
		}
		m.Catalog = next
		m.cancelFetch = nil
		m.List.SetLoading(false)
		// The sentinel is not re-armed here; scrolling or refresh retries.
		return m, m.setError(ErrMsg{Err: msg.Err, Context: fmt.Sprintf("loading page %d", msg.Page)}.Error())
	}

	next, ok := m.Catalog.FetchSucceeded(msg.Epoch, msg.Result)
	if !ok {
		m.logger.Debug("dropped stale page", "epoch", msg.Epoch, "page", msg.Page)
		return m, nil
	}
	m.Catalog = next
	m.cancelFetch = nil
	m.List.SetLoading(false)

	cmd := m.List.SetItems(next.Items, next.HasMorePages)
	m.List.SetNoResults(next.NoResults())
	m.updateDetails()

	return m, tea.Batch(cmd, m.maybeLoadMore())
}

// loadNextPage asks the catalog state for the next request and issues it
func (m *Model) loadNextPage() tea.Cmd {
	next, req, ok := m.Catalog.ScrollTriggered()
	if !ok {
		return nil
	}
	m.Catalog = next
	m.List.SetLoading(true)

	ctx, cancel := context.WithTimeout(context.Background(), m.opts.RequestTimeout)
	m.cancelFetch = cancel

	m.logger.Debug("loading page", "epoch", req.Epoch, "page", req.Query.Page)
	return LoadPageCmd(ctx, cancel, m.CatalogSvc, req)
}

// maybeLoadMore loads the next page when the sentinel is already in view.
// Entering the view emits SentinelMsg, but a sentinel that never left it
// (a short page, a reset list) has to be checked directly.
func (m *Model) maybeLoadMore() tea.Cmd {
	if !m.Ready || !m.List.SentinelVisible() {
		return nil
	}
	return m.loadNextPage()
}

// applyFilters starts a new epoch for f, abandoning any in-flight page
func (m *Model) applyFilters(f domain.Filters) tea.Cmd {
	next := m.Catalog.ApplyFilters(f)
	if next.Epoch == m.Catalog.Epoch {
		return nil
	}
	return m.resetCatalog(next)
}

// refresh drops cached data and reloads the current filters from page 1
func (m *Model) refresh() tea.Cmd {
	m.CatalogSvc.Refresh()
	cmd := m.resetCatalog(m.Catalog.Restart())
	return tea.Batch(cmd, m.setStatus("Refreshing..."))
}

func (m *Model) resetCatalog(next catalog.State) tea.Cmd {
	m.cancelInFlight()
	m.Catalog = next
	m.List.Reset()
	m.List.SetLoading(false)
	m.List.SetTitle(m.listTitle())
	m.updateDetails()

	return tea.Batch(m.List.Observe(), m.maybeLoadMore())
}

// quit stops scroll observation and abandons any in-flight page
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancelInFlight()
	m.List.Disconnect()
	return m, tea.Quit
}

func (m *Model) cancelInFlight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

// listTitle summarizes the applied filters
func (m Model) listTitle() string {
	f := m.Catalog.Filters
	if f.IsEmpty() {
		return defaultListTitle
	}

	var parts []string
	if len(f.Genres) > 0 {
		names := make([]string, 0, len(f.Genres))
		for _, g := range m.Genres {
			for _, id := range f.Genres {
				if g.ID == id {
					names = append(names, g.Name)
				}
			}
		}
		if len(names) == 0 {
			names = append(names, plural(len(f.Genres), "genre"))
		}
		parts = append(parts, strings.Join(names, ", "))
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, plural(len(f.Keywords), "keyword"))
	}
	return defaultListTitle + " · " + strings.Join(parts, " · ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// updateDetails shows the movie under the list cursor
func (m *Model) updateDetails() {
	movie, ok := m.List.SelectedMovie()
	if !ok {
		m.Details.SetMovie(nil, "")
		return
	}
	url, _ := m.CatalogSvc.ImageURL(movie)
	m.Details.SetMovie(&movie, url)
}

func (m *Model) focusList() {
	m.FilterPanel.SetFocused(false)
	m.List.SetFocused(true)
}

func (m *Model) focusFilters() tea.Cmd {
	var cmd tea.Cmd
	if !m.ShowFilters {
		m.ShowFilters = true
		cmd = m.updateLayout()
	}
	m.List.SetFocused(false)
	m.FilterPanel.SetFocused(true)
	return cmd
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = false
	return ClearStatusCmd(statusDuration)
}

func (m *Model) setError(text string) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = true
	return ClearStatusCmd(statusDuration)
}

func bootstrapError(err error) string {
	if errors.Is(err, domain.ErrAuthFailed) {
		return "Authentication failed: check your API token"
	}
	return ErrMsg{Err: err, Context: "starting up"}.Error()
}
