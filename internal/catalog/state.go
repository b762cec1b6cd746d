package catalog

import (
	"github.com/mmcdole/flick/internal/domain"
)

// Phase is the fetch phase of a State
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	default:
		return "idle"
	}
}

// Request is a page fetch the owner of a State must issue. Epoch is handed
// back with the result so superseded responses can be recognized.
type Request struct {
	Epoch uint64
	Query domain.Query
}

// State is the pagination state of the movie list for one filter set.
// Transitions return a new value and never mutate the receiver's items.
type State struct {
	Phase        Phase
	Epoch        uint64
	Filters      domain.Filters
	Page         int // last merged page, 0 before the first merge
	LoadingPage  int // page being fetched while loading
	Items        []domain.MovieSummary
	HasMorePages bool
	Err          error // last fetch error, cleared by the next request
}

// NewState returns the initial state: idle, no filters, nothing loaded
func NewState() State {
	return State{
		Phase:        PhaseIdle,
		HasMorePages: true,
	}
}

// pristine reports whether nothing has happened since the last reset
func (s State) pristine() bool {
	return s.Phase == PhaseIdle && s.Page == 0 && len(s.Items) == 0
}

// ApplyFilters resets pagination for f. Any in-flight request belongs to
// the previous epoch and its result will be discarded. Applying an equal
// filter set to a pristine state changes nothing.
func (s State) ApplyFilters(f domain.Filters) State {
	f = f.Normalize()
	if s.pristine() && s.Filters.Equal(f) {
		return s
	}
	return State{
		Phase:        PhaseIdle,
		Epoch:        s.Epoch + 1,
		Filters:      f,
		HasMorePages: true,
	}
}

// Restart discards everything loaded for the current filters and starts
// a new epoch, as after a manual refresh
func (s State) Restart() State {
	return State{
		Phase:        PhaseIdle,
		Epoch:        s.Epoch + 1,
		Filters:      s.Filters,
		HasMorePages: true,
	}
}

// ScrollTriggered reacts to the sentinel becoming visible. It returns the
// request to issue, or false when a fetch is already running or the list
// is exhausted.
func (s State) ScrollTriggered() (State, Request, bool) {
	if s.Phase == PhaseLoading || !s.HasMorePages {
		return s, Request{}, false
	}

	next := s
	next.Phase = PhaseLoading
	next.LoadingPage = s.Page + 1
	next.Err = nil

	return next, Request{
		Epoch: s.Epoch,
		Query: domain.Query{Page: next.LoadingPage, Filters: s.Filters},
	}, true
}

// FetchSucceeded merges a fetched page. Results from another epoch or
// arriving while no fetch is outstanding are dropped; the bool reports
// whether the result was applied.
func (s State) FetchSucceeded(epoch uint64, page domain.PageResult) (State, bool) {
	if epoch != s.Epoch || s.Phase != PhaseLoading {
		return s, false
	}

	next := s
	next.Phase = PhaseIdle
	next.LoadingPage = 0
	next.Items = MergePage(s.Items, page)
	next.Page = page.Page
	next.HasMorePages = page.HasMorePages()
	next.Err = nil
	return next, true
}

// FetchFailed returns to idle keeping everything loaded so far. The next
// scroll trigger retries the same page.
func (s State) FetchFailed(epoch uint64, err error) (State, bool) {
	if epoch != s.Epoch || s.Phase != PhaseLoading {
		return s, false
	}

	next := s
	next.Phase = PhaseIdle
	next.LoadingPage = 0
	next.Err = err
	return next, true
}

// Loading reports whether a page fetch is outstanding
func (s State) Loading() bool {
	return s.Phase == PhaseLoading
}

// NoResults reports whether the first page came back empty
func (s State) NoResults() bool {
	return s.Phase == PhaseIdle && s.Page >= 1 && len(s.Items) == 0
}
