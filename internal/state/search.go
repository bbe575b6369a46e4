package state

import (
	"context"
	"sync"
	"time"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
	"github.com/slenderdeveloperman/QuoteBook/internal/search"
)

// Search defaults.
const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultMaxQueryRune = 100
)

// SearchState is the search screen.
type SearchState struct {
	Query   string
	Results []domain.Quote
	Error   string
}

// Search runs a debounced live search. Call Close when done.
type Search struct {
	repo     Repository
	hub      *live.Hub
	debounce time.Duration
	maxRunes int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	st      SearchState
	gen     uint64
	timer   *time.Timer
	results *live.Stream[[]domain.Quote]
}

// NewSearch returns an idle search. A zero debounce or maxRunes selects the
// defaults.
func NewSearch(ctx context.Context, repo Repository, debounce time.Duration, maxRunes int) *Search {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxQueryRune
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Search{
		repo:     repo,
		hub:      live.NewHub(),
		debounce: debounce,
		maxRunes: maxRunes,
		ctx:      ctx,
		cancel:   cancel,
		st:       SearchState{Results: []domain.Quote{}},
	}
}

// State returns the current snapshot.
func (s *Search) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Watch streams the search state.
func (s *Search) Watch(ctx context.Context) *live.Stream[SearchState] {
	return live.Watch(ctx, s.hub, func(context.Context) (SearchState, error) { return s.State(), nil })
}

// SetQuery records query (clipped to the rune limit) and schedules a search
// once input has been quiet for the debounce interval. A newer query
// supersedes any pending or running one.
func (s *Search) SetQuery(query string) {
	query = search.Clip(query, s.maxRunes)

	s.mu.Lock()
	s.st.Query = query
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.run(gen) })
	s.mu.Unlock()
	s.hub.Publish()
}

// ClearSearch empties the query and the results immediately.
func (s *Search) ClearSearch() {
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	old := s.results
	s.results = nil
	s.st = SearchState{Results: []domain.Quote{}}
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	s.hub.Publish()
}

// ClearError dismisses the error message.
func (s *Search) ClearError() {
	s.mu.Lock()
	s.st.Error = ""
	s.mu.Unlock()
	s.hub.Publish()
}

// Close stops any pending or running search.
func (s *Search) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

// run starts the search for generation gen unless it has been superseded.
// A blank query yields no results without touching the repository.
func (s *Search) run(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	old := s.results
	s.results = nil
	query := s.st.Query
	s.st.Error = ""

	if search.Normalize(query) == "" {
		s.st.Results = []domain.Quote{}
		s.mu.Unlock()
		if old != nil {
			old.Close()
		}
		s.hub.Publish()
		return
	}

	stream := s.repo.SearchQuotes(s.ctx, query)
	s.results = stream
	follow(&s.wg, stream, func(snap live.Snapshot[[]domain.Quote]) {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		if snap.Err != nil {
			s.st.Results = []domain.Quote{}
			s.st.Error = failure(msgSearchFailed, snap.Err)
		} else {
			s.st.Results = snap.Value
		}
		s.mu.Unlock()
		s.hub.Publish()
	})
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
}
