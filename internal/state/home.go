package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/slenderdeveloperman/QuoteBook/internal/cardstack"
	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
)

// HomeState is the home screen: the card stack for the selected category
// plus the category chips and the uncategorized quotes for the
// create-category sheet.
type HomeState struct {
	Category      string
	Quotes        []domain.Quote
	Categories    []string
	Uncategorized []domain.Quote

	// Index is the front card; Visible lists the cards on the stack,
	// front first.
	Index   int
	Visible []domain.Quote
}

// Home drives the home screen. Call Close when done.
type Home struct {
	repo Repository
	log  zerolog.Logger
	hub  *live.Hub
	nav  *cardstack.Navigator

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// MaxVisible caps HomeState.Visible.
	MaxVisible int

	mu            sync.Mutex
	category      string
	gen           uint64
	quotes        []domain.Quote
	quotesStream  *live.Stream[[]domain.Quote]
	categories    []string
	uncategorized []domain.Quote
}

// NewHome subscribes to all quotes, the category list and the
// uncategorized quotes. The subscriptions live until Close or ctx ends.
func NewHome(ctx context.Context, repo Repository, log zerolog.Logger) *Home {
	ctx, cancel := context.WithCancel(ctx)
	h := &Home{
		repo:          repo,
		log:           log,
		hub:           live.NewHub(),
		nav:           cardstack.NewNavigator(0, 0),
		ctx:           ctx,
		cancel:        cancel,
		MaxVisible:    cardstack.DefaultMaxVisible,
		quotes:        []domain.Quote{},
		categories:    []string{},
		uncategorized: []domain.Quote{},
	}

	follow(&h.wg, repo.GetCategories(ctx), func(s live.Snapshot[[]string]) {
		h.mu.Lock()
		h.categories = s.Value
		h.mu.Unlock()
		h.hub.Publish()
	})
	follow(&h.wg, repo.GetUncategorizedQuotes(ctx), func(s live.Snapshot[[]domain.Quote]) {
		h.mu.Lock()
		h.uncategorized = s.Value
		h.mu.Unlock()
		h.hub.Publish()
	})

	h.mu.Lock()
	h.subscribeLocked()
	h.mu.Unlock()
	return h
}

// Close ends every subscription and waits for them to stop.
func (h *Home) Close() {
	h.cancel()
	h.wg.Wait()
}

// State returns the current snapshot.
func (h *Home) State() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := h.nav.Index()
	visible := make([]domain.Quote, 0, h.MaxVisible)
	for _, i := range cardstack.Visible(idx, len(h.quotes), h.MaxVisible) {
		visible = append(visible, h.quotes[i])
	}
	return HomeState{
		Category:      h.category,
		Quotes:        h.quotes,
		Categories:    h.categories,
		Uncategorized: h.uncategorized,
		Index:         cardstack.Clamp(idx, len(h.quotes)),
		Visible:       visible,
	}
}

// Watch streams the home state.
func (h *Home) Watch(ctx context.Context) *live.Stream[HomeState] {
	return live.Watch(ctx, h.hub, func(context.Context) (HomeState, error) { return h.State(), nil })
}

// SetCategory switches the stack to category ("" means all quotes). The
// previous subscription is dropped and the stack restarts at the first card.
func (h *Home) SetCategory(category string) {
	h.mu.Lock()
	if category == h.category {
		h.mu.Unlock()
		return
	}
	h.category = category
	old := h.quotesStream
	h.subscribeLocked()
	h.mu.Unlock()

	if old != nil {
		old.Close()
	}
	h.hub.Publish()
}

// SwipeLeft shows the next card.
func (h *Home) SwipeLeft() bool { return h.moved(h.nav.SwipeLeft()) }

// SwipeRight shows the previous card.
func (h *Home) SwipeRight() bool { return h.moved(h.nav.SwipeRight()) }

// Shuffle jumps to a random other card.
func (h *Home) Shuffle() bool { return h.moved(h.nav.Shuffle()) }

// Navigator exposes the card stack position.
func (h *Home) Navigator() *cardstack.Navigator { return h.nav }

// CreateCategory assigns the quotes in ids to a new category name.
func (h *Home) CreateCategory(ctx context.Context, name string, ids []int64) error {
	err := h.repo.AssignQuotesToCategory(ctx, ids, name)
	if err != nil {
		h.log.Warn().Err(err).Str("category", name).Msg("create category incomplete")
	}
	return err
}

// DeleteQuote removes q.
func (h *Home) DeleteQuote(ctx context.Context, q domain.Quote) error {
	err := h.repo.DeleteQuote(ctx, q)
	if err != nil {
		h.log.Warn().Err(err).Int64("quote_id", q.ID).Msg("delete quote failed")
	}
	return err
}

func (h *Home) moved(ok bool) bool {
	if ok {
		h.hub.Publish()
	}
	return ok
}

// subscribeLocked starts the quote stream for h.category. Snapshots from a
// superseded subscription are ignored.
func (h *Home) subscribeLocked() {
	h.gen++
	gen := h.gen
	h.nav.Reset()
	s := h.repo.GetQuotesByCategory(h.ctx, h.category)
	h.quotesStream = s
	follow(&h.wg, s, func(snap live.Snapshot[[]domain.Quote]) {
		h.mu.Lock()
		if gen != h.gen {
			h.mu.Unlock()
			return
		}
		h.quotes = snap.Value
		h.nav.Resize(len(snap.Value))
		h.mu.Unlock()
		h.hub.Publish()
	})
}
