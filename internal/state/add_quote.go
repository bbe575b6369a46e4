package state

import (
	"context"
	"strings"
	"sync"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
)

// AddQuoteState is the add-quote form.
type AddQuoteState struct {
	Text     string
	Author   string
	Category string

	Loading bool
	Saved   bool
	SavedID int64
	Error   string
}

// IsValid reports whether the form can be saved.
func (s AddQuoteState) IsValid() bool { return strings.TrimSpace(s.Text) != "" }

// AddQuote drives the add-quote form.
type AddQuote struct {
	repo Repository
	hub  *live.Hub

	mu sync.Mutex
	st AddQuoteState
}

// NewAddQuote returns an empty form.
func NewAddQuote(repo Repository) *AddQuote {
	return &AddQuote{repo: repo, hub: live.NewHub()}
}

// State returns the current snapshot.
func (a *AddQuote) State() AddQuoteState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st
}

// Watch streams the form state.
func (a *AddQuote) Watch(ctx context.Context) *live.Stream[AddQuoteState] {
	return live.Watch(ctx, a.hub, func(context.Context) (AddQuoteState, error) { return a.State(), nil })
}

// Categories streams the existing categories to pick from.
func (a *AddQuote) Categories(ctx context.Context) *live.Stream[[]string] {
	return a.repo.GetCategories(ctx)
}

// SetText edits the quote text and clears any error.
func (a *AddQuote) SetText(text string) {
	a.update(func(s *AddQuoteState) { s.Text, s.Error = text, "" })
}

// SetAuthor edits the author.
func (a *AddQuote) SetAuthor(author string) {
	a.update(func(s *AddQuoteState) { s.Author = author })
}

// SetCategory edits the category.
func (a *AddQuote) SetCategory(category string) {
	a.update(func(s *AddQuoteState) { s.Category = category })
}

// ClearError dismisses the error message.
func (a *AddQuote) ClearError() {
	a.update(func(s *AddQuoteState) { s.Error = "" })
}

// Save stores the quote and reports whether it was saved by this call. It is
// ignored while a save is running or after one succeeded. On failure the
// input is kept and Error explains why.
func (a *AddQuote) Save(ctx context.Context) bool {
	a.mu.Lock()
	if a.st.Loading || a.st.Saved {
		a.mu.Unlock()
		return false
	}
	if !a.st.IsValid() {
		a.st.Error = MsgEmptyQuote
		a.mu.Unlock()
		a.hub.Publish()
		return false
	}
	a.st.Loading = true
	q := domain.Quote{
		Text:     strings.TrimSpace(a.st.Text),
		Author:   domain.AuthorOrDefault(a.st.Author),
		Category: strings.TrimSpace(a.st.Category),
	}
	a.mu.Unlock()
	a.hub.Publish()

	id, err := a.repo.AddQuote(ctx, q)

	a.mu.Lock()
	a.st.Loading = false
	if err != nil {
		a.st.Error = failure(msgSaveFailed, err)
	} else {
		a.st.Saved, a.st.SavedID = true, id
	}
	a.mu.Unlock()
	a.hub.Publish()
	return err == nil
}

func (a *AddQuote) update(fn func(*AddQuoteState)) {
	a.mu.Lock()
	fn(&a.st)
	a.mu.Unlock()
	a.hub.Publish()
}
