package state

import (
	"context"
	"strings"
	"sync"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
)

// EditQuoteState is the edit form for one stored quote.
type EditQuoteState struct {
	ID        int64
	Text      string
	Author    string
	Category  string
	CreatedAt int64

	Loading          bool
	Saved            bool
	Deleted          bool
	ShowDeleteDialog bool
	Error            string
}

// IsValid reports whether the form can be saved.
func (s EditQuoteState) IsValid() bool { return strings.TrimSpace(s.Text) != "" }

// EditQuote drives editing and deleting one quote.
type EditQuote struct {
	repo Repository
	hub  *live.Hub

	mu sync.Mutex
	st EditQuoteState
}

// NewEditQuote loads quote id into a form. A non-positive id or a missing
// quote leaves the form empty with an error message.
func NewEditQuote(ctx context.Context, repo Repository, id int64) *EditQuote {
	e := &EditQuote{repo: repo, hub: live.NewHub()}
	if id <= 0 {
		e.st.Error = MsgInvalidQuoteID
		return e
	}
	q := repo.GetQuoteByID(ctx, id)
	if q == nil {
		e.st.Error = MsgQuoteNotFound
		return e
	}
	e.st = EditQuoteState{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Category:  q.Category,
		CreatedAt: q.CreatedAt,
	}
	return e
}

// State returns the current snapshot.
func (e *EditQuote) State() EditQuoteState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Watch streams the form state.
func (e *EditQuote) Watch(ctx context.Context) *live.Stream[EditQuoteState] {
	return live.Watch(ctx, e.hub, func(context.Context) (EditQuoteState, error) { return e.State(), nil })
}

// SetText edits the quote text and clears any error.
func (e *EditQuote) SetText(text string) {
	e.update(func(s *EditQuoteState) { s.Text, s.Error = text, "" })
}

// SetAuthor edits the author.
func (e *EditQuote) SetAuthor(author string) {
	e.update(func(s *EditQuoteState) { s.Author = author })
}

// SetCategory edits the category.
func (e *EditQuote) SetCategory(category string) {
	e.update(func(s *EditQuoteState) { s.Category = category })
}

// ClearError dismisses the error message.
func (e *EditQuote) ClearError() {
	e.update(func(s *EditQuoteState) { s.Error = "" })
}

// ShowDeleteConfirmation opens the delete dialog.
func (e *EditQuote) ShowDeleteConfirmation() {
	e.update(func(s *EditQuoteState) { s.ShowDeleteDialog = true })
}

// DismissDeleteConfirmation closes the delete dialog.
func (e *EditQuote) DismissDeleteConfirmation() {
	e.update(func(s *EditQuoteState) { s.ShowDeleteDialog = false })
}

// Save writes the edits, keeping the quote's id and creation time. It is
// ignored while busy or after a successful save.
func (e *EditQuote) Save(ctx context.Context) bool {
	e.mu.Lock()
	if e.st.Loading || e.st.Saved {
		e.mu.Unlock()
		return false
	}
	if !e.st.IsValid() {
		e.st.Error = MsgEmptyQuote
		e.mu.Unlock()
		e.hub.Publish()
		return false
	}
	e.st.Loading = true
	q := domain.Quote{
		ID:        e.st.ID,
		Text:      strings.TrimSpace(e.st.Text),
		Author:    domain.AuthorOrDefault(e.st.Author),
		Category:  strings.TrimSpace(e.st.Category),
		CreatedAt: e.st.CreatedAt,
	}
	e.mu.Unlock()
	e.hub.Publish()

	err := e.repo.UpdateQuote(ctx, q)

	e.mu.Lock()
	e.st.Loading = false
	if err != nil {
		e.st.Error = failure(msgSaveFailed, err)
	} else {
		e.st.Saved = true
	}
	e.mu.Unlock()
	e.hub.Publish()
	return err == nil
}

// Delete removes the quote and closes the dialog.
func (e *EditQuote) Delete(ctx context.Context) bool {
	e.mu.Lock()
	if e.st.Loading || e.st.Deleted {
		e.mu.Unlock()
		return false
	}
	e.st.Loading, e.st.ShowDeleteDialog = true, false
	id := e.st.ID
	e.mu.Unlock()
	e.hub.Publish()

	err := e.repo.DeleteQuoteByID(ctx, id)

	e.mu.Lock()
	e.st.Loading = false
	if err != nil {
		e.st.Error = failure(msgDeleteFailed, err)
	} else {
		e.st.Deleted = true
	}
	e.mu.Unlock()
	e.hub.Publish()
	return err == nil
}

func (e *EditQuote) update(fn func(*EditQuoteState)) {
	e.mu.Lock()
	fn(&e.st)
	e.mu.Unlock()
	e.hub.Publish()
}
