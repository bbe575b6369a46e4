package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
)

func quote(text, author, category string) domain.Quote {
	return domain.Quote{Text: text, Author: author, Category: category}
}

func TestEditQuote_InvalidAndMissingID(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()

	assert.Equal(t, MsgInvalidQuoteID, NewEditQuote(ctx, r, 0).State().Error)
	assert.Equal(t, MsgInvalidQuoteID, NewEditQuote(ctx, r, -3).State().Error)
	assert.Equal(t, MsgQuoteNotFound, NewEditQuote(ctx, r, 42).State().Error)
}

func TestEditQuote_SavePreservesIdentity(t *testing.T) {
	r := newRepository(t)
	ctx := context.Background()
	id := mustAdd(t, r, quote("old", "Seneca", "Stoic"))
	before := r.GetQuoteByID(ctx, id)
	require.NotNil(t, before)

	e := NewEditQuote(ctx, r, id)
	st := e.State()
	require.Empty(t, st.Error)
	assert.Equal(t, "old", st.Text)
	assert.Equal(t, "Stoic", st.Category)

	e.SetText("  new  ")
	e.SetAuthor("")
	require.True(t, e.Save(ctx))
	assert.True(t, e.State().Saved)

	after := r.GetQuoteByID(ctx, id)
	require.NotNil(t, after)
	assert.Equal(t, domain.Quote{ID: id, Text: "new", Author: "Unknown", Category: "Stoic", CreatedAt: before.CreatedAt}, *after)
}

func TestEditQuote_BlankAndFailedSave(t *testing.T) {
	base := newRepository(t)
	ctx := context.Background()
	id := mustAdd(t, base, quote("text", "a", ""))
	r := &countingRepo{Repository: base}

	e := NewEditQuote(ctx, r, id)
	e.SetText(" ")
	assert.False(t, e.Save(ctx))
	assert.Equal(t, MsgEmptyQuote, e.State().Error)

	e.SetText("changed")
	r.updErr = errors.New("locked")
	assert.False(t, e.Save(ctx))
	assert.Equal(t, "Failed to save quote: locked", e.State().Error)
	assert.Equal(t, "changed", e.State().Text)
}

func TestEditQuote_DeleteConfirmation(t *testing.T) {
	base := newRepository(t)
	ctx := context.Background()
	id := mustAdd(t, base, quote("bye", "", ""))
	r := &countingRepo{Repository: base, delErr: errors.New("busy")}

	e := NewEditQuote(ctx, r, id)
	e.ShowDeleteConfirmation()
	assert.True(t, e.State().ShowDeleteDialog)
	e.DismissDeleteConfirmation()
	assert.False(t, e.State().ShowDeleteDialog)

	e.ShowDeleteConfirmation()
	assert.False(t, e.Delete(ctx))
	st := e.State()
	assert.Equal(t, "Failed to delete quote: busy", st.Error)
	assert.False(t, st.ShowDeleteDialog)
	assert.False(t, st.Deleted)

	r.delErr = nil
	require.True(t, e.Delete(ctx))
	assert.True(t, e.State().Deleted)
	assert.Nil(t, base.GetQuoteByID(ctx, id))
}
