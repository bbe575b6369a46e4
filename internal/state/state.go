// Package state holds the presentation state of the Quotebook screens. Each
// holder keeps an immutable snapshot behind a mutex, mutates it only through
// its methods, and announces every change on a live.Hub so any shell can
// render it with Watch.
package state

import (
	"context"
	"sync"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
)

// User-facing messages.
const (
	MsgEmptyQuote     = "Please enter a quote"
	MsgInvalidQuoteID = "Invalid quote ID"
	MsgQuoteNotFound  = "Quote not found"

	msgSaveFailed   = "Failed to save quote: "
	msgDeleteFailed = "Failed to delete quote: "
	msgSearchFailed = "Search failed: "
)

// Repository is the quote API the holders depend on. It is satisfied by
// *services.QuoteRepository.
type Repository interface {
	AddQuote(ctx context.Context, q domain.Quote) (int64, error)
	UpdateQuote(ctx context.Context, q domain.Quote) error
	DeleteQuote(ctx context.Context, q domain.Quote) error
	DeleteQuoteByID(ctx context.Context, id int64) error
	GetQuoteByID(ctx context.Context, id int64) *domain.Quote
	SearchQuotes(ctx context.Context, query string) *live.Stream[[]domain.Quote]
	GetCategories(ctx context.Context) *live.Stream[[]string]
	GetQuotesByCategory(ctx context.Context, category string) *live.Stream[[]domain.Quote]
	GetUncategorizedQuotes(ctx context.Context) *live.Stream[[]domain.Quote]
	AssignQuotesToCategory(ctx context.Context, ids []int64, name string) error
}

// follow drains s on its own goroutine, calling fn for every snapshot until
// the stream ends.
func follow[T any](wg *sync.WaitGroup, s *live.Stream[T], fn func(live.Snapshot[T])) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for snap := range s.Updates() {
			fn(snap)
		}
	}()
}

func failure(prefix string, err error) string {
	if msg := err.Error(); msg != "" {
		return prefix + msg
	}
	return prefix + "Please try again"
}
