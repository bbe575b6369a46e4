package state

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
	"github.com/slenderdeveloperman/QuoteBook/internal/repo"
	"github.com/slenderdeveloperman/QuoteBook/internal/services"
)

const (
	waitFor = 3 * time.Second
	tick    = 5 * time.Millisecond
)

// newRepository wires the real store and repository over a temp SQLite file.
func newRepository(t *testing.T) *services.QuoteRepository {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(db) })
	require.NoError(t, repo.Migrate(db))

	store := repo.NewQuoteStore(db)
	base := time.UnixMilli(1_700_000_000_000)
	var n atomic.Int64
	store.Now = func() time.Time { return base.Add(time.Duration(n.Add(1)) * time.Millisecond) }

	return services.NewQuoteRepository(store, zerolog.Nop(), nil)
}

func mustAdd(t *testing.T, r Repository, q domain.Quote) int64 {
	t.Helper()
	id, err := r.AddQuote(context.Background(), q)
	require.NoError(t, err)
	return id
}

func texts(qs []domain.Quote) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Text
	}
	return out
}

// countingRepo wraps a Repository, counting searches and optionally failing
// writes.
type countingRepo struct {
	Repository

	searches atomic.Int32
	addErr   error
	updErr   error
	delErr   error
	streamFn func(ctx context.Context, query string) *live.Stream[[]domain.Quote]
}

func (c *countingRepo) SearchQuotes(ctx context.Context, query string) *live.Stream[[]domain.Quote] {
	c.searches.Add(1)
	if c.streamFn != nil {
		return c.streamFn(ctx, query)
	}
	return c.Repository.SearchQuotes(ctx, query)
}

func (c *countingRepo) AddQuote(ctx context.Context, q domain.Quote) (int64, error) {
	if c.addErr != nil {
		return 0, c.addErr
	}
	return c.Repository.AddQuote(ctx, q)
}

func (c *countingRepo) UpdateQuote(ctx context.Context, q domain.Quote) error {
	if c.updErr != nil {
		return c.updErr
	}
	return c.Repository.UpdateQuote(ctx, q)
}

func (c *countingRepo) DeleteQuoteByID(ctx context.Context, id int64) error {
	if c.delErr != nil {
		return c.delErr
	}
	return c.Repository.DeleteQuoteByID(ctx, id)
}
