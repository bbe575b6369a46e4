// Package services – QuoteRepository
//
// QuoteRepository is the single gateway between the presentation layer and
// the quote store. It maps stored records to domain quotes, applies input
// defaults (trimmed text, "Unknown" author, trimmed category), bounds every
// point operation with a timeout, and classifies failures into the sentinel
// errors in errors.go.
//
// Fault policy:
//   - writes (add, update, delete, assign, count) return their error;
//   - point reads (GetQuoteByID) log the fault and return nil;
//   - streams never fail: a record that cannot be mapped is dropped and
//     logged, and a snapshot carrying a store error becomes an empty list.
//
// Observability: every public method opens a span on the
// "services/QuoteRepository" tracer; bounded calls feed Metrics.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
	"github.com/slenderdeveloperman/QuoteBook/internal/observability"
	"github.com/slenderdeveloperman/QuoteBook/internal/search"
)

// DefaultTimeout bounds each point operation when Timeout is unset.
const DefaultTimeout = 5 * time.Second

const tracerName = "services/QuoteRepository"

// QuoteStore defines the storage contract required by QuoteRepository.
type QuoteStore interface {
	// Insert persists a record and returns its id.
	Insert(ctx context.Context, e *domain.QuoteEntity) (int64, error)

	// Update rewrites text, author and category of an existing record.
	// A missing id yields gorm.ErrRecordNotFound.
	Update(ctx context.Context, e *domain.QuoteEntity) error

	// DeleteByID removes a record; a missing id is not an error.
	DeleteByID(ctx context.Context, id int64) error

	// GetByID returns the record or (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*domain.QuoteEntity, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// GetAll streams every record, newest first.
	GetAll(ctx context.Context) *live.Stream[[]domain.QuoteEntity]

	// Search streams records whose text or author contains needle.
	Search(ctx context.Context, needle string) *live.Stream[[]domain.QuoteEntity]
}

// QuoteRepository exposes quote operations to the presentation layer.
type QuoteRepository struct {
	// Store is the persistence backend.
	Store QuoteStore
	// Timeout bounds each point operation; zero means DefaultTimeout.
	Timeout time.Duration
	// Log receives faults the repository absorbs.
	Log zerolog.Logger
	// Metrics is optional.
	Metrics *observability.Metrics

	// anomalies throttles dropped-record warnings; every drop is still
	// counted in Metrics.
	anomalies *rate.Limiter
}

// NewQuoteRepository wires a repository with the default timeout.
func NewQuoteRepository(store QuoteStore, log zerolog.Logger, m *observability.Metrics) *QuoteRepository {
	return &QuoteRepository{
		Store:     store,
		Timeout:   DefaultTimeout,
		Log:       log.With().Str("component", "quote_repository").Logger(),
		Metrics:   m,
		anomalies: rate.NewLimiter(rate.Every(time.Second), 10),
	}
}

// GetAllQuotes streams every quote, newest first.
func (r *QuoteRepository) GetAllQuotes(ctx context.Context) *live.Stream[[]domain.Quote] {
	_, span := otel.Tracer(tracerName).Start(ctx, "GetAllQuotes")
	defer span.End()

	return r.quotes("get_all", r.Store.GetAll(ctx))
}

// GetQuoteByID returns the quote with id, or nil when it is missing, cannot
// be mapped, or the lookup failed or timed out. Faults are logged.
func (r *QuoteRepository) GetQuoteByID(ctx context.Context, id int64) *domain.Quote {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "GetQuoteByID",
		trace.WithAttributes(attribute.Int64("quote.id", id)),
	)
	defer span.End()

	e, err := boundedOp(ctx, r, "get_quote", func(ctx context.Context) (*domain.QuoteEntity, error) {
		return r.Store.GetByID(ctx, id)
	})
	if err != nil {
		recordErr(span, err)
		r.Log.Error().Err(err).Int64("quote_id", id).Msg("get quote failed")
		return nil
	}
	if e == nil {
		return nil
	}
	q, err := e.ToQuote()
	if err != nil {
		recordErr(span, err)
		r.dropped("", *e, err)
		return nil
	}
	return &q
}

// AddQuote validates and normalizes q, stores it and returns the new id.
func (r *QuoteRepository) AddQuote(ctx context.Context, q domain.Quote) (int64, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "AddQuote",
		trace.WithAttributes(attribute.String("quote.category", q.Category)),
	)
	defer span.End()

	if err := r.validate("add_quote", q); err != nil {
		recordErr(span, err)
		return 0, err
	}
	e := domain.FromQuote(q.Normalized())
	id, err := boundedOp(ctx, r, "add_quote", func(ctx context.Context) (int64, error) {
		return r.Store.Insert(ctx, &e)
	})
	if err != nil {
		recordErr(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("quote.id", id))
	return id, nil
}

// UpdateQuote validates and normalizes q and rewrites the stored quote with
// q.ID. Id and creation time are preserved. A missing id yields ErrNotFound.
func (r *QuoteRepository) UpdateQuote(ctx context.Context, q domain.Quote) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "UpdateQuote",
		trace.WithAttributes(attribute.Int64("quote.id", q.ID)),
	)
	defer span.End()

	if err := r.validate("update_quote", q); err != nil {
		recordErr(span, err)
		return err
	}
	e := domain.FromQuote(q.Normalized())
	_, err := boundedOp(ctx, r, "update_quote", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.Store.Update(ctx, &e)
	})
	if err != nil {
		recordErr(span, err)
	}
	return err
}

// DeleteQuote removes q by its id.
func (r *QuoteRepository) DeleteQuote(ctx context.Context, q domain.Quote) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "DeleteQuote",
		trace.WithAttributes(attribute.Int64("quote.id", q.ID)),
	)
	defer span.End()

	return r.deleteByID(ctx, span, q.ID)
}

// DeleteQuoteByID removes the quote with id. Deleting a missing id succeeds.
func (r *QuoteRepository) DeleteQuoteByID(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "DeleteQuoteByID",
		trace.WithAttributes(attribute.Int64("quote.id", id)),
	)
	defer span.End()

	return r.deleteByID(ctx, span, id)
}

func (r *QuoteRepository) deleteByID(ctx context.Context, span trace.Span, id int64) error {
	_, err := boundedOp(ctx, r, "delete_quote", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.Store.DeleteByID(ctx, id)
	})
	if err != nil {
		recordErr(span, err)
	}
	return err
}

// SearchQuotes streams quotes whose text or author contains query
// (trimmed, case-insensitive). A blank query matches every quote.
func (r *QuoteRepository) SearchQuotes(ctx context.Context, query string) *live.Stream[[]domain.Quote] {
	query = search.Normalize(query)
	_, span := otel.Tracer(tracerName).Start(ctx, "SearchQuotes",
		trace.WithAttributes(attribute.Int("query.len", len(query))),
	)
	defer span.End()

	return r.quotes("search", r.Store.Search(ctx, query))
}

// GetCategories streams the distinct non-empty categories of the current
// quotes in ascending order.
func (r *QuoteRepository) GetCategories(ctx context.Context) *live.Stream[[]string] {
	_, span := otel.Tracer(tracerName).Start(ctx, "GetCategories")
	defer span.End()

	return live.Map(r.quotes("categories", r.Store.GetAll(ctx)), func(s live.Snapshot[[]domain.Quote]) live.Snapshot[[]string] {
		return live.Snapshot[[]string]{Value: categories(s.Value)}
	})
}

// GetQuotesByCategory streams the quotes whose category equals category
// exactly. An empty category streams every quote.
func (r *QuoteRepository) GetQuotesByCategory(ctx context.Context, category string) *live.Stream[[]domain.Quote] {
	_, span := otel.Tracer(tracerName).Start(ctx, "GetQuotesByCategory",
		trace.WithAttributes(attribute.String("quote.category", category)),
	)
	defer span.End()

	all := r.quotes("by_category", r.Store.GetAll(ctx))
	if category == "" {
		return all
	}
	return filtered(all, func(q domain.Quote) bool { return q.Category == category })
}

// GetUncategorizedQuotes streams the quotes with no category.
func (r *QuoteRepository) GetUncategorizedQuotes(ctx context.Context) *live.Stream[[]domain.Quote] {
	_, span := otel.Tracer(tracerName).Start(ctx, "GetUncategorizedQuotes")
	defer span.End()

	return filtered(r.quotes("uncategorized", r.Store.GetAll(ctx)), domain.Quote.Uncategorized)
}

// AssignQuotesToCategory sets the category of every quote in ids to name
// (trimmed). It is best-effort: each id is loaded and updated under its own
// timeout, a failing id does not stop the others, and the returned error
// joins the per-id failures. A missing id fails with ErrNotFound. A blank
// name is rejected with ErrValidation before anything is written.
func (r *QuoteRepository) AssignQuotesToCategory(ctx context.Context, ids []int64, name string) error {
	name = search.Normalize(name)
	ctx, span := otel.Tracer(tracerName).Start(ctx, "AssignQuotesToCategory",
		trace.WithAttributes(
			attribute.String("quote.category", name),
			attribute.Int("quote.count", len(ids)),
		),
	)
	defer span.End()

	if name == "" {
		err := fmt.Errorf("%w: category name is blank", ErrValidation)
		r.Metrics.Observe("assign_category", observability.ResultInvalid, 0)
		recordErr(span, err)
		return err
	}

	var errs []error
	for _, id := range ids {
		_, err := boundedOp(ctx, r, "assign_category", func(ctx context.Context) (struct{}, error) {
			e, err := r.Store.GetByID(ctx, id)
			if err != nil {
				return struct{}{}, err
			}
			if e == nil {
				return struct{}{}, gorm.ErrRecordNotFound
			}
			e.Category = name
			return struct{}{}, r.Store.Update(ctx, e)
		})
		if err != nil {
			r.Log.Warn().Err(err).Int64("quote_id", id).Str("category", name).Msg("assign category failed")
			errs = append(errs, fmt.Errorf("quote %d: %w", id, err))
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		recordErr(span, err)
	}
	return err
}

// CountQuotes returns the number of stored quotes.
func (r *QuoteRepository) CountQuotes(ctx context.Context) (int64, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CountQuotes")
	defer span.End()

	n, err := boundedOp(ctx, r, "count_quotes", r.Store.Count)
	if err != nil {
		recordErr(span, err)
	}
	return n, err
}

// ---- internals ----

func (r *QuoteRepository) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// boundedOp runs fn under the repository timeout, classifies its error and
// records the outcome as op.
func boundedOp[T any](ctx context.Context, r *QuoteRepository, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := bounded(ctx, r.timeout(), fn)
	err = classify(err)
	r.Metrics.Observe(op, resultOf(err), time.Since(start))
	return v, err
}

func (r *QuoteRepository) validate(op string, q domain.Quote) error {
	if err := q.Validate(); err != nil {
		r.Metrics.Observe(op, observability.ResultInvalid, 0)
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// quotes maps a record stream to a quote stream, dropping unmappable records
// and replacing failed snapshots with an empty list.
func (r *QuoteRepository) quotes(op string, src *live.Stream[[]domain.QuoteEntity]) *live.Stream[[]domain.Quote] {
	streamID := src.ID()
	return live.Map(src, func(s live.Snapshot[[]domain.QuoteEntity]) live.Snapshot[[]domain.Quote] {
		if s.Err != nil {
			r.Log.Error().Err(s.Err).Str("stream", streamID).Str("op", op).Msg("quote stream query failed")
			return live.Snapshot[[]domain.Quote]{Value: []domain.Quote{}}
		}
		out := make([]domain.Quote, 0, len(s.Value))
		for _, e := range s.Value {
			q, err := e.ToQuote()
			if err != nil {
				r.dropped(streamID, e, err)
				continue
			}
			out = append(out, q)
		}
		return live.Snapshot[[]domain.Quote]{Value: out}
	})
}

// dropped counts a record that failed mapping and logs it, throttled.
func (r *QuoteRepository) dropped(streamID string, e domain.QuoteEntity, err error) {
	r.Metrics.RecordDropped()
	if r.anomalies != nil && !r.anomalies.Allow() {
		return
	}
	ev := r.Log.Warn().Err(err).Int64("quote_id", e.ID)
	if streamID != "" {
		ev = ev.Str("stream", streamID)
	}
	ev.Msg("dropping unmappable quote record")
}

func filtered(src *live.Stream[[]domain.Quote], keep func(domain.Quote) bool) *live.Stream[[]domain.Quote] {
	return live.Map(src, func(s live.Snapshot[[]domain.Quote]) live.Snapshot[[]domain.Quote] {
		out := make([]domain.Quote, 0, len(s.Value))
		for _, q := range s.Value {
			if keep(q) {
				out = append(out, q)
			}
		}
		return live.Snapshot[[]domain.Quote]{Value: out}
	})
}

func categories(qs []domain.Quote) []string {
	seen := make(map[string]struct{}, len(qs))
	out := make([]string, 0)
	for _, q := range qs {
		if q.Category == "" {
			continue
		}
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}
	sort.Strings(out)
	return out
}

// classify maps store and context errors onto the package sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return observability.ResultOK
	case errors.Is(err, ErrNotFound):
		return observability.ResultNotFound
	case errors.Is(err, ErrValidation):
		return observability.ResultInvalid
	case errors.Is(err, ErrTimeout):
		return observability.ResultTimeout
	default:
		return observability.ResultError
	}
}

func recordErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
