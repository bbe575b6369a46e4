// Package repo implements the quote store, backed by GORM. This file provides
// the QuoteStore: point reads and writes against the quotes table plus live
// (push-updated) ordered scans.
//
// Error semantics:
//   - A missing id on Update returns gorm.ErrRecordNotFound (exported here
//     as ErrNotFound). GetByID reports a missing id as (nil, nil).
//   - Other DB errors are returned raw; the repository layer classifies them.
//   - Live streams never end on a query error; the failed snapshot carries
//     the error and the next change triggers a fresh attempt.
//
// Every successful write publishes on the store's live.Hub after the row is
// committed, so subscribers observe it without polling.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
	"github.com/slenderdeveloperman/QuoteBook/internal/live"
	"github.com/slenderdeveloperman/QuoteBook/internal/search"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer.
var ErrNotFound = gorm.ErrRecordNotFound

// QuoteStore is durable keyed storage of quote records.
type QuoteStore struct {
	db  *gorm.DB
	hub *live.Hub

	// Now supplies creation timestamps; tests pin it.
	Now func() time.Time
}

// NewQuoteStore returns a store over db. The schema must already be migrated.
func NewQuoteStore(db *gorm.DB) *QuoteStore {
	return &QuoteStore{db: db, hub: live.NewHub(), Now: time.Now}
}

// Hub exposes the change hub, e.g. for an active-stream gauge.
func (s *QuoteStore) Hub() *live.Hub { return s.hub }

// Insert persists e and returns its id. A zero ID is assigned by the
// database; a preset ID replaces any existing row with that id. A zero
// CreatedAt is set to the current time.
func (s *QuoteStore) Insert(ctx context.Context, e *domain.QuoteEntity) (int64, error) {
	if e.CreatedAt == 0 {
		e.CreatedAt = s.Now().UnixMilli()
	}
	q := s.db.WithContext(ctx)
	if e.ID != 0 {
		q = q.Clauses(clause.OnConflict{UpdateAll: true})
	}
	if err := q.Create(e).Error; err != nil {
		return 0, err
	}
	s.hub.Publish()
	return e.ID, nil
}

// Update replaces text, author and category of the row with e.ID. CreatedAt
// is immutable and never written. Returns ErrNotFound if no row matches.
func (s *QuoteStore) Update(ctx context.Context, e *domain.QuoteEntity) error {
	res := s.db.WithContext(ctx).
		Model(&domain.QuoteEntity{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"text":     e.Text,
			"author":   e.Author,
			"category": e.Category,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.hub.Publish()
	return nil
}

// DeleteByID removes the row with id. Deleting a missing id is not an error.
func (s *QuoteStore) DeleteByID(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.QuoteEntity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.hub.Publish()
	}
	return nil
}

// GetByID fetches a record by id. A missing id yields (nil, nil).
func (s *QuoteStore) GetByID(ctx context.Context, id int64) (*domain.QuoteEntity, error) {
	var e domain.QuoteEntity
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Count returns the number of stored records.
func (s *QuoteStore) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.QuoteEntity{}).Count(&total).Error
	return total, err
}

// GetAll returns a live view of every record, newest first.
func (s *QuoteStore) GetAll(ctx context.Context) *live.Stream[[]domain.QuoteEntity] {
	return live.Watch(ctx, s.hub, s.list)
}

// Search returns a live view of the records whose text or author contains
// needle, compared case-insensitively after trimming. Order matches GetAll.
func (s *QuoteStore) Search(ctx context.Context, needle string) *live.Stream[[]domain.QuoteEntity] {
	m := search.NewMatcher(needle)
	return live.Watch(ctx, s.hub, func(ctx context.Context) ([]domain.QuoteEntity, error) {
		all, err := s.list(ctx)
		if err != nil {
			return nil, err
		}
		out := all[:0]
		for _, e := range all {
			if m.Match(e.Text, e.Author) {
				out = append(out, e)
			}
		}
		return out, nil
	})
}

// list reads all records ordered by creation time descending; id breaks ties
// so the order is total.
func (s *QuoteStore) list(ctx context.Context) ([]domain.QuoteEntity, error) {
	out := make([]domain.QuoteEntity, 0)
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&out).Error
	return out, err
}
