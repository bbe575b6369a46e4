// Package prefs persists small user preferences in a bbolt file.
package prefs

import (
	"context"
	"errors"
	"time"

	"go.etcd.io/bbolt"

	"github.com/slenderdeveloperman/QuoteBook/internal/live"
)

const (
	bucketPrefs = "prefs"

	keyHasSeenIntro = "has_seen_intro"
)

var (
	valTrue  = []byte{1}
	valFalse = []byte{0}
)

// Store is a bbolt-backed preference store.
type Store struct {
	db  *bbolt.DB
	hub *live.Hub
}

// Open opens (creating if needed) the preference file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPrefs))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Store{db: db, hub: live.NewHub()}, nil
}

// Close releases the file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasSeenIntro reports whether the onboarding screens were completed.
// An unset preference reads as false.
func (s *Store) HasSeenIntro(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var seen bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketPrefs))
		if b == nil {
			return errors.New("prefs: bucket missing")
		}
		v := b.Get([]byte(keyHasSeenIntro))
		seen = len(v) == 1 && v[0] == 1

		return nil
	})

	return seen, err
}

// SetHasSeenIntro records the onboarding flag.
func (s *Store) SetHasSeenIntro(ctx context.Context, seen bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	val := valFalse
	if seen {
		val = valTrue
	}

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketPrefs)).Put([]byte(keyHasSeenIntro), val)
	}); err != nil {
		return err
	}

	s.hub.Publish()

	return nil
}

// WatchHasSeenIntro streams the onboarding flag, re-reading it after every
// SetHasSeenIntro on this store.
func (s *Store) WatchHasSeenIntro(ctx context.Context) *live.Stream[bool] {
	return live.Watch(ctx, s.hub, s.HasSeenIntro)
}
