// Package domain defines the quote model in both of its shapes: the GORM
// persistence record (QuoteEntity) owned by the store, and the domain value
// (Quote) handed to callers above the repository. The conversion between the
// two lives here so that every layer applies the same defaults.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultAuthor is substituted whenever a quote has no usable author.
const DefaultAuthor = "Unknown"

// LegacyUncategorized is the placeholder category older databases stored for
// quotes without a category. Current data uses the empty string instead.
const LegacyUncategorized = "Uncategorized"

// ErrBlankText is returned when a record cannot be turned into a Quote
// because its text is empty or whitespace.
var ErrBlankText = errors.New("quote text is blank")

// QuoteEntity is the persisted quote row.
//
// Fields:
//   - ID: autoincrement primary key, assigned on insert.
//   - Text: quoted content; required.
//   - Author: free text, may be stored blank by legacy writers.
//   - Category: free-text label; empty means uncategorized.
//   - CreatedAt: creation time in milliseconds since the Unix epoch. Set once
//     by GORM on insert when zero, never touched by updates.
type QuoteEntity struct {
	ID        int64  `json:"id"         gorm:"primaryKey;autoIncrement"`
	Text      string `json:"text"       gorm:"type:text;not null"`
	Author    string `json:"author"     gorm:"type:text;not null;default:''"`
	Category  string `json:"category"   gorm:"type:text;not null;default:'';index:idx_quotes_category"`
	CreatedAt int64  `json:"created_at" gorm:"not null;autoCreateTime:milli;index:idx_quotes_created"`
}

// TableName returns the database table name for QuoteEntity.
func (QuoteEntity) TableName() string { return "quotes" }

// ToQuote converts a stored record to its domain shape. It fails with
// ErrBlankText for a record whose text is blank and falls back to
// DefaultAuthor when the stored author is blank.
func (e QuoteEntity) ToQuote() (Quote, error) {
	if strings.TrimSpace(e.Text) == "" {
		return Quote{}, fmt.Errorf("%w (id=%d)", ErrBlankText, e.ID)
	}
	return Quote{
		ID:        e.ID,
		Text:      e.Text,
		Author:    AuthorOrDefault(e.Author),
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
	}, nil
}

// FromQuote builds the record for q. No defaulting happens here; callers
// normalize first.
func FromQuote(q Quote) QuoteEntity {
	return QuoteEntity{
		ID:        q.ID,
		Text:      q.Text,
		Author:    q.Author,
		Category:  q.Category,
		CreatedAt: q.CreatedAt,
	}
}

// Quote is the domain value shown to users.
type Quote struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"       validate:"notblank"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"created_at"`
}

// Normalized returns a copy with text, author and category trimmed and the
// author defaulted.
func (q Quote) Normalized() Quote {
	q.Text = strings.TrimSpace(q.Text)
	q.Author = AuthorOrDefault(q.Author)
	q.Category = strings.TrimSpace(q.Category)
	return q
}

// Uncategorized reports whether q carries no category.
func (q Quote) Uncategorized() bool { return q.Category == "" }

// Created returns CreatedAt as a time.Time in UTC.
func (q Quote) Created() time.Time { return time.UnixMilli(q.CreatedAt).UTC() }

// AuthorOrDefault trims author and substitutes DefaultAuthor when blank.
func AuthorOrDefault(author string) string {
	if a := strings.TrimSpace(author); a != "" {
		return a
	}
	return DefaultAuthor
}

// SchemaMigration records one applied schema step.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(128);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for SchemaMigration.
func (SchemaMigration) TableName() string { return "schema_migrations" }
