package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/slenderdeveloperman/QuoteBook/internal/domain"
)

func TestOpenSQLite_ErrorOnBadPath(t *testing.T) {
	base := t.TempDir()
	bad := filepath.Join(base, "does-not-exist", "quotes.db")

	db, err := OpenSQLite(bad)
	if err == nil || db != nil {
		t.Fatalf("expected error opening %q, got db=%v err=%v", bad, db, err)
	}

	lower := strings.ToLower(err.Error())
	if !(os.IsNotExist(err) ||
		strings.Contains(lower, "unable to open database file") ||
		strings.Contains(lower, "no such file or directory") ||
		strings.Contains(lower, "out of memory")) {
		t.Fatalf("unexpected error opening %q: %v", bad, err)
	}
}

func TestOpenSQLite_SetsPragmas_Pool_AndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.db")

	db, err := OpenSQLite(path, WithTracing())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	var (
		journalMode string
		syncVal     int
		busyMS      int
	)
	if err := db.Raw("PRAGMA journal_mode;").Row().Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if strings.ToLower(journalMode) != "wal" {
		t.Fatalf("expected journal_mode=wal, got %q", journalMode)
	}
	if err := db.Raw("PRAGMA synchronous;").Row().Scan(&syncVal); err != nil {
		t.Fatalf("PRAGMA synchronous: %v", err)
	}
	// NORMAL == 1
	if syncVal != 1 {
		t.Fatalf("expected synchronous=1 (NORMAL), got %d", syncVal)
	}
	if err := db.Raw("PRAGMA busy_timeout;").Row().Scan(&busyMS); err != nil {
		t.Fatalf("PRAGMA busy_timeout: %v", err)
	}
	if busyMS != 5000 {
		t.Fatalf("expected busy_timeout=5000, got %d", busyMS)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 10 {
		t.Fatalf("expected MaxOpenConnections=10, got %d", stats.MaxOpenConnections)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&domain.QuoteEntity{}, &domain.SchemaMigration{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	v, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != len(migrations) {
		t.Fatalf("SchemaVersion = %d; want %d", v, len(migrations))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	var n int64
	if err := db.Model(&domain.SchemaMigration{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(migrations)) {
		t.Fatalf("expected %d migration rows, got %d", len(migrations), n)
	}
}

func TestMigrate_ClearsLegacyCategoryPlaceholder(t *testing.T) {
	db := openTestDB(t)

	// Simulate a database written before step 2 existed.
	legacy := []domain.QuoteEntity{
		{Text: "a", Category: domain.LegacyUncategorized, CreatedAt: 1},
		{Text: "b", Category: "work", CreatedAt: 2},
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := db.Where("version = ?", 2).Delete(&domain.SchemaMigration{}).Error; err != nil {
		t.Fatalf("rewind: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	store := NewQuoteStore(db)
	a, err := store.GetByID(context.Background(), legacy[0].ID)
	if err != nil || a == nil || a.Category != "" {
		t.Fatalf("legacy placeholder not cleared: %+v err=%v", a, err)
	}
	b, err := store.GetByID(context.Background(), legacy[1].ID)
	if err != nil || b == nil || b.Category != "work" {
		t.Fatalf("real category must survive: %+v err=%v", b, err)
	}
}

// Compile-time guard to ensure signature stability.
var _ func(string, ...Option) (*gorm.DB, error) = OpenSQLite
