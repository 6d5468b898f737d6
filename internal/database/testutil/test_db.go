package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database"
)

// dbSeq names each in-memory database uniquely so tests stay isolated while
// cache=shared keeps the schema visible to every pooled connection.
var dbSeq atomic.Int64

type prepareMode int

const (
	prepareNone prepareMode = iota
	prepareMigrate
	prepareSeed
)

// TestDBOption customises the behaviour of MustOpenTestDB.
type TestDBOption func(*prepareMode)

// WithAutoMigrate applies schema migrations after opening the test database.
func WithAutoMigrate() TestDBOption {
	return func(mode *prepareMode) {
		if *mode < prepareMigrate {
			*mode = prepareMigrate
		}
	}
}

// WithSeedData applies migrations and inserts the default seed rows.
func WithSeedData() TestDBOption {
	return func(mode *prepareMode) {
		*mode = prepareSeed
	}
}

// MustOpenTestDB opens a private in-memory SQLite database for the test and
// closes it on cleanup.
func MustOpenTestDB(t *testing.T, opts ...TestDBOption) *gorm.DB {
	t.Helper()

	mode := prepareNone
	for _, opt := range opts {
		opt(&mode)
	}

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn})
	require.NoError(t, err)

	switch mode {
	case prepareSeed:
		require.NoError(t, database.AutoMigrateAndSeed(db))
	case prepareMigrate:
		require.NoError(t, database.AutoMigrate(db))
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
