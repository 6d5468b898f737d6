package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
)

func TestSchemaVisibleAcrossPooledConnections(t *testing.T) {
	db := MustOpenTestDB(t, WithAutoMigrate())

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// Hold two connections at once, as concurrent fetches do, and make sure
	// both see the migrated schema rather than a private empty database.
	ctx := context.Background()
	first, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()
	second, err := sqlDB.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	for _, conn := range []*sql.Conn{first, second} {
		var count int
		require.NoError(t, conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&count))
		require.Zero(t, count)
	}
}

func TestDatabasesAreIsolatedBetweenTests(t *testing.T) {
	first := MustOpenTestDB(t, WithAutoMigrate())
	second := MustOpenTestDB(t, WithAutoMigrate())

	require.NoError(t, first.Create(&models.ContactMessage{
		FirstName: "Dana",
		Email:     "dana@example.com",
		Message:   "hello",
	}).Error)

	var count int64
	require.NoError(t, second.Model(&models.ContactMessage{}).Count(&count).Error)
	require.Zero(t, count)
}
