package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database/testutil"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
)

func TestFleetServiceListVehicles(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate(), testutil.WithSeedData())
	svc, err := NewFleetService(db)
	require.NoError(t, err)

	vehicles, err := svc.ListVehicles(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, vehicles, 3)

	available, err := svc.ListVehicles(context.Background(), "Available")
	require.NoError(t, err)
	require.Len(t, available, 3)

	none, err := svc.ListVehicles(context.Background(), "Retired")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFleetServiceListDrivers(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewFleetService(db)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Driver{Name: "Sam", Status: "Available"}).Error)
	require.NoError(t, db.Create(&models.Driver{Name: "Lee", Status: "On Trip"}).Error)

	drivers, err := svc.ListDrivers(context.Background(), "Available")
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "Sam", drivers[0].Name)
}
