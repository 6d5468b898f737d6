package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database/testutil"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

func TestFollowUpServiceLifecycle(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewFollowUpService(db)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := svc.Create(ctx, CreateFollowUpInput{
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		Type:          "quote",
		Priority:      models.FollowUpPriorityHigh,
		DueDate:       "2026-09-02",
		Notes:         "Chase the sedan quote",
		BookingID:     "booking-1",
	})
	require.NoError(t, err)
	require.Equal(t, models.FollowUpStatusPending, created.Status)
	require.NotNil(t, created.BookingID)

	pending, err := svc.List(ctx, models.FollowUpStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, svc.MarkDone(ctx, created.ID))
	pending, err = svc.List(ctx, models.FollowUpStatusPending)
	require.NoError(t, err)
	require.Empty(t, pending)

	require.ErrorIs(t, svc.MarkDone(ctx, "missing"), apperrors.ErrNotFound)
}

func TestFollowUpServiceCreateDefaults(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewFollowUpService(db)
	require.NoError(t, err)

	created, err := svc.Create(context.Background(), CreateFollowUpInput{CustomerName: "Alice"})
	require.NoError(t, err)
	require.Equal(t, "general", created.Type)
	require.Equal(t, models.FollowUpPriorityMedium, created.Priority)
	require.Nil(t, created.BookingID)

	_, err = svc.Create(context.Background(), CreateFollowUpInput{})
	require.Error(t, err)
}

func TestFollowUpServiceDeleteForBooking(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewFollowUpService(db)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = svc.Create(ctx, CreateFollowUpInput{CustomerName: "Alice", BookingID: "booking-1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateFollowUpInput{CustomerName: "Bob", BookingID: "booking-2"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteForBooking(ctx, "booking-1"))

	remaining, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "Bob", remaining[0].CustomerName)
}
