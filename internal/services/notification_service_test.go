package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database/testutil"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	apperrors "github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/errors"
)

func TestNotificationServiceCreateAndList(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := svc.Create(ctx, CreateNotificationInput{
		Type:      models.NotificationTypeBooking,
		Title:     "New Booking",
		Message:   "Alice submitted a request.",
		RelatedID: "booking-1",
		Metadata:  map[string]any{"amount": 250},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, CreateNotificationInput{
		Type:  models.NotificationTypeMessage,
		Title: "New Contact Message",
	})
	require.NoError(t, err)

	all, err := svc.List(ctx, ListNotificationsInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	bookingsOnly, err := svc.List(ctx, ListNotificationsInput{Type: models.NotificationTypeBooking})
	require.NoError(t, err)
	require.Len(t, bookingsOnly, 1)
	require.Equal(t, created.ID, bookingsOnly[0].ID)
}

func TestNotificationServiceCreateValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateNotificationInput{Title: "No type"})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), CreateNotificationInput{Type: models.NotificationTypeSystem})
	require.Error(t, err)
}

func TestNotificationServiceReadFlow(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := svc.Create(ctx, CreateNotificationInput{Type: models.NotificationTypeSystem, Title: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNotificationInput{Type: models.NotificationTypeSystem, Title: "Two"})
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	read, err := svc.MarkRead(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	unread, err := svc.List(ctx, ListNotificationsInput{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, svc.MarkAllRead(ctx))
	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = svc.MarkRead(ctx, "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotificationServiceDelete(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := svc.Create(ctx, CreateNotificationInput{Type: models.NotificationTypeSystem, Title: "One"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), apperrors.ErrNotFound)
}

func TestNotificationServiceDeleteRead(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewNotificationService(db, nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := svc.Create(ctx, CreateNotificationInput{Type: models.NotificationTypeSystem, Title: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNotificationInput{Type: models.NotificationTypeSystem, Title: "Two"})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, first.ID)
	require.NoError(t, err)

	removed, err := svc.DeleteRead(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	remaining, err := svc.List(ctx, ListNotificationsInput{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "Two", remaining[0].Title)
}
