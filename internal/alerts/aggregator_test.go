package alerts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/database/testutil"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
)

type countingSink struct {
	mu        sync.Mutex
	firings   int
	lastCount int
}

func (s *countingSink) Alert(snapshot FeedSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firings++
	s.lastCount = snapshot.Count
}

func (s *countingSink) Firings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.firings
}

func seedBooking(t *testing.T, db *gorm.DB, name string, status models.BookingStatus, createdAt time.Time) models.Booking {
	t.Helper()
	booking := models.Booking{
		CustomerName:  name,
		CustomerEmail: name + "@example.com",
		PickupDate:    "2026-09-01",
		PickupTime:    "10:00",
		VehicleType:   "Luxury Sedan",
		Status:        status,
		Amount:        150,
	}
	require.NoError(t, db.Create(&booking).Error)
	require.NoError(t, db.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("created_at", createdAt).Error)
	booking.CreatedAt = createdAt
	return booking
}

func seedMessage(t *testing.T, db *gorm.DB, first, last string, createdAt time.Time) models.ContactMessage {
	t.Helper()
	message := models.ContactMessage{
		FirstName: first,
		LastName:  last,
		Email:     first + "@example.com",
		Message:   "Hello",
	}
	require.NoError(t, db.Create(&message).Error)
	require.NoError(t, db.Model(&models.ContactMessage{}).
		Where("id = ?", message.ID).
		Update("created_at", createdAt).Error)
	message.CreatedAt = createdAt
	return message
}

func TestPollMergesSourcesNewestFirst(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	seedBooking(t, db, "Alice", models.StatusPending, base.Add(-1*time.Minute))
	seedBooking(t, db, "Bob", models.StatusQuoteRequest, base.Add(-3*time.Minute))
	seedMessage(t, db, "Carol", "Ng", base.Add(-2*time.Minute))

	snapshot, err := agg.Poll(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, snapshot.Count)
	require.Len(t, snapshot.Items, 3)
	require.Equal(t, SourceBooking, snapshot.Items[0].SourceType)
	require.Equal(t, SourceMessage, snapshot.Items[1].SourceType)
	require.Equal(t, SourceQuote, snapshot.Items[2].SourceType)
	require.Equal(t, "New Quote Request", snapshot.Items[2].Title)
	require.Equal(t, "Carol Ng sent a message.", snapshot.Items[1].Message)

	// Items are ordered by occurrence, newest first.
	require.True(t, snapshot.Items[0].OccurredAt.After(snapshot.Items[1].OccurredAt))
	require.True(t, snapshot.Items[1].OccurredAt.After(snapshot.Items[2].OccurredAt))
}

func TestPollIgnoresNonAlertStatuses(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	now := time.Now().UTC()
	seedBooking(t, db, "Confirmed", models.StatusConfirmed, now)
	seedBooking(t, db, "Done", models.StatusCompleted, now)
	seedBooking(t, db, "Pending", models.StatusPending, now)

	snapshot, err := agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, snapshot.Count)
	require.Equal(t, "Pending submitted a request.", snapshot.Items[0].Message)
}

func TestPollIsIdempotent(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	now := time.Now().UTC()
	seedBooking(t, db, "Alice", models.StatusPending, now.Add(-time.Minute))
	seedMessage(t, db, "Bob", "Lee", now.Add(-2*time.Minute))

	first, err := agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, first.Count)
	require.Equal(t, 1, sink.Firings())

	second, err := agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Count, second.Count)
	require.Equal(t, 1, sink.Firings(), "unchanged store must not re-fire the alert")

	firstIDs := make([]string, 0, len(first.Items))
	for _, item := range first.Items {
		firstIDs = append(firstIDs, item.ID)
	}
	secondIDs := make([]string, 0, len(second.Items))
	for _, item := range second.Items {
		secondIDs = append(secondIDs, item.ID)
	}
	require.Equal(t, firstIDs, secondIDs)
}

func TestAlertIsLevelTriggered(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	now := time.Now().UTC()
	seedBooking(t, db, "One", models.StatusPending, now.Add(-5*time.Minute))
	seedBooking(t, db, "Two", models.StatusPending, now.Add(-4*time.Minute))

	_, err = agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sink.Firings())

	// Three more items arrive before the next poll: exactly one more firing.
	seedBooking(t, db, "Three", models.StatusPending, now.Add(-3*time.Minute))
	seedBooking(t, db, "Four", models.StatusQuoteRequest, now.Add(-2*time.Minute))
	seedMessage(t, db, "Five", "M", now.Add(-time.Minute))

	snapshot, err := agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, snapshot.Count)
	require.Equal(t, 2, snapshot.PreviousCount)
	require.Equal(t, 2, sink.Firings())

	// Same count again: no firing.
	_, err = agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, sink.Firings())

	// Items consumed elsewhere: count drops, no firing, previousCount follows.
	require.NoError(t, db.Model(&models.Booking{}).
		Where("customer_name IN ?", []string{"Three", "Four"}).
		Update("status", models.StatusConfirmed).Error)

	snapshot, err = agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Count)
	require.Equal(t, 2, sink.Firings())

	require.Equal(t, 3, agg.Snapshot().PreviousCount)
}

func TestPollDegradesFailedSource(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	now := time.Now().UTC()
	seedBooking(t, db, "Alice", models.StatusPending, now.Add(-time.Minute))
	seedBooking(t, db, "Bob", models.StatusQuoteRequest, now.Add(-2*time.Minute))

	// Drop the messages table so that source fails while bookings still work.
	require.NoError(t, db.Migrator().DropTable(&models.ContactMessage{}))

	snapshot, err := agg.Poll(context.Background())
	require.Error(t, err, "degraded sources are reported")
	require.Contains(t, err.Error(), "messages source")

	require.Equal(t, 2, snapshot.Count, "bookings alone justify the count")
	require.Len(t, snapshot.Items, 2)
	require.Equal(t, 1, sink.Firings(), "alert still fires on the surviving source")
}

func TestPollRespectsPageSizes(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink, WithPageSizes(2, 1))
	require.NoError(t, err)

	now := time.Now().UTC()
	for i := 0; i < 4; i++ {
		seedBooking(t, db, "B", models.StatusPending, now.Add(time.Duration(-i)*time.Minute))
	}
	seedMessage(t, db, "M1", "", now)
	seedMessage(t, db, "M2", "", now.Add(-time.Minute))

	snapshot, err := agg.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, snapshot.Count)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	sink := &countingSink{}
	agg, err := NewAggregator(db, sink)
	require.NoError(t, err)

	seedBooking(t, db, "Alice", models.StatusPending, time.Now().UTC())
	_, err = agg.Poll(context.Background())
	require.NoError(t, err)

	snapshot := agg.Snapshot()
	require.Equal(t, 1, snapshot.Count)
	snapshot.Items[0].Title = "mutated"

	require.Equal(t, "New Booking", agg.Snapshot().Items[0].Title)
}

func TestNewAggregatorValidatesInputs(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	_, err := NewAggregator(nil, AlertSinkFunc(func(FeedSnapshot) {}))
	require.Error(t, err)

	_, err = NewAggregator(db, nil)
	require.Error(t, err)
}
