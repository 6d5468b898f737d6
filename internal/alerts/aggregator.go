package alerts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/logger"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/metrics"
)

const (
	defaultPollInterval  = 10 * time.Second
	defaultSourceTimeout = 5 * time.Second
	defaultBookingLimit  = 10
	defaultMessageLimit  = 5

	bookingsTargetRoute = "/admin/dashboard/bookings"
	messagesTargetRoute = "/admin/dashboard/messages"
)

// AlertSink receives the alert effect. Fired at most once per poll cycle, only
// when the merged feed grew since the previous cycle.
type AlertSink interface {
	Alert(snapshot FeedSnapshot)
}

// AlertSinkFunc adapts a function to the AlertSink interface.
type AlertSinkFunc func(snapshot FeedSnapshot)

// Alert implements AlertSink.
func (f AlertSinkFunc) Alert(snapshot FeedSnapshot) { f(snapshot) }

// Aggregator polls the record store on a fixed interval, merges pending
// bookings, quote requests and recent contact messages into one time-ordered
// feed, and fires the alert sink when the feed grows.
//
// One aggregator instance owns its feed state; nothing here is ambient, so
// tests and multiple processes never interfere with each other.
type Aggregator struct {
	db   *gorm.DB
	sink AlertSink
	log  *zap.Logger

	cron          *cron.Cron
	interval      time.Duration
	sourceTimeout time.Duration
	bookingLimit  int
	messageLimit  int

	mu            sync.Mutex
	items         []AlertItem
	previousCount int
}

// Option customises the Aggregator.
type Option func(*Aggregator)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.cron = c
		}
	}
}

// WithInterval overrides the poll interval.
func WithInterval(interval time.Duration) Option {
	return func(a *Aggregator) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

// WithSourceTimeout bounds each source fetch within a poll cycle.
func WithSourceTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) {
		if timeout > 0 {
			a.sourceTimeout = timeout
		}
	}
}

// WithPageSizes overrides the per-source fetch limits.
func WithPageSizes(bookings, messages int) Option {
	return func(a *Aggregator) {
		if bookings > 0 {
			a.bookingLimit = bookings
		}
		if messages > 0 {
			a.messageLimit = messages
		}
	}
}

// NewAggregator constructs an Aggregator.
func NewAggregator(db *gorm.DB, sink AlertSink, opts ...Option) (*Aggregator, error) {
	if db == nil {
		return nil, errors.New("alerts: db is required")
	}
	if sink == nil {
		return nil, errors.New("alerts: sink is required")
	}

	agg := &Aggregator{
		db:            db,
		sink:          sink,
		log:           logger.WithModule("alerts"),
		interval:      defaultPollInterval,
		sourceTimeout: defaultSourceTimeout,
		bookingLimit:  defaultBookingLimit,
		messageLimit:  defaultMessageLimit,
	}

	for _, opt := range opts {
		opt(agg)
	}

	if agg.cron == nil {
		agg.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return agg, nil
}

// Start runs one poll immediately, then schedules recurring polls. Stop must be
// called on teardown or the polling loop leaks.
func (a *Aggregator) Start() error {
	if _, err := a.Poll(context.Background()); err != nil {
		a.log.Warn("initial poll degraded", zap.Error(err))
	}

	spec := fmt.Sprintf("@every %s", a.interval)
	if _, err := a.cron.AddFunc(spec, func() {
		if _, err := a.Poll(context.Background()); err != nil {
			a.log.Warn("poll degraded", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("alerts: schedule poll: %w", err)
	}

	a.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for a running poll to finish.
func (a *Aggregator) Stop() context.Context {
	return a.cron.Stop()
}

// Snapshot returns a copy of the current feed state for the read path.
func (a *Aggregator) Snapshot() FeedSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() FeedSnapshot {
	items := make([]AlertItem, len(a.items))
	copy(items, a.items)
	return FeedSnapshot{
		Items:         items,
		Count:         len(items),
		PreviousCount: a.previousCount,
	}
}

// Poll fetches both sources in parallel, merges them newest-first, replaces the
// feed state and fires the sink once if the count rose since the last cycle.
//
// A failing source contributes zero items instead of aborting the poll; the
// returned error reports which sources degraded while the snapshot remains
// valid. The next scheduled tick is the retry.
func (a *Aggregator) Poll(ctx context.Context) (FeedSnapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		wg          sync.WaitGroup
		bookings    []models.Booking
		messages    []models.ContactMessage
		bookingsErr error
		messagesErr error
	)

	// The merge below must wait for both sources; acting on a partial result
	// would briefly shrink the feed and corrupt the level trigger.
	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, bookingsErr = a.fetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		messages, messagesErr = a.fetchMessages(ctx)
	}()
	wg.Wait()

	var pollErr error
	if bookingsErr != nil {
		metrics.AlertSourceFailures.WithLabelValues("bookings").Inc()
		a.log.Warn("bookings source degraded", zap.Error(bookingsErr))
		pollErr = multierr.Append(pollErr, fmt.Errorf("bookings source: %w", bookingsErr))
	}
	if messagesErr != nil {
		metrics.AlertSourceFailures.WithLabelValues("messages").Inc()
		a.log.Warn("messages source degraded", zap.Error(messagesErr))
		pollErr = multierr.Append(pollErr, fmt.Errorf("messages source: %w", messagesErr))
	}

	merged := make([]AlertItem, 0, len(bookings)+len(messages))
	for _, booking := range bookings {
		merged = append(merged, projectBooking(booking))
	}
	for _, message := range messages {
		merged = append(merged, projectMessage(message))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].OccurredAt.After(merged[j].OccurredAt)
	})

	a.mu.Lock()
	previous := a.previousCount
	a.items = merged
	count := len(merged)

	fire := count > previous
	a.previousCount = count
	snapshot := FeedSnapshot{
		Items:         append([]AlertItem(nil), merged...),
		Count:         count,
		PreviousCount: previous,
	}
	a.mu.Unlock()

	metrics.AlertFeedSize.Set(float64(count))
	if pollErr != nil {
		metrics.AlertPolls.WithLabelValues("degraded").Inc()
	} else {
		metrics.AlertPolls.WithLabelValues("ok").Inc()
	}

	// Level-triggered: one firing per cycle no matter how many items arrived.
	if fire {
		metrics.AlertFirings.Inc()
		a.sink.Alert(snapshot)
	}

	return snapshot, pollErr
}

func (a *Aggregator) fetchBookings(ctx context.Context) ([]models.Booking, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	var rows []models.Booking
	err := a.db.WithContext(fetchCtx).
		Where("status IN ?", []models.BookingStatus{models.StatusPending, models.StatusQuoteRequest}).
		Order("created_at DESC").
		Limit(a.bookingLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *Aggregator) fetchMessages(ctx context.Context) ([]models.ContactMessage, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.sourceTimeout)
	defer cancel()

	var rows []models.ContactMessage
	err := a.db.WithContext(fetchCtx).
		Order("created_at DESC").
		Limit(a.messageLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func projectBooking(booking models.Booking) AlertItem {
	isQuote := booking.Status == models.StatusQuoteRequest

	item := AlertItem{
		ID:          booking.ID,
		SourceType:  SourceBooking,
		Title:       "New Booking",
		Message:     fmt.Sprintf("%s submitted a request.", booking.CustomerName),
		OccurredAt:  booking.CreatedAt,
		TargetRoute: bookingsTargetRoute,
	}
	if isQuote {
		item.SourceType = SourceQuote
		item.Title = "New Quote Request"
	}
	return item
}

func projectMessage(message models.ContactMessage) AlertItem {
	name := strings.TrimSpace(message.FirstName + " " + message.LastName)
	return AlertItem{
		ID:          message.ID,
		SourceType:  SourceMessage,
		Title:       "New Contact Message",
		Message:     fmt.Sprintf("%s sent a message.", name),
		OccurredAt:  message.CreatedAt,
		TargetRoute: messagesTargetRoute,
	}
}
