package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/models"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/internal/realtime"
	"github.com/auzzsichauffeurau-gif/auzzichauffeur-sub000/pkg/logger"
)

const (
	defaultReminderInterval = time.Minute
	reminderWindow          = 60 * time.Minute
)

// Reminder announces a booking whose pickup is inside the next hour.
type Reminder struct {
	BookingID      string    `json:"booking_id"`
	CustomerName   string    `json:"customer_name"`
	PickupLocation string    `json:"pickup_location"`
	PickupAt       time.Time `json:"pickup_at"`
	MinutesAway    int       `json:"minutes_away"`
}

// ReminderPoller sweeps today's active bookings once a minute and broadcasts a
// reminder for each pickup due within the hour. Each booking is announced once
// per process lifetime; restarting the server re-announces still-due pickups.
type ReminderPoller struct {
	db  *gorm.DB
	hub *realtime.Hub
	log *zap.Logger

	cron     *cron.Cron
	now      func() time.Time
	interval time.Duration

	mu        sync.Mutex
	announced map[string]struct{}
}

// ReminderOption customises the ReminderPoller.
type ReminderOption func(*ReminderPoller)

// WithReminderCron injects a preconfigured cron instance, primarily for testing.
func WithReminderCron(c *cron.Cron) ReminderOption {
	return func(p *ReminderPoller) {
		if c != nil {
			p.cron = c
		}
	}
}

// WithReminderNow overrides the clock.
func WithReminderNow(now func() time.Time) ReminderOption {
	return func(p *ReminderPoller) {
		if now != nil {
			p.now = now
		}
	}
}

// WithReminderInterval overrides the sweep interval.
func WithReminderInterval(interval time.Duration) ReminderOption {
	return func(p *ReminderPoller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// NewReminderPoller constructs a ReminderPoller.
func NewReminderPoller(db *gorm.DB, hub *realtime.Hub, opts ...ReminderOption) (*ReminderPoller, error) {
	if db == nil {
		return nil, errors.New("alerts: db is required")
	}

	poller := &ReminderPoller{
		db:        db,
		hub:       hub,
		log:       logger.WithModule("reminders"),
		now:       time.Now,
		interval:  defaultReminderInterval,
		announced: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(poller)
	}

	if poller.cron == nil {
		poller.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return poller, nil
}

// Start runs one sweep immediately, then schedules recurring sweeps.
func (p *ReminderPoller) Start() error {
	if _, err := p.Sweep(context.Background()); err != nil {
		p.log.Warn("initial reminder sweep failed", zap.Error(err))
	}

	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := p.cron.AddFunc(spec, func() {
		if _, err := p.Sweep(context.Background()); err != nil {
			p.log.Warn("reminder sweep failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("alerts: schedule reminder sweep: %w", err)
	}

	p.cron.Start()
	return nil
}

// Stop halts the scheduler.
func (p *ReminderPoller) Stop() context.Context {
	return p.cron.Stop()
}

// Sweep returns the reminders announced during this pass.
func (p *ReminderPoller) Sweep(ctx context.Context) ([]Reminder, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	now := p.now()
	today := now.Format("2006-01-02")

	var bookings []models.Booking
	err := p.db.WithContext(ctx).
		Where("pickup_date = ? AND status IN ?", today,
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("alerts: fetch upcoming bookings: %w", err)
	}

	var due []Reminder
	for _, booking := range bookings {
		if booking.PickupTime == "" {
			continue
		}

		pickupAt, ok := parsePickupAt(booking.PickupDate, booking.PickupTime, now.Location())
		if !ok {
			continue
		}

		until := pickupAt.Sub(now)
		if until <= 0 || until > reminderWindow {
			continue
		}

		if !p.markAnnounced(booking.ID) {
			continue
		}

		reminder := Reminder{
			BookingID:      booking.ID,
			CustomerName:   booking.CustomerName,
			PickupLocation: booking.PickupLocation,
			PickupAt:       pickupAt,
			MinutesAway:    int(until.Round(time.Minute) / time.Minute),
		}
		due = append(due, reminder)

		if p.hub != nil {
			p.hub.Broadcast(realtime.Message{
				Stream: realtime.StreamAlerts,
				Event:  realtime.EventReminderDue,
				Data:   reminder,
			})
		}
	}

	return due, nil
}

// parsePickupAt combines the stored date and time columns. The time column may
// carry seconds depending on which form wrote it.
func parsePickupAt(date, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if at, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return at, true
		}
	}
	return time.Time{}, false
}

// markAnnounced records the booking; reports false when it was already announced.
func (p *ReminderPoller) markAnnounced(bookingID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, seen := p.announced[bookingID]; seen {
		return false
	}
	p.announced[bookingID] = struct{}{}
	return true
}
