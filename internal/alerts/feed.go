package alerts

import "time"

// SourceType identifies which record stream produced an alert item.
type SourceType string

const (
	SourceBooking SourceType = "booking"
	SourceQuote   SourceType = "quote"
	SourceMessage SourceType = "message"
)

// AlertItem is a derived, never-persisted view of one record needing operator
// attention. Items are rebuilt wholesale on every poll cycle.
type AlertItem struct {
	ID          string     `json:"id"`
	SourceType  SourceType `json:"source_type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	OccurredAt  time.Time  `json:"occurred_at"`
	TargetRoute string     `json:"target_route"`
}

// FeedSnapshot is a point-in-time copy of the merged alert feed.
// Count always equals len(Items); PreviousCount is the count as of the poll
// before the one that produced this snapshot.
type FeedSnapshot struct {
	Items         []AlertItem `json:"items"`
	Count         int         `json:"count"`
	PreviousCount int         `json:"previous_count"`
}
