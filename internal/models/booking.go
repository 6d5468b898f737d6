package models

// BookingStatus enumerates the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusQuoteRequest BookingStatus = "Quote Request"
	StatusQuoteSent    BookingStatus = "Quote Sent"
	StatusPending      BookingStatus = "Pending"
	StatusConfirmed    BookingStatus = "Confirmed"
	StatusInProgress   BookingStatus = "In Progress"
	StatusCompleted    BookingStatus = "Completed"
	StatusCancelled    BookingStatus = "Cancelled"
)

// allowedTransitions maps each status to the statuses reachable from it.
// Completed and Cancelled are terminal and have no outgoing edges.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusQuoteRequest: {StatusQuoteSent, StatusPending, StatusConfirmed, StatusCancelled},
	StatusQuoteSent:    {StatusPending, StatusConfirmed, StatusCancelled},
	StatusPending:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed:    {StatusInProgress, StatusCancelled},
	StatusInProgress:   {StatusCompleted, StatusCancelled},
}

// IsValidStatus reports whether the value is a member of the status enumeration.
func IsValidStatus(s BookingStatus) bool {
	switch s {
	case StatusQuoteRequest, StatusQuoteSent, StatusPending, StatusConfirmed,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is defined out of the status.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the lifecycle permits moving from s to target.
// A same-status transition is permitted as an idempotent no-op.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if s == target {
		return true
	}
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Booking represents a chauffeur booking or an unsolicited quote request.
type Booking struct {
	BaseModel

	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);index" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(64)" json:"customer_phone"`

	PickupDate      string `gorm:"type:varchar(10);index" json:"pickup_date"` // YYYY-MM-DD
	PickupTime      string `gorm:"type:varchar(8)" json:"pickup_time"`        // HH:MM
	PickupLocation  string `gorm:"type:text" json:"pickup_location"`
	DropoffLocation string `gorm:"type:text" json:"dropoff_location"`

	VehicleType string        `gorm:"type:varchar(64)" json:"vehicle_type"`
	Status      BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Amount      float64       `json:"amount"`
	Notes       string        `gorm:"type:text" json:"notes"`

	DriverID  *string `gorm:"type:uuid" json:"driver_id,omitempty"`
	VehicleID *string `gorm:"type:uuid" json:"vehicle_id,omitempty"`
}
