package models

// Follow-up states and priorities.
const (
	FollowUpStatusPending = "pending"
	FollowUpStatusDone    = "done"

	FollowUpPriorityHigh   = "high"
	FollowUpPriorityMedium = "medium"
	FollowUpPriorityLow    = "low"
)

// FollowUp is a scheduled task to chase a customer, created automatically when
// a quote is sent and removed when its booking is deleted.
type FollowUp struct {
	BaseModel

	CustomerName  string `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(64)" json:"customer_phone"`

	Type     string `gorm:"type:varchar(32)" json:"type"`
	Priority string `gorm:"type:varchar(16);default:'medium'" json:"priority"`
	Status   string `gorm:"type:varchar(16);default:'pending';index" json:"status"`
	DueDate  string `gorm:"type:varchar(10)" json:"due_date"` // YYYY-MM-DD
	Notes    string `gorm:"type:text" json:"notes"`

	BookingID *string `gorm:"type:uuid;index" json:"booking_id,omitempty"`
}
