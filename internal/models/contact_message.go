package models

// ContactMessage is an inbound message from the public contact form. Recent
// messages are one of the alert aggregator's sources.
type ContactMessage struct {
	BaseModel

	FirstName string `gorm:"type:varchar(128);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(128)" json:"last_name"`
	Email     string `gorm:"type:varchar(255)" json:"email"`
	Phone     string `gorm:"type:varchar(64)" json:"phone"`
	Message   string `gorm:"type:text" json:"message"`
}
