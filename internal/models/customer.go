package models

// Customer is the CRM record synchronised from bookings, keyed by email.
type Customer struct {
	BaseModel

	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Phone    string `gorm:"type:varchar(64)" json:"phone"`
	Status   string `gorm:"type:varchar(32);default:'Active'" json:"status"`
	Notes    string `gorm:"type:text" json:"notes"`
}
