package models

// Vehicle is a fleet car available for booking assignment.
type Vehicle struct {
	BaseModel

	Make   string `gorm:"type:varchar(64);not null" json:"make"`
	Model  string `gorm:"type:varchar(64);not null" json:"model"`
	Rego   string `gorm:"type:varchar(16)" json:"rego"`
	Type   string `gorm:"type:varchar(64)" json:"type"`
	Status string `gorm:"type:varchar(32);default:'Available';index" json:"status"`
}
