package models

// Driver is a chauffeur available for booking assignment.
type Driver struct {
	BaseModel

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Phone   string `gorm:"type:varchar(64)" json:"phone"`
	Licence string `gorm:"type:varchar(64)" json:"licence"`
	Status  string `gorm:"type:varchar(32);default:'Available';index" json:"status"`
}
