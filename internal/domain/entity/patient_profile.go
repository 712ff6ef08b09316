package entity

import "github.com/google/uuid"

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Age     int       `gorm:"default:0" json:"age"`
	Gender  string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone   string    `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Address string    `gorm:"type:varchar(200)" json:"address,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
