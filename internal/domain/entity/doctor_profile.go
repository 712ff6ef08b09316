package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears int             `gorm:"default:0" json:"experience_years"`
	Phone           string          `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address         string          `gorm:"type:varchar(200)" json:"address,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"consultation_fee"`
	DepartmentID    *int            `gorm:"index" json:"department_id,omitempty"`

	// Relationships
	User       User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Department *Department        `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Slots      []AvailabilitySlot `gorm:"foreignKey:DoctorID" json:"slots,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
