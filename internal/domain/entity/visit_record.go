package entity

import "time"

// VisitRecord is the clinical outcome attached to a completed appointment.
// Exactly one record exists per appointment; it is removed only when the
// owning doctor is deleted.
type VisitRecord struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID    uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	VisitType        string    `gorm:"type:varchar(100)" json:"visit_type,omitempty"`
	TestsDone        string    `gorm:"type:text" json:"tests_done,omitempty"`
	Diagnosis        string    `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription     string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes            string    `gorm:"type:text" json:"notes,omitempty"`
	FollowupRequired bool      `gorm:"not null;default:false" json:"followup_required"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (VisitRecord) TableName() string {
	return "visit_records"
}
