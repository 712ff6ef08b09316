package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// CanTransitionTo reports whether an appointment may move to the target
// status. Booked may move to Completed or Cancelled; both are terminal.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	if s != AppointmentStatusBooked {
		return false
	}
	return target == AppointmentStatusCompleted || target == AppointmentStatusCancelled
}

// Appointment is a confirmed patient-doctor booking of one slot.
// SlotID records the consumed availability slot at booking time; it is nil
// for walk-in visits and may dangle once the expiry sweep removes the slot,
// so Date/TimeSlot are copied onto the appointment as well.
type Appointment struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	SlotID    *uint             `gorm:"index" json:"slot_id,omitempty"`
	Date      string            `gorm:"type:varchar(20);not null" json:"date"`
	TimeSlot  string            `gorm:"type:varchar(20);not null" json:"time_slot"`
	Status    AppointmentStatus `gorm:"type:varchar(12);not null;default:'Booked';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Visit   *VisitRecord   `gorm:"foreignKey:AppointmentID" json:"visit,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBooked checks if the appointment is still open
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCompleted checks if the appointment has been finalized with a visit
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// IsCancelled checks if the appointment was cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
