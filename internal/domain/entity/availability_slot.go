package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the status of an availability slot
type SlotStatus string

const (
	SlotStatusAvailable   SlotStatus = "Available"
	SlotStatusUnavailable SlotStatus = "Unavailable"
	SlotStatusBooked      SlotStatus = "Booked"
)

// AvailabilitySlot is a doctor-declared bookable time window on a specific date.
// Date and TimeSlot are stored as the doctor entered them; the time window's
// end is derived by pkg/timeslot when validating or expiring the slot.
// At most one slot exists per (doctor, date, time_slot).
type AvailabilitySlot struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_slot_key,unique" json:"doctor_id"`
	Date      string     `gorm:"type:varchar(20);not null;index:idx_slot_key,unique" json:"date"`
	TimeSlot  string     `gorm:"type:varchar(20);not null;index:idx_slot_key,unique" json:"time_slot"`
	Status    SlotStatus `gorm:"type:varchar(12);not null;default:'Available'" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// IsAvailable checks if the slot can still be claimed by a patient
func (s *AvailabilitySlot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsBooked checks if the slot has been consumed by an appointment
func (s *AvailabilitySlot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// Toggled returns the flipped publish state. Booked slots do not flip.
func (s *AvailabilitySlot) Toggled() SlotStatus {
	if s.Status == SlotStatusAvailable {
		return SlotStatusUnavailable
	}
	return SlotStatusAvailable
}
