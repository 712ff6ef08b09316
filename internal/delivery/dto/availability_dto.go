package dto

import "github.com/google/uuid"

// SlotStatusNone is the bulk-save sentinel meaning "leave this window alone
// unless a row already exists, in which case delete nothing and change
// nothing". The editor sends it for windows the doctor never touched.
const SlotStatusNone = "none"

// Request DTOs

type AddSlotRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,min=3,max=50"`
	Status   string `json:"status" validate:"omitempty,oneof=Available Unavailable"`
}

type ToggleSlotRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,min=3,max=50"`
}

type SlotChange struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"time_slot" validate:"required,min=3,max=50"`
	Status   string `json:"status" validate:"required,oneof=Available Unavailable none"`
}

type BulkSaveRequest struct {
	Changes []SlotChange `json:"changes" validate:"required,min=1,dive"`
}

// Response DTOs

type SlotResponse struct {
	ID       uint      `json:"id"`
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	TimeSlot string    `json:"time_slot"`
	Status   string    `json:"status"`
}

type BulkSaveResponse struct {
	Changed int `json:"changed"`
}

// CalendarWindow is one bookable window cell in the weekly grid. Disabled is
// advisory only; the UI greys the cell out but the server still accepts
// writes against it.
type CalendarWindow struct {
	Key      string        `json:"key"`
	TimeSlot string        `json:"time_slot"`
	Disabled bool          `json:"disabled"`
	Slot     *SlotResponse `json:"slot,omitempty"`
}

type CalendarDay struct {
	Date    string           `json:"date"`
	Windows []CalendarWindow `json:"windows"`
}

type CalendarResponse struct {
	DoctorID uuid.UUID     `json:"doctor_id"`
	Days     []CalendarDay `json:"days"`
}
