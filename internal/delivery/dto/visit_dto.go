package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type FinalizeVisitRequest struct {
	VisitType        string `json:"visit_type" validate:"omitempty,max=50"`
	TestsDone        string `json:"tests_done" validate:"omitempty,max=500"`
	Diagnosis        string `json:"diagnosis" validate:"omitempty,max=500"`
	Prescription     string `json:"prescription" validate:"omitempty,max=1000"`
	Medicines        string `json:"medicines" validate:"omitempty,max=500"`
	Notes            string `json:"notes" validate:"omitempty,max=2000"`
	FollowupRequired bool   `json:"followup_required"`
}

// WalkInVisitRequest records a consultation that never went through booking.
// The appointment is created dated now and immediately completed.
type WalkInVisitRequest struct {
	PatientID        uuid.UUID `json:"patient_id" validate:"required"`
	VisitType        string    `json:"visit_type" validate:"omitempty,max=50"`
	TestsDone        string    `json:"tests_done" validate:"omitempty,max=500"`
	Diagnosis        string    `json:"diagnosis" validate:"omitempty,max=500"`
	Prescription     string    `json:"prescription" validate:"omitempty,max=1000"`
	Medicines        string    `json:"medicines" validate:"omitempty,max=500"`
	Notes            string    `json:"notes" validate:"omitempty,max=2000"`
	FollowupRequired bool      `json:"followup_required"`
}

// Response DTOs

type VisitResponse struct {
	ID               uint      `json:"id"`
	AppointmentID    uint      `json:"appointment_id"`
	VisitType        string    `json:"visit_type,omitempty"`
	TestsDone        string    `json:"tests_done,omitempty"`
	Diagnosis        string    `json:"diagnosis,omitempty"`
	Prescription     string    `json:"prescription,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	FollowupRequired bool      `json:"followup_required"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PatientHistoryResponse struct {
	PatientID   uuid.UUID             `json:"patient_id"`
	PatientName string                `json:"patient_name,omitempty"`
	Visits      []AppointmentResponse `json:"visits"`
	Total       int                   `json:"total"`
}
