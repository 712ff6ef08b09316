package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	SlotID uint `json:"slot_id" validate:"required,gt=0"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          uint           `json:"id"`
	PatientID   uuid.UUID      `json:"patient_id"`
	PatientName string         `json:"patient_name,omitempty"`
	DoctorID    uuid.UUID      `json:"doctor_id"`
	DoctorName  string         `json:"doctor_name,omitempty"`
	Date        string         `json:"date"`
	TimeSlot    string         `json:"time_slot"`
	Status      string         `json:"status"`
	Visit       *VisitResponse `json:"visit,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AdminDashboardResponse struct {
	TotalDoctors      int64 `json:"total_doctors"`
	TotalPatients     int64 `json:"total_patients"`
	TotalAppointments int64 `json:"total_appointments"`
}
