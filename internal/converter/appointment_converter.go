package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// AppointmentToResponse converts an appointment (optionally with preloaded
// patient, doctor and visit) into the API representation.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	resp := &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date,
		TimeSlot:  appointment.TimeSlot,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
	}

	if appointment.Patient.User.FullName != "" {
		resp.PatientName = appointment.Patient.User.FullName
	}
	if appointment.Doctor.User.FullName != "" {
		resp.DoctorName = appointment.Doctor.User.FullName
	}
	if appointment.Visit != nil {
		resp.Visit = VisitToResponse(appointment.Visit)
	}

	return resp
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *AppointmentToResponse(&appointments[i]))
	}
	return responses
}
