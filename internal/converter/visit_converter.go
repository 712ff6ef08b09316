package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

func VisitToResponse(record *entity.VisitRecord) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:               record.ID,
		AppointmentID:    record.AppointmentID,
		VisitType:        record.VisitType,
		TestsDone:        record.TestsDone,
		Diagnosis:        record.Diagnosis,
		Prescription:     record.Prescription,
		Notes:            record.Notes,
		FollowupRequired: record.FollowupRequired,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}
