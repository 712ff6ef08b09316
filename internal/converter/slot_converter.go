package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

func SlotToResponse(slot *entity.AvailabilitySlot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:       slot.ID,
		DoctorID: slot.DoctorID,
		Date:     slot.Date,
		TimeSlot: slot.TimeSlot,
		Status:   string(slot.Status),
	}
}

func SlotsToResponses(slots []entity.AvailabilitySlot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		responses = append(responses, *SlotToResponse(&slots[i]))
	}
	return responses
}
