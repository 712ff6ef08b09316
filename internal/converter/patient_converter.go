package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// PatientToResponse converts a patient profile (with preloaded user) into
// the API representation.
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:       profile.UserID,
		Email:    profile.User.Email,
		FullName: profile.User.FullName,
		Age:      profile.Age,
		Gender:   profile.Gender,
		Phone:    profile.Phone,
		Address:  profile.Address,
		IsActive: profile.User.IsActive,
	}
}

func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *PatientToResponse(&profiles[i]))
	}
	return responses
}
