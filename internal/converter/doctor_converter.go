package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// DoctorToResponse converts a doctor profile (with preloaded user and
// department) into the API representation.
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	resp := &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		Specialization:  profile.Specialization,
		ExperienceYears: profile.ExperienceYears,
		Phone:           profile.Phone,
		Address:         profile.Address,
		ConsultationFee: profile.ConsultationFee,
		IsActive:        profile.User.IsActive,
	}

	if profile.Department != nil {
		resp.Department = profile.Department.Name
	}

	return resp
}

func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, *DoctorToResponse(&profiles[i]))
	}
	return responses
}
