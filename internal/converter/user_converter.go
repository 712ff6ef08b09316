package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

// UserToResponse converts a user entity (with preloaded role and profile)
// into the API representation.
func UserToResponse(user *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role.RoleName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.DoctorProfile != nil {
		resp.DoctorProfile = &dto.DoctorProfileResponse{
			Specialization:  user.DoctorProfile.Specialization,
			ExperienceYears: user.DoctorProfile.ExperienceYears,
			ConsultationFee: user.DoctorProfile.ConsultationFee,
		}
		if user.DoctorProfile.Department != nil {
			resp.DoctorProfile.Department = user.DoctorProfile.Department.Name
		}
	}

	if user.PatientProfile != nil {
		resp.PatientProfile = &dto.PatientProfileResponse{
			Age:     user.PatientProfile.Age,
			Gender:  user.PatientProfile.Gender,
			Phone:   user.PatientProfile.Phone,
			Address: user.PatientProfile.Address,
		}
	}

	return resp
}
