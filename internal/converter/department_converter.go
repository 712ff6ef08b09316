package converter

import (
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
)

func DepartmentToResponse(department *entity.Department) *dto.DepartmentResponse {
	return &dto.DepartmentResponse{
		ID:          department.ID,
		Name:        department.Name,
		Description: department.Description,
	}
}

func DepartmentsToResponses(departments []entity.Department) []dto.DepartmentResponse {
	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		responses = append(responses, *DepartmentToResponse(&departments[i]))
	}
	return responses
}
