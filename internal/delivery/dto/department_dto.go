package dto

// Response DTOs

type DepartmentResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

// DepartmentDetailResponse includes the doctors attached to the department
type DepartmentDetailResponse struct {
	DepartmentResponse
	Doctors []DoctorResponse `json:"doctors"`
}
