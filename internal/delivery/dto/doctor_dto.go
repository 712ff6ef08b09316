package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string          `json:"email" validate:"required,email"`
	Password        string          `json:"password" validate:"required,min=6"`
	FullName        string          `json:"full_name" validate:"required,min=2"`
	Specialization  string          `json:"specialization" validate:"required,min=2,max=100"`
	ExperienceYears int             `json:"experience_years" validate:"omitempty,gte=0,lte=70"`
	Phone           string          `json:"phone" validate:"omitempty,min=6,max=20"`
	Address         string          `json:"address" validate:"omitempty,max=200"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	Department      string          `json:"department" validate:"omitempty,min=2,max=100"`
}

type UpdateDoctorRequest struct {
	Email           string           `json:"email" validate:"omitempty,email"`
	FullName        string           `json:"full_name" validate:"omitempty,min=2"`
	Specialization  string           `json:"specialization" validate:"omitempty,min=2,max=100"`
	ExperienceYears *int             `json:"experience_years" validate:"omitempty,gte=0,lte=70"`
	Phone           string           `json:"phone" validate:"omitempty,min=6,max=20"`
	Address         string           `json:"address" validate:"omitempty,max=200"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	Department      string           `json:"department" validate:"omitempty,min=2,max=100"`
	IsActive        *bool            `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience_years"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Department      string          `json:"department,omitempty"`
	IsActive        *bool           `json:"is_active,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorProfileResponse is the profile fragment embedded in UserResponse
type DoctorProfileResponse struct {
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	Department      string          `json:"department,omitempty"`
}

// DoctorDirectoryQuery carries the patient-facing directory filters
type DoctorDirectoryQuery struct {
	Name           string `json:"name" validate:"omitempty,max=255"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
	DepartmentID   int    `json:"department_id" validate:"omitempty,gte=0"`
}
