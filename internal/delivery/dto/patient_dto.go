package dto

import "github.com/google/uuid"

// Request DTOs

type CreatePatientRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Age      int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=M F"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=15"`
	Address  string `json:"address" validate:"omitempty,max=200"`
}

type UpdatePatientRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	FullName string `json:"full_name" validate:"omitempty,min=2"`
	Age      *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=M F"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=15"`
	Address  string `json:"address" validate:"omitempty,max=200"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

// UpdateMyProfileRequest is the patient's self-service profile edit. Email
// and account state stay admin-only.
type UpdateMyProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,min=2"`
	Age      *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=M F"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=15"`
	Address  string `json:"address" validate:"omitempty,max=200"`
}

// Response DTOs

type PatientResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Age      int       `json:"age,omitempty"`
	Gender   string    `json:"gender,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	Address  string    `json:"address,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientProfileResponse is the profile fragment embedded in UserResponse
type PatientProfileResponse struct {
	Age     int    `json:"age,omitempty"`
	Gender  string `json:"gender,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
