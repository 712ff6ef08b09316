package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
	"go-hospital-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// VisitHandler exposes the doctor-side appointment and visit operations.
type VisitHandler struct {
	visitUsecase usecase.DoctorVisitUsecase
	validator    *validator.CustomValidator
}

func NewVisitHandler(visitUsecase usecase.DoctorVisitUsecase, validator *validator.CustomValidator) *VisitHandler {
	return &VisitHandler{
		visitUsecase: visitUsecase,
		validator:    validator,
	}
}

// GetSchedule lists the doctor's open appointments
// @Summary My schedule
// @Description Open appointments of the logged-in doctor
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
func (h *VisitHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.visitUsecase.GetSchedule(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// FinalizeVisit records the clinical outcome of an appointment
// @Summary Finalize visit
// @Description Write the visit record and complete the appointment
// @Tags Visits
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.FinalizeVisitRequest true "Visit outcome"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointments/{id}/finalize [post]
func (h *VisitHandler) FinalizeVisit(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.FinalizeVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	visit, err := h.visitUsecase.FinalizeVisit(r.Context(), uint(appointmentID), &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentCancelled:
			response.Conflict(w, "Appointment has been cancelled")
		default:
			response.InternalServerError(w, "Failed to finalize visit")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visit finalized successfully", visit)
}

// RecordWalkIn captures an unbooked consultation
// @Summary Record walk-in visit
// @Description Create a completed appointment dated now with its visit record
// @Tags Visits
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.WalkInVisitRequest true "Walk-in visit"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/walk-ins [post]
func (h *VisitHandler) RecordWalkIn(w http.ResponseWriter, r *http.Request) {
	var req dto.WalkInVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.visitUsecase.RecordWalkIn(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to record walk-in")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Walk-in recorded successfully", appointment)
}

// PatientHistory lists this doctor's visits with one patient
// @Summary Patient history
// @Description Appointments and visit records of one patient with this doctor
// @Tags Visits
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctor/patients/{id}/history [get]
func (h *VisitHandler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	history, err := h.visitUsecase.PatientHistory(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to load patient history")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient history retrieved successfully", history)
}
