package handler

import (
	"encoding/json"
	"net/http"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/usecase"
	"go-hospital-management/pkg/response"
	"go-hospital-management/pkg/validator"
)

// AvailabilityHandler exposes the doctor-side calendar operations.
type AvailabilityHandler struct {
	availabilityUsecase usecase.DoctorAvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.DoctorAvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetCalendar returns the doctor's weekly availability grid
// @Summary Get my calendar
// @Description Weekly availability grid of the logged-in doctor, expired slots swept
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/calendar [get]
func (h *AvailabilityHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	calendar, err := h.availabilityUsecase.GetCalendar(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load calendar")
		return
	}

	response.Success(w, http.StatusOK, "Calendar retrieved successfully", calendar)
}

// AddSlot publishes a new availability slot
// @Summary Add availability slot
// @Description Publish a slot on the logged-in doctor's calendar
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddSlotRequest true "Slot"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/slots [post]
func (h *AvailabilityHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.AddSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.AddSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnparseableTimeSlot:
			response.Error(w, http.StatusBadRequest, "Time slot format is not recognized", nil)
		case usecase.ErrTimeSlotPast:
			response.Error(w, http.StatusBadRequest, "Time slot has already ended", nil)
		case usecase.ErrSlotExists:
			response.Conflict(w, "Slot already exists for this date and time")
		default:
			response.InternalServerError(w, "Failed to add slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Slot added successfully", slot)
}

// ToggleSlot flips one window between Available and Unavailable
// @Summary Toggle slot
// @Description Flip a window's publish state; missing windows are created Available
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ToggleSlotRequest true "Window"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/slots/toggle [post]
func (h *AvailabilityHandler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.availabilityUsecase.ToggleSlot(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnparseableTimeSlot:
			response.Error(w, http.StatusBadRequest, "Time slot format is not recognized", nil)
		case usecase.ErrTimeSlotPast:
			response.Error(w, http.StatusBadRequest, "Time slot has already ended", nil)
		case usecase.ErrSlotAlreadyBooked:
			response.Conflict(w, "Slot has been booked by a patient")
		default:
			response.InternalServerError(w, "Failed to toggle slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slot toggled successfully", slot)
}

// BulkSave applies a whole calendar edit in one request
// @Summary Bulk save calendar
// @Description Apply a batch of window changes; "none" removes a window's row
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BulkSaveRequest true "Changes"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/slots/bulk [put]
func (h *AvailabilityHandler) BulkSave(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.BulkSave(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUnparseableTimeSlot:
			response.Error(w, http.StatusBadRequest, "Time slot format is not recognized", nil)
		case usecase.ErrTimeSlotPast:
			response.Error(w, http.StatusBadRequest, "Time slot has already ended", nil)
		default:
			response.InternalServerError(w, "Failed to save calendar")
		}
		return
	}

	message := "Calendar saved successfully"
	if result.Changed == 0 {
		message = "No changes to save"
	}
	response.Success(w, http.StatusOK, message, result)
}
