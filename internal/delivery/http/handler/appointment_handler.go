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

// AppointmentHandler exposes the patient-side scheduling operations.
type AppointmentHandler struct {
	appointmentUsecase  usecase.PatientAppointmentUsecase
	availabilityUsecase usecase.DoctorAvailabilityUsecase
	doctorUsecase       usecase.DoctorProfileUsecase
	validator           *validator.CustomValidator
}

func NewAppointmentHandler(
	appointmentUsecase usecase.PatientAppointmentUsecase,
	availabilityUsecase usecase.DoctorAvailabilityUsecase,
	doctorUsecase usecase.DoctorProfileUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase:  appointmentUsecase,
		availabilityUsecase: availabilityUsecase,
		doctorUsecase:       doctorUsecase,
		validator:           validator,
	}
}

// ListDoctors returns the active doctor directory
// @Summary Browse doctors
// @Description List active doctors filtered by name, specialization or department
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param name query string false "Doctor name"
// @Param specialization query string false "Specialization"
// @Param department_id query int false "Department ID"
// @Success 200 {object} response.Response
// @Router /patient/doctors [get]
func (h *AppointmentHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := &dto.DoctorDirectoryQuery{
		Name:           r.URL.Query().Get("name"),
		Specialization: r.URL.Query().Get("specialization"),
	}
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
			return
		}
		query.DepartmentID = id
	}

	doctors, err := h.doctorUsecase.Directory(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns one doctor's public profile
// @Summary Doctor detail
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/doctors/{id} [get]
func (h *AppointmentHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetDoctorCalendar returns a doctor's weekly grid for booking
// @Summary Browse a doctor's calendar
// @Description Weekly availability grid of one doctor
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/doctors/{id}/calendar [get]
func (h *AppointmentHandler) GetDoctorCalendar(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	calendar, err := h.availabilityUsecase.GetDoctorCalendar(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to load calendar")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar retrieved successfully", calendar)
}

// GetMyAppointments lists the logged-in patient's appointments
// @Summary My appointments
// @Description All appointments of the logged-in patient
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// Book claims an available slot
// @Summary Book appointment
// @Description Book one Available slot; exactly one of two racing bookings succeeds
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Slot reference"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrSlotUnavailable:
			response.Conflict(w, "Slot is no longer available")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Cancel cancels the patient's own appointment
// @Summary Cancel appointment
// @Description Cancel a Booked appointment and release its slot
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patient/appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), uint(appointmentID)); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Appointment does not belong to you")
		case usecase.ErrAppointmentNotCancellable:
			response.Conflict(w, "Appointment can no longer be cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
