package http

import (
	"net/http"

	"go-hospital-management/internal/delivery/http/handler"
	"go-hospital-management/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	visitHandler        *handler.VisitHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	departmentHandler   *handler.DepartmentHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	visitHandler *handler.VisitHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	departmentHandler *handler.DepartmentHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		visitHandler:        visitHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		departmentHandler:   departmentHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Department directory (any authenticated user)
	departments := api.PathPrefix("/departments").Subrouter()
	departments.Use(r.authMiddleware.Authenticate)
	departments.HandleFunc("", r.departmentHandler.List).Methods(http.MethodGet)
	departments.HandleFunc("/{id}", r.departmentHandler.Get).Methods(http.MethodGet)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)

	// Availability calendar (doctor)
	doctor.HandleFunc("/calendar", r.availabilityHandler.GetCalendar).Methods(http.MethodGet)
	doctor.HandleFunc("/slots", r.availabilityHandler.AddSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/slots/toggle", r.availabilityHandler.ToggleSlot).Methods(http.MethodPost)
	doctor.HandleFunc("/slots/bulk", r.availabilityHandler.BulkSave).Methods(http.MethodPut)

	// Appointments and visits (doctor)
	doctor.HandleFunc("/appointments", r.visitHandler.GetSchedule).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/finalize", r.visitHandler.FinalizeVisit).Methods(http.MethodPost)
	doctor.HandleFunc("/walk-ins", r.visitHandler.RecordWalkIn).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{id}/history", r.visitHandler.PatientHistory).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)

	// Doctor browsing and booking (patient)
	patient.HandleFunc("/profile", r.patientHandler.UpdateMyProfile).Methods(http.MethodPut)
	patient.HandleFunc("/doctors", r.appointmentHandler.ListDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/{id}", r.appointmentHandler.GetDoctor).Methods(http.MethodGet)
	patient.HandleFunc("/doctors/{id}/calendar", r.appointmentHandler.GetDoctorCalendar).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Dashboard and audit trail (admin)
	admin.HandleFunc("/dashboard", r.adminHandler.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", r.adminHandler.AuditLogs).Methods(http.MethodGet)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id}/blacklist", r.doctorHandler.Blacklist).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reactivate", r.doctorHandler.Reactivate).Methods(http.MethodPost)

	// Patient management (admin)
	admin.HandleFunc("/patients", r.patientHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/patients/{id}", r.patientHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/{id}/blacklist", r.patientHandler.Blacklist).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id}/reactivate", r.patientHandler.Reactivate).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
