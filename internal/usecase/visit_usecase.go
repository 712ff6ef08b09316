package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentCancelled = errors.New("appointment has been cancelled")
	ErrPatientNotFound      = errors.New("patient not found")
)

type DoctorVisitUsecase interface {
	// GetSchedule lists the doctor's open appointments.
	GetSchedule(ctx context.Context) (*dto.AppointmentListResponse, error)
	FinalizeVisit(ctx context.Context, appointmentID uint, req *dto.FinalizeVisitRequest) (*dto.VisitResponse, error)
	RecordWalkIn(ctx context.Context, req *dto.WalkInVisitRequest) (*dto.AppointmentResponse, error)
	PatientHistory(ctx context.Context, patientID uuid.UUID) (*dto.PatientHistoryResponse, error)
}

type doctorVisitUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	visitRepo       repository.VisitRecordRepository
	patientRepo     repository.PatientProfileRepository
	auditService    service.AuditService
}

func NewDoctorVisitUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	visitRepo repository.VisitRecordRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) DoctorVisitUsecase {
	return &doctorVisitUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		visitRepo:       visitRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
	}
}

func (u *doctorVisitUsecase) GetSchedule(ctx context.Context) (*dto.AppointmentListResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// FinalizeVisit writes the clinical outcome of an appointment and completes
// it. Exactly one visit record exists per appointment: re-finalizing an
// already Completed appointment updates the record in place. Cancelled
// appointments cannot be finalized.
func (u *doctorVisitUsecase) FinalizeVisit(ctx context.Context, appointmentID uint, req *dto.FinalizeVisitRequest) (*dto.VisitResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.DoctorID != doctorID {
		return nil, ErrAppointmentNotOwned
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}

	record, err := u.visitRepo.FindByAppointmentID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find visit record for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	notes := combineNotes(req.Notes, req.Medicines)

	if record == nil {
		record = &entity.VisitRecord{
			AppointmentID:    appointmentID,
			VisitType:        req.VisitType,
			TestsDone:        req.TestsDone,
			Diagnosis:        req.Diagnosis,
			Prescription:     req.Prescription,
			Notes:            notes,
			FollowupRequired: req.FollowupRequired,
		}
		if err := u.visitRepo.Create(tx, record); err != nil {
			u.log.Warnf("Failed to create visit record for appointment %d: %+v", appointmentID, err)
			return nil, err
		}
	} else {
		record.VisitType = req.VisitType
		record.TestsDone = req.TestsDone
		record.Diagnosis = req.Diagnosis
		record.Prescription = req.Prescription
		record.Notes = notes
		record.FollowupRequired = req.FollowupRequired
		if err := u.visitRepo.Update(tx, record); err != nil {
			u.log.Warnf("Failed to update visit record %d: %+v", record.ID, err)
			return nil, err
		}
	}

	if appointment.IsBooked() {
		if err := u.appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCompleted); err != nil {
			u.log.Warnf("Failed to complete appointment %d: %+v", appointmentID, err)
			return nil, err
		}
	}

	u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionVisitFinalize, "appointment", fmt.Sprintf("%d", appointmentID), appointment.Status, entity.AppointmentStatusCompleted)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Visit finalized: appointment=%d, doctor=%s", appointmentID, doctorID)
	return converter.VisitToResponse(record), nil
}

// RecordWalkIn captures a consultation that never went through the booking
// flow. The appointment is dated now, has no slot, and is born Completed.
func (u *doctorVisitUsecase) RecordWalkIn(ctx context.Context, req *dto.WalkInVisitRequest) (*dto.AppointmentResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByUserID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	appointment := &entity.Appointment{
		PatientID: req.PatientID,
		DoctorID:  doctorID,
		Date:      now.Format("2006-01-02"),
		TimeSlot:  now.Format("3:04 PM"),
		Status:    entity.AppointmentStatusCompleted,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create walk-in appointment: %+v", err)
		return nil, err
	}

	record := &entity.VisitRecord{
		AppointmentID:    appointment.ID,
		VisitType:        req.VisitType,
		TestsDone:        req.TestsDone,
		Diagnosis:        req.Diagnosis,
		Prescription:     req.Prescription,
		Notes:            combineNotes(req.Notes, req.Medicines),
		FollowupRequired: req.FollowupRequired,
	}

	if err := u.visitRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create walk-in visit record: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionVisitFinalize, "appointment", fmt.Sprintf("%d", appointment.ID), record)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Visit = record
	u.log.Infof("Walk-in recorded: appointment=%d, doctor=%s, patient=%s", appointment.ID, doctorID, req.PatientID)
	return converter.AppointmentToResponse(appointment), nil
}

// PatientHistory lists this doctor's appointments with one patient,
// including visit records.
func (u *doctorVisitUsecase) PatientHistory(ctx context.Context, patientID uuid.UUID) (*dto.PatientHistoryResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	patient, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	appointments, err := u.appointmentRepo.FindByPatientAndDoctor(u.db.WithContext(ctx), patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find history for patient %s: %+v", patientID, err)
		return nil, err
	}

	resp := &dto.PatientHistoryResponse{
		PatientID:   patientID,
		PatientName: patient.User.FullName,
		Visits:      converter.AppointmentsToResponses(appointments),
		Total:       len(appointments),
	}
	return resp, nil
}

// combineNotes appends the dispensed medicines as a trailing line of the
// free-text notes, matching how the records were kept before medicines had
// a field of their own.
func combineNotes(notes, medicines string) string {
	medicines = strings.TrimSpace(medicines)
	if medicines == "" {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return fmt.Sprintf("Medicines: %s", medicines)
	}
	return fmt.Sprintf("%s\nMedicines: %s", notes, medicines)
}
