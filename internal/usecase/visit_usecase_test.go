package usecase

import (
	"testing"
	"time"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVisitUsecase(t *testing.T, name string) (DoctorVisitUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	uc := NewDoctorVisitUsecase(
		db,
		log,
		repository.NewAppointmentRepository(),
		repository.NewVisitRecordRepository(),
		repository.NewPatientProfileRepository(),
		testAuditService(db, log),
	)
	return uc, db
}

func seedAppointment(t *testing.T, db *gorm.DB, doctorID, patientID uuid.UUID, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	a := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      dateOffset(0),
		TimeSlot:  "08:00 - 12:00",
		Status:    status,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func TestFinalizeVisit(t *testing.T) {
	uc, db := newVisitUsecase(t, "finalize")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	appointment := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)

	visit, err := uc.FinalizeVisit(ctxWithUser(doctorID), appointment.ID, &dto.FinalizeVisitRequest{
		VisitType:    "Consultation",
		Diagnosis:    "Seasonal flu",
		Prescription: "Rest and fluids",
		Medicines:    "Paracetamol 500mg",
		Notes:        "Patient recovering well",
	})
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, visit.AppointmentID)
	assert.Equal(t, "Patient recovering well\nMedicines: Paracetamol 500mg", visit.Notes)

	var updated entity.Appointment
	require.NoError(t, db.First(&updated, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCompleted, updated.Status)
}

func TestFinalizeVisit_MedicinesOnly(t *testing.T) {
	uc, db := newVisitUsecase(t, "finalizemeds")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	appointment := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)

	visit, err := uc.FinalizeVisit(ctxWithUser(doctorID), appointment.ID, &dto.FinalizeVisitRequest{
		Medicines: "Ibuprofen 400mg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Medicines: Ibuprofen 400mg", visit.Notes)
}

func TestFinalizeVisit_ReFinalizeUpdatesRecord(t *testing.T) {
	uc, db := newVisitUsecase(t, "refinalize")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	appointment := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)
	ctx := ctxWithUser(doctorID)

	first, err := uc.FinalizeVisit(ctx, appointment.ID, &dto.FinalizeVisitRequest{Diagnosis: "Initial"})
	require.NoError(t, err)

	second, err := uc.FinalizeVisit(ctx, appointment.ID, &dto.FinalizeVisitRequest{Diagnosis: "Revised"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Revised", second.Diagnosis)

	var count int64
	db.Model(&entity.VisitRecord{}).Where("appointment_id = ?", appointment.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFinalizeVisit_Cancelled(t *testing.T) {
	uc, db := newVisitUsecase(t, "finalizecancelled")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	appointment := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusCancelled)

	_, err := uc.FinalizeVisit(ctxWithUser(doctorID), appointment.ID, &dto.FinalizeVisitRequest{Diagnosis: "Too late"})
	assert.ErrorIs(t, err, ErrAppointmentCancelled)
}

func TestFinalizeVisit_NotOwned(t *testing.T) {
	uc, db := newVisitUsecase(t, "finalizeown")
	doctorID := seedDoctor(t, db)
	otherDoctor := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	appointment := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)

	_, err := uc.FinalizeVisit(ctxWithUser(otherDoctor), appointment.ID, &dto.FinalizeVisitRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestFinalizeVisit_NotFound(t *testing.T) {
	uc, db := newVisitUsecase(t, "finalize404")
	doctorID := seedDoctor(t, db)

	_, err := uc.FinalizeVisit(ctxWithUser(doctorID), 9999, &dto.FinalizeVisitRequest{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRecordWalkIn(t *testing.T) {
	uc, db := newVisitUsecase(t, "walkin")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	resp, err := uc.RecordWalkIn(ctxWithUser(doctorID), &dto.WalkInVisitRequest{
		PatientID: patientID,
		VisitType: "Walk-in",
		Diagnosis: "Sprained ankle",
		Medicines: "Ice pack",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Date)
	require.NotNil(t, resp.Visit)
	assert.Equal(t, "Medicines: Ice pack", resp.Visit.Notes)

	var record entity.VisitRecord
	require.NoError(t, db.Where("appointment_id = ?", resp.ID).First(&record).Error)
	assert.Equal(t, "Sprained ankle", record.Diagnosis)
}

func TestRecordWalkIn_UnknownPatient(t *testing.T) {
	uc, db := newVisitUsecase(t, "walkin404")
	doctorID := seedDoctor(t, db)

	_, err := uc.RecordWalkIn(ctxWithUser(doctorID), &dto.WalkInVisitRequest{PatientID: uuid.New()})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetSchedule_ExcludesCancelled(t *testing.T) {
	uc, db := newVisitUsecase(t, "schedule")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)
	seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusCompleted)
	seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusCancelled)

	list, err := uc.GetSchedule(ctxWithUser(doctorID))
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	for _, a := range list.Appointments {
		assert.NotEqual(t, string(entity.AppointmentStatusCancelled), a.Status)
	}
}

func TestPatientHistory(t *testing.T) {
	uc, db := newVisitUsecase(t, "history")
	doctorID := seedDoctor(t, db)
	otherDoctor := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	mine := seedAppointment(t, db, doctorID, patientID, entity.AppointmentStatusBooked)
	seedAppointment(t, db, otherDoctor, patientID, entity.AppointmentStatusBooked)

	_, err := uc.FinalizeVisit(ctxWithUser(doctorID), mine.ID, &dto.FinalizeVisitRequest{Diagnosis: "Checked"})
	require.NoError(t, err)

	history, err := uc.PatientHistory(ctxWithUser(doctorID), patientID)
	require.NoError(t, err)
	assert.Equal(t, patientID, history.PatientID)
	assert.Equal(t, 1, history.Total)
	require.NotNil(t, history.Visits[0].Visit)
	assert.Equal(t, "Checked", history.Visits[0].Visit.Diagnosis)
}

func TestPatientHistory_UnknownPatient(t *testing.T) {
	uc, db := newVisitUsecase(t, "history404")
	doctorID := seedDoctor(t, db)

	_, err := uc.PatientHistory(ctxWithUser(doctorID), uuid.New())
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
