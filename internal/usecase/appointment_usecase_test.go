package usecase

import (
	"testing"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppointmentUsecase(t *testing.T, name string) (PatientAppointmentUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	uc := NewPatientAppointmentUsecase(
		db,
		log,
		repository.NewAppointmentRepository(),
		repository.NewAvailabilitySlotRepository(),
		testAuditService(db, log),
		testSlotCache(log),
	)
	return uc, db
}

func TestBook(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "book")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	resp, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, doctorID, resp.DoctorID)
	assert.Equal(t, slot.Date, resp.Date)
	assert.Equal(t, slot.TimeSlot, resp.TimeSlot)
	assert.Equal(t, string(entity.AppointmentStatusBooked), resp.Status)

	var updated entity.AvailabilitySlot
	require.NoError(t, db.First(&updated, slot.ID).Error)
	assert.Equal(t, entity.SlotStatusBooked, updated.Status)

	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, resp.ID).Error)
	require.NotNil(t, appointment.SlotID)
	assert.Equal(t, slot.ID, *appointment.SlotID)
}

func TestBook_SlotMissing(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "book404")
	patientID := seedPatient(t, db)

	_, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: 9999})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBook_SlotAlreadyTaken(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "bookrace")
	doctorID := seedDoctor(t, db)
	first := seedPatient(t, db)
	second := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	_, err := uc.Book(ctxWithUser(first), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	_, err = uc.Book(ctxWithUser(second), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	var count int64
	db.Model(&entity.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBook_UnavailableSlot(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "bookunavail")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusUnavailable}
	require.NoError(t, db.Create(slot).Error)

	_, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBook_ExpiredSlotRemoved(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "bookexpired")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(-1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	_, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, ErrSlotNotFound)

	var count int64
	db.Model(&entity.AvailabilitySlot{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCancel(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "cancel")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	resp, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctxWithUser(patientID), resp.ID))

	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, resp.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCancelled, appointment.Status)

	var reverted entity.AvailabilitySlot
	require.NoError(t, db.First(&reverted, slot.ID).Error)
	assert.Equal(t, entity.SlotStatusAvailable, reverted.Status)
}

func TestCancel_Twice(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "cancel2x")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	resp, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctxWithUser(patientID), resp.ID))
	err = uc.Cancel(ctxWithUser(patientID), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotCancellable)
}

func TestCancel_NotOwned(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "cancelown")
	doctorID := seedDoctor(t, db)
	owner := seedPatient(t, db)
	other := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	resp, err := uc.Book(ctxWithUser(owner), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	err = uc.Cancel(ctxWithUser(other), resp.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotOwned)
}

func TestCancel_NotFound(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "cancel404")
	patientID := seedPatient(t, db)

	err := uc.Cancel(ctxWithUser(patientID), 9999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_SlotAlreadyDeleted(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "cancelswept")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	resp, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	// Slot row disappears between booking and cancellation
	require.NoError(t, db.Delete(&entity.AvailabilitySlot{}, slot.ID).Error)

	require.NoError(t, uc.Cancel(ctxWithUser(patientID), resp.ID))

	var appointment entity.Appointment
	require.NoError(t, db.First(&appointment, resp.ID).Error)
	assert.Equal(t, entity.AppointmentStatusCancelled, appointment.Status)
}

func TestGetMyAppointments(t *testing.T) {
	uc, db := newAppointmentUsecase(t, "mine")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	otherPatient := seedPatient(t, db)

	for _, date := range []string{dateOffset(1), dateOffset(2)} {
		slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: date, TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
		require.NoError(t, db.Create(slot).Error)
		_, err := uc.Book(ctxWithUser(patientID), &dto.BookAppointmentRequest{SlotID: slot.ID})
		require.NoError(t, err)
	}

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(3), TimeSlot: "16:00 - 21:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)
	_, err := uc.Book(ctxWithUser(otherPatient), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)

	list, err := uc.GetMyAppointments(ctxWithUser(patientID))
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	for _, a := range list.Appointments {
		assert.Equal(t, patientID, a.PatientID)
	}
}
