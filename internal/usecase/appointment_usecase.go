package usecase

import (
	"context"
	"errors"
	"time"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"
	"go-hospital-management/pkg/timeslot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotNotFound              = errors.New("slot not found")
	ErrSlotUnavailable           = errors.New("slot is no longer available")
	ErrAppointmentNotFound       = errors.New("appointment not found")
	ErrAppointmentNotOwned       = errors.New("appointment does not belong to you")
	ErrAppointmentNotCancellable = errors.New("appointment can no longer be cancelled")
)

type PatientAppointmentUsecase interface {
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, appointmentID uint) error
}

type patientAppointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	slotRepo         repository.AvailabilitySlotRepository
	auditService     service.AuditService
	slotCacheService *service.SlotCacheService
}

func NewPatientAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.AvailabilitySlotRepository,
	auditService service.AuditService,
	slotCacheService *service.SlotCacheService,
) PatientAppointmentUsecase {
	return &patientAppointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		slotRepo:         slotRepo,
		auditService:     auditService,
		slotCacheService: slotCacheService,
	}
}

// GetMyAppointments returns all appointments of the logged-in patient
func (u *patientAppointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Book claims one Available slot for the logged-in patient.
//
// The slot row is locked FOR UPDATE for the whole transaction, so two
// patients racing for the same slot serialize on the row and exactly one
// booking succeeds. The appointment copies the slot's date and time label
// and keeps the slot ID so cancellation can revert the exact row.
func (u *patientAppointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	now := time.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	slot, err := u.slotRepo.FindByIDForUpdate(tx, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to lock slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	// A slot whose window has ended is removed on the spot instead of
	// waiting for the owner's next calendar sweep. Unparseable labels are
	// kept bookable.
	if end, perr := timeslot.ParseEndTime(slot.Date, slot.TimeSlot); perr == nil && !end.After(now) {
		if _, err := u.slotRepo.Delete(tx, slot.ID); err != nil {
			u.log.Warnf("Failed to delete expired slot %d: %+v", slot.ID, err)
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return nil, err
		}
		u.slotCacheService.Invalidate(ctx, slot.DoctorID)
		return nil, ErrSlotNotFound
	}

	if !slot.IsAvailable() {
		return nil, ErrSlotUnavailable
	}

	slotID := slot.ID
	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  slot.DoctorID,
		SlotID:    &slotID,
		Date:      slot.Date,
		TimeSlot:  slot.TimeSlot,
		Status:    entity.AppointmentStatusBooked,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment for patient %s: %+v", patientID, err)
		return nil, err
	}

	if _, err := u.slotRepo.UpdateStatus(tx, slot.ID, entity.SlotStatusBooked); err != nil {
		u.log.Warnf("Failed to mark slot %d booked: %+v", slot.ID, err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", slot.Date+" "+slot.TimeSlot, appointment)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCacheService.Invalidate(ctx, slot.DoctorID)
	u.log.Infof("Appointment booked: id=%d, patient=%s, doctor=%s, slot=%d", appointment.ID, patientID, slot.DoctorID, slot.ID)
	return converter.AppointmentToResponse(appointment), nil
}

// Cancel cancels the patient's own Booked appointment and republishes the
// slot it consumed.
//
// The status change is a conditional update guarded on Booked; zero rows
// affected means the appointment was already Completed or Cancelled and the
// slot revert must not run again. The revert itself is tolerant: the slot
// may have been swept away since booking, which is not an error.
func (u *patientAppointmentUsecase) Cancel(ctx context.Context, appointmentID uint) error {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}

	affected, err := u.appointmentRepo.MarkCancelled(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %d: %+v", appointmentID, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotCancellable
	}

	if err := u.revertSlot(tx, appointment); err != nil {
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &patientID, entity.AuditActionAppointmentCancel, "appointment", appointment.Date+" "+appointment.TimeSlot, entity.AppointmentStatusBooked, entity.AppointmentStatusCancelled)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCacheService.Invalidate(ctx, appointment.DoctorID)
	u.log.Infof("Appointment cancelled: id=%d, patient=%s", appointmentID, patientID)
	return nil
}

// revertSlot sets the consumed slot back to Available. Resolution goes by
// the recorded slot ID first, then by the (doctor, date, label) key for
// appointments whose slot row was recreated.
func (u *patientAppointmentUsecase) revertSlot(tx *gorm.DB, appointment *entity.Appointment) error {
	if appointment.SlotID != nil {
		affected, err := u.slotRepo.UpdateStatus(tx, *appointment.SlotID, entity.SlotStatusAvailable)
		if err != nil {
			u.log.Warnf("Failed to revert slot %d: %+v", *appointment.SlotID, err)
			return err
		}
		if affected > 0 {
			return nil
		}
	}

	slot, err := u.slotRepo.FindByKey(tx, appointment.DoctorID, appointment.Date, appointment.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to find slot for appointment %d: %+v", appointment.ID, err)
		return err
	}
	if slot == nil {
		// Slot was swept or deleted since booking; nothing to revert
		return nil
	}

	if _, err := u.slotRepo.UpdateStatus(tx, slot.ID, entity.SlotStatusAvailable); err != nil {
		u.log.Warnf("Failed to revert slot %d: %+v", slot.ID, err)
		return err
	}
	return nil
}
