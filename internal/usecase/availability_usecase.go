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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUnparseableTimeSlot = errors.New("time slot format is not recognized")
	ErrTimeSlotPast        = errors.New("time slot has already ended")
	ErrSlotExists          = errors.New("slot already exists for this date and time")
	ErrSlotAlreadyBooked   = errors.New("slot has been booked by a patient")
	ErrDoctorNotFound      = errors.New("doctor not found")
)

// The weekly calendar always shows these two windows for each of the next
// seven days. Doctors may still add free-form slots outside them.
var calendarWindows = []struct {
	Key      string
	TimeSlot string
}{
	{Key: "morning", TimeSlot: "08:00 - 12:00"},
	{Key: "evening", TimeSlot: "16:00 - 21:00"},
}

const calendarDays = 7

type DoctorAvailabilityUsecase interface {
	GetCalendar(ctx context.Context) (*dto.CalendarResponse, error)
	AddSlot(ctx context.Context, req *dto.AddSlotRequest) (*dto.SlotResponse, error)
	ToggleSlot(ctx context.Context, req *dto.ToggleSlotRequest) (*dto.SlotResponse, error)
	BulkSave(ctx context.Context, req *dto.BulkSaveRequest) (*dto.BulkSaveResponse, error)
	// GetDoctorCalendar is the patient-facing projection of another
	// doctor's weekly calendar.
	GetDoctorCalendar(ctx context.Context, doctorID uuid.UUID) (*dto.CalendarResponse, error)
}

type doctorAvailabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	slotRepo         repository.AvailabilitySlotRepository
	doctorRepo       repository.DoctorProfileRepository
	auditService     service.AuditService
	slotCacheService *service.SlotCacheService
}

func NewDoctorAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.AvailabilitySlotRepository,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	slotCacheService *service.SlotCacheService,
) DoctorAvailabilityUsecase {
	return &doctorAvailabilityUsecase{
		db:               db,
		log:              log,
		slotRepo:         slotRepo,
		doctorRepo:       doctorRepo,
		auditService:     auditService,
		slotCacheService: slotCacheService,
	}
}

// sweepExpired removes every slot of the doctor whose window end has passed.
// Slots whose label cannot be parsed are kept; a doctor's typo must never
// silently destroy their published availability.
func (u *doctorAvailabilityUsecase) sweepExpired(tx *gorm.DB, doctorID uuid.UUID, now time.Time) (int64, error) {
	slots, err := u.slotRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		return 0, err
	}

	var expired []uint
	for i := range slots {
		end, err := timeslot.ParseEndTime(slots[i].Date, slots[i].TimeSlot)
		if err != nil {
			continue
		}
		if !end.After(now) {
			expired = append(expired, slots[i].ID)
		}
	}

	if len(expired) == 0 {
		return 0, nil
	}

	deleted, err := u.slotRepo.DeleteByIDs(tx, expired)
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// GetCalendar returns the logged-in doctor's weekly grid after sweeping
// expired slots.
func (u *doctorAvailabilityUsecase) GetCalendar(ctx context.Context) (*dto.CalendarResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	return u.buildCalendar(ctx, doctorID)
}

// GetDoctorCalendar serves the patient browse path through the slot cache.
func (u *doctorAvailabilityUsecase) GetDoctorCalendar(ctx context.Context, doctorID uuid.UUID) (*dto.CalendarResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := time.Now()
	if slots, ok := u.slotCacheService.Get(ctx, doctorID); ok {
		return projectCalendar(doctorID, slots, now), nil
	}

	resp, err := u.buildCalendar(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (u *doctorAvailabilityUsecase) buildCalendar(ctx context.Context, doctorID uuid.UUID) (*dto.CalendarResponse, error) {
	now := time.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	swept, err := u.sweepExpired(tx, doctorID, now)
	if err != nil {
		u.log.Warnf("Failed to sweep expired slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	slots, err := u.slotRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if swept > 0 {
		u.log.Infof("Swept %d expired slots for doctor %s", swept, doctorID)
		u.slotCacheService.Invalidate(ctx, doctorID)
	}
	u.slotCacheService.Set(ctx, doctorID, slots)

	return projectCalendar(doctorID, slots, now), nil
}

// projectCalendar lays slot rows onto the fixed 7-day two-window grid.
// Slots with labels outside the fixed windows stay reachable through their
// own cells appended after the standard ones.
func projectCalendar(doctorID uuid.UUID, slots []entity.AvailabilitySlot, now time.Time) *dto.CalendarResponse {
	byKey := make(map[string]*entity.AvailabilitySlot, len(slots))
	for i := range slots {
		byKey[slots[i].Date+"|"+slots[i].TimeSlot] = &slots[i]
	}

	resp := &dto.CalendarResponse{
		DoctorID: doctorID,
		Days:     make([]dto.CalendarDay, 0, calendarDays),
	}

	for d := 0; d < calendarDays; d++ {
		date := now.AddDate(0, 0, d).Format("2006-01-02")
		day := dto.CalendarDay{
			Date:    date,
			Windows: make([]dto.CalendarWindow, 0, len(calendarWindows)),
		}

		for _, window := range calendarWindows {
			cell := dto.CalendarWindow{
				Key:      window.Key,
				TimeSlot: window.TimeSlot,
			}
			// Disabled is advisory: the window end has passed but the
			// sweep has not removed the row yet, or the row never existed.
			if end, err := timeslot.ParseEndTime(date, window.TimeSlot); err == nil && !end.After(now) {
				cell.Disabled = true
			}
			if slot, ok := byKey[date+"|"+window.TimeSlot]; ok {
				cell.Slot = converter.SlotToResponse(slot)
				delete(byKey, date+"|"+window.TimeSlot)
			}
			day.Windows = append(day.Windows, cell)
		}

		resp.Days = append(resp.Days, day)
	}

	// Free-form slots not matching a fixed window
	for _, slot := range byKey {
		for i := range resp.Days {
			if resp.Days[i].Date != slot.Date {
				continue
			}
			cell := dto.CalendarWindow{
				Key:      "custom",
				TimeSlot: slot.TimeSlot,
				Slot:     converter.SlotToResponse(slot),
			}
			if end, err := timeslot.ParseEndTime(slot.Date, slot.TimeSlot); err == nil && !end.After(now) {
				cell.Disabled = true
			}
			resp.Days[i].Windows = append(resp.Days[i].Windows, cell)
		}
	}

	return resp
}

// AddSlot publishes a new slot on the logged-in doctor's calendar.
func (u *doctorAvailabilityUsecase) AddSlot(ctx context.Context, req *dto.AddSlotRequest) (*dto.SlotResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	now := time.Now()
	end, err := timeslot.ParseEndTime(req.Date, req.TimeSlot)
	if err != nil {
		return nil, ErrUnparseableTimeSlot
	}
	if !end.After(now) {
		return nil, ErrTimeSlotPast
	}

	status := entity.SlotStatus(req.Status)
	if status == "" {
		status = entity.SlotStatusAvailable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.sweepExpired(tx, doctorID, now); err != nil {
		u.log.Warnf("Failed to sweep expired slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	slot := &entity.AvailabilitySlot{
		DoctorID: doctorID,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Status:   status,
	}

	if err := u.slotRepo.Create(tx, slot); err != nil {
		if isDuplicateKeyError(err, "idx_slot_key") {
			return nil, ErrSlotExists
		}
		u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionSlotAdd, "availability_slot", req.Date+" "+req.TimeSlot, slot)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCacheService.Invalidate(ctx, doctorID)
	u.log.Infof("Slot added: doctor=%s, date=%s, slot=%s, status=%s", doctorID, req.Date, req.TimeSlot, status)
	return converter.SlotToResponse(slot), nil
}

// ToggleSlot flips one window between Available and Unavailable. A window
// with no row yet is published as Available; a Booked window cannot be
// touched until its appointment is cancelled.
func (u *doctorAvailabilityUsecase) ToggleSlot(ctx context.Context, req *dto.ToggleSlotRequest) (*dto.SlotResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	now := time.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.sweepExpired(tx, doctorID, now); err != nil {
		u.log.Warnf("Failed to sweep expired slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	slot, err := u.slotRepo.FindByKey(tx, doctorID, req.Date, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to find slot for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if slot == nil {
		end, err := timeslot.ParseEndTime(req.Date, req.TimeSlot)
		if err != nil {
			return nil, ErrUnparseableTimeSlot
		}
		if !end.After(now) {
			return nil, ErrTimeSlotPast
		}

		slot = &entity.AvailabilitySlot{
			DoctorID: doctorID,
			Date:     req.Date,
			TimeSlot: req.TimeSlot,
			Status:   entity.SlotStatusAvailable,
		}
		if err := u.slotRepo.Create(tx, slot); err != nil {
			u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
			return nil, err
		}
	} else {
		if slot.IsBooked() {
			return nil, ErrSlotAlreadyBooked
		}
		oldStatus := slot.Status
		slot.Status = slot.Toggled()
		if err := u.slotRepo.Update(tx, slot); err != nil {
			u.log.Warnf("Failed to toggle slot %d: %+v", slot.ID, err)
			return nil, err
		}
		u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionSlotToggle, "availability_slot", req.Date+" "+req.TimeSlot, oldStatus, slot.Status)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCacheService.Invalidate(ctx, doctorID)
	return converter.SlotToResponse(slot), nil
}

// BulkSave applies a whole calendar edit in one transaction. The "none"
// status removes the window's row when one exists and is otherwise a no-op,
// so untouched editor cells never create rows. Booked rows are left alone.
func (u *doctorAvailabilityUsecase) BulkSave(ctx context.Context, req *dto.BulkSaveRequest) (*dto.BulkSaveResponse, error) {
	doctorID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	now := time.Now()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.sweepExpired(tx, doctorID, now); err != nil {
		u.log.Warnf("Failed to sweep expired slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	var changed int
	for _, change := range req.Changes {
		slot, err := u.slotRepo.FindByKey(tx, doctorID, change.Date, change.TimeSlot)
		if err != nil {
			u.log.Warnf("Failed to find slot for doctor %s: %+v", doctorID, err)
			return nil, err
		}

		if change.Status == dto.SlotStatusNone {
			if slot == nil {
				continue
			}
			if slot.IsBooked() {
				continue
			}
			if _, err := u.slotRepo.Delete(tx, slot.ID); err != nil {
				u.log.Warnf("Failed to delete slot %d: %+v", slot.ID, err)
				return nil, err
			}
			changed++
			continue
		}

		status := entity.SlotStatus(change.Status)

		if slot == nil {
			end, err := timeslot.ParseEndTime(change.Date, change.TimeSlot)
			if err != nil {
				return nil, ErrUnparseableTimeSlot
			}
			if !end.After(now) {
				return nil, ErrTimeSlotPast
			}

			slot = &entity.AvailabilitySlot{
				DoctorID: doctorID,
				Date:     change.Date,
				TimeSlot: change.TimeSlot,
				Status:   status,
			}
			if err := u.slotRepo.Create(tx, slot); err != nil {
				u.log.Warnf("Failed to create slot for doctor %s: %+v", doctorID, err)
				return nil, err
			}
			changed++
			continue
		}

		if slot.IsBooked() || slot.Status == status {
			continue
		}

		slot.Status = status
		if err := u.slotRepo.Update(tx, slot); err != nil {
			u.log.Warnf("Failed to update slot %d: %+v", slot.ID, err)
			return nil, err
		}
		changed++
	}

	if changed > 0 {
		u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionSlotBulkSave, "availability_slot", doctorID.String(), nil, map[string]interface{}{
			"changed": changed,
		})
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if changed > 0 {
		u.slotCacheService.Invalidate(ctx, doctorID)
	}
	u.log.Infof("Bulk save: doctor=%s, changed=%d", doctorID, changed)
	return &dto.BulkSaveResponse{Changed: changed}, nil
}
