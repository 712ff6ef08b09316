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

func newAvailabilityUsecase(t *testing.T, name string) (DoctorAvailabilityUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	uc := NewDoctorAvailabilityUsecase(
		db,
		log,
		repository.NewAvailabilitySlotRepository(),
		repository.NewDoctorProfileRepository(),
		testAuditService(db, log),
		testSlotCache(log),
	)
	return uc, db
}

func TestAddSlot(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "addslot")
	doctorID := seedDoctor(t, db)
	ctx := ctxWithUser(doctorID)

	slot, err := uc.AddSlot(ctx, &dto.AddSlotRequest{
		Date:     dateOffset(1),
		TimeSlot: "08:00 - 12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SlotStatusAvailable), slot.Status)
	assert.Equal(t, doctorID, slot.DoctorID)

	var count int64
	db.Model(&entity.AvailabilitySlot{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAddSlot_PastRejected(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "addpast")
	doctorID := seedDoctor(t, db)

	_, err := uc.AddSlot(ctxWithUser(doctorID), &dto.AddSlotRequest{
		Date:     dateOffset(-1),
		TimeSlot: "08:00 - 12:00",
	})
	assert.ErrorIs(t, err, ErrTimeSlotPast)
}

func TestAddSlot_UnparseableRejected(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "addbad")
	doctorID := seedDoctor(t, db)

	_, err := uc.AddSlot(ctxWithUser(doctorID), &dto.AddSlotRequest{
		Date:     dateOffset(1),
		TimeSlot: "sometime in the morning",
	})
	assert.ErrorIs(t, err, ErrUnparseableTimeSlot)
}

func TestGetCalendar_SweepsExpiredKeepsUnparseable(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "sweep")
	doctorID := seedDoctor(t, db)

	expired := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(-1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	future := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "16:00 - 21:00", Status: entity.SlotStatusAvailable}
	// No parseable end: the sweep must not touch it
	odd := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(-1), TimeSlot: "on call", Status: entity.SlotStatusUnavailable}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(future).Error)
	require.NoError(t, db.Create(odd).Error)

	calendar, err := uc.GetCalendar(ctxWithUser(doctorID))
	require.NoError(t, err)
	assert.Len(t, calendar.Days, 7)

	var remaining []entity.AvailabilitySlot
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, s := range remaining {
		assert.NotEqual(t, expired.ID, s.ID)
	}
}

func TestGetCalendar_WindowsAndDisabledFlag(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "grid")
	doctorID := seedDoctor(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(2), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	calendar, err := uc.GetCalendar(ctxWithUser(doctorID))
	require.NoError(t, err)

	require.Len(t, calendar.Days, 7)
	for _, day := range calendar.Days {
		require.GreaterOrEqual(t, len(day.Windows), 2)
		assert.Equal(t, "morning", day.Windows[0].Key)
		assert.Equal(t, "08:00 - 12:00", day.Windows[0].TimeSlot)
		assert.Equal(t, "evening", day.Windows[1].Key)
		assert.Equal(t, "16:00 - 21:00", day.Windows[1].TimeSlot)
	}

	day := calendar.Days[2]
	require.NotNil(t, day.Windows[0].Slot)
	assert.Equal(t, slot.ID, day.Windows[0].Slot.ID)
	assert.False(t, day.Windows[0].Disabled)
	assert.Nil(t, day.Windows[1].Slot)
}

func TestToggleSlot_CreatesMissingAsAvailable(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "togglenew")
	doctorID := seedDoctor(t, db)

	slot, err := uc.ToggleSlot(ctxWithUser(doctorID), &dto.ToggleSlotRequest{
		Date:     dateOffset(1),
		TimeSlot: "08:00 - 12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SlotStatusAvailable), slot.Status)
}

func TestToggleSlot_FlipsExisting(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "toggleflip")
	doctorID := seedDoctor(t, db)
	ctx := ctxWithUser(doctorID)
	req := &dto.ToggleSlotRequest{Date: dateOffset(1), TimeSlot: "16:00 - 21:00"}

	first, err := uc.ToggleSlot(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SlotStatusAvailable), first.Status)

	second, err := uc.ToggleSlot(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SlotStatusUnavailable), second.Status)

	third, err := uc.ToggleSlot(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SlotStatusAvailable), third.Status)
}

func TestToggleSlot_BookedRejected(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "togglebooked")
	doctorID := seedDoctor(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusBooked}
	require.NoError(t, db.Create(slot).Error)

	_, err := uc.ToggleSlot(ctxWithUser(doctorID), &dto.ToggleSlotRequest{
		Date:     dateOffset(1),
		TimeSlot: "08:00 - 12:00",
	})
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)

	var unchanged entity.AvailabilitySlot
	require.NoError(t, db.First(&unchanged, slot.ID).Error)
	assert.Equal(t, entity.SlotStatusBooked, unchanged.Status)
}

func TestBulkSave_NoneOnMissingReportsZero(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "bulknone")
	doctorID := seedDoctor(t, db)

	result, err := uc.BulkSave(ctxWithUser(doctorID), &dto.BulkSaveRequest{
		Changes: []dto.SlotChange{
			{Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: dto.SlotStatusNone},
			{Date: dateOffset(2), TimeSlot: "16:00 - 21:00", Status: dto.SlotStatusNone},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Changed)
}

func TestBulkSave_UpsertAndDelete(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "bulk")
	doctorID := seedDoctor(t, db)
	ctx := ctxWithUser(doctorID)

	existing := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusAvailable}
	doomed := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(2), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusUnavailable}
	require.NoError(t, db.Create(existing).Error)
	require.NoError(t, db.Create(doomed).Error)

	result, err := uc.BulkSave(ctx, &dto.BulkSaveRequest{
		Changes: []dto.SlotChange{
			// flip existing
			{Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: string(entity.SlotStatusUnavailable)},
			// delete
			{Date: dateOffset(2), TimeSlot: "08:00 - 12:00", Status: dto.SlotStatusNone},
			// create
			{Date: dateOffset(3), TimeSlot: "16:00 - 21:00", Status: string(entity.SlotStatusAvailable)},
			// same status, no change
			{Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: string(entity.SlotStatusUnavailable)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Changed)

	var slots []entity.AvailabilitySlot
	require.NoError(t, db.Order("id").Find(&slots).Error)
	require.Len(t, slots, 2)
	assert.Equal(t, entity.SlotStatusUnavailable, slots[0].Status)
	assert.Equal(t, dateOffset(3), slots[1].Date)
}

func TestGetDoctorCalendar_UnknownDoctor(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "browse404")
	patientID := seedPatient(t, db)

	_, err := uc.GetDoctorCalendar(ctxWithUser(patientID), patientID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetDoctorCalendar_ProjectsGrid(t *testing.T) {
	uc, db := newAvailabilityUsecase(t, "browse")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "16:00 - 21:00", Status: entity.SlotStatusAvailable}
	require.NoError(t, db.Create(slot).Error)

	calendar, err := uc.GetDoctorCalendar(ctxWithUser(patientID), doctorID)
	require.NoError(t, err)
	assert.Equal(t, doctorID, calendar.DoctorID)
	require.Len(t, calendar.Days, 7)
	require.NotNil(t, calendar.Days[1].Windows[1].Slot)
	assert.Equal(t, slot.ID, calendar.Days[1].Windows[1].Slot.ID)
}
