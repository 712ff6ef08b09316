package usecase

import (
	"testing"
	"time"

	"go-hospital-management/config"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"
	"go-hospital-management/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDoctorProfileUsecase(t *testing.T, name string) (DoctorProfileUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	authUC := NewAuthUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewPatientProfileRepository(),
		testAuditService(db, log),
		jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 15 * time.Minute, RefreshExpiry: 24 * time.Hour}),
		deadRedis(),
	)
	uc := NewDoctorProfileUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewDoctorProfileRepository(),
		repository.NewDepartmentRepository(),
		repository.NewAvailabilitySlotRepository(),
		repository.NewAppointmentRepository(),
		repository.NewVisitRecordRepository(),
		testAuditService(db, log),
		testSlotCache(log),
		authUC,
	)
	return uc, db
}

func TestCreateDoctor(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "createdoc")
	adminID := uuid.New()

	resp, err := uc.CreateDoctor(ctxWithUser(adminID), &dto.CreateDoctorRequest{
		Email:           "house@clinic.test",
		Password:        "secret123",
		FullName:        "Gregory House",
		Specialization:  "Diagnostics",
		ExperienceYears: 20,
		ConsultationFee: decimal.NewFromInt(150),
		Department:      "Internal Medicine",
	})
	require.NoError(t, err)
	assert.Equal(t, "house@clinic.test", resp.Email)
	assert.Equal(t, "Diagnostics", resp.Specialization)
	assert.Equal(t, "Internal Medicine", resp.Department)

	var user entity.User
	require.NoError(t, db.Where("email = ?", "house@clinic.test").First(&user).Error)
	assert.Equal(t, entity.RoleIDDoctor, user.RoleID)

	var department entity.Department
	require.NoError(t, db.Where("name = ?", "Internal Medicine").First(&department).Error)
}

func TestCreateDoctor_ReusesDepartment(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "createdocdept")
	adminID := uuid.New()
	ctx := ctxWithUser(adminID)

	for _, email := range []string{"a@clinic.test", "b@clinic.test"} {
		_, err := uc.CreateDoctor(ctx, &dto.CreateDoctorRequest{
			Email:          email,
			Password:       "secret123",
			FullName:       "Some Doctor",
			Specialization: "Cardiology",
			Department:     "Cardiology",
		})
		require.NoError(t, err)
	}

	var count int64
	db.Model(&entity.Department{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateDoctor_PartialFields(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "updatedoc")
	doctorID := seedDoctor(t, db)
	adminID := uuid.New()

	resp, err := uc.UpdateDoctor(ctxWithUser(adminID), doctorID, &dto.UpdateDoctorRequest{
		Specialization: "Neurology",
	})
	require.NoError(t, err)
	assert.Equal(t, "Neurology", resp.Specialization)
	// Untouched fields survive
	assert.Equal(t, "Dr Test", resp.FullName)
}

func TestUpdateDoctor_RenamePersists(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "renamedoc")
	doctorID := seedDoctor(t, db)

	resp, err := uc.UpdateDoctor(ctxWithUser(uuid.New()), doctorID, &dto.UpdateDoctorRequest{
		FullName: "Dr Corrected",
		Phone:    "0833333333",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr Corrected", resp.FullName)

	// The profile save must not clobber the user row with its preloaded copy.
	var user entity.User
	require.NoError(t, db.First(&user, "id = ?", doctorID).Error)
	assert.Equal(t, "Dr Corrected", user.FullName)
}

func TestUpdateDoctor_NotFound(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "updatedoc404")
	_ = db

	_, err := uc.UpdateDoctor(ctxWithUser(uuid.New()), uuid.New(), &dto.UpdateDoctorRequest{})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDeleteDoctor_Cascade(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "deletedoc")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	adminID := uuid.New()

	slot := &entity.AvailabilitySlot{DoctorID: doctorID, Date: dateOffset(1), TimeSlot: "08:00 - 12:00", Status: entity.SlotStatusBooked}
	require.NoError(t, db.Create(slot).Error)

	slotID := slot.ID
	appointment := &entity.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		SlotID:    &slotID,
		Date:      slot.Date,
		TimeSlot:  slot.TimeSlot,
		Status:    entity.AppointmentStatusCompleted,
	}
	require.NoError(t, db.Create(appointment).Error)
	require.NoError(t, db.Create(&entity.VisitRecord{AppointmentID: appointment.ID, Diagnosis: "Flu"}).Error)

	require.NoError(t, uc.DeleteDoctor(ctxWithUser(adminID), doctorID))

	for _, model := range []interface{}{
		&entity.VisitRecord{},
		&entity.Appointment{},
		&entity.AvailabilitySlot{},
		&entity.DoctorProfile{},
	} {
		var count int64
		db.Model(model).Count(&count)
		assert.Equal(t, int64(0), count)
	}

	var users int64
	db.Model(&entity.User{}).Where("id = ?", doctorID).Count(&users)
	assert.Equal(t, int64(0), users)

	// The patient account is untouched
	var patients int64
	db.Model(&entity.User{}).Where("id = ?", patientID).Count(&patients)
	assert.Equal(t, int64(1), patients)
}

func TestDeleteDoctor_NotFound(t *testing.T) {
	uc, _ := newDoctorProfileUsecase(t, "deletedoc404")

	err := uc.DeleteDoctor(ctxWithUser(uuid.New()), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestSetDoctorActive_Blacklist(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "blacklist")
	doctorID := seedDoctor(t, db)
	adminID := uuid.New()

	require.NoError(t, uc.SetDoctorActive(ctxWithUser(adminID), doctorID, false))

	var user entity.User
	require.NoError(t, db.First(&user, "id = ?", doctorID).Error)
	require.NotNil(t, user.IsActive)
	assert.False(t, *user.IsActive)

	require.NoError(t, uc.SetDoctorActive(ctxWithUser(adminID), doctorID, true))
	require.NoError(t, db.First(&user, "id = ?", doctorID).Error)
	assert.True(t, *user.IsActive)
}

func TestSetDoctorActive_RejectsNonDoctor(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "blacklistrole")
	patientID := seedPatient(t, db)

	err := uc.SetDoctorActive(ctxWithUser(uuid.New()), patientID, false)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDirectory_FiltersInactive(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "directory")
	active := seedDoctor(t, db)
	inactive := seedDoctor(t, db)
	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", inactive).Update("is_active", false).Error)

	list, err := uc.Directory(ctxWithUser(uuid.New()), &dto.DoctorDirectoryQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, active, list.Doctors[0].ID)
}

func TestDirectory_FilterBySpecialization(t *testing.T) {
	uc, db := newDoctorProfileUsecase(t, "directoryspec")
	seedDoctor(t, db)

	list, err := uc.Directory(ctxWithUser(uuid.New()), &dto.DoctorDirectoryQuery{Specialization: "Cardio"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = uc.Directory(ctxWithUser(uuid.New()), &dto.DoctorDirectoryQuery{Specialization: "Dermatology"})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}
