package usecase

import (
	"context"
	"testing"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdminUsecase(t *testing.T, name string) (AdminUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	uc := NewAdminUsecase(
		db,
		log,
		repository.NewDoctorProfileRepository(),
		repository.NewPatientProfileRepository(),
		repository.NewAppointmentRepository(),
		repository.NewAuditLogRepository(),
	)
	return uc, db
}

func TestDashboard(t *testing.T) {
	uc, db := newAdminUsecase(t, "dashboard")
	doctorID := seedDoctor(t, db)
	patientID := seedPatient(t, db)
	seedPatient(t, db)

	require.NoError(t, db.Create(&entity.Appointment{
		PatientID: patientID, DoctorID: doctorID,
		Date: dateOffset(1), TimeSlot: "08:00 - 12:00",
		Status: entity.AppointmentStatusBooked,
	}).Error)
	require.NoError(t, db.Create(&entity.Appointment{
		PatientID: patientID, DoctorID: doctorID,
		Date: dateOffset(2), TimeSlot: "08:00 - 12:00",
		Status: entity.AppointmentStatusCancelled,
	}).Error)

	resp, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalDoctors)
	assert.Equal(t, int64(2), resp.TotalPatients)
	// Cancelled appointments do not count
	assert.Equal(t, int64(1), resp.TotalAppointments)
}

func TestRecentAuditLogs_Limit(t *testing.T) {
	uc, db := newAdminUsecase(t, "auditlogs")
	log := testLogger()
	audit := testAuditService(db, log)
	doctorID := seedDoctor(t, db)

	for i := 0; i < 5; i++ {
		audit.LogCreate(context.Background(), db, &doctorID, entity.AuditActionSlotAdd, "availability_slot", dateOffset(i), nil)
	}

	logs, err := uc.RecentAuditLogs(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, logs, 3)

	logs, err = uc.RecentAuditLogs(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}
