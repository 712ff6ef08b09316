package usecase

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Department{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.AvailabilitySlot{},
		&entity.Appointment{},
		&entity.VisitRecord{},
		&entity.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// deadRedis returns a client whose every operation fails fast. The cache
// and token-store paths treat redis failures as degraded, so usecases stay
// testable against sqlite alone.
func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func testSlotCache(log *logrus.Logger) *service.SlotCacheService {
	return service.NewSlotCacheService(deadRedis(), log)
}

func testAuditService(db *gorm.DB, log *logrus.Logger) service.AuditService {
	return service.NewAuditService(db, log, repository.NewAuditLogRepository())
}

func ctxWithUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func seedDoctor(t *testing.T, db *gorm.DB) uuid.UUID {
	id := uuid.New()
	user := &entity.User{
		ID:       id,
		RoleID:   entity.RoleIDDoctor,
		Email:    fmt.Sprintf("doctor-%s@clinic.test", id.String()[:8]),
		Password: "hashed",
		FullName: "Dr Test",
		IsActive: boolPtr(true),
	}
	require.NoError(t, db.Create(user).Error)

	profile := &entity.DoctorProfile{
		UserID:         id,
		Specialization: "Cardiology",
	}
	require.NoError(t, db.Create(profile).Error)
	return id
}

func seedPatient(t *testing.T, db *gorm.DB) uuid.UUID {
	id := uuid.New()
	user := &entity.User{
		ID:       id,
		RoleID:   entity.RoleIDPatient,
		Email:    fmt.Sprintf("patient-%s@clinic.test", id.String()[:8]),
		Password: "hashed",
		FullName: "Pat Test",
		IsActive: boolPtr(true),
	}
	require.NoError(t, db.Create(user).Error)

	profile := &entity.PatientProfile{
		UserID: id,
		Age:    30,
	}
	require.NoError(t, db.Create(profile).Error)
	return id
}

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
