package usecase

import (
	"context"

	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditLogDefaultLimit = 100

type AdminUsecase interface {
	Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	RecentAuditLogs(ctx context.Context, limit int) ([]entity.AuditLog, error)
}

type adminUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorProfileRepository
	patientRepo     repository.PatientProfileRepository
	appointmentRepo repository.AppointmentRepository
	auditRepo       repository.AuditLogRepository
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditRepo repository.AuditLogRepository,
) AdminUsecase {
	return &adminUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
	}
}

func (u *adminUsecase) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)

	doctors, err := u.doctorRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	patients, err := u.patientRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.CountActive(db)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		TotalDoctors:      doctors,
		TotalPatients:     patients,
		TotalAppointments: appointments,
	}, nil
}

func (u *adminUsecase) RecentAuditLogs(ctx context.Context, limit int) ([]entity.AuditLog, error) {
	if limit <= 0 || limit > auditLogDefaultLimit {
		limit = auditLogDefaultLimit
	}

	logs, err := u.auditRepo.FindRecent(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}
	return logs, nil
}
