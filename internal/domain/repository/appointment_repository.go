package repository

import (
	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientAndDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.Appointment, error)
	// MarkCancelled cancels an appointment only while it is still Booked.
	// Returns affected rows: 0 means the appointment was already terminal.
	MarkCancelled(db *gorm.DB, id uint) (int64, error)
	UpdateStatus(db *gorm.DB, id uint, status entity.AppointmentStatus) error
	ListIDsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]uint, error)
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
	CountActive(db *gorm.DB) (int64, error)
}
