package repository

import (
	"go-hospital-management/internal/domain/entity"

	"gorm.io/gorm"
)

type VisitRecordRepository interface {
	Create(db *gorm.DB, record *entity.VisitRecord) error
	FindByAppointmentID(db *gorm.DB, appointmentID uint) (*entity.VisitRecord, error)
	Update(db *gorm.DB, record *entity.VisitRecord) error
	DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uint) (int64, error)
}
