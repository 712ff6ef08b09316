package repository

import (
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"gorm.io/gorm"
)

type visitRecordRepository struct{}

func NewVisitRecordRepository() domainRepo.VisitRecordRepository {
	return &visitRecordRepository{}
}

func (r *visitRecordRepository) Create(db *gorm.DB, record *entity.VisitRecord) error {
	return db.Create(record).Error
}

func (r *visitRecordRepository) FindByAppointmentID(db *gorm.DB, appointmentID uint) (*entity.VisitRecord, error) {
	var record entity.VisitRecord
	err := db.Where("appointment_id = ?", appointmentID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *visitRecordRepository) Update(db *gorm.DB, record *entity.VisitRecord) error {
	return db.Omit("Appointment").Save(record).Error
}

func (r *visitRecordRepository) DeleteByAppointmentIDs(db *gorm.DB, appointmentIDs []uint) (int64, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}
	result := db.Where("appointment_id IN ?", appointmentIDs).Delete(&entity.VisitRecord{})
	return result.RowsAffected, result.Error
}
