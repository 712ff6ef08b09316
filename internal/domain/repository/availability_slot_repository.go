package repository

import (
	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlotRepository interface {
	Create(db *gorm.DB, slot *entity.AvailabilitySlot) error
	FindByID(db *gorm.DB, id uint) (*entity.AvailabilitySlot, error)
	// FindByIDForUpdate locks the slot row for the duration of the
	// enclosing transaction; used by the booking path.
	FindByIDForUpdate(db *gorm.DB, id uint) (*entity.AvailabilitySlot, error)
	FindByKey(db *gorm.DB, doctorID uuid.UUID, date, timeSlot string) (*entity.AvailabilitySlot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error)
	Update(db *gorm.DB, slot *entity.AvailabilitySlot) error
	UpdateStatus(db *gorm.DB, id uint, status entity.SlotStatus) (int64, error)
	Delete(db *gorm.DB, id uint) (int64, error)
	DeleteByIDs(db *gorm.DB, ids []uint) (int64, error)
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
