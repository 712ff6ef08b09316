package repository

import (
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type availabilitySlotRepository struct{}

func NewAvailabilitySlotRepository() domainRepo.AvailabilitySlotRepository {
	return &availabilitySlotRepository{}
}

func (r *availabilitySlotRepository) Create(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Create(slot).Error
}

func (r *availabilitySlotRepository) FindByID(db *gorm.DB, id uint) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

// FindByIDForUpdate acquires a row-level lock so that two concurrent
// bookings of the same slot serialize; must run inside a transaction.
// sqlite has no row locks and rejects FOR UPDATE; its single-writer
// transaction already serializes bookings there.
func (r *availabilitySlotRepository) FindByIDForUpdate(db *gorm.DB, id uint) (*entity.AvailabilitySlot, error) {
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var slot entity.AvailabilitySlot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindByKey(db *gorm.DB, doctorID uuid.UUID, date, timeSlot string) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := db.Where("doctor_id = ? AND date = ? AND time_slot = ?", doctorID, date, timeSlot).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *availabilitySlotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.Where("doctor_id = ?", doctorID).Order("date ASC, time_slot ASC").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *availabilitySlotRepository) Update(db *gorm.DB, slot *entity.AvailabilitySlot) error {
	return db.Omit("Doctor").Save(slot).Error
}

func (r *availabilitySlotRepository) UpdateStatus(db *gorm.DB, id uint, status entity.SlotStatus) (int64, error) {
	result := db.Model(&entity.AvailabilitySlot{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *availabilitySlotRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}

func (r *availabilitySlotRepository) DeleteByIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}

func (r *availabilitySlotRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}
