package repository

import (
	"go-hospital-management/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB) ([]entity.DoctorProfile, error)
	FindAllActive(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error)
	FindByDepartmentID(db *gorm.DB, departmentID int) ([]entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	Delete(db *gorm.DB, userID uuid.UUID) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
