package repository

import (
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Preload("Department").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Preload("Department").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// FindAllActive returns doctors whose user account is active, optionally
// filtered by name, specialization, or department.
func (r *doctorProfileRepository) FindAllActive(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if filter != nil {
		if filter.Name != "" {
			query = query.Where("LOWER(users.full_name) LIKE LOWER(?)", "%"+filter.Name+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("LOWER(doctor_profiles.specialization) LIKE LOWER(?)", "%"+filter.Specialization+"%")
		}
		if filter.DepartmentID != 0 {
			query = query.Where("doctor_profiles.department_id = ?", filter.DepartmentID)
		}
	}

	err := query.
		Preload("User").Preload("Department").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindByDepartmentID(db *gorm.DB, departmentID int) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").Where("department_id = ?", departmentID).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User", "Department").Save(profile).Error
}

func (r *doctorProfileRepository) Delete(db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&entity.DoctorProfile{})
	return result.RowsAffected, result.Error
}

func (r *doctorProfileRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorProfile{}).Count(&count).Error
	return count, err
}
