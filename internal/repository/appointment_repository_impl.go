package repository

import (
	"errors"

	"go-hospital-management/internal/domain/entity"
	domainRepo "go-hospital-management/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Visit").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").Preload("Visit").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveByDoctorID returns a doctor's appointments excluding cancelled
// ones, newest first.
func (r *appointmentRepository) FindActiveByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").Preload("Visit").
		Where("doctor_id = ? AND status != ?", doctorID, entity.AppointmentStatusCancelled).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientAndDoctor(db *gorm.DB, patientID, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Visit").
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// MarkCancelled cancels atomically and ONLY while the appointment is still
// Booked, so a double-cancel (or a cancel after completion) is a no-op.
func (r *appointmentRepository) MarkCancelled(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusBooked).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uint, status entity.AppointmentStatus) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *appointmentRepository) ListIDsByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]uint, error) {
	var ids []uint
	err := db.Model(&entity.Appointment{}).Where("doctor_id = ?", doctorID).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *appointmentRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountActive(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("status != ?", entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}
