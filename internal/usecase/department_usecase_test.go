package usecase

import (
	"context"
	"testing"

	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDepartmentUsecase(t *testing.T, name string) (DepartmentUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	uc := NewDepartmentUsecase(
		db,
		testLogger(),
		repository.NewDepartmentRepository(),
		repository.NewDoctorProfileRepository(),
	)
	return uc, db
}

func TestListDepartments(t *testing.T) {
	uc, db := newDepartmentUsecase(t, "departments")
	require.NoError(t, db.Create(&entity.Department{Name: "Cardiology"}).Error)
	require.NoError(t, db.Create(&entity.Department{Name: "Neurology"}).Error)

	list, err := uc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}

func TestGetDepartment(t *testing.T) {
	uc, db := newDepartmentUsecase(t, "department")
	department := &entity.Department{Name: "Cardiology"}
	require.NoError(t, db.Create(department).Error)

	doctorID := seedDoctor(t, db)
	require.NoError(t, db.Model(&entity.DoctorProfile{}).
		Where("user_id = ?", doctorID).
		Update("department_id", department.ID).Error)

	resp, err := uc.GetDepartment(context.Background(), department.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", resp.Name)
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, doctorID, resp.Doctors[0].ID)
}

func TestGetDepartment_NotFound(t *testing.T) {
	uc, _ := newDepartmentUsecase(t, "department404")

	_, err := uc.GetDepartment(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrDepartmentNotFound)
}
