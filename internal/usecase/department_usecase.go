package usecase

import (
	"context"
	"errors"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDepartmentNotFound = errors.New("department not found")

type DepartmentUsecase interface {
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	GetDepartment(ctx context.Context, id int) (*dto.DepartmentDetailResponse, error)
}

type departmentUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	departmentRepo repository.DepartmentRepository
	doctorRepo     repository.DoctorProfileRepository
}

func NewDepartmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorProfileRepository,
) DepartmentUsecase {
	return &departmentUsecase{
		db:             db,
		log:            log,
		departmentRepo: departmentRepo,
		doctorRepo:     doctorRepo,
	}
}

func (u *departmentUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	departments, err := u.departmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(departments),
		Total:       len(departments),
	}, nil
}

func (u *departmentUsecase) GetDepartment(ctx context.Context, id int) (*dto.DepartmentDetailResponse, error) {
	department, err := u.departmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department %d: %+v", id, err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	doctors, err := u.doctorRepo.FindByDepartmentID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to list doctors of department %d: %+v", id, err)
		return nil, err
	}

	return &dto.DepartmentDetailResponse{
		DepartmentResponse: *converter.DepartmentToResponse(department),
		Doctors:            converter.DoctorsToResponses(doctors),
	}, nil
}
