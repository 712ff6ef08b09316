package usecase

import (
	"context"
	"errors"

	"go-hospital-management/internal/converter"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/delivery/http/middleware"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/domain/repository"
	"go-hospital-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PatientProfileUsecase interface {
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, patientID uuid.UUID) error
	SetPatientActive(ctx context.Context, patientID uuid.UUID, active bool) error

	// UpdateMyProfile is the patient's self-service edit of their own
	// demographics.
	UpdateMyProfile(ctx context.Context, req *dto.UpdateMyProfileRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
	authUsecase  AuthUsecase
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
	authUsecase AuthUsecase,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
		authUsecase:  authUsecase,
	}
}

func (u *patientProfileUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	profiles, err := u.patientRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *patientProfileUsecase) GetPatient(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	profile, err := u.patientRepo.FindByUserID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(profile), nil
}

func (u *patientProfileUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: hashedPassword,
		FullName: req.FullName,
		RoleID:   entity.RoleIDPatient,
		IsActive: boolPtr(true),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient user: %+v", err)
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:  user.ID,
		Age:     req.Age,
		Gender:  req.Gender,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := u.patientRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionPatientCreate, "patient", user.ID.String(), map[string]interface{}{
		"email": user.Email,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	u.log.Infof("Patient created: id=%s, email=%s", user.ID, user.Email)
	return converter.PatientToResponse(profile), nil
}

func (u *patientProfileUsecase) UpdatePatient(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", patientID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}

	if err := u.userRepo.Update(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %s: %+v", patientID, err)
		return nil, err
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", patientID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionPatientUpdate, "patient", patientID.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := u.authUsecase.RevokeAllUserTokens(ctx, patientID); err != nil {
			u.log.Warnf("Failed to revoke tokens for patient %s (non-fatal): %+v", patientID, err)
		}
	}

	profile.User = *user
	return converter.PatientToResponse(profile), nil
}

// DeletePatient removes the profile and user rows. Appointments and visit
// records stay behind as the medical archive, so their patient reference
// goes stale after deletion.
func (u *patientProfileUsecase) DeletePatient(ctx context.Context, patientID uuid.UUID) error {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return err
	}
	if profile == nil {
		return ErrPatientNotFound
	}

	if _, err := u.patientRepo.Delete(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete patient profile %s: %+v", patientID, err)
		return err
	}

	if _, err := u.userRepo.Delete(tx, patientID); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", patientID, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionPatientDelete, "patient", patientID.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.authUsecase.RevokeAllUserTokens(ctx, patientID); err != nil {
		u.log.Warnf("Failed to revoke tokens for patient %s (non-fatal): %+v", patientID, err)
	}

	u.log.Infof("Patient deleted: id=%s", patientID)
	return nil
}

func (u *patientProfileUsecase) UpdateMyProfile(ctx context.Context, req *dto.UpdateMyProfileRequest) (*dto.PatientResponse, error) {
	patientID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientRepo.FindByUserID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientNotFound
	}

	user, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", patientID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update user %s: %+v", patientID, err)
			return nil, err
		}
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", patientID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &patientID, entity.AuditActionPatientUpdate, "patient", patientID.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	return converter.PatientToResponse(profile), nil
}

func (u *patientProfileUsecase) SetPatientActive(ctx context.Context, patientID uuid.UUID, active bool) error {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", patientID, err)
		return err
	}
	if user == nil || user.RoleID != entity.RoleIDPatient {
		return ErrPatientNotFound
	}

	user.IsActive = boolPtr(active)
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", patientID, err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionPatientUpdate, "patient", patientID.String(), !active, active)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if !active {
		if err := u.authUsecase.RevokeAllUserTokens(ctx, patientID); err != nil {
			u.log.Warnf("Failed to revoke tokens for patient %s (non-fatal): %+v", patientID, err)
		}
	}

	return nil
}
