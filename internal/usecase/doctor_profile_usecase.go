package usecase

import (
	"context"

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

type DoctorProfileUsecase interface {
	// Admin management
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
	SetDoctorActive(ctx context.Context, doctorID uuid.UUID, active bool) error

	// Patient-facing directory of active doctors
	Directory(ctx context.Context, query *dto.DoctorDirectoryQuery) (*dto.DoctorListResponse, error)
}

type doctorProfileUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	doctorRepo       repository.DoctorProfileRepository
	departmentRepo   repository.DepartmentRepository
	slotRepo         repository.AvailabilitySlotRepository
	appointmentRepo  repository.AppointmentRepository
	visitRepo        repository.VisitRecordRepository
	auditService     service.AuditService
	slotCacheService *service.SlotCacheService
	authUsecase      AuthUsecase
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorProfileRepository,
	departmentRepo repository.DepartmentRepository,
	slotRepo repository.AvailabilitySlotRepository,
	appointmentRepo repository.AppointmentRepository,
	visitRepo repository.VisitRecordRepository,
	auditService service.AuditService,
	slotCacheService *service.SlotCacheService,
	authUsecase AuthUsecase,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		doctorRepo:       doctorRepo,
		departmentRepo:   departmentRepo,
		slotRepo:         slotRepo,
		appointmentRepo:  appointmentRepo,
		visitRepo:        visitRepo,
		auditService:     auditService,
		slotCacheService: slotCacheService,
		authUsecase:      authUsecase,
	}
}

func (u *doctorProfileUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

// CreateDoctor provisions a doctor account with its profile. The department
// is resolved by name and created when it does not exist yet.
func (u *doctorProfileUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
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
		RoleID:   entity.RoleIDDoctor,
		IsActive: boolPtr(true),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor user: %+v", err)
		return nil, err
	}

	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Address:         req.Address,
		ConsultationFee: req.ConsultationFee,
	}

	if req.Department != "" {
		department, err := u.findOrCreateDepartment(tx, req.Department)
		if err != nil {
			return nil, err
		}
		profile.DepartmentID = &department.ID
		profile.Department = department
	}

	if err := u.doctorRepo.Create(tx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "doctor", user.ID.String(), map[string]interface{}{
		"email":          user.Email,
		"specialization": profile.Specialization,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = *user
	u.log.Infof("Doctor created: id=%s, email=%s", user.ID, user.Email)
	return converter.DoctorToResponse(profile), nil
}

func (u *doctorProfileUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", doctorID, err)
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
		u.log.Warnf("Failed to update user %s: %+v", doctorID, err)
		return nil, err
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = *req.ConsultationFee
	}
	if req.Department != "" {
		department, err := u.findOrCreateDepartment(tx, req.Department)
		if err != nil {
			return nil, err
		}
		profile.DepartmentID = &department.ID
		profile.Department = department
	}

	if err := u.doctorRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", doctorID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), nil, req)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := u.authUsecase.RevokeAllUserTokens(ctx, doctorID); err != nil {
			u.log.Warnf("Failed to revoke tokens for doctor %s (non-fatal): %+v", doctorID, err)
		}
	}

	profile.User = *user
	return converter.DoctorToResponse(profile), nil
}

// DeleteDoctor removes a doctor and everything hanging off the account.
// Deletion order respects the foreign keys: visit records first, then
// appointments, slots, the profile, and finally the user row.
func (u *doctorProfileUsecase) DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return err
	}
	if profile == nil {
		return ErrDoctorNotFound
	}

	appointmentIDs, err := u.appointmentRepo.ListIDsByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return err
	}

	if len(appointmentIDs) > 0 {
		if _, err := u.visitRepo.DeleteByAppointmentIDs(tx, appointmentIDs); err != nil {
			u.log.Warnf("Failed to delete visit records for doctor %s: %+v", doctorID, err)
			return err
		}
	}

	if _, err := u.appointmentRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete appointments for doctor %s: %+v", doctorID, err)
		return err
	}

	if _, err := u.slotRepo.DeleteByDoctorID(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete slots for doctor %s: %+v", doctorID, err)
		return err
	}

	if _, err := u.doctorRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor profile %s: %+v", doctorID, err)
		return err
	}

	if _, err := u.userRepo.Delete(tx, doctorID); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", doctorID, err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete, "doctor", doctorID.String(), map[string]interface{}{
		"appointments": len(appointmentIDs),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCacheService.Invalidate(ctx, doctorID)
	if err := u.authUsecase.RevokeAllUserTokens(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to revoke tokens for doctor %s (non-fatal): %+v", doctorID, err)
	}

	u.log.Infof("Doctor deleted: id=%s, appointments=%d", doctorID, len(appointmentIDs))
	return nil
}

// SetDoctorActive blacklists or reactivates a doctor account. Blacklisting
// kills every live session immediately.
func (u *doctorProfileUsecase) SetDoctorActive(ctx context.Context, doctorID uuid.UUID, active bool) error {
	adminID, _ := middleware.GetUserIDFromContext(ctx)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", doctorID, err)
		return err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return ErrDoctorNotFound
	}

	user.IsActive = boolPtr(active)
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", doctorID, err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &adminID, entity.AuditActionDoctorUpdate, "doctor", doctorID.String(), !active, active)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if !active {
		if err := u.authUsecase.RevokeAllUserTokens(ctx, doctorID); err != nil {
			u.log.Warnf("Failed to revoke tokens for doctor %s (non-fatal): %+v", doctorID, err)
		}
	}

	return nil
}

// Directory lists active doctors for patients, filtered by name,
// specialization or department.
func (u *doctorProfileUsecase) Directory(ctx context.Context, query *dto.DoctorDirectoryQuery) (*dto.DoctorListResponse, error) {
	filter := &entity.DoctorFilter{
		Name:           query.Name,
		Specialization: query.Specialization,
		DepartmentID:   query.DepartmentID,
	}

	profiles, err := u.doctorRepo.FindAllActive(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list active doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) findOrCreateDepartment(tx *gorm.DB, name string) (*entity.Department, error) {
	department, err := u.departmentRepo.FindByName(tx, name)
	if err != nil {
		u.log.Warnf("Failed to find department %s: %+v", name, err)
		return nil, err
	}
	if department != nil {
		return department, nil
	}

	department = &entity.Department{Name: name}
	if err := u.departmentRepo.Create(tx, department); err != nil {
		u.log.Warnf("Failed to create department %s: %+v", name, err)
		return nil, err
	}
	return department, nil
}
