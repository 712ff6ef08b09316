package usecase

import (
	"context"
	"testing"
	"time"

	"go-hospital-management/config"
	"go-hospital-management/internal/delivery/dto"
	"go-hospital-management/internal/domain/entity"
	"go-hospital-management/internal/repository"
	"go-hospital-management/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthUsecase(t *testing.T, name string) (AuthUsecase, *gorm.DB) {
	db := setupTestDB(t, name)
	log := testLogger()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	uc := NewAuthUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewPatientProfileRepository(),
		testAuditService(db, log),
		jwtService,
		deadRedis(),
	)
	return uc, db
}

func TestRegisterPatient(t *testing.T) {
	uc, db := newAuthUsecase(t, "register")

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:           "jane@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "Jane Doe",
		Age:             28,
		Gender:          "F",
		Phone:           "08123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, entity.RolePatient, resp.Role)
	require.NotNil(t, resp.PatientProfile)
	assert.Equal(t, 28, resp.PatientProfile.Age)

	var user entity.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, entity.RoleIDPatient, user.RoleID)
	assert.NotEqual(t, "secret123", user.Password)

	var profile entity.PatientProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestRegisterPatient_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthUsecase(t, "registerdup")

	req := &dto.RegisterPatientRequest{
		Email:           "dup@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "First One",
	}
	_, err := uc.RegisterPatient(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.RegisterPatient(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newAuthUsecase(t, "loginwrong")

	_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:           "john@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "John Doe",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "john@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _ := newAuthUsecase(t, "loginunknown")

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	uc, db := newAuthUsecase(t, "logininactive")

	_, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:           "blocked@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "Blocked User",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&entity.User{}).
		Where("email = ?", "blocked@example.com").
		Update("is_active", false).Error)

	_, err = uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "blocked@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestGetCurrentUser(t *testing.T) {
	uc, db := newAuthUsecase(t, "me")

	resp, err := uc.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		Email:           "me@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FullName:        "Me Myself",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&entity.Role{ID: entity.RoleIDPatient, RoleName: entity.RolePatient}).Error)

	current, err := uc.GetCurrentUser(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", current.Email)
	assert.Equal(t, "Me Myself", current.FullName)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	uc, _ := newAuthUsecase(t, "me404")

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshToken_Garbage(t *testing.T) {
	uc, _ := newAuthUsecase(t, "refreshbad")

	_, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: "not.a.token",
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
