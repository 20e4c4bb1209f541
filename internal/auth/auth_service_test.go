package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"go-ess/internal/auth"
	autherrors "go-ess/internal/auth/errors"
	authMock "go-ess/internal/auth/mock"
	"go-ess/internal/employee"
	employeeerrors "go-ess/internal/employee/errors"
	employeeMock "go-ess/internal/employee/mock"
	rbacMock "go-ess/internal/rbac/mock"

	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type authDeps struct {
	repo      *authMock.MockRepository
	rbac      *rbacMock.MockService
	employees *employeeMock.MockRepository
	redis     redismock.ClientMock
	service   auth.Service
}

func setupAuthService(t *testing.T) *authDeps {
	ctrl := gomock.NewController(t)
	rdb, redisMock := redismock.NewClientMock()
	deps := &authDeps{
		repo:      authMock.NewMockRepository(ctrl),
		rbac:      rbacMock.NewMockService(ctrl),
		employees: employeeMock.NewMockRepository(ctrl),
		redis:     redisMock,
	}
	deps.service = auth.NewService(deps.repo, deps.rbac, deps.employees, rdb, auth.Options{Secret: testSecret})
	return deps
}

func hashKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:denylist:" + hex.EncodeToString(sum[:])
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	password := "password123"
	pw, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	companyID := uuid.New()
	employeeID := uuid.New()
	mockUser := &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		CompanyID:  companyID,
		Email:      "admin@example.com",
		Password:   string(pw),
		Role:       "HR",
		IsActive:   true,
	}

	t.Run("success", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.repo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)
		deps.rbac.EXPECT().LoadCompanyPolicy(companyID.String()).Return(nil)

		pair, resp, err := deps.service.Login(ctx, mockUser.Email, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, companyID.String(), resp.CompanyID)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
		assert.Equal(t, "HR", resp.Role)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(pair.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, employeeID.String(), claims["employee_id"])
		assert.Equal(t, "access", claims["typ"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.repo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(mockUser, nil)

		_, _, err := deps.service.Login(ctx, mockUser.Email, "wrongpass")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive user", func(t *testing.T) {
		deps := setupAuthService(t)
		inactive := *mockUser
		inactive.IsActive = false
		deps.repo.EXPECT().GetByEmail(ctx, mockUser.Email).Return(&inactive, nil)

		_, _, err := deps.service.Login(ctx, mockUser.Email, password)
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	pw, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	employeeID := uuid.New()
	user := &auth.User{ID: uuid.New(), CompanyID: uuid.New(), EmployeeID: &employeeID, Password: string(pw), IsActive: true}

	t.Run("success", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.repo.EXPECT().GetByEmail(ctx, "a@b.c").Return(user, nil)
		deps.rbac.EXPECT().LoadCompanyPolicy(user.CompanyID.String()).Return(nil)
		pair, _, err := deps.service.Login(ctx, "a@b.c", "password123")
		assert.NoError(t, err)

		deps.redis.ExpectExists(hashKey(pair.RefreshToken)).SetVal(0)
		deps.repo.EXPECT().GetByID(ctx, user.ID).Return(user, nil)

		next, _, err := deps.service.RefreshToken(ctx, pair.RefreshToken)
		assert.NoError(t, err)
		assert.NotEmpty(t, next.AccessToken)
	})

	t.Run("negative access token used as refresh token", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.repo.EXPECT().GetByEmail(ctx, "a@b.c").Return(user, nil)
		deps.rbac.EXPECT().LoadCompanyPolicy(user.CompanyID.String()).Return(nil)
		pair, _, _ := deps.service.Login(ctx, "a@b.c", "password123")

		_, _, err := deps.service.RefreshToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		deps := setupAuthService(t)
		_, _, err := deps.service.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestService_IsRevoked(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.redis.ExpectExists(hashKey("tok")).SetVal(1)

		revoked, err := deps.service.IsRevoked(ctx, "tok")
		assert.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("negative redis error", func(t *testing.T) {
		deps := setupAuthService(t)
		deps.redis.ExpectExists(hashKey("tok")).SetErr(errors.New("redis down"))

		revoked, err := deps.service.IsRevoked(ctx, "tok")
		assert.Error(t, err)
		assert.False(t, revoked)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("success empty token is a no-op", func(t *testing.T) {
		deps := setupAuthService(t)
		assert.NoError(t, deps.service.Logout(ctx, ""))
	})

	t.Run("negative invalid token", func(t *testing.T) {
		deps := setupAuthService(t)
		err := deps.service.Logout(ctx, "garbage")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("success expired token is ignored", func(t *testing.T) {
		deps := setupAuthService(t)
		expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "u-1",
			"exp":     time.Now().Add(-time.Minute).Unix(),
		}).SignedString([]byte(testSecret))

		assert.NoError(t, deps.service.Logout(ctx, expired))
	})
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupAuthService(t)
		cID := uuid.New()
		eID := uuid.New()
		req := auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "user@example.com",
			Name:       "John Doe",
			Password:   "password123",
		}

		deps.employees.EXPECT().
			FindByIDAndCompany(ctx, req.CompanyID, req.EmployeeID).
			Return(&employee.Employee{ID: eID, CompanyID: cID, FullName: "John Doe"}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.rbac.EXPECT().LoadCompanyPolicy(cID.String()).Return(nil)

		resp, err := deps.service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, req.Email, resp.Email)
		assert.Equal(t, "EMPLOYEE", resp.Role)
		assert.Equal(t, eID.String(), resp.EmployeeID)
	})

	t.Run("negative employee not found", func(t *testing.T) {
		deps := setupAuthService(t)
		cID := uuid.New().String()
		eID := uuid.New().String()

		deps.employees.EXPECT().
			FindByIDAndCompany(ctx, cID, eID).
			Return(nil, errors.New("not found"))

		_, err := deps.service.Register(ctx, auth.RegisterRequest{CompanyID: cID, EmployeeID: eID, Password: "password123"})
		assert.Equal(t, employeeerrors.ErrEmployeeNotFound, err)
	})

	t.Run("negative duplicate email", func(t *testing.T) {
		deps := setupAuthService(t)
		cID := uuid.New()
		eID := uuid.New()

		deps.employees.EXPECT().
			FindByIDAndCompany(ctx, cID.String(), eID.String()).
			Return(&employee.Employee{ID: eID, CompanyID: cID}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("duplicate key error"))

		_, err := deps.service.Register(ctx, auth.RegisterRequest{
			CompanyID:  cID.String(),
			EmployeeID: eID.String(),
			Email:      "duplicate@example.com",
			Password:   "password123",
		})
		assert.Equal(t, autherrors.ErrEmailAlreadyRegistered, err)
	})
}
