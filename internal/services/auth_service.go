package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
	"shift_manager_backend/pkg/utils"
)

// --- Auth DTOs ---
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type AuthResponse struct {
	Token string             `json:"token"`
	User  models.SessionUser `json:"user"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error)
	Verify(ctx context.Context, userID int64) (*models.SessionUser, error)
	ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
	activityRepo repositories.ActivityRepository
	db           *sql.DB
	hashCost     int
}

// NewAuthService creates a new instance of AuthService.
// Tokens are signed with the key installed by utils.ConfigureJWT.
func NewAuthService(er repositories.EmployeeRepository, ar repositories.ActivityRepository, db *sql.DB) AuthService {
	return &authService{
		employeeRepo: er,
		activityRepo: ar,
		db:           db,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error) {
	code := strings.TrimSpace(creds.EmployeeID)
	if code == "" || creds.Password == "" {
		return nil, validationError("employeeId and password are required")
	}

	employee, err := s.employeeRepo.GetEmployeeByCode(ctx, code)
	if err != nil {
		return nil, translateRepoError("loading employee", err, ErrInvalidCredentials)
	}
	if !employee.IsActive {
		return nil, ErrInvalidCredentials
	}

	// bcrypt.ErrMismatchedHashAndPassword for a wrong password
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(employee.ID, employee.EmployeeCode, employee.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	description := fmt.Sprintf("%s logged in", employee.Name)
	if err := s.activityRepo.AppendActivity(ctx, s.db, &models.ActivityRecord{
		UserID:      &employee.ID,
		ActionType:  models.ActivityLogin,
		Description: &description,
	}); err != nil {
		// A failed audit write does not block the login.
		utils.LogError(err, "Failed to record login activity")
	}

	return &AuthResponse{Token: token, User: models.NewSessionUser(employee)}, nil
}

// Verify reloads the account behind a token. Deactivated accounts no longer verify.
func (s *authService) Verify(ctx context.Context, userID int64) (*models.SessionUser, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, userID)
	if err != nil {
		return nil, translateRepoError("loading employee", err, ErrInvalidCredentials)
	}
	if !employee.IsActive {
		return nil, ErrInvalidCredentials
	}
	user := models.NewSessionUser(employee)
	return &user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	notFound := fmt.Errorf("%w: id %d", ErrEmployeeNotFound, userID)
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, userID)
	if err != nil {
		return translateRepoError("loading employee", err, notFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrIncorrectPassword
		}
		return internalError("checking password", err)
	}
	if !utils.IsValidPasswordLength(req.NewPassword, minPasswordLength) {
		return validationError("password must be at least %d characters", minPasswordLength)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return internalError("hashing password", err)
	}
	if err := s.employeeRepo.UpdatePasswordHash(ctx, s.db, userID, string(hashed)); err != nil {
		return translateRepoError("updating password", err, notFound)
	}
	return nil
}
