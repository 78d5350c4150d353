package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
	"shift_manager_backend/pkg/utils"
)

const (
	minPasswordLength   = 4
	statisticsWindowDay = 30
)

// --- Employee DTOs ---
type CreateEmployeeRequest struct {
	EmployeeID string  `json:"employeeId" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	StartDate  *string `json:"startDate"`
}

type UpdateEmployeeRequest struct {
	EmployeeID *string `json:"employeeId"`
	Password   *string `json:"password"`
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	StartDate  *string `json:"startDate"`
}

// --- EmployeeService Interface ---
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*models.EmployeeDetail, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (*models.Employee, error)
	SoftDeleteEmployee(ctx context.Context, id int64) (*models.Employee, error)
}

type employeeService struct {
	employeeRepo repositories.EmployeeRepository
	activityRepo repositories.ActivityRepository
	db           *sql.DB
	hashCost     int
	now          func() time.Time
}

// NewEmployeeService creates a new instance of EmployeeService.
func NewEmployeeService(er repositories.EmployeeRepository, ar repositories.ActivityRepository, db *sql.DB) EmployeeService {
	return &employeeService{
		employeeRepo: er,
		activityRepo: ar,
		db:           db,
		hashCost:     bcrypt.DefaultCost,
		now:          time.Now,
	}
}

func optionalTrimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*s))
}

func validateContactFields(email, startDate *string) error {
	if email != nil && !utils.IsValidEmail(*email) {
		return validationError("invalid email %q", *email)
	}
	if startDate != nil {
		if _, err := time.Parse(models.DateLayout, *startDate); err != nil {
			return validationError("invalid start date %q, please use YYYY-MM-DD", *startDate)
		}
	}
	return nil
}

func (s *employeeService) hashPassword(password string) (string, error) {
	if !utils.IsValidPasswordLength(password, minPasswordLength) {
		return "", validationError("password must be at least %d characters", minPasswordLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", internalError("hashing password", err)
	}
	return string(hashed), nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	code := strings.TrimSpace(req.EmployeeID)
	name := strings.TrimSpace(req.Name)
	if utils.IsEmpty(code) || utils.IsEmpty(name) {
		return nil, validationError("employeeId and name are required")
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = models.RoleEmployee
	}
	if !models.IsValidRole(role) {
		return nil, validationError("invalid role %q", role)
	}
	email := optionalTrimmed(req.Email)
	startDate := optionalTrimmed(req.StartDate)
	if err := validateContactFields(email, startDate); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatar := utils.Initial(name)
	employee := &models.Employee{
		EmployeeCode: code,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Phone:        optionalTrimmed(req.Phone),
		Email:        email,
		Avatar:       &avatar,
		StartDate:    startDate,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, internalError("starting transaction", err)
	}
	defer tx.Rollback()

	if _, err := s.employeeRepo.CreateEmployee(ctx, tx, employee); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeCodeExists, code)
		}
		return nil, internalError("creating employee", err)
	}

	description := fmt.Sprintf("Added employee %s (%s)", employee.Name, employee.EmployeeCode)
	if err := s.activityRepo.AppendActivity(ctx, tx, &models.ActivityRecord{
		UserID:      &employee.ID,
		ActionType:  models.ActivityEmployeeCreated,
		Description: &description,
	}); err != nil {
		return nil, internalError("recording activity", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("committing employee", err)
	}
	return employee, nil
}

// GetEmployee returns an active employee with shift counts over the last 30 days.
func (s *employeeService) GetEmployee(ctx context.Context, id int64) (*models.EmployeeDetail, error) {
	notFound := fmt.Errorf("%w: id %d", ErrEmployeeNotFound, id)
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, translateRepoError("loading employee", err, notFound)
	}
	if !employee.IsActive {
		return nil, notFound
	}

	since := s.now().AddDate(0, 0, -statisticsWindowDay).Format(models.DateLayout)
	stats, err := s.employeeRepo.GetShiftStatistics(ctx, id, since)
	if err != nil {
		return nil, internalError("loading shift statistics", err)
	}
	return &models.EmployeeDetail{Employee: *employee, Statistics: *stats}, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employeeRepo.GetActiveEmployees(ctx)
	if err != nil {
		return nil, internalError("listing employees", err)
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, id int64, req UpdateEmployeeRequest) (*models.Employee, error) {
	notFound := fmt.Errorf("%w: id %d", ErrEmployeeNotFound, id)
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, translateRepoError("loading employee", err, notFound)
	}

	if req.EmployeeID != nil {
		code := strings.TrimSpace(*req.EmployeeID)
		if code == "" {
			return nil, validationError("employeeId cannot be empty")
		}
		employee.EmployeeCode = code
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validationError("name cannot be empty")
		}
		avatar := utils.Initial(name)
		employee.Name = name
		employee.Avatar = &avatar
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, validationError("invalid role %q", *req.Role)
		}
		employee.Role = *req.Role
	}
	if req.Phone != nil {
		employee.Phone = optionalTrimmed(req.Phone)
	}
	if req.Email != nil {
		employee.Email = optionalTrimmed(req.Email)
	}
	if req.StartDate != nil {
		employee.StartDate = optionalTrimmed(req.StartDate)
	}
	if err := validateContactFields(employee.Email, employee.StartDate); err != nil {
		return nil, err
	}

	var newHash string
	if req.Password != nil && *req.Password != "" {
		if newHash, err = s.hashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, internalError("starting transaction", err)
	}
	defer tx.Rollback()

	if _, err := s.employeeRepo.UpdateEmployee(ctx, tx, employee); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, fmt.Errorf("%w: %s", ErrEmployeeCodeExists, employee.EmployeeCode)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, notFound
		}
		return nil, internalError("updating employee", err)
	}
	if newHash != "" {
		if err := s.employeeRepo.UpdatePasswordHash(ctx, tx, id, newHash); err != nil {
			return nil, translateRepoError("updating password", err, notFound)
		}
		employee.PasswordHash = newHash
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("committing employee update", err)
	}
	return employee, nil
}

// SoftDeleteEmployee deactivates the account. Existing shifts are kept.
func (s *employeeService) SoftDeleteEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	notFound := fmt.Errorf("%w: id %d", ErrEmployeeNotFound, id)
	employee, err := s.employeeRepo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, translateRepoError("loading employee", err, notFound)
	}
	if !employee.IsActive {
		return nil, notFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, internalError("starting transaction", err)
	}
	defer tx.Rollback()

	if err := s.employeeRepo.DeactivateEmployee(ctx, tx, id); err != nil {
		return nil, translateRepoError("deactivating employee", err, notFound)
	}

	description := fmt.Sprintf("Removed employee %s (%s)", employee.Name, employee.EmployeeCode)
	if err := s.activityRepo.AppendActivity(ctx, tx, &models.ActivityRecord{
		UserID:      &employee.ID,
		ActionType:  models.ActivityEmployeeRemoved,
		Description: &description,
	}); err != nil {
		return nil, internalError("recording activity", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError("committing employee removal", err)
	}
	employee.IsActive = false
	return employee, nil
}
