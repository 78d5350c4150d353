package models

import "time"

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Employee is a store account. The numeric ID is the row key; EmployeeCode is the
// login identifier printed on the badge.
type Employee struct {
	ID           int64     `json:"id" db:"id"`
	EmployeeCode string    `json:"employeeId" db:"employee_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	Email        *string   `json:"email,omitempty" db:"email"`
	Avatar       *string   `json:"avatar,omitempty" db:"avatar"`
	StartDate    *string   `json:"startDate,omitempty" db:"start_date"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// EmployeeStatistics counts an employee's shifts over the trailing 30 days.
type EmployeeStatistics struct {
	TotalShifts     int `json:"totalShifts"`
	MorningShifts   int `json:"morningShifts"`
	AfternoonShifts int `json:"afternoonShifts"`
	NightShifts     int `json:"nightShifts"`
}

// EmployeeDetail is the single-employee view.
type EmployeeDetail struct {
	Employee
	Statistics EmployeeStatistics `json:"statistics"`
}

// IsValidRole reports whether role is one of the account roles.
func IsValidRole(role string) bool {
	return role == RoleManager || role == RoleEmployee
}
