package models

import "time"

const (
	ActivityLogin           = "login"
	ActivityShiftCreated    = "shift_created"
	ActivityShiftDeleted    = "shift_deleted"
	ActivityEmployeeCreated = "employee_created"
	ActivityEmployeeRemoved = "employee_removed"
)

// ActivityRecord is an append-only audit entry.
type ActivityRecord struct {
	ID           int64     `json:"id" db:"id"`
	UserID       *int64    `json:"user_id,omitempty" db:"user_id"`
	ActionType   string    `json:"action_type" db:"action_type"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	EmployeeName *string   `json:"employee_name,omitempty"`
}
