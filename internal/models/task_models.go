package models

import "time"

// ShiftClassAll marks a task type usable on every shift type. It is not a valid Shift.ShiftType.
const ShiftClassAll = "all"

// TaskType is a reusable duty that can be attached to shifts.
type TaskType struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Icon        string    `json:"icon" db:"icon"`
	ShiftType   string    `json:"shift" db:"shift_type"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TaskSummary counts active task types per applicable shift class.
type TaskSummary struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Night     int `json:"night"`
	All       int `json:"all"`
}

// IsValidTaskShiftClass accepts the three shift types plus "all".
func IsValidTaskShiftClass(s string) bool {
	return IsValidShiftType(s) || s == ShiftClassAll
}
