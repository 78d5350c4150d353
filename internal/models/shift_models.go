package models

import "time"

const (
	ShiftTypeMorning   = "morning"
	ShiftTypeAfternoon = "afternoon"
	ShiftTypeNight     = "night"
)

const (
	ShiftStatusScheduled = "scheduled"
	ShiftStatusCompleted = "completed"
	ShiftStatusCancelled = "cancelled"
)

// DateLayout is the ISO calendar date format used for shift dates.
const DateLayout = "2006-01-02"

// ShiftTypes lists shift types in display order.
var ShiftTypes = []string{ShiftTypeMorning, ShiftTypeAfternoon, ShiftTypeNight}

// Shift is one employee's assignment to a date and shift type.
type Shift struct {
	ID             int64       `json:"id" db:"id"`
	UserID         int64       `json:"user_id" db:"user_id"`
	ShiftDate      string      `json:"shift_date" db:"shift_date"`
	ShiftType      string      `json:"shift_type" db:"shift_type"`
	Status         string      `json:"status" db:"status"`
	Notes          *string     `json:"notes" db:"notes"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	EmployeeName   string      `json:"employee_name,omitempty"`
	EmployeeAvatar *string     `json:"employee_avatar,omitempty"`
	Tasks          []ShiftTask `json:"tasks"`
}

// ShiftTask is the completion-tracked link between a shift and a task type.
type ShiftTask struct {
	ShiftID     int64      `json:"-" db:"shift_id"`
	TaskID      int64      `json:"id" db:"task_id"`
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	IsCompleted bool       `json:"is_completed" db:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// ShiftsByType groups one day's shifts by shift type.
type ShiftsByType struct {
	Morning   []Shift `json:"morning"`
	Afternoon []Shift `json:"afternoon"`
	Night     []Shift `json:"night"`
}

// IsValidShiftType accepts morning, afternoon and night.
func IsValidShiftType(s string) bool {
	return s == ShiftTypeMorning || s == ShiftTypeAfternoon || s == ShiftTypeNight
}

// IsValidShiftStatus accepts scheduled, completed and cancelled.
func IsValidShiftStatus(s string) bool {
	return s == ShiftStatusScheduled || s == ShiftStatusCompleted || s == ShiftStatusCancelled
}

// CanTransitionShiftStatus reports whether a shift may move from one status to another.
// Only scheduled shifts move; completed and cancelled are terminal. Staying put is allowed.
func CanTransitionShiftStatus(from, to string) bool {
	if from == to {
		return true
	}
	return from == ShiftStatusScheduled && (to == ShiftStatusCompleted || to == ShiftStatusCancelled)
}
