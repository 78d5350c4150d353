package models

// HoursPerShift is the nominal length of every shift type.
const HoursPerShift = 8

const (
	ScoreExcellent = "excellent"
	ScoreGood      = "good"
	ScoreAverage   = "average"
)

// EmployeePerformance is one row of the performance table.
type EmployeePerformance struct {
	EmployeeID     int64   `json:"id"`
	Name           string  `json:"name"`
	Avatar         *string `json:"avatar,omitempty"`
	Shifts         int     `json:"shifts"`
	Hours          int     `json:"hours"`
	TasksAssigned  int     `json:"tasksAssigned"`
	TasksCompleted int     `json:"tasksCompleted"`
	CompletionRate float64 `json:"completionRate"`
	Score          string  `json:"score"`
}

// PerformanceSummary aggregates the table for the period.
type PerformanceSummary struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	TotalShifts    int     `json:"totalShifts"`
	TotalHours     int     `json:"totalHours"`
	AvgHours       float64 `json:"avgHours"`
	CompletionRate float64 `json:"completedTasks"`
}

// PerformanceReport is returned by the performance endpoint and used for export.
type PerformanceReport struct {
	Summary   PerformanceSummary    `json:"summary"`
	Employees []EmployeePerformance `json:"employees"`
}

// ScoreForCompletion maps a completion percentage onto a score band.
func ScoreForCompletion(rate float64) string {
	switch {
	case rate >= 95:
		return ScoreExcellent
	case rate >= 88:
		return ScoreGood
	default:
		return ScoreAverage
	}
}
