package services

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"shift_manager_backend/internal/models"
	"shift_manager_backend/internal/repositories"
)

const (
	defaultActivityLimit = 10
	maxActivityLimit     = 100
	performanceSheet     = "Performance"
)

// --- ReportService Interface ---
type ReportService interface {
	GetPerformanceReport(ctx context.Context, from, to string) (*models.PerformanceReport, error)
	ListRecentActivity(ctx context.Context, limit int) ([]models.ActivityRecord, error)
	// ExportPerformance renders the performance report as an xlsx workbook and suggests a file name.
	ExportPerformance(ctx context.Context, from, to string) (*bytes.Buffer, string, error)
}

type reportService struct {
	reportRepo   repositories.ReportRepository
	activityRepo repositories.ActivityRepository
	now          func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(rr repositories.ReportRepository, ar repositories.ActivityRepository) ReportService {
	return &reportService{
		reportRepo:   rr,
		activityRepo: ar,
		now:          time.Now,
	}
}

// reportRange resolves the period; an empty from defaults to the first of the current month
// and an empty to defaults to today.
func (s *reportService) reportRange(from, to string) (string, string, error) {
	today := s.now()
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" {
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
	}
	if to == "" {
		to = today.Format(models.DateLayout)
	}

	fromDate, err := parseShiftDate(from)
	if err != nil {
		return "", "", err
	}
	toDate, err := parseShiftDate(to)
	if err != nil {
		return "", "", err
	}
	if fromDate > toDate {
		return "", "", validationError("from %s is after to %s", fromDate, toDate)
	}
	return fromDate, toDate, nil
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *reportService) GetPerformanceReport(ctx context.Context, from, to string) (*models.PerformanceReport, error) {
	fromDate, toDate, err := s.reportRange(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.reportRepo.GetEmployeePerformance(ctx, fromDate, toDate)
	if err != nil {
		return nil, internalError("loading performance", err)
	}

	report := &models.PerformanceReport{
		Summary:   models.PerformanceSummary{From: fromDate, To: toDate},
		Employees: rows,
	}

	var assigned, completed int
	for i := range report.Employees {
		p := &report.Employees[i]
		p.Hours = p.Shifts * models.HoursPerShift
		if p.TasksAssigned > 0 {
			p.CompletionRate = roundOne(float64(p.TasksCompleted) * 100 / float64(p.TasksAssigned))
		}
		p.Score = models.ScoreForCompletion(p.CompletionRate)

		report.Summary.TotalShifts += p.Shifts
		report.Summary.TotalHours += p.Hours
		assigned += p.TasksAssigned
		completed += p.TasksCompleted
	}

	if n := len(report.Employees); n > 0 {
		report.Summary.AvgHours = roundOne(float64(report.Summary.TotalHours) / float64(n))
	}
	if assigned > 0 {
		report.Summary.CompletionRate = roundOne(float64(completed) * 100 / float64(assigned))
	}
	return report, nil
}

// ListRecentActivity returns newest entries first. limit falls back to 10 and is capped at 100.
func (s *reportService) ListRecentActivity(ctx context.Context, limit int) ([]models.ActivityRecord, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	records, err := s.activityRepo.GetRecentActivity(ctx, limit)
	if err != nil {
		return nil, internalError("loading activity", err)
	}
	return records, nil
}

func (s *reportService) ExportPerformance(ctx context.Context, from, to string) (*bytes.Buffer, string, error) {
	report, err := s.GetPerformanceReport(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(performanceSheet)
	if err != nil {
		return nil, "", internalError("creating sheet", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(performanceSheet, "A", "A", 24)
	f.SetColWidth(performanceSheet, "B", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00704A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(performanceSheet, "A1", fmt.Sprintf("Performance %s to %s", report.Summary.From, report.Summary.To))
	f.MergeCell(performanceSheet, "A1", "G1")
	f.SetCellStyle(performanceSheet, "A1", "A1", headerStyle)

	headers := []string{"Employee", "Shifts", "Hours", "Tasks assigned", "Tasks completed", "Completion %", "Score"}
	for i, h := range headers {
		f.SetCellValue(performanceSheet, cellName(i+1, 2), h)
	}
	f.SetCellStyle(performanceSheet, "A2", cellName(len(headers), 2), headerStyle)

	row := 3
	for _, p := range report.Employees {
		values := []interface{}{p.Name, p.Shifts, p.Hours, p.TasksAssigned, p.TasksCompleted, p.CompletionRate, p.Score}
		for i, v := range values {
			f.SetCellValue(performanceSheet, cellName(i+1, row), v)
		}
		row++
	}

	row++
	f.SetCellValue(performanceSheet, cellName(1, row), "Total shifts")
	f.SetCellValue(performanceSheet, cellName(2, row), report.Summary.TotalShifts)
	f.SetCellValue(performanceSheet, cellName(1, row+1), "Total hours")
	f.SetCellValue(performanceSheet, cellName(2, row+1), report.Summary.TotalHours)
	f.SetCellValue(performanceSheet, cellName(1, row+2), "Average hours")
	f.SetCellValue(performanceSheet, cellName(2, row+2), report.Summary.AvgHours)
	f.SetCellValue(performanceSheet, cellName(1, row+3), "Tasks completed %")
	f.SetCellValue(performanceSheet, cellName(2, row+3), report.Summary.CompletionRate)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", internalError("writing workbook", err)
	}

	filename := fmt.Sprintf("performance_%s_%s.xlsx", report.Summary.From, report.Summary.To)
	return buf, filename, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
