package services

import (
	"errors"
	"fmt"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// Coding-progress categories shown in exported reports.
const (
	ProgressVeryGood         = "Very Good"
	ProgressGood             = "Good"
	ProgressAverage          = "Average"
	ProgressNeedsImprovement = "Needs Improvement"
	ProgressNotStarted       = "Not Started"
	ProgressNotAvailable     = "Not Available"
	ProgressError            = "Error"
)

// ExportRow is one student's row in a tabular report.
type ExportRow struct {
	RollNo           string
	Name             string
	Email            string
	GithubID         string
	TotalCommits     int
	ActiveRepos      int
	LeetcodeID       string
	ProblemsSolved   int
	CurrentStreak    int
	LongestStreak    int
	ActiveDays       int
	WeeklyAverage    float64
	CodingProgress   string
	CareerSuggestion string
}

// ReportService shapes metrics snapshots into exportable reports.
type ReportService struct {
	studentRepo *repositories.StudentRepository
	metricsRepo *repositories.MetricsRepository
}

func NewReportService(studentRepo *repositories.StudentRepository, metricsRepo *repositories.MetricsRepository) *ReportService {
	return &ReportService{
		studentRepo: studentRepo,
		metricsRepo: metricsRepo,
	}
}

// BuildClassReport builds one export row per student of the class,
// ordered by roll number.
func (s *ReportService) BuildClassReport(classID string) ([]ExportRow, error) {
	if classID == "" {
		return nil, errors.New("class ID is required")
	}

	students, err := s.studentRepo.GetByClassID(classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}

	studentIDs := make([]string, 0, len(students))
	for _, student := range students {
		studentIDs = append(studentIDs, student.ID)
	}

	metricsByStudent, err := s.metricsRepo.GetByStudentIDs(studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}

	rows := make([]ExportRow, 0, len(students))
	for _, student := range students {
		rows = append(rows, BuildExportRow(student, metricsByStudent[student.ID]))
	}

	return rows, nil
}

// BuildExportRow merges one student with their metrics record into a
// report row. Pure data shaping; a missing record degrades the row
// instead of failing it.
func BuildExportRow(student *models.Student, metrics *models.StudentMetrics) ExportRow {
	row := ExportRow{
		RollNo:         student.RollNo,
		Name:           student.Name,
		Email:          student.Email,
		CodingProgress: codingProgress(metrics),
	}
	if student.GithubUsername != nil {
		row.GithubID = *student.GithubUsername
	}
	if student.LeetcodeUsername != nil {
		row.LeetcodeID = *student.LeetcodeUsername
	}

	if metrics == nil || metrics.Snapshot == nil {
		return row
	}

	snapshot := metrics.Snapshot
	row.TotalCommits = snapshot.TotalCommits
	row.ActiveRepos = snapshot.Activity.DistinctActiveRepoCount
	row.CurrentStreak = snapshot.Streaks.CurrentStreak
	row.LongestStreak = snapshot.Streaks.LongestStreak
	row.ActiveDays = snapshot.Streaks.ActiveDays
	row.WeeklyAverage = snapshot.Streaks.WeeklyAverage
	if metrics.LeetCode != nil {
		row.ProblemsSolved = metrics.LeetCode.ProblemsSolved
	}
	if len(snapshot.CareerSuggestions) > 0 {
		row.CareerSuggestion = snapshot.CareerSuggestions[0]
	}

	return row
}

// codingProgress buckets a metrics record into the categorical progress label
func codingProgress(metrics *models.StudentMetrics) string {
	if metrics == nil || metrics.Snapshot == nil {
		return ProgressNotAvailable
	}
	if metrics.SyncStatus == models.SyncStatusFailed {
		return ProgressError
	}

	snapshot := metrics.Snapshot
	if snapshot.TotalCommits == 0 && snapshot.Activity.Score == 0 {
		return ProgressNotStarted
	}

	switch score := snapshot.Activity.Score; {
	case score >= 75:
		return ProgressVeryGood
	case score >= 60:
		return ProgressGood
	case score >= 40:
		return ProgressAverage
	default:
		return ProgressNeedsImprovement
	}
}

var exportHeaders = []string{
	"Roll No", "Name", "Email", "GitHub ID", "Total Commits", "Active Repos",
	"LeetCode ID", "Problems Solved", "Current Streak", "Longest Streak",
	"Active Days (30d)", "Weekly Average", "Coding Progress", "Career Suggestion",
}

// WriteExcel encodes report rows into an xlsx workbook.
func (s *ReportService) WriteExcel(rows []ExportRow) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.RollNo, row.Name, row.Email, row.GithubID, row.TotalCommits,
			row.ActiveRepos, row.LeetcodeID, row.ProblemsSolved, row.CurrentStreak,
			row.LongestStreak, row.ActiveDays, row.WeeklyAverage,
			row.CodingProgress, row.CareerSuggestion,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
