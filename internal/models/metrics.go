package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus reflects the outcome of the last metrics sync for a student.
type SyncStatus string

const (
	SyncStatusOK     SyncStatus = "ok"
	SyncStatusFailed SyncStatus = "failed"
)

// ActivityMetrics covers recent commit volume over the scoring window.
type ActivityMetrics struct {
	RecentCommitCount       int     `json:"recentCommitCount"`
	DistinctActiveDayCount  int     `json:"distinctActiveDayCount"`
	DistinctActiveRepoCount int     `json:"distinctActiveRepoCount"`
	Score                   float64 `json:"score"`
}

// QualityMetrics covers commit consistency over the scoring window.
type QualityMetrics struct {
	CommitFrequencyComponent float64 `json:"commitFrequencyComponent"`
	ActiveDaysComponent      float64 `json:"activeDaysComponent"`
	RepoDiversityComponent   float64 `json:"repoDiversityComponent"`
	Score                    float64 `json:"score"`
}

// ImpactMetrics covers stars and forks across all repositories.
type ImpactMetrics struct {
	TotalStars int     `json:"totalStars"`
	TotalForks int     `json:"totalForks"`
	Score      float64 `json:"score"`
}

// LanguageStat is one entry of the language histogram.
type LanguageStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Suggestion is one improvement-advice bundle for a scored area.
type Suggestion struct {
	Area   string   `json:"area"`
	Advice []string `json:"adviceLines"`
}

// StreakMetrics are display metrics over the trailing active window,
// distinct from the longer scoring window.
type StreakMetrics struct {
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	ActiveDays    int     `json:"activeDays"`
	WeeklyAverage float64 `json:"weeklyAverage"`
}

// LeetCodeMetrics is the problem-solving score group. Nil when the
// student has no problem profile.
type LeetCodeMetrics struct {
	ProblemsSolved   int     `json:"problemsSolved"`
	ProblemScore     float64 `json:"problemScore"`
	ConsistencyScore float64 `json:"consistencyScore"`
	Score            float64 `json:"score"`
	Ranking          int     `json:"ranking"`
}

// MetricsSnapshot is one complete computation result. It is superseded
// wholesale by the next computation, never patched in place. LeetCode
// is carried on the struct for computation but persisted as the
// record-level leetcode sub-record, not inside the github document.
type MetricsSnapshot struct {
	Activity          ActivityMetrics         `json:"activity"`
	Quality           QualityMetrics          `json:"codeQuality"`
	Impact            ImpactMetrics           `json:"impact"`
	Languages         map[string]LanguageStat `json:"languages"`
	Streaks           StreakMetrics           `json:"streaks"`
	CareerSuggestions []string                `json:"careerInsights"`
	Suggestions       []Suggestion            `json:"suggestions"`
	TotalCommits      int                     `json:"commits"`
	TotalRepositories int                     `json:"repositories"`
	LeetCode          *LeetCodeMetrics        `json:"-"`
	ComputedAt        time.Time               `json:"lastUpdated"`
}

// StudentMetrics is the persisted per-student metrics record, one row
// per student, replaced on every sync. LeetCode is nil when the
// student has no problem profile.
type StudentMetrics struct {
	ID          string           `json:"id"`
	StudentID   string           `json:"student_id"`
	Snapshot    *MetricsSnapshot `json:"github"`
	LeetCode    *LeetCodeMetrics `json:"leetcode"`
	SyncStatus  SyncStatus       `json:"sync_status"`
	LastUpdated time.Time        `json:"last_updated"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewStudentMetrics creates a new StudentMetrics with a generated UUID.
// The leetcode sub-record is lifted out of the snapshot.
func NewStudentMetrics(studentID string, snapshot *MetricsSnapshot) *StudentMetrics {
	now := time.Now()
	metrics := &StudentMetrics{
		ID:          uuid.New().String(),
		StudentID:   studentID,
		Snapshot:    snapshot,
		SyncStatus:  SyncStatusOK,
		LastUpdated: now,
		CreatedAt:   now,
	}
	if snapshot != nil {
		metrics.LeetCode = snapshot.LeetCode
	}
	return metrics
}
