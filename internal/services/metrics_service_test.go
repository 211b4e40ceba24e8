package services

import (
	"testing"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

func testRepo(id int64, language string, stars, forks int, commitDays ...string) *models.Repository {
	repo := &models.Repository{
		ID:       id,
		Name:     "repo",
		FullName: "student/repo",
		Stars:    stars,
		Forks:    forks,
	}
	if language != "" {
		repo.Language = strPtr(language)
	}
	for _, day := range commitDays {
		authoredAt, _ := time.Parse("2006-01-02", day)
		repo.Commits = append(repo.Commits, models.Commit{
			Message:    "update",
			AuthoredAt: authoredAt,
		})
	}
	return repo
}

func TestComputeMetricsEmptyInput(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	snapshot, err := service.ComputeMetrics(nil, nil, testNow)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, snapshot.Activity.Score)
	assert.Equal(t, 0.0, snapshot.Quality.Score)
	assert.Equal(t, 0.0, snapshot.Impact.Score)
	assert.Equal(t, 0, snapshot.TotalCommits)
	assert.Equal(t, 0, snapshot.TotalRepositories)
	assert.Empty(t, snapshot.Languages)
	assert.Empty(t, snapshot.CareerSuggestions)
	assert.Empty(t, snapshot.Suggestions)
	assert.Nil(t, snapshot.LeetCode)
	assert.Equal(t, 0, snapshot.Streaks.CurrentStreak)
	assert.Equal(t, 0, snapshot.Streaks.LongestStreak)
}

func TestComputeMetricsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name   string
		config MetricsConfig
	}{
		{name: "Zero recent window", config: MetricsConfig{RecentWindowDays: 0, ActiveWindowDays: 30}},
		{name: "Negative recent window", config: MetricsConfig{RecentWindowDays: -1, ActiveWindowDays: 30}},
		{name: "Zero active window", config: MetricsConfig{RecentWindowDays: 90, ActiveWindowDays: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewMetricsService(tc.config)
			snapshot, err := service.ComputeMetrics(nil, nil, testNow)
			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestComputeMetricsScoring(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	repos := []*models.Repository{
		// 3 recent commits on 2 distinct days
		testRepo(1, "Go", 10, 2, "2024-06-10", "2024-06-11", "2024-06-11"),
		// 1 recent commit plus 1 outside the 90 day window
		testRepo(2, "Python", 20, 18, "2024-06-01", "2024-01-01"),
	}

	snapshot, err := service.ComputeMetrics(repos, nil, testNow)
	assert.NoError(t, err)

	// 4 recent commits, 3 distinct days, 2 active repos
	assert.Equal(t, 4, snapshot.Activity.RecentCommitCount)
	assert.Equal(t, 3, snapshot.Activity.DistinctActiveDayCount)
	assert.Equal(t, 2, snapshot.Activity.DistinctActiveRepoCount)
	assert.Equal(t, 5, snapshot.TotalCommits)
	assert.Equal(t, 2, snapshot.TotalRepositories)

	// (4/90)*40 + (3/90)*30 + (2/5)*30 = 1.7778 + 1 + 12 = 14.78
	assert.InDelta(t, 14.78, snapshot.Activity.Score, 0.001)
	// min(4/150,1)*40 + (3/90)*30 + (2/5)*30 = 1.0667 + 1 + 12 = 14.07
	assert.InDelta(t, 14.07, snapshot.Quality.Score, 0.001)

	// stars 30 -> min(60,50)=50, forks 20 -> min(100,50)=50
	assert.Equal(t, 30, snapshot.Impact.TotalStars)
	assert.Equal(t, 20, snapshot.Impact.TotalForks)
	assert.Equal(t, 100.0, snapshot.Impact.Score)

	assert.Nil(t, snapshot.LeetCode)
}

func TestComputeMetricsScoreBounds(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	// Far more activity than the formulas can express without clamping.
	var repos []*models.Repository
	for i := int64(1); i <= 10; i++ {
		repo := testRepo(i, "Go", 1000, 1000)
		for d := 0; d < 60; d++ {
			repo.Commits = append(repo.Commits, models.Commit{
				Message:    "update",
				AuthoredAt: testNow.AddDate(0, 0, -d),
			})
		}
		repos = append(repos, repo)
	}

	snapshot, err := service.ComputeMetrics(repos, nil, testNow)
	assert.NoError(t, err)

	assert.Equal(t, 100.0, snapshot.Activity.Score)
	assert.Equal(t, 100.0, snapshot.Quality.Score)
	assert.Equal(t, 100.0, snapshot.Impact.Score)
	assert.LessOrEqual(t, snapshot.Activity.DistinctActiveDayCount, 90)
}

func TestDistinctActiveDaysBoundedByWindow(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	// Commits at 13:00 UTC on every date from 91 days back through
	// today. A time-of-day cutoff would admit 91 calendar dates; the
	// date-granular window must admit exactly 90.
	repo := testRepo(1, "Go", 0, 0)
	for d := 0; d <= 90; d++ {
		day := testNow.AddDate(0, 0, -d)
		repo.Commits = append(repo.Commits, models.Commit{
			Message:    "update",
			AuthoredAt: time.Date(day.Year(), day.Month(), day.Day(), 13, 0, 0, 0, time.UTC),
		})
	}

	snapshot, err := service.ComputeMetrics([]*models.Repository{repo}, nil, testNow)
	assert.NoError(t, err)

	assert.Equal(t, 90, snapshot.Activity.DistinctActiveDayCount)
	assert.Equal(t, 90, snapshot.Activity.RecentCommitCount)
	assert.Equal(t, 91, snapshot.TotalCommits)
}

func TestQualityCapsCommitFrequencyActivityDoesNot(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	// 200 recent commits on a single day in a single repo.
	repo := testRepo(1, "Go", 0, 0)
	for i := 0; i < 200; i++ {
		repo.Commits = append(repo.Commits, models.Commit{
			Message:    "update",
			AuthoredAt: testNow.AddDate(0, 0, -2),
		})
	}

	snapshot, err := service.ComputeMetrics([]*models.Repository{repo}, nil, testNow)
	assert.NoError(t, err)

	// Quality caps the frequency term at 40 once 150 commits are hit.
	assert.Equal(t, 40.0, snapshot.Quality.CommitFrequencyComponent)
	// 40 + (1/90)*30 + (1/5)*30 = 46.33
	assert.InDelta(t, 46.33, snapshot.Quality.Score, 0.001)
	// Activity does not cap: (200/90)*40 + (1/90)*30 + (1/5)*30 = 95.22
	assert.InDelta(t, 95.22, snapshot.Activity.Score, 0.001)
}

func TestLanguageHistogram(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	repos := []*models.Repository{
		testRepo(1, "JavaScript", 0, 0),
		testRepo(2, "JavaScript", 0, 0),
		testRepo(3, "Python", 0, 0),
		testRepo(4, "", 0, 0), // no declared language
	}

	snapshot, err := service.ComputeMetrics(repos, nil, testNow)
	assert.NoError(t, err)

	assert.Len(t, snapshot.Languages, 2)
	assert.Equal(t, 2, snapshot.Languages["JavaScript"].Count)
	assert.InDelta(t, 66.67, snapshot.Languages["JavaScript"].Percentage, 0.001)
	assert.Equal(t, 1, snapshot.Languages["Python"].Count)
	assert.InDelta(t, 33.33, snapshot.Languages["Python"].Percentage, 0.001)
}

func TestComputeLeetCodeMetrics(t *testing.T) {
	testCases := []struct {
		name            string
		profile         *models.ProblemProfile
		expectNil       bool
		expectedProblem float64
		expectedOverall float64
	}{
		{
			name:      "No profile",
			profile:   nil,
			expectNil: true,
		},
		{
			name: "All caps reached",
			profile: &models.ProblemProfile{
				TotalSolved:    60,
				EasySolved:     30,
				MediumSolved:   20,
				HardSolved:     10,
				SubmissionRate: 80,
				Ranking:        12345,
			},
			// 20 + 50 + 30 = 100, overall 100*0.7 + 80*0.3 = 94
			expectedProblem: 100,
			expectedOverall: 94,
		},
		{
			name: "Partial progress",
			profile: &models.ProblemProfile{
				TotalSolved:    20,
				EasySolved:     15,
				MediumSolved:   4,
				HardSolved:     1,
				SubmissionRate: 50,
			},
			// 15/30*20=10, 4/20*50=10, 1/10*30=3 -> 23
			expectedProblem: 23,
			// 23*0.7 + 50*0.3 = 31.1
			expectedOverall: 31.1,
		},
		{
			name: "Counts beyond caps stay capped",
			profile: &models.ProblemProfile{
				TotalSolved:    500,
				EasySolved:     300,
				MediumSolved:   150,
				HardSolved:     80,
				SubmissionRate: 100,
			},
			expectedProblem: 100,
			expectedOverall: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metrics := computeLeetCodeMetrics(tc.profile)
			if tc.expectNil {
				assert.Nil(t, metrics)
				return
			}
			assert.InDelta(t, tc.expectedProblem, metrics.ProblemScore, 0.001)
			assert.InDelta(t, tc.expectedOverall, metrics.Score, 0.001)
			assert.Equal(t, tc.profile.TotalSolved, metrics.ProblemsSolved)
			assert.Equal(t, tc.profile.Ranking, metrics.Ranking)
		})
	}
}

func TestComputeStreaks(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	repos := []*models.Repository{
		// 3 day streak ending today, plus an earlier 2 day run
		testRepo(1, "Go", 0, 0,
			"2024-06-15", "2024-06-14", "2024-06-13",
			"2024-06-10", "2024-06-09"),
	}

	snapshot, err := service.ComputeMetrics(repos, nil, testNow)
	assert.NoError(t, err)

	assert.Equal(t, 3, snapshot.Streaks.CurrentStreak)
	assert.Equal(t, 3, snapshot.Streaks.LongestStreak)
	assert.Equal(t, 5, snapshot.Streaks.ActiveDays)
	// 5 commits over 30/7 weeks = 1.17
	assert.InDelta(t, 1.17, snapshot.Streaks.WeeklyAverage, 0.001)
}

func TestComputeStreaksNoCommitToday(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	repos := []*models.Repository{
		testRepo(1, "Go", 0, 0, "2024-06-12", "2024-06-11", "2024-06-10"),
	}

	snapshot, err := service.ComputeMetrics(repos, nil, testNow)
	assert.NoError(t, err)

	assert.Equal(t, 0, snapshot.Streaks.CurrentStreak)
	assert.Equal(t, 3, snapshot.Streaks.LongestStreak)
}

func TestCareerSuggestions(t *testing.T) {
	testCases := []struct {
		name      string
		histogram map[string]models.LanguageStat
		expected  []string
	}{
		{
			name:      "Empty histogram",
			histogram: map[string]models.LanguageStat{},
			expected:  []string{},
		},
		{
			name: "Ordered by count then deduplicated",
			histogram: map[string]models.LanguageStat{
				"JavaScript": {Count: 5},
				"Python":     {Count: 3},
				"Java":       {Count: 1},
			},
			// JavaScript -> Web Development, Full-Stack Development
			// Python -> Data Science, then capped at three
			expected: []string{"Web Development", "Full-Stack Development", "Data Science"},
		},
		{
			name: "Ties broken by language name",
			histogram: map[string]models.LanguageStat{
				"Python": {Count: 1},
				"Go":     {Count: 1},
			},
			// Go sorts before Python on equal counts
			expected: []string{"Backend Development", "Cloud Infrastructure", "Data Science"},
		},
		{
			name: "Unknown language skipped",
			histogram: map[string]models.LanguageStat{
				"Brainfuck": {Count: 9},
				"Ruby":      {Count: 1},
			},
			expected: []string{"Web Development", "Backend Development"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, careerSuggestions(tc.histogram))
		})
	}
}

func TestBuildSuggestions(t *testing.T) {
	snapshot := &models.MetricsSnapshot{
		TotalRepositories: 3,
		Activity:          models.ActivityMetrics{Score: 55},
		Quality:           models.QualityMetrics{Score: 70},
		Impact:            models.ImpactMetrics{Score: 10},
	}

	t.Run("Default threshold", func(t *testing.T) {
		suggestions := BuildSuggestions(snapshot, SuggestionThresholdDefault)
		assert.Len(t, suggestions, 1)
		assert.Equal(t, "impact", suggestions[0].Area)
		assert.NotEmpty(t, suggestions[0].Advice)
	})

	t.Run("Dashboard threshold is stricter on activity", func(t *testing.T) {
		suggestions := BuildSuggestions(snapshot, SuggestionThresholdDashboard)
		assert.Len(t, suggestions, 2)
		assert.Equal(t, "activity", suggestions[0].Area)
		assert.Equal(t, "impact", suggestions[1].Area)
	})

	t.Run("No repositories yields no suggestions", func(t *testing.T) {
		empty := &models.MetricsSnapshot{TotalRepositories: 0}
		assert.Empty(t, BuildSuggestions(empty, SuggestionThresholdDefault))
	})
}

func TestComputeMetricsIdempotent(t *testing.T) {
	service := NewMetricsService(DefaultMetricsConfig())

	repos := []*models.Repository{
		testRepo(1, "Go", 4, 1, "2024-06-10", "2024-06-11"),
		testRepo(2, "Python", 2, 0, "2024-06-01"),
		testRepo(3, "", 0, 0),
	}
	profile := &models.ProblemProfile{
		TotalSolved:    25,
		EasySolved:     10,
		MediumSolved:   10,
		HardSolved:     5,
		SubmissionRate: 60,
	}

	first, err := service.ComputeMetrics(repos, profile, testNow)
	assert.NoError(t, err)
	second, err := service.ComputeMetrics(repos, profile, testNow)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
