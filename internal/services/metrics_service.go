package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/codepulse/codepulse/internal/models"
)

// ErrInvalidInput signals a structurally invalid metrics computation
// request. The single call fails; nothing is persisted.
var ErrInvalidInput = errors.New("invalid metrics input")

// Suggestion thresholds observed at the two consumer call sites. The
// persisted snapshot uses the stricter one, the dashboard view the
// looser one. Both are kept deliberately.
const (
	SuggestionThresholdDefault   = 50.0
	SuggestionThresholdDashboard = 60.0
)

// MetricsConfig carries the scoring windows so tests can override them.
// The recent window feeds activity/quality scoring, the active window
// feeds streak and active-day display metrics. They are never mixed
// within one snapshot.
type MetricsConfig struct {
	RecentWindowDays int
	ActiveWindowDays int
}

// DefaultMetricsConfig returns the production windows
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		RecentWindowDays: 90,
		ActiveWindowDays: 30,
	}
}

type MetricsService struct {
	config MetricsConfig
}

func NewMetricsService(config MetricsConfig) *MetricsService {
	return &MetricsService{
		config: config,
	}
}

// ComputeMetrics reduces normalized repositories and an optional problem
// profile into a complete snapshot. It is a pure function of its inputs:
// identical inputs and an identical now yield an identical snapshot.
func (s *MetricsService) ComputeMetrics(repos []*models.Repository, profile *models.ProblemProfile, now time.Time) (*models.MetricsSnapshot, error) {
	if s.config.RecentWindowDays <= 0 || s.config.ActiveWindowDays <= 0 {
		return nil, fmt.Errorf("%w: window days must be positive", ErrInvalidInput)
	}

	// The window is date-granular: it covers the RecentWindowDays UTC
	// calendar dates ending today, so the distinct-day set can never
	// exceed the window length.
	recentCutoff := dayStart(now.UTC().AddDate(0, 0, -(s.config.RecentWindowDays - 1)))

	recentCommits := 0
	totalCommits := 0
	daySet := make(map[string]struct{})
	repoSet := make(map[int64]struct{})
	totalStars := 0
	totalForks := 0

	for _, repo := range repos {
		if repo == nil {
			continue
		}
		totalStars += repo.Stars
		totalForks += repo.Forks

		for _, commit := range repo.Commits {
			totalCommits++
			if commit.AuthoredAt.Before(recentCutoff) {
				continue
			}
			recentCommits++
			daySet[commit.AuthoredAt.UTC().Format("2006-01-02")] = struct{}{}
			repoSet[repo.ID] = struct{}{}
		}
	}

	window := float64(s.config.RecentWindowDays)
	activeDays := float64(len(daySet))
	activeRepos := float64(len(repoSet))

	// Activity leaves the commit-frequency term uncapped before the
	// outer clamp; quality caps it at 40. The asymmetry is intentional
	// and covered by tests.
	activityScore := clamp(
		(float64(recentCommits)/window)*40+
			(activeDays/window)*30+
			(activeRepos/5)*30,
		0, 100)

	frequencyComponent := math.Min(float64(recentCommits)/150, 1) * 40
	daysComponent := (activeDays / window) * 30
	diversityComponent := (activeRepos / 5) * 30
	qualityScore := clamp(frequencyComponent+daysComponent+diversityComponent, 0, 100)

	impactScore := clamp(
		math.Min(float64(totalStars)*2, 50)+
			math.Min(float64(totalForks)*5, 50),
		0, 100)

	snapshot := &models.MetricsSnapshot{
		Activity: models.ActivityMetrics{
			RecentCommitCount:       recentCommits,
			DistinctActiveDayCount:  len(daySet),
			DistinctActiveRepoCount: len(repoSet),
			Score:                   round2(activityScore),
		},
		Quality: models.QualityMetrics{
			CommitFrequencyComponent: round2(frequencyComponent),
			ActiveDaysComponent:      round2(daysComponent),
			RepoDiversityComponent:   round2(diversityComponent),
			Score:                    round2(qualityScore),
		},
		Impact: models.ImpactMetrics{
			TotalStars: totalStars,
			TotalForks: totalForks,
			Score:      round2(impactScore),
		},
		Languages:         s.languageHistogram(repos),
		TotalCommits:      totalCommits,
		TotalRepositories: len(repos),
		LeetCode:          computeLeetCodeMetrics(profile),
		ComputedAt:        now,
	}

	snapshot.Streaks = s.computeStreaks(repos, now)
	snapshot.CareerSuggestions = careerSuggestions(snapshot.Languages)
	snapshot.Suggestions = BuildSuggestions(snapshot, SuggestionThresholdDefault)

	return snapshot, nil
}

// languageHistogram counts repositories per declared language. Repos
// without a language are excluded from both the counts and the
// percentage denominator, so percentages sum to 100% of the
// language-declaring repositories.
func (s *MetricsService) languageHistogram(repos []*models.Repository) map[string]models.LanguageStat {
	histogram := make(map[string]models.LanguageStat)

	counts := make(map[string]int)
	declared := 0
	for _, repo := range repos {
		if repo == nil || repo.Language == nil || *repo.Language == "" {
			continue
		}
		counts[*repo.Language]++
		declared++
	}
	if declared == 0 {
		return histogram
	}

	total := float64(declared)
	for language, count := range counts {
		histogram[language] = models.LanguageStat{
			Count:      count,
			Percentage: round2(float64(count) / total * 100),
		}
	}

	return histogram
}

// computeLeetCodeMetrics derives the problem-solving score group.
// Returns nil when no profile is available; never zero-fills.
func computeLeetCodeMetrics(profile *models.ProblemProfile) *models.LeetCodeMetrics {
	if profile == nil {
		return nil
	}

	problemScore := math.Min(float64(profile.EasySolved)/30*20, 20) +
		math.Min(float64(profile.MediumSolved)/20*50, 50) +
		math.Min(float64(profile.HardSolved)/10*30, 30)
	consistencyScore := profile.SubmissionRate
	overall := problemScore*0.7 + consistencyScore*0.3

	return &models.LeetCodeMetrics{
		ProblemsSolved:   profile.TotalSolved,
		ProblemScore:     round2(problemScore),
		ConsistencyScore: round2(consistencyScore),
		Score:            round2(overall),
		Ranking:          profile.Ranking,
	}
}

// computeStreaks derives the display metrics over the active window:
// distinct active days, current and longest streaks, weekly average.
func (s *MetricsService) computeStreaks(repos []*models.Repository, now time.Time) models.StreakMetrics {
	activeCutoff := dayStart(now.UTC().AddDate(0, 0, -(s.config.ActiveWindowDays - 1)))

	daySet := make(map[string]struct{})
	commitCount := 0
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		for _, commit := range repo.Commits {
			if commit.AuthoredAt.Before(activeCutoff) {
				continue
			}
			commitCount++
			daySet[commit.AuthoredAt.UTC().Format("2006-01-02")] = struct{}{}
		}
	}

	current := 0
	for day := now.UTC(); ; day = day.AddDate(0, 0, -1) {
		if _, ok := daySet[day.Format("2006-01-02")]; !ok {
			break
		}
		current++
	}

	longest := 0
	run := 0
	for day := activeCutoff.UTC(); !day.After(now.UTC()); day = day.AddDate(0, 0, 1) {
		if _, ok := daySet[day.Format("2006-01-02")]; ok {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return models.StreakMetrics{
		CurrentStreak: current,
		LongestStreak: longest,
		ActiveDays:    len(daySet),
		WeeklyAverage: round2(float64(commitCount) / (float64(s.config.ActiveWindowDays) / 7)),
	}
}

// domainTable maps a primary language to suggested career domains.
var domainTable = map[string][]string{
	"JavaScript": {"Web Development", "Full-Stack Development"},
	"TypeScript": {"Web Development", "Frontend Engineering"},
	"Python":     {"Data Science", "Machine Learning", "Backend Development"},
	"Java":       {"Enterprise Software", "Android Development"},
	"Kotlin":     {"Android Development", "Mobile Development"},
	"Swift":      {"iOS Development", "Mobile Development"},
	"C":          {"Systems Programming", "Embedded Systems"},
	"C++":        {"Systems Programming", "Game Development"},
	"C#":         {"Game Development", "Enterprise Software"},
	"Go":         {"Backend Development", "Cloud Infrastructure"},
	"Rust":       {"Systems Programming", "Cloud Infrastructure"},
	"Ruby":       {"Web Development", "Backend Development"},
	"PHP":        {"Web Development", "Backend Development"},
	"Dart":       {"Mobile Development", "Cross-Platform Development"},
	"HTML":       {"Frontend Engineering", "Web Development"},
	"CSS":        {"Frontend Engineering", "Web Development"},
	"Shell":      {"DevOps Engineering", "Cloud Infrastructure"},
	"SQL":        {"Data Engineering", "Database Administration"},
	"R":          {"Data Science", "Statistical Computing"},
	"Scala":      {"Data Engineering", "Backend Development"},
}

// careerSuggestions maps the top three languages by repository count to
// domains, deduplicated in first-seen order and capped at three.
// Unknown languages are skipped silently.
func careerSuggestions(histogram map[string]models.LanguageStat) []string {
	type languageCount struct {
		name  string
		count int
	}

	ranked := make([]languageCount, 0, len(histogram))
	for name, stat := range histogram {
		ranked = append(ranked, languageCount{name: name, count: stat.Count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	suggestions := []string{}
	seen := make(map[string]struct{})
	for _, lc := range ranked {
		for _, domain := range domainTable[lc.name] {
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			suggestions = append(suggestions, domain)
			if len(suggestions) == 3 {
				return suggestions
			}
		}
	}

	return suggestions
}

// BuildSuggestions evaluates the fixed advice rules against the scored
// areas, in activity, quality, impact order. The threshold is a
// parameter because the two consumers disagree on it.
func BuildSuggestions(snapshot *models.MetricsSnapshot, threshold float64) []models.Suggestion {
	suggestions := []models.Suggestion{}
	if snapshot == nil || snapshot.TotalRepositories == 0 {
		return suggestions
	}

	if snapshot.Activity.Score < threshold {
		suggestions = append(suggestions, models.Suggestion{
			Area: "activity",
			Advice: []string{
				"Commit code more regularly, small daily commits count",
				"Pick one project and push changes at least three times a week",
				"Contribute to open source issues labelled good-first-issue",
			},
		})
	}
	if snapshot.Quality.Score < threshold {
		suggestions = append(suggestions, models.Suggestion{
			Area: "codeQuality",
			Advice: []string{
				"Spread work across more days instead of bursts",
				"Work on more than one repository to build breadth",
				"Write descriptive commit messages and keep commits focused",
			},
		})
	}
	if snapshot.Impact.Score < threshold {
		suggestions = append(suggestions, models.Suggestion{
			Area: "impact",
			Advice: []string{
				"Add a README and documentation so others can use your projects",
				"Share your projects to attract stars and forks",
				"Build something that solves a real problem for other students",
			},
		})
	}

	return suggestions
}

// dayStart truncates a time to midnight UTC of its calendar date.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
