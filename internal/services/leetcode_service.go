package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/codepulse/codepulse/internal/models"
)

// LeetCodeService fetches a student's problem-solving profile from the
// LeetCode stats API.
type LeetCodeService struct {
	baseURL string
	client  *http.Client
}

func NewLeetCodeService(baseURL string) *LeetCodeService {
	return &LeetCodeService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type leetCodeStatsResponse struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	TotalSolved    int     `json:"totalSolved"`
	EasySolved     int     `json:"easySolved"`
	MediumSolved   int     `json:"mediumSolved"`
	HardSolved     int     `json:"hardSolved"`
	AcceptanceRate float64 `json:"acceptanceRate"`
	Ranking        int     `json:"ranking"`
}

// FetchProfile retrieves the problem profile for a username. The whole
// profile is one atomic snapshot; missing numeric fields decode to zero.
func (s *LeetCodeService) FetchProfile(ctx context.Context, username string) (*models.ProblemProfile, error) {
	endpoint := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LeetCode API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var stats leetCodeStatsResponse
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile data: %w", err)
	}

	if stats.Status == "error" {
		return nil, fmt.Errorf("LeetCode API error: %s", stats.Message)
	}

	return &models.ProblemProfile{
		TotalSolved:    stats.TotalSolved,
		EasySolved:     stats.EasySolved,
		MediumSolved:   stats.MediumSolved,
		HardSolved:     stats.HardSolved,
		SubmissionRate: stats.AcceptanceRate,
		Ranking:        stats.Ranking,
	}, nil
}
