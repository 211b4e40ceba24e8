package models

// ProblemProfile is a normalized competitive-programming profile
// snapshot. Produced wholesale from one upstream call.
type ProblemProfile struct {
	TotalSolved    int     `json:"totalSolved"`
	EasySolved     int     `json:"easySolved"`
	MediumSolved   int     `json:"mediumSolved"`
	HardSolved     int     `json:"hardSolved"`
	SubmissionRate float64 `json:"acceptanceRate"`
	Ranking        int     `json:"ranking"`
}
