package services

import (
	"context"
	"strings"
	"time"

	"github.com/codepulse/codepulse/internal/models"
	"github.com/codepulse/codepulse/pkg/logger"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubSyncService fetches a student's repositories and recent commits
// from the GitHub API and normalizes them into internal records.
type GitHubSyncService struct {
	batchSize  int
	batchDelay time.Duration
}

func NewGitHubSyncService(batchSize int, batchDelay time.Duration) *GitHubSyncService {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &GitHubSyncService{
		batchSize:  batchSize,
		batchDelay: batchDelay,
	}
}

// createClient creates a GitHub client, authenticated when a token is available
func (s *GitHubSyncService) createClient(ctx context.Context, token string) *github.Client {
	if token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return github.NewClient(oauth2.NewClient(ctx, ts))
}

// FetchRepositories lists all repositories for the given username and
// loads commits authored since the cutoff. Commit listing runs in small
// batches with a fixed pause between batches to stay inside API rate
// limits. A repository whose commit fetch fails keeps an empty commit
// list rather than failing the whole sync.
func (s *GitHubSyncService) FetchRepositories(ctx context.Context, username, token string, since time.Time) ([]*models.Repository, error) {
	client := s.createClient(ctx, token)

	opt := &github.RepositoryListOptions{
		Type:        "owner",
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var rawRepos []*github.Repository
	for {
		repos, resp, err := client.Repositories.List(ctx, username, opt)
		if err != nil {
			return nil, err
		}
		rawRepos = append(rawRepos, repos...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	repositories := make([]*models.Repository, 0, len(rawRepos))
	for _, raw := range rawRepos {
		repo := normalizeRepository(raw)
		if repo == nil {
			logger.WithField("username", username).Warn("Skipping malformed repository entry")
			continue
		}
		repositories = append(repositories, repo)
	}

	s.fetchCommitsBatched(ctx, client, username, repositories, since)

	return repositories, nil
}

// fetchCommitsBatched loads commits for each repository in fixed-size
// batches with a fixed delay between batches.
func (s *GitHubSyncService) fetchCommitsBatched(ctx context.Context, client *github.Client, username string, repositories []*models.Repository, since time.Time) {
	for start := 0; start < len(repositories); start += s.batchSize {
		end := start + s.batchSize
		if end > len(repositories) {
			end = len(repositories)
		}

		for _, repo := range repositories[start:end] {
			commits, err := s.fetchCommits(ctx, client, username, repo, since)
			if err != nil {
				logger.WithError(err).WithField("repository", repo.FullName).Warn("Failed to fetch commits, keeping empty commit list")
				commits = []models.Commit{}
			}
			repo.Commits = commits
		}

		if end < len(repositories) && s.batchDelay > 0 {
			time.Sleep(s.batchDelay)
		}
	}
}

func (s *GitHubSyncService) fetchCommits(ctx context.Context, client *github.Client, username string, repo *models.Repository, since time.Time) ([]models.Commit, error) {
	owner, name := splitFullName(repo.FullName)

	opt := &github.CommitsListOptions{
		Author:      username,
		Since:       since,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	commits := []models.Commit{}
	for {
		rawCommits, resp, err := client.Repositories.ListCommits(ctx, owner, name, opt)
		if err != nil {
			return nil, err
		}
		for _, raw := range rawCommits {
			commit, ok := normalizeCommit(raw)
			if !ok {
				logger.WithField("repository", repo.FullName).Warn("Skipping malformed commit entry")
				continue
			}
			commits = append(commits, commit)
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return commits, nil
}

// normalizeRepository maps an API repository payload to the internal
// record. Missing numeric fields default to zero; a missing identifier
// or name makes the entry malformed.
func normalizeRepository(raw *github.Repository) *models.Repository {
	if raw == nil || raw.GetID() == 0 || raw.GetName() == "" {
		return nil
	}

	repo := &models.Repository{
		ID:       raw.GetID(),
		Name:     raw.GetName(),
		FullName: raw.GetFullName(),
		Language: raw.Language,
		Stars:    raw.GetStargazersCount(),
		Forks:    raw.GetForksCount(),
		Commits:  []models.Commit{},
	}
	if createdAt := raw.GetCreatedAt(); !createdAt.IsZero() {
		t := createdAt.Time
		repo.CreatedAt = &t
	}
	if pushedAt := raw.GetPushedAt(); !pushedAt.IsZero() {
		t := pushedAt.Time
		repo.PushedAt = &t
	}
	return repo
}

// normalizeCommit maps an API commit payload to the internal record.
// A commit without an authored timestamp is malformed.
func normalizeCommit(raw *github.RepositoryCommit) (models.Commit, bool) {
	if raw == nil || raw.GetCommit() == nil {
		return models.Commit{}, false
	}

	authoredAt := raw.GetCommit().GetAuthor().GetDate()
	if authoredAt.IsZero() {
		return models.Commit{}, false
	}

	return models.Commit{
		Message:    raw.GetCommit().GetMessage(),
		AuthoredAt: authoredAt.Time,
		URL:        raw.GetHTMLURL(),
	}, true
}

func splitFullName(fullName string) (string, string) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 {
		return fullName, ""
	}
	return parts[0], parts[1]
}
