package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentMetricsPersistedShape(t *testing.T) {
	snapshot := &MetricsSnapshot{
		TotalCommits:      7,
		TotalRepositories: 3,
		LeetCode:          &LeetCodeMetrics{ProblemsSolved: 9, Ranking: 100},
	}
	metrics := NewStudentMetrics("student-1", snapshot)

	// The leetcode sub-record lives on the persisted record, next to
	// the github document, not inside it.
	assert.Equal(t, snapshot.LeetCode, metrics.LeetCode)

	data, err := json.Marshal(snapshot)
	assert.NoError(t, err)

	var github map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &github))

	for _, key := range []string{
		"repositories", "commits", "activity", "codeQuality", "impact",
		"languages", "careerInsights", "suggestions",
	} {
		assert.Contains(t, github, key)
	}
	assert.NotContains(t, github, "totalCommits")
	assert.NotContains(t, github, "totalRepositories")
	assert.NotContains(t, github, "leetcode")

	assert.Equal(t, float64(7), github["commits"])
	assert.Equal(t, float64(3), github["repositories"])
}

func TestNewStudentMetricsWithoutSnapshot(t *testing.T) {
	metrics := NewStudentMetrics("student-1", nil)

	assert.Nil(t, metrics.Snapshot)
	assert.Nil(t, metrics.LeetCode)
	assert.Equal(t, SyncStatusOK, metrics.SyncStatus)
	assert.NotEmpty(t, metrics.ID)
}
