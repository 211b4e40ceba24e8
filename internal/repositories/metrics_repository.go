package repositories

import (
	"database/sql"
	"encoding/json"

	"github.com/codepulse/codepulse/internal/models"
)

type MetricsRepository struct {
	db *sql.DB
}

func NewMetricsRepository(db *sql.DB) *MetricsRepository {
	return &MetricsRepository{
		db: db,
	}
}

// Upsert replaces the metrics record for the student. The snapshot is
// stored wholesale; there is no field-level merge.
func (r *MetricsRepository) Upsert(metrics *models.StudentMetrics) error {
	var snapshotJSON, leetcodeJSON sql.NullString

	if metrics.Snapshot != nil {
		data, err := json.Marshal(metrics.Snapshot)
		if err != nil {
			return err
		}
		snapshotJSON = sql.NullString{String: string(data), Valid: true}
	}
	if metrics.LeetCode != nil {
		data, err := json.Marshal(metrics.LeetCode)
		if err != nil {
			return err
		}
		leetcodeJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO student_metrics (id, student_id, github_metrics, leetcode_metrics, sync_status, last_updated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id) DO UPDATE SET
			github_metrics = excluded.github_metrics,
			leetcode_metrics = excluded.leetcode_metrics,
			sync_status = excluded.sync_status,
			last_updated = excluded.last_updated
	`

	_, err := r.db.Exec(query,
		metrics.ID,
		metrics.StudentID,
		snapshotJSON,
		leetcodeJSON,
		metrics.SyncStatus,
		metrics.LastUpdated,
		metrics.CreatedAt,
	)
	return err
}

// GetByStudentID retrieves the metrics record for a student
func (r *MetricsRepository) GetByStudentID(studentID string) (*models.StudentMetrics, error) {
	query := `
		SELECT id, student_id, github_metrics, leetcode_metrics, sync_status, last_updated, created_at
		FROM student_metrics WHERE student_id = ?
	`

	metrics := &models.StudentMetrics{}
	var snapshotJSON, leetcodeJSON sql.NullString
	err := r.db.QueryRow(query, studentID).Scan(
		&metrics.ID,
		&metrics.StudentID,
		&snapshotJSON,
		&leetcodeJSON,
		&metrics.SyncStatus,
		&metrics.LastUpdated,
		&metrics.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if snapshotJSON.Valid {
		snapshot := &models.MetricsSnapshot{}
		if err := json.Unmarshal([]byte(snapshotJSON.String), snapshot); err != nil {
			return nil, err
		}
		metrics.Snapshot = snapshot
	}
	if leetcodeJSON.Valid {
		leetcode := &models.LeetCodeMetrics{}
		if err := json.Unmarshal([]byte(leetcodeJSON.String), leetcode); err != nil {
			return nil, err
		}
		metrics.LeetCode = leetcode
		if metrics.Snapshot != nil {
			metrics.Snapshot.LeetCode = leetcode
		}
	}

	return metrics, nil
}

// GetByStudentIDs retrieves metrics records for multiple students, keyed by student ID
func (r *MetricsRepository) GetByStudentIDs(studentIDs []string) (map[string]*models.StudentMetrics, error) {
	result := make(map[string]*models.StudentMetrics)

	for _, studentID := range studentIDs {
		metrics, err := r.GetByStudentID(studentID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, err
		}
		result[studentID] = metrics
	}

	return result, nil
}

// Delete deletes the metrics record for a student
func (r *MetricsRepository) Delete(studentID string) error {
	_, err := r.db.Exec(`DELETE FROM student_metrics WHERE student_id = ?`, studentID)
	return err
}
