package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

// TimeRepository implements secondary.TimeRepository with SQLite.
type TimeRepository struct {
	q dbtx
}

// OpenSession creates the (task, annotator) record if absent or resets its
// open session to null. Cumulative time is preserved.
func (r *TimeRepository) OpenSession(ctx context.Context, taskID, annotatorID, projectID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO time_records (task_id, annotator_id, project_id, session_seconds, folded_seconds, updated_at)
		 VALUES (?, ?, ?, NULL, 0, ?)
		 ON CONFLICT(task_id, annotator_id) DO UPDATE SET session_seconds = NULL, updated_at = excluded.updated_at`,
		taskID, annotatorID, projectID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to open time session: %w", err)
	}
	return nil
}

// CloseSession folds seconds into the cumulative total, clears the open
// session and returns the new total.
func (r *TimeRepository) CloseSession(ctx context.Context, taskID, annotatorID string, seconds int64) (int64, error) {
	result, err := r.q.ExecContext(ctx,
		`UPDATE time_records
		 SET folded_seconds = folded_seconds + ?, session_seconds = NULL, updated_at = ?
		 WHERE task_id = ? AND annotator_id = ?`,
		seconds, time.Now().UTC(), taskID, annotatorID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close time session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check session update: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("%w: no time record for task %s", workflow.ErrNotFound, taskID)
	}

	var total int64
	err = r.q.QueryRowContext(ctx,
		`SELECT folded_seconds FROM time_records WHERE task_id = ? AND annotator_id = ?`,
		taskID, annotatorID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to read folded total: %w", err)
	}
	return total, nil
}

// Session returns the open session value, nil when no session is open or no
// record exists.
func (r *TimeRepository) Session(ctx context.Context, taskID, annotatorID string) (*int64, error) {
	var session sql.NullInt64
	err := r.q.QueryRowContext(ctx,
		`SELECT session_seconds FROM time_records WHERE task_id = ? AND annotator_id = ?`,
		taskID, annotatorID,
	).Scan(&session)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read time session: %w", err)
	}
	if !session.Valid {
		return nil, nil
	}
	return &session.Int64, nil
}

// DiscardTask removes every time record for the task.
func (r *TimeRepository) DiscardTask(ctx context.Context, taskID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM time_records WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("failed to discard time records: %w", err)
	}
	return nil
}

// ListByAnnotator retrieves the annotator's time records, optionally scoped
// to one project, most recently updated first.
func (r *TimeRepository) ListByAnnotator(ctx context.Context, annotatorID, projectID string) ([]*secondary.TimeRecord, error) {
	query := `SELECT task_id, annotator_id, project_id, session_seconds, folded_seconds, updated_at
		 FROM time_records WHERE annotator_id = ?`
	args := []any{annotatorID}
	if projectID != "" {
		query += ` AND project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY updated_at DESC, task_id ASC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TimeRecord
	for rows.Next() {
		var (
			record  secondary.TimeRecord
			session sql.NullInt64
		)
		if err := rows.Scan(&record.TaskID, &record.AnnotatorID, &record.ProjectID, &session, &record.FoldedSeconds, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		if session.Valid {
			record.SessionSeconds = &session.Int64
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}
