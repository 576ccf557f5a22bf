package sqlite

import (
	"context"
	"fmt"

	"github.com/example/labelhub/internal/ports/secondary"
)

// RemarkRepository implements secondary.RemarkRepository with SQLite.
// The remark log is append-only; there is no update or delete.
type RemarkRepository struct {
	q dbtx
}

// Append persists a new remark.
func (r *RemarkRepository) Append(ctx context.Context, remark *secondary.RemarkRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO task_remarks (id, task_id, author_id, author_role, type, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		remark.ID,
		remark.TaskID,
		remark.AuthorID,
		remark.AuthorRole,
		remark.Type,
		remark.Message,
		remark.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append remark: %w", err)
	}
	return nil
}

// ListByTask retrieves a task's remarks, oldest first.
func (r *RemarkRepository) ListByTask(ctx context.Context, taskID string) ([]*secondary.RemarkRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, task_id, author_id, author_role, type, message, created_at
		 FROM task_remarks WHERE task_id = ? ORDER BY created_at ASC, id ASC`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list remarks: %w", err)
	}
	defer rows.Close()

	var remarks []*secondary.RemarkRecord
	for rows.Next() {
		remark := &secondary.RemarkRecord{}
		if err := rows.Scan(&remark.ID, &remark.TaskID, &remark.AuthorID, &remark.AuthorRole, &remark.Type, &remark.Message, &remark.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan remark: %w", err)
		}
		remarks = append(remarks, remark)
	}
	return remarks, rows.Err()
}
