package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	q dbtx
}

const taskColumns = `id, project_id, category, tag, data, annotation, qa_annotation, qa_feedback,
	annotator_done, qa_done, assigned_annotator_id, assigned_qa_id,
	is_returned, return_reason, returned_by,
	accumulated_seconds, qa_accumulated_seconds,
	created_at, annotator_started_at, annotator_completed_at, qa_started_at, qa_completed_at, version`

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.ProjectID,
		task.Category,
		task.Tag,
		rawToNull(task.Data),
		rawToNull(task.Annotation),
		rawToNull(task.QaAnnotation),
		task.QaFeedback,
		task.AnnotatorDone,
		task.QaDone,
		task.AssignedAnnotatorID,
		task.AssignedQaID,
		task.IsReturned,
		task.ReturnReason,
		task.ReturnedBy,
		task.AccumulatedSeconds,
		nullInt(task.QaAccumulatedSeconds),
		task.CreatedAt,
		nullTime(task.AnnotatorStartedAt),
		nullTime(task.AnnotatorCompletedAt),
		nullTime(task.QaStartedAt),
		nullTime(task.QaCompletedAt),
		task.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// List retrieves tasks matching the filters, oldest first.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	var args []any

	if filters.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, filters.ProjectID)
	}
	if filters.AssigneeID != "" {
		query += ` AND (assigned_annotator_id = ? OR assigned_qa_id = ?)`
		args = append(args, filters.AssigneeID, filters.AssigneeID)
	}
	if filters.AnnotatorID != "" {
		query += ` AND assigned_annotator_id = ?`
		args = append(args, filters.AnnotatorID)
	}
	if filters.CompletedOnly {
		query += ` AND annotator_done = 1 AND qa_done = 1`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Update writes the record if its version still matches the stored row and
// bumps the version. A mismatch means a concurrent writer got there first.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE tasks SET
			tag = ?, data = ?, annotation = ?, qa_annotation = ?, qa_feedback = ?,
			annotator_done = ?, qa_done = ?, assigned_annotator_id = ?, assigned_qa_id = ?,
			is_returned = ?, return_reason = ?, returned_by = ?,
			accumulated_seconds = ?, qa_accumulated_seconds = ?,
			annotator_started_at = ?, annotator_completed_at = ?, qa_started_at = ?, qa_completed_at = ?,
			version = version + 1
		 WHERE id = ? AND version = ?`,
		task.Tag,
		rawToNull(task.Data),
		rawToNull(task.Annotation),
		rawToNull(task.QaAnnotation),
		task.QaFeedback,
		task.AnnotatorDone,
		task.QaDone,
		task.AssignedAnnotatorID,
		task.AssignedQaID,
		task.IsReturned,
		task.ReturnReason,
		task.ReturnedBy,
		task.AccumulatedSeconds,
		nullInt(task.QaAccumulatedSeconds),
		nullTime(task.AnnotatorStartedAt),
		nullTime(task.AnnotatorCompletedAt),
		nullTime(task.QaStartedAt),
		nullTime(task.QaCompletedAt),
		task.ID,
		task.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		// Either the row is gone or the version moved underneath us.
		var exists int
		if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, task.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check task existence: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("%w: task %s", workflow.ErrNotFound, task.ID)
		}
		return fmt.Errorf("%w: task %s was modified concurrently", workflow.ErrConflict, task.ID)
	}
	task.Version++
	return nil
}

// Delete removes a task. Remarks cascade.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*secondary.TaskRecord, error) {
	var (
		task                     secondary.TaskRecord
		data, annotation, qaAnno sql.NullString
		qaSeconds                sql.NullInt64
		annotatorStarted         sql.NullTime
		annotatorCompleted       sql.NullTime
		qaStarted                sql.NullTime
		qaCompleted              sql.NullTime
	)
	err := s.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Category,
		&task.Tag,
		&data,
		&annotation,
		&qaAnno,
		&task.QaFeedback,
		&task.AnnotatorDone,
		&task.QaDone,
		&task.AssignedAnnotatorID,
		&task.AssignedQaID,
		&task.IsReturned,
		&task.ReturnReason,
		&task.ReturnedBy,
		&task.AccumulatedSeconds,
		&qaSeconds,
		&task.CreatedAt,
		&annotatorStarted,
		&annotatorCompleted,
		&qaStarted,
		&qaCompleted,
		&task.Version,
	)
	if err != nil {
		return nil, err
	}
	if data.Valid {
		task.Data = []byte(data.String)
	}
	if annotation.Valid {
		task.Annotation = []byte(annotation.String)
	}
	if qaAnno.Valid {
		task.QaAnnotation = []byte(qaAnno.String)
	}
	if qaSeconds.Valid {
		task.QaAccumulatedSeconds = &qaSeconds.Int64
	}
	task.AnnotatorStartedAt = timePtr(annotatorStarted)
	task.AnnotatorCompletedAt = timePtr(annotatorCompleted)
	task.QaStartedAt = timePtr(qaStarted)
	task.QaCompletedAt = timePtr(qaCompleted)
	return &task, nil
}

func rawToNull(raw []byte) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
