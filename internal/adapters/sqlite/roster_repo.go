package sqlite

import (
	"context"
	"fmt"

	"github.com/example/labelhub/internal/ports/secondary"
)

// RosterRepository implements secondary.RosterRepository with SQLite.
type RosterRepository struct {
	q dbtx
}

// AddMember adds an annotator to the project roster. Adding an existing
// member is a no-op.
func (r *RosterRepository) AddMember(ctx context.Context, projectID, annotatorID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO roster_members (project_id, annotator_id) VALUES (?, ?)`,
		projectID, annotatorID,
	)
	if err != nil {
		return fmt.Errorf("failed to add roster member: %w", err)
	}
	return nil
}

// IsMember reports whether the annotator is on the project roster.
func (r *RosterRepository) IsMember(ctx context.Context, projectID, annotatorID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roster_members WHERE project_id = ? AND annotator_id = ?`,
		projectID, annotatorID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check roster membership: %w", err)
	}
	return count > 0, nil
}

// Members retrieves the project roster with each member's active task set.
func (r *RosterRepository) Members(ctx context.Context, projectID string) ([]*secondary.RosterMemberRecord, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT annotator_id, is_qa FROM roster_members WHERE project_id = ? ORDER BY created_at ASC, annotator_id ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.RosterMemberRecord
	for rows.Next() {
		member := &secondary.RosterMemberRecord{ProjectID: projectID}
		if err := rows.Scan(&member.AnnotatorID, &member.IsQaReviewer); err != nil {
			return nil, fmt.Errorf("failed to scan roster member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, member := range members {
		tasks, err := r.ActiveTasks(ctx, projectID, member.AnnotatorID)
		if err != nil {
			return nil, err
		}
		member.ActiveTaskIDs = tasks
	}
	return members, nil
}

// SetQaReviewers replaces the project's QA subset.
func (r *RosterRepository) SetQaReviewers(ctx context.Context, projectID string, annotatorIDs []string) error {
	if _, err := r.q.ExecContext(ctx,
		`UPDATE roster_members SET is_qa = 0 WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("failed to clear qa reviewers: %w", err)
	}
	for _, id := range annotatorIDs {
		result, err := r.q.ExecContext(ctx,
			`UPDATE roster_members SET is_qa = 1 WHERE project_id = ? AND annotator_id = ?`,
			projectID, id,
		)
		if err != nil {
			return fmt.Errorf("failed to set qa reviewer: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check qa reviewer update: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("annotator %s is not a roster member of project %s", id, projectID)
		}
	}
	return nil
}

// IsQaReviewer reports whether the annotator is in the project's QA subset.
func (r *RosterRepository) IsQaReviewer(ctx context.Context, projectID, annotatorID string) (bool, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roster_members WHERE project_id = ? AND annotator_id = ? AND is_qa = 1`,
		projectID, annotatorID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check qa reviewer: %w", err)
	}
	return count > 0, nil
}

// AddActiveTask adds a task to the member's active set. Duplicate adds are
// not errors.
func (r *RosterRepository) AddActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO roster_active_tasks (project_id, annotator_id, task_id) VALUES (?, ?, ?)`,
		projectID, annotatorID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to add active task: %w", err)
	}
	return nil
}

// RemoveActiveTask removes a task from the member's active set. Missing
// entries are not errors.
func (r *RosterRepository) RemoveActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM roster_active_tasks WHERE project_id = ? AND annotator_id = ? AND task_id = ?`,
		projectID, annotatorID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove active task: %w", err)
	}
	return nil
}

// RemoveTaskEverywhere drops the task from every member's active set.
func (r *RosterRepository) RemoveTaskEverywhere(ctx context.Context, projectID, taskID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM roster_active_tasks WHERE project_id = ? AND task_id = ?`,
		projectID, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove task from active sets: %w", err)
	}
	return nil
}

// ActiveTasks retrieves the member's active task IDs.
func (r *RosterRepository) ActiveTasks(ctx context.Context, projectID, annotatorID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT task_id FROM roster_active_tasks WHERE project_id = ? AND annotator_id = ? ORDER BY task_id ASC`,
		projectID, annotatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tasks: %w", err)
	}
	defer rows.Close()

	var tasks []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan active task: %w", err)
		}
		tasks = append(tasks, id)
	}
	return tasks, rows.Err()
}
