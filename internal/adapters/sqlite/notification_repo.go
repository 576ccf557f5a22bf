package sqlite

import (
	"context"
	"fmt"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

// NotificationRepository implements secondary.NotificationRepository with SQLite.
type NotificationRepository struct {
	q dbtx
}

// Create persists a new notification.
func (r *NotificationRepository) Create(ctx context.Context, n *secondary.NotificationRecord) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, task_id, project_id, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.RecipientID, n.SenderID, n.Type, n.Title, n.Message, n.TaskID, n.ProjectID, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListByRecipient retrieves the recipient's notifications, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]*secondary.NotificationRecord, error) {
	query := `SELECT id, recipient_id, sender_id, type, title, message, task_id, project_id, is_read, created_at
		 FROM notifications WHERE recipient_id = ?`
	args := []any{recipientID}
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*secondary.NotificationRecord
	for rows.Next() {
		n := &secondary.NotificationRecord{}
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Title, &n.Message, &n.TaskID, &n.ProjectID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead acknowledges a notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check notification update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: notification %s", workflow.ErrNotFound, id)
	}
	return nil
}
