package app

import (
	"context"
	"fmt"

	"github.com/example/labelhub/internal/ports/primary"
	"github.com/example/labelhub/internal/ports/secondary"
)

// NotificationServiceImpl implements the NotificationService interface.
type NotificationServiceImpl struct {
	repo secondary.NotificationRepository
}

// NewNotificationService creates a new NotificationService with injected dependencies.
func NewNotificationService(repo secondary.NotificationRepository) *NotificationServiceImpl {
	return &NotificationServiceImpl{repo: repo}
}

// List returns the recipient's notifications, newest first.
func (s *NotificationServiceImpl) List(ctx context.Context, recipientID string, unreadOnly bool) ([]*primary.Notification, error) {
	records, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	notifications := make([]*primary.Notification, len(records))
	for i, rec := range records {
		notifications[i] = &primary.Notification{
			ID:          rec.ID,
			RecipientID: rec.RecipientID,
			SenderID:    rec.SenderID,
			Type:        rec.Type,
			Title:       rec.Title,
			Message:     rec.Message,
			TaskID:      rec.TaskID,
			ProjectID:   rec.ProjectID,
			IsRead:      rec.IsRead,
			CreatedAt:   rec.CreatedAt,
		}
	}
	return notifications, nil
}

// MarkRead acknowledges a notification.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, notificationID string) error {
	return s.repo.MarkRead(ctx, notificationID)
}
