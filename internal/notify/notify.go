// Package notify delivers workflow events to users. Delivery is
// best-effort: the workflow engine never fails a transition because a
// notification could not be stored.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/labelhub/internal/ports/secondary"
)

// StoreSink persists notifications for later retrieval.
type StoreSink struct {
	repo secondary.NotificationRepository
}

// NewStoreSink creates a sink that writes notifications to the repository.
func NewStoreSink(repo secondary.NotificationRepository) *StoreSink {
	return &StoreSink{repo: repo}
}

// Send stores the notification, filling in identity and timestamp.
func (s *StoreSink) Send(ctx context.Context, n *secondary.NotificationRecord) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, n)
}

// NopSink discards notifications. Used by tests and headless tooling.
type NopSink struct{}

// Send implements the sink interface and does nothing.
func (NopSink) Send(context.Context, *secondary.NotificationRecord) error { return nil }
