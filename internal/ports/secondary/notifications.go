package secondary

import "context"

// NotificationSink delivers workflow events to users. Delivery is
// best-effort: the engine never rolls back a workflow transition because a
// notification failed, and it consumes no return value beyond the error it
// logs and drops.
type NotificationSink interface {
	Send(ctx context.Context, n *NotificationRecord) error
}
