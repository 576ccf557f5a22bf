package primary

import (
	"context"
	"time"
)

// User is the caller-facing view of a user.
type User struct {
	ID   string
	Name string
	Role string
}

// Project is the caller-facing view of a project.
type Project struct {
	ID        string
	Name      string
	Category  string
	ManagerID string
	CreatedAt time.Time
}

// CreateProjectRequest creates a project owned by a manager.
type CreateProjectRequest struct {
	ActorID   string
	Name      string
	Category  string
	ManagerID string // defaults to the actor when empty
}

// DirectoryService covers the thin user and project records the workflow
// engine reads. Registration and auth live outside this system; these
// operations exist so the CLI can seed and inspect the directory.
type DirectoryService interface {
	CreateUser(ctx context.Context, id, name, role string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
}

// Notification is the caller-facing view of a notification.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    string
	Type        string
	Title       string
	Message     string
	TaskID      string
	ProjectID   string
	IsRead      bool
	CreatedAt   time.Time
}

// NotificationService lists and acknowledges a user's notifications.
type NotificationService interface {
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}
