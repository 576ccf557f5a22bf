// Package wire provides dependency injection for the labelhub application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/labelhub/internal/adapters/sqlite"
	"github.com/example/labelhub/internal/app"
	"github.com/example/labelhub/internal/db"
	"github.com/example/labelhub/internal/notify"
	"github.com/example/labelhub/internal/ports/primary"
)

var (
	workflowService     primary.WorkflowService
	rosterService       primary.RosterService
	directoryService    primary.DirectoryService
	notificationService primary.NotificationService
	once                sync.Once
)

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// RosterService returns the singleton RosterService instance.
func RosterService() primary.RosterService {
	once.Do(initServices)
	return rosterService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	once.Do(initServices)
	return directoryService
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	once.Do(initServices)
	return notificationService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := sqlite.NewStore(database)
	sink := notify.NewStoreSink(store.Notifications())

	workflowService = app.NewWorkflowService(store, sink)
	rosterService = app.NewRosterService(store)
	directoryService = app.NewDirectoryService(store)
	notificationService = app.NewNotificationService(store.Notifications())
}
