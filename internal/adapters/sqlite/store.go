// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/labelhub/internal/ports/secondary"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories run against it so the same code serves both direct calls
// and transactional units of work.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements secondary.Store with SQLite.
type Store struct {
	db *sql.DB
	repoSet
}

// repoSet bundles repositories over one dbtx.
type repoSet struct {
	tasks         *TaskRepository
	remarks       *RemarkRepository
	rosters       *RosterRepository
	times         *TimeRepository
	users         *UserRepository
	projects      *ProjectRepository
	notifications *NotificationRepository
}

func newRepoSet(q dbtx) repoSet {
	return repoSet{
		tasks:         &TaskRepository{q: q},
		remarks:       &RemarkRepository{q: q},
		rosters:       &RosterRepository{q: q},
		times:         &TimeRepository{q: q},
		users:         &UserRepository{q: q},
		projects:      &ProjectRepository{q: q},
		notifications: &NotificationRepository{q: q},
	}
}

func (s repoSet) Tasks() secondary.TaskRepository       { return s.tasks }
func (s repoSet) Remarks() secondary.RemarkRepository   { return s.remarks }
func (s repoSet) Rosters() secondary.RosterRepository   { return s.rosters }
func (s repoSet) Times() secondary.TimeRepository       { return s.times }
func (s repoSet) Users() secondary.UserRepository       { return s.users }
func (s repoSet) Projects() secondary.ProjectRepository { return s.projects }

// Notifications returns the notification repository. It sits outside the
// Repositories bundle because notifications are written after commit, not
// inside workflow transactions.
func (s repoSet) Notifications() secondary.NotificationRepository { return s.notifications }

// NewStore creates a new SQLite store over an open connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn, repoSet: newRepoSet(conn)}
}

// WithTx runs fn inside a single transaction. Every repository write made
// through the passed bundle commits together or rolls back on error.
func (s *Store) WithTx(ctx context.Context, fn func(secondary.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newRepoSet(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
