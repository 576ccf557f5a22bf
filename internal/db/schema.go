package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database schema. Tests load it
// via GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so any
// column a repository references must exist here or tests fail immediately
// with "no such column". Keep it in sync with migrations when changing
// tables.
const SchemaSQL = `
-- Users (thin directory; registration and auth live elsewhere)
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin', 'manager', 'annotator')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Projects (one category each; tasks inherit it)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	manager_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (manager_id) REFERENCES users(id)
);

-- Tasks (the workflow engine's unit of work)
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	category TEXT NOT NULL,
	tag TEXT NOT NULL DEFAULT '',
	data TEXT,
	annotation TEXT,
	qa_annotation TEXT,
	qa_feedback TEXT NOT NULL DEFAULT '',
	annotator_done INTEGER NOT NULL DEFAULT 0,
	qa_done INTEGER NOT NULL DEFAULT 0,
	assigned_annotator_id TEXT NOT NULL DEFAULT '',
	assigned_qa_id TEXT NOT NULL DEFAULT '',
	is_returned INTEGER NOT NULL DEFAULT 0,
	return_reason TEXT NOT NULL DEFAULT '',
	returned_by TEXT NOT NULL DEFAULT '',
	accumulated_seconds INTEGER NOT NULL DEFAULT 0,
	qa_accumulated_seconds INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	annotator_started_at DATETIME,
	annotator_completed_at DATETIME,
	qa_started_at DATETIME,
	qa_completed_at DATETIME,
	version INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_tasks_annotator ON tasks(assigned_annotator_id);
CREATE INDEX IF NOT EXISTS idx_tasks_qa ON tasks(assigned_qa_id);

-- Task remarks (append-only log; no updates or deletes)
CREATE TABLE IF NOT EXISTS task_remarks (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	author_id TEXT NOT NULL,
	author_role TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('manager_note', 'annotator_reply', 'qa_note', 'qa_return')),
	message TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_task_remarks_task ON task_remarks(task_id);

-- Roster members (who may be assigned in a project)
CREATE TABLE IF NOT EXISTS roster_members (
	project_id TEXT NOT NULL,
	annotator_id TEXT NOT NULL,
	is_qa INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (project_id, annotator_id),
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (annotator_id) REFERENCES users(id)
);

-- Active task sets (set semantics enforced by the unique constraint)
CREATE TABLE IF NOT EXISTS roster_active_tasks (
	project_id TEXT NOT NULL,
	annotator_id TEXT NOT NULL,
	task_id TEXT NOT NULL,
	UNIQUE(project_id, annotator_id, task_id),
	FOREIGN KEY (project_id, annotator_id) REFERENCES roster_members(project_id, annotator_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_roster_active_tasks_task ON roster_active_tasks(task_id);

-- Time records (per task and annotator; session folds into the total)
CREATE TABLE IF NOT EXISTS time_records (
	task_id TEXT NOT NULL,
	annotator_id TEXT NOT NULL,
	project_id TEXT NOT NULL,
	session_seconds INTEGER,
	folded_seconds INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (task_id, annotator_id)
);

CREATE INDEX IF NOT EXISTS idx_time_records_annotator ON time_records(annotator_id, project_id);

-- Notifications (workflow events delivered to users)
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	recipient_id TEXT NOT NULL,
	sender_id TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	task_id TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL DEFAULT '',
	is_read INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications(recipient_id, is_read);
`

// InitSchema creates the database schema
func InitSchema() error {
	conn, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	return RunMigrations(conn)
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
