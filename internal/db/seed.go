package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures covering
// every workflow state, so CLI commands have something to show immediately
// after a dev reset.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC().Format(time.RFC3339)

	users := []struct{ id, name, role string }{
		{"USR-ADMIN", "Ada Admin", "admin"},
		{"USR-MGR-1", "Mona Manager", "manager"},
		{"USR-MGR-2", "Max Manager", "manager"},
		{"USR-ANN-1", "Anna Annotator", "annotator"},
		{"USR-ANN-2", "Arne Annotator", "annotator"},
		{"USR-QA-1", "Quinn Reviewer", "annotator"},
	}
	for _, u := range users {
		if _, err := database.Exec(
			"INSERT INTO users (id, name, role, created_at) VALUES (?, ?, ?, ?)",
			u.id, u.name, u.role, now,
		); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}

	projects := []struct{ id, name, category, managerID string }{
		{"PROJ-001", "Street Signs", "image_classification", "USR-MGR-1"},
		{"PROJ-002", "Support Tickets", "text_classification", "USR-MGR-2"},
	}
	for _, p := range projects {
		if _, err := database.Exec(
			"INSERT INTO projects (id, name, category, manager_id, created_at) VALUES (?, ?, ?, ?, ?)",
			p.id, p.name, p.category, p.managerID, now,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	members := []struct {
		projectID, annotatorID string
		isQa                   int
	}{
		{"PROJ-001", "USR-ANN-1", 0},
		{"PROJ-001", "USR-ANN-2", 0},
		{"PROJ-001", "USR-QA-1", 1},
		{"PROJ-002", "USR-ANN-2", 0},
	}
	for _, m := range members {
		if _, err := database.Exec(
			"INSERT INTO roster_members (project_id, annotator_id, is_qa, created_at) VALUES (?, ?, ?, ?)",
			m.projectID, m.annotatorID, m.isQa, now,
		); err != nil {
			return fmt.Errorf("seed roster: %w", err)
		}
	}

	signData := `{"image_url": "https://example.com/signs/%03d.png", "labels": ["stop", "yield", "speed-limit"]}`

	// TASK-001: freshly created, unassigned.
	if _, err := database.Exec(
		`INSERT INTO tasks (id, project_id, category, tag, data, created_at)
		 VALUES (?, 'PROJ-001', 'image_classification', 'batch-1', ?, ?)`,
		"TASK-001", fmt.Sprintf(signData, 1), now,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}

	// TASK-002: in annotation with an open time session.
	if _, err := database.Exec(
		`INSERT INTO tasks (id, project_id, category, tag, data,
		 assigned_annotator_id, annotator_started_at, created_at)
		 VALUES (?, 'PROJ-001', 'image_classification', 'batch-1', ?, 'USR-ANN-1', ?, ?)`,
		"TASK-002", fmt.Sprintf(signData, 2), now, now,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO time_records (task_id, annotator_id, project_id, session_seconds, folded_seconds)
		 VALUES ('TASK-002', 'USR-ANN-1', 'PROJ-001', NULL, 0)`,
	); err != nil {
		return fmt.Errorf("seed time records: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO roster_active_tasks (project_id, annotator_id, task_id)
		 VALUES ('PROJ-001', 'USR-ANN-1', 'TASK-002')`,
	); err != nil {
		return fmt.Errorf("seed active tasks: %w", err)
	}

	// TASK-003: annotation submitted, awaiting QA assignment.
	if _, err := database.Exec(
		`INSERT INTO tasks (id, project_id, category, tag, data, annotation,
		 assigned_annotator_id, annotator_done, accumulated_seconds,
		 annotator_started_at, annotator_completed_at, created_at)
		 VALUES (?, 'PROJ-001', 'image_classification', 'batch-1', ?,
		 '{"selected_label": "stop", "confidence": 5}', 'USR-ANN-1', 1, 340, ?, ?, ?)`,
		"TASK-003", fmt.Sprintf(signData, 3), now, now, now,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO time_records (task_id, annotator_id, project_id, session_seconds, folded_seconds)
		 VALUES ('TASK-003', 'USR-ANN-1', 'PROJ-001', NULL, 340)`,
	); err != nil {
		return fmt.Errorf("seed time records: %w", err)
	}

	// TASK-004: under QA review.
	if _, err := database.Exec(
		`INSERT INTO tasks (id, project_id, category, tag, data, annotation,
		 assigned_annotator_id, assigned_qa_id, annotator_done, accumulated_seconds,
		 annotator_started_at, annotator_completed_at, qa_started_at, created_at)
		 VALUES (?, 'PROJ-001', 'image_classification', 'batch-2', ?,
		 '{"selected_label": "yield", "confidence": 4}', 'USR-ANN-2', 'USR-QA-1', 1, 210, ?, ?, ?, ?)`,
		"TASK-004", fmt.Sprintf(signData, 4), now, now, now, now,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO roster_active_tasks (project_id, annotator_id, task_id)
		 VALUES ('PROJ-001', 'USR-QA-1', 'TASK-004')`,
	); err != nil {
		return fmt.Errorf("seed active tasks: %w", err)
	}

	// TASK-005: fully completed and approved.
	if _, err := database.Exec(
		`INSERT INTO tasks (id, project_id, category, tag, data, annotation, qa_annotation,
		 assigned_annotator_id, assigned_qa_id, annotator_done, qa_done,
		 accumulated_seconds, qa_accumulated_seconds,
		 annotator_started_at, annotator_completed_at, qa_started_at, qa_completed_at, created_at)
		 VALUES (?, 'PROJ-001', 'image_classification', 'batch-2', ?,
		 '{"selected_label": "speed-limit", "confidence": 5}',
		 '{"selected_label": "speed-limit", "confidence": 5}',
		 'USR-ANN-2', 'USR-QA-1', 1, 1, 505, 120, ?, ?, ?, ?, ?)`,
		"TASK-005", fmt.Sprintf(signData, 5), now, now, now, now, now,
	); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	if _, err := database.Exec(
		`INSERT INTO time_records (task_id, annotator_id, project_id, session_seconds, folded_seconds)
		 VALUES ('TASK-005', 'USR-ANN-2', 'PROJ-001', NULL, 505)`,
	); err != nil {
		return fmt.Errorf("seed time records: %w", err)
	}

	remarks := []struct{ id, taskID, authorID, authorRole, typ, message string }{
		{"RMK-001", "TASK-002", "USR-MGR-1", "manager", "manager_note", "Watch out for partially occluded signs in this batch"},
		{"RMK-002", "TASK-004", "USR-QA-1", "annotator", "qa_note", "Double-checking the yield classification against the guideline"},
	}
	for _, r := range remarks {
		if _, err := database.Exec(
			`INSERT INTO task_remarks (id, task_id, author_id, author_role, type, message, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.id, r.taskID, r.authorID, r.authorRole, r.typ, r.message, now,
		); err != nil {
			return fmt.Errorf("seed remarks: %w", err)
		}
	}

	notifications := []struct{ id, recipientID, senderID, typ, title, message, taskID string }{
		{"NOTIF-001", "USR-ANN-1", "USR-MGR-1", "task_assigned", "New Task Assigned", "You have been assigned a new task in project Street Signs", "TASK-002"},
		{"NOTIF-002", "USR-QA-1", "USR-MGR-1", "qa_assigned", "QA Review Assigned", "A task is ready for your review in project Street Signs", "TASK-004"},
		{"NOTIF-003", "USR-ANN-2", "USR-QA-1", "qa_approved", "Task Approved", "Your annotation passed QA review", "TASK-005"},
	}
	for _, n := range notifications {
		if _, err := database.Exec(
			`INSERT INTO notifications (id, recipient_id, sender_id, type, title, message, task_id, project_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 'PROJ-001', ?)`,
			n.id, n.recipientID, n.senderID, n.typ, n.title, n.message, n.taskID, now,
		); err != nil {
			return fmt.Errorf("seed notifications: %w", err)
		}
	}

	return nil
}
