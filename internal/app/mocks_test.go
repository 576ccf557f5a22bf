package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/labelhub/internal/core/workflow"
	"github.com/example/labelhub/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockStore implements secondary.Store with in-memory maps. WithTx runs the
// function directly; transactional behavior itself is covered by the sqlite
// adapter tests.
type mockStore struct {
	tasks     *mockTaskRepository
	remarks   *mockRemarkRepository
	rosters   *mockRosterRepository
	times     *mockTimeRepository
	users     *mockUserRepository
	projects  *mockProjectRepository
	withTxErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		tasks:    newMockTaskRepository(),
		remarks:  &mockRemarkRepository{},
		rosters:  newMockRosterRepository(),
		times:    newMockTimeRepository(),
		users:    &mockUserRepository{users: make(map[string]*secondary.UserRecord)},
		projects: &mockProjectRepository{projects: make(map[string]*secondary.ProjectRecord)},
	}
}

func (m *mockStore) Tasks() secondary.TaskRepository       { return m.tasks }
func (m *mockStore) Remarks() secondary.RemarkRepository   { return m.remarks }
func (m *mockStore) Rosters() secondary.RosterRepository   { return m.rosters }
func (m *mockStore) Times() secondary.TimeRepository       { return m.times }
func (m *mockStore) Users() secondary.UserRepository       { return m.users }
func (m *mockStore) Projects() secondary.ProjectRepository { return m.projects }

func (m *mockStore) WithTx(ctx context.Context, fn func(secondary.Repositories) error) error {
	if m.withTxErr != nil {
		return m.withTxErr
	}
	return fn(m)
}

// seedUser registers a user and returns its ID.
func (m *mockStore) seedUser(id, name, role string) string {
	m.users.users[id] = &secondary.UserRecord{ID: id, Name: name, Role: role}
	return id
}

// seedProject registers a project and returns its ID.
func (m *mockStore) seedProject(id, category, managerID string) string {
	m.projects.projects[id] = &secondary.ProjectRecord{
		ID:        id,
		Name:      "Project " + id,
		Category:  category,
		ManagerID: managerID,
	}
	return id
}

type mockTaskRepository struct {
	tasks     map[string]*secondary.TaskRecord
	updateErr error
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[string]*secondary.TaskRecord)}
}

func (m *mockTaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	var result []*secondary.TaskRecord
	for _, task := range m.tasks {
		if filters.ProjectID != "" && task.ProjectID != filters.ProjectID {
			continue
		}
		if filters.AssigneeID != "" && task.AssignedAnnotatorID != filters.AssigneeID && task.AssignedQaID != filters.AssigneeID {
			continue
		}
		if filters.AnnotatorID != "" && task.AssignedAnnotatorID != filters.AnnotatorID {
			continue
		}
		if filters.CompletedOnly && !(task.AnnotatorDone && task.QaDone) {
			continue
		}
		copied := *task
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.tasks[task.ID]
	if !ok {
		return fmt.Errorf("%w: task %s", workflow.ErrNotFound, task.ID)
	}
	if stored.Version != task.Version {
		return fmt.Errorf("%w: task %s was modified concurrently", workflow.ErrConflict, task.ID)
	}
	task.Version++
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("%w: task %s", workflow.ErrNotFound, id)
	}
	delete(m.tasks, id)
	return nil
}

type mockRemarkRepository struct {
	remarks   []*secondary.RemarkRecord
	appendErr error
}

func (m *mockRemarkRepository) Append(ctx context.Context, remark *secondary.RemarkRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	copied := *remark
	m.remarks = append(m.remarks, &copied)
	return nil
}

func (m *mockRemarkRepository) ListByTask(ctx context.Context, taskID string) ([]*secondary.RemarkRecord, error) {
	var result []*secondary.RemarkRecord
	for _, remark := range m.remarks {
		if remark.TaskID == taskID {
			result = append(result, remark)
		}
	}
	return result, nil
}

type rosterKey struct {
	projectID   string
	annotatorID string
}

type mockRosterRepository struct {
	members map[rosterKey]bool // value is the QA flag
	active  map[rosterKey]map[string]bool
}

func newMockRosterRepository() *mockRosterRepository {
	return &mockRosterRepository{
		members: make(map[rosterKey]bool),
		active:  make(map[rosterKey]map[string]bool),
	}
}

func (m *mockRosterRepository) AddMember(ctx context.Context, projectID, annotatorID string) error {
	key := rosterKey{projectID, annotatorID}
	if _, ok := m.members[key]; !ok {
		m.members[key] = false
	}
	return nil
}

func (m *mockRosterRepository) IsMember(ctx context.Context, projectID, annotatorID string) (bool, error) {
	_, ok := m.members[rosterKey{projectID, annotatorID}]
	return ok, nil
}

func (m *mockRosterRepository) Members(ctx context.Context, projectID string) ([]*secondary.RosterMemberRecord, error) {
	var result []*secondary.RosterMemberRecord
	for key, isQa := range m.members {
		if key.projectID != projectID {
			continue
		}
		tasks, _ := m.ActiveTasks(ctx, key.projectID, key.annotatorID)
		result = append(result, &secondary.RosterMemberRecord{
			ProjectID:     key.projectID,
			AnnotatorID:   key.annotatorID,
			IsQaReviewer:  isQa,
			ActiveTaskIDs: tasks,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AnnotatorID < result[j].AnnotatorID })
	return result, nil
}

func (m *mockRosterRepository) SetQaReviewers(ctx context.Context, projectID string, annotatorIDs []string) error {
	for key := range m.members {
		if key.projectID == projectID {
			m.members[key] = false
		}
	}
	for _, id := range annotatorIDs {
		key := rosterKey{projectID, id}
		if _, ok := m.members[key]; !ok {
			return fmt.Errorf("annotator %s is not a roster member of project %s", id, projectID)
		}
		m.members[key] = true
	}
	return nil
}

func (m *mockRosterRepository) IsQaReviewer(ctx context.Context, projectID, annotatorID string) (bool, error) {
	return m.members[rosterKey{projectID, annotatorID}], nil
}

func (m *mockRosterRepository) AddActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error {
	key := rosterKey{projectID, annotatorID}
	if m.active[key] == nil {
		m.active[key] = make(map[string]bool)
	}
	m.active[key][taskID] = true
	return nil
}

func (m *mockRosterRepository) RemoveActiveTask(ctx context.Context, projectID, annotatorID, taskID string) error {
	delete(m.active[rosterKey{projectID, annotatorID}], taskID)
	return nil
}

func (m *mockRosterRepository) RemoveTaskEverywhere(ctx context.Context, projectID, taskID string) error {
	for key, set := range m.active {
		if key.projectID == projectID {
			delete(set, taskID)
		}
	}
	return nil
}

func (m *mockRosterRepository) ActiveTasks(ctx context.Context, projectID, annotatorID string) ([]string, error) {
	var tasks []string
	for id := range m.active[rosterKey{projectID, annotatorID}] {
		tasks = append(tasks, id)
	}
	sort.Strings(tasks)
	return tasks, nil
}

type timeKey struct {
	taskID      string
	annotatorID string
}

type mockTimeRepository struct {
	records map[timeKey]*secondary.TimeRecord
}

func newMockTimeRepository() *mockTimeRepository {
	return &mockTimeRepository{records: make(map[timeKey]*secondary.TimeRecord)}
}

func (m *mockTimeRepository) OpenSession(ctx context.Context, taskID, annotatorID, projectID string) error {
	key := timeKey{taskID, annotatorID}
	if record, ok := m.records[key]; ok {
		record.SessionSeconds = nil
		return nil
	}
	m.records[key] = &secondary.TimeRecord{
		TaskID:      taskID,
		AnnotatorID: annotatorID,
		ProjectID:   projectID,
	}
	return nil
}

func (m *mockTimeRepository) CloseSession(ctx context.Context, taskID, annotatorID string, seconds int64) (int64, error) {
	record, ok := m.records[timeKey{taskID, annotatorID}]
	if !ok {
		return 0, fmt.Errorf("%w: no time record for task %s", workflow.ErrNotFound, taskID)
	}
	record.FoldedSeconds += seconds
	record.SessionSeconds = nil
	return record.FoldedSeconds, nil
}

func (m *mockTimeRepository) Session(ctx context.Context, taskID, annotatorID string) (*int64, error) {
	record, ok := m.records[timeKey{taskID, annotatorID}]
	if !ok {
		return nil, nil
	}
	return record.SessionSeconds, nil
}

func (m *mockTimeRepository) DiscardTask(ctx context.Context, taskID string) error {
	for key := range m.records {
		if key.taskID == taskID {
			delete(m.records, key)
		}
	}
	return nil
}

func (m *mockTimeRepository) ListByAnnotator(ctx context.Context, annotatorID, projectID string) ([]*secondary.TimeRecord, error) {
	var result []*secondary.TimeRecord
	for _, record := range m.records {
		if record.AnnotatorID != annotatorID {
			continue
		}
		if projectID != "" && record.ProjectID != projectID {
			continue
		}
		result = append(result, record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TaskID < result[j].TaskID })
	return result, nil
}

type mockUserRepository struct {
	users map[string]*secondary.UserRecord
}

func (m *mockUserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", workflow.ErrNotFound, id)
	}
	return user, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*secondary.UserRecord, error) {
	var result []*secondary.UserRecord
	for _, user := range m.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type mockProjectRepository struct {
	projects map[string]*secondary.ProjectRecord
}

func (m *mockProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: project %s", workflow.ErrNotFound, id)
	}
	return project, nil
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	var result []*secondary.ProjectRecord
	for _, project := range m.projects {
		result = append(result, project)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// mockSink records notifications instead of delivering them.
type mockSink struct {
	sent    []*secondary.NotificationRecord
	sendErr error
}

func (m *mockSink) Send(ctx context.Context, n *secondary.NotificationRecord) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, n)
	return nil
}

// sentTypes returns the types of all recorded notifications in order.
func (m *mockSink) sentTypes() []string {
	var types []string
	for _, n := range m.sent {
		types = append(types, n.Type)
	}
	return types
}
