package app

import (
	"context"
	"sync"

	"taskdeck/internal/domain"
	"taskdeck/internal/notify"
)

// Fallback messages used when a task operation fails without a
// transport-layer classification.
const (
	fallbackFetchTasks = "Failed to fetch tasks for the project."
	fallbackCreateTask = "Failed to create task. Please try again."
	fallbackUpdateTask = "Failed to update task. Please try again."
	fallbackDeleteTask = "Failed to delete task. Please try again."
)

// Guard notifications raised when a write is attempted unauthenticated.
const (
	authRequiredCreateTask = "Authentication required to create tasks."
	authRequiredUpdateTask = "Authentication required to update tasks."
	authRequiredDeleteTask = "Authentication required to delete tasks."
)

// TaskManager keeps the in-memory task collection consistent with the
// remote resource for one project at a time: the current scope. When the
// collection is correctly loaded, every item belongs to the scope project.
//
// There is no stale-response guard: if the scope changes while a fetch is
// still in flight, the late result is applied anyway. See the race
// documented in TestFetchTasks_StaleFetchOverwritesNewerScope.
type TaskManager struct {
	state   *resource[domain.Task]
	gateway domain.TaskGateway
	auth    *AuthManager
	center  *notify.Center

	mu    sync.Mutex
	scope string
}

// NewTaskManager creates a TaskManager backed by the given gateway.
func NewTaskManager(gw domain.TaskGateway, auth *AuthManager, center *notify.Center) *TaskManager {
	return &TaskManager{
		state:   newResource(func(t domain.Task) string { return t.ID }),
		gateway: gw,
		auth:    auth,
		center:  center,
	}
}

// Tasks returns a copy of the loaded collection in server order.
func (m *TaskManager) Tasks() []domain.Task {
	return m.state.snapshot()
}

// IsLoading reports whether an operation is in flight.
func (m *TaskManager) IsLoading() bool {
	return m.state.isLoading()
}

// Err returns the list-level error message from the last failed fetch, or
// the empty string.
func (m *TaskManager) Err() string {
	return m.state.errString()
}

// ScopeID returns the project whose tasks are currently represented, or the
// empty string when no scope is loaded.
func (m *TaskManager) ScopeID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scope
}

func (m *TaskManager) setScope(id string) {
	m.mu.Lock()
	m.scope = id
	m.mu.Unlock()
}

// FetchTasks loads the task collection for projectID, making it the current
// scope. An empty projectID or an unauthenticated caller clears the
// collection synchronously without touching the gateway. On failure the
// collection represents "no tasks loaded for this scope": it ends empty
// with the error recorded and notified.
func (m *TaskManager) FetchTasks(ctx context.Context, projectID string) {
	if projectID == "" || !m.auth.IsAuthenticated() {
		m.Clear()
		return
	}

	m.setScope(projectID)
	m.state.beginLoad()
	items, err := m.gateway.ListTasks(ctx, projectID)
	if err != nil {
		ce := domain.Classify(err, fallbackFetchTasks)
		m.state.failLoad(ce.Message, false)
		m.center.NotifyError(ce)
		return
	}
	m.state.replaceAll(items)
}

// Add creates a task in projectID. The created task is appended to the
// collection only when it belongs to the current scope: creating a task for
// a project other than the one on display must not change the display, even
// though the create succeeded remotely. Missing arguments are a silent
// no-op; an unauthenticated caller gets a notification. Neither reaches the
// gateway, and neither returns an error.
func (m *TaskManager) Add(ctx context.Context, projectID string, draft *domain.TaskDraft) (*domain.Task, error) {
	if projectID == "" || draft == nil {
		return nil, nil
	}
	if !m.auth.IsAuthenticated() {
		m.center.NotifyError(&domain.ClassifiedError{
			Message:  authRequiredCreateTask,
			Severity: domain.SeverityMedium,
		})
		return nil, nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	created, err := m.gateway.CreateTask(ctx, projectID, draft)
	if err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackCreateTask))
		return nil, err
	}
	if created.ProjectID == m.ScopeID() {
		m.state.append(*created)
	}
	m.center.ShowSuccess("Task created successfully!")
	return created, nil
}

// Update replaces the matching task in place, leaving every other item and
// the collection order untouched. Guards mirror Add.
func (m *TaskManager) Update(ctx context.Context, taskID string, draft *domain.TaskDraft) (*domain.Task, error) {
	if taskID == "" || draft == nil {
		return nil, nil
	}
	if !m.auth.IsAuthenticated() {
		m.center.NotifyError(&domain.ClassifiedError{
			Message:  authRequiredUpdateTask,
			Severity: domain.SeverityMedium,
		})
		return nil, nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	updated, err := m.gateway.UpdateTask(ctx, taskID, draft)
	if err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackUpdateTask))
		return nil, err
	}
	m.state.replaceByID(*updated)
	m.center.ShowSuccess("Task updated successfully!")
	return updated, nil
}

// Delete removes the matching task once the remote delete succeeds. Guards
// mirror Add.
func (m *TaskManager) Delete(ctx context.Context, taskID string) error {
	if taskID == "" {
		return nil
	}
	if !m.auth.IsAuthenticated() {
		m.center.NotifyError(&domain.ClassifiedError{
			Message:  authRequiredDeleteTask,
			Severity: domain.SeverityMedium,
		})
		return nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	if err := m.gateway.DeleteTask(ctx, taskID); err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackDeleteTask))
		return err
	}
	m.state.removeByID(taskID)
	m.center.ShowSuccess("Task deleted successfully!")
	return nil
}

// Clear resets the collection and scope to their initial empty state. It is
// pure local state manipulation: no network call, cannot fail, idempotent.
func (m *TaskManager) Clear() {
	m.setScope("")
	m.state.reset()
}
