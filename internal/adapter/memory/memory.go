// Package memory implements in-memory adapters for development and testing:
// a gateway serving both resources, a session store, and a settable
// connectivity source.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/domain"

	"github.com/google/uuid"
)

// Gateway implements the project and task gateways against in-memory
// collections owned by a single user.
type Gateway struct {
	mu       sync.Mutex
	owner    domain.User
	projects []domain.Project
	tasks    []domain.Task
}

// Ensure interfaces are met.
var _ domain.ProjectGateway = (*Gateway)(nil)
var _ domain.TaskGateway = (*Gateway)(nil)
var _ domain.SessionStore = (*Store)(nil)
var _ domain.ConnectivitySource = (*Link)(nil)

// NewGateway creates a Gateway owned by the given user.
func NewGateway(owner domain.User) *Gateway {
	if owner.ID == "" {
		owner.ID = uuid.NewString()
	}
	return &Gateway{owner: owner}
}

// Owner returns the user the collections belong to.
func (g *Gateway) Owner() domain.User {
	return g.owner
}

// --- ProjectGateway ---

// ListProjects returns the projects, newest first.
func (g *Gateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.Project, len(g.projects))
	for i, p := range g.projects {
		out[len(g.projects)-1-i] = p
	}
	return out, nil
}

// CreateProject stores a new project.
func (g *Gateway) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	if draft.Name == "" {
		return nil, &domain.ClassifiedError{
			Message:    "Project name is required.",
			Severity:   domain.SeverityLow,
			StatusCode: 422,
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UTC()
	p := domain.Project{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		UserID:      g.owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	g.projects = append(g.projects, p)
	return &p, nil
}

// UpdateProject applies the draft to the matching project.
func (g *Gateway) UpdateProject(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.projects {
		if g.projects[i].ID != id {
			continue
		}
		if draft.Name != "" {
			g.projects[i].Name = draft.Name
		}
		g.projects[i].Description = draft.Description
		g.projects[i].UpdatedAt = time.Now().UTC()
		p := g.projects[i]
		return &p, nil
	}
	return nil, notFound("project", id)
}

// DeleteProject removes the matching project and every task under it.
func (g *Gateway) DeleteProject(ctx context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.projects {
		if g.projects[i].ID != id {
			continue
		}
		g.projects = append(g.projects[:i], g.projects[i+1:]...)
		kept := g.tasks[:0]
		for _, t := range g.tasks {
			if t.ProjectID != id {
				kept = append(kept, t)
			}
		}
		g.tasks = kept
		return nil
	}
	return notFound("project", id)
}

// --- TaskGateway ---

// ListTasks returns the tasks belonging to projectID in creation order.
func (g *Gateway) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.projectExistsLocked(projectID) {
		return nil, notFound("project", projectID)
	}
	var out []domain.Task
	for _, t := range g.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CreateTask stores a new task under projectID.
func (g *Gateway) CreateTask(ctx context.Context, projectID string, draft *domain.TaskDraft) (*domain.Task, error) {
	if draft == nil || draft.Title == "" {
		return nil, &domain.ClassifiedError{
			Message:    "Task title is required.",
			Severity:   domain.SeverityLow,
			StatusCode: 422,
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.projectExistsLocked(projectID) {
		return nil, notFound("project", projectID)
	}

	now := time.Now().UTC()
	t := domain.Task{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Status:      domain.StatusTodo,
		Priority:    domain.PriorityMedium,
		ProjectID:   projectID,
		UserID:      g.owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     draft.DueDate,
	}
	if draft.Status != nil {
		t.Status = *draft.Status
	}
	if draft.Priority != nil {
		t.Priority = *draft.Priority
	}
	if draft.IsCompleted != nil {
		t.IsCompleted = *draft.IsCompleted
	}
	g.tasks = append(g.tasks, t)
	return &t, nil
}

// UpdateTask applies the draft's non-nil fields to the matching task.
func (g *Gateway) UpdateTask(ctx context.Context, taskID string, draft *domain.TaskDraft) (*domain.Task, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.tasks {
		if g.tasks[i].ID != taskID {
			continue
		}
		t := &g.tasks[i]
		if draft.Title != "" {
			t.Title = draft.Title
		}
		if draft.Description != "" {
			t.Description = draft.Description
		}
		if draft.Status != nil {
			t.Status = *draft.Status
			t.IsCompleted = *draft.Status == domain.StatusDone
		}
		if draft.Priority != nil {
			t.Priority = *draft.Priority
		}
		if draft.IsCompleted != nil {
			t.IsCompleted = *draft.IsCompleted
		}
		if draft.DueDate != nil {
			t.DueDate = draft.DueDate
		}
		t.UpdatedAt = time.Now().UTC()
		out := *t
		return &out, nil
	}
	return nil, notFound("task", taskID)
}

// DeleteTask removes the matching task.
func (g *Gateway) DeleteTask(ctx context.Context, taskID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.tasks {
		if g.tasks[i].ID == taskID {
			g.tasks = append(g.tasks[:i], g.tasks[i+1:]...)
			return nil
		}
	}
	return notFound("task", taskID)
}

func (g *Gateway) projectExistsLocked(id string) bool {
	for _, p := range g.projects {
		if p.ID == id {
			return true
		}
	}
	return false
}

func notFound(kind, id string) *domain.ClassifiedError {
	return &domain.ClassifiedError{
		Message:    fmt.Sprintf("The requested %s was not found.", kind),
		Severity:   domain.SeverityLow,
		StatusCode: 404,
		Err:        fmt.Errorf("%s %q not found", kind, id),
	}
}

// Store is an in-memory session store.
type Store struct {
	mu     sync.Mutex
	values map[string]string
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the stored value, or the empty string when absent.
func (s *Store) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Remove deletes key. Removing an absent key is a no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Link is a settable connectivity source.
type Link struct {
	mu     sync.Mutex
	online bool
	nextID int
	subs   map[int]func(bool)
}

// NewLink creates a Link in the online state.
func NewLink() *Link {
	return &Link{online: true, subs: make(map[int]func(bool))}
}

// Online reports the current state.
func (l *Link) Online() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.online
}

// Subscribe registers fn for transitions. The returned cancel function is
// safe to call more than once.
func (l *Link) Subscribe(fn func(online bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// SetOnline flips the state and fans out to subscribers.
func (l *Link) SetOnline(online bool) {
	l.mu.Lock()
	l.online = online
	subs := make([]func(bool), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(online)
	}
}
