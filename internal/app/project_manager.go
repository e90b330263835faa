package app

import (
	"context"

	"taskdeck/internal/domain"
	"taskdeck/internal/notify"
)

// Fallback messages used when a project operation fails without a
// transport-layer classification.
const (
	fallbackFetchProjects = "Failed to fetch projects."
	fallbackCreateProject = "Failed to create project."
	fallbackUpdateProject = "Failed to update project."
	fallbackDeleteProject = "Failed to delete project."
)

// ProjectManager keeps the in-memory project collection consistent with the
// remote resource. Every operation is gated on authentication: the gateway
// is never called while unauthenticated.
type ProjectManager struct {
	state   *resource[domain.Project]
	gateway domain.ProjectGateway
	auth    *AuthManager
	center  *notify.Center
}

// NewProjectManager creates a ProjectManager backed by the given gateway.
func NewProjectManager(gw domain.ProjectGateway, auth *AuthManager, center *notify.Center) *ProjectManager {
	return &ProjectManager{
		state:   newResource(func(p domain.Project) string { return p.ID }),
		gateway: gw,
		auth:    auth,
		center:  center,
	}
}

// Projects returns a copy of the loaded collection in server order.
func (m *ProjectManager) Projects() []domain.Project {
	return m.state.snapshot()
}

// IsLoading reports whether an operation is in flight.
func (m *ProjectManager) IsLoading() bool {
	return m.state.isLoading()
}

// Err returns the list-level error message from the last failed fetch, or
// the empty string.
func (m *ProjectManager) Err() string {
	return m.state.errString()
}

// FetchAll synchronizes the collection with the remote resource, replacing
// it wholesale on success. Failures are absorbed into the error state and
// notified; there is no result for a caller to consume. Unauthenticated,
// it clears the collection without touching the gateway.
func (m *ProjectManager) FetchAll(ctx context.Context) {
	if !m.auth.IsAuthenticated() {
		m.state.reset()
		return
	}

	m.state.beginLoad()
	items, err := m.gateway.ListProjects(ctx)
	if err != nil {
		ce := domain.Classify(err, fallbackFetchProjects)
		m.state.failLoad(ce.Message, true)
		m.center.NotifyError(ce)
		return
	}
	m.state.replaceAll(items)
}

// Add creates a project and prepends it to the collection, newest first.
// On failure the error is notified and returned to the caller; the
// list-level error state is left alone so the create form owns its own
// inline display.
func (m *ProjectManager) Add(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	if !m.auth.IsAuthenticated() {
		return nil, nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	created, err := m.gateway.CreateProject(ctx, draft)
	if err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackCreateProject))
		return nil, err
	}
	m.state.prepend(*created)
	m.center.ShowSuccess("Project created successfully!")
	return created, nil
}

// Update replaces the matching project in place, preserving order.
func (m *ProjectManager) Update(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
	if !m.auth.IsAuthenticated() {
		return nil, nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	updated, err := m.gateway.UpdateProject(ctx, id, draft)
	if err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackUpdateProject))
		return nil, err
	}
	m.state.replaceByID(*updated)
	m.center.ShowSuccess("Project updated successfully!")
	return updated, nil
}

// Delete removes the matching project from the collection once the remote
// delete succeeds. The item is never removed on failure.
func (m *ProjectManager) Delete(ctx context.Context, id string) error {
	if !m.auth.IsAuthenticated() {
		return nil
	}

	m.state.setLoading(true)
	defer m.state.setLoading(false)

	if err := m.gateway.DeleteProject(ctx, id); err != nil {
		m.center.NotifyError(domain.Classify(err, fallbackDeleteProject))
		return err
	}
	m.state.removeByID(id)
	m.center.ShowSuccess("Project deleted successfully!")
	return nil
}
