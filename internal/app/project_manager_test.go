package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"taskdeck/internal/domain"
	"taskdeck/internal/notify"

	"github.com/google/go-cmp/cmp"
)

type mockProjectGateway struct {
	listFn   func(ctx context.Context) ([]domain.Project, error)
	createFn func(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error)
	updateFn func(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error)
	deleteFn func(ctx context.Context, id string) error

	listCalls   int
	createCalls int
}

func (m *mockProjectGateway) ListProjects(ctx context.Context) ([]domain.Project, error) {
	m.listCalls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProjectGateway) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, draft)
	}
	return &domain.Project{ID: "p-new", Name: draft.Name}, nil
}

func (m *mockProjectGateway) UpdateProject(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, draft)
	}
	return &domain.Project{ID: id, Name: draft.Name}, nil
}

func (m *mockProjectGateway) DeleteProject(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

var _ domain.ProjectGateway = (*mockProjectGateway)(nil)

// toastSink captures toasts shown through the notification center.
type toastSink struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (s *toastSink) Show(t notify.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
}

func (s *toastSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.toasts))
	for i, t := range s.toasts {
		out[i] = t.Message
	}
	return out
}

func newTestCenter() (*notify.Center, *toastSink) {
	sink := &toastSink{}
	return notify.New(sink, nil), sink
}

func authedManager(t *testing.T) *AuthManager {
	t.Helper()
	m := NewAuthManager(newMapStore())
	if err := m.Login("tok-1", &domain.User{ID: "u1", Username: "ada"}); err != nil {
		t.Fatalf("login: %v", err)
	}
	return m
}

func TestProjectFetchAll_UnauthenticatedClearsWithoutGateway(t *testing.T) {
	gw := &mockProjectGateway{}
	center, _ := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, NewAuthManager(newMapStore()), center)

	m.FetchAll(context.Background())

	if gw.listCalls != 0 {
		t.Error("the gateway must not be called while unauthenticated")
	}
	if len(m.Projects()) != 0 || m.IsLoading() || m.Err() != "" {
		t.Errorf("state = items:%d loading:%v err:%q, want empty/false/empty",
			len(m.Projects()), m.IsLoading(), m.Err())
	}
}

func TestProjectFetchAll_ReplacesWholesaleInServerOrder(t *testing.T) {
	want := []domain.Project{{ID: "p2", Name: "beta"}, {ID: "p1", Name: "alpha"}}
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) { return want, nil },
	}
	center, _ := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)

	m.FetchAll(context.Background())

	if diff := cmp.Diff(want, m.Projects()); diff != "" {
		t.Errorf("projects mismatch (-want +got):\n%s", diff)
	}
	if m.IsLoading() || m.Err() != "" {
		t.Errorf("loading=%v err=%q after success", m.IsLoading(), m.Err())
	}
}

func TestProjectFetchAll_FailureKeepsItemsAndSetsError(t *testing.T) {
	calls := 0
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			calls++
			if calls == 1 {
				return []domain.Project{{ID: "p1", Name: "alpha"}}, nil
			}
			return nil, errors.New("boom")
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)

	m.FetchAll(context.Background())
	m.FetchAll(context.Background())

	if got := m.Projects(); len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("a failed refetch must keep the previous items, got %+v", got)
	}
	if m.Err() != "Failed to fetch projects." {
		t.Errorf("err = %q, want the fetch fallback", m.Err())
	}
	if m.IsLoading() {
		t.Error("loading must reset after failure")
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Failed to fetch projects." {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectFetchAll_ClassifiedErrorMessageWins(t *testing.T) {
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return nil, &domain.ClassifiedError{Message: "Server unavailable", Severity: domain.SeverityHigh, StatusCode: 503}
		},
	}
	center, _ := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)

	m.FetchAll(context.Background())

	if m.Err() != "Server unavailable" {
		t.Errorf("err = %q, want the classified message", m.Err())
	}
	recs := center.Errors()
	if len(recs) != 1 || recs[0].Severity != domain.SeverityHigh || recs[0].StatusCode != 503 {
		t.Errorf("records = %+v", recs)
	}
}

func TestProjectAdd_PrependsNewestFirst(t *testing.T) {
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: "p1", Name: "alpha"}}, nil
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)
	m.FetchAll(context.Background())

	created, err := m.Add(context.Background(), domain.ProjectDraft{Name: "beta"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created == nil || created.ID != "p-new" {
		t.Fatalf("created = %+v", created)
	}

	got := m.Projects()
	if len(got) != 2 || got[0].ID != "p-new" || got[1].ID != "p1" {
		t.Errorf("expected the new project prepended, got %+v", got)
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Project created successfully!" {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectAdd_FailureNotifiesAndReturnsOriginalError(t *testing.T) {
	cause := errors.New("boom")
	gw := &mockProjectGateway{
		createFn: func(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
			return nil, cause
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)

	_, err := m.Add(context.Background(), domain.ProjectDraft{Name: "beta"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected the original error back, got %v", err)
	}
	if m.Err() != "" {
		t.Error("write failures must not set the list-level error")
	}
	if m.IsLoading() {
		t.Error("loading must reset after failure")
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Failed to create project." {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectAdd_UnauthenticatedIsNoOp(t *testing.T) {
	gw := &mockProjectGateway{}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, NewAuthManager(newMapStore()), center)

	created, err := m.Add(context.Background(), domain.ProjectDraft{Name: "beta"})
	if created != nil || err != nil {
		t.Errorf("expected no-op, got %+v, %v", created, err)
	}
	if gw.createCalls != 0 {
		t.Error("the gateway must not be called while unauthenticated")
	}
	if len(sink.messages()) != 0 {
		t.Errorf("notifications = %v", sink.messages())
	}
}

func TestProjectUpdate_ReplacesInPlacePreservingOrder(t *testing.T) {
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: "p1", Name: "alpha"}, {ID: "p2", Name: "beta"}, {ID: "p3", Name: "gamma"}}, nil
		},
		updateFn: func(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
			return &domain.Project{ID: id, Name: draft.Name}, nil
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)
	m.FetchAll(context.Background())

	updated, err := m.Update(context.Background(), "p2", domain.ProjectDraft{Name: "renamed"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "renamed" {
		t.Errorf("updated = %+v", updated)
	}

	got := m.Projects()
	wantIDs := []string{"p1", "p2", "p3"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("order changed: %+v", got)
		}
	}
	if got[1].Name != "renamed" {
		t.Errorf("p2 not replaced in place: %+v", got[1])
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Project updated successfully!" {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectUpdate_FailureFallbackMessage(t *testing.T) {
	gw := &mockProjectGateway{
		updateFn: func(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
			return nil, errors.New("boom")
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)

	if _, err := m.Update(context.Background(), "p1", domain.ProjectDraft{}); err == nil {
		t.Fatal("expected the error back")
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Failed to update project." {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectDelete(t *testing.T) {
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: "p1"}, {ID: "p2"}}, nil
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)
	m.FetchAll(context.Background())

	if err := m.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := m.Projects(); len(got) != 1 || got[0].ID != "p2" {
		t.Errorf("projects = %+v", got)
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Project deleted successfully!" {
		t.Errorf("notifications = %v", msgs)
	}
}

func TestProjectDelete_FailureKeepsItem(t *testing.T) {
	gw := &mockProjectGateway{
		listFn: func(ctx context.Context) ([]domain.Project, error) {
			return []domain.Project{{ID: "p1"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return errors.New("boom")
		},
	}
	center, sink := newTestCenter()
	defer center.Close()
	m := NewProjectManager(gw, authedManager(t), center)
	m.FetchAll(context.Background())

	if err := m.Delete(context.Background(), "p1"); err == nil {
		t.Fatal("expected the error back")
	}
	if got := m.Projects(); len(got) != 1 {
		t.Error("the item must never be removed on failure")
	}
	if msgs := sink.messages(); len(msgs) != 1 || msgs[0] != "Failed to delete project." {
		t.Errorf("notifications = %v", msgs)
	}
}
