package domain

import (
	"context"
	"time"
)

// Project is a container for tasks, owned by a single user. Identity is ID;
// a loaded collection never holds two projects with the same ID.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectDraft carries the caller-supplied fields for create and update.
type ProjectDraft struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectGateway defines the port to the remote project resource. Each
// method performs exactly one logical call; retries and backoff live behind
// this boundary.
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]Project, error)
	CreateProject(ctx context.Context, draft ProjectDraft) (*Project, error)
	UpdateProject(ctx context.Context, id string, draft ProjectDraft) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}
