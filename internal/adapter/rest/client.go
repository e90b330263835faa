// Package rest implements the API gateway client: one HTTP call per logical
// operation, resolving with the domain payload or failing with a classified
// error. Retries, backoff, and caching are out of scope here.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskdeck/internal/domain"

	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

// Client talks to the remote task service. Credentials come from the
// injected token source and are read per request, never cached.
type Client struct {
	base  string
	http  *http.Client
	creds oauth2.TokenSource
}

// Ensure interfaces are met.
var _ domain.ProjectGateway = (*Client)(nil)
var _ domain.TaskGateway = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client for the service at baseURL. creds may be nil for
// unauthenticated use (login only).
func New(baseURL string, creds oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: defaultTimeout},
		creds: creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// loginResponse is the payload of a successful login.
type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a token and the account's user record.
func (c *Client) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	in := map[string]string{"username": username, "password": password}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

// Logout invalidates the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// ListProjects fetches all projects, server-ordered.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject updates the project with the given id.
func (c *Client) UpdateProject(ctx context.Context, id string, draft domain.ProjectDraft) (*domain.Project, error) {
	var out domain.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+url.PathEscape(id), draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes the project with the given id.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

// ListTasks fetches the tasks belonging to projectID.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	var out []domain.Task
	path := "/api/projects/" + url.PathEscape(projectID) + "/tasks"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task under projectID.
func (c *Client) CreateTask(ctx context.Context, projectID string, draft *domain.TaskDraft) (*domain.Task, error) {
	var out domain.Task
	path := "/api/projects/" + url.PathEscape(projectID) + "/tasks"
	if err := c.do(ctx, http.MethodPost, path, draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask updates the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, taskID string, draft *domain.TaskDraft) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(taskID), draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(taskID), nil, nil)
}

// do performs one request. Failures come back as *domain.ClassifiedError:
// transport failures are flagged as network errors, HTTP failures carry the
// status code and the server's error message when the body has one.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.creds != nil {
		if tok, err := c.creds.Token(); err == nil {
			tok.SetAuthHeader(req)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.ClassifiedError{
			Message:        "Network request failed.",
			Severity:       domain.SeverityHigh,
			IsNetworkError: true,
			Err:            err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return classifyStatus(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// classifyStatus turns a non-2xx response into a classified error. The
// server reports failures as {"error": "..."}; anything else falls back to
// the status text.
func classifyStatus(resp *http.Response) *domain.ClassifiedError {
	msg := http.StatusText(resp.StatusCode)
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &domain.ClassifiedError{
		Message:    msg,
		Severity:   severityFor(resp.StatusCode),
		StatusCode: resp.StatusCode,
	}
}

func severityFor(code int) domain.Severity {
	switch {
	case code >= 500:
		return domain.SeverityHigh
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return domain.SeverityHigh
	case code == http.StatusNotFound:
		return domain.SeverityLow
	default:
		return domain.SeverityMedium
	}
}
