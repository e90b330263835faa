package domain

import (
	"context"
	"fmt"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ParseStatus validates a user-supplied status string.
func ParseStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("invalid status %q: must be todo, in_progress, or done", s)
}

// ParsePriority validates a user-supplied priority string.
func ParsePriority(s string) (TaskPriority, error) {
	switch TaskPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return TaskPriority(s), nil
	}
	return "", fmt.Errorf("invalid priority %q: must be low, medium, or high", s)
}

// Task always belongs to exactly one project. The mixed tag casing matches
// the server's wire format.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	IsCompleted bool         `json:"is_completed"`
	ProjectID   string       `json:"projectId"`
	UserID      string       `json:"userId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
}

// Overdue reports whether the task has an unmet due date as of now.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && !t.IsCompleted && now.After(*t.DueDate)
}

// TaskDraft carries the caller-supplied fields for create and update. Nil
// pointer fields are left untouched by the server on update.
type TaskDraft struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	IsCompleted *bool         `json:"is_completed,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
}

// TaskGateway defines the port to the remote task resource.
type TaskGateway interface {
	ListTasks(ctx context.Context, projectID string) ([]Task, error)
	CreateTask(ctx context.Context, projectID string, draft *TaskDraft) (*Task, error)
	UpdateTask(ctx context.Context, taskID string, draft *TaskDraft) (*Task, error)
	DeleteTask(ctx context.Context, taskID string) error
}
