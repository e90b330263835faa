package app

import (
	"context"
	"time"

	"taskdeck/internal/domain"

	"golang.org/x/sync/errgroup"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// overviewConcurrency bounds the per-project task fetch fan-out.
const overviewConcurrency = 4

// OverviewService aggregates read-side counts across projects.
type OverviewService struct {
	projects domain.ProjectGateway
	tasks    domain.TaskGateway
}

// NewOverviewService creates an OverviewService backed by the given gateways.
func NewOverviewService(p domain.ProjectGateway, t domain.TaskGateway) *OverviewService {
	return &OverviewService{projects: p, tasks: t}
}

// ProjectSummary is one row of the overview.
type ProjectSummary struct {
	Project   domain.Project `json:"project"`
	TaskCount int            `json:"taskCount"`
	DoneCount int            `json:"doneCount"`
	Overdue   int            `json:"overdue"`
}

// Summarize lists all projects and counts their tasks, fetching per-project
// task lists concurrently. Project order is preserved.
func (s *OverviewService) Summarize(ctx context.Context) ([]ProjectSummary, error) {
	projects, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, len(projects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(overviewConcurrency)

	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			tasks, err := s.tasks.ListTasks(ctx, p.ID)
			if err != nil {
				return err
			}
			sum := ProjectSummary{Project: p, TaskCount: len(tasks)}
			for _, t := range tasks {
				if t.IsCompleted || t.Status == domain.StatusDone {
					sum.DoneCount++
				}
				if t.Overdue(timeNow()) {
					sum.Overdue++
				}
			}
			summaries[i] = sum
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
