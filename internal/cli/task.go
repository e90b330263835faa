package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"taskdeck/internal/domain"

	"github.com/spf13/cobra"
)

// NewTasksCommand creates the tasks command group. Every subcommand targets
// the project given by --project.
func NewTasksCommand(rootOpts *RootOptions) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage the tasks of one project",
	}

	cmd.PersistentFlags().StringVar(&projectID, "project", "", "project id (required)")

	cmd.AddCommand(newTasksListCommand(rootOpts, &projectID))
	cmd.AddCommand(newTasksAddCommand(rootOpts, &projectID))
	cmd.AddCommand(newTasksUpdateCommand(rootOpts))
	cmd.AddCommand(newTasksRemoveCommand(rootOpts))

	return cmd
}

func newTasksListCommand(rootOpts *RootOptions, projectID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the project's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if *projectID == "" {
				return errors.New("--project is required")
			}
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.requireAuth(); err != nil {
				return err
			}

			s.tasks.FetchTasks(cmd.Context(), *projectID)
			if msg := s.tasks.Err(); msg != "" {
				return errors.New(msg)
			}

			tasks := s.tasks.Tasks()
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE")
			for _, t := range tasks {
				due := ""
				if t.DueDate != nil {
					due = t.DueDate.Format("2006-01-02")
					if t.Overdue(now) {
						due += " (overdue)"
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, due)
			}
			return w.Flush()
		},
	}
}

// taskDraftFlags collects the optional task fields shared by add and update.
type taskDraftFlags struct {
	description string
	status      string
	priority    string
	due         string
	done        bool
}

func (f *taskDraftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "task description")
	cmd.Flags().StringVar(&f.status, "status", "", "status (todo|in_progress|done)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "priority (low|medium|high)")
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.done, "done", false, "mark the task completed")
}

func (f *taskDraftFlags) apply(cmd *cobra.Command, draft *domain.TaskDraft) error {
	draft.Description = f.description
	if f.status != "" {
		status, err := domain.ParseStatus(f.status)
		if err != nil {
			return err
		}
		draft.Status = &status
	}
	if f.priority != "" {
		priority, err := domain.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		draft.Priority = &priority
	}
	if f.due != "" {
		due, err := time.ParseInLocation("2006-01-02", f.due, time.Local)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", f.due, err)
		}
		draft.DueDate = &due
	}
	if cmd.Flags().Changed("done") {
		draft.IsCompleted = &f.done
	}
	return nil
}

func newTasksAddCommand(rootOpts *RootOptions, projectID *string) *cobra.Command {
	flags := &taskDraftFlags{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task in the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if *projectID == "" {
				return errors.New("--project is required")
			}
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.requireAuth(); err != nil {
				return err
			}

			draft := &domain.TaskDraft{Title: args[0]}
			if err := flags.apply(cmd, draft); err != nil {
				return err
			}

			created, err := s.tasks.Add(cmd.Context(), *projectID, draft)
			if err != nil {
				return err
			}
			if created != nil {
				fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newTasksUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var title string
	flags := &taskDraftFlags{}

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.requireAuth(); err != nil {
				return err
			}

			draft := &domain.TaskDraft{Title: title}
			if err := flags.apply(cmd, draft); err != nil {
				return err
			}

			_, err = s.tasks.Update(cmd.Context(), args[0], draft)
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	flags.register(cmd)

	return cmd
}

func newTasksRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.requireAuth(); err != nil {
				return err
			}
			return s.tasks.Delete(cmd.Context(), args[0])
		},
	}
}
