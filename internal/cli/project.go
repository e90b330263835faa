package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"taskdeck/internal/domain"

	"github.com/spf13/cobra"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(newProjectsListCommand(rootOpts))
	cmd.AddCommand(newProjectsAddCommand(rootOpts))
	cmd.AddCommand(newProjectsUpdateCommand(rootOpts))
	cmd.AddCommand(newProjectsRemoveCommand(rootOpts))

	return cmd
}

func newProjectsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()
			if err := s.requireAuth(); err != nil {
				return err
			}

			s.projects.FetchAll(cmd.Context())
			if msg := s.projects.Err(); msg != "" {
				return errors.New(msg)
			}

			projects := s.projects.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.Description)
			}
			return w.Flush()
		},
	}
}

func newProjectsAddCommand(rootOpts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
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

			created, err := s.projects.Add(cmd.Context(), domain.ProjectDraft{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "project description")

	return cmd
}

func newProjectsUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
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

			_, err = s.projects.Update(cmd.Context(), args[0], domain.ProjectDraft{
				Name:        name,
				Description: description,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newProjectsRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a project",
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
			return s.projects.Delete(cmd.Context(), args[0])
		},
	}
}
