package cli

import (
	"fmt"
	"text/tabwriter"

	"taskdeck/internal/app"

	"github.com/spf13/cobra"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show per-project task counts",
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

			svc := app.NewOverviewService(s.client, s.client)
			summaries, err := svc.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROJECT\tTASKS\tDONE\tOVERDUE")
			for _, sum := range summaries {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n",
					sum.Project.Name, sum.TaskCount, sum.DoneCount, sum.Overdue)
			}
			return w.Flush()
		},
	}
}
