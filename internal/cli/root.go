// Package cli implements the taskdeck command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"taskdeck/internal/adapter/rest"
	"taskdeck/internal/adapter/sqlite"
	"taskdeck/internal/app"
	"taskdeck/internal/config"
	"taskdeck/internal/notify"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	ServerURL  string
}

// NewRootCommand creates the root command for the taskdeck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "taskdeck",
		Short:         "taskdeck - project and task manager client",
		Long:          "A client for the taskdeck service: manage projects and the tasks scoped to them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath(), "path to the config file")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "server base URL (overrides config)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewProjectsCommand(opts))
	cmd.AddCommand(NewTasksCommand(opts))
	cmd.AddCommand(NewOverviewCommand(opts))

	return cmd
}

// session wires the full client stack for one command invocation.
type session struct {
	cfg      config.Config
	store    *sqlite.Store
	auth     *app.AuthManager
	client   *rest.Client
	center   *notify.Center
	projects *app.ProjectManager
	tasks    *app.TaskManager
}

func (o *RootOptions) connect() (*session, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.ServerURL != "" {
		cfg.ServerURL = o.ServerURL
	}

	store, err := sqlite.Open(cfg.SessionPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	auth := app.NewAuthManager(store)
	client := rest.New(cfg.ServerURL, auth.TokenSource())
	center := notify.New(stderrSink{}, nil)

	return &session{
		cfg:      cfg,
		store:    store,
		auth:     auth,
		client:   client,
		center:   center,
		projects: app.NewProjectManager(client, auth, center),
		tasks:    app.NewTaskManager(client, auth, center),
	}, nil
}

func (s *session) close() {
	s.center.Close()
	_ = s.store.Close()
}

// requireAuth fails early with a consistent message for commands that make
// no sense logged out.
func (s *session) requireAuth() error {
	if !s.auth.IsAuthenticated() {
		return errors.New("not logged in; run `taskdeck login <username>` first")
	}
	return nil
}

// stderrSink renders toasts on standard error so command output stays clean
// on standard out.
type stderrSink struct{}

func (stderrSink) Show(t notify.Toast) {
	switch t.Kind {
	case notify.KindError:
		fmt.Fprintf(os.Stderr, "error (%s): %s\n", t.Severity, t.Message)
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", t.Kind, t.Message)
	}
}
