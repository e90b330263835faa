package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate against the server and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prompted when omitted)")

	return cmd
}

func runLogin(opts *LoginOptions, username string, cmd *cobra.Command) error {
	password := opts.Password
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return errors.New("a password is required")
	}

	s, err := opts.connect()
	if err != nil {
		return err
	}
	defer s.close()

	token, user, err := s.client.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := s.auth.Login(token, user); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	name := username
	if user != nil {
		name = user.Username
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
	return nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the session and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()

			// Best effort server-side; the local session is cleared either way.
			if s.auth.IsAuthenticated() {
				if err := s.client.Logout(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "server logout failed: %v\n", err)
				}
			}
			if err := s.auth.Logout(); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rootOpts.connect()
			if err != nil {
				return err
			}
			defer s.close()

			sess := s.auth.Session()
			if !sess.Authenticated() {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			if sess.User == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "logged in (no user record)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", sess.User.Username, sess.User.Email)
			return nil
		},
	}
}
