package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/aussiebroadwan/climblog/pkg/session"
	"github.com/spf13/cobra"
)

type runtimeFunc func() *runtime

// statusOutput is the --json shape of `climblog status`.
type statusOutput struct {
	State     string                   `json:"state"`
	Username  string                   `json:"username,omitempty"`
	UserID    int64                    `json:"user_id,omitempty"`
	ExpiresAt *time.Time               `json:"expires_at,omitempty"`
	API       *climbsdk.HealthResponse `json:"api,omitempty"`
}

func newLoginCmd(rtf runtimeFunc) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			in := bufio.NewReader(cmd.InOrStdin())

			var err error
			if username == "" {
				if username, err = prompt(cmd.ErrOrStderr(), in, "Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd.ErrOrStderr(), in, "Password: "); err != nil {
					return err
				}
			}

			sess, err := rt.client.Authenticate(cmd.Context(), rt.sessions, username, password)
			if err != nil {
				return err
			}
			return printSession(cmd, rt, sess, "Logged in as %s\n")
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (prompted when empty)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when empty)")
	return cmd
}

func newRegisterCmd(rtf runtimeFunc) *cobra.Command {
	var req climbsdk.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()

			if req.Password == "" {
				pw, err := prompt(cmd.ErrOrStderr(), bufio.NewReader(cmd.InOrStdin()), "Password: ")
				if err != nil {
					return err
				}
				req.Password = pw
			}

			resp, err := rt.client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			sess, err := rt.sessions.Login(cmd.Context(), resp.Token)
			if err != nil {
				return fmt.Errorf("account created but the returned token was unusable: %w", err)
			}
			return printSession(cmd, rt, sess, "Registered and logged in as %s\n")
		},
	}

	f := cmd.Flags()
	f.StringVarP(&req.Username, "username", "u", "", "account username")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVarP(&req.Password, "password", "p", "", "account password (prompted when empty)")
	f.StringVar(&req.FirstName, "first-name", "", "first name")
	f.StringVar(&req.LastName, "last-name", "", "last name")
	f.Int64Var(&req.SkillLevelID, "skill-level", 0, "skill level id, see `climblog skills`")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("skill-level")
	return cmd
}

func newLogoutCmd(rtf runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			if rt.sessions.IsAuthenticated() {
				// The local session ends whatever the API says.
				if _, err := rt.client.Logout(cmd.Context()); err != nil {
					rt.logger.Warn("API logout failed", "err", err)
				}
			}
			rt.sessions.Logout(cmd.Context())

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), statusOutput{State: rt.sessions.State().String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCmd(rtf runtimeFunc) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			out := statusOutput{State: rt.sessions.State().String()}
			if sess, ok := rt.sessions.Session(); ok {
				out.Username = sess.Username
				out.UserID = sess.UserID
				exp := sess.ExpiresAt
				out.ExpiresAt = &exp
			}
			if check {
				health, err := rt.client.Ready(cmd.Context())
				if err != nil {
					return err
				}
				out.API = &health
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			if out.Username == "" {
				fmt.Fprintln(w, "Not logged in")
			} else {
				fmt.Fprintf(w, "Logged in as %s (id %d), expires %s\n",
					out.Username, out.UserID, out.ExpiresAt.Local().Format(time.RFC1123))
			}
			if out.API != nil {
				fmt.Fprintf(w, "API %s: %s (version %s, up %s)\n", rt.client.BaseURL(), out.API.Status, out.API.Version, out.API.Uptime)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "also check the API is ready")
	return cmd
}

func newDeleteAccountCmd(rtf runtimeFunc) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the logged in account with all its climbs and attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			if err := requireSession(rt); err != nil {
				return err
			}
			if !yes {
				return errors.New("refusing to delete the account without --yes")
			}

			resp, err := rt.client.DeleteAccount(cmd.Context())
			if err != nil {
				return err
			}
			rt.sessions.Logout(cmd.Context())

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func printSession(cmd *cobra.Command, rt *runtime, sess session.Session, format string) error {
	if rt.cfg.JSON {
		exp := sess.ExpiresAt
		return printJSON(cmd.OutOrStdout(), statusOutput{
			State:     session.StateAuthenticated.String(),
			Username:  sess.Username,
			UserID:    sess.UserID,
			ExpiresAt: &exp,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, sess.Username)
	return nil
}

func prompt(w io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimSpace(line), nil
}
