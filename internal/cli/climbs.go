package cli

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/spf13/cobra"
)

func newClimbsCmd(rtf runtimeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "climbs",
		Short: "List or add climbs",
	}
	cmd.AddCommand(newClimbsListCmd(rtf), newClimbsAddCmd(rtf))
	return cmd
}

func newClimbsListCmd(rtf runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every climb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			climbs, err := rt.client.ListClimbs(cmd.Context())
			if err != nil {
				if emptyList(cmd, err) {
					return nil
				}
				return err
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), climbs)
			}
			rows := make([][]any, 0, len(climbs))
			for _, c := range climbs {
				rows = append(rows, []any{c.ID, c.GymName, c.StyleName, c.DifficultyGrade, orDash(c.SetDate), c.Username})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "GYM", "STYLE", "GRADE", "SET", "BY"}, rows)
		},
	}
}

func newClimbsAddCmd(rtf runtimeFunc) *cobra.Command {
	var in climbsdk.NewClimb

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a climb at a gym",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			if err := requireSession(rt); err != nil {
				return err
			}

			climb, err := rt.client.CreateClimb(cmd.Context(), in)
			if err != nil {
				return err
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), climb)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added climb %d: %s %s at %s\n", climb.ID, climb.DifficultyGrade, climb.StyleName, climb.GymName)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&in.GymID, "gym", 0, "gym id, see `climblog gyms`")
	f.Int64Var(&in.StyleID, "style", 0, "style id, see `climblog styles`")
	f.StringVar(&in.DifficultyGrade, "grade", "", "difficulty grade, 0 to 32")
	f.StringVar(&in.SetDate, "set-date", "", "date the climb was set, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("gym")
	_ = cmd.MarkFlagRequired("style")
	_ = cmd.MarkFlagRequired("grade")
	return cmd
}

func newAttemptsCmd(rtf runtimeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempts",
		Short: "List or add your attempts",
	}
	cmd.AddCommand(newAttemptsListCmd(rtf), newAttemptsAddCmd(rtf))
	return cmd
}

func newAttemptsListCmd(rtf runtimeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			if err := requireSession(rt); err != nil {
				return err
			}

			list, err := rt.client.ListAttempts(cmd.Context())
			if err != nil {
				if emptyList(cmd, err) {
					return nil
				}
				return err
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]any, 0, len(list.Attempts))
			for _, a := range list.Attempts {
				rows = append(rows, []any{
					a.ID, a.Climb.ID, a.Climb.GymName, a.Climb.StyleName,
					a.FunRating, a.Completed, a.AttemptedAt.Local().Format(time.DateTime), orDash(a.Comments),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "CLIMB", "GYM", "STYLE", "FUN", "SENT", "AT", "COMMENTS"}, rows)
		},
	}
}

func newAttemptsAddCmd(rtf runtimeFunc) *cobra.Command {
	var (
		in climbsdk.NewAttempt
		at string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an attempt at a climb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			if err := requireSession(rt); err != nil {
				return err
			}
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC 3339, e.g. 2024-05-01T18:30:00+10:00: %w", err)
				}
				in.AttemptedAt = &t
			}

			attempt, err := rt.client.CreateAttempt(cmd.Context(), in)
			if err != nil {
				return err
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), attempt)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded attempt %d on climb %d\n", attempt.ID, attempt.Climb.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int64Var(&in.ClimbID, "climb", 0, "climb id")
	f.IntVar(&in.FunRating, "rating", 0, "fun rating, 1 to 5")
	f.StringVar(&in.Comments, "comments", "", "comments, at most 500 characters")
	f.BoolVar(&in.Completed, "completed", false, "the climb was sent")
	f.StringVar(&at, "at", "", "when the attempt happened (RFC 3339), defaults to now")
	_ = cmd.MarkFlagRequired("climb")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
