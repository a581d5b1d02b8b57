package cli

import (
	"context"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/spf13/cobra"
)

// newCatalogCmd builds a command that lists reference data. These
// endpoints need no session.
func newCatalogCmd[T any](rtf runtimeFunc, use, short string, list func(*climbsdk.Client, context.Context) ([]T, error), header []string, row func(T) []any) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := rtf()
			items, err := list(rt.client, cmd.Context())
			if err != nil {
				if emptyList(cmd, err) {
					return nil
				}
				return err
			}

			if rt.cfg.JSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]any, 0, len(items))
			for _, it := range items {
				rows = append(rows, row(it))
			}
			return printTable(cmd.OutOrStdout(), header, rows)
		},
	}
}

func newGymsCmd(rtf runtimeFunc) *cobra.Command {
	return newCatalogCmd(rtf, "gyms", "List gyms", (*climbsdk.Client).ListGyms,
		[]string{"ID", "NAME", "CITY", "ADDRESS"},
		func(g climbsdk.Gym) []any { return []any{g.ID, g.Name, g.City, g.StreetAddress} })
}

func newStylesCmd(rtf runtimeFunc) *cobra.Command {
	return newCatalogCmd(rtf, "styles", "List climbing styles", (*climbsdk.Client).ListStyles,
		[]string{"ID", "NAME", "DESCRIPTION"},
		func(s climbsdk.Style) []any { return []any{s.ID, s.Name, s.Description} })
}

func newSkillsCmd(rtf runtimeFunc) *cobra.Command {
	return newCatalogCmd(rtf, "skills", "List skill levels", (*climbsdk.Client).ListSkillLevels,
		[]string{"ID", "LEVEL", "DESCRIPTION"},
		func(s climbsdk.SkillLevel) []any { return []any{s.ID, s.Level, s.Description} })
}
