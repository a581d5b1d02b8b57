package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/aussiebroadwan/climblog/pkg/climbsdk"
	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes a header and rows aligned in columns.
func printTable(w io.Writer, header []string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range header {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// emptyList reports whether err is the API's 404 for a list with no
// records, printing its message when it is.
func emptyList(cmd *cobra.Command, err error) bool {
	var apiErr *climbsdk.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != climbsdk.KindServer || apiErr.StatusCode != http.StatusNotFound {
		return false
	}
	fmt.Fprintln(cmd.OutOrStdout(), apiErr.Message)
	return true
}

// requireSession fails fast when there is nothing to authenticate with.
func requireSession(rt *runtime) error {
	if !rt.sessions.IsAuthenticated() {
		return errors.New("not logged in, run 'climblog login' first")
	}
	return nil
}
