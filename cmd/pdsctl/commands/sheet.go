package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/sheets"
)

func newSheetCmd(opts *rootOptions) *cobra.Command {
	var urls []string

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Fetch technical sheet data from the sheet servers",
		Long: `Sheet tries each sheet server in order and prints the parameter rows of the
first usable technical sheet. When no server answers the offline sample is
shown instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := sheets.NewFetcher(sheets.Config{
				Enabled:  len(urls) > 0,
				BaseURLs: urls,
				Timeout:  opts.timeout,
			}, nil)

			res := fetcher.Fetch(cmd.Context())
			w := cmd.OutOrStdout()

			switch res.Source {
			case sheets.SourceRemote:
				success(w, "loaded sheet %q from %s", res.Sheet, res.URL)
			case sheets.SourceCache:
				success(w, "loaded sheet %q from cache", res.Sheet)
			default:
				warning(w, "using offline sample (%s)", res.Source)
			}

			fields := sheets.MapRows(res.Rows)
			rows := make([][]string, 0, len(fields))
			for _, key := range slices.Sorted(maps.Keys(fields)) {
				rows = append(rows, []string{key, fields[key]})
			}
			table(w, []string{"PARAMETER", "VALUE"}, rows)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&urls, "url", []string{"http://localhost:5000", "http://127.0.0.1:5000"}, "sheet server base URL (repeatable, tried in order)")
	return cmd
}
