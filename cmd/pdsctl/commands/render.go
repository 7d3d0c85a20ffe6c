package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/models"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		format      string
		output      string
		printScript bool
	)

	cmd := &cobra.Command{
		Use:   "render <report.json|->",
		Short: "Render a saved report record as HTML or text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatText, formatHTML); err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open report: %w", err)
				}
				defer f.Close()
				in = f
			}

			var rec models.ReportRecord
			if err := json.NewDecoder(in).Decode(&rec); err != nil {
				return fmt.Errorf("decode report: %w", err)
			}

			var data []byte
			if opts.server != "" {
				var (
					out string
					err error
				)
				if format == formatHTML {
					out, err = opts.client().RenderHTML(cmd.Context(), &rec)
				} else {
					out, err = opts.client().RenderText(cmd.Context(), &rec)
				}
				if err != nil {
					return err
				}
				data = []byte(out)
			} else {
				out, err := renderRecord(&rec, format, printScript)
				if err != nil {
					return err
				}
				data = out
			}
			return writeOutput(cmd.OutOrStdout(), output, data)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&printScript, "print", false, "open the print dialog when the HTML is loaded")
	return cmd
}
