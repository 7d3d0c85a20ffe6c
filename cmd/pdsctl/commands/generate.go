package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/internal/specs"
	"github.com/pwpl/pds-engine/pkg/client"
)

type generateOptions struct {
	standard    string
	format      string
	output      string
	noIntegrate bool
	printScript bool
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	g := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <model name>",
		Short: "Generate a production data sheet for a model name",
		Long: `Generate parses the model name, fills the specification tables for the
detected (or --standard) part of DEF STAN 61-12 and renders the data sheet.
With --server the report is generated, archived and merged with the best
matching production datasheet by pds-engine.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(g.format, formatText, formatHTML, formatJSON); err != nil {
				return err
			}
			name := strings.Join(args, " ")

			var rec *models.ReportRecord
			if opts.server != "" {
				integrate := !g.noIntegrate
				res, err := opts.client().GenerateEnhanced(cmd.Context(), client.EnhancedRequest{
					ModelName: name,
					Standard:  models.Standard(g.standard),
					Integrate: &integrate,
				})
				if err != nil {
					return err
				}
				rec = res.Report
				if opts.verbose {
					success(cmd.ErrOrStderr(), "archived as %s (datasheet integrated: %t)", res.ArchiveID, res.DatasheetIntegrated)
				}
			} else {
				pipeline := report.NewPipeline(specs.NewPopulator(), report.NewAssembler())
				r, err := pipeline.Generate(name, models.Standard(g.standard))
				if err != nil {
					return err
				}
				rec = r
			}

			data, err := renderRecord(rec, g.format, g.printScript)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), g.output, data); err != nil {
				return err
			}
			if g.output != "" && g.output != "-" {
				success(cmd.ErrOrStderr(), "data sheet %s written to %s", rec.DatasheetNo, g.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&g.standard, "standard", "", "override the detected standard (def-stan-61-12-part-18 or def-stan-61-12-part-31)")
	cmd.Flags().StringVarP(&g.format, "format", "f", formatText, "output format: text, html or json")
	cmd.Flags().StringVarP(&g.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&g.noIntegrate, "no-integrate", false, "skip production datasheet integration (server mode)")
	cmd.Flags().BoolVar(&g.printScript, "print", false, "open the print dialog when the HTML is loaded")
	return cmd
}

// renderRecord renders rec in the requested format
func renderRecord(rec *models.ReportRecord, format string, printScript bool) ([]byte, error) {
	var buf bytes.Buffer
	renderer := report.NewRenderer(report.WithPrintScript(printScript))

	switch format {
	case formatHTML:
		if err := renderer.RenderHTML(&buf, rec); err != nil {
			return nil, err
		}
	case formatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}
	default:
		if err := renderer.RenderText(&buf, rec); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
