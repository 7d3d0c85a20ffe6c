package commands

import (
	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/models"
	"github.com/pwpl/pds-engine/internal/report"
	"github.com/pwpl/pds-engine/pkg/client"
)

type complianceOptions struct {
	product  string
	standard string
	wireType string
	size     string
	params   map[string]string
	format   string
	output   string
}

func newComplianceCmd(opts *rootOptions) *cobra.Command {
	c := &complianceOptions{}

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Evaluate test measurements against a standard",
		Example: `  pdsctl compliance --wire-type lf-sheath-85c \
    --param tensileStrength=12 --param elongationAtBreak=180`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.format != "" {
				if err := checkFormat(c.format, formatText, formatHTML, formatJSON); err != nil {
					return err
				}
			}

			req := report.ComplianceRequest{
				ProductName:    c.product,
				Standard:       models.Standard(c.standard),
				WireType:       c.wireType,
				ConductorSize:  c.size,
				TestParameters: c.params,
			}
			if req.ProductName == "" {
				req.ProductName = req.WireType
			}

			var rec *models.ReportRecord
			if opts.server != "" {
				res, err := opts.client().GenerateCompliance(cmd.Context(), client.ComplianceRequest{
					ProductName:    req.ProductName,
					Standard:       req.Standard,
					WireType:       req.WireType,
					ConductorSize:  req.ConductorSize,
					TestParameters: req.TestParameters,
				})
				if err != nil {
					return err
				}
				rec = res.Report
			} else {
				if err := report.ValidateInput(req.ProductName, req.Standard); err != nil {
					return err
				}
				rec = report.NewAssembler().BuildComplianceReport(req)
			}

			if c.format != "" {
				data, err := renderRecord(rec, c.format, false)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), c.output, data)
			}

			printCompliance(cmd, rec)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.product, "product", "", "product name (defaults to the wire type)")
	cmd.Flags().StringVar(&c.standard, "standard", string(models.StandardPart31), "standard to evaluate against")
	cmd.Flags().StringVar(&c.wireType, "wire-type", "", "wire type")
	cmd.Flags().StringVar(&c.size, "size", "", "conductor size")
	cmd.Flags().StringToStringVarP(&c.params, "param", "p", nil, "test measurement as test=value (repeatable)")
	cmd.Flags().StringVarP(&c.format, "format", "f", "", "render the report as text, html or json instead of a summary")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "write to file instead of stdout")
	_ = cmd.MarkFlagRequired("wire-type")
	return cmd
}

func printCompliance(cmd *cobra.Command, rec *models.ReportRecord) {
	w := cmd.OutOrStdout()

	section(w, "Compliance report "+rec.ReportID)
	keyValue(w, "Product", rec.ProductName)
	keyValue(w, "Standard", rec.ReferenceStandard)
	if rec.ConductorSize != "" {
		keyValue(w, "Conductor size", rec.ConductorSize)
	}
	_, _ = w.Write([]byte("\n"))

	rows := make([][]string, 0, len(rec.ComplianceResults))
	for _, r := range rec.ComplianceResults {
		value := r.Value
		if value == "" {
			value = "-"
		}
		rows = append(rows, []string{r.Label, value, r.Limit + " " + r.Unit, string(r.Status)})
	}
	table(w, []string{"TEST", "VALUE", "LIMIT", "STATUS"}, rows)
	_, _ = w.Write([]byte("\n"))

	if rec.OverallCompliance {
		success(w, "COMPLIANT")
	} else {
		failure(w, "NON-COMPLIANT")
	}
}
