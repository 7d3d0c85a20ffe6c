package commands

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/modelname"
	"github.com/pwpl/pds-engine/internal/models"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <model name>",
		Short: "Decode a cable model name into its construction details",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			var parsed *models.ParsedModel
			if opts.server != "" {
				p, err := opts.client().Parse(cmd.Context(), name)
				if err != nil {
					return err
				}
				parsed = p
			} else {
				p := modelname.Parse(name)
				parsed = &p
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(parsed)
			}

			section(w, parsed.OriginalName)
			keyValue(w, "Product type", string(parsed.ProductType))
			keyValue(w, "Standard", string(parsed.Standard))

			c := parsed.ConductorDetails
			keyValue(w, "Conductor", c.Material)
			keyValue(w, "AWG", c.AWG)
			keyValue(w, "Strands", c.StrandCount+" x "+c.StrandDiameter+" mm")
			keyValue(w, "Cores", c.CoreCount)
			keyValue(w, "Insulation", parsed.InsulationDetails.Material)
			if s := parsed.ShieldingDetails; s != nil {
				keyValue(w, "Shielding", s.Material+" "+s.Construction+" ("+s.Coverage+"% coverage)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed model as JSON")
	return cmd
}
