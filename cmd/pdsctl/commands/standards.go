package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/internal/catalog"
	"github.com/pwpl/pds-engine/internal/models"
)

func newStandardsCmd(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "standards",
		Short: "List supported standards, wire types and conductor sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			var standards []*models.StandardInfo
			var sizes []models.ConductorSize
			if opts.server != "" {
				list, err := opts.client().ListStandards(cmd.Context())
				if err != nil {
					return err
				}
				for i := range list {
					standards = append(standards, &list[i])
				}
			} else {
				loader, err := catalog.NewDefaultLoader()
				if err != nil {
					return err
				}
				if dir != "" {
					if err := loader.LoadFromDir(dir); err != nil {
						return err
					}
				}
				standards = loader.ListStandards()
				sizes = loader.ConductorSizes()
			}

			for _, std := range standards {
				section(w, std.Label)
				keyValue(w, "ID", string(std.ID))
				rows := make([][]string, 0, len(std.WireTypes))
				for _, wt := range std.WireTypes {
					rows = append(rows, []string{wt.ID, wt.Label})
				}
				if len(rows) > 0 {
					table(w, []string{"WIRE TYPE", "NAME"}, rows)
				}
				keyValue(w, "Tests", strconv.Itoa(len(std.Tests)))
			}

			if len(sizes) > 0 {
				section(w, "Conductor sizes")
				rows := make([][]string, 0, len(sizes))
				for _, s := range sizes {
					rows = append(rows, []string{s.ID, s.Label})
				}
				table(w, []string{"ID", "LABEL"}, rows)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of catalog YAML files overriding the built-in catalog")
	return cmd
}
