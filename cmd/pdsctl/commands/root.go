// Package commands implements the pdsctl command line
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pwpl/pds-engine/pkg/client"
)

// Output formats accepted by --format
const (
	formatText = "text"
	formatHTML = "html"
	formatJSON = "json"
)

type rootOptions struct {
	noColor bool
	verbose bool
	server  string
	timeout time.Duration
}

// NewRootCmd builds the pdsctl command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pdsctl",
		Short: "Generate cable production data sheets and compliance reports",
		Long: `pdsctl turns cable model names into DEF STAN 61-12 production data sheets,
evaluates test measurements against the standard limits and renders the
resulting documents as HTML or text. Commands run locally unless --server
points at a running pds-engine.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVarP(&opts.server, "server", "s", "", "pds-engine base URL (default: run locally)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")

	cmd.AddCommand(
		newParseCmd(opts),
		newGenerateCmd(opts),
		newComplianceCmd(opts),
		newRenderCmd(opts),
		newSheetCmd(opts),
		newStandardsCmd(opts),
	)
	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) client() *client.Client {
	return client.NewClient(o.server, client.WithTimeout(o.timeout))
}

// writeOutput writes data to path, or to w when path is empty or "-"
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q", format)
}
