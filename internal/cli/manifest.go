package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/plugpack-labs/plugpack/internal/manifest"
	"github.com/plugpack-labs/plugpack/internal/pack"
)

func init() {
	addManifestFlags(manifestValidateCmd.Flags())
	addManifestFlags(manifestShowCmd.Flags())
	manifestCmd.AddCommand(manifestValidateCmd)
	manifestCmd.AddCommand(manifestShowCmd)
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Check or preview the resolved manifest without writing anything",
}

var manifestValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report missing required fields and advisory warnings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runManifestValidate(cmd.Flags(), cmd.OutOrStdout())
	},
}

var manifestShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the canonical JSON manifest that pack would write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runManifestShow(cmd.Flags(), cmd.OutOrStdout())
	},
}

func runManifestValidate(fs *pflag.FlagSet, out io.Writer) error {
	opts, err := packOptions(fs)
	if err != nil {
		return err
	}

	outcome, report, err := pack.Resolve(opts, log.Logger)
	if report == nil {
		return err
	}

	fmt.Fprintf(out, "Source: %s\n", describeSource(outcome))
	for _, field := range report.Missing {
		fmt.Fprintf(out, "  missing: %s\n", field)
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", w)
	}
	if err != nil {
		return err
	}
	if len(report.Warnings) == 0 {
		fmt.Fprintln(out, "Manifest is valid.")
	} else {
		fmt.Fprintf(out, "Manifest is valid with %d warning(s).\n", len(report.Warnings))
	}
	return nil
}

func runManifestShow(fs *pflag.FlagSet, out io.Writer) error {
	opts, err := packOptions(fs)
	if err != nil {
		return err
	}

	outcome, _, err := pack.Resolve(opts, log.Logger)
	if err != nil {
		return err
	}
	data, err := manifest.Encode(outcome.Manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	_, err = out.Write(data)
	return err
}
