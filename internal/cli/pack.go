package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/plugpack-labs/plugpack/internal/manifest"
	"github.com/plugpack-labs/plugpack/internal/pack"
)

func init() {
	packCmd.Long += "\n\nField override keys: " + strings.Join(manifest.FieldNames(), ", ")
	addManifestFlags(packCmd.Flags())
	addBundleFlags(packCmd.Flags())
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Write the canonical manifest and optionally assemble the bundle",
	Long: `Resolve the plugin manifest, stamp it with the assembly name and version,
write <output-dir>/<assembly-name>.json, and with --make-zip assemble
<output-dir>/<assembly-name>/ containing the manifest, latest.zip and images.

Every flag may also be set through a PLUGPACK_* environment variable or
plugpack.yaml in the project directory.

Examples:
  plugpack pack --output-dir bin/Release --assembly-name MyPlugin --assembly-version 1.2.3.4 --make-zip
  plugpack pack --assembly-name MyPlugin --assembly-version 1.0 --manifest-type embedded \
    --field author=Jane --field name="My Plugin" --field description=... --field punchline=...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPack(cmd.Flags(), cmd.OutOrStdout())
	},
}

func runPack(fs *pflag.FlagSet, out io.Writer) error {
	opts, err := packOptions(fs)
	if err != nil {
		return err
	}

	outcome, err := pack.Run(opts, log.Logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s (%s %s, from %s)\n",
		outcome.ManifestPath, outcome.Manifest.InternalName, outcome.Manifest.AssemblyVersion, describeSource(outcome))
	if b := outcome.Bundle; b != nil {
		fmt.Fprintf(out, "Bundled %d file(s) into %s\n", len(b.Entries), b.ArchivePath)
		if len(b.Images) > 0 {
			fmt.Fprintf(out, "Copied %d image(s) into %s\n", len(b.Images), b.BundleDir)
		}
	}
	if n := len(outcome.Warnings); n > 0 {
		fmt.Fprintf(out, "%d warning(s); run '%s manifest validate' for details\n", n, rootCmd.Name())
	}
	return nil
}

func describeSource(o *pack.Outcome) string {
	if o.SourcePath == "" {
		return o.Source.String() + " fields"
	}
	return o.SourcePath
}
