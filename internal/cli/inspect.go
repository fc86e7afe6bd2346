package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plugpack-labs/plugpack/internal/archive"
	"github.com/plugpack-labs/plugpack/internal/manifest"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <bundle-dir>",
	Short: "Show the manifest, archive entries and images of an assembled bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0], cmd.OutOrStdout())
	},
}

func runInspect(bundleDir string, out io.Writer) error {
	c, err := archive.Inspect(bundleDir)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(c.ManifestPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.ManifestPath, err)
	}
	m, err := manifest.ParseJSON(data)
	if err != nil {
		return &manifest.ParseError{Path: c.ManifestPath, Format: "json", Err: err}
	}

	fmt.Fprintf(out, "%s %s (%s)\n", m.Name, m.AssemblyVersion, m.InternalName)
	fmt.Fprintf(out, "Manifest: %s\n", c.ManifestPath)
	if len(c.Images) > 0 {
		fmt.Fprintf(out, "Images:   %v\n", c.Images)
	}
	fmt.Fprintf(out, "\n%s (%d entries)\n", archive.ArchiveFileName, len(c.Entries))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tNAME")
	for _, e := range c.Entries {
		fmt.Fprintf(w, "%d\t%s\n", e.Size, e.Name)
	}
	return w.Flush()
}
