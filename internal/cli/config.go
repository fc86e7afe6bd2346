package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.yaml.in/yaml/v3"

	"github.com/plugpack-labs/plugpack/internal/config"
)

func init() {
	addManifestFlags(configShowCmd.Flags())
	addBundleFlags(configShowCmd.Flags())
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect packaging settings",
	Long:  `Settings come from flags, PLUGPACK_* environment variables and plugpack.yaml in the project directory, in that order of precedence.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd.Flags(), cmd.OutOrStdout())
	},
}

func runConfigShow(fs *pflag.FlagSet, out io.Writer) error {
	v, err := config.Load(fs)
	if err != nil {
		return err
	}
	if file := v.ConfigFileUsed(); file != "" {
		fmt.Fprintf(out, "# from %s\n", file)
	}

	settings := v.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var val yaml.Node
		if err := val.Encode(settings[k]); err != nil {
			return fmt.Errorf("encoding setting %s: %w", k, err)
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &val)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return enc.Close()
}
