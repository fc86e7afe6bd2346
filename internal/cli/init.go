package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/plugpack-labs/plugpack/internal/scaffold"
)

var assemblyNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var (
	initFormat     string
	initProjectDir string
	initAuthor     string
	initRepoURL    string
)

func init() {
	initCmd.Flags().StringVar(&initFormat, "format", scaffold.FormatYAML, "Manifest format: yaml or json")
	initCmd.Flags().StringVar(&initProjectDir, "project-dir", ".", "Directory to write the manifest into")
	initCmd.Flags().StringVar(&initAuthor, "author", "", "Plugin author")
	initCmd.Flags().StringVar(&initRepoURL, "repo-url", "", "Source repository URL")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <assembly-name>",
	Short: "Scaffold a starter plugin manifest",
	Long: `Write <project-dir>/<assembly-name>.yaml (or .json) with placeholder values
for the required fields. Existing manifests are never overwritten.

Examples:
  plugpack init MyPlugin --author "Jane Doe"
  plugpack init MyPlugin --format json --project-dir src/MyPlugin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !assemblyNamePattern.MatchString(name) {
			return fmt.Errorf("invalid assembly name %q: use letters, digits, '.', '_' and '-'", name)
		}

		data := scaffold.NewManifestData(name, initAuthor)
		data.RepoURL = initRepoURL
		result, err := scaffold.Generate(initFormat, data, initProjectDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created %s\n", result.Path)
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  warning: %s\n", w)
		}
		fmt.Fprintln(out, "Fill in name, description and punchline before packing.")
		return nil
	},
}
