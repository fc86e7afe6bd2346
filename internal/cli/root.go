package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/plugpack-labs/plugpack/internal/branding"
	"github.com/plugpack-labs/plugpack/internal/config"
	"github.com/plugpack-labs/plugpack/internal/pack"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

func init() {
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "", "Log level: debug, info, warn, error (default info)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns a compiled plugin's output directory into a distributable bundle:
a canonical JSON manifest, the plugin's images, and a latest.zip archive.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString(config.KeyLogLevel)
		if level == "" {
			level = os.Getenv(branding.EnvVar(config.KeyLogLevel))
		}
		return setupLogging(level)
	},
}

// setupLogging points the global logger at stderr. An empty level means info.
func setupLogging(level string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// Execute runs the root command with build info injected via ldflags.
// Errors the pipeline already logged are not printed again.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil && !pack.Reported(err) {
		log.Error().Msg(err.Error())
	}
	return err
}
