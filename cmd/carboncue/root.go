package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	carboncue "github.com/rshade/carboncue-go"
)

// rootOptions holds flags shared by all subcommands.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "carboncue",
		Short:         "Grid carbon intensity and SCI scoring for cloud regions",
		Long:          "CarbonCue: look up grid carbon intensity for cloud provider regions and compute Software Carbon Intensity (SCI) scores.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default: environment variables)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newIntensityCmd(opts),
		newSCICmd(opts),
		newRegionsCmd(),
		newProvidersCmd(),
	)

	return cmd
}

// newLogger builds a console logger on stderr so command output on stdout
// stays machine-readable.
func (o *rootOptions) newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// loadConfig resolves configuration from the --config file when given,
// otherwise from environment variables.
func (o *rootOptions) loadConfig() (carboncue.Config, error) {
	if o.configPath != "" {
		return carboncue.LoadConfig(o.configPath)
	}
	return carboncue.ConfigFromEnv(), nil
}
