package commands

import (
	"context"
	"fmt"
	"os"

	"edhrec-tracker/lib/configutil"
	"edhrec-tracker/lib/serviceutil"
	"edhrec-tracker/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool

	// cfg is loaded before any subcommand runs.
	cfg Config
)

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file to read, a missing file means defaults.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
}

var rootCmd = &cobra.Command{
	Use:   "edhrec-cli",
	Short: "edhrec-cli collects commander card inclusion statistics and card images from EDHREC.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		loaded, err := configutil.ReadConfigWithDefaults(*configPath, DefaultConfig())
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		cfg = loaded
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
