// Package cli wires the qw commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFlag is the --config override, empty means search for .qw.yaml.
var cfgFlag string

// rootCmd runs the dashboard; subcommands handle setup and inspection.
var rootCmd = &cobra.Command{
	Use:   "qw",
	Short: "Live queue telemetry dashboard",
	Long: `qw watches scalar metric sources (queue depths, counters, gauges)
and charts them live in your terminal.

Sources are discovered from your .qw.yaml config: remote sources run
commands over SSH, synthetic sources generate demo data. Toggle a
source in the dashboard to start or stop monitoring it.

Examples:
  qw              # open the dashboard
  qw init         # create a .qw.yaml config
  qw sources      # list discoverable sources and exit`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cfgFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFlag, "config", "",
		"config file (default: .qw.yaml in current or parent directories)")
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
