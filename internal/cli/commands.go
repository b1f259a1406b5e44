package cli

import (
	"github.com/spf13/cobra"
)

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .qw.yaml config in the current directory",
	Long: `Create a .qw.yaml config in the current directory.

Runs an interactive setup by default. With --non-interactive the
source is built entirely from flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(initOpts)
	},
}

var sourcesTimeout int

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List every source the configured catalogs can discover",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sourcesCommand(cfgFlag, sourcesTimeout)
	},
}

func init() {
	initCmd.Flags().StringVar(&initOpts.Name, "name", "", "source name")
	initCmd.Flags().StringVar(&initOpts.Kind, "kind", "remote", "source kind (remote or synthetic)")
	initCmd.Flags().StringVar(&initOpts.SSH, "ssh", "", "comma-separated SSH hosts")
	initCmd.Flags().StringVar(&initOpts.List, "list", "", "command that prints one source name per line")
	initCmd.Flags().StringVar(&initOpts.Read, "read", "", "command that prints the current value (${NAME} expands)")
	initCmd.Flags().StringVar(&initOpts.Exists, "exists", "", "optional command that exits 0 when the source exists")
	initCmd.Flags().IntVar(&initOpts.Count, "count", 3, "series count for synthetic sources")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite an existing config without asking")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts, use flags only")

	sourcesCmd.Flags().IntVar(&sourcesTimeout, "timeout", 30, "discovery timeout in seconds")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(sourcesCmd)
}
