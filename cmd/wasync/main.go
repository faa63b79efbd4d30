package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/cmd/wasync/commands"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/logger"
)

var rootCmd = &cobra.Command{
	Use:   "wasync",
	Short: "wasync - Keep ArchivesSpace web archive records in sync with their captures",
	Long: `wasync - Reconcile ArchivesSpace web archive descriptions with Archive-It
and Internet Archive capture indexes.

Available commands:
  run      - Reconcile records with their captures
  seed     - Show the capture range of a single URL
  am       - Manage configuration ("I am")
  history  - Inspect recorded runs
  version  - Show version information

Examples:
  wasync am show                  # Show current configuration
  wasync run --all --dry-run      # Preview changes for every tagged record
  wasync run --ao 4312            # Reconcile one archival object
  wasync seed https://gwu.edu/    # Capture summary for one URL
  wasync history ls               # List recent runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetCount("verbose")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(logJSON, verbose); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			if _, err := am.LoadFromFile(path); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().String("config", "", "Load configuration from this file only")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")

	rootCmd.AddCommand(commands.RunCmd)
	rootCmd.AddCommand(commands.SeedCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.HistoryCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Cleanup()

	commands.PrintError(os.Stderr, err)
	os.Exit(commands.ExitCode(err))
}
