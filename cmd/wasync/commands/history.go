package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/display"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/history"
	"github.com/gwu-libraries/wasync/logger"
	"github.com/gwu-libraries/wasync/reconcile"
)

// HistoryCmd reads the run ledger
var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded runs",
	Long: `Inspect past reconciliation runs recorded in the run-history database
(database.path, default wasync.db).

Examples:
  wasync history ls               # Most recent runs
  wasync history ls --limit 50
  wasync history show <run-id>    # Per-URL outcomes of one run`,
}

var historyLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recent runs",
	RunE:  runHistoryLs,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyLimitFlag int

func init() {
	historyLsCmd.Flags().IntVar(&historyLimitFlag, "limit", history.DefaultListLimit, "Number of runs to show")
	historyLsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	historyShowCmd.Flags().BoolP("json", "j", false, "Output as JSON")

	HistoryCmd.AddCommand(historyLsCmd)
	HistoryCmd.AddCommand(historyShowCmd)
}

func openStore() (*history.Store, func(), error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(database, logger.ComponentLogger("history")), func() { database.Close() }, nil
}

func runHistoryLs(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	runs, err := store.ListRuns(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}
	if display.ShouldOutputJSON(cmd) {
		if runs == nil {
			runs = []history.Run{}
		}
		return display.OutputJSON(runs)
	}
	return display.RenderRuns(os.Stdout, runs)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := cmd.Context()
	run, err := store.GetRun(ctx, args[0])
	if err != nil {
		return err
	}
	outcomes, err := store.Outcomes(ctx, run.ID)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(struct {
			*history.Run
			Outcomes []reconcile.Outcome `json:"outcomes"`
		}{run, outcomes})
	}
	return display.RenderRun(os.Stdout, run, outcomes)
}
