package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/aspace"
	"github.com/gwu-libraries/wasync/display"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/logger"
	"github.com/gwu-libraries/wasync/reconcile"
)

// RunCmd reconciles catalog records with their web captures
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Reconcile web archive records with their captures",
	Long: `Reconcile ArchivesSpace records describing web archives with the capture
index that holds them.

For each record the archived URLs are read from its notes, resolved to an
Archive-It collection (or the public Wayback Machine), and the capture range
and count are written back as the record's date, extent and notes. Parent and
resource date ranges are widened to cover the record, and a replay digital
object is attached when the record has none.

Exit status is 0 on success, 1 when the run could not start, and 2 when the
run finished but at least one record failed.

Examples:
  wasync run --all                # Reconcile every tagged record
  wasync run --all --dry-run      # Show what would change, write nothing
  wasync run --ao 4312 -v         # Reconcile one archival object with progress
  wasync run --all --json         # Print the run report as JSON`,
	RunE: runRun,
}

var (
	runAllFlag    bool
	runAOFlag     int
	runDryRunFlag bool
)

func init() {
	RunCmd.Flags().BoolVar(&runAllFlag, "all", false, "Reconcile every record tagged with the web archives subject")
	RunCmd.Flags().IntVar(&runAOFlag, "ao", 0, "Reconcile a single archival object by ID")
	RunCmd.Flags().BoolVar(&runDryRunFlag, "dry-run", false, "Compute changes without writing to ArchivesSpace")
	RunCmd.Flags().BoolP("json", "j", false, "Output the run report as JSON")
	RunCmd.MarkFlagsMutuallyExclusive("all", "ao")
	RunCmd.MarkFlagsOneRequired("all", "ao")
}

// validateRunFlags rejects a non-positive --ao before any client is built
func validateRunFlags(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("ao") {
		return nil
	}
	id, err := cmd.Flags().GetInt("ao")
	if err != nil {
		return err
	}
	if id <= 0 {
		return errors.Mark(
			errors.Newf("--ao must be a positive archival object ID, got %d", id),
			errors.ErrInvalidConfig)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := validateRunFlags(cmd); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	jsonOutput := display.ShouldOutputJSON(cmd)
	interactive := !jsonOutput && verbosity(cmd) == 0

	hc := newHTTPClient(cfg)
	catalog, err := newCatalog(ctx, cfg, hc)
	if err != nil {
		return err
	}
	ai := newArchiveIt(cfg, hc)

	opts, err := buildOptions(cfg, newIndexes(cfg, ai, hc), runDryRunFlag)
	if err != nil {
		return err
	}

	orch := reconcile.New(catalog, ai, opts, logger.ComponentLogger("reconcile"))
	store, closeStore := openHistory(cfg)
	defer closeStore()
	if store != nil {
		orch.WithRecorder(store)
	}

	if interactive && runDryRunFlag {
		pterm.Warning.Println("DRY RUN: nothing will be written to ArchivesSpace")
	}

	var spinner *pterm.SpinnerPrinter
	if interactive {
		spinner, _ = pterm.DefaultSpinner.Start("Reconciling web archive records...")
	}

	var report *reconcile.RunReport
	if runAllFlag {
		report, err = orch.RunAll(ctx)
	} else {
		report, err = orch.RunRecord(ctx, aspace.ArchivalObjectURI(cfg.ASpace.Repository, runAOFlag))
	}

	if spinner != nil {
		if report == nil || report.Failed > 0 || err != nil {
			spinner.Fail("Run finished with errors")
		} else {
			spinner.Success("Run finished")
		}
	}

	if report == nil {
		return err
	}

	if jsonOutput {
		if outErr := display.OutputJSON(report); outErr != nil {
			return outErr
		}
	} else if renderErr := display.RenderReport(os.Stdout, report); renderErr != nil {
		return renderErr
	}

	if err != nil {
		return err
	}
	return report.Err()
}
