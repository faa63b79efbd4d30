package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/display"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/reconcile"
)

// SeedCmd summarizes the captures of one URL without touching the catalog
var SeedCmd = &cobra.Command{
	Use:   "seed <url>",
	Short: "Show the capture range and count for a URL",
	Long: `Resolve a URL against the Archive-It seed list and print its first and
last capture dates and the number of captures. Nothing is written.

Examples:
  wasync seed https://library.gwu.edu/
  wasync seed --public https://example.org/   # Query the public Wayback Machine
  wasync seed https://library.gwu.edu/ --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

var seedPublicFlag bool

func init() {
	SeedCmd.Flags().BoolVar(&seedPublicFlag, "public", false, "Use the public Internet Archive index instead of Archive-It")
	SeedCmd.Flags().BoolP("json", "j", false, "Output as JSON")
}

func runSeed(cmd *cobra.Command, args []string) error {
	target := args[0]
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	ctx := cmd.Context()

	hc := newHTTPClient(cfg)
	ai := newArchiveIt(cfg, hc)
	idx := newIndexes(cfg, ai, hc)

	summary := display.SeedSummary{URL: target}
	var index reconcile.Index = idx.public
	collection := 0

	if !seedPublicFlag {
		index = idx.archiveIt
		seeds, err := ai.ListSeeds(ctx, cfg.ArchiveIt.Account)
		if err != nil {
			return errors.Wrap(err, "failed to fetch seed list")
		}
		res, err := archiveit.Resolve(seeds, target)
		if err != nil {
			return errors.WithHint(err, "try --public if the site was captured by the Internet Archive")
		}
		summary.Resolution = &res
		collection = res.Collection
	}

	captures, err := index.FetchCaptures(ctx, collection, target)
	if err != nil {
		return errors.Wrapf(err, "failed to query captures of %s", target)
	}
	summary.Summary, err = archiveit.Summarize(captures)
	if err != nil {
		return errors.Wrapf(err, "no captures of %s", target)
	}
	summary.ReplayURL = index.ReplayURL(collection, target)

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(summary)
	}
	return display.RenderSeed(os.Stdout, summary)
}
