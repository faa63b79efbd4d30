package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/history"
	"github.com/gwu-libraries/wasync/reconcile"
)

// RenderReport prints a run summary followed by one row per outcome
func RenderReport(w io.Writer, report *reconcile.RunReport) error {
	title := fmt.Sprintf("Run %s (%s)", report.ID, report.Mode)
	if report.DryRun {
		title += " [dry run]"
	}
	pterm.DefaultSection.WithWriter(w).Println(title)

	if err := renderCounts(w, report.Records, report.Updated, report.Unchanged, report.Skipped, report.Failed); err != nil {
		return err
	}
	if len(report.Outcomes) > 0 {
		if err := RenderOutcomes(w, report.Outcomes); err != nil {
			return err
		}
	}

	for _, e := range report.Errors {
		pterm.Error.WithWriter(w).Println(e.Error())
	}

	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	switch {
	case report.Failed > 0:
		pterm.Warning.WithWriter(w).Printfln("%d of %d records failed in %s", report.Failed, report.Records, elapsed)
	case report.DryRun:
		pterm.Info.WithWriter(w).Printfln("Dry run finished in %s; nothing was written", elapsed)
	default:
		pterm.Success.WithWriter(w).Printfln("Finished in %s", elapsed)
	}
	return nil
}

// RenderOutcomes prints a table of per-URL outcomes
func RenderOutcomes(w io.Writer, outcomes []reconcile.Outcome) error {
	data := pterm.TableData{{"Record", "URL", "Status", "Range", "Captures", "Ancestors", "Digital object"}}
	for _, o := range outcomes {
		data = append(data, []string{
			o.RecordURI,
			o.URL,
			statusLabel(o.Status),
			reconcile.FormatExpression(o.Begin, o.End),
			countOrBlank(o.Captures),
			countOrBlank(o.AncestorsChanged),
			digitalObjectLabel(o),
		})
	}
	return pterm.DefaultTable.WithWriter(w).WithHasHeader().WithData(data).Render()
}

// RenderRuns prints recorded runs, newest first
func RenderRuns(w io.Writer, runs []history.Run) error {
	if len(runs) == 0 {
		pterm.Info.WithWriter(w).Println("No runs recorded")
		return nil
	}
	data := pterm.TableData{{"ID", "Started", "Mode", "Dry run", "Records", "Updated", "Unchanged", "Skipped", "Failed"}}
	for _, r := range runs {
		data = append(data, []string{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode,
			strconv.FormatBool(r.DryRun),
			strconv.Itoa(r.Records),
			strconv.Itoa(r.Updated),
			strconv.Itoa(r.Unchanged),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Failed),
		})
	}
	return pterm.DefaultTable.WithWriter(w).WithHasHeader().WithData(data).Render()
}

// RenderRun prints one recorded run and its outcomes
func RenderRun(w io.Writer, run *history.Run, outcomes []reconcile.Outcome) error {
	title := fmt.Sprintf("Run %s (%s)", run.ID, run.Mode)
	if run.DryRun {
		title += " [dry run]"
	}
	pterm.DefaultSection.WithWriter(w).Println(title)
	pterm.Info.WithWriter(w).Printfln("Started %s, took %s",
		run.StartedAt.Local().Format(time.RFC3339), run.Duration().Round(time.Millisecond))

	if err := renderCounts(w, run.Records, run.Updated, run.Unchanged, run.Skipped, run.Failed); err != nil {
		return err
	}
	if len(outcomes) == 0 {
		return nil
	}
	if err := RenderOutcomes(w, outcomes); err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Error != "" {
			pterm.Error.WithWriter(w).Printfln("%s %s: %s", o.RecordURI, o.URL, o.Error)
		}
	}
	return nil
}

// SeedSummary is the result of looking a single URL up in the capture index
type SeedSummary struct {
	URL        string                `json:"url"`
	Resolution *archiveit.Resolution `json:"resolution,omitempty"`
	ReplayURL  string                `json:"replay_url"`
	Summary    archiveit.Summary     `json:"summary"`
}

// RenderSeed prints where a URL resolved and its capture range
func RenderSeed(w io.Writer, s SeedSummary) error {
	pterm.DefaultSection.WithWriter(w).Println(s.URL)
	data := pterm.TableData{}
	if s.Resolution != nil {
		data = append(data,
			[]string{"Collection", strconv.Itoa(s.Resolution.Collection)},
			[]string{"Match", string(s.Resolution.Match)},
		)
		if s.Resolution.Match == archiveit.MatchInferred {
			data = append(data, []string{"Inferred from", fmt.Sprintf("%d seed(s) on %s", s.Resolution.Siblings, s.Resolution.Domain)})
		}
	}
	data = append(data,
		[]string{"Begin", s.Summary.Begin},
		[]string{"End", s.Summary.End},
		[]string{"Captures", strconv.Itoa(s.Summary.Count)},
		[]string{"Replay", s.ReplayURL},
	)
	return pterm.DefaultTable.WithWriter(w).WithData(data).Render()
}

func renderCounts(w io.Writer, records, updated, unchanged, skipped, failed int) error {
	data := pterm.TableData{
		{"Records", "Updated", "Unchanged", "Skipped", "Failed"},
		{strconv.Itoa(records), strconv.Itoa(updated), strconv.Itoa(unchanged), strconv.Itoa(skipped), strconv.Itoa(failed)},
	}
	return pterm.DefaultTable.WithWriter(w).WithHasHeader().WithData(data).Render()
}

func statusLabel(s reconcile.Status) string {
	switch {
	case s == reconcile.StatusUpdated:
		return pterm.Green(string(s))
	case s == reconcile.StatusFailed:
		return pterm.Red(string(s))
	case s.Skipped():
		return pterm.Yellow(string(s))
	}
	return string(s)
}

func digitalObjectLabel(o reconcile.Outcome) string {
	if o.DigitalObjectLinked {
		return "(would create)"
	}
	return o.DigitalObject
}

func countOrBlank(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
