package reconcile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/aspace"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/logger"
)

// Run modes recorded on reports
const (
	ModeAll    = "all"
	ModeSingle = "single"
)

// Source binds a URL note label to the index that captured its URLs
type Source struct {
	Label           string
	Kind            string // archive-it | internet-archive
	Index           Index
	ResolveSeeds    bool // Archive-It URLs need a collection before the index can be read
	AccessNote      string
	AcquisitionNote string
}

// Options controls record selection and the values written
type Options struct {
	RepoID  int
	Account string // Archive-It account for the seed list
	Subject string

	DateMatchMode     DateMatchMode
	CaptureDateLabel  string
	AncestorDateLabel string
	ExtentType        string

	URLNoteType         string
	AccessNoteType      string
	AccessNoteLabel     string
	AcquisitionNoteType string

	Sources []Source
	DryRun  bool
}

// Orchestrator drives reconciliation record by record
type Orchestrator struct {
	catalog  Catalog
	seeds    Seeds
	recorder Recorder
	opts     Options
	logger   *zap.SugaredLogger
	newID    func() string
	now      func() time.Time

	seedList []archiveit.Seed
}

// New creates an orchestrator. seeds may be nil when no source resolves seeds.
func New(catalog Catalog, seeds Seeds, opts Options, log *zap.SugaredLogger) *Orchestrator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Orchestrator{
		catalog: catalog,
		seeds:   seeds,
		opts:    opts,
		logger:  log,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder persists every finished report through r
func (o *Orchestrator) WithRecorder(r Recorder) *Orchestrator {
	o.recorder = r
	return o
}

// RunAll reconciles every record tagged with the configured subject
func (o *Orchestrator) RunAll(ctx context.Context) (*RunReport, error) {
	return o.run(ctx, ModeAll, func(ctx context.Context) ([]string, error) {
		refs, err := o.catalog.Search(ctx, o.opts.RepoID, aspace.SubjectQuery(o.opts.Subject))
		if err != nil {
			return nil, errors.Wrap(err, "failed to search for web archive records")
		}
		seen := make(map[string]bool, len(refs))
		uris := make([]string, 0, len(refs))
		for _, ref := range refs {
			if ref.URI == "" || seen[ref.URI] {
				continue
			}
			seen[ref.URI] = true
			uris = append(uris, ref.URI)
		}
		return uris, nil
	})
}

// RunRecord reconciles a single record
func (o *Orchestrator) RunRecord(ctx context.Context, uri string) (*RunReport, error) {
	return o.run(ctx, ModeSingle, func(context.Context) ([]string, error) {
		return []string{uri}, nil
	})
}

func (o *Orchestrator) run(ctx context.Context, mode string, list func(context.Context) ([]string, error)) (*RunReport, error) {
	report := &RunReport{
		ID:        o.newID(),
		Mode:      mode,
		DryRun:    o.opts.DryRun,
		StartedAt: o.now(),
	}
	ctx = logger.WithRunID(ctx, report.ID)
	log := logger.FromContext(ctx, o.logger)

	if err := o.loadSeeds(ctx); err != nil {
		return nil, err
	}

	uris, err := list(ctx)
	if err != nil {
		return nil, err
	}
	log.Infow("Starting run", "mode", mode, "dry_run", o.opts.DryRun, logger.FieldCount, len(uris))

	var interrupted error
	for _, uri := range uris {
		if err := ctx.Err(); err != nil {
			interrupted = errors.Wrap(err, "run interrupted")
			log.Warnw("Run interrupted between records", logger.FieldCount, report.Records)
			break
		}

		outcomes, recErr := o.processRecord(ctx, uri)
		if recErr != nil {
			log.Errorw("Record failed", logger.FieldRecordURI, uri, logger.FieldError, recErr.Err.Error())
		}
		report.add(outcomes, recErr)
	}

	report.FinishedAt = o.now()
	log.Infow("Run finished",
		"records", report.Records,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"skipped", report.Skipped,
		"failed", report.Failed)

	if o.recorder != nil {
		// Saved on a fresh context so an interrupted run is still recorded
		if err := o.recorder.SaveRun(context.WithoutCancel(ctx), report); err != nil {
			log.Warnw("Failed to record run history", logger.FieldError, err.Error())
		}
	}

	return report, interrupted
}

func (o *Orchestrator) loadSeeds(ctx context.Context) error {
	needed := false
	for _, s := range o.opts.Sources {
		if s.ResolveSeeds {
			needed = true
			break
		}
	}
	if !needed || o.seedList != nil {
		return nil
	}
	if o.seeds == nil {
		return errors.Mark(errors.New("a source resolves seeds but no seed lister is configured"), errors.ErrInvalidConfig)
	}

	seeds, err := o.seeds.ListSeeds(ctx, o.opts.Account)
	if err != nil {
		return errors.Wrap(err, "failed to fetch seed list")
	}
	o.seedList = seeds
	return nil
}

// urlFacts is what one captured candidate URL contributes to its record
type urlFacts struct {
	candidate  Candidate
	collection int
	summary    archiveit.Summary
	outcome    int // index into the record's outcomes
}

// processRecord inspects every candidate URL, then writes the combined
// capture facts once: the record's range spans all of its URLs and its
// extent counts every capture.
func (o *Orchestrator) processRecord(ctx context.Context, uri string) ([]Outcome, *RecordError) {
	ctx = logger.WithRecordURI(ctx, uri)
	log := logger.FromContext(ctx, o.logger)

	ao, err := o.catalog.GetArchivalObject(ctx, uri)
	if err != nil {
		return []Outcome{{RecordURI: uri, Status: StatusFailed, Error: err.Error()}}, &RecordError{URI: uri, Err: err}
	}

	candidates := CandidateURLs(ao, o.opts.URLNoteType, o.opts.Sources)
	if len(candidates) == 0 {
		log.Infow("No archived URLs listed on record")
		return []Outcome{{RecordURI: uri, Status: StatusNoURLs}}, nil
	}

	outcomes := make([]Outcome, 0, len(candidates))
	var (
		facts    []urlFacts
		failures []error
	)
	for _, c := range candidates {
		out, f, err := o.inspectURL(ctx, uri, c)
		switch {
		case err != nil:
			out.Status = StatusFailed
			out.Error = err.Error()
			failures = append(failures, err)
			log.Warnw("URL failed", logger.FieldURL, c.URL, logger.FieldError, err.Error())
		case f != nil:
			f.outcome = len(outcomes)
			facts = append(facts, *f)
		}
		outcomes = append(outcomes, out)
	}

	var recErr error
	if len(failures) > 0 {
		recErr = failures[0]
		if len(failures) > 1 {
			recErr = errors.Wrapf(recErr, "%d of %d URLs failed, first", len(failures), len(candidates))
		}
	}

	if len(facts) > 0 && ctx.Err() == nil {
		if err := o.applyFacts(ctx, ao, facts, outcomes); err != nil {
			for _, f := range facts {
				outcomes[f.outcome].Status = StatusFailed
				outcomes[f.outcome].Error = err.Error()
			}
			log.Warnw("Record update failed", logger.FieldError, err.Error())
			if recErr == nil {
				recErr = err
			}
		}
	}

	if recErr != nil {
		return outcomes, &RecordError{URI: uri, Err: recErr}
	}
	return outcomes, nil
}

// inspectURL resolves a candidate and summarizes its captures. A nil
// urlFacts with a nil error is a skip recorded on the outcome.
func (o *Orchestrator) inspectURL(ctx context.Context, uri string, c Candidate) (Outcome, *urlFacts, error) {
	out := Outcome{RecordURI: uri, URL: c.URL, Source: c.Source.Label}
	log := logger.FromContext(ctx, o.logger).With(logger.FieldURL, c.URL, logger.FieldSource, c.Source.Label)

	collection := 0
	if c.Source.ResolveSeeds {
		res, err := archiveit.Resolve(o.seedList, c.URL)
		if errors.IsSkip(err) {
			log.Infow("No seed or sibling seed for URL, skipping")
			out.Status = StatusNoSeed
			return out, nil, nil
		}
		if err != nil {
			return out, nil, err
		}
		collection = res.Collection
		out.Collection = res.Collection
		out.Match = string(res.Match)
		log.Debugw("Resolved collection", logger.FieldCollection, collection, logger.FieldMatch, res.Match)
	}

	captures, err := c.Source.Index.FetchCaptures(ctx, collection, c.URL)
	if err != nil {
		if ctx.Err() != nil {
			return out, nil, errors.Wrap(err, "capture query cancelled")
		}
		if !errors.IsTransportError(err) {
			return out, nil, err
		}
		log.Warnw("Capture index query failed, treating as no captures", logger.FieldError, err.Error())
		out.Status = StatusIndexError
		out.Error = err.Error()
		return out, nil, nil
	}

	summary, err := archiveit.Summarize(captures)
	if errors.IsSkip(err) {
		log.Infow("No captures for URL, skipping", logger.FieldCollection, collection)
		out.Status = StatusNoCaptures
		return out, nil, nil
	}
	if err != nil {
		return out, nil, err
	}
	out.Begin, out.End, out.Captures = summary.Begin, summary.End, summary.Count
	out.Status = StatusUnchanged
	return out, &urlFacts{candidate: c, collection: collection, summary: summary}, nil
}

// applyFacts merges the union of every URL's captures into the record,
// persists it, propagates the range and links a replay digital object.
// Notes and the replay link come from the first URL with captures, and the
// record-level effects are reported on its outcome.
func (o *Orchestrator) applyFacts(ctx context.Context, ao *aspace.ArchivalObject, facts []urlFacts, outcomes []Outcome) error {
	primary := facts[0]
	combined := primary.summary
	for _, f := range facts[1:] {
		combined = combined.Union(f.summary)
	}
	out := &outcomes[primary.outcome]
	log := logger.FromContext(ctx, o.logger)

	changed := o.merge(ao, primary.candidate.Source, combined)
	out.Changed = changed

	if changed && !o.opts.DryRun {
		if _, err := o.catalog.SaveArchivalObject(ctx, ao); err != nil {
			if errors.IsConflictError(err) {
				err = errors.WithHint(err, "the record was edited during the run; rerun to pick up the new version")
			}
			return errors.Wrap(err, "failed to save record")
		}
		fresh, err := o.catalog.GetArchivalObject(ctx, ao.URI)
		if err != nil {
			return errors.Wrap(err, "failed to re-fetch record after save")
		}
		ao = fresh
	}
	log.Infow("Reconciled capture facts",
		logger.FieldBegin, combined.Begin,
		logger.FieldEnd, combined.End,
		logger.FieldCount, combined.Count,
		"urls", len(facts),
		logger.FieldChanged, changed)

	out.AncestorsChanged = o.propagate(ctx, ao, combined)

	replayURL := primary.candidate.Source.Index.ReplayURL(primary.collection, primary.candidate.URL)
	ref, pending, err := o.ensureDigitalObject(ctx, ao, replayURL)
	if err != nil {
		return err
	}
	out.DigitalObject = ref
	out.DigitalObjectLinked = pending

	if out.updated() {
		out.Status = StatusUpdated
	}
	return nil
}

// merge applies every field group and reports whether any changed
func (o *Orchestrator) merge(ao *aspace.ArchivalObject, src *Source, s archiveit.Summary) bool {
	changed := false
	if MergeDates(ao, o.opts.DateMatchMode, o.opts.CaptureDateLabel, s.Begin, s.End) {
		changed = true
	}
	if MergeExtent(ao, o.opts.ExtentType, s.Count) {
		changed = true
	}
	if src.AccessNote != "" && MergeNote(ao, o.opts.AccessNoteType, o.opts.AccessNoteLabel, src.AccessNote) {
		changed = true
	}
	if src.AcquisitionNote != "" && MergeNote(ao, o.opts.AcquisitionNoteType, "", src.AcquisitionNote) {
		changed = true
	}
	return changed
}

// propagate widens the parent and resource ranges. Failures are logged, never returned.
func (o *Orchestrator) propagate(ctx context.Context, ao *aspace.ArchivalObject, s archiveit.Summary) int {
	log := logger.FromContext(ctx, o.logger)

	updated := 0
	for _, uri := range aspace.Ancestors(ao) {
		ancestor, err := o.catalog.GetAncestor(ctx, uri)
		if err != nil {
			log.Warnw("Failed to fetch ancestor", logger.FieldAncestor, uri, logger.FieldError, err.Error())
			continue
		}
		if !EnsureCovers(ancestor, s.Begin, s.End, o.opts.AncestorDateLabel) {
			continue
		}
		if !o.opts.DryRun {
			if _, err := o.catalog.SaveAncestor(ctx, ancestor); err != nil {
				log.Warnw("Failed to save ancestor", logger.FieldAncestor, uri, logger.FieldError, err.Error())
				continue
			}
		}
		updated++
		log.Infow("Widened ancestor date range",
			logger.FieldAncestor, uri,
			logger.FieldBegin, ancestor.Dates[0].Begin,
			logger.FieldEnd, ancestor.Dates[0].End)
	}
	return updated
}

// ensureDigitalObject creates and attaches a replay digital object when the
// record has none. An existing one is only checked, never changed.
// It returns the ref of an object created now, or pending in a dry run when
// one would have been created.
func (o *Orchestrator) ensureDigitalObject(ctx context.Context, ao *aspace.ArchivalObject, replayURL string) (ref string, pending bool, err error) {
	log := logger.FromContext(ctx, o.logger).With(logger.FieldReplayURL, replayURL)

	if inst, ok := ao.DigitalObjectInstance(); ok {
		obj, err := o.catalog.GetDigitalObject(ctx, inst.DigitalObject.Ref)
		if err != nil {
			log.Warnw("Failed to fetch attached digital object", "digital_object", inst.DigitalObject.Ref, logger.FieldError, err.Error())
			return "", false, nil
		}
		if !obj.HasFileURI(replayURL) {
			log.Warnw("Attached digital object does not link the current replay URL", "digital_object", inst.DigitalObject.Ref)
		}
		return "", false, nil
	}

	if o.opts.DryRun {
		log.Infow("Would create and attach a replay digital object")
		return "", true, nil
	}

	title := ao.Title
	if title == "" {
		title = ao.DisplayString
	}
	ref, err = o.catalog.CreateDigitalObject(ctx, o.opts.RepoID, replayURL, o.newID(), title)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to create digital object")
	}

	if _, err := o.catalog.AttachDigitalObject(ctx, ref, ao); err != nil {
		log.Warnw("Created digital object but could not attach it", "digital_object", ref, logger.FieldError, err.Error())
		return ref, false, nil
	}
	log.Infow("Attached replay digital object", "digital_object", ref)
	return ref, false, nil
}
