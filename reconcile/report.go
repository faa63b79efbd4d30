package reconcile

import (
	"time"

	"github.com/gwu-libraries/wasync/errors"
)

// Status is the result of reconciling one URL of a record
type Status string

const (
	StatusUpdated    Status = "updated"
	StatusUnchanged  Status = "unchanged"
	StatusNoURLs     Status = "no_urls"
	StatusNoSeed     Status = "no_seed"
	StatusNoCaptures Status = "no_captures"
	StatusIndexError Status = "index_error"
	StatusFailed     Status = "failed"
)

// Skipped reports whether the status is a skip transition rather than a result
func (s Status) Skipped() bool {
	switch s {
	case StatusNoURLs, StatusNoSeed, StatusNoCaptures, StatusIndexError:
		return true
	}
	return false
}

// Outcome records what happened to one candidate URL
type Outcome struct {
	RecordURI        string `json:"record_uri"`
	URL              string `json:"url,omitempty"`
	Source           string `json:"source,omitempty"`
	Collection       int    `json:"collection_id,omitempty"`
	Match            string `json:"match,omitempty"`
	Status           Status `json:"status"`
	Begin            string `json:"begin,omitempty"`
	End              string `json:"end,omitempty"`
	Captures         int    `json:"captures"`
	Changed          bool   `json:"changed"`
	AncestorsChanged int    `json:"ancestors_changed"`
	DigitalObject    string `json:"digital_object,omitempty"` // created this run
	Error            string `json:"error,omitempty"`

	// Set in dry-run when a digital object would have been created
	DigitalObjectLinked bool `json:"digital_object_linked,omitempty"`
}

// RunReport summarizes a reconciliation run
type RunReport struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Records   int `json:"records"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`

	Outcomes []Outcome      `json:"outcomes"`
	Errors   []*RecordError `json:"-"`
}

// Err returns ErrPartialFailure when any record failed
func (r *RunReport) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return errors.Mark(errors.Newf("%d of %d records failed", r.Failed, r.Records), errors.ErrPartialFailure)
}

func (r *RunReport) add(outcomes []Outcome, recErr *RecordError) {
	r.Records++
	r.Outcomes = append(r.Outcomes, outcomes...)

	if recErr != nil {
		r.Failed++
		r.Errors = append(r.Errors, recErr)
		return
	}

	skipped := true
	for _, o := range outcomes {
		if o.updated() {
			r.Updated++
			return
		}
		if !o.Status.Skipped() {
			skipped = false
		}
	}
	if skipped {
		r.Skipped++
	} else {
		r.Unchanged++
	}
}

func (o Outcome) updated() bool {
	return o.Changed || o.AncestorsChanged > 0 || o.DigitalObject != "" || o.DigitalObjectLinked
}

// RecordError is a per-record failure. The batch continues past it.
type RecordError struct {
	URI string
	Err error
}

func (e *RecordError) Error() string {
	return e.URI + ": " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
