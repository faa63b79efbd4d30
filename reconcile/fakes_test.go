package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/aspace"
	"github.com/gwu-libraries/wasync/errors"
)

// fakeCatalog keeps records in memory and counts writes
type fakeCatalog struct {
	mu      sync.Mutex
	records map[string]*aspace.ArchivalObject
	objects map[string]*aspace.DigitalObject
	refs    []aspace.RecordRef

	searchErr error
	getErr    map[string]error
	saveErr   map[string]error
	createErr error
	attachErr error

	saves    map[string]int
	created  []aspace.DigitalObject
	attached map[string]string
	lastRepo int
}

func newFakeCatalog(records ...*aspace.ArchivalObject) *fakeCatalog {
	c := &fakeCatalog{
		records:  make(map[string]*aspace.ArchivalObject),
		objects:  make(map[string]*aspace.DigitalObject),
		getErr:   make(map[string]error),
		saveErr:  make(map[string]error),
		saves:    make(map[string]int),
		attached: make(map[string]string),
	}
	for _, r := range records {
		c.records[r.URI] = r.Clone()
	}
	return c
}

// tagged makes the given records the search results
func (c *fakeCatalog) tagged(uris ...string) *fakeCatalog {
	for _, uri := range uris {
		c.refs = append(c.refs, aspace.RecordRef{URI: uri, PrimaryType: aspace.ModelArchivalObject})
	}
	return c
}

func (c *fakeCatalog) Search(_ context.Context, _ int, _ string) ([]aspace.RecordRef, error) {
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.refs, nil
}

func (c *fakeCatalog) GetArchivalObject(_ context.Context, uri string) (*aspace.ArchivalObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.getErr[uri]; err != nil {
		return nil, err
	}
	r, ok := c.records[uri]
	if !ok {
		return nil, errors.Mark(errors.Newf("record %s not found", uri), errors.ErrNotFound)
	}
	return r.Clone(), nil
}

func (c *fakeCatalog) SaveArchivalObject(_ context.Context, ao *aspace.ArchivalObject) (*aspace.UpdateResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.saveErr[ao.URI]; err != nil {
		return nil, err
	}
	stored := ao.Clone()
	stored.LockVersion++
	c.records[ao.URI] = stored
	c.saves[ao.URI]++
	return &aspace.UpdateResult{Status: "Updated", URI: ao.URI, LockVersion: stored.LockVersion}, nil
}

func (c *fakeCatalog) GetAncestor(ctx context.Context, uri string) (*aspace.ArchivalObject, error) {
	return c.GetArchivalObject(ctx, uri)
}

func (c *fakeCatalog) SaveAncestor(ctx context.Context, ancestor *aspace.ArchivalObject) (*aspace.UpdateResult, error) {
	return c.SaveArchivalObject(ctx, ancestor)
}

func (c *fakeCatalog) CreateDigitalObject(_ context.Context, repoID int, fileURI, identifier, title string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createErr != nil {
		return "", c.createErr
	}
	do := aspace.NewReplayDigitalObject(fileURI, identifier, title)
	ref := fmt.Sprintf("/repositories/%d/digital_objects/%d", repoID, len(c.created)+1)
	do.URI = ref
	c.created = append(c.created, do)
	c.objects[ref] = &do
	c.lastRepo = repoID
	return ref, nil
}

func (c *fakeCatalog) AttachDigitalObject(ctx context.Context, ref string, ao *aspace.ArchivalObject) (*aspace.UpdateResult, error) {
	if c.attachErr != nil {
		return nil, c.attachErr
	}
	updated := ao.Clone()
	updated.Instances = append(updated.Instances, aspace.Instance{
		JSONModelType: aspace.ModelInstance,
		InstanceType:  aspace.InstanceTypeDigitalObject,
		DigitalObject: &aspace.Ref{Ref: ref},
	})
	res, err := c.SaveArchivalObject(ctx, updated)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.attached[ao.URI] = ref
	c.mu.Unlock()
	return res, nil
}

func (c *fakeCatalog) GetDigitalObject(_ context.Context, ref string) (*aspace.DigitalObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	do, ok := c.objects[ref]
	if !ok {
		return nil, errors.Mark(errors.Newf("digital object %s not found", ref), errors.ErrNotFound)
	}
	cp := *do
	return &cp, nil
}

func (c *fakeCatalog) record(uri string) *aspace.ArchivalObject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records[uri]
}

func (c *fakeCatalog) totalSaves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.saves {
		n += v
	}
	return n
}

type fakeSeeds struct {
	seeds []archiveit.Seed
	err   error
	calls int
}

func (s *fakeSeeds) ListSeeds(context.Context, string) ([]archiveit.Seed, error) {
	s.calls++
	return s.seeds, s.err
}

// fakeIndex serves captures keyed by URL
type fakeIndex struct {
	captures map[string][]archiveit.Capture
	errs     map[string]error
	queries  []string
}

func (i *fakeIndex) FetchCaptures(_ context.Context, collection int, url string) ([]archiveit.Capture, error) {
	i.queries = append(i.queries, fmt.Sprintf("%d %s", collection, url))
	if err := i.errs[url]; err != nil {
		return nil, err
	}
	return i.captures[url], nil
}

func (i *fakeIndex) ReplayURL(collection int, url string) string {
	return fmt.Sprintf("https://wayback.example.org/%d/*/%s", collection, url)
}

type fakeRecorder struct {
	reports []*RunReport
	err     error
}

func (r *fakeRecorder) SaveRun(_ context.Context, report *RunReport) error {
	r.reports = append(r.reports, report)
	return r.err
}

func transportError(msg string) error {
	return errors.WrapTransport(errors.New(msg), "fake request")
}

func captures(timestamps ...string) []archiveit.Capture {
	out := make([]archiveit.Capture, len(timestamps))
	for i, ts := range timestamps {
		out[i] = archiveit.Capture{Timestamp: ts, Length: "1024"}
	}
	return out
}

func urlNote(label string, urls string) aspace.Note {
	return aspace.Note{
		JSONModelType: aspace.ModelNoteMultipart,
		Type:          "phystech",
		Label:         label,
		Subnotes: []aspace.Subnote{{
			JSONModelType: aspace.ModelNoteText,
			Content:       urls,
		}},
	}
}
