package reconcile

import (
	"context"

	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/aspace"
)

// Catalog is the ArchivesSpace surface the orchestrator needs.
// *aspace.Client implements it.
type Catalog interface {
	Search(ctx context.Context, repoID int, query string) ([]aspace.RecordRef, error)
	GetArchivalObject(ctx context.Context, uri string) (*aspace.ArchivalObject, error)
	SaveArchivalObject(ctx context.Context, ao *aspace.ArchivalObject) (*aspace.UpdateResult, error)
	GetAncestor(ctx context.Context, uri string) (*aspace.ArchivalObject, error)
	SaveAncestor(ctx context.Context, ancestor *aspace.ArchivalObject) (*aspace.UpdateResult, error)
	CreateDigitalObject(ctx context.Context, repoID int, fileURI, identifier, title string) (string, error)
	AttachDigitalObject(ctx context.Context, ref string, ao *aspace.ArchivalObject) (*aspace.UpdateResult, error)
	GetDigitalObject(ctx context.Context, ref string) (*aspace.DigitalObject, error)
}

// Seeds lists the crawl seeds used to resolve URLs to collections.
// *archiveit.Client implements it.
type Seeds interface {
	ListSeeds(ctx context.Context, account string) ([]archiveit.Seed, error)
}

// Index reads captures of a URL and builds its replay link.
// *archiveit.Client and *archiveit.PublicIndex implement it.
type Index interface {
	FetchCaptures(ctx context.Context, collection int, url string) ([]archiveit.Capture, error)
	ReplayURL(collection int, url string) string
}

// Recorder persists finished run reports
type Recorder interface {
	SaveRun(ctx context.Context, report *RunReport) error
}

var (
	_ Catalog = (*aspace.Client)(nil)
	_ Seeds   = (*archiveit.Client)(nil)
	_ Index   = (*archiveit.Client)(nil)
	_ Index   = (*archiveit.PublicIndex)(nil)
)
