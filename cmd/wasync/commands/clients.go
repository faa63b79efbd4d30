package commands

import (
	"context"
	"time"

	"github.com/gwu-libraries/wasync/am"
	"github.com/gwu-libraries/wasync/archiveit"
	"github.com/gwu-libraries/wasync/aspace"
	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/internal/httpclient"
	"github.com/gwu-libraries/wasync/internal/util"
	"github.com/gwu-libraries/wasync/logger"
	"github.com/gwu-libraries/wasync/reconcile"
	"github.com/gwu-libraries/wasync/version"
)

// loadConfig returns the cascaded configuration, validated
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithHint(err, "check the effective settings with: wasync am show")
	}
	return cfg, nil
}

// newHTTPClient builds the transport shared by every remote client
func newHTTPClient(cfg *am.Config) *httpclient.SaferClient {
	userAgent := cfg.HTTP.UserAgent
	if userAgent == "" {
		userAgent = "wasync"
	}
	return httpclient.NewSaferClientWithOptions(
		time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second,
		httpclient.SaferClientOptions{
			BlockPrivateIP:    util.Ptr(cfg.HTTP.BlockPrivateIP),
			RequestsPerMinute: cfg.HTTP.RequestsPerMinute,
			UserAgent:         version.Get().UserAgent(userAgent),
		},
	)
}

// newCatalog creates an ArchivesSpace client and logs in
func newCatalog(ctx context.Context, cfg *am.Config, hc *httpclient.SaferClient) (*aspace.Client, error) {
	client := aspace.NewClient(aspace.Config{
		BaseURL:    cfg.ASpace.BaseURL,
		Username:   cfg.ASpace.Username,
		Password:   cfg.ASpace.Password,
		HTTPClient: hc,
		Logger:     logger.ComponentLogger("aspace"),
	})
	if err := client.Login(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func newArchiveIt(cfg *am.Config, hc *httpclient.SaferClient) *archiveit.Client {
	return archiveit.NewClient(archiveit.Config{
		PartnerAPIURL: cfg.ArchiveIt.PartnerAPIURL,
		WaybackURL:    cfg.ArchiveIt.WaybackURL,
		Username:      cfg.ArchiveIt.Username,
		Password:      cfg.ArchiveIt.Password,
		HTTPClient:    hc,
		Logger:        logger.ComponentLogger("archiveit"),
	})
}

// indexes holds the capture index behind each source kind
type indexes struct {
	archiveIt reconcile.Index
	public    reconcile.Index
}

func newIndexes(cfg *am.Config, ai *archiveit.Client, hc *httpclient.SaferClient) indexes {
	return indexes{
		archiveIt: ai,
		public: archiveit.NewPublicIndex(
			cfg.InternetArchive.CDXURL,
			cfg.InternetArchive.ReplayURL,
			hc,
			logger.ComponentLogger("wayback"),
		),
	}
}

// buildOptions maps configuration onto orchestrator options
func buildOptions(cfg *am.Config, idx indexes, dryRun bool) (reconcile.Options, error) {
	rc := cfg.Reconcile
	opts := reconcile.Options{
		RepoID:              cfg.ASpace.Repository,
		Account:             cfg.ArchiveIt.Account,
		Subject:             rc.Subject,
		DateMatchMode:       reconcile.DateMatchMode(rc.DateMatchMode),
		CaptureDateLabel:    rc.CaptureDateLabel,
		AncestorDateLabel:   rc.AncestorDateLabel,
		ExtentType:          rc.ExtentType,
		URLNoteType:         rc.URLNoteType,
		AccessNoteType:      rc.AccessNoteType,
		AccessNoteLabel:     rc.AccessNoteLabel,
		AcquisitionNoteType: rc.AcquisitionNoteType,
		DryRun:              dryRun,
	}

	for _, sc := range rc.Sources {
		src := reconcile.Source{
			Label:           sc.Label,
			Kind:            sc.Index,
			AccessNote:      sc.AccessNote,
			AcquisitionNote: sc.AcquisitionNote,
		}
		switch sc.Index {
		case am.IndexArchiveIt:
			src.Index = idx.archiveIt
			src.ResolveSeeds = true
		case am.IndexInternetArchive:
			src.Index = idx.public
		default:
			return reconcile.Options{}, errors.Mark(
				errors.Newf("source %q has unknown index %q", sc.Label, sc.Index),
				errors.ErrInvalidConfig)
		}
		opts.Sources = append(opts.Sources, src)
	}
	return opts, nil
}
