package archiveit

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/internal/httpclient"
)

// PublicIndex reads the Internet Archive's public Wayback Machine.
// It has no collections, so the collection argument is ignored.
type PublicIndex struct {
	cdxURL     string
	replayURL  string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger
}

// NewPublicIndex creates a reader for the public Wayback CDX API
func NewPublicIndex(cdxURL, replayURL string, hc *httpclient.SaferClient, log *zap.SugaredLogger) *PublicIndex {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if hc == nil {
		hc = httpclient.NewSaferClient(30 * time.Second)
	}
	return &PublicIndex{
		cdxURL:     strings.TrimRight(cdxURL, "/"),
		replayURL:  strings.TrimRight(replayURL, "/"),
		httpClient: hc,
		logger:     log,
	}
}

// FetchCaptures queries the public CDX API for a URL
func (p *PublicIndex) FetchCaptures(ctx context.Context, _ int, target string) ([]Capture, error) {
	return fetchCDX(ctx, p.httpClient, p.logger, p.cdxURL, target)
}

// ReplayURL returns the public Wayback listing for a URL
func (p *PublicIndex) ReplayURL(_ int, target string) string {
	return p.replayURL + "/*/" + target
}
