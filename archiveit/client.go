package archiveit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/internal/httpclient"
	"github.com/gwu-libraries/wasync/logger"
)

// Config holds Archive-It connection settings
type Config struct {
	PartnerAPIURL string // e.g. https://partner.archive-it.org/api
	WaybackURL    string // e.g. https://wayback.archive-it.org
	Username      string
	Password      string
	HTTPClient    *httpclient.SaferClient // nil = SaferClient with 30s timeout
	Logger        *zap.SugaredLogger      // nil = nop logger
}

// Client talks to the Archive-It partner API and the Archive-It Wayback CDX index
type Client struct {
	partnerURL string
	waybackURL string
	username   string
	password   string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger
}

// NewClient creates an Archive-It client
func NewClient(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = httpclient.NewSaferClient(30 * time.Second)
	}
	return &Client{
		partnerURL: strings.TrimRight(cfg.PartnerAPIURL, "/"),
		waybackURL: strings.TrimRight(cfg.WaybackURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: hc,
		logger:     log,
	}
}

// ListSeeds returns every seed of the account, oldest first
func (c *Client) ListSeeds(ctx context.Context, account string) ([]Seed, error) {
	params := url.Values{}
	if account != "" {
		params.Set("account", account)
	}
	params.Set("sort", "created_date")
	params.Set("limit", "-1")

	endpoint := c.partnerURL + "/seed?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build seed request")
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seeds")
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		if statusErr, ok := httpclient.AsStatusError(err); ok && statusErr.StatusCode == http.StatusUnauthorized {
			err = errors.WithHint(err, "check archiveit.username and WASYNC_ARCHIVEIT_PASSWORD")
		}
		return nil, errors.Wrap(err, "failed to list seeds")
	}
	defer resp.Body.Close()

	var seeds []Seed
	if err := json.NewDecoder(resp.Body).Decode(&seeds); err != nil {
		return nil, errors.Wrap(err, "failed to decode seed list")
	}

	c.logger.Infow("Fetched seed list",
		logger.FieldCount, len(seeds),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return seeds, nil
}

// FetchCaptures queries the collection's CDX timemap for a URL
func (c *Client) FetchCaptures(ctx context.Context, collection int, target string) ([]Capture, error) {
	endpoint := c.waybackURL + "/" + strconv.Itoa(collection) + "/timemap/cdx"
	return fetchCDX(ctx, c.httpClient, c.logger, endpoint, target)
}

// ReplayURL returns the Wayback listing of every capture of a URL in a collection
func (c *Client) ReplayURL(collection int, target string) string {
	return c.waybackURL + "/" + strconv.Itoa(collection) + "/*/" + target
}

func fetchCDX(ctx context.Context, hc *httpclient.SaferClient, log *zap.SugaredLogger, endpoint, target string) ([]Capture, error) {
	params := url.Values{}
	params.Set("url", target)
	params.Set("fl", "timestamp,length")

	start := time.Now()
	resp, err := hc.Get(ctx, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, errors.Wrapf(err, "CDX query for %s", target)
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		// The index answers 404 for URLs it never captured
		if errors.IsNotFoundError(err) {
			log.Debugw("CDX index has no entry", logger.FieldURL, target)
			return nil, nil
		}
		return nil, errors.Mark(errors.Wrapf(err, "CDX query for %s", target), errors.ErrTransport)
	}
	defer resp.Body.Close()

	captures, err := ParseCDX(resp.Body)
	if err != nil {
		return nil, errors.WrapTransport(err, "CDX query for "+target)
	}

	log.Debugw("CDX query complete",
		logger.FieldURL, target,
		logger.FieldCount, len(captures),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return captures, nil
}
