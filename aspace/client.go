// Package aspace is a client for the ArchivesSpace backend API, limited to
// the records and subrecords web archive reconciliation touches.
package aspace

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/internal/httpclient"
	"github.com/gwu-libraries/wasync/logger"
)

// SessionHeader carries the session token on every authenticated request
const SessionHeader = "X-ArchivesSpace-Session"

// Config holds ArchivesSpace backend connection settings
type Config struct {
	BaseURL    string // backend API root, e.g. http://localhost:8089
	Username   string
	Password   string
	HTTPClient *httpclient.SaferClient // nil = SaferClient with 30s timeout
	Logger     *zap.SugaredLogger      // nil = nop logger
}

// Client is an ArchivesSpace backend API client
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger

	mu      sync.Mutex
	session string
}

// UpdateResult is the body ArchivesSpace returns for create and update calls
type UpdateResult struct {
	Status      string   `json:"status"`
	ID          int      `json:"id"`
	URI         string   `json:"uri"`
	LockVersion int      `json:"lock_version"`
	Warnings    []string `json:"warnings,omitempty"`
}

// NewClient creates an ArchivesSpace client. Call Login before other methods.
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
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: hc,
		logger:     log,
	}
}

// Login obtains a session token
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{}
	form.Set("password", c.password)

	endpoint := c.baseURL + "/users/" + url.PathEscape(c.username) + "/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithHint(errors.Wrap(err, "ArchivesSpace login failed"),
			"check aspace.base_url points at the backend API (usually port 8089)")
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		return errors.WithHint(errors.Wrapf(err, "ArchivesSpace login failed for %s", c.username),
			"check aspace.username and WASYNC_ASPACE_PASSWORD")
	}
	defer resp.Body.Close()

	var body struct {
		Session string `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return errors.Wrap(err, "failed to decode login response")
	}
	if body.Session == "" {
		return errors.New("login response did not include a session")
	}

	c.mu.Lock()
	c.session = body.Session
	c.mu.Unlock()

	c.logger.Infow("Logged in to ArchivesSpace", "user", c.username)
	return nil
}

func (c *Client) sessionToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// get fetches path and decodes the JSON response into out
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", path)
	}
	return c.do(req, path, out)
}

// post sends body as JSON to path and decodes the response into out
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "failed to encode body for %s", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	if token := c.sessionToken(); token != "" {
		req.Header.Set(SessionHeader, token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, path)
	}

	if err := httpclient.CheckStatus(resp); err != nil {
		fields := []interface{}{
			logger.FieldMethod, req.Method,
			logger.FieldPath, path,
			logger.FieldError, err.Error(),
		}
		if statusErr, ok := httpclient.AsStatusError(err); ok {
			fields = append(fields, logger.FieldStatus, statusErr.StatusCode, logger.FieldBody, statusErr.Body)
		}
		c.logger.Debugw("ArchivesSpace request failed", fields...)
		return errors.Wrapf(err, "%s %s", req.Method, path)
	}
	defer resp.Body.Close()

	c.logger.Debugw("ArchivesSpace request",
		logger.FieldMethod, req.Method,
		logger.FieldPath, path,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode response for %s", path)
	}
	return nil
}
