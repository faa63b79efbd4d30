package aspace

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/logger"
)

// RecordRef is one search hit
type RecordRef struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	PrimaryType string `json:"primary_type"`
}

type searchPage struct {
	FirstPage int         `json:"first_page"`
	LastPage  int         `json:"last_page"`
	ThisPage  int         `json:"this_page"`
	Results   []RecordRef `json:"results"`
}

// QuoteTerm wraps a multi-word term in double quotes unless it already is
func QuoteTerm(term string) string {
	if !strings.Contains(term, " ") {
		return term
	}
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return term
	}
	return `"` + term + `"`
}

// SubjectQuery builds the query selecting archival objects tagged with subject
func SubjectQuery(subject string) string {
	return "primary_type:archival_object AND subjects:" + QuoteTerm(subject)
}

// Search runs query against a repository's search index and returns every
// hit across all result pages
func (c *Client) Search(ctx context.Context, repoID int, query string) ([]RecordRef, error) {
	path := "/repositories/" + strconv.Itoa(repoID) + "/search"

	var refs []RecordRef
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "search cancelled")
		}

		params := url.Values{}
		params.Set("q", query)
		params.Set("page", strconv.Itoa(page))

		var resp searchPage
		if err := c.get(ctx, path, params, &resp); err != nil {
			return nil, errors.Wrapf(err, "search page %d", page)
		}
		refs = append(refs, resp.Results...)

		c.logger.Debugw("Search page",
			logger.FieldQuery, query,
			logger.FieldPage, page,
			logger.FieldCount, len(resp.Results))

		if resp.LastPage <= page {
			break
		}
	}

	c.logger.Infow("Search complete", logger.FieldQuery, query, logger.FieldCount, len(refs))
	return refs, nil
}
