package aspace

import (
	"context"
	"strconv"

	"github.com/gwu-libraries/wasync/errors"
)

// ArchivalObjectURI builds the URI of an archival object
func ArchivalObjectURI(repoID, id int) string {
	return "/repositories/" + strconv.Itoa(repoID) + "/archival_objects/" + strconv.Itoa(id)
}

// GetArchivalObject fetches a record by URI
func (c *Client) GetArchivalObject(ctx context.Context, uri string) (*ArchivalObject, error) {
	var ao ArchivalObject
	if err := c.get(ctx, uri, nil, &ao); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", uri)
	}
	return &ao, nil
}

// SaveArchivalObject posts the full record back to its URI
func (c *Client) SaveArchivalObject(ctx context.Context, ao *ArchivalObject) (*UpdateResult, error) {
	if ao.URI == "" {
		return nil, errors.New("cannot save a record without a uri")
	}
	var result UpdateResult
	if err := c.post(ctx, ao.URI, ao, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s", ao.URI)
	}
	return &result, nil
}

// GetAncestor fetches a parent archival object or resource.
// Resources decode into the same shape; their other keys are preserved.
func (c *Client) GetAncestor(ctx context.Context, uri string) (*ArchivalObject, error) {
	return c.GetArchivalObject(ctx, uri)
}

// SaveAncestor writes an ancestor back
func (c *Client) SaveAncestor(ctx context.Context, ancestor *ArchivalObject) (*UpdateResult, error) {
	return c.SaveArchivalObject(ctx, ancestor)
}

// Ancestors returns the parent and resource URIs of a record, nearest first.
// A record directly under its resource has no parent.
func Ancestors(ao *ArchivalObject) []string {
	var uris []string
	if ao.Parent != nil && ao.Parent.Ref != "" {
		uris = append(uris, ao.Parent.Ref)
	}
	if ao.Resource != nil && ao.Resource.Ref != "" {
		uris = append(uris, ao.Resource.Ref)
	}
	return uris
}
