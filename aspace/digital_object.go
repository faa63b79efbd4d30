package aspace

import (
	"context"
	"strconv"

	"github.com/gwu-libraries/wasync/errors"
	"github.com/gwu-libraries/wasync/internal/httpclient"
	"github.com/gwu-libraries/wasync/logger"
)

// UseStatementReplay marks a file version as a web archive replay link
const UseStatementReplay = "webarchives_access_replay"

// NewReplayDigitalObject builds a published digital object with one replay file version
func NewReplayDigitalObject(fileURI, identifier, title string) DigitalObject {
	return DigitalObject{
		JSONModelType:   ModelDigitalObject,
		Title:           title,
		DigitalObjectID: identifier,
		Publish:         true,
		FileVersions: []FileVersion{{
			JSONModelType:         ModelFileVersion,
			FileURI:               fileURI,
			UseStatement:          UseStatementReplay,
			XlinkActuateAttribute: "onRequest",
			XlinkShowAttribute:    "new",
			Publish:               true,
			IsRepresentative:      false,
		}},
	}
}

// HasFileURI reports whether any file version points at uri
func (do *DigitalObject) HasFileURI(uri string) bool {
	for _, fv := range do.FileVersions {
		if fv.FileURI == uri {
			return true
		}
	}
	return false
}

// CreateDigitalObject creates a replay digital object and returns its URI
func (c *Client) CreateDigitalObject(ctx context.Context, repoID int, fileURI, identifier, title string) (string, error) {
	path := "/repositories/" + strconv.Itoa(repoID) + "/digital_objects"
	obj := NewReplayDigitalObject(fileURI, identifier, title)

	var result UpdateResult
	if err := c.post(ctx, path, obj, &result); err != nil {
		fields := []interface{}{logger.FieldReplayURL, fileURI, logger.FieldError, err.Error()}
		if statusErr, ok := httpclient.AsStatusError(err); ok {
			fields = append(fields, logger.FieldStatus, statusErr.StatusCode, logger.FieldBody, statusErr.Body)
		}
		c.logger.Warnw("Failed to create digital object", fields...)
		return "", errors.Wrap(err, "failed to create digital object")
	}
	if result.URI == "" {
		return "", errors.New("digital object created without a uri in the response")
	}

	c.logger.Infow("Created digital object", "uri", result.URI, logger.FieldReplayURL, fileURI)
	return result.URI, nil
}

// AttachDigitalObject appends a digital object instance to the record and saves it.
// The in-memory record only gains the instance once the save succeeds.
func (c *Client) AttachDigitalObject(ctx context.Context, ref string, ao *ArchivalObject) (*UpdateResult, error) {
	updated := *ao
	updated.Instances = append(append([]Instance(nil), ao.Instances...), Instance{
		JSONModelType: ModelInstance,
		InstanceType:  InstanceTypeDigitalObject,
		DigitalObject: &Ref{Ref: ref},
	})

	result, err := c.SaveArchivalObject(ctx, &updated)
	if err != nil {
		fields := []interface{}{logger.FieldRecordURI, ao.URI, "digital_object", ref, logger.FieldError, err.Error()}
		if statusErr, ok := httpclient.AsStatusError(err); ok {
			fields = append(fields, logger.FieldStatus, statusErr.StatusCode, logger.FieldBody, statusErr.Body)
		}
		c.logger.Warnw("Failed to attach digital object", fields...)
		return nil, errors.Wrapf(err, "failed to attach %s", ref)
	}

	ao.Instances = updated.Instances
	ao.LockVersion = result.LockVersion
	return result, nil
}

// GetDigitalObject fetches a digital object by URI
func (c *Client) GetDigitalObject(ctx context.Context, ref string) (*DigitalObject, error) {
	var obj DigitalObject
	if err := c.get(ctx, ref, nil, &obj); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", ref)
	}
	return &obj, nil
}
