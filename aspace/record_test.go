package aspace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
	"lock_version": 4,
	"uri": "/repositories/2/archival_objects/1001",
	"jsonmodel_type": "archival_object",
	"title": "GW Libraries website",
	"level": "file",
	"publish": true,
	"ref_id": "aspace_abc123",
	"subjects": [{"ref": "/subjects/77"}],
	"dates": [
		{"jsonmodel_type": "date", "label": "capture", "date_type": "inclusive",
		 "begin": "2019-01-01", "end": "2020-06-01", "expression": "2019-01-01 - 2020-06-01",
		 "certainty": "approximate"}
	],
	"extents": [
		{"jsonmodel_type": "extent", "portion": "whole", "number": "2", "extent_type": "web capture(s)"}
	],
	"notes": [
		{"jsonmodel_type": "note_multipart", "type": "phystech", "label": "Web Archives - SCRC",
		 "persistent_id": "p1", "publish": true,
		 "subnotes": [{"jsonmodel_type": "note_text", "content": " https://library.gwu.edu/ \n https://gwtoday.gwu.edu/", "publish": true}]},
		{"jsonmodel_type": "note_singlepart", "type": "abstract", "content": ["An abstract"]}
	],
	"instances": [
		{"jsonmodel_type": "instance", "instance_type": "mixed_materials",
		 "sub_container": {"top_container": {"ref": "/repositories/2/top_containers/5"}}},
		{"jsonmodel_type": "instance", "instance_type": "digital_object",
		 "digital_object": {"ref": "/repositories/2/digital_objects/9", "_resolved": {"title": "x"}}}
	],
	"parent": {"ref": "/repositories/2/archival_objects/1000"},
	"resource": {"ref": "/repositories/2/resources/12"}
}`

func TestArchivalObject_RoundTripPreservesUnknownKeys(t *testing.T) {
	var ao ArchivalObject
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &ao))

	assert.Equal(t, "/repositories/2/archival_objects/1001", ao.URI)
	assert.Equal(t, 4, ao.LockVersion)
	require.Len(t, ao.Dates, 1)
	assert.Equal(t, "2019-01-01", ao.Dates[0].Begin)
	assert.Contains(t, ao.Extra, "level")
	assert.Contains(t, ao.Extra, "subjects")
	assert.NotContains(t, ao.Extra, "dates", "modeled keys are not duplicated into Extra")
	assert.Contains(t, ao.Dates[0].Extra, "certainty")

	out, err := json.Marshal(ao)
	require.NoError(t, err)
	assert.JSONEq(t, sampleRecord, string(out))
}

func TestArchivalObject_EditedFieldWins(t *testing.T) {
	var ao ArchivalObject
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &ao))

	ao.Extents[0].Number = "3"
	ao.Dates = append(ao.Dates, Date{JSONModelType: ModelDate, Label: "creation", DateType: "inclusive", Begin: "2001"})

	out, err := json.Marshal(ao)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &generic))
	extents := generic["extents"].([]interface{})
	assert.Equal(t, "3", extents[0].(map[string]interface{})["number"])
	assert.Len(t, generic["dates"], 2)
	assert.Equal(t, "file", generic["level"])
}

func TestDigitalObjectInstance(t *testing.T) {
	var ao ArchivalObject
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &ao))

	inst, ok := ao.DigitalObjectInstance()
	require.True(t, ok)
	assert.Equal(t, "/repositories/2/digital_objects/9", inst.DigitalObject.Ref)

	ao.Instances = ao.Instances[:1]
	_, ok = ao.DigitalObjectInstance()
	assert.False(t, ok)
}

func TestNotesByLabel(t *testing.T) {
	var ao ArchivalObject
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &ao))

	texts := ao.NotesByLabel("phystech", "Web Archives - SCRC")
	assert.Equal(t, []string{"https://library.gwu.edu/ \n https://gwtoday.gwu.edu/"}, texts)

	assert.Empty(t, ao.NotesByLabel("phystech", "Web Archives - Internet Archive"))
	assert.Len(t, ao.NotesByLabel("", "Web Archives - SCRC"), 1)
}

func TestIsResource(t *testing.T) {
	assert.True(t, (&ArchivalObject{URI: "/repositories/2/resources/12"}).IsResource())
	assert.True(t, (&ArchivalObject{JSONModelType: "resource"}).IsResource())
	assert.False(t, (&ArchivalObject{URI: "/repositories/2/archival_objects/1"}).IsResource())
}

func TestClone(t *testing.T) {
	var ao ArchivalObject
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &ao))

	clone := ao.Clone()
	assert.Equal(t, &ao, clone)

	clone.Dates[0].Begin = "1999-01-01"
	assert.Equal(t, "2019-01-01", ao.Dates[0].Begin)
}

func TestNewReplayDigitalObject(t *testing.T) {
	obj := NewReplayDigitalObject("https://wayback.archive-it.org/1/*/https://gwu.edu/", "id-1", "GW")

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"jsonmodel_type": "digital_object",
		"title": "GW",
		"digital_object_id": "id-1",
		"publish": true,
		"file_versions": [{
			"jsonmodel_type": "file_version",
			"file_uri": "https://wayback.archive-it.org/1/*/https://gwu.edu/",
			"use_statement": "webarchives_access_replay",
			"xlink_actuate_attribute": "onRequest",
			"xlink_show_attribute": "new",
			"publish": true,
			"is_representative": false
		}]
	}`, string(data))

	assert.True(t, obj.HasFileURI("https://wayback.archive-it.org/1/*/https://gwu.edu/"))
	assert.False(t, obj.HasFileURI("https://web.archive.org/web/*/https://gwu.edu/"))
}
