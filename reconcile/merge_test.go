package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwu-libraries/wasync/aspace"
)

func TestFormatExpression(t *testing.T) {
	assert.Equal(t, "2019-01-01 - 2020-06-01", FormatExpression("2019-01-01", "2020-06-01"))
	assert.Equal(t, "2019-01-01", FormatExpression("2019-01-01", ""))
	assert.Equal(t, "", FormatExpression("", ""))
}

func TestMergeDates_AppendsMissingSlot(t *testing.T) {
	ao := &aspace.ArchivalObject{
		Dates: []aspace.Date{{Label: "creation", Begin: "1990"}},
	}

	changed := MergeDates(ao, DateMatchByLabel, "capture", "2019-01-01", "2020-06-01")

	assert.True(t, changed)
	require.Len(t, ao.Dates, 2)
	assert.Equal(t, "creation", ao.Dates[0].Label, "unrelated date must be left alone")
	assert.Equal(t, aspace.Date{
		JSONModelType: aspace.ModelDate,
		Label:         "capture",
		DateType:      "inclusive",
		Begin:         "2019-01-01",
		End:           "2020-06-01",
		Expression:    "2019-01-01 - 2020-06-01",
	}, ao.Dates[1])
}

func TestMergeDates_UpdatesOnlyMismatches(t *testing.T) {
	ao := &aspace.ArchivalObject{
		Dates: []aspace.Date{{
			Label:      "capture",
			DateType:   "inclusive",
			Begin:      "2019-01-01",
			End:        "2019-12-31",
			Expression: "2019-01-01 - 2019-12-31",
		}},
	}

	assert.True(t, MergeDates(ao, DateMatchByLabel, "capture", "2019-01-01", "2020-06-01"))
	assert.Equal(t, "2019-01-01", ao.Dates[0].Begin)
	assert.Equal(t, "2020-06-01", ao.Dates[0].End)
	assert.Equal(t, "2019-01-01 - 2020-06-01", ao.Dates[0].Expression)

	assert.False(t, MergeDates(ao, DateMatchByLabel, "capture", "2019-01-01", "2020-06-01"), "second merge is a no-op")
	assert.Len(t, ao.Dates, 1)
}

func TestMergeDates_SingleBecomesInclusive(t *testing.T) {
	ao := &aspace.ArchivalObject{
		Dates: []aspace.Date{{Label: "capture", DateType: "single", Begin: "2019-01-01"}},
	}

	assert.True(t, MergeDates(ao, DateMatchByLabel, "capture", "2019-01-01", "2019-03-01"))
	assert.Equal(t, "inclusive", ao.Dates[0].DateType)
}

func TestMergeDates_FirstSlot(t *testing.T) {
	ao := &aspace.ArchivalObject{
		Dates: []aspace.Date{
			{Label: "creation", DateType: "inclusive", Begin: "2000", End: "2001"},
			{Label: "capture", DateType: "inclusive", Begin: "2019-01-01", End: "2020-06-01"},
		},
	}

	assert.True(t, MergeDates(ao, DateMatchFirstSlot, "capture", "2019-01-01", "2020-06-01"))
	assert.Equal(t, "2019-01-01", ao.Dates[0].Begin)
	assert.Equal(t, "creation", ao.Dates[0].Label, "first slot keeps its label")

	empty := &aspace.ArchivalObject{}
	assert.True(t, MergeDates(empty, DateMatchFirstSlot, "capture", "2019-01-01", "2019-01-01"))
	require.Len(t, empty.Dates, 1)
	assert.Equal(t, "capture", empty.Dates[0].Label)
}

func TestMergeExtent(t *testing.T) {
	ao := &aspace.ArchivalObject{
		Extents: []aspace.Extent{{ExtentType: "linear_feet", Number: "1", Portion: "part"}},
	}

	assert.True(t, MergeExtent(ao, "web capture(s)", 2))
	require.Len(t, ao.Extents, 2)
	assert.Equal(t, aspace.Extent{
		JSONModelType: aspace.ModelExtent,
		Portion:       "whole",
		Number:        "2",
		ExtentType:    "web capture(s)",
	}, ao.Extents[1])

	assert.False(t, MergeExtent(ao, "web capture(s)", 2))

	assert.True(t, MergeExtent(ao, "web capture(s)", 5))
	assert.Equal(t, "5", ao.Extents[1].Number)
	assert.Equal(t, "1", ao.Extents[0].Number)
}

func TestMergeNote(t *testing.T) {
	t.Run("creates published note", func(t *testing.T) {
		ao := &aspace.ArchivalObject{}

		assert.True(t, MergeNote(ao, "accessrestrict", "Access Requirements", "Use replay."))
		require.Len(t, ao.Notes, 1)
		n := ao.Notes[0]
		assert.Equal(t, aspace.ModelNoteMultipart, n.JSONModelType)
		assert.Equal(t, "accessrestrict", n.Type)
		assert.Equal(t, "Access Requirements", n.Label)
		require.NotNil(t, n.Publish)
		assert.True(t, *n.Publish)
		require.Len(t, n.Subnotes, 1)
		assert.Equal(t, "Use replay.", n.Subnotes[0].Content)
	})

	t.Run("replaces first text subnote only", func(t *testing.T) {
		ao := &aspace.ArchivalObject{Notes: []aspace.Note{{
			JSONModelType: aspace.ModelNoteMultipart,
			Type:          "acqinfo",
			Subnotes: []aspace.Subnote{
				{JSONModelType: "note_chronology"},
				{JSONModelType: aspace.ModelNoteText, Content: "old"},
				{JSONModelType: aspace.ModelNoteText, Content: "kept"},
			},
		}}}

		assert.True(t, MergeNote(ao, "acqinfo", "", "new"))
		subs := ao.Notes[0].Subnotes
		assert.Equal(t, "new", subs[1].Content)
		assert.Equal(t, "kept", subs[2].Content)

		assert.False(t, MergeNote(ao, "acqinfo", "", "new"))
	})

	t.Run("adds subnote when none is text", func(t *testing.T) {
		ao := &aspace.ArchivalObject{Notes: []aspace.Note{{
			JSONModelType: aspace.ModelNoteMultipart,
			Type:          "acqinfo",
		}}}

		assert.True(t, MergeNote(ao, "acqinfo", "", "text"))
		require.Len(t, ao.Notes, 1)
		require.Len(t, ao.Notes[0].Subnotes, 1)
		assert.Equal(t, "text", ao.Notes[0].Subnotes[0].Content)
	})

	t.Run("label must match when given", func(t *testing.T) {
		ao := &aspace.ArchivalObject{Notes: []aspace.Note{{
			JSONModelType: aspace.ModelNoteMultipart,
			Type:          "accessrestrict",
			Label:         "Other",
			Subnotes:      []aspace.Subnote{{JSONModelType: aspace.ModelNoteText, Content: "x"}},
		}}}

		assert.True(t, MergeNote(ao, "accessrestrict", "Access Requirements", "y"))
		require.Len(t, ao.Notes, 2)
		assert.Equal(t, "x", ao.Notes[0].Subnotes[0].Content)
	})

	t.Run("single part notes are ignored", func(t *testing.T) {
		ao := &aspace.ArchivalObject{Notes: []aspace.Note{{
			JSONModelType: "note_singlepart",
			Type:          "acqinfo",
		}}}

		assert.True(t, MergeNote(ao, "acqinfo", "", "text"))
		assert.Len(t, ao.Notes, 2)
	})
}

func TestHasDigitalObject(t *testing.T) {
	ao := &aspace.ArchivalObject{}
	assert.False(t, HasDigitalObject(ao))

	ao.Instances = append(ao.Instances, aspace.Instance{InstanceType: "box"})
	assert.False(t, HasDigitalObject(ao))

	ao.Instances = append(ao.Instances, aspace.Instance{
		InstanceType:  aspace.InstanceTypeDigitalObject,
		DigitalObject: &aspace.Ref{Ref: "/repositories/2/digital_objects/1"},
	})
	assert.True(t, HasDigitalObject(ao))
}
