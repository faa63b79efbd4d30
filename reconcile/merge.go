package reconcile

import (
	"strconv"

	"github.com/gwu-libraries/wasync/aspace"
)

// DateMatchMode selects which date subrecord holds the capture range
type DateMatchMode string

const (
	// DateMatchByLabel uses the date whose label equals the capture label
	DateMatchByLabel DateMatchMode = "by_label"
	// DateMatchFirstSlot uses the first date, whatever its label
	DateMatchFirstSlot DateMatchMode = "first_slot"
)

const (
	dateTypeInclusive = "inclusive"
	dateTypeSingle    = "single"
	portionWhole      = "whole"
)

// FormatExpression renders a date range: "begin - end", or begin alone
func FormatExpression(begin, end string) string {
	if begin != "" && end != "" {
		return begin + " - " + end
	}
	return begin
}

// MergeDates reconciles the capture range into the record.
// Only mismatched fields are written; a missing slot is appended.
func MergeDates(ao *aspace.ArchivalObject, mode DateMatchMode, label, begin, end string) bool {
	expression := FormatExpression(begin, end)

	if d := findDate(ao, mode, label); d != nil {
		changed := false
		if d.Begin != begin {
			d.Begin = begin
			changed = true
		}
		if d.End != end {
			d.End = end
			changed = true
		}
		if d.Expression != expression {
			d.Expression = expression
			changed = true
		}
		if changed && d.End != "" && d.DateType == dateTypeSingle {
			d.DateType = dateTypeInclusive
		}
		return changed
	}

	ao.Dates = append(ao.Dates, aspace.Date{
		JSONModelType: aspace.ModelDate,
		Label:         label,
		DateType:      dateTypeInclusive,
		Begin:         begin,
		End:           end,
		Expression:    expression,
	})
	return true
}

func findDate(ao *aspace.ArchivalObject, mode DateMatchMode, label string) *aspace.Date {
	if mode == DateMatchFirstSlot {
		if len(ao.Dates) > 0 {
			return &ao.Dates[0]
		}
		return nil
	}
	for i := range ao.Dates {
		if ao.Dates[i].Label == label {
			return &ao.Dates[i]
		}
	}
	return nil
}

// MergeExtent sets the count of the extent with the given type, creating it if needed
func MergeExtent(ao *aspace.ArchivalObject, extentType string, count int) bool {
	number := strconv.Itoa(count)

	for i := range ao.Extents {
		e := &ao.Extents[i]
		if e.ExtentType != extentType {
			continue
		}
		if e.Number == number {
			return false
		}
		e.Number = number
		return true
	}

	ao.Extents = append(ao.Extents, aspace.Extent{
		JSONModelType: aspace.ModelExtent,
		Portion:       portionWhole,
		Number:        number,
		ExtentType:    extentType,
	})
	return true
}

// MergeNote sets the text of a multipart note matched by type and, when given,
// label. Only the first text subnote is compared; later subnotes are left alone.
func MergeNote(ao *aspace.ArchivalObject, noteType, label, text string) bool {
	for i := range ao.Notes {
		n := &ao.Notes[i]
		if n.JSONModelType != aspace.ModelNoteMultipart || n.Type != noteType {
			continue
		}
		if label != "" && n.Label != label {
			continue
		}

		for j := range n.Subnotes {
			sn := &n.Subnotes[j]
			if sn.JSONModelType != aspace.ModelNoteText {
				continue
			}
			if sn.Content == text {
				return false
			}
			sn.Content = text
			return true
		}

		n.Subnotes = append(n.Subnotes, textSubnote(text))
		return true
	}

	published := true
	ao.Notes = append(ao.Notes, aspace.Note{
		JSONModelType: aspace.ModelNoteMultipart,
		Type:          noteType,
		Label:         label,
		Publish:       &published,
		Subnotes:      []aspace.Subnote{textSubnote(text)},
	})
	return true
}

func textSubnote(text string) aspace.Subnote {
	published := true
	return aspace.Subnote{
		JSONModelType: aspace.ModelNoteText,
		Content:       text,
		Publish:       &published,
	}
}

// HasDigitalObject reports whether a digital object is already attached
func HasDigitalObject(ao *aspace.ArchivalObject) bool {
	_, ok := ao.DigitalObjectInstance()
	return ok
}
