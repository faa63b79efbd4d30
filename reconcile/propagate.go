package reconcile

import (
	"github.com/gwu-libraries/wasync/aspace"
)

// EnsureCovers widens the ancestor's first date so it spans the child range.
// It never narrows a range, and a second call with the same bounds is a no-op.
// Resources are kept at year precision. An ancestor without dates gets a new
// inclusive date with the given label.
func EnsureCovers(ancestor *aspace.ArchivalObject, childBegin, childEnd, label string) bool {
	if ancestor.IsResource() {
		childBegin = year(childBegin)
		childEnd = year(childEnd)
	}
	if childBegin == "" && childEnd == "" {
		return false
	}

	if len(ancestor.Dates) == 0 {
		ancestor.Dates = append(ancestor.Dates, aspace.Date{
			JSONModelType: aspace.ModelDate,
			Label:         label,
			DateType:      dateTypeInclusive,
			Begin:         childBegin,
			End:           childEnd,
			Expression:    FormatExpression(childBegin, childEnd),
		})
		return true
	}

	d := &ancestor.Dates[0]
	changed := false
	if childBegin != "" && (d.Begin == "" || !coversBegin(d.Begin, childBegin)) {
		d.Begin = childBegin
		changed = true
	}
	if childEnd != "" && (d.End == "" || !coversEnd(d.End, childEnd)) {
		d.End = childEnd
		changed = true
	}
	if !changed {
		return false
	}

	if d.End != "" && d.DateType == dateTypeSingle {
		d.DateType = dateTypeInclusive
	}
	d.Expression = FormatExpression(d.Begin, d.End)
	return true
}

// compareDates compares ISO dates over their shared precision, so "2019"
// neither precedes nor follows "2019-05-01"
func compareDates(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	switch {
	case a[:n] < b[:n]:
		return -1
	case a[:n] > b[:n]:
		return 1
	}
	return 0
}

// coversBegin reports whether an ancestor begin is no later than the child's.
// When both agree over their shared prefix the coarser value covers the finer
// one, so "2019" covers "2019-05-01" but "2019-05-01" does not cover "2019".
func coversBegin(ancestor, child string) bool {
	c := compareDates(ancestor, child)
	return c < 0 || (c == 0 && len(ancestor) <= len(child))
}

// coversEnd is coversBegin for the upper bound
func coversEnd(ancestor, child string) bool {
	c := compareDates(ancestor, child)
	return c > 0 || (c == 0 && len(ancestor) <= len(child))
}

func year(date string) string {
	if len(date) > 4 {
		return date[:4]
	}
	return date
}
