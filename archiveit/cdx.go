package archiveit

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gwu-libraries/wasync/errors"
)

const (
	timestampLayout = "20060102150405"
	dateLayout      = "2006-01-02"
)

// Capture is one row of a CDX response requested with fl=timestamp,length
type Capture struct {
	Timestamp string
	Length    string
}

// Summary condenses a capture list into the facts written to the catalog
type Summary struct {
	Begin string `json:"begin"`
	End   string `json:"end"`
	Count int    `json:"count"`
}

// ParseCDX reads whitespace-separated CDX rows.
// Rows that do not have exactly two fields are dropped.
func ParseCDX(r io.Reader) ([]Capture, error) {
	var captures []Capture
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		captures = append(captures, Capture{Timestamp: fields[0], Length: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read CDX response")
	}
	return captures, nil
}

// Earliest returns the date of the lexicographically smallest timestamp
func Earliest(captures []Capture) (string, error) {
	ts, err := sortedTimestamps(captures)
	if err != nil {
		return "", err
	}
	return formatTimestamp(ts[0])
}

// Latest returns the date of the lexicographically largest timestamp
func Latest(captures []Capture) (string, error) {
	ts, err := sortedTimestamps(captures)
	if err != nil {
		return "", err
	}
	return formatTimestamp(ts[len(ts)-1])
}

// Summarize returns begin, end and count, or ErrNoCaptures for an empty list
func Summarize(captures []Capture) (Summary, error) {
	begin, err := Earliest(captures)
	if err != nil {
		return Summary{}, err
	}
	end, err := Latest(captures)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Begin: begin, End: end, Count: len(captures)}, nil
}

// Union returns the range spanning both summaries with their counts added.
// Dates share the YYYY-MM-DD layout, so string order is date order.
func (s Summary) Union(other Summary) Summary {
	out := Summary{Begin: s.Begin, End: s.End, Count: s.Count + other.Count}
	if out.Begin == "" || (other.Begin != "" && other.Begin < out.Begin) {
		out.Begin = other.Begin
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

func sortedTimestamps(captures []Capture) ([]string, error) {
	if len(captures) == 0 {
		return nil, errors.ErrNoCaptures
	}
	ts := make([]string, len(captures))
	for i, c := range captures {
		ts[i] = c.Timestamp
	}
	sort.Strings(ts)
	return ts, nil
}

func formatTimestamp(ts string) (string, error) {
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return "", errors.Wrapf(err, "malformed capture timestamp %q", ts)
	}
	return t.Format(dateLayout), nil
}
