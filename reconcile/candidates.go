package reconcile

import (
	"net/url"
	"strings"

	"github.com/gwu-libraries/wasync/aspace"
)

// Candidate is an archived URL listed on a record, with the source whose note listed it
type Candidate struct {
	URL    string
	Source *Source
}

// CandidateURLs extracts archived URLs from notes of noteType whose label
// names a configured source. Note text is split on whitespace and every
// absolute http(s) token is kept once, in record order.
func CandidateURLs(ao *aspace.ArchivalObject, noteType string, sources []Source) []Candidate {
	byLabel := make(map[string]*Source, len(sources))
	for i := range sources {
		byLabel[sources[i].Label] = &sources[i]
	}

	seen := make(map[string]bool)
	var out []Candidate
	for _, n := range ao.Notes {
		if n.Type != noteType {
			continue
		}
		src, ok := byLabel[n.Label]
		if !ok {
			continue
		}
		for _, sn := range n.Subnotes {
			if sn.JSONModelType != aspace.ModelNoteText {
				continue
			}
			for _, token := range strings.Fields(sn.Content) {
				if !isArchivableURL(token) || seen[token] {
					continue
				}
				seen[token] = true
				out = append(out, Candidate{URL: token, Source: src})
			}
		}
	}
	return out
}

func isArchivableURL(token string) bool {
	u, err := url.Parse(token)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
