package archiveit

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/gwu-libraries/wasync/errors"
)

// Seed is one crawl target registered with Archive-It
type Seed struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	Collection int    `json:"collection"`
}

// Match describes how a URL was tied to a collection
type Match string

const (
	MatchExact    Match = "exact"
	MatchInferred Match = "inferred"
)

// Resolution is the outcome of resolving a URL against the seed list
type Resolution struct {
	Collection int    `json:"collection_id"`
	Match      Match  `json:"match"`
	Domain     string `json:"domain,omitempty"`   // registrable domain used for inference
	Siblings   int    `json:"siblings,omitempty"` // seeds sharing Domain
}

// Resolve finds the collection a URL was crawled under.
//
// An exact, case-sensitive seed URL match wins. Otherwise every seed on the
// same registrable domain votes for its collection and the most frequent
// collection is returned, ties going to the one seen first. Seeds without a
// usable host never vote. Returns ErrSeedNotFound when nothing matches.
func Resolve(seeds []Seed, target string) (Resolution, error) {
	for _, s := range seeds {
		if s.URL == target {
			return Resolution{Collection: s.Collection, Match: MatchExact}, nil
		}
	}

	domain, err := RegistrableDomain(target)
	if err != nil {
		return Resolution{}, errors.Mark(errors.Wrapf(err, "cannot infer collection for %q", target), errors.ErrSeedNotFound)
	}

	counts := make(map[int]int)
	var order []int
	siblings := 0
	for _, s := range seeds {
		d, err := RegistrableDomain(s.URL)
		if err != nil || d != domain {
			continue
		}
		siblings++
		if counts[s.Collection] == 0 {
			order = append(order, s.Collection)
		}
		counts[s.Collection]++
	}

	if siblings == 0 {
		return Resolution{}, errors.Mark(errors.Newf("no seed on domain %s for %q", domain, target), errors.ErrSeedNotFound)
	}

	best := order[0]
	for _, coll := range order[1:] {
		if counts[coll] > counts[best] {
			best = coll
		}
	}

	return Resolution{
		Collection: best,
		Match:      MatchInferred,
		Domain:     domain,
		Siblings:   siblings,
	}, nil
}

// RegistrableDomain returns the eTLD+1 of a URL's host, e.g. "gwu.edu" for
// "https://library.gwu.edu/x". Scheme-less input such as "a.com/x" is accepted.
// Hosts that are themselves public suffixes or IP literals are returned as-is.
func RegistrableDomain(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(err, "invalid URL")
	}

	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return "", errors.Newf("URL %q has no host", raw)
	}

	if net.ParseIP(host) != nil {
		return host, nil
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host, nil
	}
	return domain, nil
}
