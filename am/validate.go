package am

import (
	"net/url"

	"github.com/gwu-libraries/wasync/errors"
)

// Validate checks that the configuration is usable for a reconciliation run
func (c *Config) Validate() error {
	if err := validateURL("aspace.base_url", c.ASpace.BaseURL); err != nil {
		return err
	}
	if c.ASpace.Username == "" {
		return invalid("aspace.username cannot be empty")
	}
	if c.ASpace.Repository <= 0 {
		return invalid("aspace.repository must be > 0, got %d", c.ASpace.Repository)
	}

	if err := validateURL("archiveit.partner_api_url", c.ArchiveIt.PartnerAPIURL); err != nil {
		return err
	}
	if err := validateURL("archiveit.wayback_url", c.ArchiveIt.WaybackURL); err != nil {
		return err
	}

	switch c.Reconcile.DateMatchMode {
	case DateMatchByLabel, DateMatchFirstSlot:
	default:
		return invalid("reconcile.date_match_mode must be %q or %q, got %q",
			DateMatchByLabel, DateMatchFirstSlot, c.Reconcile.DateMatchMode)
	}
	if c.Reconcile.DateMatchMode == DateMatchByLabel && c.Reconcile.CaptureDateLabel == "" {
		return invalid("reconcile.capture_date_label cannot be empty when date_match_mode is %q", DateMatchByLabel)
	}
	if c.Reconcile.Subject == "" {
		return invalid("reconcile.subject cannot be empty")
	}
	if c.Reconcile.ExtentType == "" {
		return invalid("reconcile.extent_type cannot be empty")
	}
	if len(c.Reconcile.Sources) == 0 {
		return invalid("reconcile.sources must list at least one source")
	}

	seen := make(map[string]bool, len(c.Reconcile.Sources))
	for i, s := range c.Reconcile.Sources {
		if s.Label == "" {
			return invalid("reconcile.sources[%d].label cannot be empty", i)
		}
		if seen[s.Label] {
			return invalid("reconcile.sources[%d].label %q is duplicated", i, s.Label)
		}
		seen[s.Label] = true

		switch s.Index {
		case IndexArchiveIt:
		case IndexInternetArchive:
			if err := validateURL("internet_archive.cdx_url", c.InternetArchive.CDXURL); err != nil {
				return err
			}
		default:
			return invalid("reconcile.sources[%d].index must be %q or %q, got %q",
				i, IndexArchiveIt, IndexInternetArchive, s.Index)
		}
	}

	// Timeout: 0 would mean no timeout at all, which hangs runs on a stalled server
	if c.HTTP.TimeoutSeconds <= 0 {
		return invalid("http.timeout_seconds must be > 0, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.HTTP.RequestsPerMinute < 0 {
		return invalid("http.requests_per_minute must be >= 0, got %d", c.HTTP.RequestsPerMinute)
	}

	if c.Database.Enabled && c.Database.Path == "" {
		return invalid("database.path cannot be empty when database.enabled is true")
	}

	return nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), errors.ErrInvalidConfig)
}

func validateURL(key, raw string) error {
	if raw == "" {
		return invalid("%s cannot be empty", key)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("%s must be an absolute http(s) URL, got %q", key, raw)
	}
	return nil
}
