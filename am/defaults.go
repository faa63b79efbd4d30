package am

import (
	"github.com/spf13/viper"
)

// Default note text, as used by the GW Special Collections Research Center
const (
	defaultAccessNoteArchiveIt = `This item includes web archives data preserved in the WARC (Web ARChive) file format. To view and interact with these files, you will need to utilize web archival replay tools, like the "Wayback Machine." For alternative access or for obtaining the original WARC files, please contact the Special Collections Research Center. Please note, that WARC files may be large and difficult to work with. Requests for web archives data may take additional time to process.`
	defaultAccessNoteIA        = "Direct access to web archives data is not available. This data is managed directly by the Internet Archive and can only be accessed via replay mechanisms like the Wayback Machine."

	defaultAcqNoteArchiveIt = "This Web Archives data was captured by the GW Web Archives program using Internet Archive's 'Archive-it' service."
	defaultAcqNoteIA        = "Web Archives data was captured by the Internet Archive, not the GW web archiving program."
)

// DefaultSources returns the built-in URL note sources
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Label:           "Web Archives - SCRC",
			Index:           IndexArchiveIt,
			AccessNote:      defaultAccessNoteArchiveIt,
			AcquisitionNote: defaultAcqNoteArchiveIt,
		},
		{
			Label:           "Web Archives - Internet Archive",
			Index:           IndexInternetArchive,
			AccessNote:      defaultAccessNoteIA,
			AcquisitionNote: defaultAcqNoteIA,
		},
	}
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// ArchivesSpace
	v.SetDefault("aspace.base_url", "http://localhost:8089")
	v.SetDefault("aspace.repository", 2)

	// Archive-It
	v.SetDefault("archiveit.partner_api_url", "https://partner.archive-it.org/api")
	v.SetDefault("archiveit.wayback_url", "https://wayback.archive-it.org")

	// Internet Archive public Wayback
	v.SetDefault("internet_archive.cdx_url", "https://web.archive.org/cdx/search/cdx")
	v.SetDefault("internet_archive.replay_url", "https://web.archive.org/web")

	// Reconciliation policy
	v.SetDefault("reconcile.subject", "Web Archives")
	v.SetDefault("reconcile.date_match_mode", DateMatchByLabel)
	v.SetDefault("reconcile.capture_date_label", "capture")
	v.SetDefault("reconcile.ancestor_date_label", "creation")
	v.SetDefault("reconcile.extent_type", "web capture(s)")
	v.SetDefault("reconcile.url_note_type", "phystech")
	v.SetDefault("reconcile.access_note_type", "accessrestrict")
	v.SetDefault("reconcile.access_note_label", "Access Requirements")
	v.SetDefault("reconcile.acquisition_note_type", "acqinfo")
	v.SetDefault("reconcile.sources", sourcesAsMaps(DefaultSources()))

	// HTTP transport
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.requests_per_minute", 0)  // unlimited
	v.SetDefault("http.block_private_ip", false) // catalogs commonly live on the campus network
	v.SetDefault("http.user_agent", "wasync")

	// Run history
	v.SetDefault("database.enabled", true)
	v.SetDefault("database.path", "wasync.db")
}

// BindSensitiveEnvVars explicitly binds credentials to environment variables.
// These keys have no defaults, so AutomaticEnv alone would not surface them on Unmarshal.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("aspace.username", "WASYNC_ASPACE_USERNAME")
	v.BindEnv("aspace.password", "WASYNC_ASPACE_PASSWORD")
	v.BindEnv("archiveit.account", "WASYNC_ARCHIVEIT_ACCOUNT")
	v.BindEnv("archiveit.username", "WASYNC_ARCHIVEIT_USERNAME")
	v.BindEnv("archiveit.password", "WASYNC_ARCHIVEIT_PASSWORD")
}

// sourcesAsMaps converts sources to the generic form viper stores for
// array-of-tables values, so defaults and TOML-loaded values decode alike
func sourcesAsMaps(sources []SourceConfig) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(sources))
	for _, s := range sources {
		out = append(out, map[string]interface{}{
			"label":            s.Label,
			"index":            s.Index,
			"access_note":      s.AccessNote,
			"acquisition_note": s.AcquisitionNote,
		})
	}
	return out
}
