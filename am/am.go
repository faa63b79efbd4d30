package am

// Config represents the wasync configuration
type Config struct {
	ASpace          ASpaceConfig          `mapstructure:"aspace" json:"aspace" toml:"aspace" yaml:"aspace"`
	ArchiveIt       ArchiveItConfig       `mapstructure:"archiveit" json:"archiveit" toml:"archiveit" yaml:"archiveit"`
	InternetArchive InternetArchiveConfig `mapstructure:"internet_archive" json:"internet_archive" toml:"internet_archive" yaml:"internet_archive"`
	Reconcile       ReconcileConfig       `mapstructure:"reconcile" json:"reconcile" toml:"reconcile" yaml:"reconcile"`
	HTTP            HTTPConfig            `mapstructure:"http" json:"http" toml:"http" yaml:"http"`
	Database        DatabaseConfig        `mapstructure:"database" json:"database" toml:"database" yaml:"database"`
}

// ASpaceConfig configures the ArchivesSpace backend API connection
type ASpaceConfig struct {
	BaseURL    string `mapstructure:"base_url" json:"base_url" toml:"base_url" yaml:"base_url"` // Backend API root, no trailing slash
	Username   string `mapstructure:"username" json:"username" toml:"username" yaml:"username"`
	Password   string `mapstructure:"password" json:"password" toml:"password" yaml:"password"`
	Repository int    `mapstructure:"repository" json:"repository" toml:"repository" yaml:"repository"` // Repository ID searched for web archive records
}

// ArchiveItConfig configures the Archive-It partner API and Wayback index
type ArchiveItConfig struct {
	Account       string `mapstructure:"account" json:"account" toml:"account" yaml:"account"`
	Username      string `mapstructure:"username" json:"username" toml:"username" yaml:"username"`
	Password      string `mapstructure:"password" json:"password" toml:"password" yaml:"password"`
	PartnerAPIURL string `mapstructure:"partner_api_url" json:"partner_api_url" toml:"partner_api_url" yaml:"partner_api_url"`
	WaybackURL    string `mapstructure:"wayback_url" json:"wayback_url" toml:"wayback_url" yaml:"wayback_url"`
}

// InternetArchiveConfig configures the public Wayback Machine index
type InternetArchiveConfig struct {
	CDXURL    string `mapstructure:"cdx_url" json:"cdx_url" toml:"cdx_url" yaml:"cdx_url"`
	ReplayURL string `mapstructure:"replay_url" json:"replay_url" toml:"replay_url" yaml:"replay_url"`
}

// Date match modes for locating the capture-date slot on a record
const (
	DateMatchByLabel   = "by_label"
	DateMatchFirstSlot = "first_slot"
)

// Capture index kinds a source can point at
const (
	IndexArchiveIt       = "archive-it"
	IndexInternetArchive = "internet-archive"
)

// ReconcileConfig controls which records are selected and what values are written
type ReconcileConfig struct {
	Subject           string `mapstructure:"subject" json:"subject" toml:"subject" yaml:"subject"` // Subject term selecting web archive records
	DateMatchMode     string `mapstructure:"date_match_mode" json:"date_match_mode" toml:"date_match_mode" yaml:"date_match_mode"`
	CaptureDateLabel  string `mapstructure:"capture_date_label" json:"capture_date_label" toml:"capture_date_label" yaml:"capture_date_label"`
	AncestorDateLabel string `mapstructure:"ancestor_date_label" json:"ancestor_date_label" toml:"ancestor_date_label" yaml:"ancestor_date_label"`
	ExtentType        string `mapstructure:"extent_type" json:"extent_type" toml:"extent_type" yaml:"extent_type"`

	URLNoteType         string `mapstructure:"url_note_type" json:"url_note_type" toml:"url_note_type" yaml:"url_note_type"` // Note type whose text holds archived URLs
	AccessNoteType      string `mapstructure:"access_note_type" json:"access_note_type" toml:"access_note_type" yaml:"access_note_type"`
	AccessNoteLabel     string `mapstructure:"access_note_label" json:"access_note_label" toml:"access_note_label" yaml:"access_note_label"`
	AcquisitionNoteType string `mapstructure:"acquisition_note_type" json:"acquisition_note_type" toml:"acquisition_note_type" yaml:"acquisition_note_type"`

	Sources []SourceConfig `mapstructure:"sources" json:"sources" toml:"sources" yaml:"sources"`
}

// SourceConfig binds a URL note label to a capture index and the note text
// written to records captured by it
type SourceConfig struct {
	Label           string `mapstructure:"label" json:"label" toml:"label" yaml:"label"`
	Index           string `mapstructure:"index" json:"index" toml:"index" yaml:"index"` // archive-it | internet-archive
	AccessNote      string `mapstructure:"access_note" json:"access_note" toml:"access_note" yaml:"access_note"`
	AcquisitionNote string `mapstructure:"acquisition_note" json:"acquisition_note" toml:"acquisition_note" yaml:"acquisition_note"`
}

// HTTPConfig configures the shared HTTP transport
type HTTPConfig struct {
	TimeoutSeconds    int    `mapstructure:"timeout_seconds" json:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" json:"requests_per_minute" toml:"requests_per_minute" yaml:"requests_per_minute"` // 0 = unlimited
	BlockPrivateIP    bool   `mapstructure:"block_private_ip" json:"block_private_ip" toml:"block_private_ip" yaml:"block_private_ip"`
	UserAgent         string `mapstructure:"user_agent" json:"user_agent" toml:"user_agent" yaml:"user_agent"`
}

// DatabaseConfig configures the SQLite run-history ledger
type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled" toml:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" json:"path" toml:"path" yaml:"path"`
}

// SourceByLabel returns the source configured for a URL note label
func (c *ReconcileConfig) SourceByLabel(label string) (SourceConfig, bool) {
	for _, s := range c.Sources {
		if s.Label == label {
			return s, true
		}
	}
	return SourceConfig{}, false
}

// Redacted returns a copy with credentials masked, for display
func (c Config) Redacted() Config {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.ASpace.Password = mask(c.ASpace.Password)
	c.ArchiveIt.Password = mask(c.ArchiveIt.Password)
	c.Reconcile.Sources = append([]SourceConfig(nil), c.Reconcile.Sources...)
	return c
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
