// Package config provides configuration loading and management.
package config

// Default values.
const (
	DefaultInventoryKey = "Inventory"
	DefaultIDKey        = "id"
	DefaultJobs         = 4
	DefaultReport       = "table"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty"`
}

// Config represents the idremap configuration.
// Loaded from ~/.idremap/config.yaml.
type Config struct {
	// OldCatalog is the directory (or afs URL) holding item.csv and
	// block.csv for the scheme documents are currently in.
	// Env: IDREMAP_OLD_CATALOG
	OldCatalog string `json:"oldCatalog,omitempty"`

	// NewCatalog is the catalog directory for the target scheme.
	// Env: IDREMAP_NEW_CATALOG
	NewCatalog string `json:"newCatalog,omitempty"`

	// DataDir is scanned for documents when none are named on the command line.
	// Env: IDREMAP_DATA_DIR
	DataDir string `json:"dataDir,omitempty"`

	// OutDir receives rewritten documents. Empty means rewrite in place.
	// Env: IDREMAP_OUT_DIR
	OutDir string `json:"outDir,omitempty"`

	// InventoryKey names the root entry to remap, matched ignoring case.
	InventoryKey string `json:"inventoryKey"`

	// IDKey names the Short tags that hold IDs.
	IDKey string `json:"idKey"`

	// Backup enables backups before in-place rewrites.
	Backup bool `json:"backup"`

	// Jobs bounds how many documents are processed at once.
	Jobs int `json:"jobs"`

	// Report is the report format: table, yaml or json.
	Report string `json:"report"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `idremap config init` to generate the initial config file.
func DefaultConfig() *Config {
	timestamps := true
	return &Config{
		InventoryKey: DefaultInventoryKey,
		IDKey:        DefaultIDKey,
		Backup:       true,
		Jobs:         DefaultJobs,
		Report:       DefaultReport,
		Log:          LogConfig{Timestamps: &timestamps},
	}
}

// ResolvedValue records where one configuration value came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
