// Package config provides configuration management for mycocurate.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - General: data_dir, jobs_number
//   - Portal: url, spreadsheet, user_agent
//   - API: url, token, page_size, delay_ms, workers
//   - Filter: min_length, max_length
//   - Orthogroups: threshold
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - WithPrint (iprscan command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use MYCOCURATE_ prefix with underscores for nesting:
//
//	MYCOCURATE_DATA_DIR=/data/mycocosm
//	MYCOCURATE_API_TOKEN="Bearer ..."
//	MYCOCURATE_API_WORKERS=5
//	MYCOCURATE_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete mycocurate configuration.
type Config struct {
	// DataDir is the root of all pipeline artifacts (CSV tables, JSON
	// cache, sequence files, summaries). Every stage derives its paths
	// from it, see vars.go.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Portal contains settings for the MycoCosm portal catalog.
	Portal PortalConfig `mapstructure:"portal" yaml:"portal"`

	// API contains settings for the JGI file-listing API.
	API APIConfig `mapstructure:"api" yaml:"api"`

	// Filter contains sequence length limits.
	Filter FilterConfig `mapstructure:"filter" yaml:"filter"`

	// Orthogroups contains single-copy orthogroup selection settings.
	Orthogroups OrthogroupsConfig `mapstructure:"orthogroups" yaml:"orthogroups"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for CPU-bound
	// operations (gene tree cleanup).
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// WithPrint renders summaries as a table on STDOUT in addition
	// to CSV output.
	WithPrint bool

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// PortalConfig describes where the portal catalog comes from.
type PortalConfig struct {
	// URL is the page with the MycoCosm fungi table.
	URL string `mapstructure:"url" yaml:"url"`

	// Spreadsheet is a locally saved copy of the catalog (xlsx or csv).
	// It is used when the live page cannot be downloaded.
	Spreadsheet string `mapstructure:"spreadsheet" yaml:"spreadsheet"`

	// UserAgent is sent with the catalog request. The portal rejects
	// some default client user agents.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// APIConfig contains JGI file-listing API settings.
type APIConfig struct {
	// URL is the base of the mycocosm file list endpoint.
	URL string `mapstructure:"url" yaml:"url"`

	// Token is sent as the Authorization header.
	Token string `mapstructure:"token" yaml:"token"`

	// PageSize is the number of files requested per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// DelayMs is a fixed pause between page requests of one organism.
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// Workers is the number of organisms fetched concurrently.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// FilterConfig keeps the closed length interval for sequences.
type FilterConfig struct {
	MinLength int `mapstructure:"min_length" yaml:"min_length"`
	MaxLength int `mapstructure:"max_length" yaml:"max_length"`
}

// OrthogroupsConfig contains settings of single-copy orthogroup selection.
type OrthogroupsConfig struct {
	// Threshold is the fraction of genomes that must have exactly
	// one gene in an orthogroup.
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		DataDir: "local_data",
		Portal: PortalConfig{
			URL:       "https://mycocosm.jgi.doe.gov/fungi/fungi.info.html",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) mycocurate",
		},
		API: APIConfig{
			URL:      "https://files.jgi.doe.gov/mycocosm_file_list/",
			PageSize: 50,
			DelayMs:  1000,
			Workers:  5,
		},
		Filter: FilterConfig{
			MinLength: 50,
			MaxLength: 10_000,
		},
		Orthogroups: OrthogroupsConfig{
			Threshold: 0.75,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
