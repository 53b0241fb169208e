package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDataDir sets the root directory of pipeline artifacts.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.DataDir = s
		}
	}
}

// OptPortalURL sets the page with the portal catalog table.
func OptPortalURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Portal URL", s) {
			c.Portal.URL = s
		}
	}
}

// OptPortalSpreadsheet sets a local copy of the portal catalog
// used as a fallback.
func OptPortalSpreadsheet(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Portal Spreadsheet", s) {
			c.Portal.Spreadsheet = s
		}
	}
}

// OptPortalUserAgent sets the User-Agent header for the catalog request.
func OptPortalUserAgent(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Portal User Agent", s) {
			c.Portal.UserAgent = s
		}
	}
}

// OptAPIURL sets the base URL of the file-listing API.
func OptAPIURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API URL", s) {
			c.API.URL = s
		}
	}
}

// OptAPIToken sets the Authorization token of the file-listing API.
func OptAPIToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("API Token", s) {
			c.API.Token = s
		}
	}
}

// OptAPIPageSize sets the number of files requested per page.
func OptAPIPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("API Page Size", i) {
			c.API.PageSize = i
		}
	}
}

// OptAPIDelayMs sets the pause between page requests in milliseconds.
// Zero disables the pause.
func OptAPIDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("API Delay", i) {
			c.API.DelayMs = i
		}
	}
}

// OptAPIWorkers sets how many organisms are fetched concurrently.
func OptAPIWorkers(i int) Option {
	return func(c *Config) {
		if isValidInt("API Workers", i) {
			c.API.Workers = i
		}
	}
}

// OptFilterMinLength sets the smallest kept sequence length.
// Values above the current maximum are rejected.
func OptFilterMinLength(i int) Option {
	return func(c *Config) {
		if !isValidNonNegative("Filter Min Length", i) {
			return
		}
		if i > c.Filter.MaxLength {
			gn.Warn(
				"<em>Filter Min Length</em> %d is larger than max length %d, ignoring",
				i, c.Filter.MaxLength,
			)
			return
		}
		c.Filter.MinLength = i
	}
}

// OptFilterMaxLength sets the largest kept sequence length.
// Values below the current minimum are rejected.
func OptFilterMaxLength(i int) Option {
	return func(c *Config) {
		if !isValidInt("Filter Max Length", i) {
			return
		}
		if i < c.Filter.MinLength {
			gn.Warn(
				"<em>Filter Max Length</em> %d is smaller than min length %d, ignoring",
				i, c.Filter.MinLength,
			)
			return
		}
		c.Filter.MaxLength = i
	}
}

// OptOrthogroupsThreshold sets the fraction of genomes that must carry
// exactly one gene of a single-copy orthogroup. Valid range is (0, 1].
func OptOrthogroupsThreshold(f float64) Option {
	return func(c *Config) {
		if f <= 0 || f > 1 {
			gn.Warn(
				"<em>Orthogroups Threshold</em> must be in (0, 1], ignoring %v", f,
			)
			return
		}
		c.Orthogroups.Threshold = f
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptWithPrint toggles printing of summary tables to STDOUT.
// Runtime-only field - not in ToOptions().
func OptWithPrint(b bool) Option {
	return func(c *Config) {
		c.WithPrint = b
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
