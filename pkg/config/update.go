package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, WithPrint).
// Used for round-tripping config.yaml ↔ Config conversions.
//
// Zero values are treated as unset, so zero delay or zero minimal
// length can only come from CLI flags.
// Max length goes before min length, otherwise a raised minimum
// could be rejected against the default maximum.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.DataDir
	if s != "" {
		res = append(res, OptDataDir(s))
	}

	s = c.Portal.URL
	if s != "" {
		res = append(res, OptPortalURL(s))
	}
	s = c.Portal.Spreadsheet
	if s != "" {
		res = append(res, OptPortalSpreadsheet(s))
	}
	s = c.Portal.UserAgent
	if s != "" {
		res = append(res, OptPortalUserAgent(s))
	}

	s = c.API.URL
	if s != "" {
		res = append(res, OptAPIURL(s))
	}
	s = c.API.Token
	if s != "" {
		res = append(res, OptAPIToken(s))
	}
	i = c.API.PageSize
	if i > 0 {
		res = append(res, OptAPIPageSize(i))
	}
	i = c.API.DelayMs
	if i > 0 {
		res = append(res, OptAPIDelayMs(i))
	}
	i = c.API.Workers
	if i > 0 {
		res = append(res, OptAPIWorkers(i))
	}

	i = c.Filter.MaxLength
	if i > 0 {
		res = append(res, OptFilterMaxLength(i))
	}
	i = c.Filter.MinLength
	if i > 0 {
		res = append(res, OptFilterMinLength(i))
	}

	if f := c.Orthogroups.Threshold; f > 0 {
		res = append(res, OptOrthogroupsThreshold(f))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
