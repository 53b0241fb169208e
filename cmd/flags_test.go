package cmd

import (
	"testing"

	"github.com/gnames/mycocurate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		min  int
		max  int
	}{
		{"no flags", nil, 50, 10_000},
		{"min only", []string{"--min", "100"}, 100, 10_000},
		{"max only", []string{"--max", "5000"}, 50, 5000},
		{"lower both", []string{"--min", "10", "--max", "20"}, 10, 20},
		{"raise both", []string{"--min", "20000", "--max", "30000"}, 20_000, 30_000},
		{"min above max", []string{"--min", "200", "--max", "100"}, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg = config.New()
			cmd := getFilterCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			applyFlags(cmd, filterFlags)
			assert.Equal(t, tt.min, cfg.Filter.MinLength)
			assert.Equal(t, tt.max, cfg.Filter.MaxLength)
		})
	}
}

func TestAPIWorkersFlag(t *testing.T) {
	cfg = config.New()
	cmd := getFetchCmd()
	require.NoError(t, cmd.ParseFlags(nil))
	applyFlags(cmd, apiWorkersFlag)
	assert.Equal(t, 5, cfg.API.Workers)

	cmd = getFetchCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-j", "12"}))
	applyFlags(cmd, apiWorkersFlag)
	assert.Equal(t, 12, cfg.API.Workers)
}

func TestSpreadsheetFlag(t *testing.T) {
	cfg = config.New()
	cmd := getDumpCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-s", "fungi.xlsx", "-j", "2"}))
	applyFlags(cmd, spreadsheetFlag, apiWorkersFlag)
	assert.Equal(t, "fungi.xlsx", cfg.Portal.Spreadsheet)
	assert.Equal(t, 2, cfg.API.Workers)
}
