package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/gnames/mycocurate/internal/iologger"
	"github.com/gnames/mycocurate/internal/iotesting"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	home := iotesting.SetupTempHome(t)
	t.Setenv("MYCOCURATE_API_WORKERS", "7")
	t.Setenv("MYCOCURATE_ORTHOGROUPS_THRESHOLD", "0.9")

	dataDir := filepath.Join(home, "data")
	logs := filepath.Join(dataDir, "logs", "iprscan_logs")
	iotesting.WriteFile(t,
		filepath.Join(logs, "iprscan_Psost1.submit.log"),
		"The job is split into 2 pieces\nsubjob 1 OK\n",
	)

	root := getRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"iprscan", "--print"})
	require.NoError(t, root.Execute())

	assert.FileExists(t, config.ConfigFilePath(home))
	assert.FileExists(t, config.BuscoSchemasFilePath(home))
	assert.FileExists(t, filepath.Join(config.LogDir(home), iologger.LogFileName))

	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, 7, cfg.API.Workers)
	assert.Equal(t, 0.9, cfg.Orthogroups.Threshold)
	assert.True(t, cfg.WithPrint)

	assert.FileExists(t, filepath.Join(dataDir, "logs", "iprscan_summary.csv"))
	assert.Contains(t, buf.String(), "Psost1")
}

func TestBootstrapStageError(t *testing.T) {
	iotesting.SetupTempHome(t)

	root := getRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"trees", "-j", "2"})
	assert.Error(t, root.Execute())
	assert.Equal(t, 2, cfg.JobsNumber)
}
