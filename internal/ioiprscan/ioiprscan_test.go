package ioiprscan_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/ioiprscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subjobs(status string, from, n int) string {
	var res string
	for i := from; i < from+n; i++ {
		res += fmt.Sprintf("  subjob %d   %s\n", i, status)
	}
	return res
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg  string
		text string
		res  []string
	}{
		{
			msg: "missing pieces",
			text: "Start\nthe JOB is split into  10 pieces\n" +
				subjobs("OK", 1, 7) + subjobs("failed", 8, 1),
			res: []string{"", "10", "7", "1", "2", "", ""},
		},
		{
			msg:  "all done",
			text: "The job is split into 2 pieces\n" + subjobs("OK", 1, 2),
			res:  []string{"", "2", "2", "0", "0", "", ""},
		},
		{
			msg:  "more results than pieces",
			text: "The job is split into 1 pieces\n" + subjobs("OK", 1, 3),
			res:  []string{"", "1", "3", "0", "0", "", ""},
		},
		{
			msg:  "no total",
			text: subjobs("OK", 1, 2),
			res:  []string{"", "", "2", "0", "", "", ""},
		},
	}

	for _, v := range tests {
		res := ioiprscan.Parse(v.text)
		assert.Equal(t, v.res, res.Values(), v.msg)
	}
}

func TestPortalFromName(t *testing.T) {
	assert.Equal(t, "Psost1", ioiprscan.PortalFromName("iprscan_Psost1.submit.log"))
	assert.Equal(t, "other.log", ioiprscan.PortalFromName("other.log"))
}

func TestSummarize(t *testing.T) {
	dir := t.TempDir()
	logs := map[string]string{
		"iprscan_Bbbb1.submit.log": "The job is split into 10 pieces\n" +
			subjobs("OK", 1, 7) + subjobs("FAILED", 8, 1),
		"iprscan_Aaoar1.submit.log": "The job is split into 1 pieces\n" +
			subjobs("OK", 1, 1),
		"unrelated.log": "The job is split into 5 pieces\n",
	}
	for k, v := range logs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v), 0644))
	}
	out := filepath.Join(t.TempDir(), "summary.csv")

	res, err := ioiprscan.Summarize(dir, out)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "Aaoar1", res[0].Portal)
	assert.Equal(t, "Bbbb1", res[1].Portal)
	assert.Equal(t, 2, res[1].Missing)

	tbl, err := iocsv.Read(out)
	require.NoError(t, err)
	assert.Equal(t, ioiprscan.Columns, tbl.Header)
	rows := tbl.Maps()
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[1]["missing_subjobs"])
	assert.Equal(t, filepath.Join(dir, "iprscan_Bbbb1.submit.log"), rows[1]["path"])

	txt := ioiprscan.Table(res)
	assert.Contains(t, txt, "missing_subjobs")
	assert.Contains(t, txt, "Bbbb1")
}

func TestSummarizeNoLogs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.csv")
	res, err := ioiprscan.Summarize(t.TempDir(), out)
	require.NoError(t, err)
	assert.Empty(t, res)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestSummarizeNoDir(t *testing.T) {
	_, err := ioiprscan.Summarize(filepath.Join(t.TempDir(), "none"), "out.csv")
	assert.Error(t, err)
}
