package iobusco_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iobusco"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iotesting"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryV5 = `{
  "lineage_dataset": {"name": "fungi_odb10"},
  "results": {
    "one_line_summary": "C:97.5%[S:96.0%,D:1.5%],F:1.0%,M:1.5%,n:758",
    "Complete percentage": 97.5,
    "Single copy percentage": 96.0,
    "Multi copy percentage": 1.5,
    "Fragmented percentage": 1.0,
    "Missing percentage": 1.5,
    "Complete BUSCOs": 739
  }
}`

const summaryV4 = `{
  "results": {"C": 88.1, "S": 80, "D": 8.1, "F": 2, "M": 9.9}
}`

func setup(t *testing.T, portals ...string) *config.Config {
	cfg := iotesting.TempConfig(t)

	rows := make([][]string, len(portals))
	for i, v := range portals {
		rows[i] = []string{v}
	}
	err := iocsv.Write(cfg.ProteomesListPath(), []string{"portal"}, rows)
	require.NoError(t, err)

	for _, v := range portals {
		err = os.MkdirAll(filepath.Join(cfg.BuscoDir(), v+".fasta"), 0755)
		require.NoError(t, err)
	}
	return cfg
}

func writeSummary(t *testing.T, cfg *config.Config, portal, name, doc string) string {
	path := filepath.Join(cfg.BuscoDir(), portal+".fasta", name)
	iotesting.WriteFile(t, path, doc)
	return path
}

func TestLoadSchema(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		s, err := iobusco.LoadSchema("")
		require.NoError(t, err)
		assert.Contains(t, s.Columns(), "complete_pct")
	})

	t.Run("user file", func(t *testing.T) {
		home := t.TempDir()
		path := config.BuscoSchemasFilePath(home)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		doc := `fields:
  - column: complete
    section: results
    candidates:
      - {schema: v9, key: C}
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
		s, err := iobusco.LoadSchema(home)
		require.NoError(t, err)
		assert.Contains(t, s.Columns(), "complete")
		assert.NotContains(t, s.Columns(), "complete_pct")
	})

	t.Run("broken user file", func(t *testing.T) {
		home := t.TempDir()
		path := config.BuscoSchemasFilePath(home)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("fields: []\n"), 0644))
		_, err := iobusco.LoadSchema(home)
		require.Error(t, err)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		assert.Equal(t, errcode.BuscoSchemaError, gnErr.Code)
	})
}

func TestSummarize(t *testing.T) {
	cfg := setup(t, "Zymse1", "Aaoar1", "Bbbb1", "Cccc1")
	writeSummary(t, cfg, "Zymse1",
		"short_summary.specific.fungi_odb10..Zymse1.fasta.json", summaryV5)
	writeSummary(t, cfg, "Aaoar1", "short_summary.json", summaryV4)
	writeSummary(t, cfg, "Bbbb1", "short_summary.broken.json", "{not json")

	old := writeSummary(t, cfg, "Cccc1", "short_summary.old.json", summaryV4)
	writeSummary(t, cfg, "Cccc1", "short_summary.new.json", summaryV5)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))

	res, err := iobusco.Summarize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, res.MissingJSON)
	require.Len(t, res.Summaries, 4)

	tbl, err := iocsv.Read(cfg.BuscoSummaryPath())
	require.NoError(t, err)
	rows := tbl.Maps()
	require.Len(t, rows, 4)

	assert.Equal(t, "Aaoar1", rows[0]["portal"])
	assert.Equal(t, "Aaoar1.fasta", rows[0]["portal_fasta"])
	assert.Equal(t, "88.1", rows[0]["complete_pct"])
	assert.Equal(t, "v4", rows[0]["schema_version"])
	assert.Empty(t, rows[0]["error"])

	assert.Equal(t, "Bbbb1", rows[1]["portal"])
	assert.Contains(t, rows[1]["error"], "Failed to parse JSON")
	assert.Empty(t, rows[1]["complete_pct"])

	assert.Equal(t, "Cccc1", rows[2]["portal"])
	assert.Equal(t, "97.5", rows[2]["complete_pct"])
	assert.Contains(t, rows[2]["summary_path"], "short_summary.new.json")

	assert.Equal(t, "Zymse1", rows[3]["portal"])
	assert.Equal(t, "v5", rows[3]["schema_version"])
	assert.Equal(t, "739", rows[3]["complete_n"])
}

func TestSummarizeMissingJSON(t *testing.T) {
	cfg := setup(t, "Aaoar1", "Bbbb1")
	writeSummary(t, cfg, "Aaoar1", "short_summary.json", summaryV4)

	res, err := iobusco.Summarize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bbbb1"}, res.MissingJSON)
	assert.Len(t, res.Summaries, 1)
}

func TestSummarizeNoRows(t *testing.T) {
	cfg := setup(t, "Aaoar1")

	res, err := iobusco.Summarize(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, res.Summaries)
	_, err = os.Stat(cfg.BuscoSummaryPath())
	assert.True(t, os.IsNotExist(err))
}

func TestSummarizeMissingFolders(t *testing.T) {
	cfg := setup(t, "Aaoar1")
	err := iocsv.Write(
		cfg.ProteomesListPath(), []string{"portal"},
		[][]string{{"Aaoar1"}, {"Gone1"}},
	)
	require.NoError(t, err)

	_, err = iobusco.Summarize(context.Background(), cfg)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.MissingFilesError, gnErr.Code)
	assert.Equal(t, "Gone1.fasta", gnErr.Vars[2])
}

func TestSummarizeNoDir(t *testing.T) {
	cfg := iotesting.TempConfig(t)

	_, err := iobusco.Summarize(context.Background(), cfg)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.MissingDirError, gnErr.Code)
}
