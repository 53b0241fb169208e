package ioportal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/errcode"
	"github.com/gnames/mycocurate/pkg/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const page = `<html><body>
<h1>Fungi</h1>
<table>
  <tr><th> Name </th><th>Published</th><th>Class</th></tr>
  <tr>
    <td><a href="/Aaoar1"> Aaoria
      arctica </a></td>
    <td><a href="https://doi.org/10.1/x">Smith et al. 2020</a></td>
    <td>Dothideomycetes</td>
  </tr>
  <tr>
    <td><a href="https://mycocosm.jgi.doe.gov/Abobi1">Abortiporus biennis</a></td>
    <td></td>
    <td>Agaricomycetes</td>
  </tr>
</table>
<table><tr><th>Other</th></tr></table>
</body></html>`

func testConfig(url, spreadsheet string) *config.Config {
	cfg := config.New()
	opts := []config.Option{config.OptPortalURL(url)}
	if spreadsheet != "" {
		opts = append(opts, config.OptPortalSpreadsheet(spreadsheet))
	}
	cfg.Update(opts)
	return cfg
}

func TestAcquireLive(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			agent = r.Header.Get("User-Agent")
			w.Write([]byte(page))
		}))
	defer srv.Close()

	cfg := testConfig(srv.URL+"/fungi/fungi.info.html", "")
	tbl, err := New(cfg).Acquire(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cfg.Portal.UserAgent, agent)
	assert.Equal(t,
		[]string{"Name", "Published", "Class", "portal", "reference"},
		tbl.Columns,
	)
	require.Len(t, tbl.Records, 2)

	r := tbl.Records[0]
	assert.Equal(t, "Aaoar1", r.Portal)
	assert.Equal(t, "https://doi.org/10.1/x", r.Reference)
	assert.Equal(t, "Aaoria arctica", r.Fields["Name"])
	assert.Equal(t, "Smith et al. 2020", r.Fields["Published"])
	assert.Equal(t, "Dothideomycetes", r.Fields["Class"])

	r = tbl.Records[1]
	assert.Equal(t, "Abobi1", r.Portal)
	assert.Empty(t, r.Reference)
	assert.Equal(t, []string{"Aaoar1"}, tbl.Published())
}

func TestAcquireXLSXFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "fungi.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1",
		&[]string{"Name", "Published", "Class"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2",
		&[]string{"Aaoria arctica", "Smith 2020", "Dothideomycetes"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3",
		&[]string{"Abobi1", "", "Agaricomycetes"}))
	require.NoError(t, f.SetCellHyperLink(sheet, "A2",
		"https://mycocosm.jgi.doe.gov/Aaoar1", "External"))
	require.NoError(t, f.SetCellHyperLink(sheet, "B2",
		"https://doi.org/10.1/x", "External"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	cfg := testConfig(srv.URL, path)
	tbl, err := New(cfg).Acquire(context.Background())
	require.NoError(t, err)
	require.Len(t, tbl.Records, 2)

	assert.Equal(t, "Aaoar1", tbl.Records[0].Portal)
	assert.Equal(t, "https://doi.org/10.1/x", tbl.Records[0].Reference)
	// no hyperlink, cell text is used
	assert.Equal(t, "Abobi1", tbl.Records[1].Portal)
	assert.Empty(t, tbl.Records[1].Reference)
}

func TestAcquireCSVFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	data := "Name,Published,Name_link,Published_link\n" +
		"Aaoria arctica,Smith 2020,https://mycocosm.jgi.doe.gov/Aaoar1,https://doi.org/1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg := testConfig("http://127.0.0.1:1/none", path)
	tbl, err := New(cfg).Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Published", "portal", "reference"}, tbl.Columns)
	assert.Equal(t, "Aaoar1", tbl.Records[0].Portal)
	assert.Equal(t, "https://doi.org/1", tbl.Records[0].Reference)
}

func TestAcquireUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html><body>no table</body></html>"))
		}))
	defer srv.Close()

	tests := []struct {
		name        string
		spreadsheet string
	}{
		{"no spreadsheet", ""},
		{"missing spreadsheet", filepath.Join(t.TempDir(), "none.xlsx")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(srv.URL, tt.spreadsheet)
			_, err := New(cfg).Acquire(context.Background())
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.PortalUnavailableError, gnErr.Code)
		})
	}
}

func TestWriteReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mycocosm_data", "portals.csv")
	tbl := &portal.Table{
		Columns: []string{"Name", "Published", "portal", "reference"},
		Records: []portal.Record{
			{
				Portal: "Aaoar1", Reference: "https://doi.org/1",
				Fields:      map[string]string{"Name": "Aaoria", "Published": "Smith"},
				NewProteome: true,
			},
			{
				Portal: "Abobi1",
				Fields: map[string]string{"Name": "Abortiporus", "Published": ""},
			},
		},
	}
	require.NoError(t, WriteTable(path, tbl))

	res, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, tbl, res)
}

func TestCheckColumns(t *testing.T) {
	tbl := &portal.Table{Columns: []string{"Name", "Published", "portal"}}
	assert.NoError(t, CheckColumns(tbl))

	tbl.Columns = []string{"Name"}
	err := CheckColumns(tbl)
	require.Error(t, err)
	gnErr := err.(*gn.Error)
	assert.Equal(t, errcode.PortalColumnsError, gnErr.Code)
	assert.Equal(t, "Published, portal", gnErr.Vars[0])
}
