package iolisting_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iolisting"
	"github.com/gnames/mycocurate/internal/iotesting"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/errcode"
	"github.com/gnames/mycocurate/pkg/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileJSON = `{
  "file_name": %q,
  "file_id": "f%d",
  "_id": "id%d",
  "file_status": "RESTORED",
  "md5sum": "md5%d",
  "file_date": "2020-01-01",
  "file_type": ["fasta", "protein"],
  "metadata": {
    "ncbi_taxon_id": 12345,
    "jat_label": "proteins_filtered",
    "ncbi_taxon": {
      "ncbi_taxon_class": "Dothideomycetes",
      "ncbi_taxon_family": "Aaoriaceae",
      "ncbi_taxon_order": "Pleosporales",
      "ncbi_taxon_genus": "Aaoria",
      "ncbi_taxon_species": "Aaoria arctica"
    },
    "portal": {"display_location": ["Filtered Models (\"best\")", "Other"]}
  }
}`

func writePage(t *testing.T, dir, org string, page int, names ...string) {
	var files []string
	for i, v := range names {
		n := page*100 + i
		files = append(files, fmt.Sprintf(fileJSON, v, n, n, n))
	}
	body := `{"organisms":[{"files":[`
	for i, v := range files {
		if i > 0 {
			body += ","
		}
		body += v
	}
	body += "]}]}"
	path := filepath.Join(dir, listing.PageFileName(org, page))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func testConfig(t *testing.T) *config.Config {
	return iotesting.TempConfig(t)
}

func TestParse(t *testing.T) {
	cfg := testConfig(t)
	dir := cfg.JSONDir()
	require.NoError(t, os.MkdirAll(dir, 0755))

	writePage(t, dir, "Org1", 10, "ten.fasta")
	writePage(t, dir, "Org1", 2, "two.fasta")
	writePage(t, dir, "Org1", 1, "one_a.fasta", "one_b.fasta")
	writePage(t, dir, "Org1_x", 1, "other.fasta")

	l, err := iolisting.New(cfg).Parse([]string{"Org1", "Org2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Org1", "Org2"}, l.Organisms)
	assert.Equal(t, []string{"Org2"}, l.Missing())
	require.Len(t, l.Files, 4)

	var names []string
	for _, v := range l.Files {
		names = append(names, v.FileName)
	}
	assert.Equal(t,
		[]string{"one_a.fasta", "one_b.fasta", "two.fasta", "ten.fasta"}, names)

	f := l.Files[0]
	assert.Equal(t, "Org1", f.Organism)
	assert.Equal(t, "f100", f.FileID)
	assert.Equal(t, "id100", f.ID)
	assert.Equal(t, "md5100", f.MD5Sum)
	assert.Equal(t, "12345", f.NCBITaxonID)
	assert.Equal(t, "proteins_filtered", f.JatLabel)
	assert.Equal(t, "Dothideomycetes", f.NCBITaxonClass)
	assert.Equal(t, "Aaoriaceae", f.NCBITaxonFamily)
	assert.Equal(t, "Pleosporales", f.NCBITaxonOrder)
	assert.Equal(t, "Aaoria", f.NCBITaxonGenus)
	assert.Equal(t, "Aaoria arctica", f.NCBITaxonSpecies)
	assert.Equal(t, "fasta, protein", f.FileType)
	assert.Equal(t, `Filtered Models ("best"), Other`, f.PortalDisplayLocation)
}

func TestParseMissingFields(t *testing.T) {
	cfg := testConfig(t)
	dir := cfg.JSONDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	body := `{"organisms":[{"files":[{"file_name":"bare.fasta"}]}]}`
	path := filepath.Join(dir, listing.PageFileName("Org1", 1))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	l, err := iolisting.New(cfg).Parse([]string{"Org1"})
	require.NoError(t, err)
	require.Len(t, l.Files, 1)
	f := l.Files[0]
	assert.Equal(t, "bare.fasta", f.FileName)
	assert.Empty(t, f.NCBITaxonID)
	assert.Empty(t, f.NCBITaxonSpecies)
	assert.Empty(t, f.PortalDisplayLocation)
}

func TestParseErrors(t *testing.T) {
	cfg := testConfig(t)
	_, err := iolisting.New(cfg).Parse([]string{"Org1"})
	require.Error(t, err)
	assert.Equal(t, errcode.ListingCacheDirError, err.(*gn.Error).Code)

	dir := cfg.JSONDir()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, listing.PageFileName("Org1", 1))
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	_, err = iolisting.New(cfg).Parse([]string{"Org1"})
	require.Error(t, err)
	assert.Equal(t, errcode.ListingParseError, err.(*gn.Error).Code)
}

func TestWriteReadMetadata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.csv")
	l := &listing.Listing{
		Organisms: []string{"Org1", "Org2"},
		Files: []listing.File{
			{Organism: "Org1", FileName: "a.fasta", FileID: "1", MD5Sum: "x"},
		},
	}
	require.NoError(t, iolisting.WriteMetadata(path, l))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), listing.NoFilesFound)
	assert.Contains(t, string(body), l.Files[0].RecordID())

	res, err := iolisting.ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, l.Organisms, res.Organisms)
	assert.Equal(t, l.Files, res.Files)
	assert.Equal(t, []string{"Org2"}, res.Missing())
	assert.Equal(t, "record_id", iolisting.Header()[len(iolisting.Header())-1])
}
