// Package iolisting flattens cached listing pages into file records and
// keeps them in the files metadata CSV.
package iolisting

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/listing"
)

// ColRecordID is the column with a stable id of a file record.
const ColRecordID = "record_id"

type parser struct {
	dir string
}

// New creates a listing.Parser of the configured JSON cache.
func New(cfg *config.Config) listing.Parser {
	return &parser{dir: cfg.JSONDir()}
}

type page struct {
	name string
	num  int
}

// Parse reads cached pages of organisms in the order of the list. Pages of
// an organism are read by page number. Organisms without pages have no
// files.
func (p *parser) Parse(organisms []string) (*listing.Listing, error) {
	if !iofs.IsDir(p.dir) {
		return nil, CacheDirError(p.dir)
	}

	names, err := iofs.ListFiles(p.dir, "all_files_*_page_*.json")
	if err != nil {
		return nil, err
	}
	pages := make(map[string][]page)
	for _, v := range names {
		org, n, ok := listing.ParsePageFileName(v)
		if !ok {
			continue
		}
		pages[org] = append(pages[org], page{name: v, num: n})
	}

	res := &listing.Listing{
		Organisms: organisms,
		New:       make(map[string]bool),
	}
	enc := gnfmt.GNjson{}
	for _, org := range organisms {
		ps := pages[org]
		if len(ps) == 0 {
			slog.Warn("No cached pages for organism", "organism", org)
			continue
		}
		slices.SortFunc(ps, func(a, b page) int { return a.num - b.num })

		for _, pg := range ps {
			path := filepath.Join(p.dir, pg.name)
			body, err := os.ReadFile(path)
			if err != nil {
				return nil, iofs.ReadFileError(path, err)
			}
			var lp listing.Page
			if err = enc.Decode(body, &lp); err != nil {
				return nil, ParseError(path, err)
			}
			for _, f := range lp.Files() {
				res.Files = append(res.Files, flatten(org, f))
			}
		}
	}
	slog.Info(
		"Parsed listing pages",
		"organisms", len(organisms),
		"files", len(res.Files),
		"missing", len(res.Missing()),
	)
	return res, nil
}

func flatten(org string, f map[string]any) listing.File {
	meta := object(f["metadata"])
	taxon := object(meta["ncbi_taxon"])
	portal := object(meta["portal"])

	return listing.File{
		Organism:              org,
		FileName:              str(f["file_name"]),
		FileID:                str(f["file_id"]),
		ID:                    str(f["_id"]),
		FileStatus:            str(f["file_status"]),
		MD5Sum:                str(f["md5sum"]),
		FileDate:              str(f["file_date"]),
		NCBITaxonID:           str(meta["ncbi_taxon_id"]),
		JatLabel:              str(meta["jat_label"]),
		NCBITaxonClass:        str(taxon["ncbi_taxon_class"]),
		NCBITaxonFamily:       str(taxon["ncbi_taxon_family"]),
		NCBITaxonOrder:        str(taxon["ncbi_taxon_order"]),
		NCBITaxonGenus:        str(taxon["ncbi_taxon_genus"]),
		NCBITaxonSpecies:      str(taxon["ncbi_taxon_species"]),
		FileType:              str(f["file_type"]),
		PortalDisplayLocation: str(portal["display_location"]),
	}
}

func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

// str renders a JSON value as a CSV cell. Numbers keep their decimal form,
// lists are joined with a comma.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		res := make([]string, 0, len(t))
		for _, v := range t {
			res = append(res, str(v))
		}
		return strings.Join(res, ", ")
	default:
		enc := gnfmt.GNjson{}
		bs, err := enc.Encode(t)
		if err != nil {
			return ""
		}
		return string(bs)
	}
}

// Header is the column list of the files metadata CSV.
func Header() []string {
	return append(slices.Clone(listing.Columns), ColRecordID)
}

// WriteMetadata saves the listing with a placeholder row for every
// organism without files.
func WriteMetadata(path string, l *listing.Listing) error {
	files := l.Rows()
	rows := make([][]string, len(files))
	for i, f := range files {
		var id string
		if f.FileName != listing.NoFilesFound {
			id = f.RecordID()
		}
		rows[i] = append(f.Values(), id)
	}
	err := iocsv.Write(path, Header(), rows)
	if err != nil {
		return err
	}
	slog.Info("Saved files metadata", "path", path, "rows", len(rows))
	return nil
}

// ReadMetadata loads a files metadata CSV.
func ReadMetadata(path string) (*listing.Listing, error) {
	tbl, err := iocsv.Read(path)
	if err != nil {
		return nil, err
	}
	maps := tbl.Maps()
	files := make([]listing.File, len(maps))
	for i, m := range maps {
		files[i] = listing.FromMap(m)
	}
	return listing.FromRows(files), nil
}
