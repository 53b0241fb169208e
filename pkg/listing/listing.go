// Package listing keeps the flat file table of MycoCosm organisms built
// from pages of the JGI file-listing API.
package listing

import (
	"context"
	"strconv"
	"strings"

	"github.com/gnames/gnuuid"
)

// NoFilesFound is the file name of a placeholder row that the metadata CSV
// keeps for organisms without files. In memory such organisms are simply
// absent from Listing.Files.
const NoFilesFound = "NO FILES FOUND"

// Fetcher downloads file-listing pages of organisms into a local cache.
type Fetcher interface {
	Fetch(ctx context.Context, organisms []string) (*FetchReport, error)
}

// Parser flattens cached pages into a Listing.
type Parser interface {
	Parse(organisms []string) (*Listing, error)
}

// FetchReport counts organisms by the outcome of a fetch run.
type FetchReport struct {
	RunID   string
	Fetched int
	Cached  int
	Empty   int
	Failed  int
}

// File is one file of an organism as reported by the listing API.
type File struct {
	Organism              string
	FileName              string
	FileID                string
	ID                    string
	FileStatus            string
	MD5Sum                string
	FileDate              string
	NCBITaxonID           string
	JatLabel              string
	NCBITaxonClass        string
	NCBITaxonFamily       string
	NCBITaxonOrder        string
	NCBITaxonGenus        string
	NCBITaxonSpecies      string
	FileType              string
	PortalDisplayLocation string
	NewProteome           bool
}

// Columns of the files metadata CSV.
var Columns = []string{
	"organism", "file_name", "file_id", "_id", "file_status", "md5sum",
	"file_date", "ncbi_taxon_id", "jat_label", "ncbi_taxon_class",
	"ncbi_taxon_family", "ncbi_taxon_order", "ncbi_taxon_genus",
	"ncbi_taxon_species", "file_type", "portal_display_location",
}

// RecordID is a stable UUID v5 of the organism, the file id and its
// checksum. It does not change between runs unless the file changes.
func (f File) RecordID() string {
	key := strings.Join([]string{f.Organism, f.FileID, f.MD5Sum}, "|")
	return gnuuid.New(key).String()
}

// Values returns fields in the order of Columns.
func (f File) Values() []string {
	return []string{
		f.Organism, f.FileName, f.FileID, f.ID, f.FileStatus, f.MD5Sum,
		f.FileDate, f.NCBITaxonID, f.JatLabel, f.NCBITaxonClass,
		f.NCBITaxonFamily, f.NCBITaxonOrder, f.NCBITaxonGenus,
		f.NCBITaxonSpecies, f.FileType, f.PortalDisplayLocation,
	}
}

// FromMap builds a File from a CSV row keyed by column names. Unknown
// columns are ignored, absent ones stay empty.
func FromMap(m map[string]string) File {
	res := File{
		Organism:              m["organism"],
		FileName:              m["file_name"],
		FileID:                m["file_id"],
		ID:                    m["_id"],
		FileStatus:            m["file_status"],
		MD5Sum:                m["md5sum"],
		FileDate:              m["file_date"],
		NCBITaxonID:           m["ncbi_taxon_id"],
		JatLabel:              m["jat_label"],
		NCBITaxonClass:        m["ncbi_taxon_class"],
		NCBITaxonFamily:       m["ncbi_taxon_family"],
		NCBITaxonOrder:        m["ncbi_taxon_order"],
		NCBITaxonGenus:        m["ncbi_taxon_genus"],
		NCBITaxonSpecies:      m["ncbi_taxon_species"],
		FileType:              m["file_type"],
		PortalDisplayLocation: m["portal_display_location"],
	}
	res.NewProteome, _ = strconv.ParseBool(m["new_proteome"])
	return res
}

// Listing is the file table of a set of organisms. An organism from
// Organisms without entries in Files has no files.
type Listing struct {
	Organisms []string
	Files     []File

	// New keeps new proteome flags of organisms, including the ones
	// without files.
	New map[string]bool
}

// IsNew returns the new proteome flag of an organism.
func (l *Listing) IsNew(organism string) bool {
	return l.New[organism]
}

// Missing returns organisms without files, in the order of Organisms.
func (l *Listing) Missing() []string {
	seen := make(map[string]struct{})
	for _, v := range l.Files {
		seen[v.Organism] = struct{}{}
	}
	var res []string
	for _, v := range l.Organisms {
		if _, ok := seen[v]; !ok {
			res = append(res, v)
		}
	}
	return res
}

// Rows returns Files with a placeholder row for every missing organism,
// grouped in the order of Organisms. This is the shape of the metadata CSV.
func (l *Listing) Rows() []File {
	byOrg := make(map[string][]File)
	for _, v := range l.Files {
		byOrg[v.Organism] = append(byOrg[v.Organism], v)
	}
	res := make([]File, 0, len(l.Files)+len(l.Organisms))
	done := make(map[string]struct{})
	for _, org := range l.Organisms {
		if _, ok := done[org]; ok {
			continue
		}
		done[org] = struct{}{}
		files, ok := byOrg[org]
		if !ok {
			res = append(res, File{
				Organism:    org,
				FileName:    NoFilesFound,
				NewProteome: l.IsNew(org),
			})
			continue
		}
		res = append(res, files...)
	}
	// files of organisms not listed in Organisms keep their place at the end
	for _, v := range l.Files {
		if _, ok := done[v.Organism]; !ok {
			res = append(res, v)
		}
	}
	return res
}

// FromRows builds a Listing from metadata rows. Placeholder rows mark
// organisms without files and do not become files.
func FromRows(rows []File) *Listing {
	res := &Listing{New: make(map[string]bool)}
	seen := make(map[string]struct{})
	for _, v := range rows {
		if _, ok := seen[v.Organism]; !ok {
			seen[v.Organism] = struct{}{}
			res.Organisms = append(res.Organisms, v.Organism)
		}
		if v.NewProteome {
			res.New[v.Organism] = true
		}
		if v.FileName == NoFilesFound {
			continue
		}
		res.Files = append(res.Files, v)
	}
	return res
}
