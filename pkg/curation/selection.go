package curation

import (
	"strings"

	"github.com/gnames/mycocurate/pkg/listing"
)

// BestModels is the display location of filtered gene models.
const BestModels = `Filtered Models ("best")`

// IsProteome is true for protein FASTA files of the gene catalog from the
// filtered models location.
func IsProteome(f listing.File) bool {
	return strings.Contains(f.FileName, "GeneCatalog") &&
		strings.Contains(f.FileName, "aa.fasta") &&
		strings.Contains(f.FileType, "protein") &&
		strings.Contains(f.PortalDisplayLocation, BestModels)
}

// IsCDS is true for filtered CDS files that are not allele sets.
func IsCDS(f listing.File) bool {
	return strings.Contains(f.JatLabel, "cds_filtered") &&
		!strings.Contains(f.FileName, "alleles") &&
		strings.Contains(f.FileType, "cds") &&
		strings.Contains(f.PortalDisplayLocation, BestModels)
}

// IsUnusualProteome is true for protein files of the filtered models
// location that do not follow the gene catalog naming.
func IsUnusualProteome(f listing.File) bool {
	return strings.Contains(f.FileType, "protein") &&
		strings.Contains(f.PortalDisplayLocation, BestModels) &&
		!IsProteome(f)
}

// Select returns files that satisfy the predicate, keeping their order.
func Select(files []listing.File, pred func(listing.File) bool) []listing.File {
	var res []listing.File
	for _, v := range files {
		if pred(v) {
			res = append(res, v)
		}
	}
	return res
}

// SelectProteomes returns proteome files.
func SelectProteomes(files []listing.File) []listing.File {
	return Select(files, IsProteome)
}

// SelectCDS returns CDS files.
func SelectCDS(files []listing.File) []listing.File {
	return Select(files, IsCDS)
}

// UnusualProteomes returns protein files of the best models location that
// were not selected as proteomes.
func UnusualProteomes(files []listing.File) []listing.File {
	return Select(files, IsUnusualProteome)
}

// MissingProteomes returns organisms of the list that have neither a
// selected nor an unusual proteome, in the order of the list.
func MissingProteomes(
	all []string,
	selected, unusual []listing.File,
) []string {
	return withoutFiles(all, selected, unusual)
}

// MissingCDS returns organisms of the list without a selected CDS file.
func MissingCDS(all []string, selected []listing.File) []string {
	return withoutFiles(all, selected)
}

// FileOrganism returns the organism of a file.
func FileOrganism(f listing.File) string {
	return f.Organism
}

func withoutFiles(all []string, groups ...[]listing.File) []string {
	has := make(map[string]struct{})
	for _, g := range groups {
		for _, v := range g {
			has[v.Organism] = struct{}{}
		}
	}
	var res []string
	for _, v := range all {
		if _, ok := has[v]; !ok {
			res = append(res, v)
		}
	}
	return res
}
