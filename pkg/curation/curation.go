// Package curation reconciles MycoCosm file listings: it partitions
// organisms by the completeness of their taxonomy, selects proteome and CDS
// files, and splits selections into organisms with one or several files.
//
// All functions are pure, they never modify their inputs.
package curation

import (
	"github.com/gnames/mycocurate/pkg/listing"
)

// Result contains all tables derived from one listing.
type Result struct {
	// Organisms are all distinct organisms of the listing.
	Organisms []string

	PhylogenyMissing    []Phylogeny
	PhylogenyComplete   []Phylogeny
	PhylogenyIncomplete []Phylogeny
	PhylogenyDouble     []Phylogeny
	PhylogenySingle     []Phylogeny

	ProteomesAll     []listing.File
	ProteomesDouble  []listing.File
	ProteomesSingle  []listing.File
	ProteomesUnusual []listing.File
	// ProteomesMissing are phylogeny rows of organisms without proteomes.
	ProteomesMissing []Phylogeny

	CDSAll     []listing.File
	CDSDouble  []listing.File
	CDSSingle  []listing.File
	CDSMissing []Phylogeny

	// NewFiles are files that were absent from the previous listing.
	NewFiles []listing.File
}

// Curate runs the whole reconciliation of a listing. The previous listing
// can be nil, then all files are new. Canonizer can be nil. Partitions that
// do not cover all organisms give an error wrapping ErrOrganismCount.
func Curate(l, prev *listing.Listing, c Canonizer) (*Result, error) {
	res := &Result{Organisms: organisms(l)}

	phylo := BuildPhylogeny(l, c)
	res.PhylogenyMissing, res.PhylogenyComplete, res.PhylogenyIncomplete =
		SplitPhylogeny(phylo, l.Missing())
	res.PhylogenyDouble, res.PhylogenySingle =
		FindDuplicates(res.PhylogenyComplete, PhylogenyOrganism)

	err := CheckOrganismCounts(
		res.Organisms,
		res.PhylogenySingle, res.PhylogenyDouble,
		res.PhylogenyMissing, res.PhylogenyIncomplete,
	)
	if err != nil {
		return nil, err
	}

	res.ProteomesAll = SelectProteomes(l.Files)
	res.ProteomesDouble, res.ProteomesSingle =
		FindDuplicates(res.ProteomesAll, FileOrganism)
	res.ProteomesUnusual = UnusualProteomes(l.Files)
	res.ProteomesMissing = phylogenyOf(
		phylo,
		MissingProteomes(res.Organisms, res.ProteomesAll, res.ProteomesUnusual),
	)

	res.CDSAll = SelectCDS(l.Files)
	res.CDSDouble, res.CDSSingle = FindDuplicates(res.CDSAll, FileOrganism)
	res.CDSMissing = phylogenyOf(phylo, MissingCDS(res.Organisms, res.CDSAll))

	var prevFiles []listing.File
	if prev != nil {
		prevFiles = prev.Files
	}
	res.NewFiles = NewFiles(prevFiles, l.Files)

	return res, nil
}

// NewFiles returns current files whose record ids are absent from the
// previous files.
func NewFiles(prev, cur []listing.File) []listing.File {
	known := make(map[string]struct{}, len(prev))
	for _, v := range prev {
		known[v.RecordID()] = struct{}{}
	}
	var res []listing.File
	for _, v := range cur {
		if _, ok := known[v.RecordID()]; !ok {
			res = append(res, v)
		}
	}
	return res
}

func phylogenyOf(rows []Phylogeny, orgs []string) []Phylogeny {
	set := toSet(orgs)
	var res []Phylogeny
	for _, v := range rows {
		if _, ok := set[v.Organism]; ok {
			res = append(res, v)
		}
	}
	return res
}
