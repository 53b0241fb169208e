package curation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/mycocurate/pkg/listing"
)

// Canonizer normalizes species names to canonical forms.
type Canonizer interface {
	Canonical(name string) string
}

// Phylogeny is a distinct combination of an organism and its taxonomy
// fields as reported by its files.
type Phylogeny struct {
	Organism         string
	NewProteome      bool
	NCBITaxonID      string
	NCBITaxonClass   string
	NCBITaxonFamily  string
	NCBITaxonOrder   string
	NCBITaxonGenus   string
	NCBITaxonSpecies string

	// CanonicalSpecies is NCBITaxonSpecies without strain or author
	// information.
	CanonicalSpecies string
}

// PhylogenyColumns are CSV columns of phylogeny tables.
var PhylogenyColumns = []string{
	"organism", "new_proteome", "ncbi_taxon_id", "ncbi_taxon_class",
	"ncbi_taxon_family", "ncbi_taxon_order", "ncbi_taxon_genus",
	"ncbi_taxon_species", "canonical_species",
}

// Values returns fields in the order of PhylogenyColumns.
func (p Phylogeny) Values() []string {
	return []string{
		p.Organism, strconv.FormatBool(p.NewProteome), p.NCBITaxonID,
		p.NCBITaxonClass, p.NCBITaxonFamily, p.NCBITaxonOrder,
		p.NCBITaxonGenus, p.NCBITaxonSpecies, p.CanonicalSpecies,
	}
}

// IsComplete is true when taxon id has at least 2 characters.
func (p Phylogeny) IsComplete() bool {
	return len(strings.TrimSpace(p.NCBITaxonID)) >= 2
}

func (p Phylogeny) key() string {
	return fmt.Sprintf("%s|%t|%s|%s|%s|%s|%s|%s",
		p.Organism, p.NewProteome, p.NCBITaxonID, p.NCBITaxonClass,
		p.NCBITaxonFamily, p.NCBITaxonOrder, p.NCBITaxonGenus,
		p.NCBITaxonSpecies,
	)
}

// BuildPhylogeny projects files of the listing to unique phylogeny rows in
// the order of their first appearance. An organism without files gives one
// row with empty taxonomy. Canonizer can be nil.
func BuildPhylogeny(l *listing.Listing, c Canonizer) []Phylogeny {
	byOrg := make(map[string][]listing.File)
	for _, v := range l.Files {
		byOrg[v.Organism] = append(byOrg[v.Organism], v)
	}

	var res []Phylogeny
	seen := make(map[string]struct{})
	add := func(p Phylogeny) {
		k := p.key()
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		if c != nil {
			p.CanonicalSpecies = c.Canonical(p.NCBITaxonSpecies)
		}
		res = append(res, p)
	}

	for _, org := range organisms(l) {
		files, ok := byOrg[org]
		if !ok {
			add(Phylogeny{Organism: org, NewProteome: l.IsNew(org)})
			continue
		}
		for _, f := range files {
			add(Phylogeny{
				Organism:         f.Organism,
				NewProteome:      f.NewProteome,
				NCBITaxonID:      f.NCBITaxonID,
				NCBITaxonClass:   f.NCBITaxonClass,
				NCBITaxonFamily:  f.NCBITaxonFamily,
				NCBITaxonOrder:   f.NCBITaxonOrder,
				NCBITaxonGenus:   f.NCBITaxonGenus,
				NCBITaxonSpecies: f.NCBITaxonSpecies,
			})
		}
	}
	return res
}

// SplitPhylogeny partitions phylogeny rows. Rows of missing organisms go to
// missing; rows with a complete taxon id of other organisms go to complete;
// rows of organisms that are neither missing nor have any complete row go
// to incomplete.
func SplitPhylogeny(
	rows []Phylogeny,
	missing []string,
) (missingRows, complete, incomplete []Phylogeny) {
	miss := toSet(missing)
	completeOrgs := make(map[string]struct{})

	for _, v := range rows {
		if _, ok := miss[v.Organism]; ok {
			missingRows = append(missingRows, v)
			continue
		}
		if v.IsComplete() {
			complete = append(complete, v)
			completeOrgs[v.Organism] = struct{}{}
		}
	}

	for _, v := range rows {
		if _, ok := miss[v.Organism]; ok {
			continue
		}
		if _, ok := completeOrgs[v.Organism]; ok {
			continue
		}
		incomplete = append(incomplete, v)
	}
	return missingRows, complete, incomplete
}

// FindDuplicates splits rows by the number of rows of their organism:
// organisms with more than one row go to double, the rest to single. The
// order of rows is kept.
func FindDuplicates[T any](
	rows []T,
	organism func(T) string,
) (double, single []T) {
	counts := make(map[string]int)
	for _, v := range rows {
		counts[organism(v)]++
	}
	for _, v := range rows {
		if counts[organism(v)] > 1 {
			double = append(double, v)
		} else {
			single = append(single, v)
		}
	}
	return double, single
}

// CheckOrganismCounts verifies that single, double, missing and incomplete
// phylogeny rows together cover exactly the given organisms.
func CheckOrganismCounts(
	all []string,
	single, double, missing, incomplete []Phylogeny,
) error {
	got := make(map[string]struct{})
	for _, part := range [][]Phylogeny{single, double, missing, incomplete} {
		for _, v := range part {
			got[v.Organism] = struct{}{}
		}
	}
	want := toSet(all)

	var extra, lost []string
	for k := range got {
		if _, ok := want[k]; !ok {
			extra = append(extra, k)
		}
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			lost = append(lost, k)
		}
	}
	if len(extra) == 0 && len(lost) == 0 {
		return nil
	}
	slices.Sort(extra)
	slices.Sort(lost)
	return fmt.Errorf(
		"%w: %d organisms, %d in partitions, not partitioned: %v, unknown: %v",
		ErrOrganismCount, len(want), len(got), lost, extra,
	)
}

// PhylogenyOrganism returns the organism of a phylogeny row.
func PhylogenyOrganism(p Phylogeny) string {
	return p.Organism
}

// organisms returns distinct organisms of the listing: declared ones first,
// then organisms that only appear in files.
func organisms(l *listing.Listing) []string {
	res := make([]string, 0, len(l.Organisms))
	seen := make(map[string]struct{})
	for _, v := range l.Organisms {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			res = append(res, v)
		}
	}
	for _, v := range l.Files {
		if _, ok := seen[v.Organism]; !ok {
			seen[v.Organism] = struct{}{}
			res = append(res, v.Organism)
		}
	}
	return res
}

func toSet(ss []string) map[string]struct{} {
	res := make(map[string]struct{}, len(ss))
	for _, v := range ss {
		res[v] = struct{}{}
	}
	return res
}
