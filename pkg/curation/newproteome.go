package curation

import (
	"maps"

	"github.com/gnames/mycocurate/pkg/listing"
	"github.com/gnames/mycocurate/pkg/portal"
)

// FindNewProteomes returns a copy of the current portal table with
// NewProteome set for every record. A portal is new if the previous
// snapshot does not have it, or if it has a reference now but had none
// before. Without a previous snapshot every portal is new. If either table
// lacks 'portal' or 'reference' column every portal is new and the
// returned warning wraps ErrMissingColumns.
func FindNewProteomes(cur, prev *portal.Table) (*portal.Table, error) {
	res := copyTable(cur)
	if prev == nil {
		markAll(res)
		return res, nil
	}

	if !hasJoinColumns(cur) || !hasJoinColumns(prev) {
		markAll(res)
		return res, ErrMissingColumns
	}

	known := make(map[string]struct{}, len(prev.Records))
	withRef := make(map[string]struct{})
	for _, v := range prev.Records {
		known[v.Portal] = struct{}{}
		if v.HasReference() {
			withRef[v.Portal] = struct{}{}
		}
	}

	for i := range res.Records {
		r := &res.Records[i]
		if _, ok := known[r.Portal]; !ok {
			r.NewProteome = true
			continue
		}
		_, hadRef := withRef[r.Portal]
		r.NewProteome = r.HasReference() && !hadRef
	}
	return res, nil
}

// AnnotateNew returns a copy of the listing where files and organisms get
// the new proteome flag of their portal.
func AnnotateNew(l *listing.Listing, t *portal.Table) *listing.Listing {
	idx := t.Index()
	res := &listing.Listing{
		Organisms: append([]string(nil), l.Organisms...),
		Files:     make([]listing.File, len(l.Files)),
		New:       make(map[string]bool),
	}
	for _, v := range l.Organisms {
		res.New[v] = idx[v].NewProteome
	}
	for i, v := range l.Files {
		v.NewProteome = idx[v.Organism].NewProteome
		res.New[v.Organism] = v.NewProteome
		res.Files[i] = v
	}
	return res
}

func hasJoinColumns(t *portal.Table) bool {
	return t.HasColumn(portal.ColPortal) && t.HasColumn(portal.ColReference)
}

func markAll(t *portal.Table) {
	for i := range t.Records {
		t.Records[i].NewProteome = true
	}
}

func copyTable(t *portal.Table) *portal.Table {
	res := &portal.Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]portal.Record, len(t.Records)),
	}
	for i, v := range t.Records {
		v.Fields = maps.Clone(v.Fields)
		res.Records[i] = v
	}
	return res
}
