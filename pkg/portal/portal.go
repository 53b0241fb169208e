// Package portal describes the MycoCosm portal catalog: one record per
// genome portal with its publication reference and descriptive fields.
package portal

import (
	"context"
	"net/url"
	"strings"
)

// Column names used by the pipeline.
const (
	ColName        = "Name"
	ColPublished   = "Published"
	ColPortal      = "portal"
	ColReference   = "reference"
	ColNewProteome = "new_proteome"

	// LinkSuffix marks companion columns with cell hyperlinks.
	LinkSuffix = "_link"
)

// Acquirer provides the portal catalog from a live page or a local copy.
type Acquirer interface {
	Acquire(ctx context.Context) (*Table, error)
}

// Record is one portal of the catalog.
type Record struct {
	// Portal is a short portal identifier, for example 'Aaoar1'.
	Portal string

	// Reference is a link to the publication, empty if the genome is
	// not published.
	Reference string

	// Fields keeps descriptive columns of the catalog by their names.
	Fields map[string]string

	// NewProteome is true if the portal is new or newly published since
	// the previous snapshot of the catalog.
	NewProteome bool
}

// IsPublished returns true if the Published cell is not blank.
func (r Record) IsPublished() bool {
	return strings.TrimSpace(r.Fields[ColPublished]) != ""
}

// HasReference returns true for a non-blank reference.
func (r Record) HasReference() bool {
	return strings.TrimSpace(r.Reference) != ""
}

// Table is a snapshot of the portal catalog.
type Table struct {
	// Columns are names of all columns in their original order. Portal and
	// reference columns are included when the snapshot has them.
	Columns []string

	Records []Record
}

// HasColumn checks if the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, v := range t.Columns {
		if v == name {
			return true
		}
	}
	return false
}

// Published returns portal ids with a non-blank Published field in the
// order of the catalog.
func (t *Table) Published() []string {
	var res []string
	for _, v := range t.Records {
		if v.IsPublished() && v.Portal != "" {
			res = append(res, v.Portal)
		}
	}
	return res
}

// Index maps portal ids to records.
func (t *Table) Index() map[string]Record {
	res := make(map[string]Record, len(t.Records))
	for _, v := range t.Records {
		res[v.Portal] = v
	}
	return res
}

// PortalFromLink removes scheme and host from a portal link, leaving the
// portal id: 'https://mycocosm.jgi.doe.gov/Aaoar1' becomes 'Aaoar1'.
// Strings that are not absolute URLs are returned trimmed.
func PortalFromLink(link string) string {
	link = strings.TrimSpace(link)
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return link
	}
	res := strings.TrimPrefix(link, u.Scheme+"://"+u.Host)
	return strings.TrimPrefix(res, "/")
}
