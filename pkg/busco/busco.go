// Package busco maps fields of BUSCO short summary JSON documents to flat
// summary rows. Field names changed between BUSCO releases, so every
// column has an ordered list of candidate keys tagged by schema version.
package busco

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Candidate is a key of a BUSCO JSON section used by a schema version.
type Candidate struct {
	Schema string `yaml:"schema"`
	Key    string `yaml:"key"`
}

// Field describes how to find a value of one output column.
type Field struct {
	Column string `yaml:"column"`
	// Section is a top-level object of the JSON document, for example
	// 'results' or 'lineage_dataset'.
	Section string `yaml:"section"`
	// Join concatenates list values, default is ", ".
	Join       string      `yaml:"join"`
	Candidates []Candidate `yaml:"candidates"`
}

// Schema is an ordered set of fields.
type Schema struct {
	Fields []Field `yaml:"fields"`
	// VersionColumns decide the schema version of a document: the version
	// of the first of these columns that was found wins.
	VersionColumns []string `yaml:"version_columns"`
}

// Fixed columns of the summary table.
const (
	ColPortal        = "portal"
	ColPortalFasta   = "portal_fasta"
	ColSchemaVersion = "schema_version"
	ColSummaryPath   = "summary_path"
	ColError         = "error"
)

var ErrEmptySchema = errors.New("schema has no fields")

// NewSchema parses schema YAML.
func NewSchema(data []byte) (*Schema, error) {
	var res Schema
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	if len(res.Fields) == 0 {
		return nil, ErrEmptySchema
	}
	for i, v := range res.Fields {
		if v.Column == "" || v.Section == "" {
			return nil, fmt.Errorf("field %d: column and section are required", i+1)
		}
		if len(v.Candidates) == 0 {
			return nil, fmt.Errorf("field '%s' has no candidates", v.Column)
		}
	}
	return &res, nil
}

// Columns returns all columns of the summary table.
func (s *Schema) Columns() []string {
	res := []string{ColPortal, ColPortalFasta}
	for _, v := range s.Fields {
		res = append(res, v.Column)
	}
	return append(res, ColSchemaVersion, ColSummaryPath, ColError)
}

// Summary is one row of the summary table.
type Summary struct {
	Portal        string
	Values        map[string]string
	SchemaVersion string
	SummaryPath   string
	Error         string
}

// Row returns values of the summary in the order of columns.
func (s Summary) Row(columns []string) []string {
	res := make([]string, len(columns))
	for i, v := range columns {
		switch v {
		case ColPortal:
			res[i] = s.Portal
		case ColPortalFasta:
			if s.Portal != "" {
				res[i] = s.Portal + ".fasta"
			}
		case ColSchemaVersion:
			res[i] = s.SchemaVersion
		case ColSummaryPath:
			res[i] = s.SummaryPath
		case ColError:
			res[i] = s.Error
		default:
			res[i] = s.Values[v]
		}
	}
	return res
}

// Resolve finds values of all fields in a decoded JSON document and the
// schema version of the document. Fields that are not found are absent
// from the values.
func (s *Schema) Resolve(doc map[string]any) (map[string]string, string) {
	values := make(map[string]string)
	versions := make(map[string]string)
	for _, f := range s.Fields {
		sec, _ := doc[f.Section].(map[string]any)
		if sec == nil {
			continue
		}
		for _, c := range f.Candidates {
			val, ok := lookup(sec, c.Key)
			if !ok {
				continue
			}
			values[f.Column] = format(val, f.Join)
			versions[f.Column] = c.Schema
			break
		}
	}

	var version string
	for _, v := range s.VersionColumns {
		if ver, ok := versions[v]; ok {
			version = ver
			break
		}
	}
	return values, version
}

// lookup tries the exact key first, then a case-insensitive match.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return m[k], true
		}
	}
	return nil, false
}

func format(v any, join string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		if join == "" {
			join = ", "
		}
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = format(e, join)
		}
		return strings.Join(parts, join)
	default:
		return fmt.Sprint(t)
	}
}

var summaryRe = regexp.MustCompile(
	`short_summary\..*?\.\..*?\.(?P<portal>.+?)\.fasta\.json$`,
)

// PortalFromPath finds the portal of a short summary JSON file. The portal
// is taken from names like
// 'short_summary.specific.fungi_odb10..Psost1.fasta.json', otherwise from
// the parent folder name without '.fasta'.
func PortalFromPath(path string) string {
	base := filepath.Base(path)
	m := summaryRe.FindStringSubmatch(base)
	if m != nil {
		if p := m[summaryRe.SubexpIndex("portal")]; p != "" {
			return p
		}
	}
	parent := filepath.Base(filepath.Dir(path))
	return strings.TrimSuffix(parent, ".fasta")
}
