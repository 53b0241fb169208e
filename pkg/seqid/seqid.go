// Package seqid normalizes FASTA identifiers of JGI proteomes.
package seqid

import "strings"

// Rename converts a JGI identifier 'jgi|<portal>|<id>|...' to
// '<portal>-<id>'. The second return value is false when the identifier
// does not follow this form and is returned unchanged.
func Rename(id string) (string, bool) {
	if !strings.HasPrefix(id, "jgi|") {
		return id, false
	}
	parts := strings.Split(id, "|")
	if len(parts) < 3 {
		return id, false
	}
	return parts[1] + "-" + parts[2], true
}

// Portal returns the part of a renamed identifier before the first '-',
// which is the portal of the sequence.
func Portal(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 {
		return id[:i]
	}
	return id
}
