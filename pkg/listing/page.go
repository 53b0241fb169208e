package listing

import (
	"fmt"
	"regexp"
	"strconv"
)

var pageRe = regexp.MustCompile(`^all_files_(.+)_page_(\d+)\.json$`)

// PageFileName is the cache file name of one page of an organism listing.
func PageFileName(organism string, page int) string {
	return fmt.Sprintf("all_files_%s_page_%d.json", organism, page)
}

// ParsePageFileName returns the organism and the page number of a cache
// file name.
func ParsePageFileName(name string) (string, int, bool) {
	m := pageRe.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// Page is a response of the file-listing API. Files are kept as generic
// JSON objects, their fields differ between file types.
type Page struct {
	Organisms []struct {
		Files []map[string]any `json:"files"`
	} `json:"organisms"`
}

// Files returns files of the first organism of the page.
func (p Page) Files() []map[string]any {
	if len(p.Organisms) == 0 {
		return nil
	}
	return p.Organisms[0].Files
}
