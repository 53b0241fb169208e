package ioseq

import (
	"path/filepath"
	"strconv"

	"github.com/biogo/biogo/seq/linear"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/seqid"
)

// Placeholders of the renaming log.
const (
	Missing = "MISSING"
	Error   = "ERROR"
)

// LogColumns of the renaming log.
var LogColumns = []string{
	"file", "total_sequences", "renamed_sequences",
	"first_id_before", "first_id_after",
}

// RenameLog describes renaming of one file.
type RenameLog struct {
	File          string
	Total         int
	Renamed       int
	FirstIDBefore string
	FirstIDAfter  string
}

// Values returns fields in the order of LogColumns.
func (r RenameLog) Values() []string {
	return []string{
		r.File, strconv.Itoa(r.Total), strconv.Itoa(r.Renamed),
		r.FirstIDBefore, r.FirstIDAfter,
	}
}

// missingLog is the log of an input that does not exist.
func missingLog(in string) RenameLog {
	res := RenameLog{File: Missing, FirstIDBefore: Missing, FirstIDAfter: Missing}
	if in != "" {
		res.File = filepath.Base(in)
	}
	return res
}

// RenameFile writes records of in to out, replacing 'jgi|<portal>|<id>|...'
// identifiers with '<portal>-<id>'. Renamed records lose their
// description. Missing input gives a MISSING log and no error, unreadable
// input gives an ERROR log, an error and no output file.
func RenameFile(in, out string) (RenameLog, error) {
	if in == "" || !iofs.IsFile(in) {
		return missingLog(in), nil
	}
	res := RenameLog{File: filepath.Base(in)}

	sw, err := newSeqWriter(out)
	if err != nil {
		return errorLog(in), RenameError(in, err)
	}

	err = eachSeq(in, func(s *linear.Seq) error {
		id := s.ID
		newID, ok := seqid.Rename(id)
		if ok {
			s.ID = newID
			s.Desc = ""
			res.Renamed++
		}
		if res.Total == 0 {
			res.FirstIDBefore = id
			if ok || !isJGI(id) {
				res.FirstIDAfter = newID
			}
		}
		res.Total++
		return sw.write(s)
	})
	if err != nil {
		sw.abort()
		return errorLog(in), RenameError(in, err)
	}
	if err = sw.close(); err != nil {
		return errorLog(in), RenameError(in, err)
	}
	return res, nil
}

func errorLog(in string) RenameLog {
	return RenameLog{File: filepath.Base(in), FirstIDBefore: Error, FirstIDAfter: Error}
}

func isJGI(id string) bool {
	return len(id) >= 4 && id[:4] == "jgi|"
}
