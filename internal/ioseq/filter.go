package ioseq

import (
	"strconv"

	"github.com/biogo/biogo/seq/linear"
)

// FilterColumns of the length filter log.
var FilterColumns = []string{
	"portal", "total_sequences", "kept_sequences", "dropped_sequences",
}

// FilterLog describes filtering of one file.
type FilterLog struct {
	Portal string
	Total  int
	Kept   int
}

// Dropped is the number of removed sequences.
func (f FilterLog) Dropped() int {
	return f.Total - f.Kept
}

// Values returns fields in the order of FilterColumns.
func (f FilterLog) Values() []string {
	return []string{
		f.Portal, strconv.Itoa(f.Total), strconv.Itoa(f.Kept),
		strconv.Itoa(f.Dropped()),
	}
}

// FilterFile writes records of in with length within [minLen, maxLen] to out.
// A file without records gives zero counts and no output.
func FilterFile(in, out string, minLen, maxLen int) (FilterLog, error) {
	var seqs []*linear.Seq
	var total int
	err := eachSeq(in, func(s *linear.Seq) error {
		total++
		if l := s.Len(); l >= minLen && l <= maxLen {
			seqs = append(seqs, s)
		}
		return nil
	})
	if err != nil {
		return FilterLog{}, err
	}
	if total == 0 {
		return FilterLog{}, nil
	}

	sw, err := newSeqWriter(out)
	if err != nil {
		return FilterLog{}, err
	}
	for _, s := range seqs {
		if err = sw.write(s); err != nil {
			sw.abort()
			return FilterLog{}, err
		}
	}
	if err = sw.close(); err != nil {
		return FilterLog{}, err
	}
	return FilterLog{Total: total, Kept: len(seqs)}, nil
}
