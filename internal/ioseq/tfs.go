package ioseq

import (
	"bufio"
	"os"
	"strings"

	"github.com/biogo/biogo/seq/linear"
)

// ParseDomtblout returns unique sequence ids (the fourth column) of an
// HMMER domain table.
func ParseDomtblout(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res := make(map[string]struct{})
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			res[fields[3]] = struct{}{}
		}
	}
	return res, sc.Err()
}

// SelectSeqs writes records of in with ids from the set to out and returns
// their number. Without matches the output file is removed.
func SelectSeqs(in, out string, ids map[string]struct{}) (int, error) {
	sw, err := newSeqWriter(out)
	if err != nil {
		return 0, err
	}
	err = eachSeq(in, func(s *linear.Seq) error {
		if _, ok := ids[s.ID]; !ok {
			return nil
		}
		return sw.write(s)
	})
	if err != nil || sw.n == 0 {
		sw.abort()
		return 0, err
	}
	return sw.n, sw.close()
}
