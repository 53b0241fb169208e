package ioseq

import (
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// lineWidth of sequence lines in written FASTA files.
const lineWidth = 60

// eachSeq calls fn for every record of a protein FASTA file.
func eachSeq(path string, fn func(*linear.Seq) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.Protein))
	sc := seqio.NewScanner(r)
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if err = fn(s); err != nil {
			return err
		}
	}
	return sc.Error()
}

// seqWriter writes FASTA records into a file.
type seqWriter struct {
	f *os.File
	w *fasta.Writer
	n int
}

func newSeqWriter(path string) (*seqWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &seqWriter{f: f, w: fasta.NewWriter(f, lineWidth)}, nil
}

func (sw *seqWriter) write(s *linear.Seq) error {
	_, err := sw.w.Write(s)
	if err == nil {
		sw.n++
	}
	return err
}

func (sw *seqWriter) close() error {
	return sw.f.Close()
}

// abort closes and removes an unfinished file.
func (sw *seqWriter) abort() {
	sw.f.Close()
	os.Remove(sw.f.Name())
}
