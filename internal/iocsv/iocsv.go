// Package iocsv reads and writes CSV tables, the persisted state between
// pipeline stages.
package iocsv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/mycocurate/internal/iofs"
)

// Table is a CSV file in memory.
type Table struct {
	Header []string
	Rows   [][]string
}

// Has checks if the table has a column.
func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Index returns the position of a column or -1.
func (t *Table) Index(col string) int {
	for i, v := range t.Header {
		if v == col {
			return i
		}
	}
	return -1
}

// Maps returns rows keyed by column names. Short rows get empty values.
func (t *Table) Maps() []map[string]string {
	res := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]string, len(t.Header))
		for j, col := range t.Header {
			if j < len(row) {
				m[col] = row[j]
			} else {
				m[col] = ""
			}
		}
		res[i] = m
	}
	return res
}

// Column returns all values of a column, nil if there is no such column.
func (t *Table) Column(col string) []string {
	idx := t.Index(col)
	if idx < 0 {
		return nil
	}
	res := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			res = append(res, row[idx])
		} else {
			res = append(res, "")
		}
	}
	return res
}

// Read loads a CSV file with a header row.
func Read(path string) (*Table, error) {
	return read(path, ',')
}

// ReadTSV loads a tab-separated file with a header row.
func ReadTSV(path string) (*Table, error) {
	return read(path, '\t')
}

func read(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := decode(f, comma)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return res, nil
}

// Decode reads CSV data with a header row. A UTF-8 byte order mark is
// removed from the first header.
func Decode(r io.Reader) (*Table, error) {
	return decode(r, ',')
}

func decode(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	res := &Table{}
	if len(records) == 0 {
		return res, nil
	}
	res.Header = records[0]
	res.Header[0] = strings.TrimPrefix(res.Header[0], "\uFEFF")
	res.Rows = records[1:]
	return res, nil
}

// Write saves a CSV file, parent directories are created when needed.
func Write(path string, header []string, rows [][]string) error {
	return write(path, ',', header, rows)
}

// WriteTSV saves a tab-separated file.
func WriteTSV(path string, header []string, rows [][]string) error {
	return write(path, '\t', header, rows)
}

func write(path string, comma rune, header []string, rows [][]string) error {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return iofs.WriteFileError(path, err)
	}

	if err = encode(f, comma, header, rows); err != nil {
		f.Close()
		return iofs.WriteFileError(path, err)
	}
	if err = f.Close(); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}

// Encode writes header and rows as CSV.
func Encode(w io.Writer, header []string, rows [][]string) error {
	return encode(w, ',', header, rows)
}

func encode(w io.Writer, comma rune, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
