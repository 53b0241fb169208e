package ioportal

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/pkg/portal"
	"github.com/xuri/excelize/v2"
)

var errEmptySheet = errors.New("spreadsheet has no rows")

// readXLSX loads the first sheet of a saved catalog. Hyperlinks of Name and
// Published cells are taken from the cell metadata.
func readXLSX(path string) (*rawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptySheet
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errEmptySheet
	}

	res := &rawTable{headers: trimAll(rows[0])}
	linkCols := make(map[int]struct{})
	for i, v := range res.headers {
		if v == portal.ColName || v == portal.ColPublished {
			linkCols[i] = struct{}{}
		}
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		cells := make([]cell, len(res.headers))
		for j := range res.headers {
			if j < len(row) {
				cells[j].text = strings.TrimSpace(row[j])
			}
			if _, ok := linkCols[j]; !ok {
				continue
			}
			// sheet rows are 1-based and the first one is the header
			name, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			ok, link, err := f.GetCellHyperLink(sheet, name)
			if err != nil {
				return nil, err
			}
			if ok {
				cells[j].link = link
			}
		}
		res.rows = append(res.rows, cells)
	}
	return res, nil
}

// readSpreadsheet loads a saved catalog: xlsx file, or CSV file written by
// a previous run or exported from the page.
func readSpreadsheet(path string) (*portal.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		raw, err := readXLSX(path)
		if err != nil {
			return nil, err
		}
		return raw.toTable(true), nil
	case ".csv":
		return readCSV(path)
	default:
		return nil, errors.New("unsupported spreadsheet format, use xlsx or csv")
	}
}

// readCSV accepts a portals table written by mycocurate, or a CSV export
// with Name_link and Published_link columns.
func readCSV(path string) (*portal.Table, error) {
	tbl, err := iocsv.Read(path)
	if err != nil {
		return nil, err
	}
	if tbl.Has(portal.ColPortal) {
		return fromCSV(tbl), nil
	}

	raw := &rawTable{}
	idx := make(map[string]int)
	for i, v := range tbl.Header {
		idx[v] = i
	}
	var cols []int
	for i, v := range tbl.Header {
		if strings.HasSuffix(v, portal.LinkSuffix) {
			continue
		}
		raw.headers = append(raw.headers, v)
		cols = append(cols, i)
	}
	for _, row := range tbl.Rows {
		cells := make([]cell, len(cols))
		for j, col := range cols {
			cells[j].text = value(row, col)
			if li, ok := idx[tbl.Header[col]+portal.LinkSuffix]; ok {
				cells[j].link = value(row, li)
			}
		}
		raw.rows = append(raw.rows, cells)
	}
	return raw.toTable(true), nil
}

func value(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func trimAll(ss []string) []string {
	res := make([]string, len(ss))
	for i, v := range ss {
		res[i] = strings.TrimSpace(v)
	}
	return res
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
