// Package ioiprscan summarizes InterProScan cluster submit logs.
package ioiprscan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
)

const (
	LogPattern = "iprscan_*.submit.log"
	logPrefix  = "iprscan_"
	logSuffix  = ".submit.log"
)

// Columns of the summary CSV.
var Columns = []string{
	"portal", "total_subjobs", "ok_subjobs", "failed_subjobs",
	"missing_subjobs", "path", "error",
}

var (
	totalRe  = regexp.MustCompile(`(?i)The job is split into\s+(\d+)\s+pieces`)
	subjobRe = regexp.MustCompile(`(?i)subjob\s+(\d+)\s+(OK|FAILED)`)
)

// Summary describes one submit log. Total and Missing are negative when
// the log does not report the number of pieces.
type Summary struct {
	Portal  string
	Total   int
	OK      int
	Failed  int
	Missing int
	Path    string
	Error   string
}

func (s Summary) Values() []string {
	count := func(n int) string {
		if n < 0 {
			return ""
		}
		return strconv.Itoa(n)
	}
	ok, failed := count(s.OK), count(s.Failed)
	if s.Error != "" {
		ok, failed = "", ""
	}
	return []string{
		s.Portal, count(s.Total), ok, failed, count(s.Missing), s.Path, s.Error,
	}
}

// PortalFromName removes 'iprscan_' prefix and '.submit.log' suffix.
func PortalFromName(name string) string {
	res := strings.TrimPrefix(name, logPrefix)
	return strings.TrimSuffix(res, logSuffix)
}

// Parse counts subjobs in the text of a submit log.
func Parse(text string) Summary {
	res := Summary{Total: -1, Missing: -1}
	if m := totalRe.FindStringSubmatch(text); m != nil {
		res.Total, _ = strconv.Atoi(m[1])
	}
	for _, m := range subjobRe.FindAllStringSubmatch(text, -1) {
		switch strings.ToUpper(m[2]) {
		case "OK":
			res.OK++
		case "FAILED":
			res.Failed++
		}
	}
	if res.Total >= 0 {
		res.Missing = max(res.Total-res.OK-res.Failed, 0)
	}
	return res
}

// ParseFile reads and parses a submit log. A read failure is kept in the
// Error field.
func ParseFile(path string) Summary {
	portal := PortalFromName(filepath.Base(path))
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("Cannot read submit log", "path", path, "error", err)
		return Summary{
			Portal:  portal,
			Total:   -1,
			Missing: -1,
			Path:    path,
			Error:   fmt.Sprintf("Could not read file: %s", err),
		}
	}
	res := Parse(string(data))
	res.Portal = portal
	res.Path = path
	return res
}

// Summarize parses all submit logs of a folder in name order and writes
// the summary to output. No logs is not an error, the result is empty and
// nothing is written.
func Summarize(dir, output string) ([]Summary, error) {
	if err := iofs.CheckDirs(dir); err != nil {
		return nil, err
	}
	names, err := iofs.ListFiles(dir, LogPattern)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		gn.Info("No files found in <em>%s</em> matching %s", dir, LogPattern)
		return nil, nil
	}

	res := make([]Summary, len(names))
	rows := make([][]string, len(names))
	for i, v := range names {
		res[i] = ParseFile(filepath.Join(dir, v))
		rows[i] = res[i].Values()
	}

	if err = iocsv.Write(output, Columns, rows); err != nil {
		return nil, err
	}
	slog.Info("Saved iprscan summary", "path", output, "rows", len(rows))
	gn.Info("Wrote <em>%s</em> with %d rows", output, len(rows))
	return res, nil
}

// Table renders summaries as a text table.
func Table(ss []Summary) string {
	rows := make([][]string, len(ss))
	for i, v := range ss {
		rows[i] = v.Values()
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.String()
}
