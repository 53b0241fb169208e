// Package ioportal acquires the MycoCosm portal catalog from the live page
// or from a saved spreadsheet, and keeps it as a CSV table.
package ioportal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/portal"
)

type acquirer struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a portal.Acquirer that uses configured page URL and
// spreadsheet fallback.
func New(cfg *config.Config) portal.Acquirer {
	return &acquirer{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Acquire downloads the catalog. If the download fails, the configured
// spreadsheet is used instead.
func (a *acquirer) Acquire(ctx context.Context) (*portal.Table, error) {
	url := a.cfg.Portal.URL
	res, err := a.download(ctx)
	if err == nil {
		slog.Info("Downloaded portal table", "url", url, "portals", len(res.Records))
		return res, nil
	}
	slog.Error("Cannot download portal table", "url", url, "error", err)

	path := a.cfg.Portal.Spreadsheet
	if path == "" {
		return nil, PortalUnavailableError(url, "", err)
	}

	gn.Warn("Cannot download portal table, using <em>%s</em>", path)
	res, err2 := readSpreadsheet(path)
	if err2 != nil {
		err2 = PortalSpreadsheetError(path, err2)
		slog.Error("Cannot read portal spreadsheet", "path", path, "error", err2)
		return nil, PortalUnavailableError(url, path, errors.Join(err, err2))
	}
	slog.Info("Loaded portal spreadsheet", "path", path, "portals", len(res.Records))
	return res, nil
}

func (a *acquirer) download(ctx context.Context) (*portal.Table, error) {
	url := a.cfg.Portal.URL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, PortalDownloadError(url, err)
	}
	req.Header.Set("User-Agent", a.cfg.Portal.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, PortalDownloadError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, PortalDownloadError(url, fmt.Errorf("status %s", resp.Status))
	}

	raw, err := parseHTML(resp.Body, url)
	if err != nil {
		return nil, PortalDownloadError(url, err)
	}
	return raw.toTable(false), nil
}

// toTable converts a raw table to portal records. Portal comes from the
// Name link, reference from the Published link. When textFallback is true,
// a Name cell without a link gives its text as the portal.
func (r *rawTable) toTable(textFallback bool) *portal.Table {
	res := &portal.Table{
		Columns: append(append([]string(nil), r.headers...),
			portal.ColPortal, portal.ColReference),
	}
	for _, row := range r.rows {
		rec := portal.Record{Fields: make(map[string]string, len(r.headers))}
		for i, h := range r.headers {
			var c cell
			if i < len(row) {
				c = row[i]
			}
			rec.Fields[h] = c.text
			switch h {
			case portal.ColName:
				rec.Portal = portal.PortalFromLink(c.link)
				if rec.Portal == "" && textFallback {
					rec.Portal = c.text
				}
			case portal.ColPublished:
				rec.Reference = c.link
			}
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// CheckColumns verifies that the table can give published portals.
func CheckColumns(t *portal.Table) error {
	var missing []string
	for _, v := range []string{portal.ColPublished, portal.ColPortal} {
		if !t.HasColumn(v) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return PortalColumnsError(missing)
	}
	return nil
}

// ReadTable loads a portals table written by WriteTable.
func ReadTable(path string) (*portal.Table, error) {
	tbl, err := iocsv.Read(path)
	if err != nil {
		return nil, err
	}
	return fromCSV(tbl), nil
}

func fromCSV(tbl *iocsv.Table) *portal.Table {
	res := &portal.Table{}
	for _, v := range tbl.Header {
		if v != portal.ColNewProteome {
			res.Columns = append(res.Columns, v)
		}
	}
	for _, m := range tbl.Maps() {
		rec := portal.Record{
			Portal:    m[portal.ColPortal],
			Reference: m[portal.ColReference],
			Fields:    make(map[string]string),
		}
		rec.NewProteome, _ = strconv.ParseBool(m[portal.ColNewProteome])
		for k, v := range m {
			switch k {
			case portal.ColPortal, portal.ColReference, portal.ColNewProteome:
			default:
				rec.Fields[k] = v
			}
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// WriteTable saves a portals table with the new_proteome column.
func WriteTable(path string, t *portal.Table) error {
	header := append([]string(nil), t.Columns...)
	for _, v := range []string{portal.ColPortal, portal.ColReference} {
		if !t.HasColumn(v) {
			header = append(header, v)
		}
	}
	header = append(header, portal.ColNewProteome)

	rows := make([][]string, len(t.Records))
	for i, rec := range t.Records {
		row := make([]string, len(header))
		for j, h := range header {
			switch h {
			case portal.ColPortal:
				row[j] = rec.Portal
			case portal.ColReference:
				row[j] = rec.Reference
			case portal.ColNewProteome:
				row[j] = strconv.FormatBool(rec.NewProteome)
			default:
				row[j] = rec.Fields[h]
			}
		}
		rows[i] = row
	}
	return iocsv.Write(path, header, rows)
}
