// Package iobusco collects BUSCO short summaries of proteomes into one
// table.
package iobusco

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/busco"
	"github.com/gnames/mycocurate/pkg/config"
)

// Report is the outcome of a summary run.
type Report struct {
	Summaries []busco.Summary

	// MissingJSON are portals without a short summary JSON file.
	MissingJSON []string
}

// LoadSchema reads field schemas from the config directory, or uses the
// embedded default when there is no user file.
func LoadSchema(homeDir string) (*busco.Schema, error) {
	data := []byte(iofs.BuscoSchemasYAML)
	path := "embedded busco_schemas.yaml"
	if homeDir != "" {
		if p := config.BuscoSchemasFilePath(homeDir); iofs.IsFile(p) {
			bs, err := os.ReadFile(p)
			if err != nil {
				return nil, SchemaError(p, err)
			}
			data, path = bs, p
		}
	}
	res, err := busco.NewSchema(data)
	if err != nil {
		return nil, SchemaError(path, err)
	}
	return res, nil
}

// Summarize parses the newest short summary of every portal of the
// proteomes list and writes the summary table sorted by portal. Every
// portal must have a '<portal>.fasta' results folder.
func Summarize(ctx context.Context, cfg *config.Config) (*Report, error) {
	dir := cfg.BuscoDir()
	if err := iofs.CheckDirs(filepath.Dir(dir), dir); err != nil {
		return nil, err
	}

	schema, err := LoadSchema(cfg.HomeDir)
	if err != nil {
		return nil, err
	}

	portals, err := listPortals(cfg.ProteomesListPath())
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, v := range portals {
		if !iofs.IsDir(filepath.Join(dir, v+".fasta")) {
			missing = append(missing, v+".fasta")
		}
	}
	if len(missing) > 0 {
		return nil, iofs.MissingFilesError(dir, missing)
	}
	gn.Info("All <em>%d</em> expected folders are present", len(portals))

	res := &Report{}
	for _, portal := range portals {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		path, err := newestSummary(filepath.Join(dir, portal+".fasta"))
		if err != nil || path == "" {
			res.MissingJSON = append(res.MissingJSON, portal)
			continue
		}
		res.Summaries = append(res.Summaries, parse(schema, portal, path))
	}

	slices.SortStableFunc(res.Summaries, func(a, b busco.Summary) int {
		return strings.Compare(a.Portal, b.Portal)
	})

	if len(res.Summaries) == 0 {
		gn.Warn("No BUSCO summaries parsed")
	} else {
		cols := schema.Columns()
		rows := make([][]string, len(res.Summaries))
		for i, v := range res.Summaries {
			rows[i] = v.Row(cols)
		}
		out := cfg.BuscoSummaryPath()
		if err = iocsv.Write(out, cols, rows); err != nil {
			return nil, err
		}
		slog.Info("Saved BUSCO summary", "path", out, "rows", len(rows))
		gn.Info("Parsed <em>%d</em> BUSCO summaries into <em>%s</em>", len(rows), out)
	}

	if len(res.MissingJSON) > 0 {
		slog.Warn("No summary JSON", "portals", res.MissingJSON)
		gn.Warn(
			"No summary JSON found for <em>%d</em> portals:\n%s",
			len(res.MissingJSON), strings.Join(res.MissingJSON, ", "),
		)
	}
	return res, nil
}

func listPortals(path string) ([]string, error) {
	tbl, err := iocsv.Read(path)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, v := range tbl.Column("portal") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res, nil
}

// newestSummary returns the most recently modified 'short_summary*.json'
// file of a folder, or an empty string.
func newestSummary(dir string) (string, error) {
	names, err := iofs.ListFiles(dir, "short_summary*.json")
	if err != nil {
		return "", err
	}
	var res string
	var newest int64
	for _, v := range names {
		path := filepath.Join(dir, v)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if t := info.ModTime().UnixNano(); res == "" || t > newest {
			res, newest = path, t
		}
	}
	return res, nil
}

func parse(schema *busco.Schema, portal, path string) busco.Summary {
	res := busco.Summary{Portal: portal, SummaryPath: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Error = fmt.Sprintf("Failed to read JSON: %s", err)
		return res
	}

	var doc map[string]any
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &doc); err != nil {
		slog.Error("Cannot parse BUSCO summary", "path", path, "error", err)
		res.Error = fmt.Sprintf("Failed to parse JSON: %s", err)
		return res
	}

	res.Values, res.SchemaVersion = schema.Resolve(doc)
	if p := busco.PortalFromPath(path); p != "" {
		res.Portal = p
	}
	return res
}
