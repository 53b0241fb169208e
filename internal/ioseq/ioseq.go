// Package ioseq prepares proteome sequence files: it extracts downloaded
// archives, normalizes FASTA identifiers, filters sequences by length and
// collects transcription factor sequences.
package ioseq

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/errcode"
)

// Columns of proteome lists.
const (
	ColPortal         = "portal"
	ColCompressedFile = "compressed_file"
	ColExtractedFile  = "extracted_file"
	ColRenamedFile    = "renamed_file"
)

// ProcessorImpl implements lifecycle.Processor.
type ProcessorImpl struct{}

// New creates a sequence processor.
func New() *ProcessorImpl {
	return &ProcessorImpl{}
}

// Process extracts archives of the proteomes list and renames identifiers
// of extracted files. Every file of the list must be present in the
// compressed directory. Failures of single files are logged and leave
// empty paths in the processed list.
func (p *ProcessorImpl) Process(ctx context.Context, cfg *config.Config) error {
	compDir := cfg.CompressedDir()
	if err := iofs.CheckDirs(cfg.ProteomesDir(), compDir); err != nil {
		return err
	}

	tbl, err := iocsv.Read(cfg.ProteomesListPath())
	if err != nil {
		return err
	}

	var expected []string
	for _, v := range tbl.Column(ColCompressedFile) {
		if v = strings.TrimSpace(v); v != "" {
			expected = append(expected, v)
		}
	}
	if err = iofs.CheckFiles(compDir, expected); err != nil {
		return err
	}
	gn.Info("All <em>%d</em> expected files are present", len(expected))

	extDir, renDir := cfg.ExtractedDir(), cfg.RenamedDir()
	for _, v := range []string{extDir, renDir} {
		if err = iofs.TouchDir(v); err != nil {
			return err
		}
	}

	maps := tbl.Maps()
	extracted := make([]string, len(maps))
	for i, m := range maps {
		if err = ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimSpace(m[ColCompressedFile])
		if name == "" {
			continue
		}
		path, err := Extract(filepath.Join(compDir, name), extDir)
		if err != nil {
			var gnErr *gn.Error
			if errors.As(err, &gnErr) && gnErr.Code == errcode.SeqUnsupportedArchiveError {
				slog.Warn("Skipping unsupported file", "file", name)
			} else {
				slog.Error("Cannot extract file", "file", name, "error", err)
			}
			continue
		}
		slog.Info("Extracted file", "file", name, "path", path)
		extracted[i] = path
	}

	renamed := make([]string, len(maps))
	logs := make([][]string, len(maps))
	var ok int
	for i, m := range maps {
		if err = ctx.Err(); err != nil {
			return err
		}
		in := extracted[i]
		var out string
		if in != "" {
			out = filepath.Join(renDir, renamedName(m[ColPortal], in))
		}
		res, err := RenameFile(in, out)
		logs[i] = res.Values()
		switch {
		case err != nil:
			slog.Error("Cannot rename sequences", "file", in, "error", err)
		case res.FirstIDBefore == Missing:
			slog.Warn("Extracted file is missing", "row", i+1, "file", in)
		default:
			slog.Info(
				"Renamed sequences",
				"path", out, "renamed", res.Renamed, "total", res.Total,
			)
			renamed[i] = out
			ok++
		}
	}

	header, rows := addColumns(tbl, extracted, renamed)
	if err = iocsv.Write(cfg.ProcessedListPath(), header, rows); err != nil {
		return err
	}
	if err = iocsv.Write(cfg.ProcessedLogPath(), LogColumns, logs); err != nil {
		return err
	}
	gn.Info(
		"Renamed <em>%d</em> of <em>%d</em> proteomes, list: <em>%s</em>",
		ok, len(maps), cfg.ProcessedListPath(),
	)
	return nil
}

// renamedName is '<portal>.fasta', or the base name of the input without
// a portal.
func renamedName(portal, in string) string {
	portal = strings.TrimSpace(portal)
	if portal == "" {
		return filepath.Base(in)
	}
	return portal + ".fasta"
}

// addColumns sets extracted and renamed paths, replacing columns that a
// previous run added.
func addColumns(tbl *iocsv.Table, extracted, renamed []string) ([]string, [][]string) {
	header := append([]string(nil), tbl.Header...)
	ext, ren := tbl.Index(ColExtractedFile), tbl.Index(ColRenamedFile)
	if ext < 0 {
		ext = len(header)
		header = append(header, ColExtractedFile)
	}
	if ren < 0 {
		ren = len(header)
		header = append(header, ColRenamedFile)
	}

	rows := make([][]string, len(tbl.Rows))
	for i, v := range tbl.Rows {
		row := make([]string, len(header))
		copy(row, v)
		row[ext] = extracted[i]
		row[ren] = renamed[i]
		rows[i] = row
	}
	return header, rows
}

// Filter writes sequences of '.fasta' files of the final directory with
// lengths within configured bounds into the clean directory.
func (p *ProcessorImpl) Filter(ctx context.Context, cfg *config.Config) error {
	dir := cfg.FinalDir()
	if err := iofs.CheckDirs(dir); err != nil {
		return err
	}
	names, err := iofs.ListFiles(dir, "*.fasta")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return NoFastaFilesError(dir)
	}

	clean := cfg.CleanDir()
	if err = iofs.TouchDir(clean); err != nil {
		return err
	}

	minLen, maxLen := cfg.Filter.MinLength, cfg.Filter.MaxLength
	slog.Info("Filtering sequences", "files", len(names), "min", minLen, "max", maxLen)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		if err = ctx.Err(); err != nil {
			return err
		}
		portal := strings.TrimSuffix(name, ".fasta")
		res, err := FilterFile(
			filepath.Join(dir, name), filepath.Join(clean, name), minLen, maxLen,
		)
		res.Portal = portal
		switch {
		case err != nil:
			slog.Error("Cannot filter sequences", "file", name, "error", err)
		case res.Total == 0:
			slog.Warn("No sequences found, skipping", "file", name)
		default:
			slog.Info(
				"Filtered sequences",
				"portal", portal, "total", res.Total,
				"kept", res.Kept, "dropped", res.Dropped(),
			)
		}
		rows = append(rows, res.Values())
	}

	if err = iocsv.Write(cfg.CleanedLogPath(), FilterColumns, rows); err != nil {
		return err
	}
	gn.Info("Filtered <em>%d</em> proteomes into <em>%s</em>", len(names), clean)
	return nil
}

// ExtractTFs saves sequences with hmmscan hits of every renamed proteome
// of the transcription factor list into '<portal>_tfs.fasta'.
func (p *ProcessorImpl) ExtractTFs(ctx context.Context, cfg *config.Config) error {
	tbl, err := iocsv.Read(cfg.TFListPath())
	if err != nil {
		return err
	}

	out := cfg.TFCleanDir()
	if err = iofs.TouchDir(out); err != nil {
		return err
	}

	var files int
	for _, m := range tbl.Maps() {
		if err = ctx.Err(); err != nil {
			return err
		}
		in := strings.TrimSpace(m[ColRenamedFile])
		portal := strings.TrimSpace(m[ColPortal])
		if in == "" || !iofs.IsFile(in) {
			slog.Warn("Proteome file not found", "file", in)
			continue
		}
		if portal == "" {
			slog.Warn("No portal for proteome, skipping", "file", in)
			continue
		}

		dom := filepath.Join(cfg.HmmscanDir(), portal+".domtblout")
		if !iofs.IsFile(dom) {
			slog.Warn("Domain table not found", "path", dom)
			continue
		}
		ids, err := ParseDomtblout(dom)
		if err != nil {
			slog.Error("Cannot parse domain table", "path", dom, "error", err)
			continue
		}
		if len(ids) == 0 {
			slog.Info("No transcription factors found", "path", dom)
			continue
		}

		path := filepath.Join(out, portal+"_tfs.fasta")
		n, err := SelectSeqs(in, path, ids)
		switch {
		case err != nil:
			slog.Error("Cannot extract transcription factors", "file", in, "error", err)
		case n == 0:
			slog.Info("No matching sequences", "portal", portal)
		default:
			slog.Info("Saved transcription factors", "path", path, "sequences", n)
			files++
		}
	}
	gn.Info("Saved transcription factors of <em>%d</em> proteomes", files)
	return nil
}
