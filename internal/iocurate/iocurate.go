// Package iocurate runs reconciliation of the files metadata and saves the
// selection tables.
package iocurate

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/internal/iolisting"
	"github.com/gnames/mycocurate/internal/ioportal"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/curation"
	"github.com/gnames/mycocurate/pkg/listing"
	"github.com/gnames/mycocurate/pkg/parserpool"
)

// Extra columns of selection tables.
const (
	ColNewProteome    = "new_proteome"
	ColPortal         = "portal"
	ColCompressedFile = "compressed_file"
)

// Names of curation tables.
const (
	PhylogenyMissingFile    = "phylogeny_missing.csv"
	PhylogenyCompleteFile   = "phylogeny_complete.csv"
	PhylogenyIncompleteFile = "phylogeny_incomplete.csv"
	PhylogenyDoubleFile     = "phylogeny_double.csv"
	PhylogenySingleFile     = "phylogeny_single.csv"
	ProteomesAllFile        = "proteomes_all.csv"
	ProteomesDoubleFile     = "double_proteomes.csv"
	ProteomesSingleFile     = "single_proteomes.csv"
	ProteomesUnusualFile    = "unusual_proteomes.csv"
	ProteomesMissingFile    = "missing_proteomes.csv"
	CDSAllFile              = "cds_all.csv"
	CDSDoubleFile           = "double_cds.csv"
	CDSSingleFile           = "single_cds.csv"
	CDSMissingFile          = "missing_cds.csv"
	NewFilesFile            = "new_files.csv"
)

// CuratorImpl implements lifecycle.Curator.
type CuratorImpl struct {
	canonizer curation.Canonizer
}

// New creates a curator. With nil canonizer a pool of botanical name
// parsers is created for every run.
func New(c curation.Canonizer) *CuratorImpl {
	return &CuratorImpl{canonizer: c}
}

// Curate reads the portals table and the files metadata, reconciles them
// and writes all curation tables.
func (c *CuratorImpl) Curate(
	ctx context.Context,
	cfg *config.Config,
) (*curation.Result, error) {
	tbl, err := ioportal.ReadTable(cfg.PortalsTablePath())
	if err != nil {
		return nil, InputError(cfg.PortalsTablePath(), err)
	}

	metaPath := cfg.FilesMetadataPath()
	l, err := iolisting.ReadMetadata(metaPath)
	if err != nil {
		return nil, InputError(metaPath, err)
	}

	var prev *listing.Listing
	if prevPath := config.PrevPath(metaPath); iofs.IsFile(prevPath) {
		prev, err = iolisting.ReadMetadata(prevPath)
		if err != nil {
			slog.Warn("Cannot read previous files metadata", "path", prevPath, "error", err)
			prev = nil
		}
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	canon := c.canonizer
	if canon == nil {
		pool := parserpool.NewPool(cfg.JobsNumber)
		defer pool.Close()
		canon = pool
	}

	l = curation.AnnotateNew(l, tbl)
	res, err := curation.Curate(l, prev, canon)
	if err != nil {
		if errors.Is(err, curation.ErrOrganismCount) {
			slog.Error("Curation invariant failed", "error", err)
			return nil, InvariantError(err)
		}
		return nil, err
	}

	if err = write(cfg.CurationDir(), res); err != nil {
		return nil, err
	}

	if err = copyList(cfg); err != nil {
		return nil, err
	}

	report(res)
	return res, nil
}

func write(dir string, res *curation.Result) error {
	phylo := []struct {
		name string
		rows []curation.Phylogeny
	}{
		{PhylogenyMissingFile, res.PhylogenyMissing},
		{PhylogenyCompleteFile, res.PhylogenyComplete},
		{PhylogenyIncompleteFile, res.PhylogenyIncomplete},
		{PhylogenyDoubleFile, res.PhylogenyDouble},
		{PhylogenySingleFile, res.PhylogenySingle},
		{ProteomesMissingFile, res.ProteomesMissing},
		{CDSMissingFile, res.CDSMissing},
	}
	for _, v := range phylo {
		if err := writePhylogeny(filepath.Join(dir, v.name), v.rows); err != nil {
			return err
		}
	}

	files := []struct {
		name string
		rows []listing.File
	}{
		{ProteomesAllFile, res.ProteomesAll},
		{ProteomesDoubleFile, res.ProteomesDouble},
		{ProteomesSingleFile, res.ProteomesSingle},
		{ProteomesUnusualFile, res.ProteomesUnusual},
		{CDSAllFile, res.CDSAll},
		{CDSDoubleFile, res.CDSDouble},
		{CDSSingleFile, res.CDSSingle},
		{NewFilesFile, res.NewFiles},
	}
	for _, v := range files {
		if err := writeFiles(filepath.Join(dir, v.name), v.rows); err != nil {
			return err
		}
	}
	slog.Info("Saved curation tables", "dir", dir, "tables", len(phylo)+len(files))
	return nil
}

func writePhylogeny(path string, rows []curation.Phylogeny) error {
	data := make([][]string, len(rows))
	for i, v := range rows {
		data[i] = v.Values()
	}
	return iocsv.Write(path, curation.PhylogenyColumns, data)
}

// SelectionHeader is the column list of file selection tables.
func SelectionHeader() []string {
	res := slices.Clone(iolisting.Header())
	return append(res, ColNewProteome, ColPortal, ColCompressedFile)
}

func writeFiles(path string, rows []listing.File) error {
	data := make([][]string, len(rows))
	for i, v := range rows {
		row := append(v.Values(), v.RecordID())
		data[i] = append(row,
			strconv.FormatBool(v.NewProteome), v.Organism, v.FileName,
		)
	}
	return iocsv.Write(path, SelectionHeader(), data)
}

// copyList seeds the download list of proteomes. An existing list is
// edited by hand between runs and is not replaced.
func copyList(cfg *config.Config) error {
	dst := cfg.ProteomesListPath()
	if iofs.IsFile(dst) {
		slog.Info("Proteomes list exists, keeping it", "path", dst)
		return nil
	}
	if err := iofs.TouchDir(filepath.Dir(dst)); err != nil {
		return err
	}
	src := filepath.Join(cfg.CurationDir(), ProteomesAllFile)
	if err := iofs.CopyFile(src, dst); err != nil {
		return err
	}
	slog.Info("Created proteomes list", "path", dst)
	return nil
}

func report(res *curation.Result) {
	slog.Info(
		"Curation finished",
		"organisms", len(res.Organisms),
		"phylogeny_missing", len(res.PhylogenyMissing),
		"phylogeny_incomplete", len(res.PhylogenyIncomplete),
		"phylogeny_double", len(res.PhylogenyDouble),
		"phylogeny_single", len(res.PhylogenySingle),
		"proteomes", len(res.ProteomesAll),
		"proteomes_unusual", len(res.ProteomesUnusual),
		"proteomes_missing", len(res.ProteomesMissing),
		"cds", len(res.CDSAll),
		"cds_missing", len(res.CDSMissing),
		"new_files", len(res.NewFiles),
	)
	gn.Info(`Organisms: <em>%d</em>
  phylogeny: missing <em>%d</em>, incomplete <em>%d</em>, double <em>%d</em>, single <em>%d</em>
  proteomes: <em>%d</em> (double <em>%d</em>, unusual <em>%d</em>, missing <em>%d</em>)
  CDS: <em>%d</em> (double <em>%d</em>, missing <em>%d</em>)
  new files: <em>%d</em>`,
		len(res.Organisms),
		len(res.PhylogenyMissing), len(res.PhylogenyIncomplete),
		len(res.PhylogenyDouble), len(res.PhylogenySingle),
		len(res.ProteomesAll), len(res.ProteomesDouble),
		len(res.ProteomesUnusual), len(res.ProteomesMissing),
		len(res.CDSAll), len(res.CDSDouble), len(res.CDSMissing),
		len(res.NewFiles),
	)
}
