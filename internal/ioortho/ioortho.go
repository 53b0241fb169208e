// Package ioortho selects single-copy orthogroups from OrthoFinder gene
// counts and stages their sequences for species tree inference.
package ioortho

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iocsv"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/config"
)

const (
	ColOrthogroup = "Orthogroup"
	ColTotal      = "Total"
)

// Columns of the single-copy orthogroups table.
var Columns = []string{
	ColOrthogroup, "single_copy_species", "total_species", "fraction",
}

// Orthogroup is a selected single-copy orthogroup.
type Orthogroup struct {
	Name       string
	SingleCopy int
	Species    int
	Fraction   float64
}

func (o Orthogroup) Values() []string {
	return []string{
		o.Name,
		strconv.Itoa(o.SingleCopy),
		strconv.Itoa(o.Species),
		strconv.FormatFloat(o.Fraction, 'f', 4, 64),
	}
}

// Report is the outcome of a selection run.
type Report struct {
	Orthogroups int
	Selected    []Orthogroup
	Copied      int
	Missing     []string
}

// CheckThreshold accepts values in (0, 1].
func CheckThreshold(t float64) error {
	if t <= 0 || t > 1 {
		return ThresholdError(t)
	}
	return nil
}

// Select returns orthogroups where the fraction of species with exactly
// one gene reaches the threshold.
func Select(tbl *iocsv.Table, threshold float64) ([]Orthogroup, int, error) {
	if err := CheckThreshold(threshold); err != nil {
		return nil, 0, err
	}

	ogIdx := tbl.Index(ColOrthogroup)
	if ogIdx < 0 {
		return nil, 0, fmt.Errorf("column '%s' is missing", ColOrthogroup)
	}
	var species []int
	for i, v := range tbl.Header {
		if i == ogIdx || v == ColTotal {
			continue
		}
		species = append(species, i)
	}
	if len(species) == 0 {
		return nil, 0, errors.New("no species columns")
	}

	var res []Orthogroup
	for n, row := range tbl.Rows {
		if ogIdx >= len(row) {
			continue
		}
		var single int
		for _, i := range species {
			if i >= len(row) {
				continue
			}
			count, err := strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, 0, fmt.Errorf("row %d, column '%s': %w",
					n+2, tbl.Header[i], err)
			}
			if count == 1 {
				single++
			}
		}
		frac := float64(single) / float64(len(species))
		if frac >= threshold {
			res = append(res, Orthogroup{
				Name:       row[ogIdx],
				SingleCopy: single,
				Species:    len(species),
				Fraction:   frac,
			})
		}
	}
	return res, len(tbl.Rows), nil
}

// SelectSingleCopy writes the single-copy orthogroups table. With withCopy set
// the FASTA file of every selected orthogroup goes to the species tree
// sequences directory.
func SelectSingleCopy(
	ctx context.Context,
	cfg *config.Config,
	withCopy bool,
) (*Report, error) {
	path := cfg.GeneCountPath()
	tbl, err := iocsv.ReadTSV(path)
	if err != nil {
		return nil, GeneCountError(path, err)
	}

	ogs, total, err := Select(tbl, cfg.Orthogroups.Threshold)
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return nil, err
		}
		return nil, GeneCountError(path, err)
	}
	res := &Report{Orthogroups: total, Selected: ogs}

	rows := make([][]string, len(ogs))
	for i, v := range ogs {
		rows[i] = v.Values()
	}
	out := cfg.SingleCopyPath()
	if err = iocsv.WriteTSV(out, Columns, rows); err != nil {
		return nil, err
	}
	slog.Info("Selected single-copy orthogroups",
		"selected", len(ogs), "total", total,
		"threshold", cfg.Orthogroups.Threshold,
	)
	gn.Info(
		"Found <em>%s</em> single-copy orthogroups out of %s (threshold %g)",
		humanize.Comma(int64(len(ogs))), humanize.Comma(int64(total)),
		cfg.Orthogroups.Threshold,
	)

	if !withCopy {
		return res, nil
	}
	if err = copyFasta(ctx, cfg, res); err != nil {
		return nil, err
	}
	return res, nil
}

func copyFasta(ctx context.Context, cfg *config.Config, r *Report) error {
	src := cfg.OrthogroupSequencesDir()
	dst := cfg.SpeciesTreeSeqDir()
	if err := iofs.CheckDirs(src); err != nil {
		return err
	}
	if err := iofs.TouchDir(dst); err != nil {
		return err
	}

	var bar *pb.ProgressBar
	if len(r.Selected) > 0 {
		bar = pb.Full.Start(len(r.Selected))
		bar.Set("prefix", "Copying orthogroups: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, v := range r.Selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		bar.Increment()
		name := v.Name + ".fa"
		in := filepath.Join(src, name)
		if !iofs.IsFile(in) {
			r.Missing = append(r.Missing, name)
			continue
		}
		if err := iofs.CopyFile(in, filepath.Join(dst, name)); err != nil {
			return err
		}
		r.Copied++
	}

	if len(r.Missing) > 0 {
		slog.Warn("Orthogroup FASTA files not found",
			"dir", src, "files", r.Missing,
		)
		gn.Warn("<em>%d</em> orthogroup FASTA files not found in %s",
			len(r.Missing), src)
	}
	gn.Info("Copied <em>%d</em> FASTA files to <em>%s</em>", r.Copied, dst)
	return nil
}
