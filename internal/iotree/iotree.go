// Package iotree prepares IQ-TREE gene trees for ASTRAL by renaming tip
// labels from sequence ids to portals.
package iotree

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/newick"
	"golang.org/x/sync/errgroup"
)

const (
	TreePattern = "*.treefile"
	slurmCPUs   = "SLURM_CPUS_PER_TASK"
)

// Report counts cleaned trees.
type Report struct {
	Total     int
	Succeeded int
	Failed    int
}

// Jobs returns the number of workers: an explicit value when it is
// positive, then SLURM_CPUS_PER_TASK, then the configured number of jobs.
func Jobs(cfg *config.Config, jobs int) int {
	if jobs > 0 {
		return jobs
	}
	if n, err := strconv.Atoi(os.Getenv(slurmCPUs)); err == nil && n > 0 {
		return n
	}
	return max(cfg.JobsNumber, 1)
}

// CleanTree rewrites one tree file with tip labels cut to portals.
func CleanTree(in, out string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return iofs.ReadFileError(in, err)
	}
	res, err := newick.RenameTips(string(data), newick.SpeciesTip)
	if err != nil {
		return err
	}
	if err = os.WriteFile(out, []byte(res), 0644); err != nil {
		return iofs.WriteFileError(out, err)
	}
	return nil
}

// Clean processes all gene trees with cfg.JobsNumber workers. Failed
// files are logged and counted, they do not stop the run.
func Clean(ctx context.Context, cfg *config.Config) (*Report, error) {
	src := cfg.GeneTreesDir()
	dst := cfg.CleanTreesDir()
	if err := iofs.CheckDirs(src); err != nil {
		return nil, err
	}
	names, err := iofs.ListFiles(src, TreePattern)
	if err != nil {
		return nil, err
	}
	res := &Report{Total: len(names)}
	if len(names) == 0 {
		gn.Info("No %s files found in <em>%s</em>", TreePattern, src)
		return res, nil
	}
	if err = iofs.TouchDir(dst); err != nil {
		return nil, err
	}

	jobs := max(cfg.JobsNumber, 1)
	gn.Info("Processing <em>%d</em> trees with <em>%d</em> workers",
		len(names), jobs)

	bar := pb.Full.Start(len(names))
	bar.Set("prefix", "Cleaning trees: ")
	bar.Set(pb.CleanOnFinish, true)

	var ok, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer bar.Increment()
			if err := gctx.Err(); err != nil {
				return err
			}
			err := CleanTree(filepath.Join(src, name), filepath.Join(dst, name))
			if err != nil {
				slog.Error("Cannot clean tree", "file", name, "error", err)
				failed.Add(1)
				return nil
			}
			ok.Add(1)
			return nil
		})
	}
	err = g.Wait()
	bar.Finish()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	res.Succeeded = int(ok.Load())
	res.Failed = int(failed.Load())
	slog.Info("Cleaned gene trees",
		"succeeded", res.Succeeded, "failed", res.Failed, "dir", dst,
	)
	gn.Info("Done. %d succeeded, %d failed. Output: <em>%s</em>",
		res.Succeeded, res.Failed, dst)
	return res, nil
}
