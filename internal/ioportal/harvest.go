package ioportal

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/curation"
	"github.com/gnames/mycocurate/pkg/portal"
)

// HarvesterImpl implements lifecycle.Harvester.
type HarvesterImpl struct {
	acq portal.Acquirer
}

// NewHarvester creates a harvester that gets the catalog from acq. If acq
// is nil, the configured page and spreadsheet are used.
func NewHarvester(acq portal.Acquirer) *HarvesterImpl {
	return &HarvesterImpl{acq: acq}
}

// Harvest acquires the catalog, marks new proteomes against the saved
// table, keeps the saved table as the previous snapshot and writes the
// new one.
func (h *HarvesterImpl) Harvest(
	ctx context.Context,
	cfg *config.Config,
) (*portal.Table, error) {
	acq := h.acq
	if acq == nil {
		acq = New(cfg)
	}

	cur, err := acq.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	path := cfg.PortalsTablePath()
	var prev *portal.Table
	if iofs.IsFile(path) {
		prev, err = ReadTable(path)
		if err != nil {
			return nil, err
		}
	}

	res, err := curation.FindNewProteomes(cur, prev)
	if err != nil {
		slog.Warn("Cannot compare with previous portals table", "error", err)
		gn.Warn("Previous portals table has no portal or reference column, all portals are new")
	}

	if err = iofs.Backup(path); err != nil {
		return nil, err
	}
	if err = WriteTable(path, res); err != nil {
		return nil, err
	}

	var newCount int
	for _, v := range res.Records {
		if v.NewProteome {
			newCount++
		}
	}
	slog.Info(
		"Saved portals table",
		"path", path,
		"portals", len(res.Records),
		"published", len(res.Published()),
		"new", newCount,
	)
	gn.Info(
		"Portals: <em>%d</em>, published: <em>%d</em>, new: <em>%d</em>",
		len(res.Records), len(res.Published()), newCount,
	)
	return res, nil
}
