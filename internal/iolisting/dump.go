package iolisting

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/internal/iofetch"
	"github.com/gnames/mycocurate/internal/iofs"
	"github.com/gnames/mycocurate/internal/ioportal"
	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/listing"
)

// DumperImpl implements lifecycle.Dumper.
type DumperImpl struct {
	fetcher listing.Fetcher
	parser  listing.Parser
}

// NewDumper creates a dumper. Nil fetcher or parser are replaced by the
// configured API fetcher and cache parser.
func NewDumper(f listing.Fetcher, p listing.Parser) *DumperImpl {
	return &DumperImpl{fetcher: f, parser: p}
}

// Dump fetches listings of published portals of the saved portals table,
// flattens them and writes the files metadata table. The previous table
// is kept as a '.prev.csv' snapshot.
func (d *DumperImpl) Dump(
	ctx context.Context,
	cfg *config.Config,
) (*listing.Listing, error) {
	f, p := d.fetcher, d.parser
	if f == nil {
		f = iofetch.New(cfg)
	}
	if p == nil {
		p = New(cfg)
	}

	tbl, err := ioportal.ReadTable(cfg.PortalsTablePath())
	if err != nil {
		return nil, err
	}
	if err = ioportal.CheckColumns(tbl); err != nil {
		return nil, err
	}

	orgs := tbl.Published()
	slog.Info("Published portals", "count", len(orgs))
	gn.Info("Published portals: <em>%d</em>", len(orgs))

	if _, err = f.Fetch(ctx, orgs); err != nil {
		return nil, err
	}

	res, err := p.Parse(orgs)
	if err != nil {
		return nil, err
	}

	path := cfg.FilesMetadataPath()
	if err = iofs.Backup(path); err != nil {
		return nil, err
	}
	if err = WriteMetadata(path, res); err != nil {
		return nil, err
	}
	gn.Info(
		"Saved <em>%d</em> files of <em>%d</em> organisms, <em>%d</em> without files",
		len(res.Files), len(orgs), len(res.Missing()),
	)
	return res, nil
}
