// Package lifecycle defines stages of the curation pipeline. Each stage
// reads artifacts of earlier stages from the data directory and writes its
// own, so stages can be rerun independently.
package lifecycle

import (
	"context"

	"github.com/gnames/mycocurate/pkg/config"
	"github.com/gnames/mycocurate/pkg/curation"
	"github.com/gnames/mycocurate/pkg/listing"
	"github.com/gnames/mycocurate/pkg/portal"
)

// Harvester builds the portals table. New proteomes are marked against
// the previous table, which is kept as a '.prev.csv' snapshot.
type Harvester interface {
	Harvest(ctx context.Context, cfg *config.Config) (*portal.Table, error)
}

// Dumper fetches file listings of published portals and saves them as the
// files metadata table.
type Dumper interface {
	Dump(ctx context.Context, cfg *config.Config) (*listing.Listing, error)
}

// Curator reconciles the files metadata and writes selection tables.
type Curator interface {
	Curate(ctx context.Context, cfg *config.Config) (*curation.Result, error)
}

// Processor prepares sequence files of selected proteomes.
type Processor interface {
	// Process extracts archives and normalizes FASTA identifiers.
	Process(ctx context.Context, cfg *config.Config) error

	// Filter keeps sequences within configured length bounds.
	Filter(ctx context.Context, cfg *config.Config) error

	// ExtractTFs saves sequences with transcription factor domain hits.
	ExtractTFs(ctx context.Context, cfg *config.Config) error
}
