package curation

import "errors"

var (
	// ErrOrganismCount means that the phylogeny partitions do not cover
	// exactly the organisms of the listing.
	ErrOrganismCount = errors.New("organism count mismatch")

	// ErrMissingColumns means that a portal table lacks 'portal' or
	// 'reference' column, so new proteomes cannot be detected.
	ErrMissingColumns = errors.New("missing 'portal' or 'reference' columns")
)
