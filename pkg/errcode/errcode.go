package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	MissingDirError
	MissingFilesError

	// Logging errors
	CreateLogFileError

	// Portal table errors
	PortalDownloadError
	PortalSpreadsheetError
	PortalUnavailableError
	PortalColumnsError

	// Fetch errors
	FetchManifestError
	FetchHTTPError
	FetchCancelledError

	// Listing errors
	ListingCacheDirError
	ListingParseError

	// Curation errors
	CurateInputError
	CurateInvariantError

	// Sequence errors
	SeqNoFastaFilesError
	SeqExtractError
	SeqUnsupportedArchiveError
	SeqRenameError

	// Summarizer errors
	BuscoSchemaError
	OrthoGeneCountError
	OrthoThresholdError
)
