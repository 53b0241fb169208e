package ioseq

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func NoFastaFilesError(dir string) error {
	msg := "No <em>.fasta</em> files found in <em>%s</em>"
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.SeqNoFastaFilesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no fasta files in %s", dir),
	}
}

func ExtractError(path string, err error) error {
	msg := "Cannot extract <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SeqExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("extract %s: %w", path, err),
	}
}

func UnsupportedArchiveError(path string) error {
	msg := "Unsupported archive <em>%s</em>, only .gz and .zip are extracted"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SeqUnsupportedArchiveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported archive %s", path),
	}
}

func RenameError(path string, err error) error {
	msg := "Cannot rename sequences of <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SeqRenameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("rename %s: %w", path, err),
	}
}
