package iolisting

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func CacheDirError(dir string) error {
	msg := `Listing cache <em>%s</em> does not exist

<em>How to fix:</em>
  Run 'mycocurate fetch' first`
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.ListingCacheDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no cache directory %s", dir),
	}
}

func ParseError(path string, err error) error {
	msg := "Cannot parse cached page <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ListingParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("parse %s: %w", path, err),
	}
}
