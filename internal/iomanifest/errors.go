package iomanifest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func ManifestError(path string, err error) error {
	msg := "Cannot use fetch manifest <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.FetchManifestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("manifest %s: %w", path, err),
	}
}
