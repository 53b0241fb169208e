package iocurate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func InputError(path string, err error) error {
	msg := `Cannot read <em>%s</em>

<em>How to fix:</em>
  Run 'mycocurate portals' and 'mycocurate fetch' first`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CurateInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("curation input %s: %w", path, err),
	}
}

func InvariantError(err error) error {
	msg := "Organisms are lost or duplicated during curation"
	return &gn.Error{
		Code: errcode.CurateInvariantError,
		Msg:  msg,
		Err:  fmt.Errorf("curation invariant: %w", err),
	}
}
