package iobusco

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func SchemaError(path string, err error) error {
	msg := `Cannot load BUSCO field schemas from <em>%s</em>

<em>How to fix:</em>
  Fix the file or remove it to restore the default`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.BuscoSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("busco schemas %s: %w", path, err),
	}
}
