package iofetch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func HTTPError(organism string, page int, err error) error {
	msg := "Cannot fetch page %d of <em>%s</em>"
	vars := []any{page, organism}
	return &gn.Error{
		Code: errcode.FetchHTTPError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch %s page %d: %w", organism, page, err),
	}
}

func CancelledError(done, total int, err error) error {
	msg := `Fetch was interrupted after <em>%d</em> of <em>%d</em> organisms

Run the command again, finished organisms are not fetched twice.`
	vars := []any{done, total}
	return &gn.Error{
		Code: errcode.FetchCancelledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("fetch cancelled: %w", err),
	}
}
