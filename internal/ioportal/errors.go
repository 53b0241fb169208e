package ioportal

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func PortalDownloadError(url string, err error) error {
	msg := "Cannot download portal table from <em>%s</em>"
	vars := []any{url}
	return &gn.Error{
		Code: errcode.PortalDownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot download %s: %w", url, err),
	}
}

func PortalSpreadsheetError(path string, err error) error {
	msg := "Cannot read portal spreadsheet <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.PortalSpreadsheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read spreadsheet %s: %w", path, err),
	}
}

func PortalUnavailableError(url, spreadsheet string, err error) error {
	msg := `Portal table is not available from <em>%s</em>

<em>How to fix:</em>
  1. Open the page in a browser and save the table as a spreadsheet (xlsx)
  2. Set 'portal.spreadsheet' in config.yaml or use --spreadsheet flag
  3. Run the command again`
	vars := []any{url}
	if spreadsheet != "" {
		msg = `Portal table is not available from <em>%s</em>
and spreadsheet <em>%s</em> cannot be used

<em>How to fix:</em>
  1. Open the page in a browser and save the table as a spreadsheet (xlsx)
  2. Set 'portal.spreadsheet' in config.yaml or use --spreadsheet flag
  3. Run the command again`
		vars = append(vars, spreadsheet)
	}
	return &gn.Error{
		Code: errcode.PortalUnavailableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("portal table is not available: %w", err),
	}
}

func PortalColumnsError(missing []string) error {
	msg := "Portal table misses required columns: <em>%s</em>"
	cols := strings.Join(missing, ", ")
	return &gn.Error{
		Code: errcode.PortalColumnsError,
		Msg:  msg,
		Vars: []any{cols},
		Err:  fmt.Errorf("missing columns: %s", cols),
	}
}
