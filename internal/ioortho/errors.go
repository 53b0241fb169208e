package ioortho

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func GeneCountError(path string, err error) error {
	msg := `Cannot read orthogroup gene counts from <em>%s</em>

<em>How to fix:</em>
  Check that OrthoFinder finished and the file is a tab-separated table
  with 'Orthogroup', species and 'Total' columns`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.OrthoGeneCountError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("gene counts %s: %w", path, err),
	}
}

func ThresholdError(t float64) error {
	msg := "Threshold <em>%g</em> is out of range, use a value in (0, 1]"
	vars := []any{t}
	return &gn.Error{
		Code: errcode.OrthoThresholdError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("threshold %g is not in (0, 1]", t),
	}
}
