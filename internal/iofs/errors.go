package iofs

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/mycocurate/pkg/errcode"
)

func CreateDirError(dir string, err error) error {
	msg := "Cannot create %s"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create directory: %w",
			fn.Name(), err),
	}
}

func CopyFileError(file string, err error) error {
	msg := "Cannot copy file to %s"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot copy file: %w",
			fn.Name(), err),
	}
}

func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
		Msg:  msg,
		Vars: vars,
	}
}

func WriteFileError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
		Msg:  msg,
		Vars: vars,
	}
}

func MissingDirError(dir string) error {
	msg := `Directory <em>%s</em> not found

<em>How to fix:</em>
  1. Run the previous pipeline step that creates it
  2. Check 'data_dir' in config.yaml or MYCOCURATE_DATA_DIR`
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.MissingDirError,
		Err:  fmt.Errorf("directory not found: %s", dir),
		Msg:  msg,
		Vars: vars,
	}
}

func MissingFilesError(dir string, names []string) error {
	msg := "Missing %d file(s) in <em>%s</em>:\n  %s"
	vars := []any{len(names), dir, strings.Join(names, ", ")}
	return &gn.Error{
		Code: errcode.MissingFilesError,
		Err: fmt.Errorf(
			"missing %d files in %s: %s", len(names), dir,
			strings.Join(names, ", "),
		),
		Msg:  msg,
		Vars: vars,
	}
}
