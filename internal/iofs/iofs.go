// Package iofs keeps file system helpers shared by all stages: standard
// directories, embedded default files, prerequisite checks.
package iofs

import (
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gnames/mycocurate/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed busco_schemas.yaml
var BuscoSchemasYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := TouchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// TouchDir creates a directory with all parents unless it exists.
func TouchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

func EnsureBuscoSchemasFile(homeDir string) error {
	return ensureFile(config.BuscoSchemasFilePath(homeDir), BuscoSchemasYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

// CheckDirs returns MissingDirError for the first directory that does not
// exist.
func CheckDirs(dirs ...string) error {
	for _, d := range dirs {
		if !IsDir(d) {
			return MissingDirError(d)
		}
	}
	return nil
}

// CheckFiles verifies that every name exists as a file in dir. All missing
// names are reported at once.
func CheckFiles(dir string, names []string) error {
	var missing []string
	for _, v := range names {
		if !IsFile(filepath.Join(dir, v)) {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		return MissingFilesError(dir, missing)
	}
	return nil
}

func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ListFiles returns sorted names of regular files in dir that match a
// glob pattern.
func ListFiles(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ReadFileError(dir, err)
	}
	var res []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, e.Name())
		}
	}
	slices.Sort(res)
	return res, nil
}

// CopyFile copies src to dst, dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ReadFileError(src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return CopyFileError(dst, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return CopyFileError(dst, err)
	}
	if err = out.Close(); err != nil {
		return CopyFileError(dst, err)
	}
	return nil
}

// Backup renames path to its previous snapshot name. Missing path is not
// an error, there is nothing to keep.
func Backup(path string) error {
	if !IsFile(path) {
		return nil
	}
	prev := config.PrevPath(path)
	if err := os.Rename(path, prev); err != nil {
		return WriteFileError(prev, err)
	}
	return nil
}
