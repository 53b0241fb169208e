package ioseq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/pgzip"
)

// Extract decompresses an archive into dir. A '.gz' file becomes a file
// with the same name without the suffix. A '.zip' archive is unpacked into
// dir; the returned path is its only file, or dir if the archive has
// several files. Other files give UnsupportedArchiveError.
func Extract(path, dir string) (string, error) {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".gz"):
		out := filepath.Join(dir, strings.TrimSuffix(name, ".gz"))
		if err := gunzip(path, out); err != nil {
			os.Remove(out)
			return "", ExtractError(path, err)
		}
		return out, nil
	case strings.HasSuffix(name, ".zip"):
		res, err := unzip(path, dir)
		if err != nil {
			return "", ExtractError(path, err)
		}
		return res, nil
	default:
		return "", UnsupportedArchiveError(path)
	}
}

func gunzip(path, out string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := pgzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, zr); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func unzip(path, dir string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer zr.Close()

	root := filepath.Clean(dir) + string(os.PathSeparator)
	var files []string
	for _, zf := range zr.File {
		out := filepath.Join(dir, zf.Name)
		if !strings.HasPrefix(out, root) {
			return "", fmt.Errorf("entry %q is outside of %s", zf.Name, dir)
		}
		if zf.FileInfo().IsDir() {
			if err = os.MkdirAll(out, 0755); err != nil {
				return "", err
			}
			continue
		}
		if err = os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return "", err
		}
		if err = unzipFile(zf, out); err != nil {
			return "", err
		}
		files = append(files, out)
	}

	if len(files) == 1 {
		return files[0], nil
	}
	return dir, nil
}

func unzipFile(zf *zip.File, out string) error {
	rc, err := zf.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, rc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
