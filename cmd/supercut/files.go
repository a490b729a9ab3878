package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	perr "supercut/internal/platform/errors"
	"supercut/internal/services/api/curation/domain"

	"github.com/klauspost/compress/zstd"
)

const zstExt = ".zst"

// readInput returns the decoded bytes of path, "-" reads stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if strings.HasSuffix(path, zstExt) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	}
	return io.ReadAll(r)
}

// loadSource reads one scene file
// a bare array takes the file path as its source ref
func loadSource(path string, stdin io.Reader) (domain.Source, error) {
	b, err := readInput(path, stdin)
	if err != nil {
		return domain.Source{}, err
	}
	b = bytes.TrimSpace(b)

	var src domain.Source
	switch {
	case len(b) == 0:
		return domain.Source{}, perr.JSONErrf("%s: empty scene file", path)
	case b[0] == '[':
		err = json.Unmarshal(b, &src.Scenes)
	default:
		err = json.Unmarshal(b, &src)
	}
	if err != nil {
		return domain.Source{}, perr.Wrapf(err, perr.ErrorCodeJSON, "%s: invalid scene file", path)
	}
	if src.SourceRef == "" {
		src.SourceRef = sourceRef(path)
	}
	return src, nil
}

func sourceRef(path string) string {
	if path == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(path, zstExt)
}

// writeOutput writes v as indented JSON to path, stdout when path is empty or "-"
// a .zst path is zstd compressed
func writeOutput(path string, v any, stdout io.Writer) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" || path == "-" {
		_, err = stdout.Write(b)
		return err
	}
	return writeFile(path, b)
}

// writeFile writes b atomically through a temp file in the target directory
func writeFile(path string, b []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	var w io.WriteCloser = tmp
	if strings.HasSuffix(path, zstExt) {
		zw, zerr := zstd.NewWriter(tmp, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if zerr != nil {
			_ = tmp.Close()
			return zerr
		}
		w = zw
	}
	if _, err = w.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if w != tmp {
		if err = w.Close(); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
