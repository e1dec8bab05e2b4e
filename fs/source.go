// Package fs provides file-based input and output collaborators for the
// extraction engine: opening G-code files, and writing results as JSON
// documents or CSV rows.
package fs

import (
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/printwatch"
)

// SourceName returns the identifier recorded for a file path. SourceModeName
// keeps only the file name so that exported results do not leak local
// folder structure; SourceModeFull keeps the whole path.
func SourceName(path string, mode printwatch.SourceMode) string {
	if mode == printwatch.SourceModeFull {
		return path
	}
	return filepath.Base(path)
}

// HashFile returns the xxHash of a file's contents as a hex string.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", openError(path, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", printwatch.Errorf(printwatch.EINTERNAL, "read %s: %v", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ExtractFile opens path and runs the extractor over its contents, hashing
// the bytes in the same pass. An unreadable file is a hard failure with a
// distinct error code, never an empty result; content-level problems are
// absorbed by the extractor.
func ExtractFile(ctx context.Context, x printwatch.Extractor, path string, mode printwatch.SourceMode) (*printwatch.ExtractionResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	h := xxhash.New()
	result, err := x.Extract(ctx, io.TeeReader(f, h), SourceName(path, mode))
	if err != nil {
		return nil, err
	}
	result.SourceHash = hex.EncodeToString(h.Sum(nil))

	return result, nil
}

func openError(path string, err error) error {
	if os.IsNotExist(err) {
		return printwatch.Errorf(printwatch.ENOTFOUND, "file %s does not exist", path)
	}
	return printwatch.Errorf(printwatch.EINTERNAL, "open %s: %v", path, err)
}
