package internal

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
)

// File is rendered content waiting to be written.
type File struct {
	// Artifact is the artifact identifier.
	Artifact string
	// Path is relative to the output root, slash separated.
	Path string
	// Format is the artifact serialization.
	Format string
	// Content is the full file content.
	Content []byte
	// Mode is the permission of the written file.
	Mode fs.FileMode
}

// PlannedFile is a File with the state of its target on disk.
type PlannedFile struct {
	File
	// Exists is set when a file is already present at the target.
	Exists bool
	// Identical is set when the existing file has the same content.
	Identical bool
}

// Writer writes rendered files below a root directory. All checks run in
// Plan so a failing run leaves the file system untouched.
//
// Thread-safety: a Writer is used by a single generation run.
type Writer struct {
	Root      string
	Overwrite bool
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string, overwrite bool) *Writer {
	return &Writer{Root: root, Overwrite: overwrite}
}

// Plan inspects every target path. It fails with INVALID_REQUEST for paths
// that escape the root and with CONFLICT for existing files whose content
// differs, unless Overwrite is set.
func (w *Writer) Plan(ctx context.Context, files []File) ([]PlannedFile, error) {
	planned := make([]PlannedFile, 0, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "planning cancelled", err)
		}

		if !filepath.IsLocal(filepath.FromSlash(f.Path)) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"artifact path escapes the output directory",
				map[string]any{"path": f.Path, "artifact": f.Artifact})
		}

		p := PlannedFile{File: f}
		target := w.path(f.Path)

		info, err := os.Stat(target)
		switch {
		case err == nil && info.IsDir():
			return nil, errors.NewWithContext(errors.ErrCodeConflict,
				"a directory exists where a file would be generated",
				map[string]any{"path": f.Path})
		case err == nil:
			existing, readErr := os.ReadFile(target)
			if readErr != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeInternal,
					"failed to read existing file", readErr, map[string]any{"path": f.Path})
			}
			p.Exists = true
			p.Identical = bytes.Equal(existing, f.Content)
			if !p.Identical && !w.Overwrite {
				return nil, errors.NewWithContext(errors.ErrCodeConflict,
					"existing file differs from generated content; enable overwrite to replace it",
					map[string]any{"path": f.Path})
			}
		case !os.IsNotExist(err):
			return nil, errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to stat target", err, map[string]any{"path": f.Path})
		}

		planned = append(planned, p)
	}

	return planned, nil
}

// Apply writes every planned file that is not already identical on disk
// and returns the number of files written.
func (w *Writer) Apply(ctx context.Context, planned []PlannedFile) (int, error) {
	written := 0
	for _, p := range planned {
		if err := ctx.Err(); err != nil {
			return written, errors.Wrap(errors.ErrCodeTimeout, "write cancelled", err)
		}

		if p.Identical {
			slog.Debug("file unchanged", "path", p.Path)
			continue
		}

		if err := w.WriteFile(p.Path, p.Content, p.Mode); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// WriteFile writes content to the relative path, creating parent
// directories and applying perm even when the file already existed.
func (w *Writer) WriteFile(rel string, content []byte, perm fs.FileMode) error {
	target := w.path(rel)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create directory", err, map[string]any{"path": filepath.Dir(rel)})
	}

	if err := os.WriteFile(target, content, perm); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			fmt.Sprintf("failed to write %s", rel), err, map[string]any{"path": rel})
	}

	if err := os.Chmod(target, perm); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to set permissions", err, map[string]any{"path": rel})
	}

	slog.Debug("file written",
		"path", rel,
		"size_bytes", len(content),
		"permissions", perm,
	)
	return nil
}

func (w *Writer) path(rel string) string {
	return filepath.Join(w.Root, filepath.FromSlash(rel))
}
