// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package checksum

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/errors"
)

// ChecksumFileName is the standard name for checksum files.
const ChecksumFileName = "checksums.txt"

// Entry is one file covered by the manifest.
type Entry struct {
	// Path is relative to the project root, slash separated.
	Path    string
	Content []byte
}

// Sum returns the hex SHA256 of content.
func Sum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Manifest renders the checksums.txt content for entries, sorted by path.
func Manifest(entries []Entry) []byte {
	sorted := append([]Entry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var buf bytes.Buffer
	for _, e := range sorted {
		fmt.Fprintf(&buf, "%s  %s\n", Sum(e.Content), e.Path)
	}
	return buf.Bytes()
}

// Mismatch reports a file whose content no longer matches the manifest.
type Mismatch struct {
	Path     string `json:"path" yaml:"path"`
	Expected string `json:"expected" yaml:"expected"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Missing  bool   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Verify re-hashes every file listed in dir's checksums.txt and returns the
// files that differ or are missing.
func Verify(ctx context.Context, dir string) ([]Mismatch, error) {
	manifestPath := GetChecksumFilePath(dir)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
			"failed to read checksum manifest", err, map[string]any{"path": manifestPath})
	}

	var mismatches []Mismatch
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "checksum verification cancelled", err)
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		sum, rel, ok := strings.Cut(text, "  ")
		if !ok || len(sum) != sha256.Size*2 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"malformed checksum line", map[string]any{"line": line, "text": text})
		}
		local := filepath.FromSlash(rel)
		if !filepath.IsLocal(local) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"checksum entry escapes the project directory", map[string]any{"line": line, "path": rel})
		}

		content, err := os.ReadFile(filepath.Join(dir, local))
		if err != nil {
			if os.IsNotExist(err) {
				mismatches = append(mismatches, Mismatch{Path: rel, Expected: sum, Missing: true})
				continue
			}
			return nil, errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to read checksummed file", err, map[string]any{"path": rel})
		}

		if actual := Sum(content); actual != sum {
			mismatches = append(mismatches, Mismatch{Path: rel, Expected: sum, Actual: actual})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to scan checksum manifest", err, map[string]any{"path": manifestPath})
	}

	slog.Debug("checksums verified",
		"dir", dir,
		"files", line,
		"mismatches", len(mismatches),
	)

	return mismatches, nil
}

// GetChecksumFilePath returns the full path to the checksums.txt file
// in the given directory.
func GetChecksumFilePath(dir string) string {
	return filepath.Join(dir, ChecksumFileName)
}
