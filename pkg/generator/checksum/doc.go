// Package checksum writes and verifies the checksums.txt manifest of a
// generated project.
//
// Each line has the form "<sha256-hex>  <relative-path>", sorted by path,
// the same layout sha256sum produces so the file can also be checked with
//
//	sha256sum -c checksums.txt
package checksum
