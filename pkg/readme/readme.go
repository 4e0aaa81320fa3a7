// Package readme finds the human-readable README of a package directory.
// The result is an optional handle: callers always get something they can
// open and close, backed by an empty stream when no readme exists.
package readme

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File is a possibly-absent readme handle
type File struct {
	dir  string
	name string // "" marks the absent readme
}

// Locate scans dir for a file named "readme" or "readme.md" in any casing.
// Files ending in .md win; otherwise the first match in listing order is
// used. An absent readme is not an error.
func Locate(dir string) (*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if lower == "readme" || lower == "readme.md" {
			candidates = append(candidates, entry.Name())
		}
	}

	for _, name := range candidates {
		if strings.HasSuffix(strings.ToLower(name), ".md") {
			return &File{dir: dir, name: name}, nil
		}
	}
	if len(candidates) > 0 {
		// Multiple case-variants with no extension is a degenerate but real
		// filesystem state. Take the first in listing order.
		return &File{dir: dir, name: candidates[0]}, nil
	}
	return &File{}, nil
}

// Found reports whether a readme file was located
func (f *File) Found() bool {
	return f.name != ""
}

// Name returns the readme filename, "" when absent
func (f *File) Name() string {
	return f.name
}

// Path returns the full path to the readme, "" when absent
func (f *File) Path() string {
	if f.name == "" {
		return ""
	}
	return filepath.Join(f.dir, f.name)
}

// Extension returns the lower-cased file extension, "" when absent
func (f *File) Extension() string {
	if f.name == "" {
		return ""
	}
	return strings.ToLower(filepath.Ext(f.name))
}

// Open returns a reader for the readme contents. When the readme is absent
// the reader is empty and closing it is a no-op.
func (f *File) Open() (io.ReadCloser, error) {
	if f.name == "" {
		return io.NopCloser(strings.NewReader("")), nil
	}
	return os.Open(f.Path())
}

// Contents reads the whole readme, returning "" when absent
func (f *File) Contents() (string, error) {
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
