// Package library lists audio files on the local filesystem.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Scanner lists the files of a single directory. It never recurses.
type Scanner struct {
	extensions []string // Lower-case extensions with the leading dot; empty accepts every file
}

// NewScanner creates a scanner limited to the given extensions.
func NewScanner(extensions ...string) *Scanner {
	return &Scanner{
		extensions: lo.Map(extensions, func(ext string, _ int) string {
			return strings.ToLower(ext)
		}),
	}
}

// Siblings returns the files in the directory containing path, including path itself.
func (s *Scanner) Siblings(path string) ([]string, error) {
	return s.List(filepath.Dir(path))
}

// List returns the regular, non-hidden files in dir sorted by name.
func (s *Scanner) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	files := lo.Filter(entries, func(entry os.DirEntry, _ int) bool {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			return false
		}
		return s.accepts(entry.Name())
	})

	paths := lo.Map(files, func(entry os.DirEntry, _ int) string {
		return filepath.Join(dir, entry.Name())
	})
	sort.Strings(paths)
	return paths, nil
}

func (s *Scanner) accepts(name string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	return lo.Contains(s.extensions, strings.ToLower(filepath.Ext(name)))
}
