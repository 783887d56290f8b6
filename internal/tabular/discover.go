package tabular

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Discover walks base and returns forward-slash relative paths of every file
// whose extension (case-insensitive) is in exts, sorted.
func Discover(fs afero.Fs, base string, exts []string) ([]string, error) {
	allowed := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		allowed[e] = true
	}

	var found []string
	err := afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowed[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		found = append(found, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}

	sort.Strings(found)
	return found, nil
}

// File is one discovered file and its parse outcome
type File struct {
	Path  string // Forward-slash path relative to the scan directory
	Table *Table // Nil when Err is set
	Err   error
}

// Snapshot is the set of files observed in a single pass over a directory
type Snapshot struct {
	Files []File
	index map[string]int
}

// NewSnapshot indexes files by path, keeping their order
func NewSnapshot(files []File) *Snapshot {
	s := &Snapshot{
		Files: files,
		index: make(map[string]int, len(files)),
	}
	for i, f := range files {
		s.index[f.Path] = i
	}
	return s
}

// Lookup returns the file at a relative path
func (s *Snapshot) Lookup(path string) (File, bool) {
	i, ok := s.index[path]
	if !ok {
		return File{}, false
	}
	return s.Files[i], true
}

// Paths returns every path in the snapshot
func (s *Snapshot) Paths() []string {
	paths := make([]string, len(s.Files))
	for i, f := range s.Files {
		paths[i] = f.Path
	}
	return paths
}
