package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ppiankov/exportcheck/internal/tabular"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned when the scan path is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Loader takes a single snapshot of an export directory
type Loader struct {
	fs     afero.Fs
	reader *tabular.Reader
	exts   []string
	logger *zap.Logger
}

// NewLoader creates a loader over fs
func NewLoader(fs afero.Fs, exts []string, lazyQuotes bool, logger *zap.Logger) *Loader {
	if len(exts) == 0 {
		exts = []string{".csv"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fs:     fs,
		reader: tabular.NewReader(fs, lazyQuotes),
		exts:   exts,
		logger: logger,
	}
}

// Load discovers every matching file under base and reads each one once.
// Each of the required paths that exists as a regular file is included
// whatever its extension. A file that fails to parse is kept in the
// snapshot with its error.
func (l *Loader) Load(base string, required ...string) (*tabular.Snapshot, error) {
	info, err := l.fs.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("scan directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan directory %s: %w", base, ErrNotDirectory)
	}

	paths, err := tabular.Discover(l.fs, base, l.exts)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	paths = l.withRequired(base, paths, required)
	l.logger.Info("discovered files", zap.String("dir", base), zap.Int("count", len(paths)))

	files := make([]tabular.File, 0, len(paths))
	for _, rel := range paths {
		table, err := l.reader.Read(filepath.Join(base, filepath.FromSlash(rel)))
		if err != nil {
			l.logger.Warn("cannot parse file", zap.String("path", rel), zap.Error(err))
			files = append(files, tabular.File{Path: rel, Err: err})
			continue
		}
		l.logger.Debug("loaded file",
			zap.String("path", rel),
			zap.Int("columns", len(table.Header)),
			zap.Int("rows", len(table.Rows)),
		)
		files = append(files, tabular.File{Path: rel, Table: table})
	}

	return tabular.NewSnapshot(files), nil
}

// withRequired adds required paths that exist on disk but were filtered out by extension
func (l *Loader) withRequired(base string, paths, required []string) []string {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}

	added := false
	for _, rel := range required {
		if seen[rel] {
			continue
		}
		info, err := l.fs.Stat(filepath.Join(base, filepath.FromSlash(rel)))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		seen[rel] = true
		paths = append(paths, rel)
		added = true
	}

	if added {
		sort.Strings(paths)
	}
	return paths
}
