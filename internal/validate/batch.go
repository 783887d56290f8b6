package validate

import (
	"sort"

	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/placeholder"
	"github.com/ppiankov/exportcheck/internal/tabular"
	"go.uber.org/zap"
)

// BatchVerifier verifies a whole snapshot against the catalog
type BatchVerifier struct {
	files    *FileVerifier
	detector *placeholder.Detector
	logger   *zap.Logger
}

// NewBatchVerifier creates a batch verifier
func NewBatchVerifier(files *FileVerifier, detector *placeholder.Detector, logger *zap.Logger) *BatchVerifier {
	if files == nil {
		files = NewFileVerifier(nil)
	}
	if detector == nil {
		detector = placeholder.NewDetector()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchVerifier{
		files:    files,
		detector: detector,
		logger:   logger,
	}
}

// Run verifies every catalog entry, records unexpected files and merges
// placeholder findings. The returned report carries files and summary only;
// run metadata is left to the caller.
func (b *BatchVerifier) Run(cat *model.Catalog, snap *tabular.Snapshot) *model.Report {
	results := make([]model.FileResult, 0, cat.Len())
	index := make(map[string]int, cat.Len())

	// 1. Verify each expected file
	for _, schema := range cat.Entries {
		index[schema.Path] = len(results)
		results = append(results, b.verifyEntry(schema, snap))
	}

	// 2. Files present but not catalogued
	var unexpected []string
	for _, path := range snap.Paths() {
		if !cat.Contains(path) {
			unexpected = append(unexpected, path)
		}
	}
	sort.Strings(unexpected)

	for _, path := range unexpected {
		res := model.FileResult{Path: path, Status: model.StatusUnexpected}
		if f, _ := snap.Lookup(path); f.Err != nil {
			res.ReadError = f.Err.Error()
		}
		index[path] = len(results)
		results = append(results, res)
		b.logger.Debug("unexpected file", zap.String("path", path))
	}

	// 3. Placeholder scan over every readable file
	for _, f := range snap.Files {
		if f.Err != nil || f.Table == nil {
			continue
		}
		findings := b.detector.Scan(f.Table.Header, f.Table.Rows)
		if len(findings) == 0 {
			continue
		}
		i, ok := index[f.Path]
		if !ok {
			index[f.Path] = len(results)
			results = append(results, model.FileResult{Path: f.Path, Status: model.StatusUnexpected})
			i = len(results) - 1
		}
		results[i].Placeholders = append(results[i].Placeholders, findings...)
		b.logger.Debug("placeholder values found", zap.String("path", f.Path), zap.Int("count", len(findings)))
	}

	if unexpected == nil {
		unexpected = []string{}
	}

	return &model.Report{
		Files:      results,
		Unexpected: unexpected,
		Summary:    model.Summarize(results),
	}
}

func (b *BatchVerifier) verifyEntry(schema model.FileSchema, snap *tabular.Snapshot) model.FileResult {
	f, ok := snap.Lookup(schema.Path)
	if !ok {
		b.logger.Debug("expected file missing", zap.String("path", schema.Path))
		return model.FileResult{Path: schema.Path, Status: model.StatusMissing}
	}

	if f.Err != nil {
		b.logger.Warn("unreadable file", zap.String("path", schema.Path), zap.Error(f.Err))
		return model.FileResult{
			Path:      schema.Path,
			Status:    model.StatusFail,
			ReadError: f.Err.Error(),
		}
	}

	table := f.Table
	if table == nil {
		table = &tabular.Table{}
	}
	res := b.files.Verify(table.Header, table.Rows, schema)
	b.logger.Debug("verified file",
		zap.String("path", schema.Path),
		zap.String("status", string(res.Status)),
		zap.Int("cell_issues", len(res.Cells)),
	)
	return res
}
