package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/pattern"
	"github.com/ppiankov/exportcheck/internal/placeholder"
	"github.com/ppiankov/exportcheck/internal/validate"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Pipeline orchestrates a complete verification run
type Pipeline struct {
	loader   *Loader
	batch    *validate.BatchVerifier
	renderer *Renderer
	catalog  *model.Catalog
	config   *model.Config
	logger   *zap.Logger

	now   func() time.Time
	runID func() string
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, cat *model.Catalog, fs afero.Fs, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	files := validate.NewFileVerifier(pattern.NewCompiler())

	return &Pipeline{
		loader:   NewLoader(fs, cfg.Scan.Extensions, cfg.Scan.LazyQuotes, logger),
		batch:    validate.NewBatchVerifier(files, placeholder.NewDetector(), logger),
		renderer: NewRenderer(cfg.Output.Color, cfg.Output.MaxIssues),
		catalog:  cat,
		config:   cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		runID:    uuid.NewString,
	}
}

// Run verifies the export directory at baseDir
func (p *Pipeline) Run(baseDir string) (*model.Report, error) {
	started := p.now()

	// 1. Snapshot the directory once; both passes read from it
	snap, err := p.loader.Load(baseDir, p.catalogPaths()...)
	if err != nil {
		return nil, err
	}

	// 2. Schema verification and placeholder scan
	report := p.batch.Run(p.catalog, snap)

	// 3. Stamp run metadata
	report.RunID = p.runID()
	report.BaseDir = baseDir
	report.StartedAt = started

	s := report.Summary
	p.logger.Info("verification complete",
		zap.String("run_id", report.RunID),
		zap.Int("expected", s.Expected),
		zap.Int("passed", s.Passed),
		zap.Int("failed", s.Failed),
		zap.Int("missing", s.Missing),
		zap.Int("unexpected", s.Unexpected),
		zap.Int("placeholders", s.Placeholders),
	)

	return report, nil
}

// RenderReport writes the configured report files and prints the summary to w
func (p *Pipeline) RenderReport(report *model.Report, w io.Writer) error {
	// Render JSON
	if path := p.config.Output.JSON; path != "" {
		if err := p.renderer.RenderJSON(report, path); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		p.logger.Info("wrote JSON report", zap.String("path", path))
	}

	// Render Markdown
	if path := p.config.Output.Markdown; path != "" {
		if err := p.renderer.RenderMarkdown(report, path); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		p.logger.Info("wrote Markdown report", zap.String("path", path))
	}

	// Print summary
	if err := p.renderer.RenderSummary(w, report); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}

	return nil
}

func (p *Pipeline) catalogPaths() []string {
	paths := make([]string, len(p.catalog.Entries))
	for i, e := range p.catalog.Entries {
		paths[i] = e.Path
	}
	return paths
}
