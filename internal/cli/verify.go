package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/exportcheck/internal/catalog"
	"github.com/ppiankov/exportcheck/internal/logging"
	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	outJSON     string
	outMD       string
	catalogPath string
	noColor     bool
	extensions  []string
	maxIssues   int
	lazyQuotes  bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Verify an export directory against the reference catalog",
	Long: `Verify walks the export directory and, for every catalog entry:
- reports the file as MISSING when it is absent
- compares the header row with the expected columns
- checks the row count and the pinned cell values
- scans every cell for placeholder values

Files found on disk but absent from the catalog are reported as UNEXPECTED
and still scanned for placeholders.

The directory defaults to scan.dir ("./downloaded exported files").

Example:
  exportcheck verify
  exportcheck verify ./exports --json report.json --md report.md
  exportcheck verify ./exports --catalog my-catalog.yaml --no-color`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown report path (optional)")
	verifyCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored terminal output")
	verifyCmd.Flags().IntVar(&maxIssues, "max-issues", 0, "detail lines printed per file (0 prints all)")

	// Input flags
	verifyCmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default: embedded catalog)")
	verifyCmd.Flags().StringSliceVar(&extensions, "ext", nil, "file extensions to discover (default: .csv)")
	verifyCmd.Flags().BoolVar(&lazyQuotes, "lazy-quotes", false, "accept bare and unbalanced quotes in CSV fields")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	applyVerifyFlags(cmd, cfg)
	if len(args) == 1 {
		cfg.Scan.Dir = args[0]
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Debug("catalog loaded", zap.Int("entries", cat.Len()), zap.String("source", catalogSource(cfg)))

	p := pipeline.NewPipeline(cfg, cat, afero.NewOsFs(), logger)

	report, err := p.Run(cfg.Scan.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("export directory %q not found", cfg.Scan.Dir)
		}
		return fmt.Errorf("verify failed: %w", err)
	}

	if err := p.RenderReport(report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if report.HasIssues() {
		return &IssuesError{Summary: report.Summary}
	}
	return nil
}

// applyVerifyFlags overrides configuration with flags set on the command line
func applyVerifyFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("json") {
		cfg.Output.JSON = outJSON
	}
	if flags.Changed("md") {
		cfg.Output.Markdown = outMD
	}
	if flags.Changed("no-color") {
		cfg.Output.Color = !noColor
	}
	if flags.Changed("max-issues") {
		cfg.Output.MaxIssues = maxIssues
	}
	if flags.Changed("catalog") {
		cfg.Catalog.Path = catalogPath
	}
	if flags.Changed("ext") {
		cfg.Scan.Extensions = extensions
	}
	if flags.Changed("lazy-quotes") {
		cfg.Scan.LazyQuotes = lazyQuotes
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
}

func newLogger(cfg *model.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

func catalogSource(cfg *model.Config) string {
	if cfg.Catalog.Path == "" {
		return "embedded"
	}
	return cfg.Catalog.Path
}
