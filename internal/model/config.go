package model

// Config holds all exportcheck settings
type Config struct {
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Scan    ScanConfig    `yaml:"scan" mapstructure:"scan"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CatalogConfig selects the reference catalog
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // Empty uses the embedded catalog
}

// ScanConfig controls discovery and parsing of the export directory
type ScanConfig struct {
	Dir        string   `yaml:"dir" mapstructure:"dir"`
	Extensions []string `yaml:"extensions" mapstructure:"extensions"`
	LazyQuotes bool     `yaml:"lazy_quotes" mapstructure:"lazy_quotes"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	JSON      string `yaml:"json" mapstructure:"json"`
	Markdown  string `yaml:"markdown" mapstructure:"markdown"`
	Color     bool   `yaml:"color" mapstructure:"color"`
	MaxIssues int    `yaml:"max_issues" mapstructure:"max_issues"` // 0 prints every issue
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Dir:        "./downloaded exported files",
			Extensions: []string{".csv"},
		},
		Output: OutputConfig{
			Color: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
