package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the release reported by the version command
const Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "exportcheck",
	Short: "exportcheck - verify a batch of exported CSV files against a reference catalog",
	Long: `exportcheck verifies a directory of exported CSV files against a catalog
of expected files.

For every expected file it checks the header row, the row count and,
where the catalog pins them, the cell values of the first rows. Files that
are missing or not in the catalog are reported, and every file is scanned
for placeholder values such as "[object Object]", "null" or cells holding
only whitespace.

Exit status is 0 when every check passes, 1 when issues were found and 2
on usage or runtime errors.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of exportcheck.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "exportcheck v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.exportcheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.exportcheck")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match EXPORTCHECK_*
	viper.SetEnvPrefix("EXPORTCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	registerDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// registerDefaults makes every key known to viper so AutomaticEnv can resolve it
func registerDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("catalog.path", cfg.Catalog.Path)
	v.SetDefault("scan.dir", cfg.Scan.Dir)
	v.SetDefault("scan.extensions", cfg.Scan.Extensions)
	v.SetDefault("scan.lazy_quotes", cfg.Scan.LazyQuotes)
	v.SetDefault("output.json", cfg.Output.JSON)
	v.SetDefault("output.markdown", cfg.Output.Markdown)
	v.SetDefault("output.color", cfg.Output.Color)
	v.SetDefault("output.max_issues", cfg.Output.MaxIssues)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}
