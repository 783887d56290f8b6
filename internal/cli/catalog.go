package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/ppiankov/exportcheck/internal/catalog"
	"github.com/ppiankov/exportcheck/internal/model"
	"github.com/ppiankov/exportcheck/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect reference catalogs",
	Long: `Inspect the reference catalog used by verify.

Without --config or catalog.path the embedded catalog is used.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the expected files of the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		return writeCatalogTable(cmd.OutOrStdout(), cat)
	},
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a catalog document",
	Long: `Parse and validate a catalog YAML document without running a verification.

With no argument the active catalog (catalog.path or the embedded one) is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		file := cfg.Catalog.Path
		if len(args) == 1 {
			file = args[0]
		}

		cat, err := catalog.Load(file)
		if err != nil {
			return err
		}

		withCells := 0
		for _, e := range cat.Entries {
			if _, ok := e.Rows.(model.RowCountAndCells); ok {
				withCells++
			}
		}

		name := file
		if name == "" {
			name = "embedded catalog"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d entries (%d with cell rules, %d row-count only)\n",
			name, cat.Len(), withCells, cat.Len()-withCells)
		return nil
	},
}

// tokensCmd represents the tokens command
var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the symbolic rule tokens",
	Long: `List the symbolic tokens accepted in catalog cell rules.

Any other rule value is a literal and must match the cell exactly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Token", "Matches")
		for _, token := range pattern.Tokens() {
			if err := table.Append([]string{token, pattern.Describe(token)}); err != nil {
				return fmt.Errorf("append row: %w", err)
			}
		}
		return table.Render()
	},
}

func writeCatalogTable(w io.Writer, cat *model.Catalog) error {
	table := tablewriter.NewWriter(w)
	table.Header("File", "Columns", "Rows")
	for _, e := range cat.Entries {
		row := []string{e.Path, strconv.Itoa(len(e.Headers)), describePolicy(e.Rows)}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintf(w, "%d expected file(s)\n", cat.Len())
	return nil
}

// describePolicy summarizes a row policy for the catalog table
func describePolicy(p model.RowPolicy) string {
	var parts []string
	switch policy := p.(type) {
	case model.RowCountAndCells:
		parts = append(parts, fmt.Sprintf("%d pinned row(s)", len(policy.Rows)))
	case model.RowCountOnly:
		parts = append(parts, "count only")
	}
	rule := p.Count()
	if rule.Exact != nil {
		parts = append(parts, fmt.Sprintf("exactly %d", *rule.Exact))
	}
	if rule.Min != nil {
		parts = append(parts, fmt.Sprintf("at least %d", *rule.Min))
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(tokensCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
}
