package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crazythinker/studio/internal/feat/portfolio"
	"github.com/spf13/cobra"
)

var (
	catalogCategory string
	catalogJSON     bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List portfolio projects, optionally filtered by category",
	Example: `  studio catalog
  studio catalog --category "E-Commerce"
  studio catalog --category "mobile app" --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		category, ok := portfolio.ParseCategory(catalogCategory)
		if !ok {
			return fmt.Errorf("unknown category %q (one of: %s)", catalogCategory, categoryNames())
		}

		filter := portfolio.NewFilter()
		filter.SetCategory(category)
		projects := filter.Visible(catalog.Projects)

		out := cmd.OutOrStdout()
		if catalogJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(projects)
		}

		for _, p := range projects {
			fmt.Fprintf(out, "%d\t%-12s\t%s\n", p.ID, p.Category, p.Title)
		}
		fmt.Fprintf(out, "%d of %d projects (%s)\n", len(projects), len(catalog.Projects), filter.Category())
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", string(portfolio.All), "category to show")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print JSON")
	rootCmd.AddCommand(catalogCmd)
}

func categoryNames() string {
	var names []string
	for _, c := range portfolio.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
