package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"word-quiz/internal/domain"
)

// NewCatalogCmd loads the catalog and prints how many items each category contributed.
func NewCatalogCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the loaded picture catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer rt.Close()

			catalog, err := rt.catalogs.GetCatalog(cmd.Context())
			if err != nil {
				return err
			}
			return writeCatalogSummary(cmd.OutOrStdout(), catalog)
		},
	}
}

func writeCatalogSummary(out io.Writer, catalog domain.Catalog) error {
	counts := catalog.CountByCategory()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tITEMS")
	for _, category := range categories {
		fmt.Fprintf(w, "%s\t%d\n", category, counts[category])
	}
	fmt.Fprintf(w, "total\t%d\n", catalog.Len())
	fmt.Fprintf(w, "distinct words\t%d\n", len(catalog.Words()))
	return w.Flush()
}
