package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/infrastructure/sqlite"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/ui/styles"
)

var (
	listLimit    int
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored registrations",
	Long: `Print the registrations in the local store, newest first.

Example:
  enrol list
  enrol list --limit 5 --category customizable`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "maximum registrations to show (0 for all)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "only show one solution category")
}

func runList(cmd *cobra.Command, _ []string) error {
	defer closeLogs()

	filter := registration.ListFilter{Limit: listLimit}
	if listCategory != "" {
		c := registration.SolutionCategory(listCategory)
		if !c.IsValid() {
			return fmt.Errorf("unknown solution category %q", listCategory)
		}
		filter.SolutionCategory = c
	}
	if listLimit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	db, err := sqlite.NewDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening registration store: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := db.RegistrationRepository()
	docs, err := repo.List(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("listing registrations: %w", err)
	}
	total, err := repo.Count(context.Background())
	if err != nil {
		return fmt.Errorf("counting registrations: %w", err)
	}

	printRegistrations(cmd.OutOrStdout(), docs, total, catalog.Default())
	return nil
}

func printRegistrations(w io.Writer, docs []*registration.Document, total int, cat *catalog.Catalog) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No registrations found.")
		return
	}

	for _, d := range docs {
		fmt.Fprintf(w, "%s  %s  %s <%s>\n",
			d.CreatedAt.Local().Format("2006-01-02 15:04"),
			styles.TruncateString(d.ID, 8),
			d.FullName, d.Email)

		solution := d.SolutionCategory.Label()
		if d.SolutionCategory.DeliversOS() {
			solution += " / " + d.OSPreference.Label()
		}
		fmt.Fprintf(w, "    %s, %s\n", d.UserCategory.Label(), solution)
		fmt.Fprintf(w, "    %s\n", strings.Join(cat.Labels(d.SelectedAlgorithms), ", "))
	}
	fmt.Fprintf(w, "\n%d of %d registrations\n", len(docs), total)
}
