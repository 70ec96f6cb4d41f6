package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/config"
)

var catalogVerbose bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the algorithm catalog",
	Long: `Print the algorithms offered by the wizard, grouped into image and
sound processing. Uses catalog.path when set, otherwise the built-in list.`,
	RunE: runCatalog,
}

var catalogUseCmd = &cobra.Command{
	Use:   "use FILE",
	Short: "Validate a catalog file and make it the override",
	Long: `Parse FILE as a catalog and, when it is valid, store its path as
catalog.path in the config file. Pass "-" to go back to the built-in catalog.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogUse,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogUseCmd)

	catalogCmd.Flags().BoolVarP(&catalogVerbose, "verbose", "v", false, "include descriptions")
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	defer closeLogs()

	store, err := catalog.NewStore(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	defer store.Close()

	printCatalog(cmd.OutOrStdout(), store.Current(), catalogVerbose)
	return nil
}

func printCatalog(w io.Writer, c *catalog.Catalog, verbose bool) {
	for i, g := range c.Groups() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, g.Title())
		for _, a := range c.InGroup(g) {
			fmt.Fprintf(w, "  %-28s %s\n", a.ID, a.Label)
			if verbose && a.Description != "" {
				fmt.Fprintln(w, indent(wordwrap.String(a.Description, 72), "      "))
			}
		}
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func runCatalogUse(cmd *cobra.Command, args []string) error {
	defer closeLogs()

	path := args[0]
	if path == "-" {
		if err := config.SetValue(configPath(), "catalog.path", ""); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Using the built-in catalog")
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	c, err := catalog.Load(abs)
	if err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if err := config.SetValue(configPath(), "catalog.path", abs); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Using %s (%d algorithms)\n", abs, c.Len())
	return nil
}
