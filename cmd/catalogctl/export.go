package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/dataset"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// JSONFixture is the file written by export --format json.
const JSONFixture = "catalog.json"

func getExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the validated dataset as fixtures",
		Long: `Load and validate the dataset, then write it to --dir.

The yaml format reproduces the authored four-file layout and can be loaded
again with --data-dir. The json format writes a single catalog.json with
identifiers defaulted and roaster and producer names resolved, for use as a
front-end fixture.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			format, _ := cmd.Flags().GetString("format")

			c, err := a.catalog()
			if err != nil {
				return err
			}

			var files []string
			switch format {
			case "yaml":
				ds, err := dataset.Load(a.v.GetString("data-dir"))
				if err != nil {
					return err
				}
				if err := ds.WriteDir(dir); err != nil {
					return fmt.Errorf("write dataset: %w", err)
				}
				files = []string{dataset.NotesFile, dataset.RoastersFile, dataset.ProducersFile, dataset.CoffeesFile}
			case "json":
				if err := writeJSONFixture(filepath.Join(dir, JSONFixture), normalizedDataset(c)); err != nil {
					return err
				}
				files = []string{JSONFixture}
			default:
				return fmt.Errorf("unknown export format %q: use yaml or json", format)
			}

			a.logger.Info("dataset exported", "dir", dir, "format", format)
			out := cmd.OutOrStdout()
			for _, name := range files {
				path := filepath.Join(dir, name)
				info, err := os.Stat(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s (%s)\n", path, humanize.Bytes(uint64(info.Size())))
			}
			fmt.Fprintln(out)
			printExportStats(out, c)
			return nil
		},
	}
	cmd.Flags().String("dir", "", "output directory")
	cmd.Flags().String("format", "yaml", "fixture format: yaml or json")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

// normalizedDataset rebuilds a dataset from the loaded catalog, so every
// record carries its resolved identifiers.
func normalizedDataset(c *catalog.Catalog) *dataset.Dataset {
	summaries := c.Roasters()
	roasters := make([]domain.Roaster, len(summaries))
	for i, r := range summaries {
		roasters[i] = r.Roaster
	}
	return &dataset.Dataset{
		Notes:     c.Taxonomy().Notes(),
		Roasters:  roasters,
		Producers: c.AllProducers(),
		Coffees:   c.Coffees(domain.Criteria{}),
	}
}

func writeJSONFixture(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func printExportStats(w io.Writer, c *catalog.Catalog) {
	counts := c.Counts()
	fmt.Fprintf(w, "Exported %s notes, %s roasters, %s producers, %s coffees\n",
		humanize.Comma(int64(counts["note"])), humanize.Comma(int64(counts["roaster"])),
		humanize.Comma(int64(counts["producer"])), humanize.Comma(int64(counts["coffee"])))

	stats := domain.Aggregate(c.Coffees(domain.Criteria{}), c.Taxonomy())
	fmt.Fprintln(w, "\nBy process:")
	for _, p := range stats.Processes {
		fmt.Fprintf(w, "  %-12s %3d  (%.1f%%)\n", p.Process, p.Count, p.Percent)
	}
	top := domain.TopRated(c.Coffees(domain.Criteria{}), 3)
	fmt.Fprintln(w, "\nTop rated:")
	for i, cf := range top {
		fmt.Fprintf(w, "  %s  %.1f  %s\n", humanize.Ordinal(i+1), cf.Rating, cf.Name)
	}
	if warnings := c.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "\n%s\n", warnStyle.Render(fmt.Sprintf("%d taxonomy warnings; run validate for details", len(warnings))))
	}
}
