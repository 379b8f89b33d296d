package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/dataset"
)

func getValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for integrity errors",
		Long: `Run every integrity phase over the dataset and print a per-phase report.
Identifier collisions, dangling references and out-of-domain values fail the
run. Tasting notes missing from the taxonomy are reported as warnings, which
fail the run only with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := dataset.Load(a.v.GetString("data-dir"))
			if err != nil {
				return err
			}
			report := catalog.Validate(ds)
			strict, _ := cmd.Flags().GetBool("strict")

			if err := a.render(cmd, report, func(w io.Writer) {
				printReport(w, ds, report)
			}); err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return err
			}
			if strict && len(report.Warnings()) > 0 {
				return errors.New("validation produced warnings")
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "treat warnings as failures")
	return cmd
}

func printReport(w io.Writer, ds *dataset.Dataset, report catalog.Report) {
	fmt.Fprintln(w, titleStyle.Render("=== Coffee Catalog Integrity Validation ==="))
	fmt.Fprintln(w)
	for _, p := range report.Phases {
		status := passStyle.Render("PASS")
		switch {
		case !p.Passed():
			status = failStyle.Render(fmt.Sprintf("FAIL (%d errors)", len(p.Errors)))
		case len(p.Warnings) > 0:
			status = warnStyle.Render(fmt.Sprintf("PASS (%d warnings)", len(p.Warnings)))
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.Name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Records: %d notes, %d roasters, %d producers, %d coffees\n",
		len(ds.Notes), len(ds.Roasters), len(ds.Producers), len(ds.Coffees))

	for _, p := range report.Phases {
		if len(p.Errors) == 0 && len(p.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.Name)
		for i, e := range p.Errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, failStyle.Render(e))
		}
		for _, warn := range p.Warnings {
			fmt.Fprintf(w, "  [w] %s\n", warnStyle.Render(warn))
		}
	}

	if report.Passed() {
		fmt.Fprintln(w, "\nAll validations passed.")
		return
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
}
