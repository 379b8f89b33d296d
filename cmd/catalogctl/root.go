package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// app carries the settings and lazily loaded catalog shared by subcommands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
	cat    *catalog.Catalog
}

// getRootCmd returns the catalogctl command tree. Flags take precedence over
// CATALOGCTL_* environment variables.
func getRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "catalogctl",
		Short: "Query and maintain the coffee catalog",
		Long: `catalogctl browses the specialty coffee catalog and maintains its dataset.

Queries run against the dataset embedded in the binary unless --data-dir
points at a directory holding notes.yaml, roasters.yaml, producers.yaml and
coffees.yaml.

Every flag can also be set through the environment, for example
CATALOGCTL_DATA_DIR or CATALOGCTL_OUTPUT.`,
		PersistentPreRunE: a.bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("data-dir", "", "dataset directory (default: embedded dataset)")
	pf.StringP("output", "o", outputTable, "output format: table or json")
	pf.String("log-level", "warn", "diagnostic log level on stderr")
	_ = a.v.BindPFlags(pf)

	a.v.SetEnvPrefix("CATALOGCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd.AddCommand(
		getCoffeesCmd(a),
		getCoffeeCmd(a),
		getRoastersCmd(a),
		getRoasterCmd(a),
		getProducersCmd(a),
		getProducerCmd(a),
		getFlavorsCmd(a),
		getValidateCmd(a),
		getExportCmd(a),
		getGeocheckCmd(a),
	)
	return rootCmd
}

func (a *app) bootstrap(cmd *cobra.Command, _ []string) error {
	switch out := a.v.GetString("output"); out {
	case outputTable, outputJSON:
	default:
		return fmt.Errorf("unknown output format %q: use table or json", out)
	}
	a.logger = observability.NewLoggerTo(cmd.ErrOrStderr(), a.v.GetString("log-level"), "text")
	return nil
}

// catalog loads the catalog on first use.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cat != nil {
		return a.cat, nil
	}
	c, err := catalog.Load(a.v.GetString("data-dir"), a.logger)
	if err != nil {
		return nil, err
	}
	a.cat = c
	return c, nil
}

// render writes v as indented JSON or calls human to print the table form.
func (a *app) render(cmd *cobra.Command, v any, human func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.v.GetString("output") == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(w)
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printTable(w io.Writer, t *table.Table) {
	fmt.Fprintln(w, t.String())
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
