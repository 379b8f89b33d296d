package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// rangeFlags names the numeric axes exposed as --<name>-min/--<name>-max.
var rangeFlags = []struct {
	name  string
	full  domain.Range
	usage string
}{
	{"price", domain.PriceDomain, "price"},
	{"rating", domain.RatingDomain, "rating"},
	{"acidity", domain.CharacteristicDomain, "acidity intensity"},
	{"sweetness", domain.CharacteristicDomain, "sweetness intensity"},
	{"bitterness", domain.CharacteristicDomain, "bitterness intensity"},
}

func getCoffeesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coffees",
		Short: "List coffees matching the given filters",
		Long: `List coffees in catalog order. Selection flags may be repeated: values of
one flag are alternatives, different flags must all match. Range bounds are
inclusive; a single bound leaves the other end at the full domain.`,
		Example: `  catalogctl coffees --process Natural --process Honey
  catalogctl coffees --category Berries --price-max 20
  catalogctl coffees --roaster "Artisan Roasters" --stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			crit, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}
			c, err := a.catalog()
			if err != nil {
				return err
			}
			coffees := c.Coffees(crit)

			withStats, _ := cmd.Flags().GetBool("stats")
			if !withStats {
				return a.render(cmd, coffees, func(w io.Writer) { printCoffees(w, coffees) })
			}
			stats := domain.Aggregate(coffees, c.Taxonomy())
			out := struct {
				Coffees []domain.Coffee `json:"coffees"`
				Stats   domain.Stats    `json:"stats"`
			}{coffees, stats}
			return a.render(cmd, out, func(w io.Writer) {
				printCoffees(w, coffees)
				fmt.Fprintln(w)
				printStats(w, stats)
			})
		},
	}

	f := cmd.Flags()
	f.StringArray("process", nil, "processing method (Washed, Natural, Honey, Wet Hulled)")
	f.StringArray("category", nil, "flavour category of at least one note")
	f.StringArray("origin", nil, "origin label")
	f.StringArray("roaster", nil, "roaster name or id")
	f.StringArray("producer", nil, "producer name or id")
	f.StringArray("mouthfeel", nil, "mouthfeel descriptor")
	f.StringArray("body", nil, "body weight (Light, Medium, Full)")
	for _, r := range rangeFlags {
		f.Float64(r.name+"-min", r.full.Min, "minimum "+r.usage)
		f.Float64(r.name+"-max", r.full.Max, "maximum "+r.usage)
	}
	f.Bool("stats", false, "append aggregate statistics for the result")
	return cmd
}

// criteriaFromFlags converts the selection flags of cmd into Criteria.
func criteriaFromFlags(cmd *cobra.Command) (domain.Criteria, error) {
	f := cmd.Flags()
	var (
		crit domain.Criteria
		err  error
	)
	strs := func(name string) []string {
		v, _ := f.GetStringArray(name)
		return v
	}

	if crit.Processes, err = parseAll(strs("process"), domain.ParseProcess); err != nil {
		return crit, err
	}
	if crit.Categories, err = parseAll(strs("category"), domain.ParseCategory); err != nil {
		return crit, err
	}
	if crit.Mouthfeels, err = parseAll(strs("mouthfeel"), domain.ParseMouthfeel); err != nil {
		return crit, err
	}
	if crit.Bodies, err = parseAll(strs("body"), domain.ParseBody); err != nil {
		return crit, err
	}
	crit.Origins = strs("origin")
	crit.Roasters = strs("roaster")
	crit.Producers = strs("producer")

	targets := map[string]**domain.Range{
		"price":      &crit.Price,
		"rating":     &crit.Rating,
		"acidity":    &crit.Acidity,
		"sweetness":  &crit.Sweetness,
		"bitterness": &crit.Bitterness,
	}
	for _, rf := range rangeFlags {
		minName, maxName := rf.name+"-min", rf.name+"-max"
		if !f.Changed(minName) && !f.Changed(maxName) {
			continue
		}
		// A single bound leaves the other end open.
		r := domain.Unbounded()
		for _, b := range []struct {
			name string
			dst  *float64
		}{{minName, &r.Min}, {maxName, &r.Max}} {
			if !f.Changed(b.name) {
				continue
			}
			v, _ := f.GetFloat64(b.name)
			if !finite(v) {
				return crit, fmt.Errorf("--%s must be a finite number", b.name)
			}
			*b.dst = v
		}
		if r.Min > r.Max {
			return crit, fmt.Errorf("--%s %v exceeds --%s %v", minName, r.Min, maxName, r.Max)
		}
		*targets[rf.name] = &r
	}
	return crit, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]T, 0, len(values))
	for _, v := range values {
		p, err := parse(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func printCoffees(w io.Writer, coffees []domain.Coffee) {
	t := newTable("ID", "NAME", "ROASTER", "ORIGIN", "PROCESS", "PRICE", "RATING")
	for _, c := range coffees {
		t.Row(c.ID, c.Name, c.Roaster, c.Origin, string(c.Process), formatFloat(c.Price), fmt.Sprintf("%.1f", c.Rating))
	}
	printTable(w, t)
	fmt.Fprintln(w, english.Plural(len(coffees), "coffee", ""))
}

func printStats(w io.Writer, s domain.Stats) {
	fmt.Fprintln(w, titleStyle.Render("Statistics"))
	fmt.Fprintf(w, "  %-16s %d\n", "coffees", s.Count)
	fmt.Fprintf(w, "  %-16s %.2f\n", "average rating", s.AverageRating)
	fmt.Fprintf(w, "  %-16s %d roasters, %d producers, %d origins\n", "sources", s.Roasters, s.Producers, s.Origins)
	fmt.Fprintf(w, "  %-16s acidity %.2f, sweetness %.2f, bitterness %.2f\n", "characteristics",
		s.Characteristics.Acidity, s.Characteristics.Sweetness, s.Characteristics.Bitterness)

	if len(s.Processes) > 0 {
		t := newTable("PROCESS", "COFFEES", "SHARE")
		for _, p := range s.Processes {
			t.Row(string(p.Process), fmt.Sprint(p.Count), fmt.Sprintf("%.1f%%", p.Percent))
		}
		printTable(w, t)
	}
	if len(s.Flavors) > 0 {
		t := newTable("CATEGORY", "NOTES", "SHARE")
		for _, c := range s.Flavors {
			t.Row(string(c.Category), fmt.Sprint(c.Count), fmt.Sprintf("%.1f%%", c.Percent))
		}
		printTable(w, t)
	}
}

func getCoffeeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "coffee <id>",
		Short: "Show one coffee with its tasting notes and partners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			d, err := c.CoffeeDetail(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, d, func(w io.Writer) {
				cf := d.Coffee
				fmt.Fprintln(w, titleStyle.Render(cf.Name))
				t := newTable("FIELD", "VALUE").
					Row("id", cf.ID).
					Row("roaster", d.Roaster.Name).
					Row("producer", d.Producer.Name).
					Row("origin", cf.Origin).
					Row("process", string(cf.Process)).
					Row("price", formatFloat(cf.Price)).
					Row("rating", fmt.Sprintf("%.1f", cf.Rating)).
					Row("body", string(cf.Body)).
					Row("mouthfeel", joinStrings(cf.Mouthfeel)).
					Row("acidity", formatFloat(cf.Characteristics.Acidity)).
					Row("sweetness", formatFloat(cf.Characteristics.Sweetness)).
					Row("bitterness", formatFloat(cf.Characteristics.Bitterness))
				printTable(w, t)

				notes := newTable("NOTE", "CATEGORY", "GRADIENT")
				for _, n := range d.Notes {
					notes.Row(n.Name, string(n.Category), n.Gradient[0]+" > "+n.Gradient[1])
				}
				printTable(w, notes)
			})
		},
	}
}

func joinStrings[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
