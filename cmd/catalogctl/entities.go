package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
)

func getRoastersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roasters",
		Short: "List roasters with their coffee counts and average ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			roasters := c.Roasters()
			return a.render(cmd, roasters, func(w io.Writer) {
				t := newTable("ID", "NAME", "LOCATION", "FOUNDED", "COFFEES", "AVG RATING")
				for _, r := range roasters {
					t.Row(r.ID, r.Name, r.Location, fmt.Sprint(r.Founded), fmt.Sprint(r.CoffeeCount), formatFloat(r.AverageRating))
				}
				printTable(w, t)
			})
		},
	}
}

func getRoasterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roaster <id>",
		Short: "Show a roaster with statistics over its coffees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			d, err := c.Roaster(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, d, func(w io.Writer) {
				printRoaster(w, d)
			})
		},
	}
}

func printRoaster(w io.Writer, d catalog.RoasterDetail) {
	r := d.Roaster
	fmt.Fprintln(w, titleStyle.Render(r.Name))
	fmt.Fprintf(w, "%s, founded %d\n", r.Location, r.Founded)
	fmt.Fprintln(w, r.Description)
	if len(r.Specialties) > 0 {
		fmt.Fprintf(w, "Specialties: %s\n", strings.Join(r.Specialties, ", "))
	}
	if len(r.Certifications) > 0 {
		fmt.Fprintf(w, "Certifications: %s\n", strings.Join(r.Certifications, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, titleStyle.Render("Top rated"))
	for i, cf := range d.TopCoffees {
		fmt.Fprintf(w, "  %s %s (%.1f)\n", humanize.Ordinal(i+1), cf.Name, cf.Rating)
	}
	fmt.Fprintln(w)
	printCoffees(w, d.Coffees)
	fmt.Fprintln(w)
	printStats(w, d.Stats)
}

func getProducersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "producers",
		Short: "List producers with their coffee counts and average ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			producers := c.Producers()
			return a.render(cmd, producers, func(w io.Writer) {
				t := newTable("ID", "NAME", "REGION", "COUNTRY", "ELEVATION", "COFFEES", "AVG RATING")
				for _, p := range producers {
					t.Row(p.ID, p.Name, p.Location.Region, p.Location.Country,
						humanize.Comma(int64(p.Location.Elevation))+" m",
						fmt.Sprint(p.CoffeeCount), formatFloat(p.AverageRating))
				}
				printTable(w, t)
			})
		},
	}
}

func getProducerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "producer <id>",
		Short: "Show a producer with its coffees and roaster partners",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			d, err := c.Producer(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, d, func(w io.Writer) {
				printProducer(w, d)
			})
		},
	}
}

func printProducer(w io.Writer, d catalog.ProducerDetail) {
	p := d.Producer
	loc := p.Location
	fmt.Fprintln(w, titleStyle.Render(p.Name))
	fmt.Fprintf(w, "%s, %s at %s m (%.4f, %.4f)\n", loc.Region, loc.Country,
		humanize.Comma(int64(loc.Elevation)), loc.Coordinates.Lat(), loc.Coordinates.Lon())
	fmt.Fprintln(w, p.Description)
	if len(p.Varieties) > 0 {
		fmt.Fprintf(w, "Varieties: %s\n", strings.Join(p.Varieties, ", "))
	}
	partners := make([]string, len(d.Roasters))
	for i, r := range d.Roasters {
		partners[i] = r.Name
	}
	fmt.Fprintf(w, "Roaster partners: %s\n\n", strings.Join(partners, ", "))

	printCoffees(w, d.Coffees)
	fmt.Fprintln(w)
	printStats(w, d.Stats)
}

func getFlavorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flavors [note]",
		Short: "Show the flavour map, or the coffees and pairings of one note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				groups := c.FlavorMap()
				return a.render(cmd, groups, func(w io.Writer) {
					t := newTable("CATEGORY", "NOTE", "COFFEES")
					for _, g := range groups {
						for _, n := range g.Notes {
							t.Row(string(g.Category), n.Name, fmt.Sprint(n.Popularity))
						}
					}
					printTable(w, t)
				})
			}

			focus, err := c.FlavorFocus(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, focus, func(w io.Writer) {
				title := focus.Note
				if focus.Category != "" {
					title += " (" + string(focus.Category) + ")"
				}
				fmt.Fprintln(w, titleStyle.Render(title))
				printCoffees(w, focus.Coffees)
				if len(focus.Combinations) == 0 {
					return
				}
				fmt.Fprintln(w)
				t := newTable("PAIRS WITH", "COFFEES", "SHARE")
				for _, cb := range focus.Combinations {
					t.Row(cb.Note, fmt.Sprint(cb.Count), fmt.Sprintf("%.1f%%", cb.Percent))
				}
				printTable(w, t)
			})
		},
	}
}
