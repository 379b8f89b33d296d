package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/coffee-catalog/internal/adapter/mapbox"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
	"github.com/couchcryptid/coffee-catalog/internal/observability"
)

func getGeocheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geocheck [producer-id...]",
		Short: "Cross-check producer coordinates against Mapbox geocoding",
		Long: `Forward-geocode each producer's region and country, reverse-geocode its
stored coordinates, and report how far the two are apart. With no arguments
every producer is checked.

The Mapbox token is read from --token, CATALOGCTL_MAPBOX_TOKEN or MAPBOX_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := a.v.GetString("mapbox-token")
			if token == "" {
				return errors.New("mapbox token required: set --token or MAPBOX_TOKEN")
			}
			c, err := a.catalog()
			if err != nil {
				return err
			}
			producers, err := selectProducers(c.AllProducers(), args)
			if err != nil {
				return err
			}

			f := cmd.Flags()
			maxDrift, _ := f.GetFloat64("max-drift")
			timeout, _ := f.GetDuration("timeout")
			concurrency, _ := f.GetInt("concurrency")
			strict, _ := f.GetBool("strict")

			metrics := observability.NewMetricsWith(prometheus.NewRegistry())
			apiURL, _ := f.GetString("api-url")
			client := mapbox.NewClient(token, a.logger, metrics, mapbox.WithTimeout(timeout), mapbox.WithBaseURL(apiURL))
			geocoder := mapbox.NewCachedGeocoder(client, len(producers)*2, metrics)

			checks := make([]domain.LocationCheck, len(producers))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(concurrency, 1))
			for i, p := range producers {
				g.Go(func() error {
					checks[i] = domain.CheckProducerLocation(ctx, p, geocoder, maxDrift, a.logger)
					return nil
				})
			}
			_ = g.Wait()

			if err := a.render(cmd, checks, func(w io.Writer) { printChecks(w, checks) }); err != nil {
				return err
			}
			if flagged := countFlagged(checks); strict && flagged > 0 {
				return fmt.Errorf("%d producer locations need attention", flagged)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("token", "", "Mapbox access token")
	f.Float64("max-drift", domain.DefaultMaxDriftKm, "distance in km beyond which coordinates are reported as drifting")
	f.Duration("timeout", 5*time.Second, "per-request timeout")
	f.Int("concurrency", 4, "producers checked in parallel")
	f.Bool("strict", false, "exit non-zero when any producer is not ok")
	f.String("api-url", "", "geocoding endpoint override")
	_ = f.MarkHidden("api-url")
	_ = a.v.BindPFlag("mapbox-token", f.Lookup("token"))
	_ = a.v.BindEnv("mapbox-token", "CATALOGCTL_MAPBOX_TOKEN", "MAPBOX_TOKEN")
	return cmd
}

// selectProducers returns the producers named by ids in argument order, or
// all of them when ids is empty.
func selectProducers(all []domain.Producer, ids []string) ([]domain.Producer, error) {
	if len(ids) == 0 {
		return all, nil
	}
	byID := make(map[string]domain.Producer, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	out := make([]domain.Producer, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("producer %q: %w", id, domain.ErrNotFound)
		}
		out = append(out, p)
	}
	return out, nil
}

func countFlagged(checks []domain.LocationCheck) int {
	n := 0
	for _, c := range checks {
		if c.Status != domain.GeoStatusOK {
			n++
		}
	}
	return n
}

func printChecks(w io.Writer, checks []domain.LocationCheck) {
	t := newTable("PRODUCER", "STATUS", "DRIFT KM", "COUNTRY", "CONFIDENCE", "GEOCODED AS")
	for _, c := range checks {
		country := "match"
		if !c.CountryMatch {
			country = "differs"
		}
		t.Row(c.ProducerID, statusStyle(c.Status).Render(c.Status), fmt.Sprintf("%.1f", c.DriftKm),
			country, formatFloat(c.Confidence), c.ForwardAddress)
	}
	printTable(w, t)
	fmt.Fprintf(w, "%d of %d producers need attention\n", countFlagged(checks), len(checks))
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case domain.GeoStatusOK:
		return passStyle
	case domain.GeoStatusDrift, domain.GeoStatusUnresolved:
		return warnStyle
	default:
		return failStyle
	}
}
