package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coffee-catalog/internal/catalog"
	"github.com/couchcryptid/coffee-catalog/internal/dataset"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loadEmbedded(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("", discardLogger())
	require.NoError(t, err)
	return c
}

func embeddedDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Embedded()
	require.NoError(t, err)
	return ds
}

func coffeeNames(coffees []domain.Coffee) []string {
	out := make([]string, len(coffees))
	for i, c := range coffees {
		out[i] = c.Name
	}
	return out
}

func TestLoad_Embedded(t *testing.T) {
	c := loadEmbedded(t)

	assert.Equal(t, map[string]int{"coffee": 20, "roaster": 4, "producer": 16, "note": 72}, c.Counts())
	assert.Len(t, c.Warnings(), 4, "Spices twice, Tea and Citrus are not taxonomy notes")
	require.NoError(t, c.CheckReadiness(context.Background()))
}

func TestCoffees_OriginExample(t *testing.T) {
	c := loadEmbedded(t)

	got := c.Coffees(domain.Criteria{Origins: []string{"Yirgacheffe, Ethiopia"}})

	require.Len(t, got, 2)
	assert.Equal(t, "Ethiopian Yirgacheffe - Lot 412", got[0].Name)
	assert.Equal(t, 18.99, got[0].Price)
	assert.Equal(t, "Ethiopian Yirgacheffe - Natural Process", got[1].Name)
	assert.Equal(t, 19.99, got[1].Price)
}

func TestCoffees_ResolvesDisplayNames(t *testing.T) {
	c := loadEmbedded(t)

	cf, err := c.Coffee("ethiopian-yirgacheffe---lot-412")
	require.NoError(t, err)
	assert.Equal(t, "Artisan Roasters", cf.Roaster)
	assert.Equal(t, "Yirgacheffe Coffee Farmers Cooperative Union", cf.Producer)

	byName := c.Coffees(domain.Criteria{Roasters: []string{"Dark Forest Coffee"}})
	byID := c.Coffees(domain.Criteria{Roasters: []string{"dark-forest-coffee"}})
	assert.Len(t, byName, 5)
	assert.Equal(t, coffeeNames(byName), coffeeNames(byID))
}

func TestCoffee_NotFound(t *testing.T) {
	c := loadEmbedded(t)

	_, err := c.Coffee("no-such-coffee")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.Roaster("no-such-roaster")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.Producer("no-such-producer")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.CoffeeDetail("no-such-coffee")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCoffeeDetail_SkipsUnknownNotes(t *testing.T) {
	c := loadEmbedded(t)

	d, err := c.CoffeeDetail("tanzania-kilimanjaro---peaberry")
	require.NoError(t, err)

	assert.Equal(t, []string{"BlackPepper", "Citrus", "Cocoa"}, d.Coffee.Notes)
	require.Len(t, d.Notes, 2)
	assert.Equal(t, "BlackPepper", d.Notes[0].Name)
	assert.Equal(t, "Cocoa", d.Notes[1].Name)
	assert.Equal(t, "KNCU Cooperative", d.Producer.Name)
	assert.Equal(t, "Savanna Roasters", d.Roaster.Name)
}

func TestCoffeeDetail_Palette(t *testing.T) {
	c := loadEmbedded(t)

	d, err := c.CoffeeDetail("kenya-nyeri---aa")
	require.NoError(t, err)
	assert.Equal(t, []domain.Gradient{
		{"#8E2B4A", "#4A1B36"},
		{"#FFA344", "#FFD23F"},
		{"#DAA520", "#F4C430"},
	}, d.Palette)
}

func TestRoaster_ArtisanExample(t *testing.T) {
	c := loadEmbedded(t)

	d, err := c.Roaster("artisan-roasters")
	require.NoError(t, err)

	assert.Equal(t, "Portland, Oregon", d.Roaster.Location)
	assert.Equal(t, 5, d.Stats.Count)
	assert.InDelta(t, 4.7, d.Stats.AverageRating, 1e-9)
	assert.Equal(t, 1, d.Stats.Roasters)
	assert.Equal(t, 3, d.Stats.Producers)
	assert.Equal(t, 3, d.Stats.Origins)

	require.Len(t, d.Stats.Processes, 2)
	assert.Equal(t, domain.ProcessWashed, d.Stats.Processes[0].Process)
	assert.InDelta(t, 60, d.Stats.Processes[0].Percent, 1e-9)
	assert.Equal(t, domain.ProcessNatural, d.Stats.Processes[1].Process)
	assert.InDelta(t, 40, d.Stats.Processes[1].Percent, 1e-9)

	wantFlavors := []struct {
		cat     domain.Category
		count   int
		percent float64
	}{
		{domain.CategoryFloral, 3, 20},
		{domain.CategoryCitrus, 3, 20},
		{domain.CategorySweet, 5, 100.0 / 3},
		{domain.CategoryBerries, 4, 80.0 / 3},
	}
	require.Len(t, d.Stats.Flavors, len(wantFlavors))
	for i, w := range wantFlavors {
		assert.Equal(t, w.cat, d.Stats.Flavors[i].Category)
		assert.Equal(t, w.count, d.Stats.Flavors[i].Count)
		assert.InDelta(t, w.percent, d.Stats.Flavors[i].Percent, 1e-9)
	}

	assert.Equal(t, []string{
		"Ethiopian Yirgacheffe - Natural Process",
		"Ethiopian Yirgacheffe - Lot 412",
		"Kenya Nyeri - AA",
	}, coffeeNames(d.TopCoffees))
	assert.Len(t, d.Coffees, 5)
}

func TestCatalog_ReturnsDeepCopies(t *testing.T) {
	c := loadEmbedded(t)
	const id = "ethiopian-yirgacheffe---lot-412"

	cf, err := c.Coffee(id)
	require.NoError(t, err)
	cf.Notes[0] = "Mutated"

	detail, err := c.CoffeeDetail(id)
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", detail.Coffee.Notes[0])

	r, err := c.Roaster(detail.Coffee.RoasterID)
	require.NoError(t, err)
	require.NotEmpty(t, r.Roaster.Specialties)
	r.Roaster.Specialties[0] = "Mutated"
	r.Coffees[0].Notes[0] = "Mutated"

	again, err := c.Roaster(detail.Coffee.RoasterID)
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", again.Roaster.Specialties[0])
	assert.NotEqual(t, "Mutated", again.Coffees[0].Notes[0])

	p, err := c.Producer(detail.Coffee.ProducerID)
	require.NoError(t, err)
	require.NotEmpty(t, p.Producer.Varieties)
	p.Producer.Varieties[0] = "Mutated"

	pAgain, err := c.Producer(detail.Coffee.ProducerID)
	require.NoError(t, err)
	assert.NotEqual(t, "Mutated", pAgain.Producer.Varieties[0])
}

func TestRoasters_Summaries(t *testing.T) {
	c := loadEmbedded(t)

	rs := c.Roasters()
	require.Len(t, rs, 4)
	assert.Equal(t, "Artisan Roasters", rs[0].Name)
	assert.Equal(t, 5, rs[0].CoffeeCount)
	assert.InDelta(t, 4.7, rs[0].AverageRating, 1e-9)
}

func TestProducer_Detail(t *testing.T) {
	c := loadEmbedded(t)

	d, err := c.Producer("familia-rodriguez-estate")
	require.NoError(t, err)

	assert.Equal(t, "Huila", d.Producer.Location.Region)
	assert.Equal(t, []string{"Colombian Supremo - Natural Process", "Colombian Supremo - Reserve"}, coffeeNames(d.Coffees))
	require.Len(t, d.Roasters, 1)
	assert.Equal(t, "Mountain Peak", d.Roasters[0].Name)
	assert.Equal(t, 1, d.Stats.Roasters)
	assert.InDelta(t, 4.55, d.Stats.AverageRating, 1e-9)
}

func TestProducers_SlugWithPunctuation(t *testing.T) {
	c := loadEmbedded(t)

	d, err := c.Producer("nyungwe-women's-cooperative")
	require.NoError(t, err)
	assert.Equal(t, "Nyungwe Women's Cooperative", d.Producer.Name)

	_, err = c.Producer("coopetarrazu-r.l.")
	require.NoError(t, err)
}

func TestProducerMarkers(t *testing.T) {
	c := loadEmbedded(t)

	markers := c.ProducerMarkers()
	require.Len(t, markers, 16)
	assert.Equal(t, domain.Marker{
		ID:          "yirgacheffe-coffee-farmers-cooperative-union",
		Name:        "Yirgacheffe Coffee Farmers Cooperative Union",
		Coordinates: domain.Coordinates{38.1967, 6.162},
		Region:      "Yirgacheffe",
		Country:     "Ethiopia",
		Elevation:   1800,
	}, markers[0])
}

func TestFlavorFocus_HoneyExample(t *testing.T) {
	c := loadEmbedded(t)

	focus, err := c.FlavorFocus("Honey")
	require.NoError(t, err)

	// Honey appears in six shipped coffees; percentages use that subset size.
	require.Len(t, focus.Coffees, 6)
	want := []struct {
		note  string
		count int
	}{
		{"Jasmine", 2},
		{"Blueberry", 2},
		{"Lemon", 1},
		{"Lavender", 1},
		{"Cranberry", 1},
	}
	require.Len(t, focus.Combinations, len(want))
	for i, w := range want {
		assert.Equal(t, w.note, focus.Combinations[i].Note)
		assert.Equal(t, w.count, focus.Combinations[i].Count)
		assert.InDelta(t, float64(w.count)/6*100, focus.Combinations[i].Percent, 1e-9)
	}
}

func TestFlavorMap_Groups(t *testing.T) {
	c := loadEmbedded(t)

	groups := c.FlavorMap()
	require.Len(t, groups, 14)
	assert.Equal(t, domain.CategoryBerries, groups[0].Category)
	assert.Equal(t, domain.CategoryOther, groups[13].Category)

	berries := map[string]int{}
	for _, n := range groups[0].Notes {
		berries[n.Name] = n.Popularity
	}
	assert.Equal(t, map[string]int{
		"Blueberry": 2, "Raspberry": 1, "Strawberry": 1, "Blackberry": 2, "Cranberry": 1,
	}, berries)
}

func TestFacets(t *testing.T) {
	c := loadEmbedded(t)

	f := c.Facets()
	assert.Equal(t, []domain.Process{domain.ProcessWashed, domain.ProcessNatural, domain.ProcessHoney, domain.ProcessWetHulled}, f.Processes)
	assert.Equal(t, []domain.Mouthfeel{domain.MouthfeelSilky, domain.MouthfeelJuicy, domain.MouthfeelSyrupy, domain.MouthfeelCreamy}, f.Mouthfeels)
	assert.Equal(t, domain.Categories, f.Categories)
	assert.Equal(t, domain.Bodies, f.Bodies)
	assert.Len(t, f.Origins, 16)
	assert.Equal(t, []string{"Artisan Roasters", "Mountain Peak", "Dark Forest Coffee", "Savanna Roasters"}, f.Roasters)
	assert.Len(t, f.Producers, 16)
	assert.Equal(t, domain.PriceDomain, f.Price)
}

func TestNew_DanglingProducer(t *testing.T) {
	ds := embeddedDataset(t)
	ds.Coffees[0].ProducerID = "ghost-farm"

	_, err := catalog.New(ds, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrIntegrity))

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Problems, 1)
	assert.Contains(t, verr.Problems[0], `unknown producer "ghost-farm"`)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ds *dataset.Dataset)
		phase  string
		want   string
	}{
		{
			name:   "dangling roaster",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[3].RoasterID = "artisan" },
			phase:  "References",
			want:   `unknown roaster "artisan"`,
		},
		{
			name:   "duplicate roaster id",
			mutate: func(ds *dataset.Dataset) { ds.Roasters[1].ID = "artisan-roasters" },
			phase:  "Identifiers",
			want:   `duplicate roaster id "artisan-roasters"`,
		},
		{
			name: "slug collision",
			mutate: func(ds *dataset.Dataset) {
				ds.Producers[1].ID = "rodriguez"
				ds.Producers[1].Name = "Yirgacheffe  Coffee Farmers Cooperative Union"
			},
			phase: "Identifiers",
			want:  "share slug",
		},
		{
			name:   "duplicate coffee name",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[1].Name = ds.Coffees[0].Name },
			phase:  "Identifiers",
			want:   "duplicate coffee name",
		},
		{
			name:   "non-positive price",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[0].Price = 0 },
			phase:  "Value domains",
			want:   "must be positive",
		},
		{
			name:   "rating out of range",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[0].Rating = 5.5 },
			phase:  "Value domains",
			want:   "rating 5.5",
		},
		{
			name:   "characteristic out of range",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[0].Characteristics.Bitterness = 1.1 },
			phase:  "Value domains",
			want:   "bitterness 1.1",
		},
		{
			name:   "unknown process",
			mutate: func(ds *dataset.Dataset) { ds.Coffees[0].Process = "Carbonic" },
			phase:  "Value domains",
			want:   "Carbonic",
		},
		{
			name:   "swapped coordinates",
			mutate: func(ds *dataset.Dataset) { ds.Producers[2].Location.Coordinates = domain.Coordinates{4.6, 196.8} },
			phase:  "Value domains",
			want:   "not [longitude, latitude]",
		},
		{
			name: "duplicate taxonomy note",
			mutate: func(ds *dataset.Dataset) {
				ds.Notes = append(ds.Notes, domain.TastingNote{Name: "Honey", Category: domain.CategoryFloral})
			},
			phase: "Taxonomy",
			want:  `duplicate tasting note "Honey"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := embeddedDataset(t)
			tt.mutate(ds)

			report := catalog.Validate(ds)
			require.False(t, report.Passed())

			var found bool
			for _, p := range report.Phases {
				if p.Name != tt.phase {
					continue
				}
				for _, e := range p.Errors {
					if strings.Contains(e, tt.want) {
						found = true
					}
				}
			}
			assert.True(t, found, "phase %q should report %q: %v", tt.phase, tt.want, report.Err())
		})
	}
}

func TestValidate_EmbeddedPasses(t *testing.T) {
	report := catalog.Validate(embeddedDataset(t))
	assert.True(t, report.Passed(), "%v", report.Err())
	require.NoError(t, report.Err())

	var coverage *catalog.Phase
	for _, p := range report.Phases {
		if p.Name == "Taxonomy coverage" {
			coverage = p
		}
	}
	require.NotNil(t, coverage)
	assert.Len(t, coverage.Warnings, 4)
}
