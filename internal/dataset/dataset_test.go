package dataset_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coffee-catalog/internal/dataset"
	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

func TestEmbedded_Counts(t *testing.T) {
	ds, err := dataset.Embedded()
	require.NoError(t, err)

	assert.Len(t, ds.Coffees, 20)
	assert.Len(t, ds.Roasters, 4)
	assert.Len(t, ds.Producers, 16)
	assert.Len(t, ds.Notes, 72)
}

func TestEmbedded_FirstCoffee(t *testing.T) {
	ds, err := dataset.Embedded()
	require.NoError(t, err)

	c := ds.Coffees[0]
	assert.Equal(t, "Ethiopian Yirgacheffe - Lot 412", c.Name)
	assert.Equal(t, "artisan-roasters", c.RoasterID)
	assert.Equal(t, "yirgacheffe-coffee-farmers-cooperative-union", c.ProducerID)
	assert.Equal(t, 18.99, c.Price)
	assert.Equal(t, []string{"Jasmine", "Lemon", "Honey"}, c.Notes)
	assert.Equal(t, domain.Characteristics{Acidity: 0.8, Sweetness: 0.7, Bitterness: 0.3}, c.Characteristics)
	assert.Equal(t, domain.BodyLight, c.Body)
	assert.Equal(t, []domain.Mouthfeel{domain.MouthfeelSilky, domain.MouthfeelJuicy}, c.Mouthfeel)
	assert.Equal(t, domain.ProcessWashed, c.Process)
}

func TestEmbedded_NotesKeepCategoryOrder(t *testing.T) {
	ds, err := dataset.Embedded()
	require.NoError(t, err)

	first := ds.Notes[0]
	assert.Equal(t, domain.TastingNote{
		Name:     "Blueberry",
		Category: domain.CategoryBerries,
		Gradient: domain.Gradient{"#8E2B4A", "#4A1B36"},
	}, first)

	var cats []domain.Category
	for _, c := range ds.Categories() {
		cats = append(cats, c.Name)
	}
	assert.Equal(t, domain.Categories, cats)
}

func TestEmbedded_ProducerCoordinates(t *testing.T) {
	ds, err := dataset.Embedded()
	require.NoError(t, err)

	var found bool
	for _, p := range ds.Producers {
		if p.Name == "Familia Rodriguez Estate" {
			found = true
			assert.Equal(t, domain.Coordinates{-76.0538, 2.5359}, p.Location.Coordinates)
			assert.Equal(t, 1700, p.Location.Elevation)
			assert.Equal(t, "85 hectares", p.FarmSize)
		}
	}
	assert.True(t, found)
}

const minimalNotes = `categories:
  - name: Sweet
    gradient: ["#DAA520", "#F4C430"]
    notes: [Honey]
`

func TestLoadFS_UnknownFieldRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.yaml":     {Data: []byte(minimalNotes)},
		"roasters.yaml":  {Data: []byte("roasters:\n  - name: R\n    colour: red\n")},
		"producers.yaml": {Data: []byte("producers: []\n")},
		"coffees.yaml":   {Data: []byte("coffees: []\n")},
	}

	_, err := dataset.LoadFS(fsys, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roasters.yaml")
}

func TestLoadFS_MissingFile(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.yaml": {Data: []byte(minimalNotes)},
	}

	_, err := dataset.LoadFS(fsys, ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roasters.yaml")
}

func TestLoadFS_EmptyFile(t *testing.T) {
	fsys := fstest.MapFS{
		"notes.yaml":     {Data: []byte(minimalNotes)},
		"roasters.yaml":  {Data: []byte("")},
		"producers.yaml": {Data: []byte("")},
		"coffees.yaml":   {Data: []byte("")},
	}

	ds, err := dataset.LoadFS(fsys, ".")
	require.NoError(t, err)
	assert.Len(t, ds.Notes, 1)
	assert.Empty(t, ds.Coffees)
}

func TestLoad_EmptyDirUsesEmbedded(t *testing.T) {
	ds, err := dataset.Load("")
	require.NoError(t, err)
	assert.Len(t, ds.Coffees, 20)
}

func TestLoad_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.yaml")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	_, err := dataset.Load(f)
	require.Error(t, err)
}

func TestWriteDir_RoundTrip(t *testing.T) {
	ds, err := dataset.Embedded()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, ds.WriteDir(dir))

	got, err := dataset.Load(dir)
	require.NoError(t, err)
	if diff := cmp.Diff(ds, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
