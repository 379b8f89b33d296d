// Package dataset loads the static catalog data. The shipped data is embedded
// in the binary; an alternative directory with the same four files can be
// loaded instead.
package dataset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

// File names inside a dataset directory.
const (
	NotesFile     = "notes.yaml"
	RoastersFile  = "roasters.yaml"
	ProducersFile = "producers.yaml"
	CoffeesFile   = "coffees.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Dataset is the raw authored data, before identifiers are defaulted and
// references are checked.
type Dataset struct {
	Notes     []domain.TastingNote `json:"notes" yaml:"-"`
	Roasters  []domain.Roaster     `json:"roasters" yaml:"roasters"`
	Producers []domain.Producer    `json:"producers" yaml:"producers"`
	Coffees   []domain.Coffee      `json:"coffees" yaml:"coffees"`
}

// CategoryNotes is the authored grouping of notes under one category.
type CategoryNotes struct {
	Name     domain.Category `yaml:"name"`
	Gradient domain.Gradient `yaml:"gradient"`
	Notes    []string        `yaml:"notes"`
}

type notesFile struct {
	Categories []CategoryNotes `yaml:"categories"`
}

type roastersFile struct {
	Roasters []domain.Roaster `yaml:"roasters"`
}

type producersFile struct {
	Producers []domain.Producer `yaml:"producers"`
}

type coffeesFile struct {
	Coffees []domain.Coffee `yaml:"coffees"`
}

// Embedded returns the dataset compiled into the binary.
func Embedded() (*Dataset, error) {
	return LoadFS(embedded, "data")
}

// Load reads the dataset from dir, or the embedded dataset when dir is empty.
func Load(dir string) (*Dataset, error) {
	if dir == "" {
		return Embedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset dir %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir), ".")
}

// LoadFS reads the four dataset files from root within fsys.
func LoadFS(fsys fs.FS, root string) (*Dataset, error) {
	var (
		nf notesFile
		rf roastersFile
		pf producersFile
		cf coffeesFile
	)
	for _, f := range []struct {
		name string
		out  any
	}{
		{NotesFile, &nf},
		{RoastersFile, &rf},
		{ProducersFile, &pf},
		{CoffeesFile, &cf},
	} {
		if err := decodeFile(fsys, path.Join(root, f.name), f.out); err != nil {
			return nil, err
		}
	}

	ds := &Dataset{
		Roasters:  rf.Roasters,
		Producers: pf.Producers,
		Coffees:   cf.Coffees,
	}
	for _, c := range nf.Categories {
		for _, n := range c.Notes {
			ds.Notes = append(ds.Notes, domain.TastingNote{Name: n, Category: c.Name, Gradient: c.Gradient})
		}
	}
	return ds, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Categories regroups the flat note list by category, in order of first
// appearance, for writing back to the authored layout.
func (d *Dataset) Categories() []CategoryNotes {
	idx := make(map[domain.Category]int)
	var out []CategoryNotes
	for _, n := range d.Notes {
		i, ok := idx[n.Category]
		if !ok {
			i = len(out)
			idx[n.Category] = i
			out = append(out, CategoryNotes{Name: n.Category, Gradient: n.Gradient})
		}
		out[i].Notes = append(out[i].Notes, n.Name)
	}
	return out
}

// WriteDir writes d to dir in the authored four-file layout.
func (d *Dataset) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    any
	}{
		{NotesFile, notesFile{Categories: d.Categories()}},
		{RoastersFile, roastersFile{Roasters: d.Roasters}},
		{ProducersFile, producersFile{Producers: d.Producers}},
		{CoffeesFile, coffeesFile{Coffees: d.Coffees}},
	} {
		data, err := yaml.Marshal(f.v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", f.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
