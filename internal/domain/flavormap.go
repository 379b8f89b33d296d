package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// MaxCombinations caps the co-occurrence ranking of a focused note.
const MaxCombinations = 5

// NotePopularity is a taxonomy note with the number of coffees listing it.
type NotePopularity struct {
	Name       string   `json:"name"`
	Gradient   Gradient `json:"gradient"`
	Popularity int      `json:"popularity"`
}

// NoteGroup holds the notes of one category.
type NoteGroup struct {
	Category Category         `json:"category"`
	Notes    []NotePopularity `json:"notes"`
}

// Combination is a note that co-occurs with a focused note.
type Combination struct {
	Note    string  `json:"note"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// NoteFocus is the flavour-map detail for one note.
type NoteFocus struct {
	Note         string        `json:"note"`
	Category     Category      `json:"category,omitempty"`
	Gradient     Gradient      `json:"gradient"`
	Coffees      []Coffee      `json:"coffees"`
	Combinations []Combination `json:"combinations"`
}

// GroupNotes partitions the taxonomy by category, in order of first
// appearance in the table, counting each note's popularity across coffees.
func GroupNotes(tax *Taxonomy, coffees []Coffee) []NoteGroup {
	popularity := make(map[string]int)
	for _, c := range coffees {
		seen := make(map[string]bool, len(c.Notes))
		for _, n := range c.Notes {
			if !seen[n] {
				seen[n] = true
				popularity[n]++
			}
		}
	}

	groupIdx := make(map[Category]int)
	var groups []NoteGroup
	for _, n := range tax.Notes() {
		i, ok := groupIdx[n.Category]
		if !ok {
			i = len(groups)
			groupIdx[n.Category] = i
			groups = append(groups, NoteGroup{Category: n.Category})
		}
		groups[i].Notes = append(groups[i].Notes, NotePopularity{
			Name:       n.Name,
			Gradient:   n.Gradient,
			Popularity: popularity[n.Name],
		})
	}
	return groups
}

// FocusNote returns every coffee listing note plus the notes that appear
// alongside it, ranked by count with ties kept in first-encounter order and
// truncated to MaxCombinations. Percentages are relative to the number of
// coffees listing note. A note unknown to both the taxonomy and the catalog
// yields ErrNotFound.
func FocusNote(note string, tax *Taxonomy, coffees []Coffee) (NoteFocus, error) {
	focus := NoteFocus{Note: note, Coffees: []Coffee{}, Combinations: []Combination{}}
	known := false
	if tax != nil {
		if tn, ok := tax.Lookup(note); ok {
			known = true
			focus.Category = tn.Category
			focus.Gradient = tn.Gradient
		}
	}

	for _, c := range coffees {
		if c.HasNote(note) {
			focus.Coffees = append(focus.Coffees, c)
		}
	}
	if !known && len(focus.Coffees) == 0 {
		return NoteFocus{}, fmt.Errorf("note %q: %w", note, ErrNotFound)
	}

	idx := make(map[string]int)
	var combos []Combination
	for _, c := range focus.Coffees {
		for _, other := range c.Notes {
			if other == note {
				continue
			}
			i, ok := idx[other]
			if !ok {
				i = len(combos)
				idx[other] = i
				combos = append(combos, Combination{Note: other})
			}
			combos[i].Count++
		}
	}

	slices.SortStableFunc(combos, func(a, b Combination) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(combos) > MaxCombinations {
		combos = combos[:MaxCombinations]
	}
	for i := range combos {
		combos[i].Percent = percent(combos[i].Count, len(focus.Coffees))
	}
	focus.Combinations = append(focus.Combinations, combos...)
	return focus, nil
}
