package domain

import (
	"cmp"
	"slices"
)

// ProcessShare is one row of a process distribution.
type ProcessShare struct {
	Process Process `json:"process"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CategoryShare is one row of a flavour-category distribution.
type CategoryShare struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Percent  float64  `json:"percent"`
}

// Stats summarizes a subset of coffees. Count is zero for an empty subset,
// in which case every average is zero and both distributions are empty.
type Stats struct {
	Count           int             `json:"count"`
	AverageRating   float64         `json:"average_rating"`
	Roasters        int             `json:"roasters"`
	Producers       int             `json:"producers"`
	Origins         int             `json:"origins"`
	Processes       []ProcessShare  `json:"processes"`
	Characteristics Characteristics `json:"characteristics"`
	Flavors         []CategoryShare `json:"flavors"`
}

// Aggregate reduces coffees to summary statistics. Distributions are listed
// in first-encounter order. The flavour distribution counts note occurrences,
// so a coffee with three categorised notes contributes three; notes the
// taxonomy does not know are left out of both numerator and denominator.
func Aggregate(coffees []Coffee, tax *Taxonomy) Stats {
	stats := Stats{
		Count:     len(coffees),
		Processes: []ProcessShare{},
		Flavors:   []CategoryShare{},
	}
	if len(coffees) == 0 {
		return stats
	}

	roasters := make(map[string]struct{})
	producers := make(map[string]struct{})
	origins := make(map[string]struct{})
	processIdx := make(map[Process]int)
	categoryIdx := make(map[Category]int)

	var rating float64
	var chars Characteristics
	categorised := 0

	for _, c := range coffees {
		rating += c.Rating
		chars.Acidity += c.Characteristics.Acidity
		chars.Sweetness += c.Characteristics.Sweetness
		chars.Bitterness += c.Characteristics.Bitterness

		roasters[c.RoasterID] = struct{}{}
		producers[c.ProducerID] = struct{}{}
		origins[c.Origin] = struct{}{}

		i, ok := processIdx[c.Process]
		if !ok {
			i = len(stats.Processes)
			processIdx[c.Process] = i
			stats.Processes = append(stats.Processes, ProcessShare{Process: c.Process})
		}
		stats.Processes[i].Count++

		if tax == nil {
			continue
		}
		for _, note := range c.Notes {
			cat, known := tax.CategoryOf(note)
			if !known {
				continue
			}
			j, ok := categoryIdx[cat]
			if !ok {
				j = len(stats.Flavors)
				categoryIdx[cat] = j
				stats.Flavors = append(stats.Flavors, CategoryShare{Category: cat})
			}
			stats.Flavors[j].Count++
			categorised++
		}
	}

	n := float64(len(coffees))
	stats.AverageRating = rating / n
	stats.Characteristics = Characteristics{
		Acidity:    chars.Acidity / n,
		Sweetness:  chars.Sweetness / n,
		Bitterness: chars.Bitterness / n,
	}
	stats.Roasters = len(roasters)
	stats.Producers = len(producers)
	stats.Origins = len(origins)

	for i := range stats.Processes {
		stats.Processes[i].Percent = percent(stats.Processes[i].Count, len(coffees))
	}
	for i := range stats.Flavors {
		stats.Flavors[i].Percent = percent(stats.Flavors[i].Count, categorised)
	}
	return stats
}

// RankByRating returns a copy of coffees sorted by rating, highest first.
// Equal ratings keep their input order.
func RankByRating(coffees []Coffee) []Coffee {
	out := slices.Clone(coffees)
	slices.SortStableFunc(out, func(a, b Coffee) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	return out
}

// TopRated returns at most n coffees from RankByRating.
func TopRated(coffees []Coffee, n int) []Coffee {
	ranked := RankByRating(coffees)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
