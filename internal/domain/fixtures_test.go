package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/coffee-catalog/internal/domain"
)

func testTaxonomy(t *testing.T) *domain.Taxonomy {
	t.Helper()
	tax, err := domain.NewTaxonomy([]domain.TastingNote{
		{Name: "Blueberry", Category: domain.CategoryBerries, Gradient: domain.Gradient{"#8E2B4A", "#4A1B36"}},
		{Name: "Lemon", Category: domain.CategoryCitrus, Gradient: domain.Gradient{"#FFA344", "#FFD23F"}},
		{Name: "Orange", Category: domain.CategoryCitrus, Gradient: domain.Gradient{"#FFA344", "#FFD23F"}},
		{Name: "Cocoa", Category: domain.CategoryChocolate, Gradient: domain.Gradient{"#3A2523", "#5C3D36"}},
		{Name: "Jasmine", Category: domain.CategoryFloral, Gradient: domain.Gradient{"#FFB5C2", "#FED7E0"}},
		{Name: "Honey", Category: domain.CategorySweet, Gradient: domain.Gradient{"#DAA520", "#F4C430"}},
		{Name: "Caramel", Category: domain.CategorySweet, Gradient: domain.Gradient{"#DAA520", "#F4C430"}},
	})
	require.NoError(t, err)
	return tax
}

func testCoffees() []domain.Coffee {
	return []domain.Coffee{
		{
			ID: "a", Name: "Alpha - One", RoasterID: "r1", Roaster: "Roaster One",
			ProducerID: "p1", Producer: "Producer One", Origin: "Yirgacheffe, Ethiopia",
			Price: 18.99, Notes: []string{"Jasmine", "Lemon", "Honey"}, Rating: 4.8,
			Characteristics: domain.Characteristics{Acidity: 0.8, Sweetness: 0.7, Bitterness: 0.3},
			Body:            domain.BodyLight, Mouthfeel: []domain.Mouthfeel{domain.MouthfeelSilky, domain.MouthfeelJuicy},
			Process: domain.ProcessWashed,
		},
		{
			ID: "b", Name: "Alpha - Two", RoasterID: "r1", Roaster: "Roaster One",
			ProducerID: "p1", Producer: "Producer One", Origin: "Yirgacheffe, Ethiopia",
			Price: 19.99, Notes: []string{"Blueberry", "Honey", "Spices"}, Rating: 4.9,
			Characteristics: domain.Characteristics{Acidity: 0.7, Sweetness: 0.9, Bitterness: 0.2},
			Body:            domain.BodyMedium, Mouthfeel: []domain.Mouthfeel{domain.MouthfeelSyrupy},
			Process: domain.ProcessNatural,
		},
		{
			ID: "c", Name: "Beta - One", RoasterID: "r2", Roaster: "Roaster Two",
			ProducerID: "p2", Producer: "Producer Two", Origin: "Huila, Colombia",
			Price: 16.99, Notes: []string{"Cocoa", "Caramel"}, Rating: 4.5,
			Characteristics: domain.Characteristics{Acidity: 0.5, Sweetness: 0.8, Bitterness: 0.4},
			Body:            domain.BodyFull, Mouthfeel: []domain.Mouthfeel{domain.MouthfeelCreamy, domain.MouthfeelSyrupy},
			Process: domain.ProcessWashed,
		},
		{
			ID: "d", Name: "Gamma - One", RoasterID: "r2", Roaster: "Roaster Two",
			ProducerID: "p3", Producer: "Producer Three", Origin: "Tarrazu, Costa Rica",
			Price: 24.99, Notes: []string{"Honey", "Orange", "Tea"}, Rating: 4.7,
			Characteristics: domain.Characteristics{Acidity: 0.9, Sweetness: 0.6, Bitterness: 0.3},
			Body:            domain.BodyMedium, Mouthfeel: []domain.Mouthfeel{domain.MouthfeelSilky},
			Process: domain.ProcessHoney,
		},
	}
}

func names(coffees []domain.Coffee) []string {
	out := make([]string, len(coffees))
	for i, c := range coffees {
		out[i] = c.Name
	}
	return out
}
