package http

import "github.com/couchcryptid/coffee-catalog/internal/domain"

// GeoJSON types for the producer map. Coordinates are [longitude, latitude].

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Geometry   point            `json:"geometry"`
	Properties markerProperties `json:"properties"`
}

type point struct {
	Type        string             `json:"type"`
	Coordinates domain.Coordinates `json:"coordinates"`
}

type markerProperties struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	Elevation int    `json:"elevation"`
}

func markersToGeoJSON(markers []domain.Marker) featureCollection {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, len(markers))}
	for i, m := range markers {
		fc.Features[i] = feature{
			Type:     "Feature",
			ID:       m.ID,
			Geometry: point{Type: "Point", Coordinates: m.Coordinates},
			Properties: markerProperties{
				Name:      m.Name,
				Region:    m.Region,
				Country:   m.Country,
				Elevation: m.Elevation,
			},
		}
	}
	return fc
}
