package domain

import "slices"

// Roaster is a coffee roasting company.
type Roaster struct {
	ID             string   `json:"id" yaml:"id,omitempty"`
	Name           string   `json:"name" yaml:"name"`
	Location       string   `json:"location" yaml:"location"`
	Founded        int      `json:"founded" yaml:"founded"`
	Description    string   `json:"description" yaml:"description"`
	Philosophy     string   `json:"philosophy" yaml:"philosophy"`
	RoastingStyle  string   `json:"roasting_style" yaml:"roasting_style"`
	Specialties    []string `json:"specialties" yaml:"specialties"`
	Certifications []string `json:"certifications" yaml:"certifications"`
	SocialImpact   string   `json:"social_impact,omitempty" yaml:"social_impact,omitempty"`
	Website        string   `json:"website" yaml:"website"`
	Image          string   `json:"image" yaml:"image"`
}

// Coordinates is a WGS-84 position in [longitude, latitude] order.
type Coordinates [2]float64

// Lon returns the longitude.
func (c Coordinates) Lon() float64 { return c[0] }

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[1] }

// ProducerLocation places a producer on the map.
type ProducerLocation struct {
	Country     string      `json:"country" yaml:"country"`
	Region      string      `json:"region" yaml:"region"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Elevation   int         `json:"elevation" yaml:"elevation"` // metres above sea level
}

// Producer is a farm, estate, cooperative or washing station.
type Producer struct {
	ID             string           `json:"id" yaml:"id,omitempty"`
	Name           string           `json:"name" yaml:"name"`
	Location       ProducerLocation `json:"location" yaml:"location"`
	Founded        int              `json:"founded" yaml:"founded"`
	Description    string           `json:"description" yaml:"description"`
	FarmSize       string           `json:"farm_size" yaml:"farm_size"`
	Varieties      []string         `json:"varieties" yaml:"varieties"`
	Processes      []string         `json:"processes" yaml:"processes"`
	Certifications []string         `json:"certifications" yaml:"certifications"`
	SocialImpact   string           `json:"social_impact,omitempty" yaml:"social_impact,omitempty"`
	Image          string           `json:"image" yaml:"image"`
}

// Marker is the map-widget view of a producer.
type Marker struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Region      string      `json:"region"`
	Country     string      `json:"country"`
	Elevation   int         `json:"elevation"`
}

// MarkerFor projects a producer into a map marker.
func MarkerFor(p Producer) Marker {
	return Marker{
		ID:          p.ID,
		Name:        p.Name,
		Coordinates: p.Location.Coordinates,
		Region:      p.Location.Region,
		Country:     p.Location.Country,
		Elevation:   p.Location.Elevation,
	}
}

// Clone returns a copy of r that shares no slices with it.
func (r Roaster) Clone() Roaster {
	r.Specialties = slices.Clone(r.Specialties)
	r.Certifications = slices.Clone(r.Certifications)
	return r
}

// Clone returns a copy of p that shares no slices with it.
func (p Producer) Clone() Producer {
	p.Varieties = slices.Clone(p.Varieties)
	p.Processes = slices.Clone(p.Processes)
	p.Certifications = slices.Clone(p.Certifications)
	return p
}
