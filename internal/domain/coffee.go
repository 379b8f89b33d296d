package domain

import (
	"fmt"
	"slices"
)

// Body is the perceived weight of a coffee.
type Body string

const (
	BodyLight  Body = "Light"
	BodyMedium Body = "Medium"
	BodyFull   Body = "Full"
)

// Bodies lists every body value in display order.
var Bodies = []Body{BodyLight, BodyMedium, BodyFull}

// Mouthfeel is a tactile descriptor.
type Mouthfeel string

const (
	MouthfeelSyrupy Mouthfeel = "Syrupy"
	MouthfeelCreamy Mouthfeel = "Creamy"
	MouthfeelSilky  Mouthfeel = "Silky"
	MouthfeelJuicy  Mouthfeel = "Juicy"
)

// Mouthfeels lists every mouthfeel value in display order.
var Mouthfeels = []Mouthfeel{MouthfeelSyrupy, MouthfeelCreamy, MouthfeelSilky, MouthfeelJuicy}

// Process is the post-harvest processing method.
type Process string

const (
	ProcessWashed    Process = "Washed"
	ProcessNatural   Process = "Natural"
	ProcessHoney     Process = "Honey"
	ProcessAnaerobic Process = "Anaerobic"
	ProcessWetHulled Process = "Wet Hulled"
)

// Processes lists every process value.
var Processes = []Process{ProcessWashed, ProcessNatural, ProcessHoney, ProcessAnaerobic, ProcessWetHulled}

// ParseBody returns the Body named s.
func ParseBody(s string) (Body, error) {
	for _, b := range Bodies {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("body %q: %w", s, ErrUnknownValue)
}

// ParseMouthfeel returns the Mouthfeel named s.
func ParseMouthfeel(s string) (Mouthfeel, error) {
	for _, m := range Mouthfeels {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("mouthfeel %q: %w", s, ErrUnknownValue)
}

// ParseProcess returns the Process named s.
func ParseProcess(s string) (Process, error) {
	for _, p := range Processes {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("process %q: %w", s, ErrUnknownValue)
}

// Characteristics are normalized intensities in [0, 1].
type Characteristics struct {
	Acidity    float64 `json:"acidity" yaml:"acidity"`
	Sweetness  float64 `json:"sweetness" yaml:"sweetness"`
	Bitterness float64 `json:"bitterness" yaml:"bitterness"`
}

// Coffee is one catalog product. Coffees are immutable once the catalog is built.
type Coffee struct {
	ID              string          `json:"id" yaml:"id,omitempty"`
	Name            string          `json:"name" yaml:"name"`
	RoasterID       string          `json:"roaster_id" yaml:"roaster"`
	Roaster         string          `json:"roaster" yaml:"-"`
	ProducerID      string          `json:"producer_id" yaml:"producer"`
	Producer        string          `json:"producer" yaml:"-"`
	Origin          string          `json:"origin" yaml:"origin"`
	Price           float64         `json:"price" yaml:"price"`
	Notes           []string        `json:"notes" yaml:"notes"`
	Rating          float64         `json:"rating" yaml:"rating"`
	Characteristics Characteristics `json:"characteristics" yaml:"characteristics"`
	Body            Body            `json:"body" yaml:"body"`
	Mouthfeel       []Mouthfeel     `json:"mouthfeel" yaml:"mouthfeel"`
	Process         Process         `json:"process" yaml:"process"`
}

// HasNote reports whether the coffee lists note.
func (c Coffee) HasNote(note string) bool {
	return slices.Contains(c.Notes, note)
}

// Clone returns a copy of c that shares no slices with it.
func (c Coffee) Clone() Coffee {
	c.Notes = slices.Clone(c.Notes)
	c.Mouthfeel = slices.Clone(c.Mouthfeel)
	return c
}

// CloneCoffees deep-copies coffees. The result is never nil.
func CloneCoffees(coffees []Coffee) []Coffee {
	out := make([]Coffee, len(coffees))
	for i, c := range coffees {
		out[i] = c.Clone()
	}
	return out
}
