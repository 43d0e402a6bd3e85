package scene

import "fmt"

// Default settings applied to items that do not override them.
const (
	DefaultTension       = 0.5
	DefaultSamples       = 16
	DefaultResolution    = 8
	DefaultTangentLength = 50
	DefaultMaxLevels     = 5
)

// Defaults contains scene-wide default settings.
type Defaults struct {
	Tension       float64 `json:"tension"`        // cardinal spline tension
	Samples       int     `json:"samples"`        // spline samples per interval
	Resolution    int     `json:"resolution"`     // patch grid cells per side
	TangentLength float64 `json:"tangent_length"` // tangent handle length in pixels
	MaxLevels     int     `json:"max_levels"`     // subdivision depth before warning
}

// Scene is the flat, ordered list of items produced by one evaluation.
// It is never mutated after evaluation completes; each evaluation produces
// a new scene.
type Scene struct {
	Items     map[ItemID]*Item  `json:"items"`
	Order     []ItemID          `json:"order"`
	NameIndex map[string]ItemID `json:"name_index"`
	Defaults  Defaults          `json:"defaults"`
}

// New creates an empty Scene with default settings.
func New() *Scene {
	return &Scene{
		Items:     make(map[ItemID]*Item),
		NameIndex: make(map[string]ItemID),
		Defaults: Defaults{
			Tension:       DefaultTension,
			Samples:       DefaultSamples,
			Resolution:    DefaultResolution,
			TangentLength: DefaultTangentLength,
			MaxLevels:     DefaultMaxLevels,
		},
	}
}

// Add appends an item to the draw order. It does not check for duplicates;
// a repeated ID shows up in Order twice and is reported by Validate.
func (s *Scene) Add(it *Item) {
	s.Items[it.ID] = it
	s.Order = append(s.Order, it.ID)
	if it.Name != "" {
		s.NameIndex[it.Name] = it.ID
	}
}

// Lookup returns the item with the given name, or nil.
func (s *Scene) Lookup(name string) *Item {
	id, ok := s.NameIndex[name]
	if !ok {
		return nil
	}
	return s.Items[id]
}

// MustLookup returns the item with the given name, or panics.
func (s *Scene) MustLookup(name string) *Item {
	it := s.Lookup(name)
	if it == nil {
		panic(fmt.Sprintf("scene: no item named %q", name))
	}
	return it
}

// Get returns the item with the given ID, or nil.
func (s *Scene) Get(id ItemID) *Item {
	return s.Items[id]
}

// Ordered returns the items in draw order, skipping dangling IDs.
func (s *Scene) Ordered() []*Item {
	items := make([]*Item, 0, len(s.Order))
	for _, id := range s.Order {
		if it := s.Items[id]; it != nil {
			items = append(items, it)
		}
	}
	return items
}

// Len returns the number of entries in the draw order.
func (s *Scene) Len() int {
	return len(s.Order)
}
