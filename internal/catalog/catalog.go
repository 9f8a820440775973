// Package catalog holds the fixed descriptive table of bodies in the
// scene and turns it into texture requests and scene positions.
package catalog

import (
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/texture"
)

// RingColor is the base color of every ring texture.
const RingColor = "#e0c090"

// Body is the presentation metadata of one scene body. Orbital elements
// live in package orbit; satellites and fixed bodies carry their own
// placement here.
type Body struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`

	Texture        texture.Type `json:"texture,omitempty"`
	NoiseIntensity float64      `json:"noiseIntensity,omitempty"`
	Detail         float64      `json:"detail,omitempty"`
	Moon           bool         `json:"moon,omitempty"`

	Rings     bool `json:"rings,omitempty"`
	Emissive  bool `json:"emissive,omitempty"`
	BlackHole bool `json:"blackHole,omitempty"`

	// Parent, OrbitRadius (scene units) and OrbitPeriod (days) place a
	// satellite relative to its parent.
	Parent      string  `json:"parent,omitempty"`
	OrbitRadius float64 `json:"orbitRadius,omitempty"`
	OrbitPeriod float64 `json:"orbitPeriod,omitempty"`

	// Fixed bodies never move.
	Fixed    bool   `json:"fixed,omitempty"`
	Position r3.Vec `json:"-"`

	Description string `json:"description"`
}

// Textured reports whether the body has a synthesized surface.
func (b Body) Textured() bool { return b.Texture != "" }

// TextureRequest maps the body onto a synthesis request. The seed is
// mixed with the id so bodies sharing a type still differ.
func (b Body) TextureRequest(res int, seed uint64) texture.Request {
	return texture.Request{
		BaseColor:      b.Color,
		Type:           b.Texture,
		NoiseIntensity: b.NoiseIntensity,
		Resolution:     res,
		Detail:         b.Detail,
		Moon:           b.Moon,
		Seed:           seed ^ xxhash.Sum64String(b.ID),
	}
}

// RingsRequest returns the ring texture request for ringed bodies.
func (b Body) RingsRequest(res int, seed uint64) (texture.Request, bool) {
	if !b.Rings {
		return texture.Request{}, false
	}
	return texture.Request{
		BaseColor:      RingColor,
		Type:           texture.Rings,
		NoiseIntensity: texture.DefaultNoiseIntensity,
		Resolution:     res,
		Detail:         6,
		Seed:           seed ^ xxhash.Sum64String(b.ID+"/rings"),
	}, true
}

var bodies = []Body{
	{
		ID: "sun", Name: "Sun", Radius: 5.5, Color: "#ffdd20",
		Texture: texture.Sun, NoiseIntensity: 0.5, Detail: 4, Emissive: true,
		Description: "The star at the centre of the system. It holds about 330,000 Earth masses, the photosphere sits near 5,500°C and the core reaches 15 million°C.",
	},
	{
		ID: "mercury", Name: "Mercury", Radius: 0.8, Color: "#b5a794",
		Texture: texture.Mercury, NoiseIntensity: 0.5, Detail: 4,
		Description: "The smallest planet and the closest to the Sun. Almost airless and heavily cratered, with days at 430°C and nights at -180°C.",
	},
	{
		ID: "venus", Name: "Venus", Radius: 1.2, Color: "#e8cc9f",
		Texture: texture.Venus, NoiseIntensity: 0.5, Detail: 4,
		Description: "Earth's near twin in size, wrapped in carbon dioxide and sulphuric acid clouds. The hottest planet at 462°C under 92 bar of pressure.",
	},
	{
		ID: "earth", Name: "Earth", Radius: 1.3, Color: "#3091dc",
		Texture: texture.Earth, NoiseIntensity: 0.5, Detail: 4,
		Description: "The only known world with life. Oceans cover 71% of the surface and the air is 78% nitrogen and 21% oxygen.",
	},
	{
		ID: "mars", Name: "Mars", Radius: 1.1, Color: "#d1541e",
		Texture: texture.Mars, NoiseIntensity: 0.5, Detail: 4,
		Description: "The red planet, coloured by iron oxide dust. Polar ice caps and Olympus Mons, the tallest volcano in the system at 21 km.",
	},
	{
		ID: "jupiter", Name: "Jupiter", Radius: 3.5, Color: "#f0b578",
		Texture: texture.Gas, NoiseIntensity: 0.5, Detail: 4,
		Description: "The largest planet, two and a half times the mass of all the others combined. Its Great Red Spot is a storm wider than Earth.",
	},
	{
		ID: "saturn", Name: "Saturn", Radius: 3.0, Color: "#f0cb88",
		Texture: texture.Gas, NoiseIntensity: 0.5, Detail: 4, Rings: true,
		Description: "The ringed gas giant. The rings are ice and dust, and the planet is less dense than water. Titan is its largest moon.",
	},
	{
		ID: "uranus", Name: "Uranus", Radius: 2.2, Color: "#a6d7e9",
		Texture: texture.Gas, NoiseIntensity: 0.5, Detail: 4,
		Description: "An ice giant rolling on its side, its axis nearly in the orbital plane. Methane gives it the cyan tint.",
	},
	{
		ID: "neptune", Name: "Neptune", Radius: 2.1, Color: "#4a6add",
		Texture: texture.Gas, NoiseIntensity: 0.5, Detail: 4,
		Description: "The outermost planet, with winds up to 2,100 km/h. Triton, its largest moon, orbits backwards.",
	},
	{
		ID: "moon", Name: "Moon", Radius: 0.35, Color: "#c8c8c8",
		Texture: texture.Rocky, NoiseIntensity: 0.7, Detail: 5, Moon: true,
		Parent: "earth", OrbitRadius: 3, OrbitPeriod: 27.32,
		Description: "Earth's only natural satellite, 384,400 km away. Tidally locked, it always shows the same face and raises the ocean tides.",
	},
	{
		ID: "blackhole", Name: "Black Hole", Radius: 4.0, Color: "#000000",
		BlackHole: true, Fixed: true, Position: r3.Vec{X: 90},
		Description: "A collapsed star whose gravity traps light. An accretion disc of infalling matter glows around it.",
	},
}

var index = func() map[string]int {
	m := make(map[string]int, len(bodies))
	for i, b := range bodies {
		m[b.ID] = i
	}
	return m
}()

// Bodies returns a copy of the catalog in display order.
func Bodies() []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}

// Lookup finds a body by id.
func Lookup(id string) (Body, bool) {
	i, ok := index[id]
	if !ok {
		return Body{}, false
	}
	return bodies[i], true
}

// IDs returns every catalog id in display order.
func IDs() []string {
	ids := make([]string, len(bodies))
	for i, b := range bodies {
		ids[i] = b.ID
	}
	return ids
}

// ScenePositions places every body at time t in scene units. The sun is
// the origin, bodies with elements in table follow their orbits,
// satellites circle their parent and fixed bodies stay put. Bodies in
// table that the catalog does not describe are included too.
func ScenePositions(table orbit.Table, t time.Time, scale float64) map[string]r3.Vec {
	out := orbit.AllPositions(table, t, scale)
	days := orbit.DaysSinceJ2000(t)

	for _, b := range bodies {
		switch {
		case b.Fixed:
			out[b.ID] = b.Position
		case b.Parent != "":
			// resolved below, after every parent is placed
		default:
			if _, ok := out[b.ID]; !ok {
				out[b.ID] = r3.Vec{}
			}
		}
	}
	for _, b := range bodies {
		if b.Parent == "" {
			continue
		}
		out[b.ID] = r3.Add(out[b.Parent], orbit.SatelliteOffset(b.OrbitRadius, b.OrbitPeriod, days))
	}
	return out
}

// SortedIDs returns the keys of a position map in a stable order:
// catalog bodies first in display order, then the rest alphabetically.
func SortedIDs(positions map[string]r3.Vec) []string {
	ids := make([]string, 0, len(positions))
	var extra []string
	for _, id := range IDs() {
		if _, ok := positions[id]; ok {
			ids = append(ids, id)
		}
	}
	for id := range positions {
		if _, ok := index[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(ids, extra...)
}
