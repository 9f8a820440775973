package texture

import (
	"fmt"
	"math"
	"strings"
)

// Type selects the painter.
type Type string

const (
	Rocky   Type = "rocky"
	Gas     Type = "gas"
	Sun     Type = "sun"
	Rings   Type = "rings"
	Earth   Type = "earth"
	Mars    Type = "mars"
	Venus   Type = "venus"
	Mercury Type = "mercury"
)

// Types lists every supported type.
func Types() []Type {
	return []Type{Rocky, Gas, Sun, Rings, Earth, Mars, Venus, Mercury}
}

// ParseType accepts a type tag in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

const (
	DefaultBaseColor      = "#ffffff"
	DefaultNoiseIntensity = 0.5
	DefaultResolution     = 1024
	DefaultDetail         = 4.0

	// MaxResolution bounds the surface size (64 MiB of RGBA).
	MaxResolution = 4096
)

// Request describes one texture. It is comparable and can be used
// directly as a cache key.
type Request struct {
	BaseColor      string  `json:"baseColor" yaml:"base_color"`
	Type           Type    `json:"type" yaml:"type"`
	NoiseIntensity float64 `json:"noiseIntensity" yaml:"noise_intensity"`
	Resolution     int     `json:"resolution" yaml:"resolution"`
	Detail         float64 `json:"detail" yaml:"detail"`

	// Moon selects the heavily cratered lunar variant of Rocky.
	Moon bool `json:"moon,omitempty" yaml:"moon,omitempty"`

	// Seed drives every random placement.
	Seed uint64 `json:"seed" yaml:"seed"`

	// TimeSeed shifts the sun's plasma field; animate it to make the
	// surface boil.
	TimeSeed float64 `json:"timeSeed,omitempty" yaml:"time_seed,omitempty"`
}

// DefaultRequest returns a plain rocky request at the default resolution.
func DefaultRequest() Request {
	return Request{
		BaseColor:      DefaultBaseColor,
		Type:           Rocky,
		NoiseIntensity: DefaultNoiseIntensity,
		Resolution:     DefaultResolution,
		Detail:         DefaultDetail,
	}
}

// withDefaults fills unset fields. Zero NoiseIntensity is a legitimate
// value and is kept.
func (r Request) withDefaults() Request {
	if r.BaseColor == "" {
		r.BaseColor = DefaultBaseColor
	}
	if r.Type == "" {
		r.Type = Rocky
	}
	if r.Resolution == 0 {
		r.Resolution = DefaultResolution
	}
	if r.Detail == 0 || math.IsNaN(r.Detail) {
		r.Detail = DefaultDetail
	}
	if r.NoiseIntensity < 0 || math.IsNaN(r.NoiseIntensity) {
		r.NoiseIntensity = 0
	}
	if math.IsNaN(r.TimeSeed) || math.IsInf(r.TimeSeed, 0) {
		r.TimeSeed = 0
	}
	return r
}
