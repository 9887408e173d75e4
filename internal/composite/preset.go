package composite

import "fmt"

// Preset names a fixed band triple for 5-band multispectral imagery
// (blue, green, red, red-edge, near-infrared in band order 0..4).
type Preset int

const (
	// NaturalColor maps red/green/blue source bands to R/G/B.
	NaturalColor Preset = iota

	// FalseColorIR maps near-infrared/red/green to R/G/B; vegetation
	// renders red.
	FalseColorIR

	// RedEdge maps red-edge/red/green to R/G/B, emphasizing the red-edge
	// response of plant stress.
	RedEdge

	// NDVILike maps near-infrared/red-edge/red to R/G/B, the triple used
	// for NDVI-style visual screening.
	NDVILike
)

var presetTriples = map[Preset]BandTriple{
	NaturalColor: {2, 1, 0},
	FalseColorIR: {4, 2, 1},
	RedEdge:      {3, 2, 1},
	NDVILike:     {4, 3, 2},
}

var presetNames = map[Preset]string{
	NaturalColor: "natural",
	FalseColorIR: "false_color_ir",
	RedEdge:      "red_edge",
	NDVILike:     "ndvi_like",
}

// Triple returns the band indices the preset selects.
func (p Preset) Triple() BandTriple {
	return presetTriples[p]
}

func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("preset(%d)", int(p))
}

// ParsePreset resolves a preset by its string name.
func ParsePreset(name string) (Preset, error) {
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown composite preset: %q", name)
}

// Presets lists every defined preset in declaration order.
func Presets() []Preset {
	return []Preset{NaturalColor, FalseColorIR, RedEdge, NDVILike}
}
