package composite

import (
	"errors"
	"testing"

	"github.com/ironsheep/raster-tools-mcp/internal/raster"
)

// rampImage builds a bands x height x width image where band b holds a ramp
// offset by b*1000, so each band normalizes independently.
func rampImage(bands, height, width int) *raster.Image {
	img := raster.New(raster.Uint16, bands, height, width)
	for b := 0; b < bands; b++ {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(b, y, x, float64(b*1000+y*width+x))
			}
		}
	}
	return img
}

func TestCompose_ShapeAndOrder(t *testing.T) {
	img := rampImage(5, 8, 6)

	out, err := Compose(img, BandTriple{4, 2, 1}, false)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if out.Bands != 3 || out.Height != 8 || out.Width != 6 {
		t.Fatalf("shape: got (%d,%d,%d), want (3,8,6)", out.Bands, out.Height, out.Width)
	}
	// Raw mode copies samples through in R,G,B channel order.
	if out.At(0, 3, 2) != img.At(4, 3, 2) {
		t.Error("R channel should hold band 4")
	}
	if out.At(1, 3, 2) != img.At(2, 3, 2) {
		t.Error("G channel should hold band 2")
	}
	if out.At(2, 3, 2) != img.At(1, 3, 2) {
		t.Error("B channel should hold band 1")
	}
}

func TestCompose_NormalizedChannelsIndependent(t *testing.T) {
	// Bands with disjoint value ranges must each fill [0,1] on their own.
	img := rampImage(5, 10, 10)

	out, err := Compose(img, NaturalColor.Triple(), true)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for ch := 0; ch < 3; ch++ {
		lo, hi := 1.0, 0.0
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				v := out.At(ch, y, x)
				if v < 0 || v > 1 {
					t.Fatalf("channel %d sample %v outside [0,1]", ch, v)
				}
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
		// Percentile clipping pins both ends of each channel's own range.
		if lo != 0 || hi != 1 {
			t.Errorf("channel %d: got range [%v,%v], want [0,1]", ch, lo, hi)
		}
	}
}

func TestCompose_ConstantBandGoesBlack(t *testing.T) {
	img := raster.New(raster.Uint8, 3, 4, 4)
	for i := range img.Pix {
		img.Pix[i] = 42
	}

	out, err := Compose(img, BandTriple{2, 1, 0}, true)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("sample %d: got %v, want 0 (constant bands normalize to black)", i, v)
		}
	}
}

func TestCompose_BandIndexOutOfRange(t *testing.T) {
	img := rampImage(3, 4, 4)

	tests := []struct {
		name   string
		triple BandTriple
		index  int
	}{
		{"r channel", BandTriple{3, 1, 0}, 3},
		{"g channel", BandTriple{0, 7, 1}, 7},
		{"b channel", BandTriple{0, 1, -1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(img, tt.triple, true)
			if err == nil {
				t.Fatal("Compose should fail for out-of-range band index")
			}
			var bandErr *BandIndexError
			if !errors.As(err, &bandErr) {
				t.Fatalf("error %v is not a BandIndexError", err)
			}
			if bandErr.Index != tt.index || bandErr.Bands != 3 {
				t.Errorf("error fields: got index=%d bands=%d, want index=%d bands=3",
					bandErr.Index, bandErr.Bands, tt.index)
			}
		})
	}
}

func TestCompose_SourceUntouched(t *testing.T) {
	img := rampImage(5, 6, 6)
	before := img.At(2, 3, 3)

	out, err := Compose(img, NaturalColor.Triple(), true)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	out.Set(0, 3, 3, 999)

	if img.At(2, 3, 3) != before {
		t.Error("Compose must not alias or mutate the source")
	}
}

func TestPresets_Triples(t *testing.T) {
	tests := []struct {
		preset Preset
		want   BandTriple
	}{
		{NaturalColor, BandTriple{2, 1, 0}},
		{FalseColorIR, BandTriple{4, 2, 1}},
		{RedEdge, BandTriple{3, 2, 1}},
		{NDVILike, BandTriple{4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			if got := tt.preset.Triple(); got != tt.want {
				t.Errorf("Triple: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(p.String())
		if err != nil {
			t.Fatalf("ParsePreset(%q) failed: %v", p.String(), err)
		}
		if got != p {
			t.Errorf("ParsePreset(%q): got %v, want %v", p.String(), got, p)
		}
	}

	if _, err := ParsePreset("sepia"); err == nil {
		t.Error("ParsePreset should fail for unknown names")
	}
}
