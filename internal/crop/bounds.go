package crop

import "fmt"

// Bounds is a half-open pixel rectangle: X1 <= x < X2, Y1 <= y < Y2.
// X indexes columns, Y indexes rows.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Dx returns the width of the bounds.
func (b Bounds) Dx() int { return b.X2 - b.X1 }

// Dy returns the height of the bounds.
func (b Bounds) Dy() int { return b.Y2 - b.Y1 }

func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

// Resolution is the outcome of resolving a crop request against an image.
type Resolution struct {
	// Bounds is the resolved box, always inside the image.
	Bounds Bounds `json:"bounds"`

	// Adjusted is true when the naive clamped box was too small and a shift
	// adjustment was applied.
	Adjusted bool `json:"adjusted"`

	// Feasible is false when even the adjusted box cannot reach size x size,
	// which happens exactly when the image is smaller than size on an axis.
	Feasible bool `json:"feasible"`
}

// Resolve computes the bounding box for a size x size crop centered on
// (centerX, centerY) within a width x height image.
//
// The box is first clamped naively to the image. If the clamp cut it below
// the target size, the ideal unclamped box is shifted back inside the image
// on each axis independently, which recovers a full-size crop whenever the
// image is large enough. The resolved bounds never exceed the image.
func Resolve(centerX, centerY, size, width, height int) Resolution {
	half := size / 2

	naive := Bounds{
		X1: max(0, centerX-half),
		Y1: max(0, centerY-half),
		X2: min(width, centerX+half),
		Y2: min(height, centerY+half),
	}
	if naive.Dx() >= size && naive.Dy() >= size {
		return Resolution{Bounds: naive, Feasible: true}
	}

	adjusted := adjustBounds(centerX, centerY, size, width, height)
	return Resolution{
		Bounds:   adjusted,
		Adjusted: true,
		Feasible: adjusted.Dx() >= size && adjusted.Dy() >= size,
	}
}

// adjustBounds starts from the ideal (possibly out-of-range) box and shifts
// it inside the image. Per axis: a negative low edge moves its deficit to
// the high edge; a high edge past the image moves the excess to the low
// edge. The final clamp covers images smaller than the requested size.
// Axes are adjusted independently; there is no joint optimization.
func adjustBounds(centerX, centerY, size, width, height int) Bounds {
	half := size / 2

	x1, x2 := centerX-half, centerX+half
	y1, y2 := centerY-half, centerY+half

	if x1 < 0 {
		x2 += -x1
		x1 = 0
	} else if x2 > width {
		x1 -= x2 - width
		x2 = width
	}

	if y1 < 0 {
		y2 += -y1
		y1 = 0
	} else if y2 > height {
		y1 -= y2 - height
		y2 = height
	}

	return Bounds{
		X1: max(0, x1),
		Y1: max(0, y1),
		X2: min(width, x2),
		Y2: min(height, y2),
	}
}

// Plan describes a prospective crop without executing it. It reports both
// the naive clamped bounds and, when those fall short, the shift-adjusted
// bounds, so a caller can explain why a crop will or will not succeed.
type Plan struct {
	Valid          bool   `json:"valid"`
	CanAdjust      bool   `json:"can_adjust"`
	OriginalBounds Bounds `json:"original_bounds"`
	AdjustedBounds Bounds `json:"adjusted_bounds"`
	ActualWidth    int    `json:"actual_width"`
	ActualHeight   int    `json:"actual_height"`
	CenterX        int    `json:"center_x"`
	CenterY        int    `json:"center_y"`
	Size           int    `json:"size"`
}

// PlanCrop reports how a crop request would resolve. Valid means the naive
// clamp already yields a full-size box; CanAdjust means the shift adjustment
// would. CanAdjust is false only when the image is smaller than size on an
// axis.
func PlanCrop(centerX, centerY, size, width, height int) Plan {
	half := size / 2
	naive := Bounds{
		X1: max(0, centerX-half),
		Y1: max(0, centerY-half),
		X2: min(width, centerX+half),
		Y2: min(height, centerY+half),
	}

	p := Plan{
		OriginalBounds: naive,
		ActualWidth:    naive.Dx(),
		ActualHeight:   naive.Dy(),
		CenterX:        centerX,
		CenterY:        centerY,
		Size:           size,
	}
	p.Valid = naive.Dx() >= size && naive.Dy() >= size
	if p.Valid {
		p.CanAdjust = true
		p.AdjustedBounds = naive
		return p
	}

	adjusted := adjustBounds(centerX, centerY, size, width, height)
	p.AdjustedBounds = adjusted
	p.CanAdjust = adjusted.Dx() >= size && adjusted.Dy() >= size
	return p
}
