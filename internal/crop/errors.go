package crop

import "fmt"

// InfeasibleError reports a crop whose requested size exceeds the image on
// at least one axis, so no bounds adjustment can produce a full-size box.
type InfeasibleError struct {
	CenterX int
	CenterY int
	Size    int
	Width   int
	Height  int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("cannot crop %dx%d at (%d,%d) from %dx%d image",
		e.Size, e.Size, e.CenterX, e.CenterY, e.Width, e.Height)
}
