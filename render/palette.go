package render

import "image/color"

// Class color palette for detection overlays, cycled by class ID.
var classPalette = []color.RGBA{
	{R: 230, G: 57, B: 70, A: 255},  // red
	{R: 46, G: 204, B: 113, A: 255}, // green
	{R: 52, G: 120, B: 246, A: 255}, // blue
	{R: 26, G: 188, B: 156, A: 255}, // teal
	{R: 155, G: 89, B: 182, A: 255}, // purple
	{R: 241, G: 196, B: 15, A: 255}, // yellow
	{R: 230, G: 126, B: 34, A: 255}, // orange
	{R: 52, G: 152, B: 219, A: 255}, // light blue
	{R: 142, G: 68, B: 173, A: 255}, // violet
	{R: 127, G: 255, B: 0, A: 255},  // lime
}

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 30, A: 255}
	rowColor        = color.RGBA{R: 255, G: 214, B: 10, A: 255}
	transientColor  = color.RGBA{R: 0, G: 229, B: 255, A: 255} // in-progress shapes
	selectionColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	chipTextColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// classColor returns the overlay color for a detection class.
func classColor(classID int) color.RGBA {
	if classID < 0 {
		classID = -classID
	}
	return classPalette[classID%len(classPalette)]
}
