package geo

// Point is a 2D coordinate. The space it lives in (display, native screen,
// raster pixels) is determined by the function consuming it.
type Point struct {
	X float64
	Y float64
}

// Size is a 2D extent in pixels.
type Size struct {
	W float64
	H float64
}

// GeoBounds is the geographic bounding box of a georeferenced raster,
// in longitude/latitude degrees.
type GeoBounds struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// Valid reports whether the bounds span a non-degenerate area.
func (b GeoBounds) Valid() bool {
	return b.MaxLng > b.MinLng && b.MaxLat > b.MinLat
}

// RasterView describes a decoded raster: its pixel grid and, when the source
// was georeferenced, the geographic bounding box of that grid. Bounds is nil
// for plain frames; conversions then fall back to a caller-supplied box and
// are flagged approximate.
type RasterView struct {
	PixelWidth  int
	PixelHeight int
	Bounds      *GeoBounds
}

// Size returns the raster's native pixel extent.
func (v RasterView) Size() Size {
	return Size{W: float64(v.PixelWidth), H: float64(v.PixelHeight)}
}

// Viewport is the current pan/zoom state mapping raster space to screen
// space. Pan is expressed in native screen pixels (display scaling undone).
type Viewport struct {
	Zoom float64
	Pan  Point
}

// IdentityViewport is the viewport applied whenever a new raster is loaded.
func IdentityViewport() Viewport {
	return Viewport{Zoom: 1}
}
