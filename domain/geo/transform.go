package geo

import "math"

// Degrees of longitude/latitude to meters, the flat-earth approximation the
// row detector uses for short vineyard features.
const metersPerDegree = 111000.0

// ToNativeScreen undoes display scaling: the widget showing the raster may
// be smaller than the raster itself, so pointer coordinates are first mapped
// into native screen pixels before pan/zoom is undone.
func ToNativeScreen(screen Point, native, display Size) Point {
	if display.W <= 0 || display.H <= 0 {
		return screen
	}
	return Point{
		X: screen.X * native.W / display.W,
		Y: screen.Y * native.H / display.H,
	}
}

// ScreenToRaster converts a display-space pointer position into raster pixel
// coordinates: undo display scaling, then undo pan and zoom.
func ScreenToRaster(screen Point, vp Viewport, native, display Size) Point {
	p := ToNativeScreen(screen, native, display)
	if vp.Zoom == 0 {
		return p
	}
	return Point{
		X: (p.X - vp.Pan.X) / vp.Zoom,
		Y: (p.Y - vp.Pan.Y) / vp.Zoom,
	}
}

// RasterToScreen is the inverse of ScreenToRaster.
func RasterToScreen(raster Point, vp Viewport, native, display Size) Point {
	p := Point{
		X: raster.X*vp.Zoom + vp.Pan.X,
		Y: raster.Y*vp.Zoom + vp.Pan.Y,
	}
	if native.W <= 0 || native.H <= 0 {
		return p
	}
	return Point{
		X: p.X * display.W / native.W,
		Y: p.Y * display.H / native.H,
	}
}

// ClampZoom limits a requested zoom to the configured range.
func ClampZoom(zoom, minZoom, maxZoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

// ZoomAt multiplies the viewport zoom by factor, recomputing the pan so the
// raster point under focal stays fixed on screen. focal is in native screen
// pixels, the same space as the pan. Zoom outside [minZoom, maxZoom] is
// clamped silently.
func ZoomAt(focal Point, factor float64, vp Viewport, minZoom, maxZoom float64) Viewport {
	newZoom := ClampZoom(vp.Zoom*factor, minZoom, maxZoom)
	if vp.Zoom == 0 {
		return Viewport{Zoom: newZoom, Pan: vp.Pan}
	}
	ratio := newZoom / vp.Zoom
	return Viewport{
		Zoom: newZoom,
		Pan: Point{
			X: focal.X - (focal.X-vp.Pan.X)*ratio,
			Y: focal.Y - (focal.Y-vp.Pan.Y)*ratio,
		},
	}
}

// RasterToGeo linearly interpolates a raster pixel into geographic degrees.
// Latitude is flipped: raster row 0 is the northern edge. When the view
// carries no georeference the fallback box is used and approx is true.
func RasterToGeo(p Point, view RasterView, fallback GeoBounds) (lng, lat float64, approx bool) {
	bounds := fallback
	approx = true
	if view.Bounds != nil && view.Bounds.Valid() {
		bounds = *view.Bounds
		approx = false
	}
	w, h := float64(view.PixelWidth), float64(view.PixelHeight)
	if w <= 0 || h <= 0 {
		return bounds.MinLng, bounds.MaxLat, true
	}
	lng = bounds.MinLng + (p.X/w)*(bounds.MaxLng-bounds.MinLng)
	lat = bounds.MaxLat - (p.Y/h)*(bounds.MaxLat-bounds.MinLat)
	return lng, lat, approx
}

// GeoToRaster is the inverse of RasterToGeo.
func GeoToRaster(lng, lat float64, view RasterView, fallback GeoBounds) (Point, bool) {
	bounds := fallback
	exact := false
	if view.Bounds != nil && view.Bounds.Valid() {
		bounds = *view.Bounds
		exact = true
	}
	dLng := bounds.MaxLng - bounds.MinLng
	dLat := bounds.MaxLat - bounds.MinLat
	if dLng == 0 || dLat == 0 {
		return Point{}, false
	}
	return Point{
		X: (lng - bounds.MinLng) / dLng * float64(view.PixelWidth),
		Y: (bounds.MaxLat - lat) / dLat * float64(view.PixelHeight),
	}, exact
}

// LineLengthMeters approximates the ground length of a lng/lat polyline.
func LineLengthMeters(coords [][2]float64) float64 {
	var sum float64
	for i := 1; i < len(coords); i++ {
		dx := coords[i][0] - coords[i-1][0]
		dy := coords[i][1] - coords[i-1][1]
		sum += math.Hypot(dx, dy)
	}
	return sum * metersPerDegree
}
