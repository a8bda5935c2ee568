package editor

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// HitTestPoint resolves a display-space pointer position to the topmost
// detection whose box contains it. Rows are never point-selected: while
// drawing, a click always appends a vertex instead.
func HitTestPoint(screen geo.Point, set *shape.AnnotationSet, vp geo.Viewport, native, display geo.Size) (uuid.UUID, bool) {
	raster := geo.ScreenToRaster(screen, vp, native, display)
	// Later detections draw on top of earlier ones.
	for i := len(set.Detections) - 1; i >= 0; i-- {
		if set.Detections[i].Box.Contains(raster) {
			return set.Detections[i].ID, true
		}
	}
	return uuid.Nil, false
}

// HitHandle tests the pointer against the four corner handles of a detection
// box. The grab radius is in screen pixels so handles stay equally grabbable
// at any zoom. Returns the corner index (TL, TR, BR, BL) on a hit.
func HitHandle(screen geo.Point, d *shape.Detection, vp geo.Viewport, native, display geo.Size, radiusPx float64) (int, bool) {
	if d == nil {
		return -1, false
	}
	for i, c := range d.Box.Corners() {
		s := geo.RasterToScreen(c, vp, native, display)
		if math.Hypot(s.X-screen.X, s.Y-screen.Y) <= radiusPx {
			return i, true
		}
	}
	return -1, false
}

// oppositeCorner returns the corner diagonal to the given handle index.
func oppositeCorner(b shape.Box, corner int) geo.Point {
	return b.Corners()[(corner+2)%4]
}

// DoubleClick reports whether two point-adds landed within the threshold.
// Timestamps are explicit parameters so the heuristic stays deterministic
// under test.
func DoubleClick(now, last time.Time, threshold time.Duration) bool {
	if last.IsZero() {
		return false
	}
	return now.Sub(last) <= threshold
}
