package shape

import (
	"errors"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
)

var (
	// ErrNotFound is returned when a mutation targets an unknown shape ID.
	ErrNotFound = errors.New("shape: not found")
	// ErrNoActiveRow is returned when a row mutation arrives without StartRow.
	ErrNoActiveRow = errors.New("shape: no row in progress")
	// ErrTooFewPoints rejects finishing a row with fewer than two points.
	ErrTooFewPoints = errors.New("shape: row needs at least two points")
)

// Box is an axis-aligned bounding box in raster pixels. Every box stored in
// an AnnotationSet satisfies X1 < X2 and Y1 < Y2.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NormalizeBox reorders corners so X1 < X2 and Y1 < Y2.
func NormalizeBox(b Box) Box {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// BoxFromCorners builds a normalized box from two opposite corners.
func BoxFromCorners(a, b geo.Point) Box {
	return NormalizeBox(Box{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Contains reports whether a raster point lies inside the box.
func (b Box) Contains(p geo.Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Corners returns the box corners in order TL, TR, BR, BL.
func (b Box) Corners() [4]geo.Point {
	return [4]geo.Point{
		{X: b.X1, Y: b.Y1},
		{X: b.X2, Y: b.Y1},
		{X: b.X2, Y: b.Y2},
		{X: b.X1, Y: b.Y2},
	}
}

// Detection is a bounding-box annotation. Machine detections arrive from the
// external detector with their original confidence; human-drawn boxes are
// Manual with confidence 1. Modified marks machine detections the operator
// has corrected.
type Detection struct {
	ID         uuid.UUID
	Label      string
	ClassID    int
	Confidence float64
	Box        Box
	Manual     bool
	Modified   bool
}

// NewDetection creates a manually drawn detection with full confidence.
func NewDetection(box Box, label string, classID int) Detection {
	return Detection{
		ID:         uuid.New(),
		Label:      label,
		ClassID:    classID,
		Confidence: 1.0,
		Box:        NormalizeBox(box),
		Manual:     true,
	}
}

// Row is an ordered polyline tracing a physical vineyard row. Number is the
// 1-based sequential display number; it is reassigned contiguously when rows
// are deleted.
type Row struct {
	ID     uuid.UUID
	Number int
	Points []geo.Point
}

// AnnotationSet holds all shapes for the loaded raster plus transient
// editing state (selection, in-progress row, drawn-box preview). Transient
// state is never exported.
type AnnotationSet struct {
	Detections []Detection
	Rows       []Row

	SelectedID uuid.UUID
	ActiveRow  *Row
	PreviewBox *Box
}

// NewAnnotationSet returns an empty set.
func NewAnnotationSet() *AnnotationSet {
	return &AnnotationSet{}
}

// Detection returns a pointer into the detection slice for the given ID.
func (s *AnnotationSet) Detection(id uuid.UUID) (*Detection, bool) {
	for i := range s.Detections {
		if s.Detections[i].ID == id {
			return &s.Detections[i], true
		}
	}
	return nil, false
}

// Selected returns the currently selected detection, if any.
func (s *AnnotationSet) Selected() (*Detection, bool) {
	if s.SelectedID == uuid.Nil {
		return nil, false
	}
	return s.Detection(s.SelectedID)
}

// Select marks a detection as selected. uuid.Nil clears the selection.
func (s *AnnotationSet) Select(id uuid.UUID) { s.SelectedID = id }

// ClearSelection drops the current selection.
func (s *AnnotationSet) ClearSelection() { s.SelectedID = uuid.Nil }
