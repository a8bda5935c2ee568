package shape

import (
	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
)

// AddDetection appends a detection with a normalized box.
func (s *AnnotationSet) AddDetection(d Detection) {
	d.Box = NormalizeBox(d.Box)
	s.Detections = append(s.Detections, d)
}

// MoveDetection translates a detection's box by (dx, dy) raster pixels.
func (s *AnnotationSet) MoveDetection(id uuid.UUID, dx, dy float64) error {
	d, ok := s.Detection(id)
	if !ok {
		return ErrNotFound
	}
	d.Box = NormalizeBox(Box{
		X1: d.Box.X1 + dx,
		Y1: d.Box.Y1 + dy,
		X2: d.Box.X2 + dx,
		Y2: d.Box.Y2 + dy,
	})
	if !d.Manual {
		d.Modified = true
	}
	return nil
}

// ResizeDetection recomputes a detection's box from a fixed anchor corner
// and the corner being dragged, then normalizes it.
func (s *AnnotationSet) ResizeDetection(id uuid.UUID, anchor, moving geo.Point) error {
	d, ok := s.Detection(id)
	if !ok {
		return ErrNotFound
	}
	d.Box = BoxFromCorners(anchor, moving)
	if !d.Manual {
		d.Modified = true
	}
	return nil
}

// RelabelDetection changes a detection's class label. Machine detections are
// marked modified; manual ones already carry operator intent.
func (s *AnnotationSet) RelabelDetection(id uuid.UUID, label string, classID int) error {
	d, ok := s.Detection(id)
	if !ok {
		return ErrNotFound
	}
	d.Label = label
	d.ClassID = classID
	if !d.Manual {
		d.Modified = true
	}
	return nil
}

// DeleteDetection removes a detection, clearing the selection when the
// deleted shape was selected.
func (s *AnnotationSet) DeleteDetection(id uuid.UUID) bool {
	for i := range s.Detections {
		if s.Detections[i].ID == id {
			s.Detections = append(s.Detections[:i], s.Detections[i+1:]...)
			if s.SelectedID == id {
				s.ClearSelection()
			}
			return true
		}
	}
	return false
}
