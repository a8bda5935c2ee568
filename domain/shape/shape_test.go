package shape

import (
	"testing"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
)

func TestNormalizeBoxReordersCorners(t *testing.T) {
	b := NormalizeBox(Box{X1: 100, Y1: 90, X2: 10, Y2: 5})
	if b.X1 != 10 || b.Y1 != 5 || b.X2 != 100 || b.Y2 != 90 {
		t.Fatalf("unexpected normalized box: %+v", b)
	}
}

func TestMoveDetection(t *testing.T) {
	s := NewAnnotationSet()
	d := NewDetection(Box{X1: 10, Y1: 10, X2: 100, Y2: 100}, "vine", 0)
	s.AddDetection(d)

	if err := s.MoveDetection(d.ID, 20, -5); err != nil {
		t.Fatalf("move: %v", err)
	}
	got, _ := s.Detection(d.ID)
	want := Box{X1: 30, Y1: 5, X2: 120, Y2: 95}
	if got.Box != want {
		t.Fatalf("moved box %+v, want %+v", got.Box, want)
	}
}

func TestMoveUnknownDetection(t *testing.T) {
	s := NewAnnotationSet()
	if err := s.MoveDetection(uuid.New(), 1, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResizeNormalizesCrossedCorners(t *testing.T) {
	s := NewAnnotationSet()
	d := NewDetection(Box{X1: 10, Y1: 10, X2: 50, Y2: 50}, "vine", 0)
	s.AddDetection(d)

	// Drag the moving corner past the anchor on both axes.
	if err := s.ResizeDetection(d.ID, geo.Point{X: 50, Y: 50}, geo.Point{X: 5, Y: 2}); err != nil {
		t.Fatalf("resize: %v", err)
	}
	got, _ := s.Detection(d.ID)
	if !(got.Box.X1 < got.Box.X2 && got.Box.Y1 < got.Box.Y2) {
		t.Fatalf("resize broke corner ordering: %+v", got.Box)
	}
	if got.Box.X1 != 5 || got.Box.Y1 != 2 || got.Box.X2 != 50 || got.Box.Y2 != 50 {
		t.Fatalf("unexpected resized box: %+v", got.Box)
	}
}

func TestRelabelMarksMachineDetectionsModified(t *testing.T) {
	s := NewAnnotationSet()
	machine := Detection{ID: uuid.New(), Label: "vine", Confidence: 0.8, Box: Box{X1: 0, Y1: 0, X2: 10, Y2: 10}}
	s.AddDetection(machine)
	manual := NewDetection(Box{X1: 20, Y1: 20, X2: 40, Y2: 40}, "vine", 0)
	s.AddDetection(manual)

	if err := s.RelabelDetection(machine.ID, "gap", 3); err != nil {
		t.Fatalf("relabel: %v", err)
	}
	got, _ := s.Detection(machine.ID)
	if !got.Modified || got.Label != "gap" || got.ClassID != 3 {
		t.Fatalf("machine relabel: %+v", got)
	}

	if err := s.RelabelDetection(manual.ID, "tree", 2); err != nil {
		t.Fatalf("relabel: %v", err)
	}
	got, _ = s.Detection(manual.ID)
	if got.Modified {
		t.Fatal("manual detection must not be marked modified")
	}
}

func TestDeleteDetectionClearsSelection(t *testing.T) {
	s := NewAnnotationSet()
	d := NewDetection(Box{X1: 0, Y1: 0, X2: 10, Y2: 10}, "vine", 0)
	s.AddDetection(d)
	s.Select(d.ID)

	if !s.DeleteDetection(d.ID) {
		t.Fatal("delete returned false for existing detection")
	}
	if _, ok := s.Selected(); ok {
		t.Fatal("selection must be cleared when selected shape is deleted")
	}
	if len(s.Detections) != 0 {
		t.Fatalf("detections remaining: %d", len(s.Detections))
	}
}

func TestFinishRowRequiresTwoPoints(t *testing.T) {
	s := NewAnnotationSet()
	s.StartRow()
	_ = s.AddRowPoint(geo.Point{X: 1, Y: 1})

	if _, err := s.FinishRow(); err != ErrTooFewPoints {
		t.Fatalf("expected ErrTooFewPoints, got %v", err)
	}
	if s.ActiveRow == nil {
		t.Fatal("failed finish must keep the row in progress")
	}

	_ = s.AddRowPoint(geo.Point{X: 2, Y: 2})
	row, err := s.FinishRow()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if row.Number != 1 {
		t.Fatalf("first row number = %d, want 1", row.Number)
	}
	if s.ActiveRow != nil {
		t.Fatal("finish must clear the row in progress")
	}
}

func TestAddRowPointWithoutStart(t *testing.T) {
	s := NewAnnotationSet()
	if err := s.AddRowPoint(geo.Point{}); err != ErrNoActiveRow {
		t.Fatalf("expected ErrNoActiveRow, got %v", err)
	}
}

func TestDeleteRowRenumbersContiguously(t *testing.T) {
	s := NewAnnotationSet()
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		s.StartRow()
		_ = s.AddRowPoint(geo.Point{X: float64(i), Y: 0})
		_ = s.AddRowPoint(geo.Point{X: float64(i), Y: 10})
		row, err := s.FinishRow()
		if err != nil {
			t.Fatalf("finish row %d: %v", i, err)
		}
		ids = append(ids, row.ID)
	}

	if !s.DeleteRow(ids[1]) {
		t.Fatal("delete returned false for existing row")
	}
	if len(s.Rows) != 3 {
		t.Fatalf("rows remaining: %d", len(s.Rows))
	}
	for i, r := range s.Rows {
		if r.Number != i+1 {
			t.Fatalf("row %d has number %d, want %d", i, r.Number, i+1)
		}
	}
	// Relative order preserved: survivors are the original rows 1, 3, 4.
	if s.Rows[0].ID != ids[0] || s.Rows[1].ID != ids[2] || s.Rows[2].ID != ids[3] {
		t.Fatal("row order changed after delete")
	}
}

func TestCancelRowDiscardsTransientOnly(t *testing.T) {
	s := NewAnnotationSet()
	s.StartRow()
	_ = s.AddRowPoint(geo.Point{X: 1, Y: 1})
	_ = s.AddRowPoint(geo.Point{X: 2, Y: 2})
	row, _ := s.FinishRow()

	s.StartRow()
	_ = s.AddRowPoint(geo.Point{X: 9, Y: 9})
	s.CancelRow()

	if s.ActiveRow != nil {
		t.Fatal("cancel must discard the in-progress row")
	}
	if len(s.Rows) != 1 || s.Rows[0].ID != row.ID {
		t.Fatal("cancel must not touch committed rows")
	}
}
