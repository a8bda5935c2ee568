package editor

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// newTestEditor returns an editor on a 1000x1000 raster displayed 1:1.
func newTestEditor() *Editor {
	e := NewEditor(config.DefaultConfig(), discardLogger)
	e.LoadRaster(geo.RasterView{PixelWidth: 1000, PixelHeight: 1000}, shape.NewAnnotationSet())
	e.SetDisplaySize(1000, 1000)
	return e
}

type commitRecorder struct {
	created  []shape.Detection
	finished []shape.Row
	deleted  []uuid.UUID
}

func (r *commitRecorder) listeners() CommitListeners {
	return CommitListeners{
		DetectionCreated: func(d shape.Detection) { r.created = append(r.created, d) },
		RowFinished:      func(row shape.Row) { r.finished = append(r.finished, row) },
		ShapeDeleted:     func(id uuid.UUID) { r.deleted = append(r.deleted, id) },
	}
}

func TestEmptyCanvasPressPans(t *testing.T) {
	e := newTestEditor()
	e.PointerDown(geo.Point{X: 100, Y: 100}, time.Now())
	if e.Current() != StatePanning {
		t.Fatalf("expected panning, got %v", e.Current())
	}
	e.PointerMove(geo.Point{X: 140, Y: 90})
	vp := e.Viewport()
	if vp.Pan.X != 40 || vp.Pan.Y != -10 {
		t.Fatalf("pan = %+v, want (40,-10)", vp.Pan)
	}
	e.PointerUp(geo.Point{X: 140, Y: 90}, time.Now())
	if e.Current() != StateIdle {
		t.Fatalf("expected idle after release, got %v", e.Current())
	}
}

func TestDrawBoxCommitsAboveThreshold(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())

	e.StartBox("gap")
	if e.Current() != StateDrawingBox {
		t.Fatalf("expected drawing-box, got %v", e.Current())
	}
	now := time.Now()
	e.PointerDown(geo.Point{X: 100, Y: 100}, now)
	e.PointerMove(geo.Point{X: 180, Y: 170})
	if e.Set().PreviewBox == nil {
		t.Fatal("expected a preview box while dragging")
	}
	e.PointerUp(geo.Point{X: 180, Y: 170}, now)

	if e.Current() != StateIdle {
		t.Fatalf("expected idle after commit, got %v", e.Current())
	}
	if len(rec.created) != 1 {
		t.Fatalf("detections committed: %d", len(rec.created))
	}
	d := rec.created[0]
	if d.Label != "gap" || !d.Manual || d.Confidence != 1.0 {
		t.Fatalf("unexpected committed detection: %+v", d)
	}
	if e.Set().PreviewBox != nil {
		t.Fatal("preview must clear after commit")
	}
}

func TestDrawBoxBelowThresholdDiscards(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())

	e.StartBox("vine")
	now := time.Now()
	e.PointerDown(geo.Point{X: 10, Y: 10}, now)
	e.PointerMove(geo.Point{X: 15, Y: 12})
	e.PointerUp(geo.Point{X: 15, Y: 12}, now)

	if len(rec.created) != 0 || len(e.Set().Detections) != 0 {
		t.Fatal("5x2 box must be rejected at commit time")
	}
	if e.Current() != StateIdle {
		t.Fatalf("expected idle after discard, got %v", e.Current())
	}
}

func TestDragSelectedBox(t *testing.T) {
	e := newTestEditor()
	d := shape.NewDetection(shape.Box{X1: 10, Y1: 10, X2: 100, Y2: 100}, "vine", 0)
	e.Set().AddDetection(d)

	now := time.Now()
	e.PointerDown(geo.Point{X: 50, Y: 50}, now)
	if e.Current() != StateDraggingBox {
		t.Fatalf("expected dragging-box, got %v", e.Current())
	}
	e.PointerMove(geo.Point{X: 70, Y: 45})
	e.PointerUp(geo.Point{X: 70, Y: 45}, now)

	got, _ := e.Set().Detection(d.ID)
	want := shape.Box{X1: 30, Y1: 5, X2: 120, Y2: 95}
	if got.Box != want {
		t.Fatalf("dragged box %+v, want %+v", got.Box, want)
	}
	if e.Set().SelectedID != d.ID {
		t.Fatal("drag must select the hit box")
	}
}

func TestResizeFromCornerHandle(t *testing.T) {
	e := newTestEditor()
	d := shape.NewDetection(shape.Box{X1: 100, Y1: 100, X2: 200, Y2: 200}, "vine", 0)
	e.Set().AddDetection(d)
	e.Set().Select(d.ID)

	now := time.Now()
	// Press on the bottom-right handle, drag outward.
	e.PointerDown(geo.Point{X: 200, Y: 200}, now)
	if e.Current() != StateResizingBox {
		t.Fatalf("expected resizing-box, got %v", e.Current())
	}
	e.PointerMove(geo.Point{X: 260, Y: 240})
	e.PointerUp(geo.Point{X: 260, Y: 240}, now)

	got, _ := e.Set().Detection(d.ID)
	want := shape.Box{X1: 100, Y1: 100, X2: 260, Y2: 240}
	if got.Box != want {
		t.Fatalf("resized box %+v, want %+v", got.Box, want)
	}
}

func TestRowDrawingWithDoubleClickFinish(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())

	base := time.Now()
	e.StartRow()
	e.PointerDown(geo.Point{X: 100, Y: 100}, base)
	e.PointerDown(geo.Point{X: 300, Y: 200}, base.Add(time.Second))
	e.PointerDown(geo.Point{X: 500, Y: 300}, base.Add(2*time.Second))
	// Double click: finish without adding a fourth vertex.
	e.PointerDown(geo.Point{X: 500, Y: 300}, base.Add(2*time.Second+100*time.Millisecond))

	if e.Current() != StateIdle {
		t.Fatalf("expected idle after finish, got %v", e.Current())
	}
	if len(rec.finished) != 1 {
		t.Fatalf("rows finished: %d", len(rec.finished))
	}
	row := rec.finished[0]
	if row.Number != 1 || len(row.Points) != 3 {
		t.Fatalf("unexpected finished row: number=%d points=%d", row.Number, len(row.Points))
	}
}

func TestRowDoubleClickNeedsTwoPoints(t *testing.T) {
	e := newTestEditor()
	base := time.Now()
	e.StartRow()
	e.PointerDown(geo.Point{X: 100, Y: 100}, base)
	// Second click inside the threshold, but only one committed point: the
	// heuristic must not fire, the click appends instead.
	e.PointerDown(geo.Point{X: 120, Y: 110}, base.Add(100*time.Millisecond))

	if e.Current() != StateDrawingRow {
		t.Fatalf("expected drawing-row, got %v", e.Current())
	}
	if got := len(e.Set().ActiveRow.Points); got != 2 {
		t.Fatalf("active row points = %d, want 2", got)
	}
}

func TestCancelDiscardsRowInProgress(t *testing.T) {
	e := newTestEditor()
	e.StartRow()
	e.PointerDown(geo.Point{X: 1, Y: 1}, time.Now())
	e.Cancel()
	if e.Current() != StateIdle {
		t.Fatalf("expected idle after cancel, got %v", e.Current())
	}
	if e.Set().ActiveRow != nil || len(e.Set().Rows) != 0 {
		t.Fatal("cancel must discard transient row state only")
	}
}

func TestWheelZoomKeepsState(t *testing.T) {
	e := newTestEditor()
	e.StartRow()
	e.Wheel(geo.Point{X: 500, Y: 500}, 2)
	if e.Current() != StateDrawingRow {
		t.Fatalf("wheel must not change state, got %v", e.Current())
	}
	if e.Viewport().Zoom <= 1 {
		t.Fatalf("expected zoom in, got %v", e.Viewport().Zoom)
	}
}

func TestWheelZoomClamped(t *testing.T) {
	e := newTestEditor()
	for i := 0; i < 100; i++ {
		e.Wheel(geo.Point{}, 5)
	}
	if got := e.Viewport().Zoom; got > 10 {
		t.Fatalf("zoom exceeded configured maximum: %v", got)
	}
}

func TestDeleteSelectedNotifies(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())
	d := shape.NewDetection(shape.Box{X1: 0, Y1: 0, X2: 40, Y2: 40}, "vine", 0)
	e.Set().AddDetection(d)
	e.Set().Select(d.ID)

	e.DeleteSelected()
	if len(e.Set().Detections) != 0 {
		t.Fatal("detection not removed")
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != d.ID {
		t.Fatalf("delete listener: %+v", rec.deleted)
	}
}

func TestInvalidEventIsNoOp(t *testing.T) {
	e := newTestEditor()
	e.StartRow()
	// StartBox is undefined while drawing a row.
	e.StartBox("vine")
	if e.Current() != StateDrawingRow {
		t.Fatalf("invalid command changed state: %v", e.Current())
	}
}

func TestLoadRasterResetsViewport(t *testing.T) {
	e := newTestEditor()
	e.Wheel(geo.Point{X: 10, Y: 10}, 3)
	e.PointerDown(geo.Point{X: 900, Y: 900}, time.Now())
	e.PointerMove(geo.Point{X: 800, Y: 700})
	e.PointerUp(geo.Point{X: 800, Y: 700}, time.Now())

	e.LoadRaster(geo.RasterView{PixelWidth: 500, PixelHeight: 500}, shape.NewAnnotationSet())
	vp := e.Viewport()
	if vp.Zoom != 1 || vp.Pan != (geo.Point{}) {
		t.Fatalf("viewport not reset on load: %+v", vp)
	}
	if len(e.Set().Rows) != 0 {
		t.Fatal("rows must start empty for a new raster")
	}
}

func TestStateListenerObservesTransitions(t *testing.T) {
	e := newTestEditor()
	var seq []State
	e.AddStateListener(func(prev, next State) { seq = append(seq, next) })
	e.StartRow()
	e.Cancel()
	if len(seq) != 2 || seq[0] != StateDrawingRow || seq[1] != StateIdle {
		t.Fatalf("unexpected transition sequence: %v", seq)
	}
}

func TestDeleteLastRowRemovesNewestAndRenumbers(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())

	base := time.Now()
	drawRow := func(offset time.Duration, start geo.Point) {
		e.StartRow()
		e.PointerDown(start, base.Add(offset))
		e.PointerDown(geo.Point{X: start.X + 200, Y: start.Y + 50}, base.Add(offset+time.Second))
		e.PointerDown(geo.Point{X: start.X + 200, Y: start.Y + 50}, base.Add(offset+time.Second+100*time.Millisecond))
	}
	drawRow(0, geo.Point{X: 100, Y: 100})
	drawRow(10*time.Second, geo.Point{X: 100, Y: 300})

	last := e.Set().Rows[1].ID
	e.DeleteLastRow()

	rows := e.Set().Rows
	if len(rows) != 1 || rows[0].Number != 1 {
		t.Fatalf("expected one row numbered 1, got %d rows", len(rows))
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != last {
		t.Fatalf("delete commit not observed: %v", rec.deleted)
	}
}

func TestDeleteLastRowNoOpWhenEmptyOrBusy(t *testing.T) {
	e := newTestEditor()
	rec := &commitRecorder{}
	e.SetCommitListeners(rec.listeners())

	e.DeleteLastRow()
	if len(rec.deleted) != 0 {
		t.Fatalf("delete fired with no rows: %v", rec.deleted)
	}

	e.StartRow()
	e.DeleteLastRow()
	if e.Current() != StateDrawingRow {
		t.Fatalf("expected drawing-row, got %v", e.Current())
	}
}
