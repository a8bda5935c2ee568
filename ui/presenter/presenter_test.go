package presenter

import (
	"image"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/editor"
	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
	"github.com/PrahoLama/vine-annotate/raster"
	"github.com/PrahoLama/vine-annotate/render"
	"github.com/PrahoLama/vine-annotate/ui/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStateView struct {
	labels []string
}

func (v *fakeStateView) SetStateLabel(s string) { v.labels = append(v.labels, s) }

func TestFSMPresenterReflectsLatestPendingState(t *testing.T) {
	ed := editor.NewEditor(config.DefaultConfig(), discardLogger())
	view := &fakeStateView{}
	p := NewFSMPresenter(ed, view)

	p.OnState(editor.StatePanning)
	p.OnState(editor.StateIdle)
	p.OnState(editor.StateDrawingRow)
	p.Tick(time.Now())

	if len(view.labels) != 1 || view.labels[0] != "Mode: drawing-row" {
		t.Fatalf("labels: %v", view.labels)
	}

	// Same state queued again: no redundant view update.
	p.OnState(editor.StateDrawingRow)
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatalf("duplicate state must not repaint: %v", view.labels)
	}
}

type fakeCanvasView struct {
	frames []image.Image
	w, h   int
}

func (v *fakeCanvasView) UpdateCanvas(img image.Image) { v.frames = append(v.frames, img) }
func (v *fakeCanvasView) CanvasSize() (int, int)       { return v.w, v.h }

type fakeLoads struct {
	ch chan raster.Snapshot
}

func (f *fakeLoads) Results() <-chan raster.Snapshot { return f.ch }

func newCanvasFixture(t *testing.T) (*CanvasPresenter, *fakeCanvasView, *fakeLoads, *editor.Editor) {
	t.Helper()
	cfg := config.DefaultConfig()
	ed := editor.NewEditor(cfg, discardLogger())
	view := &fakeCanvasView{w: 200, h: 200}
	loads := &fakeLoads{ch: make(chan raster.Snapshot, 1)}
	p := NewCanvasPresenter(ed, render.New(cfg), model.NewCanvasModel(), loads, view, discardLogger())
	return p, view, loads, ed
}

func TestCanvasPresenterInstallsSnapshot(t *testing.T) {
	p, view, loads, ed := newCanvasFixture(t)

	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	loads.ch <- raster.Snapshot{
		Raster: &raster.Raster{Image: img, View: geo.RasterView{PixelWidth: 200, PixelHeight: 200}},
		Set:    shape.NewAnnotationSet(),
	}

	var loaded int
	p.SetRasterLoadedListener(func(time.Time) { loaded++ })
	p.Tick(time.Now())

	if loaded != 1 {
		t.Fatalf("raster-loaded listener fired %d times", loaded)
	}
	if ed.View().PixelWidth != 200 {
		t.Fatal("editor did not receive the raster view")
	}
	if len(view.frames) != 1 {
		t.Fatalf("frames painted: %d", len(view.frames))
	}
	b := view.frames[0].Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("frame size %dx%d", b.Dx(), b.Dy())
	}
}

func TestCanvasPresenterSkipsCleanTicks(t *testing.T) {
	p, view, _, _ := newCanvasFixture(t)

	p.PointerDown(50, 50)
	p.PointerUp(50, 50)
	p.Tick(time.Now())
	frames := len(view.frames)
	if frames != 1 {
		t.Fatalf("dirty tick should paint once, got %d", frames)
	}

	p.Tick(time.Now())
	if len(view.frames) != frames {
		t.Fatal("clean tick must not repaint")
	}
}

func TestCanvasPresenterFailedLoadKeepsCanvas(t *testing.T) {
	p, view, loads, ed := newCanvasFixture(t)

	loads.ch <- raster.Snapshot{Err: io.ErrUnexpectedEOF}
	p.Tick(time.Now())

	if len(view.frames) != 0 {
		t.Fatal("failed load must not repaint")
	}
	if ed.View().PixelWidth != 0 {
		t.Fatal("failed load must not touch the editor")
	}
}

func TestCanvasPresenterWheelNormalizesDelta(t *testing.T) {
	p, _, _, ed := newCanvasFixture(t)
	ed.LoadRaster(geo.RasterView{PixelWidth: 200, PixelHeight: 200}, shape.NewAnnotationSet())
	ed.SetDisplaySize(200, 200)

	p.Wheel(100, 100, 120)
	z120 := ed.Viewport().Zoom

	ed.LoadRaster(geo.RasterView{PixelWidth: 200, PixelHeight: 200}, shape.NewAnnotationSet())
	p.Wheel(100, 100, 1)
	if ed.Viewport().Zoom != z120 {
		t.Fatalf("delta 1 and 120 should both be one notch: %v vs %v", ed.Viewport().Zoom, z120)
	}
}

type fakeStatsView struct {
	got   []model.StatsCounts
	calls int
}

func (v *fakeStatsView) SetStats(c model.StatsCounts) { v.got = append(v.got, c); v.calls++ }

func TestStatsPresenterPushesOnChangeOnly(t *testing.T) {
	ed := editor.NewEditor(config.DefaultConfig(), discardLogger())
	view := &fakeStatsView{}
	p := NewStatsPresenter(ed, model.NewStatsModel(), view)

	p.Tick(time.Now())
	if view.calls != 1 {
		t.Fatalf("initial push expected, got %d", view.calls)
	}
	p.Tick(time.Now())
	if view.calls != 1 {
		t.Fatalf("unchanged counters must not repaint, got %d calls", view.calls)
	}

	ed.Set().Detections = append(ed.Set().Detections, shape.NewDetection(shape.Box{X2: 30, Y2: 30}, "vine", 0))
	p.Tick(time.Now())
	if view.calls != 2 || view.got[1].Detections != 1 || view.got[1].Manual != 1 {
		t.Fatalf("counter change not reflected: calls=%d got=%+v", view.calls, view.got)
	}
}

type fakeSessionView struct {
	session, total time.Duration
}

func (v *fakeSessionView) SetSession(s, t time.Duration) { v.session, v.total = s, t }

func TestSessionPresenterTracksRasterTime(t *testing.T) {
	view := &fakeSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), view)
	base := time.Unix(0, 0)

	p.OnRasterLoaded(base)
	p.Tick(base.Add(4 * time.Second))
	if view.session != 4*time.Second || view.total != 4*time.Second {
		t.Fatalf("session=%v total=%v", view.session, view.total)
	}
}

func TestLoopTicksAllPresentersAndReschedules(t *testing.T) {
	scheduled := 0
	l := NewLoop(nil, nil, nil, nil, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 {
		t.Fatalf("schedule calls: %d", scheduled)
	}
}
