package presenter

import (
	"image"
	"log/slog"
	"time"

	"github.com/PrahoLama/vine-annotate/domain/editor"
	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/raster"
	"github.com/PrahoLama/vine-annotate/render"
	"github.com/PrahoLama/vine-annotate/ui/model"
)

// SnapshotSource supplies finished raster loads. Satisfied by
// *raster.Service.
type SnapshotSource interface {
	Results() <-chan raster.Snapshot
}

// CanvasView describes the UI surface updated by the presenter.
type CanvasView interface {
	UpdateCanvas(img image.Image)
	CanvasSize() (w, h int)
}

// Notches per wheel step on platforms that report deltas in multiples of
// 120; smaller magnitudes are treated as a single notch.
const wheelUnit = 120

// CanvasPresenter routes pointer input into the editor and keeps the canvas
// view in sync with the annotation set. All its methods run on the UI
// thread, matching the editor's single-owner contract.
type CanvasPresenter struct {
	logger *slog.Logger
	editor *editor.Editor
	comp   *render.Compositor
	canvas *model.CanvasModel
	loads  SnapshotSource
	view   CanvasView

	onRasterLoaded func(now time.Time)
}

// NewCanvasPresenter constructs a canvas presenter.
func NewCanvasPresenter(ed *editor.Editor, comp *render.Compositor, canvas *model.CanvasModel, loads SnapshotSource, view CanvasView, logger *slog.Logger) *CanvasPresenter {
	return &CanvasPresenter{
		logger: logger,
		editor: ed,
		comp:   comp,
		canvas: canvas,
		loads:  loads,
		view:   view,
	}
}

// SetRasterLoadedListener installs a callback fired when a snapshot is
// installed, for session bookkeeping.
func (p *CanvasPresenter) SetRasterLoadedListener(fn func(now time.Time)) {
	if p != nil {
		p.onRasterLoaded = fn
	}
}

// PointerDown forwards a primary-button press at canvas coordinates.
func (p *CanvasPresenter) PointerDown(x, y int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerDown(geo.Point{X: float64(x), Y: float64(y)}, time.Now())
	p.canvas.MarkDirty()
}

// PointerMove forwards a drag motion at canvas coordinates.
func (p *CanvasPresenter) PointerMove(x, y int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerMove(geo.Point{X: float64(x), Y: float64(y)})
	p.canvas.MarkDirty()
}

// PointerUp forwards a primary-button release at canvas coordinates.
func (p *CanvasPresenter) PointerUp(x, y int) {
	if p == nil || p.editor == nil {
		return
	}
	p.editor.PointerUp(geo.Point{X: float64(x), Y: float64(y)}, time.Now())
	p.canvas.MarkDirty()
}

// Wheel forwards a scroll event. Delta follows the host convention of 120
// per notch; anything smaller counts as one notch in its direction.
func (p *CanvasPresenter) Wheel(x, y, delta int) {
	if p == nil || p.editor == nil || delta == 0 {
		return
	}
	notches := float64(delta) / wheelUnit
	if notches > -1 && notches < 1 {
		if delta > 0 {
			notches = 1
		} else {
			notches = -1
		}
	}
	p.editor.Wheel(geo.Point{X: float64(x), Y: float64(y)}, notches)
	p.canvas.MarkDirty()
}

// Command wraps an editor tool action so the canvas recomposites after it.
func (p *CanvasPresenter) Command(fn func()) {
	if p == nil || fn == nil {
		return
	}
	fn()
	p.canvas.MarkDirty()
}

// Tick installs any finished raster loads and recomposites the frame when
// the canvas is dirty.
func (p *CanvasPresenter) Tick(now time.Time) {
	if p == nil || p.editor == nil || p.view == nil {
		return
	}
	p.drainLoads(now)
	if !p.canvas.ConsumeDirty() {
		return
	}
	w, h := p.view.CanvasSize()
	if w <= 0 || h <= 0 {
		return
	}
	p.editor.SetDisplaySize(float64(w), float64(h))
	frame := p.comp.Compose(p.baseImage(), p.editor.View(), p.editor.Set(), p.editor.Viewport(), w, h)
	p.view.UpdateCanvas(frame)
}

func (p *CanvasPresenter) drainLoads(now time.Time) {
	if p.loads == nil {
		return
	}
	for {
		select {
		case snap := <-p.loads.Results():
			p.install(snap, now)
		default:
			return
		}
	}
}

func (p *CanvasPresenter) install(snap raster.Snapshot, now time.Time) {
	if snap.Err != nil {
		if p.logger != nil {
			p.logger.Error("raster load failed", "error", snap.Err)
		}
		return
	}
	if snap.Raster == nil {
		return
	}
	p.editor.LoadRaster(snap.Raster.View, snap.Set)
	p.canvas.SetBase(snap.Raster.Image)
	if p.onRasterLoaded != nil {
		p.onRasterLoaded(now)
	}
}

func (p *CanvasPresenter) baseImage() image.Image {
	if base := p.canvas.Base(); base != nil {
		return base
	}
	return nil
}
