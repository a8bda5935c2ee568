package editor

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// Editor turns pointer and command inputs into viewport and shape mutations.
// It is the single owner of the viewport and the annotation set: all
// mutation happens synchronously inside its handlers, so a host must drive
// it from one event loop. Inputs with no defined handler for the current
// state are no-ops, logged but never surfaced.
type Editor struct {
	logger *slog.Logger
	cfg    *config.Config

	state   State
	vp      geo.Viewport
	view    geo.RasterView
	display geo.Size
	set     *shape.AnnotationSet

	// Gesture-scoped data, valid only inside the owning state.
	boxLabel     string
	boxClassID   int
	boxStart     geo.Point
	boxPressed   bool
	dragID       uuid.UUID
	lastRaster   geo.Point
	lastScreen   geo.Point // native screen space, panning
	resizeAnchor geo.Point
	lastRowClick time.Time

	listeners []StateListener
	commits   CommitListeners
}

// NewEditor constructs an editor in Idle with an empty annotation set and an
// identity viewport.
func NewEditor(cfg *config.Config, logger *slog.Logger) *Editor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Editor{
		logger: logger,
		cfg:    cfg,
		state:  StateIdle,
		vp:     geo.IdentityViewport(),
		set:    shape.NewAnnotationSet(),
	}
}

// SetCommitListeners installs shape lifecycle callbacks.
func (e *Editor) SetCommitListeners(l CommitListeners) { e.commits = l }

// AddStateListener registers a transition observer.
func (e *Editor) AddStateListener(l StateListener) {
	e.listeners = append(e.listeners, l)
}

// Current returns the interaction state.
func (e *Editor) Current() State { return e.state }

// Viewport returns the current pan/zoom state.
func (e *Editor) Viewport() geo.Viewport { return e.vp }

// View returns the loaded raster's dimensions and georeference.
func (e *Editor) View() geo.RasterView { return e.view }

// Set exposes the annotation set for rendering and export. Callers must not
// mutate it outside editor handlers.
func (e *Editor) Set() *shape.AnnotationSet { return e.set }

// SetDisplaySize records the on-screen size of the canvas widget so pointer
// coordinates can be mapped back to native raster pixels.
func (e *Editor) SetDisplaySize(w, h float64) {
	e.display = geo.Size{W: w, H: h}
}

// LoadRaster installs a freshly decoded raster and its initial detections.
// The viewport resets to identity; rows are pixel-bound to the previous
// raster, so the session row list starts empty.
func (e *Editor) LoadRaster(view geo.RasterView, set *shape.AnnotationSet) {
	if set == nil {
		set = shape.NewAnnotationSet()
	}
	e.view = view
	e.set = set
	e.vp = geo.IdentityViewport()
	e.lastRowClick = time.Time{}
	e.transition(StateIdle)
	if e.logger != nil {
		e.logger.Info("raster loaded",
			"width", view.PixelWidth, "height", view.PixelHeight,
			"georeferenced", view.Bounds != nil,
			"detections", len(set.Detections))
	}
}

// PointerDown handles a primary-button press at a display-space position.
func (e *Editor) PointerDown(p geo.Point, at time.Time) {
	switch e.state {
	case StateIdle:
		e.pointerDownIdle(p)
	case StateDrawingRow:
		e.rowClick(p, at)
	case StateDrawingBox:
		e.boxStart = geo.ScreenToRaster(p, e.vp, e.view.Size(), e.display)
		e.boxPressed = true
		b := shape.BoxFromCorners(e.boxStart, e.boxStart)
		e.set.PreviewBox = &b
	default:
		e.invalid("pointer-down")
	}
}

func (e *Editor) pointerDownIdle(p geo.Point) {
	native := e.view.Size()
	if sel, ok := e.set.Selected(); ok {
		if corner, hit := HitHandle(p, sel, e.vp, native, e.display, e.cfg.HandleRadiusPx); hit {
			e.dragID = sel.ID
			e.resizeAnchor = oppositeCorner(sel.Box, corner)
			e.transition(StateResizingBox)
			return
		}
	}
	if id, ok := HitTestPoint(p, e.set, e.vp, native, e.display); ok {
		e.set.Select(id)
		e.dragID = id
		e.lastRaster = geo.ScreenToRaster(p, e.vp, native, e.display)
		e.transition(StateDraggingBox)
		return
	}
	e.set.ClearSelection()
	e.lastScreen = geo.ToNativeScreen(p, native, e.display)
	e.transition(StatePanning)
}

// rowClick appends a vertex, or finishes the row when two clicks land within
// the double-click threshold and the row already has two points. Add-point
// and finish-row share one input channel this way, without extra gestures.
func (e *Editor) rowClick(p geo.Point, at time.Time) {
	threshold := time.Duration(e.cfg.DoubleClickMs) * time.Millisecond
	dbl := DoubleClick(at, e.lastRowClick, threshold)
	e.lastRowClick = at

	if dbl && e.set.ActiveRow != nil && len(e.set.ActiveRow.Points) >= 2 {
		row, err := e.set.FinishRow()
		if err != nil {
			// <2 points cannot happen here; stay in DrawingRow regardless.
			e.invalid("finish-row")
			return
		}
		e.transition(StateIdle)
		if e.commits.RowFinished != nil {
			e.commits.RowFinished(row)
		}
		return
	}
	raster := geo.ScreenToRaster(p, e.vp, e.view.Size(), e.display)
	if err := e.set.AddRowPoint(raster); err != nil && e.logger != nil {
		e.logger.Debug("row point dropped", "error", err)
	}
}

// PointerMove handles pointer motion. Motion in states that do not track it
// (Idle hover, DrawingRow) is a defined no-op.
func (e *Editor) PointerMove(p geo.Point) {
	native := e.view.Size()
	switch e.state {
	case StatePanning:
		cur := geo.ToNativeScreen(p, native, e.display)
		e.vp.Pan.X += cur.X - e.lastScreen.X
		e.vp.Pan.Y += cur.Y - e.lastScreen.Y
		e.lastScreen = cur
	case StateDraggingBox:
		cur := geo.ScreenToRaster(p, e.vp, native, e.display)
		if err := e.set.MoveDetection(e.dragID, cur.X-e.lastRaster.X, cur.Y-e.lastRaster.Y); err != nil && e.logger != nil {
			e.logger.Debug("drag target vanished", "id", e.dragID)
		}
		e.lastRaster = cur
	case StateResizingBox:
		cur := geo.ScreenToRaster(p, e.vp, native, e.display)
		if err := e.set.ResizeDetection(e.dragID, e.resizeAnchor, cur); err != nil && e.logger != nil {
			e.logger.Debug("resize target vanished", "id", e.dragID)
		}
	case StateDrawingBox:
		if !e.boxPressed {
			return
		}
		cur := geo.ScreenToRaster(p, e.vp, native, e.display)
		b := shape.BoxFromCorners(e.boxStart, cur)
		e.set.PreviewBox = &b
	}
}

// PointerUp handles a primary-button release.
func (e *Editor) PointerUp(p geo.Point, at time.Time) {
	switch e.state {
	case StatePanning, StateDraggingBox, StateResizingBox:
		e.dragID = uuid.Nil
		e.transition(StateIdle)
	case StateDrawingBox:
		e.finishBox(p)
	case StateDrawingRow:
		// Row vertices are placed on press; release is a defined no-op.
	default:
		e.invalid("pointer-up")
	}
}

// finishBox commits the drawn box when it meets the minimum footprint;
// undersized boxes are discarded silently so a stray click never creates a
// degenerate detection. Imported detections never pass through this check.
func (e *Editor) finishBox(p geo.Point) {
	defer func() {
		e.set.PreviewBox = nil
		e.boxPressed = false
		e.transition(StateIdle)
	}()
	if !e.boxPressed {
		return
	}
	cur := geo.ScreenToRaster(p, e.vp, e.view.Size(), e.display)
	box := shape.BoxFromCorners(e.boxStart, cur)
	if box.Width() < e.cfg.MinBoxPx || box.Height() < e.cfg.MinBoxPx {
		if e.logger != nil {
			e.logger.Debug("drawn box below minimum footprint",
				"width", box.Width(), "height", box.Height(), "min", e.cfg.MinBoxPx)
		}
		return
	}
	d := shape.NewDetection(box, e.boxLabel, e.boxClassID)
	e.set.AddDetection(d)
	if e.commits.DetectionCreated != nil {
		e.commits.DetectionCreated(d)
	}
}

// Wheel zooms about the pointer position. It applies in every state without
// changing the interaction state.
func (e *Editor) Wheel(focal geo.Point, notches float64) {
	factor := math.Pow(e.cfg.WheelStep, notches)
	f := geo.ToNativeScreen(focal, e.view.Size(), e.display)
	e.vp = geo.ZoomAt(f, factor, e.vp, e.cfg.MinZoom, e.cfg.MaxZoom)
}

// StartRow begins digitizing a new row polyline.
func (e *Editor) StartRow() {
	if e.state != StateIdle {
		e.invalid("start-row")
		return
	}
	e.set.ClearSelection()
	e.set.StartRow()
	e.lastRowClick = time.Time{}
	e.transition(StateDrawingRow)
}

// StartBox arms box drawing with a preselected label.
func (e *Editor) StartBox(label string) {
	if e.state != StateIdle {
		e.invalid("start-box")
		return
	}
	if label == "" {
		label = e.cfg.DefaultLabel
	}
	e.set.ClearSelection()
	e.boxLabel = label
	e.boxClassID = shape.LabelClassID(label)
	e.boxPressed = false
	e.transition(StateDrawingBox)
}

// Cancel discards any in-progress drawing and returns to Idle. Committed
// shapes are never touched.
func (e *Editor) Cancel() {
	switch e.state {
	case StateDrawingRow:
		e.set.CancelRow()
	case StateDrawingBox:
		e.set.PreviewBox = nil
		e.boxPressed = false
	case StateIdle:
		return
	default:
		e.invalid("cancel")
		return
	}
	e.transition(StateIdle)
}

// DeleteSelected removes the selected detection.
func (e *Editor) DeleteSelected() {
	if e.state != StateIdle {
		e.invalid("delete")
		return
	}
	sel, ok := e.set.Selected()
	if !ok {
		return
	}
	id := sel.ID
	if e.set.DeleteDetection(id) && e.commits.ShapeDeleted != nil {
		e.commits.ShapeDeleted(id)
	}
}

// DeleteRow removes a committed row; survivors renumber contiguously.
func (e *Editor) DeleteRow(id uuid.UUID) {
	if e.state != StateIdle {
		e.invalid("delete-row")
		return
	}
	if e.set.DeleteRow(id) && e.commits.ShapeDeleted != nil {
		e.commits.ShapeDeleted(id)
	}
}

// DeleteLastRow removes the most recently committed row. Rows are never
// point-selected, so the toolbar deletes them newest-first.
func (e *Editor) DeleteLastRow() {
	if e.state != StateIdle {
		e.invalid("delete-row")
		return
	}
	if len(e.set.Rows) == 0 {
		return
	}
	e.DeleteRow(e.set.Rows[len(e.set.Rows)-1].ID)
}

// RelabelSelected changes the selected detection's class.
func (e *Editor) RelabelSelected(label string) {
	if e.state != StateIdle {
		e.invalid("relabel")
		return
	}
	sel, ok := e.set.Selected()
	if !ok {
		return
	}
	if err := e.set.RelabelDetection(sel.ID, label, shape.LabelClassID(label)); err != nil && e.logger != nil {
		e.logger.Debug("relabel failed", "error", err)
	}
}

func (e *Editor) transition(next State) {
	prev := e.state
	if prev == next {
		return
	}
	e.state = next
	if e.logger != nil {
		e.logger.Debug("editor state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range e.listeners {
		l(prev, next)
	}
}

// invalid records an event arriving in a state with no handler for it.
func (e *Editor) invalid(event string) {
	if e.logger != nil {
		e.logger.Debug("ignored event", "state", e.state.String(), "event", event)
	}
}
