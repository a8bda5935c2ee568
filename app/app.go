package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	. "modernc.org/tk9.0"

	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/export"
	"github.com/PrahoLama/vine-annotate/ui/presenter"
	"github.com/PrahoLama/vine-annotate/ui/theme"
	"github.com/PrahoLama/vine-annotate/ui/view"
)

const tick = 50 * time.Millisecond

// app owns the Tk window lifecycle and the update loop around a container.
type app struct {
	c       *AppContainer
	width   int
	height  int
	afterID string

	// Path of the raster last handed to the load service; export output
	// names derive from it.
	imagePath string
}

// NewApp creates the main window shell. The layout is built in Start.
func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, width: width, height: height}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the layout, optionally kicks off an initial load, and enters
// the Tk main loop. It blocks until the window closes.
func (a *app) Start(imagePath, detectionsPath string) {
	theme.InitStyles()

	canvasW := a.width - 40
	if canvasW < 200 {
		canvasW = 200
	}
	canvasH := a.height * 3 / 5
	if canvasH < 200 {
		canvasH = 200
	}

	cp := a.c.CanvasPresenter
	a.c.RootView.Build(canvasW, canvasH, view.Handlers{
		Pointer: view.PointerHandlers{
			OnDown:  cp.PointerDown,
			OnMove:  cp.PointerMove,
			OnUp:    cp.PointerUp,
			OnWheel: cp.Wheel,
		},
		OnLoad:      a.loadRaster,
		OnAddBox:    func(label string) { cp.Command(func() { a.c.Editor.StartBox(label) }) },
		OnDrawRow:   func() { cp.Command(a.c.Editor.StartRow) },
		OnCancel:    func() { cp.Command(a.c.Editor.Cancel) },
		OnDelete:    func() { cp.Command(a.c.Editor.DeleteSelected) },
		OnDeleteRow: func() { cp.Command(a.c.Editor.DeleteLastRow) },
		OnRelabel:   func(label string) { cp.Command(func() { a.c.Editor.RelabelSelected(label) }) },
		OnExport:    a.exportAnnotations,
		OnExit:      a.exitHandler,
	})

	a.c.RootView.SetPaths(imagePath, detectionsPath)
	if imagePath != "" {
		a.loadRaster(imagePath, detectionsPath)
	}

	a.c.Loop = presenter.NewLoop(
		a.c.SessionPresenter,
		a.c.FSMPresenter,
		a.c.StatsPresenter,
		a.c.CanvasPresenter,
		a.scheduleUpdate,
	)
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) loadRaster(imagePath, detectionsPath string) {
	if imagePath == "" {
		a.c.UI.SetStatus("no image path")
		return
	}
	a.imagePath = imagePath
	a.c.Loads.Load(imagePath, detectionsPath)
	a.c.UI.SetStatus("loading " + filepath.Base(imagePath))
}

// exportAnnotations writes the session's rows and detections next to the
// source raster.
func (a *app) exportAnnotations() {
	if a.imagePath == "" {
		a.c.UI.SetStatus("nothing to export")
		return
	}
	ed := a.c.Editor
	set := ed.Set()
	base := strings.TrimSuffix(a.imagePath, filepath.Ext(a.imagePath))
	name := filepath.Base(base)
	cfg := a.c.Config
	fallback := geo.GeoBounds{
		MinLng: cfg.FallbackMinLng,
		MinLat: cfg.FallbackMinLat,
		MaxLng: cfg.FallbackMaxLng,
		MaxLat: cfg.FallbackMaxLat,
	}

	rowsPath := base + "_rows.geojson"
	fc, approx := export.Rows(set.Rows, ed.View(), fallback, name)
	if err := export.WriteRows(rowsPath, fc); err != nil {
		a.c.Logger.Error("row export failed", "path", rowsPath, "error", err)
		a.c.UI.SetStatus("row export failed")
		return
	}

	detsPath := base + "_detections.json"
	doc := export.Detections(set.Detections, ed.View())
	if err := export.WriteDetections(detsPath, doc); err != nil {
		a.c.Logger.Error("detection export failed", "path", detsPath, "error", err)
		a.c.UI.SetStatus("detection export failed")
		return
	}

	a.c.Logger.Info("annotations exported",
		"rows", len(set.Rows), "detections", len(set.Detections),
		"approximate", approx, "rows_path", rowsPath, "detections_path", detsPath)
	status := fmt.Sprintf("exported %d rows, %d boxes", len(set.Rows), len(set.Detections))
	if approx {
		status += " (approximate coords)"
	}
	a.c.UI.SetStatus(status)
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next tick using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
