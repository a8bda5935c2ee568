package view

import (
	"image"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/shape"
	"github.com/PrahoLama/vine-annotate/ui/model"

	tk "modernc.org/tk9.0"
)

// Handlers bundles the callbacks the root view invokes on user actions.
type Handlers struct {
	Pointer     PointerHandlers
	OnLoad      func(imagePath, detectionsPath string)
	OnAddBox    func(label string)
	OnDrawRow   func()
	OnCancel    func()
	OnDelete    func()
	OnDeleteRow func()
	OnRelabel   func(label string)
	OnExport    func()
	OnExit      func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Canvas      Canvas

	// Widgets
	StateLabel  *tk.LabelWidget
	StatusLabel *tk.LabelWidget
	LabelSelect *tk.TComboboxWidget
	imageEntry  *tk.TextWidget
	detEntry    *tk.TextWidget
	canvasRow   int
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStateLabel(text string)
	SetStatus(text string)
	SetConfigEditable(enabled bool)
	UpdateCanvas(img image.Image)
	CanvasSize() (w, h int)
	SetStats(c model.StatsCounts)
	SetSession(session, total time.Duration)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. The canvas is created last so it lands below
// the toolbar and config rows. Handlers are invoked on user actions.
func (rv *RootView) Build(canvasW, canvasH int, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, state label, status label
	rv.Session = NewSessionStats(0, 0)
	rv.StateLabel = tk.Label(tk.Txt("Mode: idle"), tk.Borderwidth(1), tk.Relief("ridge"))
	tk.Grid(rv.StateLabel, tk.Row(0), tk.Column(2), tk.Sticky("we"), tk.Padx("0.4m"), tk.Pady("0.3m"))
	rv.StatusLabel = tk.Label(tk.Txt(""), tk.Anchor("w"))
	tk.Grid(rv.StatusLabel, tk.Row(0), tk.Column(3), tk.Columnspan(2), tk.Sticky("we"), tk.Padx("0.4m"), tk.Pady("0.3m"))

	// Row 1: load controls
	loadFrame := tk.Frame()
	tk.Grid(loadFrame, tk.Row(1), tk.Column(0), tk.Columnspan(5), tk.Sticky("we"), tk.Padx("0.3m"), tk.Pady("0.2m"))
	imgLbl := tk.Label(tk.Txt("Image"), tk.Anchor("w"))
	tk.Grid(imgLbl, tk.In(loadFrame), tk.Row(0), tk.Column(0), tk.Sticky("w"), tk.Padx("0.2m"))
	rv.imageEntry = tk.Text(tk.Height(1), tk.Width(42))
	tk.Grid(rv.imageEntry, tk.In(loadFrame), tk.Row(0), tk.Column(1), tk.Sticky("we"), tk.Padx("0.2m"))
	detLbl := tk.Label(tk.Txt("Detections"), tk.Anchor("w"))
	tk.Grid(detLbl, tk.In(loadFrame), tk.Row(0), tk.Column(2), tk.Sticky("w"), tk.Padx("0.2m"))
	rv.detEntry = tk.Text(tk.Height(1), tk.Width(42))
	tk.Grid(rv.detEntry, tk.In(loadFrame), tk.Row(0), tk.Column(3), tk.Sticky("we"), tk.Padx("0.2m"))
	loadBtn := tk.Button(tk.Txt("Load"), tk.Command(func() {
		if h.OnLoad != nil {
			h.OnLoad(rv.ImagePath(), rv.DetectionsPath())
		}
	}))
	tk.Grid(loadBtn, tk.In(loadFrame), tk.Row(0), tk.Column(4), tk.Sticky("we"), tk.Padx("0.2m"))

	// Row 2: annotation toolbar
	toolFrame := tk.Frame()
	tk.Grid(toolFrame, tk.Row(2), tk.Column(0), tk.Columnspan(5), tk.Sticky("we"), tk.Padx("0.3m"), tk.Pady("0.2m"))
	rv.LabelSelect = tk.TCombobox(tk.Values(shape.Labels), tk.Width(12))
	tk.Grid(rv.LabelSelect, tk.In(toolFrame), tk.Row(0), tk.Column(0), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	rv.LabelSelect.Current(labelIndex(rv.cfg.DefaultLabel))
	addBoxBtn := tk.Button(tk.Txt("Add Box"), tk.Command(func() {
		if h.OnAddBox != nil {
			h.OnAddBox(rv.SelectedLabel())
		}
	}))
	tk.Grid(addBoxBtn, tk.In(toolFrame), tk.Row(0), tk.Column(1), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	drawRowBtn := tk.Button(tk.Txt("Draw Row"), tk.Command(func() {
		if h.OnDrawRow != nil {
			h.OnDrawRow()
		}
	}))
	tk.Grid(drawRowBtn, tk.In(toolFrame), tk.Row(0), tk.Column(2), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	relabelBtn := tk.Button(tk.Txt("Relabel"), tk.Command(func() {
		if h.OnRelabel != nil {
			h.OnRelabel(rv.SelectedLabel())
		}
	}))
	tk.Grid(relabelBtn, tk.In(toolFrame), tk.Row(0), tk.Column(3), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	cancelBtn := tk.Button(tk.Txt("Cancel"), tk.Command(func() {
		if h.OnCancel != nil {
			h.OnCancel()
		}
	}))
	tk.Grid(cancelBtn, tk.In(toolFrame), tk.Row(0), tk.Column(4), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	deleteBtn := tk.Button(tk.Txt("Delete"), tk.Command(func() {
		if h.OnDelete != nil {
			h.OnDelete()
		}
	}))
	tk.Grid(deleteBtn, tk.In(toolFrame), tk.Row(0), tk.Column(5), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	deleteRowBtn := tk.Button(tk.Txt("Delete Row"), tk.Command(func() {
		if h.OnDeleteRow != nil {
			h.OnDeleteRow()
		}
	}))
	tk.Grid(deleteRowBtn, tk.In(toolFrame), tk.Row(0), tk.Column(6), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	exportBtn := tk.Button(tk.Txt("Export"), tk.Command(func() {
		if h.OnExport != nil {
			h.OnExport()
		}
	}))
	tk.Grid(exportBtn, tk.In(toolFrame), tk.Row(0), tk.Column(7), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))
	exitBtn := tk.Button(tk.Txt("Exit"), tk.Command(func() {
		if h.OnExit != nil {
			h.OnExit()
		}
	}))
	tk.Grid(exitBtn, tk.In(toolFrame), tk.Row(0), tk.Column(8), tk.Sticky("we"), tk.Padx("0.2m"), tk.Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(3)
	rv.canvasRow = endRow

	// Canvas placement
	rv.Canvas = NewCanvas(rv.canvasRow, canvasW, canvasH, h.Pointer)
}

// ImagePath returns the trimmed image path entry.
func (rv *RootView) ImagePath() string { return rv.entryText(rv.imageEntry) }

// DetectionsPath returns the trimmed detections path entry.
func (rv *RootView) DetectionsPath() string { return rv.entryText(rv.detEntry) }

func (rv *RootView) entryText(w *tk.TextWidget) string {
	if rv == nil || w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", tk.END), ""))
}

// SetPaths seeds the load entries, typically from command-line flags.
func (rv *RootView) SetPaths(imagePath, detectionsPath string) {
	if rv == nil {
		return
	}
	if rv.imageEntry != nil && imagePath != "" {
		rv.imageEntry.Delete("1.0", tk.END)
		rv.imageEntry.Insert("1.0", imagePath)
	}
	if rv.detEntry != nil && detectionsPath != "" {
		rv.detEntry.Delete("1.0", tk.END)
		rv.detEntry.Insert("1.0", detectionsPath)
	}
}

// SelectedLabel returns the class label currently picked in the dropdown.
func (rv *RootView) SelectedLabel() string {
	if rv == nil || rv.LabelSelect == nil {
		return ""
	}
	idxStr := rv.LabelSelect.Current(nil)
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(shape.Labels) {
		if rv.logger != nil {
			rv.logger.Error("label selection parse error", "error", err)
		}
		return rv.cfg.DefaultLabel
	}
	return shape.Labels[idx]
}

// SetStateLabel updates the interaction mode label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(tk.Txt(text))
	}
}

// SetStatus updates the transient status line (load and export feedback).
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(tk.Txt(text))
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// UpdateCanvas proxies to the underlying canvas view.
func (rv *RootView) UpdateCanvas(img image.Image) {
	if rv != nil && rv.Canvas != nil {
		rv.Canvas.UpdateCanvas(img)
	}
}

// CanvasSize proxies to the underlying canvas view.
func (rv *RootView) CanvasSize() (int, int) {
	if rv == nil || rv.Canvas == nil {
		return 0, 0
	}
	return rv.Canvas.CanvasSize()
}

// SetStats proxies annotation counters to the stats labels.
func (rv *RootView) SetStats(c model.StatsCounts) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetStats(c)
	}
}

// SetSession proxies editing durations to the stats labels.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(session, total)
	}
}

func labelIndex(label string) int {
	for i, l := range shape.Labels {
		if l == label {
			return i
		}
	}
	return 0
}
