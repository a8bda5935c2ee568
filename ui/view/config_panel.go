package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/PrahoLama/vine-annotate/config"

	tk "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *tk.ButtonWidget
	widgets  map[string]*tk.TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*tk.TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := tk.Label(tk.Txt(label), tk.Anchor("w"))
		tk.Grid(lbl, tk.Row(row), tk.Column(0), tk.Sticky("w"), tk.Padx("0.4m"), tk.Pady("0.15m"))
		w := tk.Text(tk.Height(1), tk.Width(16))
		tk.Grid(w, tk.Row(row), tk.Column(1), tk.Sticky("we"), tk.Padx("0.4m"), tk.Pady("0.15m"))
		w.Delete("1.0", tk.END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("minZoom", "Min Zoom", fmt.Sprintf("%.2f", c.MinZoom))
	makeRow("maxZoom", "Max Zoom", fmt.Sprintf("%.2f", c.MaxZoom))
	makeRow("wheelStep", "Wheel Step", fmt.Sprintf("%.3f", c.WheelStep))
	makeRow("doubleClickMs", "Double Click Ms", fmt.Sprintf("%d", c.DoubleClickMs))
	makeRow("minBoxPx", "Min Box Px", fmt.Sprintf("%.0f", c.MinBoxPx))
	makeRow("handleRadiusPx", "Handle Radius Px", fmt.Sprintf("%.0f", c.HandleRadiusPx))
	makeRow("strokeWidth", "Stroke Width", fmt.Sprintf("%.1f", c.StrokeWidth))
	makeRow("markerRadius", "Marker Radius", fmt.Sprintf("%.1f", c.MarkerRadius))
	makeRow("defaultLabel", "Default Label", c.DefaultLabel)
	makeRow("fbMinLng", "Fallback Min Lng", fmt.Sprintf("%.6f", c.FallbackMinLng))
	makeRow("fbMinLat", "Fallback Min Lat", fmt.Sprintf("%.6f", c.FallbackMinLat))
	makeRow("fbMaxLng", "Fallback Max Lng", fmt.Sprintf("%.6f", c.FallbackMaxLng))
	makeRow("fbMaxLat", "Fallback Max Lat", fmt.Sprintf("%.6f", c.FallbackMaxLat))
	v.applyBtn = tk.Button(tk.Txt("Apply Changes"), tk.Command(func() { v.ApplyChanges() }))
	tk.Grid(v.applyBtn, tk.Row(row), tk.Column(0), tk.Columnspan(2), tk.Sticky("we"), tk.Padx("0.4m"), tk.Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(tk.State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(tk.State(state))
	}
}

func (v *configPanel) text(w *tk.TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", tk.END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignFloat := func(id string, dst *float64) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if f, ok := parseFloatField(strings.TrimSpace(v.text(w))); ok {
			*dst = f
		}
	}
	assignInt := func(id string, dst *int) {
		w := v.widgets[id]
		if w == nil {
			return
		}
		if i, ok := parseIntField(strings.TrimSpace(v.text(w))); ok {
			*dst = i
		}
	}
	assignFloat("minZoom", &cfg.MinZoom)
	assignFloat("maxZoom", &cfg.MaxZoom)
	assignFloat("wheelStep", &cfg.WheelStep)
	assignInt("doubleClickMs", &cfg.DoubleClickMs)
	assignFloat("minBoxPx", &cfg.MinBoxPx)
	assignFloat("handleRadiusPx", &cfg.HandleRadiusPx)
	assignFloat("strokeWidth", &cfg.StrokeWidth)
	assignFloat("markerRadius", &cfg.MarkerRadius)
	assignFloat("fbMinLng", &cfg.FallbackMinLng)
	assignFloat("fbMinLat", &cfg.FallbackMinLat)
	assignFloat("fbMaxLng", &cfg.FallbackMaxLng)
	assignFloat("fbMaxLat", &cfg.FallbackMaxLat)
	if w := v.widgets["defaultLabel"]; w != nil {
		val := strings.TrimSpace(v.text(w))
		if val != "" {
			cfg.DefaultLabel = val
		}
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
