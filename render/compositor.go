// Package render composites the base raster and all annotation overlays into
// a display-sized frame. Composition is a pure function of its inputs, so
// redundant triggers from rapid input cost nothing beyond the final frame.
package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/PrahoLama/vine-annotate/config"
	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// Compositor draws frames for the annotation canvas.
type Compositor struct {
	cfg *config.Config
}

// New returns a compositor configured with overlay stroke/marker sizing.
func New(cfg *config.Config) *Compositor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Compositor{cfg: cfg}
}

// Compose renders the raster under the given viewport with all persisted
// shapes, then the transient in-progress shape in a distinct color. Overlay
// geometry is projected into display space, so stroke widths and marker
// radii stay constant on screen across zoom levels.
func (c *Compositor) Compose(base image.Image, view geo.RasterView, set *shape.AnnotationSet, vp geo.Viewport, displayW, displayH int) *image.RGBA {
	if displayW < 1 {
		displayW = 1
	}
	if displayH < 1 {
		displayH = 1
	}
	dc := gg.NewContext(displayW, displayH)
	dc.SetColor(backgroundColor)
	dc.Clear()

	native := view.Size()
	display := geo.Size{W: float64(displayW), H: float64(displayH)}

	if base != nil && native.W > 0 && native.H > 0 {
		dc.Push()
		dc.Scale(display.W/native.W, display.H/native.H)
		dc.Translate(vp.Pan.X, vp.Pan.Y)
		dc.Scale(vp.Zoom, vp.Zoom)
		dc.DrawImage(base, 0, 0)
		dc.Pop()
	}

	dc.SetFontFace(basicfont.Face7x13)
	if set != nil {
		for i := range set.Detections {
			c.drawDetection(dc, &set.Detections[i], set.SelectedID == set.Detections[i].ID, vp, native, display)
		}
		for i := range set.Rows {
			c.drawRow(dc, &set.Rows[i], rowColor, true, vp, native, display)
		}
		if set.ActiveRow != nil {
			c.drawRow(dc, set.ActiveRow, transientColor, false, vp, native, display)
		}
		if set.PreviewBox != nil {
			c.drawPreviewBox(dc, *set.PreviewBox, vp, native, display)
		}
	}

	img, _ := dc.Image().(*image.RGBA)
	return img
}

func (c *Compositor) drawDetection(dc *gg.Context, d *shape.Detection, selected bool, vp geo.Viewport, native, display geo.Size) {
	col := classColor(d.ClassID)
	tl := geo.RasterToScreen(geo.Point{X: d.Box.X1, Y: d.Box.Y1}, vp, native, display)
	br := geo.RasterToScreen(geo.Point{X: d.Box.X2, Y: d.Box.Y2}, vp, native, display)

	dc.SetColor(col)
	dc.SetLineWidth(c.cfg.StrokeWidth)
	dc.DrawRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
	dc.Stroke()

	// Label chip above the top-left corner, original annotator style.
	text := fmt.Sprintf("%s %.2f", d.Label, d.Confidence)
	tw, th := dc.MeasureString(text)
	dc.DrawRectangle(tl.X, tl.Y-th-6, tw+8, th+6)
	dc.Fill()
	dc.SetColor(chipTextColor)
	dc.DrawString(text, tl.X+4, tl.Y-5)

	if selected {
		dc.SetColor(selectionColor)
		dc.SetLineWidth(1)
		for _, corner := range d.Box.Corners() {
			s := geo.RasterToScreen(corner, vp, native, display)
			r := c.cfg.MarkerRadius
			dc.DrawRectangle(s.X-r, s.Y-r, 2*r, 2*r)
			dc.Fill()
		}
	}
}

func (c *Compositor) drawRow(dc *gg.Context, row *shape.Row, col color.Color, numbered bool, vp geo.Viewport, native, display geo.Size) {
	if len(row.Points) == 0 {
		return
	}
	screen := make([]geo.Point, len(row.Points))
	for i, p := range row.Points {
		screen[i] = geo.RasterToScreen(p, vp, native, display)
	}

	dc.SetColor(col)
	if len(screen) >= 2 {
		dc.SetLineWidth(c.cfg.StrokeWidth)
		dc.MoveTo(screen[0].X, screen[0].Y)
		for _, s := range screen[1:] {
			dc.LineTo(s.X, s.Y)
		}
		dc.Stroke()
	}
	for _, s := range screen {
		dc.DrawCircle(s.X, s.Y, c.cfg.MarkerRadius)
		dc.Fill()
	}

	if numbered && len(screen) >= 2 {
		mid := screen[len(screen)/2]
		dc.DrawStringAnchored(fmt.Sprintf("%d", row.Number), mid.X, mid.Y-8, 0.5, 0)
	}
}

func (c *Compositor) drawPreviewBox(dc *gg.Context, b shape.Box, vp geo.Viewport, native, display geo.Size) {
	tl := geo.RasterToScreen(geo.Point{X: b.X1, Y: b.Y1}, vp, native, display)
	br := geo.RasterToScreen(geo.Point{X: b.X2, Y: b.Y2}, vp, native, display)
	dc.SetColor(transientColor)
	dc.SetLineWidth(c.cfg.StrokeWidth)
	dc.SetDash(4, 4)
	dc.DrawRectangle(tl.X, tl.Y, br.X-tl.X, br.Y-tl.Y)
	dc.Stroke()
	dc.SetDash()
}
