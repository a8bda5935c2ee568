package view

import (
	"image"

	"github.com/PrahoLama/vine-annotate/ui/images"

	tk "modernc.org/tk9.0"
)

// PointerHandlers routes raw canvas pointer events to the presenter layer.
type PointerHandlers struct {
	OnDown  func(x, y int)
	OnMove  func(x, y int)
	OnUp    func(x, y int)
	OnWheel func(x, y, delta int)
}

// Canvas displays composited annotation frames and reports pointer input.
type Canvas interface {
	UpdateCanvas(img image.Image)
	CanvasSize() (w, h int)
	Reset()
}

type canvas struct {
	label     *tk.LabelWidget
	w, h      int
	prevPhoto *tk.Img // last Tk photo image instance
}

// Internal state tracks the current photo so we can dispose the old image
// before replacing it, preventing accumulation of off-screen image data.

// NewCanvas creates the canvas label at the given grid row, binds pointer
// events and returns the view. The canvas spans the full toolbar width.
func NewCanvas(row, w, h int, handlers PointerHandlers) Canvas {
	if w < 100 {
		w = 100
	}
	if h < 100 {
		h = 100
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, w, h))
	photo := tk.NewPhoto(tk.Data(images.EncodePNG(placeholder)))
	label := tk.Label(tk.Image(photo), tk.Borderwidth(1), tk.Relief("sunken"))
	tk.Grid(label, tk.Row(row), tk.Column(0), tk.Columnspan(5), tk.Sticky("nsew"), tk.Padx("0.4m"), tk.Pady("0.4m"))

	v := &canvas{label: label, w: w, h: h, prevPhoto: photo}
	tk.Bind(label, "<Button-1>", tk.Command(func(e *tk.Event) {
		if handlers.OnDown != nil {
			handlers.OnDown(e.X, e.Y)
		}
	}))
	tk.Bind(label, "<B1-Motion>", tk.Command(func(e *tk.Event) {
		if handlers.OnMove != nil {
			handlers.OnMove(e.X, e.Y)
		}
	}))
	tk.Bind(label, "<ButtonRelease-1>", tk.Command(func(e *tk.Event) {
		if handlers.OnUp != nil {
			handlers.OnUp(e.X, e.Y)
		}
	}))
	tk.Bind(label, "<MouseWheel>", tk.Command(func(e *tk.Event) {
		if handlers.OnWheel != nil {
			handlers.OnWheel(e.X, e.Y, e.Delta)
		}
	}))
	// X11 reports wheel steps as button presses instead of <MouseWheel>.
	tk.Bind(label, "<Button-4>", tk.Command(func(e *tk.Event) {
		if handlers.OnWheel != nil {
			handlers.OnWheel(e.X, e.Y, 120)
		}
	}))
	tk.Bind(label, "<Button-5>", tk.Command(func(e *tk.Event) {
		if handlers.OnWheel != nil {
			handlers.OnWheel(e.X, e.Y, -120)
		}
	}))
	return v
}

func (v *canvas) UpdateCanvas(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	// Frames larger than the canvas are scaled down; matching frames pass
	// through unscaled.
	pngBytes := images.EncodePNG(images.ScaleToFit(img, v.w, v.h))
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	newPhoto := tk.NewPhoto(tk.Data(pngBytes))
	v.prevPhoto = newPhoto
	v.label.Configure(tk.Image(newPhoto))
}

func (v *canvas) CanvasSize() (int, int) {
	if v == nil {
		return 0, 0
	}
	return v.w, v.h
}

func (v *canvas) Reset() {
	if v == nil || v.label == nil {
		return
	}
	placeholder := image.NewRGBA(image.Rect(0, 0, v.w, v.h))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = tk.NewPhoto(tk.Data(images.EncodePNG(placeholder)))
	v.label.Configure(tk.Image(v.prevPhoto))
}
