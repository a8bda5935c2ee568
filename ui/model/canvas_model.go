package model

import (
	"image"
)

// CanvasModel holds the decoded base raster and the dirty flag that tells
// the presenter a recomposite is due. Zero value means no raster loaded and
// is usable. No synchronization needed: updates occur on the UI thread tick.
type CanvasModel struct {
	base  *image.NRGBA
	dirty bool
}

func NewCanvasModel() *CanvasModel { return &CanvasModel{} }

// SetBase installs a freshly decoded raster and marks the canvas dirty.
// A nil image clears the canvas.
func (m *CanvasModel) SetBase(img *image.NRGBA) {
	if m == nil {
		return
	}
	m.base = img
	m.dirty = true
}

// Base returns the current raster (may be nil).
func (m *CanvasModel) Base() *image.NRGBA {
	if m == nil {
		return nil
	}
	return m.base
}

// MarkDirty requests a recomposite on the next tick.
func (m *CanvasModel) MarkDirty() {
	if m == nil {
		return
	}
	m.dirty = true
}

// ConsumeDirty reports and clears the dirty flag.
func (m *CanvasModel) ConsumeDirty() bool {
	if m == nil {
		return false
	}
	d := m.dirty
	m.dirty = false
	return d
}
