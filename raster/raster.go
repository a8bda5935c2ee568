// Package raster decodes source imagery and the external detector's output
// into the editor's data model. Decoding is the only potentially slow
// operation in the application, so it runs behind an asynchronous service
// that delivers finished snapshots; the editing core never blocks on it.
package raster

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Orthophotos arrive as TIFF, individual drone frames as JPEG/PNG/WebP.
	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/tiff"

	"github.com/PrahoLama/vine-annotate/domain/geo"
)

// ErrEmptyImage is returned for rasters that decode to a zero-sized grid.
var ErrEmptyImage = errors.New("raster: empty image")

// Raster couples a decoded pixel grid with its view metadata.
type Raster struct {
	Path  string
	Image *image.NRGBA
	View  geo.RasterView
}

// Open decodes the image at path and reads its georeference sidecar when one
// exists. A missing sidecar is not an error: the view simply carries no
// bounds and downstream geographic conversions are flagged approximate.
func Open(path string) (*Raster, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	view := geo.RasterView{PixelWidth: b.Dx(), PixelHeight: b.Dy()}
	if bounds, err := readBoundsSidecar(path); err == nil {
		view.Bounds = bounds
	}
	return &Raster{Path: path, Image: nrgba, View: view}, nil
}

// BoundsSidecarPath returns the georeference sidecar path for an image:
// `ortho.tif` -> `ortho.bounds.json`.
func BoundsSidecarPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + ".bounds.json"
}

// readBoundsSidecar loads the geographic bounding box extracted by the
// orthophoto pipeline. Returns an error when absent or degenerate.
func readBoundsSidecar(imagePath string) (*geo.GeoBounds, error) {
	data, err := os.ReadFile(BoundsSidecarPath(imagePath))
	if err != nil {
		return nil, err
	}
	var b geo.GeoBounds
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("raster: bounds sidecar: %w", err)
	}
	if !b.Valid() {
		return nil, fmt.Errorf("raster: bounds sidecar: degenerate box")
	}
	return &b, nil
}
