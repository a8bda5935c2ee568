package export

import (
	"encoding/json"
	"math"
	"os"

	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// BoundingBox is the absolute box block of the detector payload.
type BoundingBox struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NormalizedBox is the center-based box in [0,1], always recomputed from the
// raster dimensions at export time so payloads can never go stale against
// the source resolution.
type NormalizedBox struct {
	XCenter float64 `json:"x_center"`
	YCenter float64 `json:"y_center"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// DetectionRecord mirrors the external detector's per-object schema, with
// the operator's manual/modified flags added.
type DetectionRecord struct {
	Class          string        `json:"class"`
	ClassID        int           `json:"class_id"`
	Confidence     float64       `json:"confidence"`
	BBox           BoundingBox   `json:"bbox"`
	BBoxNormalized NormalizedBox `json:"bbox_normalized"`
	Manual         bool          `json:"manual"`
	Modified       bool          `json:"modified"`
}

// DetectionDocument is the full exported payload.
type DetectionDocument struct {
	ImageSize struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"image_size"`
	DetectionCount int               `json:"detection_count"`
	Detections     []DetectionRecord `json:"detections"`
}

// Detections exports the current detection list keyed to the raster's pixel
// dimensions.
func Detections(dets []shape.Detection, view geo.RasterView) DetectionDocument {
	var doc DetectionDocument
	doc.ImageSize.Width = view.PixelWidth
	doc.ImageSize.Height = view.PixelHeight
	doc.Detections = make([]DetectionRecord, 0, len(dets))

	w := float64(view.PixelWidth)
	h := float64(view.PixelHeight)
	for _, d := range dets {
		rec := DetectionRecord{
			Class:      d.Label,
			ClassID:    d.ClassID,
			Confidence: round3(d.Confidence),
			BBox: BoundingBox{
				X1:     d.Box.X1,
				Y1:     d.Box.Y1,
				X2:     d.Box.X2,
				Y2:     d.Box.Y2,
				Width:  d.Box.Width(),
				Height: d.Box.Height(),
			},
			Manual:   d.Manual,
			Modified: d.Modified,
		}
		if w > 0 && h > 0 {
			rec.BBoxNormalized = NormalizedBox{
				XCenter: (d.Box.X1 + d.Box.X2) / 2 / w,
				YCenter: (d.Box.Y1 + d.Box.Y2) / 2 / h,
				Width:   d.Box.Width() / w,
				Height:  d.Box.Height() / h,
			}
		}
		doc.Detections = append(doc.Detections, rec)
	}
	doc.DetectionCount = len(doc.Detections)
	return doc
}

// WriteDetections marshals a detection document to a JSON file.
func WriteDetections(path string, doc DetectionDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
