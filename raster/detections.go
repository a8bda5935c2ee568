package raster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

// Wire format of the external detector's output. Box coordinates are raster
// pixels; the normalized block is center-based in [0,1] and used as a
// fallback when the absolute box is absent.
type boundingBox struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type normalizedBox struct {
	XCenter float64 `json:"x_center"`
	YCenter float64 `json:"y_center"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

type detectionRecord struct {
	Class          string         `json:"class"`
	ClassID        int            `json:"class_id"`
	Confidence     float64        `json:"confidence"`
	BBox           *boundingBox   `json:"bbox"`
	BBoxNormalized *normalizedBox `json:"bbox_normalized"`
}

type detectionDocument struct {
	ImageSize struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"image_size"`
	Detections []detectionRecord `json:"detections"`
}

// ParseDetections builds the initial annotation set from detector output.
// Both payload shapes are accepted: the full document and a bare array of
// detection records. Records without usable geometry are skipped.
func ParseDetections(data []byte, view geo.RasterView) (*shape.AnnotationSet, error) {
	var records []detectionRecord
	var doc detectionDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.Detections != nil {
		records = doc.Detections
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("raster: detections payload: %w", err)
	}

	set := shape.NewAnnotationSet()
	for _, r := range records {
		box, ok := recordBox(r, view)
		if !ok {
			continue
		}
		conf := r.Confidence
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		set.AddDetection(shape.Detection{
			ID:         uuid.New(),
			Label:      r.Class,
			ClassID:    r.ClassID,
			Confidence: conf,
			Box:        box,
		})
	}
	return set, nil
}

// LoadDetections reads a detector output file keyed to the given view.
func LoadDetections(path string, view geo.RasterView) (*shape.AnnotationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDetections(data, view)
}

func recordBox(r detectionRecord, view geo.RasterView) (shape.Box, bool) {
	if r.BBox != nil {
		b := shape.NormalizeBox(shape.Box{X1: r.BBox.X1, Y1: r.BBox.Y1, X2: r.BBox.X2, Y2: r.BBox.Y2})
		return b, b.Width() > 0 && b.Height() > 0
	}
	if r.BBoxNormalized != nil {
		w := float64(view.PixelWidth)
		h := float64(view.PixelHeight)
		bw := r.BBoxNormalized.Width * w
		bh := r.BBoxNormalized.Height * h
		cx := r.BBoxNormalized.XCenter * w
		cy := r.BBoxNormalized.YCenter * h
		b := shape.NormalizeBox(shape.Box{X1: cx - bw/2, Y1: cy - bh/2, X2: cx + bw/2, Y2: cy + bh/2})
		return b, b.Width() > 0 && b.Height() > 0
	}
	return shape.Box{}, false
}
