// Package export serializes finished annotations into the interchange
// formats the downstream pipeline consumes: GeoJSON line features for rows
// and the detector's JSON payload for boxes.
package export

import (
	"encoding/json"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/PrahoLama/vine-annotate/domain/geo"
	"github.com/PrahoLama/vine-annotate/domain/shape"
)

const crs84 = "urn:ogc:def:crs:OGC:1.3:CRS84"

// Rows converts committed rows into a GeoJSON feature collection, one
// LineString per row. Each feature carries the row's sequential number as
// the string property "rand" (the downstream pipeline keys on it), plus the
// numeric row_id and the approximate ground length in meters. When the view
// has no georeference the fallback box is used and the returned flag, also
// recorded on the collection, tells callers the coordinates are
// approximate. Export never fails for missing georeference.
func Rows(rows []shape.Row, view geo.RasterView, fallback geo.GeoBounds, name string) (*geojson.FeatureCollection, bool) {
	fc := geojson.NewFeatureCollection()
	approximate := view.Bounds == nil || !view.Bounds.Valid()

	for _, row := range rows {
		coords := make([][2]float64, 0, len(row.Points))
		ls := make(orb.LineString, 0, len(row.Points))
		for _, p := range row.Points {
			lng, lat, _ := geo.RasterToGeo(p, view, fallback)
			coords = append(coords, [2]float64{lng, lat})
			ls = append(ls, orb.Point{lng, lat})
		}
		f := geojson.NewFeature(ls)
		f.Properties["rand"] = strconv.Itoa(row.Number)
		f.Properties["row_id"] = row.Number
		f.Properties["length_m"] = round2(geo.LineLengthMeters(coords))
		fc.Append(f)
	}

	fc.ExtraMembers = geojson.Properties{
		"name":        name,
		"approximate": approximate,
		"crs": map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": crs84},
		},
	}
	return fc, approximate
}

// WriteRows marshals a feature collection to a GeoJSON file.
func WriteRows(path string, fc *geojson.FeatureCollection) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
