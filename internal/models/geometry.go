package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// GeoJSONPolygon carries a farm boundary as GeoJSON on the API and converts
// to/from PostGIS GEOMETRY(Polygon, 4326) at the database boundary.
type GeoJSONPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// Value converts the GeoJSON polygon to an SRID-prefixed WKT string, e.g.
// "SRID=4326;POLYGON((36.8 -1.3, ...))", for PostGIS.
func (g *GeoJSONPolygon) Value() (driver.Value, error) {
	if g == nil || g.Type == "" {
		return nil, nil
	}

	raw, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal boundary GeoJSON: %w", err)
	}

	var geometry geom.T
	if err := geojson.Unmarshal(raw, &geometry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal boundary GeoJSON: %w", err)
	}

	polygon, ok := geometry.(*geom.Polygon)
	if !ok {
		return nil, fmt.Errorf("boundary geometry is not a Polygon")
	}
	polygon.SetSRID(4326)

	wktString, err := wkt.Marshal(polygon)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal boundary to WKT: %w", err)
	}

	return fmt.Sprintf("SRID=%d;%s", polygon.SRID(), wktString), nil
}

// Scan converts a PostGIS EWKB geometry back into GeoJSON.
func (g *GeoJSONPolygon) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	raw, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan boundary: expected []byte, got %T", value)
	}

	geometry, err := ewkb.Unmarshal(raw)
	if err != nil {
		return fmt.Errorf("failed to unmarshal boundary EWKB: %w", err)
	}

	polygon, ok := geometry.(*geom.Polygon)
	if !ok {
		return fmt.Errorf("scanned boundary geometry is not a Polygon")
	}

	geoJSONBytes, err := geojson.Marshal(polygon)
	if err != nil {
		return fmt.Errorf("failed to marshal boundary to GeoJSON: %w", err)
	}

	return json.Unmarshal(geoJSONBytes, g)
}
