package geo

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// OpenFeatureLayer loads a vector layer from a GeoJSON file or, for a .shp
// path, from an ESRI shapefile with its .dbf attributes.
func OpenFeatureLayer(path string) (*FeatureLayer, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return LoadShapefileLayer(path)
	}
	return LoadFeatureLayer(path)
}

// LoadShapefileLayer converts a shapefile into a FeatureLayer.
// Numeric attributes become float64 properties; everything else stays a string.
func LoadShapefileLayer(path string) (*FeatureLayer, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile %s: %w", path, err)
	}
	defer reader.Close()

	fields := reader.Fields()

	fc := geojson.NewFeatureCollection()
	for reader.Next() {
		n, s := reader.Shape()

		geometry, ok := shapeGeometry(s)
		if !ok {
			slog.Debug("Skipping unsupported shape", "path", path, "row", n, "type", fmt.Sprintf("%T", s))
			continue
		}

		f := geojson.NewFeature(geometry)
		for i, field := range fields {
			f.Properties[field.String()] = attributeValue(field, reader.ReadAttribute(n, i))
		}
		fc.Append(f)
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read shapefile %s: %w", path, err)
	}

	return &FeatureLayer{Path: path, features: fc.Features}, nil
}

func shapeGeometry(s shp.Shape) (orb.Geometry, bool) {
	switch v := s.(type) {
	case *shp.Point:
		return orb.Point{v.X, v.Y}, true
	case *shp.PolyLine:
		return orb.MultiLineString(shapeParts[orb.LineString](v.NumParts, v.NumPoints, v.Parts, v.Points)), true
	case *shp.Polygon:
		// Parts are treated as rings of a single polygon; the outer ring comes first.
		return orb.Polygon(shapeParts[orb.Ring](v.NumParts, v.NumPoints, v.Parts, v.Points)), true
	}
	return nil, false
}

func shapeParts[T ~[]orb.Point](numParts, numPoints int32, parts []int32, points []shp.Point) []T {
	out := make([]T, 0, numParts)
	for i := int32(0); i < numParts; i++ {
		start, end := parts[i], numPoints
		if i < numParts-1 {
			end = parts[i+1]
		}
		part := make(T, 0, end-start)
		for _, p := range points[start:end] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out
}

func attributeValue(field shp.Field, raw string) interface{} {
	val := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	switch field.Fieldtype {
	case 'N', 'F':
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return val
}
