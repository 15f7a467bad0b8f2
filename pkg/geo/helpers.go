package geo

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// containsPoint checks if a geometry contains a point.
func containsPoint(geom orb.Geometry, point orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, point)
	case orb.MultiPolygon:
		for _, poly := range g {
			if planar.PolygonContains(poly, point) {
				return true
			}
		}
	}
	return false
}

// anchorFor picks the point a label for geom should be pinned to.
// Polygons use the centroid of their largest part, lines the middle vertex of their longest part.
func anchorFor(geom orb.Geometry) (orb.Point, bool) {
	switch g := geom.(type) {
	case orb.Point:
		return g, true
	case orb.MultiPoint:
		if len(g) == 0 {
			return orb.Point{}, false
		}
		return g[0], true
	case orb.LineString:
		return lineAnchor(g)
	case orb.MultiLineString:
		return lineAnchor(longestLine(g))
	case orb.Polygon:
		return polygonAnchor(g)
	case orb.MultiPolygon:
		return polygonAnchor(largestPolygon(g))
	}
	return orb.Point{}, false
}

func lineAnchor(ls orb.LineString) (orb.Point, bool) {
	if len(ls) == 0 {
		return orb.Point{}, false
	}
	return ls[len(ls)/2], true
}

func longestLine(mls orb.MultiLineString) orb.LineString {
	var best orb.LineString
	bestLen := -1.0
	for _, ls := range mls {
		if l := planar.Length(ls); l > bestLen {
			bestLen = l
			best = ls
		}
	}
	return best
}

func largestPolygon(mp orb.MultiPolygon) orb.Polygon {
	var best orb.Polygon
	bestArea := -1.0
	for _, poly := range mp {
		if a := math.Abs(planar.Area(poly)); a > bestArea {
			bestArea = a
			best = poly
		}
	}
	return best
}

func polygonAnchor(poly orb.Polygon) (orb.Point, bool) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return orb.Point{}, false
	}
	c, _ := planar.CentroidArea(poly)
	if containsPoint(poly, c) {
		return c, true
	}
	// Concave shapes (crescents, archipelagos) can have an outside centroid.
	if center := poly.Bound().Center(); containsPoint(poly, center) {
		return center, true
	}
	return poly[0][0], true
}

// getStringProp safely extracts a string property from GeoJSON properties.
func getStringProp(props geojson.Properties, key string) string {
	if val, ok := props[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
		// Handle JSON numbers that might be parsed as float64
		if f, ok := val.(json.Number); ok {
			return string(f)
		}
	}
	return ""
}

// getFloatProp extracts a numeric property, accepting float64 and json.Number.
func getFloatProp(props geojson.Properties, key string) (float64, bool) {
	switch v := props[key].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// getBoolProp extracts a boolean property. Missing or non-boolean values are false.
func getBoolProp(props geojson.Properties, key string) bool {
	b, _ := props[key].(bool)
	return b
}

// firstStringProp returns the first non-empty string among keys.
func firstStringProp(props geojson.Properties, keys ...string) string {
	for _, k := range keys {
		if s := getStringProp(props, k); s != "" {
			return s
		}
	}
	return ""
}
