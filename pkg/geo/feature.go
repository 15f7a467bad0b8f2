package geo

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb/geojson"
)

// Anchor is a named feature reduced to the single point its label is pinned to.
type Anchor struct {
	Name  string
	Lat   float64
	Lon   float64
	Props geojson.Properties
}

// String returns a string property of the source feature.
func (a Anchor) String(key string) string {
	return getStringProp(a.Props, key)
}

// Float returns a numeric property of the source feature.
func (a Anchor) Float(key string) (float64, bool) {
	return getFloatProp(a.Props, key)
}

// Bool returns a boolean property of the source feature.
func (a Anchor) Bool(key string) bool {
	return getBoolProp(a.Props, key)
}

// Objects returns an array-of-objects property (e.g. the cities attached to an empire) as anchors.
// Entries without lat/lng get NaN coordinates and are left for the caller to reject.
func (a Anchor) Objects(key string) []Anchor {
	raw, ok := a.Props[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]Anchor, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		props := geojson.Properties(m)
		lat, ok := getFloatProp(props, "lat")
		if !ok {
			lat = math.NaN()
		}
		lon, ok := getFloatProp(props, "lng")
		if !ok {
			if lon, ok = getFloatProp(props, "lon"); !ok {
				lon = math.NaN()
			}
		}
		out = append(out, Anchor{
			Name:  firstStringProp(props, "name_en", "name"),
			Lat:   lat,
			Lon:   lon,
			Props: props,
		})
	}
	return out
}

// FeatureLayer is a parsed GeoJSON vector layer (lakes, rivers, plate boundaries...).
type FeatureLayer struct {
	Path     string
	features []*geojson.Feature
}

// LoadFeatureLayer reads and parses a GeoJSON FeatureCollection from disk.
func LoadFeatureLayer(path string) (*FeatureLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geojson %s: %w", path, err)
	}
	l, err := ParseFeatureLayer(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson %s: %w", path, err)
	}
	l.Path = path
	return l, nil
}

// ParseFeatureLayer parses an in-memory GeoJSON FeatureCollection.
func ParseFeatureLayer(data []byte) (*FeatureLayer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	return &FeatureLayer{features: fc.Features}, nil
}

// Len returns the number of features in the layer.
func (l *FeatureLayer) Len() int {
	return len(l.features)
}

// Anchors returns one anchor per named feature, in file order.
// Features without a name or without usable geometry are dropped.
// Explicit label_lat/label_lng properties override the computed anchor.
func (l *FeatureLayer) Anchors() []Anchor {
	out := make([]Anchor, 0, len(l.features))
	for _, f := range l.features {
		if f == nil || f.Properties == nil {
			continue
		}
		name := firstStringProp(f.Properties, "name_en", "name", "NAME")
		if name == "" {
			continue
		}

		lat, okLat := getFloatProp(f.Properties, "label_lat")
		lon, okLon := getFloatProp(f.Properties, "label_lng")
		if !okLat || !okLon {
			if f.Geometry == nil {
				continue
			}
			p, ok := anchorFor(f.Geometry)
			if !ok {
				continue
			}
			lon, lat = p[0], p[1]
		}

		out = append(out, Anchor{Name: name, Lat: lat, Lon: lon, Props: f.Properties})
	}
	return out
}
