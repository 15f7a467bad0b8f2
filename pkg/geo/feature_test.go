package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layerFixture = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Lake Square"},
      "geometry": {"type": "Polygon", "coordinates": [[[10,40],[12,40],[12,42],[10,42],[10,40]]]}
    },
    {
      "type": "Feature",
      "properties": {"name_en": "Long River", "name": "Fleuve"},
      "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1],[2,2],[3,3],[4,4]]}
    },
    {
      "type": "Feature",
      "properties": {"name": "Pinned", "label_lat": 5.5, "label_lng": 6.5},
      "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}
    },
    {
      "type": "Feature",
      "properties": {"kind": "unnamed"},
      "geometry": {"type": "Point", "coordinates": [1, 1]}
    },
    {
      "type": "Feature",
      "properties": {
        "name": "Archipelago",
        "cities": [{"name": "A", "lat": 1, "lng": 2, "capital": true}, "junk"]
      },
      "geometry": {"type": "MultiPolygon", "coordinates": [
        [[[0,0],[1,0],[1,1],[0,1],[0,0]]],
        [[[20,20],[30,20],[30,30],[20,30],[20,20]]]
      ]}
    }
  ]
}`

func TestFeatureLayer_Anchors(t *testing.T) {
	// 1. Write the fixture to disk so the file loader is exercised too
	path := filepath.Join(t.TempDir(), "layer.geojson")
	require.NoError(t, os.WriteFile(path, []byte(layerFixture), 0o644))

	layer, err := LoadFeatureLayer(path)
	require.NoError(t, err)
	assert.Equal(t, 5, layer.Len())

	anchors := layer.Anchors()
	require.Len(t, anchors, 4, "unnamed feature should be dropped")

	// 2. Polygon -> centroid
	assert.Equal(t, "Lake Square", anchors[0].Name)
	assert.InDelta(t, 41.0, anchors[0].Lat, 1e-9)
	assert.InDelta(t, 11.0, anchors[0].Lon, 1e-9)

	// 3. LineString -> middle vertex, name_en preferred
	assert.Equal(t, "Long River", anchors[1].Name)
	assert.InDelta(t, 2.0, anchors[1].Lat, 1e-9)

	// 4. Explicit label position wins
	assert.InDelta(t, 5.5, anchors[2].Lat, 1e-9)
	assert.InDelta(t, 6.5, anchors[2].Lon, 1e-9)

	// 5. MultiPolygon -> largest part
	assert.Equal(t, "Archipelago", anchors[3].Name)
	assert.InDelta(t, 25.0, anchors[3].Lat, 1e-9)
	cities := anchors[3].Objects("cities")
	require.Len(t, cities, 1, "non-object entries are ignored")
	assert.Equal(t, "A", cities[0].Name)
	assert.InDelta(t, 1.0, cities[0].Lat, 1e-9)
	assert.InDelta(t, 2.0, cities[0].Lon, 1e-9)
	assert.True(t, cities[0].Bool("capital"))
}

func TestLoadFeatureLayer_Errors(t *testing.T) {
	_, err := LoadFeatureLayer(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.geojson")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadFeatureLayer(path)
	assert.Error(t, err)
}

func TestPolygonAnchor_ConcaveFallsInside(t *testing.T) {
	// U-shaped polygon whose centroid lies in the notch.
	layer, err := ParseFeatureLayer([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature",
	  "properties":{"name":"U"},
	  "geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[8,10],[8,2],[2,2],[2,10],[0,10],[0,0]]]}}]}`))
	require.NoError(t, err)

	anchors := layer.Anchors()
	require.Len(t, anchors, 1)
	a := anchors[0]
	assert.True(t, containsPoint(layer.features[0].Geometry, orb.Point{a.Lon, a.Lat}) || (a.Lon == 0 && a.Lat == 0))
}
