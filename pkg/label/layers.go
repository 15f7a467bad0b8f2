package label

import (
	"log/slog"

	"globelabels/pkg/geo"
	"globelabels/pkg/model"
)

// FromFeatureLayer extracts one record per named feature of a vector layer.
// The label type follows the layer (lakes -> lake, plates -> plate, ...).
func FromFeatureLayer(layer model.FeatureLayer, fl *geo.FeatureLayer) []model.LabelRecord {
	lt := layer.LabelType()
	if lt == "" || fl == nil {
		return nil
	}

	anchors := fl.Anchors()
	out := make([]model.LabelRecord, 0, len(anchors))
	for _, a := range anchors {
		rec := model.LabelRecord{
			Name:       a.Name,
			Type:       lt,
			Lat:        a.Lat,
			Lng:        a.Lon,
			LayerBased: true,
		}
		if v, ok := a.Float("scalerank"); ok {
			rec.Rank = int(v)
		} else if v, ok := a.Float("rank"); ok {
			rec.Rank = int(v)
		}
		if v, ok := a.Float("detail_level"); ok {
			rec.DetailLevel = int(v)
		}
		out = append(out, rec)
	}
	return out
}

// LoadFeatureLayers reads every configured layer file. A layer that fails to
// load is logged and skipped; the remaining layers still contribute.
func LoadFeatureLayers(paths map[model.FeatureLayer]string) []model.LabelRecord {
	var out []model.LabelRecord
	// Iterate in the fixed layer order so load order (and tie-breaks) are stable.
	for _, layer := range model.AllFeatureLayers {
		path, ok := paths[layer]
		if !ok || path == "" {
			continue
		}
		fl, err := geo.OpenFeatureLayer(path)
		if err != nil {
			slog.Warn("Label layer unavailable", "layer", layer, "path", path, "error", err)
			continue
		}
		recs := FromFeatureLayer(layer, fl)
		slog.Debug("Label layer loaded", "layer", layer, "features", fl.Len(), "labels", len(recs))
		out = append(out, recs...)
	}
	return out
}
