package label

import (
	"fmt"

	"globelabels/pkg/geo"
	"globelabels/pkg/model"
)

// FromEmpireLayer extracts empire, region and ancient-city labels from empire
// polygon metadata. Each feature describes one empire (or one of its regions):
//
//	properties.empire  owning empire id (falls back to "id", then the name)
//	properties.kind    "region" for region polygons, anything else is an empire
//	properties.cities  [{name, lat, lng, capital}] ancient cities of the empire
func FromEmpireLayer(fl *geo.FeatureLayer) []model.LabelRecord {
	if fl == nil {
		return nil
	}

	var out []model.LabelRecord
	for _, a := range fl.Anchors() {
		empireID := a.String("empire")
		if empireID == "" {
			empireID = a.String("id")
		}
		if empireID == "" {
			empireID = a.Name
		}

		lt := model.TypeEmpire
		if a.String("kind") == "region" {
			lt = model.TypeRegion
		}

		out = append(out, model.LabelRecord{
			Name:       a.Name,
			Type:       lt,
			Lat:        a.Lat,
			Lng:        a.Lon,
			Empire:     empireID,
			LayerBased: true,
		})

		for _, c := range a.Objects("cities") {
			out = append(out, model.LabelRecord{
				Name:       c.Name,
				Type:       model.TypeAncientCity,
				Lat:        c.Lat,
				Lng:        c.Lon,
				National:   c.Bool("capital"),
				Empire:     empireID,
				LayerBased: true,
			})
		}
	}
	return out
}

// LoadEmpireLayer reads the empire metadata file.
func LoadEmpireLayer(path string) ([]model.LabelRecord, error) {
	fl, err := geo.LoadFeatureLayer(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load empire metadata: %w", err)
	}
	return FromEmpireLayer(fl), nil
}
