package engine

import (
	"globelabels/pkg/model"
)

// Eligible reports whether a record may compete for display under the given
// inputs. It does not consider collisions.
func Eligible(r *model.LabelRecord, in Inputs, p Params) bool {
	p = p.withDefaults()

	switch r.Type {
	case model.TypeCapital:
		// Only capitals of modern countries are labelled.
		return r.National && in.TypeEnabled(model.TypeCapital)

	case model.TypeContinent:
		return in.TypeEnabled(model.TypeContinent) && in.ZoomPercent < p.ContinentZoomCutoff

	case model.TypeEmpire, model.TypeRegion:
		return in.EmpireLabels && in.EmpireVisible(r.Empire)

	case model.TypeAncientCity:
		return in.AncientCities && in.EmpireVisible(r.Empire)
	}

	if layer, ok := model.LayerOf(r.Type); ok {
		return in.LayerEnabled(layer) && in.TypeEnabled(r.Type)
	}
	return in.TypeEnabled(r.Type)
}
