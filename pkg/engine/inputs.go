package engine

import (
	"maps"

	"globelabels/pkg/model"
)

// Inputs is the state one recomputation reads. It is treated as immutable:
// every With method returns a modified copy and leaves the receiver untouched.
type Inputs struct {
	ZoomPercent float64 `json:"zoomPercent"`
	KmPerPixel  float64 `json:"kmPerPixel"`

	Types  map[model.LabelType]bool    `json:"types"`  // Per-type toggles
	Layers map[model.FeatureLayer]bool `json:"layers"` // Vector layer toggles

	EmpireLabels   bool            `json:"empireLabels"`   // Show empire and region names
	AncientCities  bool            `json:"ancientCities"`  // Show ancient city markers
	VisibleEmpires map[string]bool `json:"visibleEmpires"` // Empire ids currently drawn

	Aspects map[string]float64 `json:"aspects,omitempty"` // Measured aspect ratio by label ID
}

// DefaultInputs enables every type and layer with empire overlays off.
func DefaultInputs() Inputs {
	in := Inputs{
		Types:          make(map[model.LabelType]bool, len(model.AllLabelTypes)),
		Layers:         make(map[model.FeatureLayer]bool, len(model.AllFeatureLayers)),
		VisibleEmpires: map[string]bool{},
		Aspects:        map[string]float64{},
	}
	for _, t := range model.AllLabelTypes {
		in.Types[t] = true
	}
	for _, l := range model.AllFeatureLayers {
		in.Layers[l] = true
	}
	return in
}

// Clone returns a deep copy.
func (in Inputs) Clone() Inputs {
	in.Types = maps.Clone(in.Types)
	in.Layers = maps.Clone(in.Layers)
	in.VisibleEmpires = maps.Clone(in.VisibleEmpires)
	in.Aspects = maps.Clone(in.Aspects)
	return in
}

// TypeEnabled reports the toggle for t. Missing toggles count as off.
func (in Inputs) TypeEnabled(t model.LabelType) bool {
	return in.Types[t]
}

// LayerEnabled reports the toggle for a vector layer.
func (in Inputs) LayerEnabled(l model.FeatureLayer) bool {
	return in.Layers[l]
}

// EmpireVisible reports whether an empire's overlay is drawn.
func (in Inputs) EmpireVisible(id string) bool {
	return id != "" && in.VisibleEmpires[id]
}

// WithZoom returns a copy at a new zoom.
func (in Inputs) WithZoom(percent, kmPerPixel float64) Inputs {
	out := in.Clone()
	out.ZoomPercent = percent
	out.KmPerPixel = kmPerPixel
	return out
}

// WithTypes returns a copy with the given type toggles applied.
func (in Inputs) WithTypes(toggles map[model.LabelType]bool) Inputs {
	out := in.Clone()
	if out.Types == nil {
		out.Types = make(map[model.LabelType]bool)
	}
	maps.Copy(out.Types, toggles)
	return out
}

// WithLayers returns a copy with the given layer toggles applied.
func (in Inputs) WithLayers(toggles map[model.FeatureLayer]bool) Inputs {
	out := in.Clone()
	if out.Layers == nil {
		out.Layers = make(map[model.FeatureLayer]bool)
	}
	maps.Copy(out.Layers, toggles)
	return out
}

// WithEmpires returns a copy with the empire overlay state replaced.
func (in Inputs) WithEmpires(visible []string, empireLabels, ancientCities bool) Inputs {
	out := in.Clone()
	out.VisibleEmpires = make(map[string]bool, len(visible))
	for _, id := range visible {
		out.VisibleEmpires[id] = true
	}
	out.EmpireLabels = empireLabels
	out.AncientCities = ancientCities
	return out
}

// WithAspects returns a copy with measured aspects merged in. Non-positive values delete the entry.
func (in Inputs) WithAspects(aspects map[string]float64) Inputs {
	out := in.Clone()
	if out.Aspects == nil {
		out.Aspects = make(map[string]float64)
	}
	for id, a := range aspects {
		if a > 0 {
			out.Aspects[id] = a
		} else {
			delete(out.Aspects, id)
		}
	}
	return out
}
