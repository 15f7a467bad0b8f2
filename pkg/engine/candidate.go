package engine

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"globelabels/pkg/label"
	"globelabels/pkg/model"
)

// Layer partitions candidates; labels in different layers never collide.
type Layer string

const (
	LayerSettlements Layer = "settlements"
	LayerEmpire      Layer = "empire"
	LayerWater       Layer = "water"
	LayerGeographic  Layer = "geographic"
)

// Layers lists the collision layers in sweep order.
var Layers = []Layer{LayerSettlements, LayerEmpire, LayerWater, LayerGeographic}

// LayerFor returns the collision layer of a label type.
func LayerFor(t model.LabelType) Layer {
	switch t {
	case model.TypeCapital, model.TypeAncientCity:
		return LayerSettlements
	case model.TypeEmpire, model.TypeRegion:
		return LayerEmpire
	case model.TypeLake, model.TypeRiver:
		return LayerWater
	}
	return LayerGeographic
}

// Candidate is an eligible label prepared for one collision pass.
type Candidate struct {
	ID              string
	Name            string
	Type            model.LabelType
	Position        r3.Vector // Unit length
	Priority        int
	Height          s1.Angle // Angular label height
	Radius          s1.Angle // Height widened by the aspect scale
	Aspect          float64
	NationalCapital bool
	Country         string
	Layer           Layer
	Order           int
}

// EligibleIDs returns the IDs of every entry passing the eligibility rules.
func EligibleIDs(entries []label.Entry, in Inputs, p Params) map[string]bool {
	out := make(map[string]bool)
	for i := range entries {
		if Eligible(&entries[i].LabelRecord, in, p) {
			out[entries[i].ID] = true
		}
	}
	return out
}

// BuildCandidates turns eligible entries into candidates, preserving load order.
func BuildCandidates(entries []label.Entry, eligible map[string]bool, in Inputs, p Params) []Candidate {
	p = p.withDefaults()
	out := make([]Candidate, 0, len(eligible))
	for i := range entries {
		e := &entries[i]
		if !eligible[e.ID] {
			continue
		}

		aspect, ok := in.Aspects[e.ID]
		if !ok || !(aspect > 0) {
			aspect = EstimateAspect(e.Name)
		}

		height := CollisionRadius(e.Type, in.KmPerPixel, p)
		radius := s1.Angle(float64(height) * AspectScale(aspect, p))
		if !validAngle(radius) {
			radius = p.DefaultRadius
		}

		pos := e.Position
		if n := pos.Norm(); n != 1 && n > 0 {
			pos = pos.Normalize()
		}

		out = append(out, Candidate{
			ID:              e.ID,
			Name:            e.Name,
			Type:            e.Type,
			Position:        pos,
			Priority:        Priority(e.Type, e.National),
			Height:          height,
			Radius:          radius,
			Aspect:          aspect,
			NationalCapital: e.IsNationalCapital(),
			Country:         e.Country,
			Layer:           LayerFor(e.Type),
			Order:           e.Order,
		})
	}
	return out
}

func validAngle(a s1.Angle) bool {
	f := float64(a)
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
