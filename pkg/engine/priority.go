package engine

import (
	"math"
	"unicode/utf8"

	"github.com/golang/geo/s1"

	"globelabels/pkg/geo"
	"globelabels/pkg/model"
)

// Priority ranks label types; higher wins a collision. national marks a
// national capital (capital type) or an empire capital (ancientCity type).
func Priority(t model.LabelType, national bool) int {
	switch t {
	case model.TypePlate, model.TypeGlacier, model.TypeCoralReef:
		return 120
	case model.TypeEmpire:
		return 110
	case model.TypeRegion:
		return 105
	case model.TypeAncientCity:
		if national {
			return 100
		}
		return 90
	case model.TypeContinent:
		return 80
	case model.TypeOcean:
		return 70
	case model.TypeCountry:
		return 60
	case model.TypeCapital:
		if national {
			return 50
		}
		return 20
	case model.TypeSea, model.TypeMountain, model.TypeDesert:
		return 40
	case model.TypeLake, model.TypeRiver:
		return 30
	case model.TypeCity:
		return 10
	}
	return 0
}

// shrinks reports whether a type's footprint is scaled down so large-area
// labels do not block everything around them.
func shrinks(t model.LabelType) bool {
	switch t {
	case model.TypeContinent, model.TypeLake, model.TypePlate, model.TypeGlacier, model.TypeCoralReef:
		return true
	}
	return false
}

// CollisionRadius converts a type's on-screen size into an angular radius at
// the given zoom. Non-positive or NaN results fall back to p.DefaultRadius.
func CollisionRadius(t model.LabelType, kmPerPixel float64, p Params) s1.Angle {
	p = p.withDefaults()

	px, ok := p.PixelSizes[t]
	if !ok || px <= 0 {
		px = p.DefaultPixelSize
	}
	px *= p.ComfortableSpacing
	if shrinks(t) {
		px *= p.ShrinkFactor
	}

	r := geo.KmToAngle(px*kmPerPixel, p.PlanetRadiusKm)
	if math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) || r <= 0 {
		return p.DefaultRadius
	}
	return r
}

// AspectScale widens the radius of long labels: aspect/threshold clamped to [1, max].
func AspectScale(aspect float64, p Params) float64 {
	p = p.withDefaults()
	if math.IsNaN(aspect) || aspect <= p.AspectThreshold {
		return 1
	}
	return math.Min(math.Max(aspect/p.AspectThreshold, 1), p.MaxAspectScale)
}

// EstimateAspect guesses a label's width/height ratio from its name when no
// measured aspect was reported.
func EstimateAspect(name string) float64 {
	return math.Max(0.6*float64(utf8.RuneCountInString(name)), 1)
}
