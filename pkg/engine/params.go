package engine

import (
	"github.com/golang/geo/s1"

	"globelabels/pkg/geo"
	"globelabels/pkg/model"
)

// Params are the tuning constants of the collision model. They do not change
// between passes; per-pass state lives in Inputs.
type Params struct {
	// ComfortableSpacing scales every label's on-screen size into its collision footprint.
	ComfortableSpacing float64
	// ShrinkFactor is applied to types whose footprint should not block others.
	ShrinkFactor float64
	// MaxOffsetFactor bounds a cuddle offset to this many country label heights.
	MaxOffsetFactor float64
	// CuddleMargin multiplies the overlap amount when pushing a country away.
	CuddleMargin float64
	// ContinentZoomCutoff hides continent labels at or above this zoom percentage.
	ContinentZoomCutoff float64
	// PlanetRadiusKm converts surface kilometers into radians.
	PlanetRadiusKm float64
	// DefaultRadius replaces zero or NaN collision radii.
	DefaultRadius s1.Angle
	// AspectThreshold is the aspect ratio above which a label's radius widens.
	AspectThreshold float64
	// MaxAspectScale caps the widening.
	MaxAspectScale float64
	// PixelSizes is the target on-screen height per label type.
	PixelSizes map[model.LabelType]float64
	// DefaultPixelSize is used for types missing from PixelSizes.
	DefaultPixelSize float64
}

// DefaultParams returns the tuning used by the globe.
func DefaultParams() Params {
	return Params{
		ComfortableSpacing:  1.2,
		ShrinkFactor:        0.3,
		MaxOffsetFactor:     1.5,
		CuddleMargin:        1.1,
		ContinentZoomCutoff: 26,
		PlanetRadiusKm:      geo.EarthRadiusKm,
		DefaultRadius:       0.005,
		AspectThreshold:     3,
		MaxAspectScale:      2,
		PixelSizes:          DefaultPixelSizes(),
		DefaultPixelSize:    12,
	}
}

// DefaultPixelSizes returns the base on-screen label height per type.
func DefaultPixelSizes() map[model.LabelType]float64 {
	return map[model.LabelType]float64{
		model.TypeContinent:   28,
		model.TypeOcean:       22,
		model.TypeCountry:     16,
		model.TypeCapital:     12,
		model.TypeSea:         14,
		model.TypeMountain:    12,
		model.TypeDesert:      13,
		model.TypeLake:        11,
		model.TypeRiver:       11,
		model.TypeCity:        10,
		model.TypePlate:       14,
		model.TypeGlacier:     11,
		model.TypeCoralReef:   11,
		model.TypeEmpire:      20,
		model.TypeRegion:      15,
		model.TypeAncientCity: 12,
	}
}

// withDefaults fills zero fields so a partially specified Params is usable.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.ComfortableSpacing <= 0 {
		p.ComfortableSpacing = d.ComfortableSpacing
	}
	if p.ShrinkFactor <= 0 {
		p.ShrinkFactor = d.ShrinkFactor
	}
	if p.MaxOffsetFactor <= 0 {
		p.MaxOffsetFactor = d.MaxOffsetFactor
	}
	if p.CuddleMargin <= 0 {
		p.CuddleMargin = d.CuddleMargin
	}
	if p.ContinentZoomCutoff <= 0 {
		p.ContinentZoomCutoff = d.ContinentZoomCutoff
	}
	if p.PlanetRadiusKm <= 0 {
		p.PlanetRadiusKm = d.PlanetRadiusKm
	}
	if !(p.DefaultRadius > 0) {
		p.DefaultRadius = d.DefaultRadius
	}
	if p.AspectThreshold <= 0 {
		p.AspectThreshold = d.AspectThreshold
	}
	if p.MaxAspectScale < 1 {
		p.MaxAspectScale = d.MaxAspectScale
	}
	if p.PixelSizes == nil {
		p.PixelSizes = d.PixelSizes
	}
	if p.DefaultPixelSize <= 0 {
		p.DefaultPixelSize = d.DefaultPixelSize
	}
	return p
}
