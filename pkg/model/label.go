package model

import "strings"

// LabelType is the semantic category of a globe label.
type LabelType string

const (
	TypeContinent   LabelType = "continent"
	TypeOcean       LabelType = "ocean"
	TypeCountry     LabelType = "country"
	TypeCapital     LabelType = "capital"
	TypeSea         LabelType = "sea"
	TypeMountain    LabelType = "mountain"
	TypeDesert      LabelType = "desert"
	TypeLake        LabelType = "lake"
	TypeRiver       LabelType = "river"
	TypeCity        LabelType = "city"
	TypePlate       LabelType = "plate"
	TypeGlacier     LabelType = "glacier"
	TypeCoralReef   LabelType = "coralReef"
	TypeEmpire      LabelType = "empire"
	TypeRegion      LabelType = "region"
	TypeAncientCity LabelType = "ancientCity"
)

// AllLabelTypes lists every known type in a fixed order.
var AllLabelTypes = []LabelType{
	TypeContinent, TypeOcean, TypeCountry, TypeCapital, TypeSea, TypeMountain,
	TypeDesert, TypeLake, TypeRiver, TypeCity, TypePlate, TypeGlacier,
	TypeCoralReef, TypeEmpire, TypeRegion, TypeAncientCity,
}

var typeByLower = func() map[string]LabelType {
	m := make(map[string]LabelType, len(AllLabelTypes))
	for _, t := range AllLabelTypes {
		m[strings.ToLower(string(t))] = t
	}
	// Aliases seen in source data.
	m["coral_reef"] = TypeCoralReef
	m["ancient_city"] = TypeAncientCity
	m["tectonic_plate"] = TypePlate
	return m
}()

// ParseLabelType resolves a type name case-insensitively. Unknown names return false.
func ParseLabelType(s string) (LabelType, bool) {
	t, ok := typeByLower[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// Known reports whether t is exactly one of the canonical label types.
// Aliases and case variants must go through ParseLabelType first.
func (t LabelType) Known() bool {
	c, ok := typeByLower[strings.ToLower(string(t))]
	return ok && c == t
}

// FeatureLayer is a toggleable vector layer that contributes labels.
type FeatureLayer string

const (
	LayerLakes      FeatureLayer = "lakes"
	LayerRivers     FeatureLayer = "rivers"
	LayerPlates     FeatureLayer = "plates"
	LayerGlaciers   FeatureLayer = "glaciers"
	LayerCoralReefs FeatureLayer = "coralReefs"
)

// AllFeatureLayers lists every vector layer in a fixed order.
var AllFeatureLayers = []FeatureLayer{LayerLakes, LayerRivers, LayerPlates, LayerGlaciers, LayerCoralReefs}

// LabelType returns the type of the labels extracted from the layer.
func (l FeatureLayer) LabelType() LabelType {
	switch l {
	case LayerLakes:
		return TypeLake
	case LayerRivers:
		return TypeRiver
	case LayerPlates:
		return TypePlate
	case LayerGlaciers:
		return TypeGlacier
	case LayerCoralReefs:
		return TypeCoralReef
	}
	return ""
}

// LayerOf returns the vector layer owning a feature-derived type.
func LayerOf(t LabelType) (FeatureLayer, bool) {
	for _, l := range AllFeatureLayers {
		if l.LabelType() == t {
			return l, true
		}
	}
	return "", false
}

// LabelRecord is one label as loaded from the label file or extracted from a layer.
// Records are immutable once loaded.
type LabelRecord struct {
	Name     string    `json:"name"`
	Type     LabelType `json:"type"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Rank     int       `json:"rank,omitempty"` // Reserved. Not consulted by the collision engine.
	National bool      `json:"national,omitempty"`
	Country  string    `json:"country,omitempty"` // Parent country (capitals only)
	Empire   string    `json:"empire,omitempty"`  // Owning empire id (empire, region, ancientCity)

	// Provenance
	LayerBased  bool `json:"layerBased,omitempty"`
	DetailLevel int  `json:"detailLevel,omitempty"`
}

// LabelID builds the unique identity of a label: its name qualified by type.
func LabelID(name string, t LabelType) string {
	return string(t) + ":" + name
}

// ID returns the record's unique identity.
func (r *LabelRecord) ID() string {
	return LabelID(r.Name, r.Type)
}

// IsNationalCapital reports whether the record is a capital of a modern country.
func (r *LabelRecord) IsNationalCapital() bool {
	return r.Type == TypeCapital && r.National
}
