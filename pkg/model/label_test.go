package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabelType(t *testing.T) {
	tests := []struct {
		in   string
		want LabelType
		ok   bool
	}{
		{"country", TypeCountry, true},
		{"Country", TypeCountry, true},
		{" coralReef ", TypeCoralReef, true},
		{"coral_reef", TypeCoralReef, true},
		{"ancient_city", TypeAncientCity, true},
		{"volcano", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLabelType(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLabelType_Known(t *testing.T) {
	for _, lt := range AllLabelTypes {
		assert.True(t, lt.Known(), lt)
	}
	assert.False(t, LabelType("").Known())
	assert.False(t, LabelType("volcano").Known())
	assert.False(t, LabelType("Continent").Known(), "case variants are not canonical")
	assert.False(t, LabelType("coral_reef").Known(), "aliases are not canonical")
}

func TestFeatureLayer_RoundTrip(t *testing.T) {
	for _, l := range AllFeatureLayers {
		got, ok := LayerOf(l.LabelType())
		assert.True(t, ok)
		assert.Equal(t, l, got)
	}
	_, ok := LayerOf(TypeCountry)
	assert.False(t, ok)
}

func TestLabelRecord_ID(t *testing.T) {
	a := LabelRecord{Name: "Georgia", Type: TypeCountry}
	b := LabelRecord{Name: "Georgia", Type: TypeCity}
	assert.NotEqual(t, a.ID(), b.ID(), "same name, different type must not collide")
	assert.Equal(t, LabelID("Georgia", TypeCountry), a.ID())

	assert.True(t, (&LabelRecord{Type: TypeCapital, National: true}).IsNationalCapital())
	assert.False(t, (&LabelRecord{Type: TypeCapital}).IsNationalCapital())
	assert.False(t, (&LabelRecord{Type: TypeAncientCity, National: true}).IsNationalCapital())
}
