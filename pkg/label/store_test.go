package label

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globelabels/pkg/model"
)

func TestStore_AppendValidates(t *testing.T) {
	s := NewStore()

	stats := s.Append(
		model.LabelRecord{Name: "Italy", Type: model.TypeCountry, Lat: 42.5, Lng: 12.5},
		model.LabelRecord{Name: "", Type: model.TypeCountry, Lat: 1, Lng: 1},
		model.LabelRecord{Name: "Nowhere", Type: model.TypeCountry, Lat: math.NaN(), Lng: 1},
		model.LabelRecord{Name: "Atlantis", Type: "myth", Lat: 1, Lng: 1},
		model.LabelRecord{Name: "Italy", Type: model.TypeCountry, Lat: 0, Lng: 0},
		model.LabelRecord{Name: "Rome", Type: model.TypeCapital, Lat: 41.9, Lng: 12.5, National: true, Country: "Italy"},
	)

	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 4, stats.Skipped)
	assert.Equal(t, 1, stats.Reasons[ErrMissingName.Error()])
	assert.Equal(t, 1, stats.Reasons[ErrBadCoordinate.Error()])
	assert.Equal(t, 1, stats.Reasons[ErrUnknownType.Error()])
	assert.Equal(t, 1, stats.Reasons[ErrDuplicate.Error()])

	italy, ok := s.Lookup(model.LabelID("Italy", model.TypeCountry))
	require.True(t, ok)
	assert.InDelta(t, 42.5, italy.Lat, 1e-9, "first record with an ID wins")
	assert.InDelta(t, 1.0, italy.Position.Norm(), 1e-12)
	assert.Equal(t, 0, italy.Order)

	rome, ok := s.Lookup(model.LabelID("Rome", model.TypeCapital))
	require.True(t, ok)
	assert.Equal(t, 1, rome.Order)
}

func TestStore_AppendCanonicalisesTypes(t *testing.T) {
	s := NewStore()

	stats := s.Append(
		model.LabelRecord{Name: "Reef", Type: "coral_reef", Lat: -18, Lng: 147},
		model.LabelRecord{Name: "Asia", Type: "Continent", Lat: 45, Lng: 90},
		model.LabelRecord{Name: "Asia", Type: model.TypeContinent, Lat: 40, Lng: 80},
	)

	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.Reasons[ErrDuplicate.Error()], "variant spellings share one ID")

	tests := []struct {
		id   string
		want model.LabelType
	}{
		{model.LabelID("Reef", model.TypeCoralReef), model.TypeCoralReef},
		{model.LabelID("Asia", model.TypeContinent), model.TypeContinent},
	}
	for _, tt := range tests {
		e, ok := s.Lookup(tt.id)
		require.True(t, ok, tt.id)
		assert.Equal(t, tt.want, e.Type, tt.id)
		assert.Equal(t, tt.id, e.ID)
	}
}

func TestStore_ReplaceIsWholesale(t *testing.T) {
	s := NewStore()
	s.Append(model.LabelRecord{Name: "Old", Type: model.TypeCity, Lat: 1, Lng: 1})
	require.Equal(t, 1, s.Len())

	snapshot := s.Entries()

	stats := s.Replace(model.LabelRecord{Name: "New", Type: model.TypeCity, Lat: 2, Lng: 2})
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, s.Len())

	_, ok := s.Lookup(model.LabelID("Old", model.TypeCity))
	assert.False(t, ok)
	assert.Equal(t, "Old", snapshot[0].Name, "earlier snapshots are unaffected")
}
