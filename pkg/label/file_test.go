package label

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globelabels/pkg/model"
)

func TestParseRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{
			name:  "BareArray",
			input: `[{"name":"Italy","type":"country","lat":42.5,"lng":12.5},{"name":"Rome","type":"capital","lat":41.9,"lon":12.5,"national":true,"country":"Italy"}]`,
			want:  2,
		},
		{
			name:  "WrappedObject",
			input: `{"labels":[{"name":"Sahara","type":"desert","lat":23,"lng":13}]}`,
			want:  1,
		},
		{
			name:  "BadEntryDropped",
			input: `[{"name":"Ok","type":"city","lat":1,"lng":1},{"name":"Bad","lat":"north"}]`,
			want:  1,
		},
		{
			name:    "Empty",
			input:   `[]`,
			wantErr: ErrNoRecords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ParseRecords([]byte(tt.input))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, recs, tt.want)
		})
	}
}

func TestParseRecords_Fields(t *testing.T) {
	recs, err := ParseRecords([]byte(`[
		{"name":"Rome","type":"Capital","lat":41.9,"lon":12.5,"national":true,"country":"Italy","rank":3},
		{"name":"Lost","type":"city","lat":10}
	]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	rome := recs[0]
	assert.Equal(t, model.TypeCapital, rome.Type, "type is canonicalised")
	assert.InDelta(t, 12.5, rome.Lng, 1e-9, "lon accepted as lng")
	assert.True(t, rome.National)
	assert.Equal(t, "Italy", rome.Country)
	assert.Equal(t, 3, rome.Rank)

	assert.True(t, math.IsNaN(recs[1].Lng), "missing coordinate becomes NaN")
	assert.ErrorIs(t, Validate(&recs[1]), ErrBadCoordinate)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Italy","type":"country","lat":42.5,"lng":12.5}]`), 0o644))

	recs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
