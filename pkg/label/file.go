package label

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"globelabels/pkg/model"
)

// rawRecord mirrors the label file schema. Coordinates are pointers so a
// missing value can be told apart from 0.
type rawRecord struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Lon         *float64 `json:"lon"`
	Rank        int      `json:"rank"`
	National    bool     `json:"national"`
	Country     string   `json:"country"`
	Empire      string   `json:"empire"`
	LayerBased  bool     `json:"layerBased"`
	DetailLevel int      `json:"detailLevel"`
}

func (r *rawRecord) toRecord() model.LabelRecord {
	lt, ok := model.ParseLabelType(r.Type)
	if !ok {
		lt = model.LabelType(r.Type)
	}

	lat, lng := math.NaN(), math.NaN()
	if r.Lat != nil {
		lat = *r.Lat
	}
	switch {
	case r.Lng != nil:
		lng = *r.Lng
	case r.Lon != nil:
		lng = *r.Lon
	}

	return model.LabelRecord{
		Name:        r.Name,
		Type:        lt,
		Lat:         lat,
		Lng:         lng,
		Rank:        r.Rank,
		National:    r.National,
		Country:     r.Country,
		Empire:      r.Empire,
		LayerBased:  r.LayerBased,
		DetailLevel: r.DetailLevel,
	}
}

// LoadFile reads the static label file.
func LoadFile(path string) ([]model.LabelRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}
	recs, err := ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label file %s: %w", path, err)
	}
	return recs, nil
}

// ParseRecords decodes a label document: either a bare JSON array of records
// or an object with a "labels" array. Entries that fail to decode are dropped
// individually; validation of the decoded values is left to Store.Append.
func ParseRecords(data []byte) ([]model.LabelRecord, error) {
	var items []json.RawMessage

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Labels []json.RawMessage `json:"labels"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		items = doc.Labels
	} else if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrNoRecords
	}

	out := make([]model.LabelRecord, 0, len(items))
	for _, item := range items {
		var raw rawRecord
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		out = append(out, raw.toRecord())
	}
	return out, nil
}
