package label

import (
	"log/slog"

	"globelabels/pkg/model"
)

// Sources lists every input contributing records to one load.
type Sources struct {
	File    string                        // Static label file (required)
	Layers  map[model.FeatureLayer]string // Vector layers (optional)
	Empires string                        // Empire metadata (optional)
}

// LoadAll reads the label file, then the vector layers, then the empire
// metadata, in that order. Only a failure of the static label file is fatal.
func LoadAll(src Sources) ([]model.LabelRecord, error) {
	recs, err := LoadFile(src.File)
	if err != nil {
		return nil, err
	}

	recs = append(recs, LoadFeatureLayers(src.Layers)...)

	if src.Empires != "" {
		empireRecs, err := LoadEmpireLayer(src.Empires)
		if err != nil {
			slog.Warn("Empire labels unavailable", "path", src.Empires, "error", err)
		} else {
			recs = append(recs, empireRecs...)
		}
	}

	return recs, nil
}
