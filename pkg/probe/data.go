package probe

import (
	"context"
	"fmt"

	"globelabels/pkg/geo"
	"globelabels/pkg/label"
	"globelabels/pkg/model"
)

// ForSources checks every configured label input. Only the static label file is critical;
// a broken layer or empire file just drops those labels.
func ForSources(src label.Sources) []Probe {
	probes := []Probe{{
		Name:     "label file",
		Critical: true,
		Check: func(ctx context.Context) error {
			_, err := label.LoadFile(src.File)
			return err
		},
	}}

	for _, layer := range model.AllFeatureLayers {
		path := src.Layers[layer]
		if path == "" {
			continue
		}
		probes = append(probes, Probe{
			Name:  "layer " + string(layer),
			Check: featureCheck(path),
		})
	}

	if src.Empires != "" {
		probes = append(probes, Probe{
			Name:  "empires",
			Check: featureCheck(src.Empires),
		})
	}
	return probes
}

func featureCheck(path string) CheckFunc {
	return func(ctx context.Context) error {
		fl, err := geo.OpenFeatureLayer(path)
		if err != nil {
			return err
		}
		if fl.Len() == 0 {
			return fmt.Errorf("%s has no features", path)
		}
		return ctx.Err()
	}
}
