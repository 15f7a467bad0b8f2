package globe

import (
	"log/slog"
	"time"

	"github.com/golang/geo/s1"

	"globelabels/pkg/config"
	"globelabels/pkg/engine"
	"globelabels/pkg/label"
	"globelabels/pkg/model"
)

// Options configure a Controller.
type Options struct {
	Params       engine.Params
	Inputs       engine.Inputs
	Sources      label.Sources
	FadeDuration time.Duration
	ZoomStep     float64
	Logger       *slog.Logger
}

// OptionsFromConfig maps the application config onto controller options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Params:       ParamsFromConfig(&cfg.Engine),
		Inputs:       InputsFromConfig(&cfg.Toggles),
		Sources:      SourcesFromConfig(&cfg.Data),
		FadeDuration: cfg.Fade.Duration.Std(),
		ZoomStep:     cfg.Engine.ZoomStep,
	}
}

// ParamsFromConfig builds engine tuning. Zero values fall back to engine defaults.
func ParamsFromConfig(cfg *config.EngineConfig) engine.Params {
	p := engine.DefaultParams()
	if cfg.ComfortableSpacing > 0 {
		p.ComfortableSpacing = cfg.ComfortableSpacing
	}
	if cfg.ShrinkFactor > 0 {
		p.ShrinkFactor = cfg.ShrinkFactor
	}
	if cfg.MaxOffsetFactor > 0 {
		p.MaxOffsetFactor = cfg.MaxOffsetFactor
	}
	if cfg.CuddleMargin > 0 {
		p.CuddleMargin = cfg.CuddleMargin
	}
	if cfg.ContinentZoomCutoff > 0 {
		p.ContinentZoomCutoff = cfg.ContinentZoomCutoff
	}
	if cfg.PlanetRadius > 0 {
		p.PlanetRadiusKm = cfg.PlanetRadius.Km()
	}
	if cfg.DefaultRadius > 0 {
		p.DefaultRadius = s1.Angle(cfg.DefaultRadius)
	}
	for name, px := range cfg.PixelSizes {
		if t, ok := model.ParseLabelType(name); ok && px > 0 {
			p.PixelSizes[t] = px
		}
	}
	return p
}

// InputsFromConfig builds the startup inputs snapshot.
func InputsFromConfig(cfg *config.TogglesConfig) engine.Inputs {
	types := make(map[model.LabelType]bool, len(cfg.Types))
	for name, on := range cfg.Types {
		if t, ok := model.ParseLabelType(name); ok {
			types[t] = on
		}
	}
	layers := make(map[model.FeatureLayer]bool, len(cfg.Layers))
	for name, on := range cfg.Layers {
		layers[model.FeatureLayer(name)] = on
	}

	return engine.DefaultInputs().
		WithTypes(types).
		WithLayers(layers).
		WithEmpires(cfg.VisibleEmpires, cfg.EmpireLabels, cfg.AncientCities).
		WithZoom(cfg.ZoomPercent, cfg.KmPerPixel)
}

// SourcesFromConfig lists the label inputs.
func SourcesFromConfig(cfg *config.DataConfig) label.Sources {
	layers := make(map[model.FeatureLayer]string, len(cfg.Layers))
	for name, path := range cfg.Layers {
		layers[model.FeatureLayer(name)] = path
	}
	return label.Sources{
		File:    cfg.LabelFile,
		Layers:  layers,
		Empires: cfg.Empires,
	}
}
