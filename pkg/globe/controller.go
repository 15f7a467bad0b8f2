// Package globe serialises the triggers that drive label recomputation and
// turns each pass into renderer updates.
package globe

import (
	"fmt"
	"log/slog"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang/geo/r3"

	"globelabels/pkg/anim"
	"globelabels/pkg/engine"
	"globelabels/pkg/fade"
	"globelabels/pkg/label"
	"globelabels/pkg/metrics"
	"globelabels/pkg/model"
)

// Trigger names what caused a recomputation.
type Trigger string

const (
	TriggerZoom    Trigger = "zoom"
	TriggerToggle  Trigger = "toggle"
	TriggerEmpires Trigger = "empires"
	TriggerAspects Trigger = "aspects"
	TriggerReload  Trigger = "reload"
)

// Update is published after every pass.
type Update struct {
	Seq      uint64               `json:"seq"`
	Trigger  Trigger              `json:"trigger"`
	Visible  []string             `json:"visible"`
	Names    []string             `json:"names"`
	Offsets  map[string]r3.Vector `json:"offsets"`
	Cleared  []string             `json:"cleared,omitempty"` // Countries whose offset was dropped
	Delta    fade.Delta           `json:"delta"`
	Commands []fade.Command       `json:"commands,omitempty"`
	Duration time.Duration        `json:"durationNs"`
}

// Frame carries one animation step.
type Frame struct {
	Opacity   []anim.Frame[float64]   `json:"opacity,omitempty"`
	Positions []anim.Frame[r3.Vector] `json:"positions,omitempty"`
}

// Empty reports whether the frame holds no changes.
func (f *Frame) Empty() bool {
	return len(f.Opacity) == 0 && len(f.Positions) == 0
}

// Sink consumes controller output.
type Sink interface {
	PublishUpdate(u *Update)
	PublishFrame(f *Frame)
}

// State is a read-only view of the controller.
type State struct {
	Seq         uint64               `json:"seq"`
	Labels      int                  `json:"labels"`
	Inputs      engine.Inputs        `json:"inputs"`
	Visible     []string             `json:"visible"`
	Names       []string             `json:"names"`
	Suppressed  int                  `json:"suppressed"`
	Dependent   []string             `json:"dependent"`
	Offsets     map[string]r3.Vector `json:"offsets"`
	LastTrigger Trigger              `json:"lastTrigger"`
}

// Controller owns the label store, the current inputs snapshot and the fade
// state. All triggers are serialised behind one mutex.
type Controller struct {
	mu sync.Mutex

	engine   *engine.Engine
	store    *label.Store
	sources  label.Sources
	inputs   engine.Inputs
	throttle *ZoomThrottle

	result      *engine.Result
	lastTrigger Trigger
	offsets     map[string]r3.Vector
	seq         uint64

	opacity      *anim.Scheduler[float64]
	positions    *anim.Scheduler[r3.Vector]
	fade         *fade.Coordinator
	fadeDuration time.Duration

	sinks  []Sink
	now    func() time.Time
	logger *slog.Logger
}

// NewController creates a Controller with an empty store.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opacity := anim.NewFloatScheduler()

	inputs := opts.Inputs
	if inputs.Types == nil {
		inputs = engine.DefaultInputs()
	}

	return &Controller{
		engine:       engine.New(opts.Params, logger),
		store:        label.NewStore(),
		sources:      opts.Sources,
		inputs:       inputs.Clone(),
		throttle:     NewZoomThrottle(opts.ZoomStep),
		offsets:      make(map[string]r3.Vector),
		opacity:      opacity,
		positions:    anim.NewPositionScheduler(),
		fade:         fade.NewCoordinator(opacity, opts.FadeDuration, logger),
		fadeDuration: opts.FadeDuration,
		now:          time.Now,
		logger:       logger.With("component", "globe"),
	}
}

// AddSink registers a consumer of updates and frames.
func (c *Controller) AddSink(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Reload reads every configured source, replaces the store and recomputes once.
func (c *Controller) Reload() (label.LoadStats, error) {
	recs, err := label.LoadAll(c.sources)
	if err != nil {
		return label.LoadStats{}, fmt.Errorf("failed to load labels: %w", err)
	}
	return c.LoadRecords(recs), nil
}

// LoadRecords replaces the store with recs and recomputes once.
func (c *Controller) LoadRecords(recs []model.LabelRecord) label.LoadStats {
	c.mu.Lock()
	stats := c.store.Replace(recs...)
	for reason, n := range stats.Reasons {
		metrics.RecordsSkippedTotal.WithLabelValues(reason).Add(float64(n))
	}
	c.logger.Info("Labels loaded", "added", stats.Added, "skipped", stats.Skipped)
	for reason, n := range stats.Reasons {
		c.logger.Warn("Label records skipped", "reason", reason, "count", n)
	}

	// A new data set starts from a clean slate.
	c.fade.Reset()
	c.positions.Reset()
	c.offsets = make(map[string]r3.Vector)
	c.throttle.Reset()
	c.throttle.Mark(c.inputs.ZoomPercent)

	u, sinks := c.recomputeLocked(TriggerReload)
	c.mu.Unlock()

	publish(sinks, u)
	return stats
}

// SetZoom updates the zoom. It recomputes only when the integer zoom
// percentage moved by at least the configured step; the return value reports
// whether it did.
func (c *Controller) SetZoom(percent, kmPerPixel float64) bool {
	c.mu.Lock()
	c.inputs = c.inputs.WithZoom(percent, kmPerPixel)
	if !c.throttle.ShouldFire(percent) {
		c.mu.Unlock()
		metrics.ThrottledZoomTotal.Inc()
		return false
	}
	c.throttle.Mark(percent)
	u, sinks := c.recomputeLocked(TriggerZoom)
	c.mu.Unlock()

	publish(sinks, u)
	return true
}

// SetToggles applies type and layer toggles and recomputes.
func (c *Controller) SetToggles(types map[model.LabelType]bool, layers map[model.FeatureLayer]bool) {
	c.apply(TriggerToggle, func(in engine.Inputs) engine.Inputs {
		return in.WithTypes(types).WithLayers(layers)
	})
}

// SetEmpires replaces the empire overlay state and recomputes.
func (c *Controller) SetEmpires(visible []string, empireLabels, ancientCities bool) {
	c.apply(TriggerEmpires, func(in engine.Inputs) engine.Inputs {
		return in.WithEmpires(visible, empireLabels, ancientCities)
	})
}

// SetAspects records measured label aspect ratios and recomputes.
func (c *Controller) SetAspects(aspects map[string]float64) {
	c.apply(TriggerAspects, func(in engine.Inputs) engine.Inputs {
		return in.WithAspects(aspects)
	})
}

func (c *Controller) apply(trigger Trigger, change func(engine.Inputs) engine.Inputs) {
	c.mu.Lock()
	c.inputs = change(c.inputs)
	u, sinks := c.recomputeLocked(trigger)
	c.mu.Unlock()

	publish(sinks, u)
}

// recomputeLocked runs one pass and derives the renderer update. c.mu must be held.
func (c *Controller) recomputeLocked(trigger Trigger) (*Update, []Sink) {
	now := c.now()
	res := c.engine.Recompute(c.store.Entries(), c.inputs)

	ids := make([]string, len(res.Candidates))
	for i := range res.Candidates {
		ids[i] = res.Candidates[i].ID
	}
	delta, cmds := c.fade.Update(ids, res.Visible, now)

	cleared := c.updateOffsetsLocked(res, now)

	c.result = res
	c.lastTrigger = trigger
	c.seq++

	metrics.RecomputesTotal.WithLabelValues(string(trigger)).Inc()
	metrics.RecomputeDurationMs.Observe(float64(res.Duration.Microseconds()) / 1000)
	metrics.VisibleLabels.Set(float64(len(res.Visible)))
	metrics.SuppressedLabels.Set(float64(len(res.Suppressed)))
	metrics.CuddleOffsets.Set(float64(len(res.Offsets)))
	if n := len(delta.Shown); n > 0 {
		metrics.FadeCommandsTotal.WithLabelValues("in").Add(float64(n))
	}
	if n := len(delta.Hidden); n > 0 {
		metrics.FadeCommandsTotal.WithLabelValues("out").Add(float64(n))
	}

	c.logger.Debug("Recompute finished",
		"trigger", trigger,
		"visible", len(res.Visible),
		"shown", len(delta.Shown),
		"hidden", len(delta.Hidden),
		"offsets", len(res.Offsets),
		"cleared", len(cleared))

	u := &Update{
		Seq:      c.seq,
		Trigger:  trigger,
		Visible:  res.VisibleIDs(),
		Names:    res.VisibleNames(),
		Offsets:  maps.Clone(res.Offsets),
		Cleared:  cleared,
		Delta:    delta,
		Commands: cmds,
		Duration: res.Duration,
	}
	return u, append([]Sink(nil), c.sinks...)
}

// updateOffsetsLocked starts position tweens towards the new cuddle offsets
// and back to the anchor for countries whose offset disappeared. It returns
// the cleared country names.
func (c *Controller) updateOffsetsLocked(res *engine.Result, now time.Time) []string {
	anchor := func(country string) (r3.Vector, bool) {
		if cand, ok := res.Candidate(model.LabelID(country, model.TypeCountry)); ok {
			return cand.Position, true
		}
		if e, ok := c.store.Lookup(model.LabelID(country, model.TypeCountry)); ok {
			return e.Position, true
		}
		return r3.Vector{}, false
	}

	var cleared []string
	for country := range c.offsets {
		if _, still := res.Offsets[country]; still {
			continue
		}
		cleared = append(cleared, country)
		if pos, ok := anchor(country); ok {
			c.positions.Start(model.LabelID(country, model.TypeCountry), pos, pos, c.fadeDuration, now)
		}
	}
	sort.Strings(cleared)

	for country, off := range res.Offsets {
		if prev, ok := c.offsets[country]; ok && prev == off {
			continue
		}
		pos, ok := anchor(country)
		if !ok {
			continue
		}
		c.positions.Start(model.LabelID(country, model.TypeCountry), pos, engine.ApplyOffset(pos, off), c.fadeDuration, now)
	}

	c.offsets = maps.Clone(res.Offsets)
	if c.offsets == nil {
		c.offsets = make(map[string]r3.Vector)
	}
	return cleared
}

// Advance steps all running tweens to now and publishes the frame when anything moved.
func (c *Controller) Advance(now time.Time) *Frame {
	c.mu.Lock()
	f := &Frame{
		Opacity:   c.opacity.Step(now),
		Positions: c.positions.Step(now),
	}
	if f.Empty() {
		c.mu.Unlock()
		return f
	}

	// A country back on its anchor no longer needs a tracked position.
	for _, p := range f.Positions {
		if !p.Done {
			continue
		}
		if _, displaced := c.offsets[strings.TrimPrefix(p.Key, string(model.TypeCountry)+":")]; !displaced {
			c.positions.Forget(p.Key)
		}
	}
	sinks := append([]Sink(nil), c.sinks...)
	c.mu.Unlock()

	for _, s := range sinks {
		s.PublishFrame(f)
	}
	return f
}

// Inputs returns the current inputs snapshot.
func (c *Controller) Inputs() engine.Inputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputs.Clone()
}

// Result returns the latest pass, or nil before the first one.
func (c *Controller) Result() *engine.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Offset returns the current cuddle offset for a country name.
func (c *Controller) Offset(country string) (r3.Vector, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	off, ok := c.offsets[country]
	return off, ok
}

// IsShown reports the fade state of a label ID.
func (c *Controller) IsShown(id string) bool {
	return c.fade.IsShown(id)
}

// State returns a snapshot for inspection.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Seq:         c.seq,
		Labels:      c.store.Len(),
		Inputs:      c.inputs.Clone(),
		Offsets:     maps.Clone(c.offsets),
		LastTrigger: c.lastTrigger,
		Visible:     []string{},
		Names:       []string{},
	}
	if c.result != nil {
		st.Visible = c.result.VisibleIDs()
		st.Names = c.result.VisibleNames()
		st.Suppressed = len(c.result.Suppressed)
		st.Dependent = c.result.Dependent
	}
	return st
}

func publish(sinks []Sink, u *Update) {
	for _, s := range sinks {
		s.PublishUpdate(u)
	}
}
