package engine

import (
	"log/slog"
	"sort"
	"time"

	"github.com/golang/geo/r3"

	"globelabels/pkg/label"
)

// Result is the outcome of one recomputation pass.
type Result struct {
	Candidates []Candidate          // Every eligible label, in load order
	Visible    map[string]bool      // Visible label IDs
	Suppressed map[string]bool      // IDs lost to a collision
	Dependent  []string             // Capitals removed because their country is hidden
	Offsets    map[string]r3.Vector // Cuddle displacement by country name
	Duration   time.Duration
}

// VisibleIDs returns the visible IDs sorted.
func (r *Result) VisibleIDs() []string {
	out := make([]string, 0, len(r.Visible))
	for id := range r.Visible {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// VisibleNames returns the distinct names of visible labels, sorted.
func (r *Result) VisibleNames() []string {
	seen := make(map[string]bool, len(r.Visible))
	out := make([]string, 0, len(r.Visible))
	for i := range r.Candidates {
		c := &r.Candidates[i]
		if r.Visible[c.ID] && !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Candidate returns the candidate with the given ID.
func (r *Result) Candidate(id string) (Candidate, bool) {
	for i := range r.Candidates {
		if r.Candidates[i].ID == id {
			return r.Candidates[i], true
		}
	}
	return Candidate{}, false
}

// Engine runs eligibility, collision, dependency and cuddle stages. It holds
// no per-pass state; the same entries and inputs always give the same Result.
type Engine struct {
	params Params
	logger *slog.Logger
}

// New creates an Engine. A nil logger uses slog.Default.
func New(p Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		params: p.withDefaults(),
		logger: logger.With("component", "engine"),
	}
}

// Params returns the engine's effective tuning.
func (e *Engine) Params() Params {
	return e.params
}

// Recompute runs one full pass over entries.
func (e *Engine) Recompute(entries []label.Entry, in Inputs) *Result {
	start := time.Now()

	eligible := EligibleIDs(entries, in, e.params)
	cands := BuildCandidates(entries, eligible, in, e.params)

	suppressed := ResolveCollisions(cands, e.logger)

	visible := make(map[string]bool, len(cands))
	for i := range cands {
		if !suppressed[cands[i].ID] {
			visible[cands[i].ID] = true
		}
	}

	dependent := ApplyDependencies(cands, visible)
	offsets := SolveCuddles(cands, visible, e.params, e.logger)

	res := &Result{
		Candidates: cands,
		Visible:    visible,
		Suppressed: suppressed,
		Dependent:  dependent,
		Offsets:    offsets,
		Duration:   time.Since(start),
	}

	e.logger.Debug("Labels recomputed",
		"records", len(entries),
		"candidates", len(cands),
		"visible", len(visible),
		"suppressed", len(suppressed),
		"dependent", len(dependent),
		"offsets", len(offsets),
		"zoom", in.ZoomPercent,
		"duration", res.Duration)
	return res
}
