// Package fade turns successive visible sets into fade-in and fade-out commands.
package fade

import "sort"

// Delta lists the keys whose visibility flipped, each sorted.
type Delta struct {
	Shown  []string `json:"shown"`
	Hidden []string `json:"hidden"`
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool {
	return len(d.Shown) == 0 && len(d.Hidden) == 0
}

// Universe returns every key a diff must consider: the candidates of this
// pass plus every key currently shown, so labels that stopped being
// candidates still fade out.
func Universe(candidates []string, prev map[string]bool) []string {
	seen := make(map[string]bool, len(candidates)+len(prev))
	out := make([]string, 0, len(candidates)+len(prev))
	for _, k := range candidates {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for k, shown := range prev {
		if shown && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Diff compares the previous state with the new visible set over universe.
// It does not modify its arguments.
func Diff(prev map[string]bool, universe []string, visible map[string]bool) Delta {
	var d Delta
	for _, k := range universe {
		was, now := prev[k], visible[k]
		switch {
		case now && !was:
			d.Shown = append(d.Shown, k)
		case was && !now:
			d.Hidden = append(d.Hidden, k)
		}
	}
	sort.Strings(d.Shown)
	sort.Strings(d.Hidden)
	return d
}

// Apply records d in state.
func Apply(state map[string]bool, d Delta) {
	for _, k := range d.Shown {
		state[k] = true
	}
	for _, k := range d.Hidden {
		state[k] = false
	}
}
