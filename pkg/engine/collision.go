package engine

import (
	"log/slog"
	"sort"

	"globelabels/pkg/geo"
	"globelabels/pkg/logging"
)

// byPriority orders candidates highest priority first, then by load order.
func byPriority(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Priority != cands[j].Priority {
			return cands[i].Priority > cands[j].Priority
		}
		return cands[i].Order < cands[j].Order
	})
}

// partition groups candidates by collision layer, keeping input order within each.
func partition(cands []Candidate) map[Layer][]Candidate {
	out := make(map[Layer][]Candidate, len(Layers))
	for i := range cands {
		out[cands[i].Layer] = append(out[cands[i].Layer], cands[i])
	}
	return out
}

// ResolveCollisions runs the greedy sweep in every layer and returns the IDs
// of suppressed candidates. A kept label suppresses every lower-ranked label
// of its layer closer than the sum of both radii.
func ResolveCollisions(cands []Candidate, logger *slog.Logger) map[string]bool {
	if logger == nil {
		logger = slog.Default()
	}
	suppressed := make(map[string]bool)

	groups := partition(cands)
	for _, layer := range Layers {
		group := groups[layer]
		byPriority(group)

		for i := range group {
			if suppressed[group[i].ID] {
				continue
			}
			for j := i + 1; j < len(group); j++ {
				if suppressed[group[j].ID] {
					continue
				}
				d := geo.AngularDistance(group[i].Position, group[j].Position)
				if d < group[i].Radius+group[j].Radius {
					suppressed[group[j].ID] = true
					logging.Trace(logger, "Label suppressed",
						"label", group[j].ID,
						"by", group[i].ID,
						"layer", layer,
						"distance", d.Radians())
				}
			}
		}
	}
	return suppressed
}
