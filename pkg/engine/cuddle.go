package engine

import (
	"log/slog"
	"math"

	"github.com/golang/geo/r3"

	"globelabels/pkg/geo"
	"globelabels/pkg/logging"
	"globelabels/pkg/model"
)

// SolveCuddles computes, for every visible national capital whose country
// label is also visible, the displacement that moves the country label clear
// of the capital. Offsets are keyed by country name; pairs that do not
// overlap produce no entry. When a country has several capitals the first
// overlapping one in priority order decides.
func SolveCuddles(cands []Candidate, visible map[string]bool, p Params, logger *slog.Logger) map[string]r3.Vector {
	p = p.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	countries := make(map[string]*Candidate)
	var capitals []Candidate
	for i := range cands {
		c := &cands[i]
		if !visible[c.ID] {
			continue
		}
		switch {
		case c.Type == model.TypeCountry:
			countries[c.Name] = c
		case c.NationalCapital && c.Country != "":
			capitals = append(capitals, *c)
		}
	}
	byPriority(capitals)

	offsets := make(map[string]r3.Vector)
	for i := range capitals {
		capital := &capitals[i]
		country, ok := countries[capital.Country]
		if !ok {
			continue
		}
		if _, done := offsets[country.Name]; done {
			continue
		}
		off, ok := CuddleOffset(country, capital, p)
		if !ok {
			continue
		}
		offsets[country.Name] = off
		logging.Trace(logger, "Country label cuddled",
			"country", country.Name,
			"capital", capital.Name,
			"offset", off.Norm())
	}
	return offsets
}

// CuddleOffset returns the displacement for country when its label rectangle
// overlaps the capital's in the tangent plane at the country position.
func CuddleOffset(country, capital *Candidate, p Params) (r3.Vector, bool) {
	p = p.withDefaults()

	tx, ty := geo.TangentBasis(country.Position)
	delta := capital.Position.Sub(country.Position)
	capX, capY := delta.Dot(tx), delta.Dot(ty)

	rC, rK := float64(country.Radius), float64(capital.Radius)
	wC, wK := rC*aspectOrOne(country.Aspect), rK*aspectOrOne(capital.Aspect)

	overlapX := (wC+wK)/2 - math.Abs(capX)
	overlapY := (rC+rK)/2 - math.Abs(capY)
	if overlapX <= 0 || overlapY <= 0 {
		return r3.Vector{}, false
	}

	axis, overlap, toward := tx, overlapX, capX
	if overlapY < overlapX {
		axis, overlap, toward = ty, overlapY, capY
	}

	// Push away from the capital; a capital exactly on the axis pushes negative.
	dir := -1.0
	if toward < 0 {
		dir = 1
	}

	amount := math.Min(overlap*p.CuddleMargin, p.MaxOffsetFactor*rC)
	return axis.Mul(dir * amount), true
}

// ApplyOffset moves pos by offset and projects the result back onto the
// sphere pos lies on.
func ApplyOffset(pos, offset r3.Vector) r3.Vector {
	return geo.Renormalize(pos.Add(offset), pos.Norm())
}

func aspectOrOne(a float64) float64 {
	if a > 0 && !math.IsInf(a, 0) {
		return a
	}
	return 1
}
