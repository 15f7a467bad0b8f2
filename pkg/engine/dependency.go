package engine

import (
	"globelabels/pkg/model"
)

// ApplyDependencies removes every visible capital whose parent country is not
// visible. visible is modified in place; the removed IDs are returned in
// candidate order. A removed capital is never re-admitted within the pass.
func ApplyDependencies(cands []Candidate, visible map[string]bool) []string {
	var removed []string
	for i := range cands {
		c := &cands[i]
		if c.Type != model.TypeCapital || c.Country == "" || !visible[c.ID] {
			continue
		}
		if !visible[model.LabelID(c.Country, model.TypeCountry)] {
			delete(visible, c.ID)
			removed = append(removed, c.ID)
		}
	}
	return removed
}
