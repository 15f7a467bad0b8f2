package label

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/geo/r3"

	"globelabels/pkg/geo"
	"globelabels/pkg/model"
)

// Entry is a loaded record with its precomputed position on the unit sphere.
type Entry struct {
	model.LabelRecord
	ID       string
	Position r3.Vector
	Order    int // Load order; used as the stable tie-break in priority sorting
}

// LoadStats summarises one Append call.
type LoadStats struct {
	Added   int
	Skipped int
	Reasons map[string]int // Skip counts keyed by reason
}

func (s *LoadStats) skip(reason error) {
	s.Skipped++
	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	s.Reasons[reason.Error()]++
}

// Store holds every label of the current load. It is append-only between
// resets; a reload replaces the contents wholesale.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Validate checks that a record can take part in collision resolution.
func Validate(r *model.LabelRecord) error {
	if r.Name == "" {
		return ErrMissingName
	}
	if !r.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownType, r.Type)
	}
	if !geo.ValidCoordinate(r.Lat, r.Lng) {
		return ErrBadCoordinate
	}
	return nil
}

// Append validates and adds records. Malformed records and duplicate IDs are skipped;
// the first record with a given ID wins.
func (s *Store) Append(records ...model.LabelRecord) LoadStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats LoadStats
	for i := range records {
		r := records[i]
		if t, ok := model.ParseLabelType(string(r.Type)); ok {
			r.Type = t
		}
		if err := Validate(&r); err != nil {
			// Group wrapped errors under their sentinel.
			if errors.Is(err, ErrUnknownType) {
				err = ErrUnknownType
			}
			stats.skip(err)
			continue
		}

		id := r.ID()
		if _, dup := s.index[id]; dup {
			stats.skip(ErrDuplicate)
			continue
		}

		s.index[id] = len(s.entries)
		s.entries = append(s.entries, Entry{
			LabelRecord: r,
			ID:          id,
			Position:    geo.ToUnitVector(r.Lat, r.Lng),
			Order:       len(s.entries),
		})
		stats.Added++
	}
	return stats
}

// Replace clears the store and loads records as a fresh set.
func (s *Store) Replace(records ...model.LabelRecord) LoadStats {
	s.Reset()
	return s.Append(records...)
}

// Reset drops every entry.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.index = make(map[string]int)
}

// Len returns the number of loaded entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Entries returns a snapshot of all entries in load order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Lookup returns the entry with the given ID.
func (s *Store) Lookup(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}
