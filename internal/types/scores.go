package types

import (
	"encoding/json"
	"fmt"
)

// TotalKey is the reserved key holding the grand total in the flat score map.
const TotalKey = "total"

// ScoreSet holds per-section totals and their sum.
// It serializes to the flat form {"foundations": 9, ..., "total": 71}.
type ScoreSet struct {
	Sections map[string]int
	Total    int
}

// Section returns the total for a section, or 0 if it is absent.
func (s ScoreSet) Section(id string) int {
	return s.Sections[id]
}

// MarshalJSON implements json.Marshaler.
func (s ScoreSet) MarshalJSON() ([]byte, error) {
	flat := make(map[string]int, len(s.Sections)+1)
	for id, score := range s.Sections {
		flat[id] = score
	}
	flat[TotalKey] = s.Total
	return json.Marshal(flat)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScoreSet) UnmarshalJSON(data []byte) error {
	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("failed to parse scores: %w", err)
	}
	s.Sections = make(map[string]int, len(flat))
	s.Total = 0
	for id, score := range flat {
		if id == TotalKey {
			s.Total = score
			continue
		}
		s.Sections[id] = score
	}
	return nil
}

// Equal reports whether two score sets carry identical totals.
func (s ScoreSet) Equal(other ScoreSet) bool {
	if s.Total != other.Total || len(s.Sections) != len(other.Sections) {
		return false
	}
	for id, score := range s.Sections {
		if v, ok := other.Sections[id]; !ok || v != score {
			return false
		}
	}
	return true
}
