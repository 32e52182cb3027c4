package score

import "github.com/roach88/songtab/internal/record"

// SectionSummary counts the events grouped under one section name.
type SectionSummary struct {
	Name    string `json:"name"`
	Notes   int    `json:"notes"`
	Harmony int    `json:"harmony"`
}

// Summary is a compact description of a Song.
type Summary struct {
	Name          string           `json:"name"`
	TimeSignature record.Value     `json:"time_signature,omitempty"`
	Notes         int              `json:"notes"`
	Harmony       int              `json:"harmony"`
	SectionNames  []string         `json:"section_names"`
	Sections      []SectionSummary `json:"sections"`
}

// Summary reports counts per distinct section name, in order of first
// appearance.
func (s *Song) Summary() Summary {
	sum := Summary{
		Name:         s.name,
		Notes:        len(s.notes),
		Harmony:      len(s.harmony),
		SectionNames: s.SectionNames(),
		Sections:     []SectionSummary{},
	}
	if ts, ok := s.TimeSignature(); ok {
		sum.TimeSignature = ts
	}

	seen := make(map[string]bool)
	for _, name := range s.sectionNames {
		if seen[name] {
			continue
		}
		seen[name] = true
		g := s.groupings[name]
		sum.Sections = append(sum.Sections, SectionSummary{
			Name:    name,
			Notes:   len(g.Notes),
			Harmony: len(g.Harmony),
		})
	}
	return sum
}
