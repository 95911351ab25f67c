package score

// Score is the root container: metadata plus an ordered sequence of Parts,
// plus the score-wide spanner collection.
type Score struct {
	WorkTitle     string
	MovementTitle string
	Composer      string
	Lyricist      string
	Parts         []*Part
	Spanners      []*Spanner
}

// DeepCopy produces an independent copy of the score: mutating the copy
// never affects the original or any other copy, and spanner endpoint
// references are remapped to point at the copy's own Notes.
func (s *Score) DeepCopy() *Score {
	notes := make(map[*Note]*Note)

	out := &Score{
		WorkTitle:     s.WorkTitle,
		MovementTitle: s.MovementTitle,
		Composer:      s.Composer,
		Lyricist:      s.Lyricist,
		Parts:         make([]*Part, len(s.Parts)),
	}
	for i, p := range s.Parts {
		out.Parts[i] = p.deepCopy(notes)
	}

	out.Spanners = make([]*Spanner, 0, len(s.Spanners))
	for _, sp := range s.Spanners {
		newNotes := make([]*Note, 0, len(sp.Notes))
		for _, n := range sp.Notes {
			if cp, ok := notes[n]; ok {
				newNotes = append(newNotes, cp)
			}
		}
		out.Spanners = append(out.Spanners, &Spanner{
			Type:      sp.Type,
			Notes:     newNotes,
			Placement: sp.Placement,
		})
	}

	return out
}

// AllNotes returns every Note reachable from the score's Parts, in
// Part/Measure/Voice/Element order.
func (s *Score) AllNotes() []*Note {
	var out []*Note
	for _, p := range s.Parts {
		for _, m := range p.Measures {
			for _, v := range m.Voices {
				out = append(out, v.Notes()...)
			}
		}
	}
	return out
}

// MeasureNumberOf returns the Number of the Measure containing n, and
// true, or (0, false) if n is not reachable from the score's Parts.
// Offsets are measure-relative, so callers comparing positions across
// measure boundaries must qualify them with this first.
func (s *Score) MeasureNumberOf(n *Note) (int, bool) {
	for _, p := range s.Parts {
		for _, m := range p.Measures {
			for _, v := range m.Voices {
				for _, vn := range v.Notes() {
					if vn == n {
						return m.Number, true
					}
				}
			}
		}
	}
	return 0, false
}

// liveNoteSet returns the set of Notes currently reachable from the
// score's Parts. Used to repair spanners after voice removal.
func (s *Score) liveNoteSet() map[*Note]bool {
	live := make(map[*Note]bool)
	for _, n := range s.AllNotes() {
		live[n] = true
	}
	return live
}

// RepairSpanners removes spanners that reference a Note no longer present
// in the score, and spanners with fewer than two Notes. Spanners are never
// repaired by dropping or inventing endpoints.
func (s *Score) RepairSpanners() {
	live := s.liveNoteSet()
	kept := s.Spanners[:0]
	for _, sp := range s.Spanners {
		survivors := make([]*Note, 0, len(sp.Notes))
		for _, n := range sp.Notes {
			if live[n] {
				survivors = append(survivors, n)
			}
		}
		if len(survivors) < 2 || len(survivors) != len(sp.Notes) {
			continue
		}
		kept = append(kept, sp)
	}
	s.Spanners = kept
}
