package score

// Measure is an indexed, time-bounded container holding Voices plus
// measure-level non-voice elements: time/key signatures, clef changes,
// dynamics, tempo marks, rehearsal marks, and layout marks.
type Measure struct {
	Number        int
	Voices        []*Voice
	TimeSignature *TimeSignature
	KeySignature  *KeySignature
	ClefChange    *Clef
	Dynamics      []*Dynamic
	Tempos        []*TempoMark
	Rehearsals    []*RehearsalMark
	Layout        []*LayoutMark
}

// VoiceByID returns the Voice with the given id, or nil if absent.
func (m *Measure) VoiceByID(id string) *Voice {
	for _, v := range m.Voices {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// DynamicAt returns the first Dynamic at the given offset, whatever its
// text, or nil. Used by the unifier's duplicate-suppression check.
func (m *Measure) DynamicAt(offset Rational) *Dynamic {
	for _, d := range m.Dynamics {
		if d.Offset.Equal(offset) {
			return d
		}
	}
	return nil
}

func (m *Measure) deepCopy(notes map[*Note]*Note) *Measure {
	if m == nil {
		return nil
	}
	out := &Measure{
		Number: m.Number,
		Voices: make([]*Voice, len(m.Voices)),
	}
	for i, v := range m.Voices {
		out.Voices[i] = v.deepCopy(notes)
	}
	for _, d := range m.Dynamics {
		dCopy := *d
		out.Dynamics = append(out.Dynamics, &dCopy)
	}
	for _, t := range m.Tempos {
		tCopy := *t
		out.Tempos = append(out.Tempos, &tCopy)
	}
	for _, r := range m.Rehearsals {
		rCopy := *r
		out.Rehearsals = append(out.Rehearsals, &rCopy)
	}
	for _, l := range m.Layout {
		lCopy := *l
		out.Layout = append(out.Layout, &lCopy)
	}
	if m.TimeSignature != nil {
		ts := *m.TimeSignature
		out.TimeSignature = &ts
	}
	if m.KeySignature != nil {
		ks := *m.KeySignature
		out.KeySignature = &ks
	}
	if m.ClefChange != nil {
		cc := *m.ClefChange
		out.ClefChange = &cc
	}
	return out
}
