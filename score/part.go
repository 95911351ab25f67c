package score

// Part is a staff-level container with an optional name, a predominant
// clef, and an ordered sequence of Measures.
type Part struct {
	Name     string
	Clef     Clef
	Measures []*Measure
}

// SetClef assigns the part's predominant clef using the model's native
// clef property, rather than the caller manually editing measure elements.
func (p *Part) SetClef(c Clef) {
	p.Clef = c
}

// MeasureByNumber returns the measure with the given number, or nil.
func (p *Part) MeasureByNumber(n int) *Measure {
	for _, m := range p.Measures {
		if m.Number == n {
			return m
		}
	}
	return nil
}

func (p *Part) deepCopy(notes map[*Note]*Note) *Part {
	if p == nil {
		return nil
	}
	out := &Part{Name: p.Name, Clef: p.Clef, Measures: make([]*Measure, len(p.Measures))}
	for i, m := range p.Measures {
		out.Measures[i] = m.deepCopy(notes)
	}
	return out
}
