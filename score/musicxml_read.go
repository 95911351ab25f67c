package score

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Read parses the partwise MusicXML produced by Write back into a Score.
// It is deliberately narrow: it understands exactly the shape this package
// writes (single first-pitch chords, the satb-offset extension element for
// unambiguous voice interleaving, direction-based dynamics/tempo/rehearsal
// marks) rather than the full MusicXML grammar, consistent with the
// pipeline treating the musical-object model as a narrow external
// collaborator.
func Read(r io.Reader) (*Score, error) {
	var doc xmlScorePartwise
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing musicxml: %w", err)
	}

	s := &Score{MovementTitle: doc.MovementTitle}
	if doc.Work != nil {
		s.WorkTitle = doc.Work.WorkTitle
	}

	names := make(map[string]string)
	for _, sp := range doc.PartList.ScoreParts {
		names[sp.ID] = sp.PartName.Text
	}

	slurs := make(map[int][]*Note)
	wedges := make(map[int]*wedgeSpan)

	for _, xp := range doc.Parts {
		s.Parts = append(s.Parts, partFromXML(xp, names[xp.ID], slurs, wedges))
	}

	for _, notes := range slurs {
		if len(notes) >= 2 {
			s.Spanners = append(s.Spanners, &Spanner{Type: SpannerSlur, Notes: notes})
		}
	}

	allNotes := s.AllNotes()
	for _, w := range wedges {
		if w.startOffset == nil || w.stopOffset == nil {
			continue
		}
		start := findNoteStartingAt(s, allNotes, w.startMeasure, *w.startOffset)
		stop := findNoteEndingAt(s, allNotes, w.stopMeasure, *w.stopOffset)
		if start != nil && stop != nil {
			s.Spanners = append(s.Spanners, &Spanner{Type: w.typ, Notes: []*Note{start, stop}})
		}
	}

	return s, nil
}

// wedgeSpan accumulates the start/stop position of a crescendo or
// diminuendo hairpin as its two direction elements are parsed, possibly
// across measures. Measure numbers are carried alongside each offset
// since offsets alone reset at the start of every measure.
type wedgeSpan struct {
	typ          SpannerType
	startMeasure int
	startOffset  *Rational
	stopMeasure  int
	stopOffset   *Rational
}

func findNoteStartingAt(s *Score, notes []*Note, measure int, offset Rational) *Note {
	for _, n := range notes {
		mn, ok := s.MeasureNumberOf(n)
		if ok && mn == measure && n.Offset.Equal(offset) {
			return n
		}
	}
	return nil
}

func findNoteEndingAt(s *Score, notes []*Note, measure int, end Rational) *Note {
	for _, n := range notes {
		mn, ok := s.MeasureNumberOf(n)
		if ok && mn == measure && n.Offset.Add(n.Duration).Equal(end) {
			return n
		}
	}
	return nil
}

// recordWedgeDirection folds one <direction><wedge> element into the
// in-progress span for its number, keyed by start ("crescendo"/"diminuendo")
// versus "stop" rather than document order, since a stop can legally arrive
// in either a later or (rarely) the same measure as its start.
func recordWedgeDirection(wedges map[int]*wedgeSpan, w *xmlWedge, measureNumber int, offset Rational) {
	span, ok := wedges[w.Number]
	if !ok {
		span = &wedgeSpan{}
		wedges[w.Number] = span
	}
	switch w.Type {
	case "stop":
		stop := offset
		span.stopMeasure = measureNumber
		span.stopOffset = &stop
	case "diminuendo":
		span.typ = SpannerDiminuendo
		start := offset
		span.startMeasure = measureNumber
		span.startOffset = &start
	default:
		span.typ = SpannerCrescendo
		start := offset
		span.startMeasure = measureNumber
		span.startOffset = &start
	}
}

func partFromXML(xp xmlPart, name string, slurs map[int][]*Note, wedges map[int]*wedgeSpan) *Part {
	p := &Part{Name: name}
	divisions := divisionsPerQuarter

	for _, xm := range xp.Measures {
		if xm.Attributes != nil && xm.Attributes.Divisions > 0 {
			divisions = xm.Attributes.Divisions
		}
		m := &Measure{}
		fmt.Sscanf(xm.Number, "%d", &m.Number)

		if xm.Attributes != nil {
			if xm.Attributes.Key != nil {
				m.KeySignature = &KeySignature{Fifths: xm.Attributes.Key.Fifths}
			}
			if xm.Attributes.Time != nil {
				var num, den int
				fmt.Sscanf(xm.Attributes.Time.Beats, "%d", &num)
				fmt.Sscanf(xm.Attributes.Time.BeatType, "%d", &den)
				m.TimeSignature = &TimeSignature{Numerator: num, Denominator: den}
			}
			if xm.Attributes.Clef != nil {
				m.ClefChange = &Clef{
					Sign:         xm.Attributes.Clef.Sign,
					Line:         xm.Attributes.Clef.Line,
					OctaveChange: xm.Attributes.Clef.ClefOctave,
				}
				if p.Clef.Sign == "" {
					p.Clef = *m.ClefChange
				}
			}
		}

		if xm.Print != nil {
			if xm.Print.NewSystem == "yes" {
				m.Layout = append(m.Layout, &LayoutMark{Offset: Zero, Kind: LayoutSystemBreak})
			}
			if xm.Print.NewPage == "yes" {
				m.Layout = append(m.Layout, &LayoutMark{Offset: Zero, Kind: LayoutPageBreak})
			}
		}

		for _, d := range xm.Directions {
			offset := fromDivisions(offsetOf(d.Offset), divisions)
			switch {
			case d.DirectionType.Dynamics != nil:
				m.Dynamics = append(m.Dynamics, &Dynamic{
					Offset:    offset,
					Text:      dynamicTextFromInner(d.DirectionType.Dynamics.Text),
					Placement: d.Placement,
				})
			case d.DirectionType.Metronome != nil:
				m.Tempos = append(m.Tempos, &TempoMark{
					Offset: offset,
					BPM:    float64(d.DirectionType.Metronome.PerMinute),
					Text:   fmt.Sprintf("%d", d.DirectionType.Metronome.PerMinute),
				})
			case d.DirectionType.Rehearsal != nil:
				m.Rehearsals = append(m.Rehearsals, &RehearsalMark{Offset: offset, Text: d.DirectionType.Rehearsal.Text})
			case d.DirectionType.Wedge != nil:
				recordWedgeDirection(wedges, d.DirectionType.Wedge, m.Number, offset)
			}
		}

		voices := make(map[string]*Voice)
		var order []string
		for _, xn := range xm.Notes {
			vid := xn.Voice
			if vid == "" {
				vid = "1"
			}
			v, ok := voices[vid]
			if !ok {
				v = &Voice{ID: vid}
				voices[vid] = v
				order = append(order, vid)
			}
			el := elementFromXML(xn, divisions)
			if n, ok := el.(*Note); ok && xn.Notations != nil {
				for _, s := range xn.Notations.Slur {
					slurs[s.Number] = append(slurs[s.Number], n)
				}
			}
			v.Elements = append(v.Elements, el)
		}
		for _, vid := range order {
			m.Voices = append(m.Voices, voices[vid])
		}

		p.Measures = append(p.Measures, m)
	}

	return p
}

func offsetOf(o *xmlOffsetElem) int {
	if o == nil {
		return 0
	}
	return o.Value
}

func dynamicTextFromInner(inner string) string {
	// inner looks like "<mf/>"; strip the angle brackets and trailing slash.
	text := inner
	text = trimPrefixSuffix(text, "<", "/>")
	return text
}

func trimPrefixSuffix(s, prefix, suffix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	if len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix {
		s = s[:len(s)-len(suffix)]
	}
	return s
}

func elementFromXML(xn xmlNote, divisions int) Timed {
	offset := fromDivisions(offsetOf(xn.SatbOffset), divisions)
	duration := fromDivisions(xn.Duration, divisions)

	if xn.Rest != nil {
		return &Rest{Offset: offset, Duration: duration}
	}
	if xn.Pitch == nil {
		return &Rest{Offset: offset, Duration: duration}
	}

	n := &Note{
		Offset:   offset,
		Duration: duration,
		Pitch:    Pitch{Step: xn.Pitch.Step, Alter: xn.Pitch.Alter, Octave: xn.Pitch.Octave},
		IsGrace:  xn.Grace != nil,
	}
	for _, l := range xn.Lyrics {
		var line int
		fmt.Sscanf(l.Number, "%d", &line)
		if line == 0 {
			line = 1
		}
		n.Lyrics = append(n.Lyrics, Lyric{Text: l.Text, Syllabic: l.Syllabic, Line: line})
	}
	return n
}

func fromDivisions(v, divisions int) Rational {
	if divisions == 0 {
		divisions = divisionsPerQuarter
	}
	return NewRational(int64(v), int64(divisions))
}
