package score

// MusicXML read/write. The struct shapes and the xml.MarshalIndent +
// xml.Header pattern are grounded on the only MusicXML-writing code found
// in the retrieval pack (sergei-shchetnikov/go-cantus-firmus's
// musicxml_generator.go); this package extends that shape to the
// multi-part, multi-voice, dynamics/lyric/spanner-carrying score the
// pipeline needs.

import (
	"encoding/xml"
	"fmt"
	"io"
	"math/big"
)

// divisionsPerQuarter is the MusicXML <divisions> value used for every
// exported part: the number of MusicXML "duration" units per quarter note.
// Chosen high enough to represent the rhythms this pipeline is expected to
// see (down to 64th-note triplets) without rounding error.
const divisionsPerQuarter = 768

type xmlScorePartwise struct {
	XMLName       xml.Name     `xml:"score-partwise"`
	Work          *xmlWork     `xml:"work,omitempty"`
	MovementTitle string       `xml:"movement-title,omitempty"`
	PartList      xmlPartList  `xml:"part-list"`
	Parts         []xmlPart    `xml:"part"`
}

type xmlWork struct {
	WorkTitle string `xml:"work-title,omitempty"`
}

type xmlPartList struct {
	ScoreParts []xmlScorePart `xml:"score-part"`
}

type xmlScorePart struct {
	ID       string      `xml:"id,attr"`
	PartName xmlPartName `xml:"part-name"`
}

type xmlPartName struct {
	Text string `xml:",chardata"`
}

type xmlPart struct {
	ID       string        `xml:"id,attr"`
	Measures []xmlMeasure  `xml:"measure"`
}

type xmlMeasure struct {
	Number     string          `xml:"number,attr"`
	Attributes *xmlAttributes  `xml:"attributes,omitempty"`
	Directions []xmlDirection  `xml:"direction"`
	Print      *xmlPrint       `xml:"print,omitempty"`
	Notes      []xmlNote       `xml:"note"`
}

type xmlPrint struct {
	NewSystem string `xml:"new-system,attr,omitempty"`
	NewPage   string `xml:"new-page,attr,omitempty"`
}

type xmlAttributes struct {
	Divisions int      `xml:"divisions,omitempty"`
	Key       *xmlKey  `xml:"key,omitempty"`
	Time      *xmlTime `xml:"time,omitempty"`
	Clef      *xmlClef `xml:"clef,omitempty"`
}

type xmlKey struct {
	Fifths int `xml:"fifths"`
}

type xmlTime struct {
	Beats    string `xml:"beats"`
	BeatType string `xml:"beat-type"`
}

type xmlClef struct {
	Sign         string `xml:"sign"`
	Line         int    `xml:"line"`
	ClefOctave   int    `xml:"clef-octave-change,omitempty"`
}

type xmlDirection struct {
	Placement     string            `xml:"placement,attr,omitempty"`
	DirectionType xmlDirectionType  `xml:"direction-type"`
	Sound         *xmlSound         `xml:"sound,omitempty"`
	Offset        *xmlOffsetElem    `xml:"offset,omitempty"`
}

type xmlOffsetElem struct {
	Value int `xml:",chardata"`
}

type xmlDirectionType struct {
	Dynamics   *xmlDynamicsText `xml:"dynamics,omitempty"`
	Wedge      *xmlWedge        `xml:"wedge,omitempty"`
	Metronome  *xmlMetronome    `xml:"metronome,omitempty"`
	Rehearsal  *xmlRehearsal    `xml:"rehearsal,omitempty"`
}

// xmlDynamicsText captures a dynamic mark by its element name (p, f, mp,
// ...). MusicXML models dynamics as an element named after the mark
// itself; we keep the literal text instead and marshal it by hand where a
// generic encoder would not express that naturally.
type xmlDynamicsText struct {
	Text string `xml:",innerxml"`
}

type xmlWedge struct {
	Type   string `xml:"type,attr"`
	Number int    `xml:"number,attr,omitempty"`
}

type xmlMetronome struct {
	BeatUnit  string `xml:"beat-unit"`
	PerMinute int    `xml:"per-minute"`
}

type xmlRehearsal struct {
	Text string `xml:",chardata"`
}

type xmlSound struct {
	Tempo float64 `xml:"tempo,attr"`
}

type xmlNote struct {
	Pitch      *xmlPitch      `xml:"pitch,omitempty"`
	Rest       *xmlRest       `xml:"rest,omitempty"`
	Grace      *xmlGrace      `xml:"grace,omitempty"`
	Duration   int            `xml:"duration,omitempty"`
	Voice      string         `xml:"voice,omitempty"`
	Type       string         `xml:"type,omitempty"`
	Tie        []xmlTie       `xml:"tie,omitempty"`
	Lyrics     []xmlLyric     `xml:"lyric,omitempty"`
	Notations  *xmlNotations  `xml:"notations,omitempty"`
	SatbOffset *xmlOffsetElem `xml:"satb-offset,omitempty"`
}

type xmlGrace struct{}

type xmlPitch struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

type xmlRest struct{}

type xmlTie struct {
	Type string `xml:"type,attr"`
}

type xmlLyric struct {
	Number   string `xml:"number,attr,omitempty"`
	Syllabic string `xml:"syllabic,omitempty"`
	Text     string `xml:"text"`
}

type xmlNotations struct {
	Slur []xmlSlur `xml:"slur,omitempty"`
	Tied []xmlTie  `xml:"tied,omitempty"`
}

type xmlSlur struct {
	Type   string `xml:"type,attr"`
	Number int    `xml:"number,attr,omitempty"`
}

// Write serializes s to MusicXML (partwise) form.
func Write(w io.Writer, s *Score) error {
	doc := toXML(s)
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling musicxml: %w", err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// spannerArtifacts precomputes, for every Spanner in a Score, the XML
// fragments needed to round-trip it: slur start/stop markers attached
// to their endpoint notes, and wedge start/stop directions attached to
// the measure housing each endpoint.
type spannerArtifacts struct {
	slurs           map[*Note][]xmlSlur
	wedgeDirections map[*Measure][]xmlDirection
}

func buildSpannerArtifacts(s *Score) spannerArtifacts {
	art := spannerArtifacts{slurs: map[*Note][]xmlSlur{}, wedgeDirections: map[*Measure][]xmlDirection{}}
	noteMeasure := make(map[*Note]*Measure)
	for _, p := range s.Parts {
		for _, m := range p.Measures {
			for _, v := range m.Voices {
				for _, n := range v.Notes() {
					noteMeasure[n] = m
				}
			}
		}
	}

	for i, sp := range s.Spanners {
		number := i + 1
		first, last := sp.FirstNote(), sp.LastNote()
		if first == nil || last == nil {
			continue
		}

		switch {
		case sp.Type == SpannerSlur:
			art.slurs[first] = append(art.slurs[first], xmlSlur{Type: "start", Number: number})
			if last != first {
				art.slurs[last] = append(art.slurs[last], xmlSlur{Type: "stop", Number: number})
			}
		case sp.Type.IsWedge():
			wedgeType := "crescendo"
			if sp.Type == SpannerDiminuendo {
				wedgeType = "diminuendo"
			}
			if m, ok := noteMeasure[first]; ok {
				art.wedgeDirections[m] = append(art.wedgeDirections[m], xmlDirection{
					Placement:     sp.Placement,
					DirectionType: xmlDirectionType{Wedge: &xmlWedge{Type: wedgeType, Number: number}},
					Offset:        &xmlOffsetElem{Value: toDivisions(first.Offset)},
				})
			}
			if m, ok := noteMeasure[last]; ok {
				art.wedgeDirections[m] = append(art.wedgeDirections[m], xmlDirection{
					DirectionType: xmlDirectionType{Wedge: &xmlWedge{Type: "stop", Number: number}},
					Offset:        &xmlOffsetElem{Value: toDivisions(last.Offset.Add(last.Duration))},
				})
			}
		}
	}
	return art
}

func toXML(s *Score) xmlScorePartwise {
	doc := xmlScorePartwise{
		MovementTitle: s.MovementTitle,
	}
	if s.WorkTitle != "" {
		doc.Work = &xmlWork{WorkTitle: s.WorkTitle}
	}

	art := buildSpannerArtifacts(s)

	for i, p := range s.Parts {
		id := fmt.Sprintf("P%d", i+1)
		doc.PartList.ScoreParts = append(doc.PartList.ScoreParts, xmlScorePart{
			ID:       id,
			PartName: xmlPartName{Text: p.Name},
		})
		doc.Parts = append(doc.Parts, partToXML(id, p, art))
	}

	return doc
}

func partToXML(id string, p *Part, art spannerArtifacts) xmlPart {
	out := xmlPart{ID: id}
	for mi, m := range p.Measures {
		out.Measures = append(out.Measures, measureToXML(m, mi == 0, p.Clef, art))
	}
	return out
}

func measureToXML(m *Measure, first bool, clef Clef, art spannerArtifacts) xmlMeasure {
	xm := xmlMeasure{Number: fmt.Sprintf("%d", m.Number)}

	if first || m.TimeSignature != nil || m.KeySignature != nil || m.ClefChange != nil {
		attrs := &xmlAttributes{}
		if first {
			attrs.Divisions = divisionsPerQuarter
		}
		if m.KeySignature != nil {
			attrs.Key = &xmlKey{Fifths: m.KeySignature.Fifths}
		}
		if m.TimeSignature != nil {
			attrs.Time = &xmlTime{
				Beats:    fmt.Sprintf("%d", m.TimeSignature.Numerator),
				BeatType: fmt.Sprintf("%d", m.TimeSignature.Denominator),
			}
		}
		effectiveClef := clef
		if m.ClefChange != nil {
			effectiveClef = *m.ClefChange
		}
		if first || m.ClefChange != nil {
			attrs.Clef = &xmlClef{Sign: effectiveClef.Sign, Line: effectiveClef.Line, ClefOctave: effectiveClef.OctaveChange}
		}
		xm.Attributes = attrs
	}

	for _, l := range m.Layout {
		if l.Kind == LayoutSystemBreak {
			xm.Print = &xmlPrint{NewSystem: "yes"}
		} else if l.Kind == LayoutPageBreak {
			xm.Print = &xmlPrint{NewPage: "yes"}
		}
	}

	for _, d := range m.Dynamics {
		xm.Directions = append(xm.Directions, xmlDirection{
			Placement:     d.Placement,
			DirectionType: xmlDirectionType{Dynamics: &xmlDynamicsText{Text: fmt.Sprintf("<%s/>", d.Text)}},
			Offset:        &xmlOffsetElem{Value: toDivisions(d.Offset)},
		})
	}
	for _, t := range m.Tempos {
		xm.Directions = append(xm.Directions, xmlDirection{
			DirectionType: xmlDirectionType{Metronome: &xmlMetronome{BeatUnit: "quarter", PerMinute: int(t.BPM)}},
			Sound:         &xmlSound{Tempo: t.BPM},
			Offset:        &xmlOffsetElem{Value: toDivisions(t.Offset)},
		})
	}
	for _, r := range m.Rehearsals {
		xm.Directions = append(xm.Directions, xmlDirection{
			DirectionType: xmlDirectionType{Rehearsal: &xmlRehearsal{Text: r.Text}},
			Offset:        &xmlOffsetElem{Value: toDivisions(r.Offset)},
		})
	}

	xm.Directions = append(xm.Directions, art.wedgeDirections[m]...)

	for _, v := range m.Voices {
		for _, el := range v.Elements {
			xm.Notes = append(xm.Notes, elementToXML(el, v.ID, art))
		}
	}

	return xm
}

func elementToXML(el Timed, voiceID string, art spannerArtifacts) xmlNote {
	switch v := el.(type) {
	case *Note:
		n := xmlNote{
			Pitch:      &xmlPitch{Step: v.Pitch.Step, Alter: v.Pitch.Alter, Octave: v.Pitch.Octave},
			Duration:   toDivisions(v.Duration),
			Voice:      voiceID,
			Type:       durationTypeName(v.Duration),
			SatbOffset: &xmlOffsetElem{Value: toDivisions(v.Offset)},
		}
		if v.IsGrace {
			n.Grace = &xmlGrace{}
			n.Duration = 0
		}
		for _, lyr := range v.Lyrics {
			n.Lyrics = append(n.Lyrics, xmlLyric{Syllabic: lyr.Syllabic, Text: lyr.Text, Number: fmt.Sprintf("%d", lyr.Line)})
		}
		if slurs, ok := art.slurs[v]; ok {
			n.Notations = &xmlNotations{Slur: slurs}
		}
		return n
	case *Rest:
		return xmlNote{
			Rest:       &xmlRest{},
			Duration:   toDivisions(v.Duration),
			Voice:      voiceID,
			Type:       durationTypeName(v.Duration),
			SatbOffset: &xmlOffsetElem{Value: toDivisions(v.Offset)},
		}
	case *Chord:
		// Represent only the first pitch in the basic export; chords are
		// not produced by this pipeline's SATB voices but may appear in
		// preserved input content.
		n := xmlNote{Duration: toDivisions(v.Duration), Voice: voiceID, Type: durationTypeName(v.Duration), SatbOffset: &xmlOffsetElem{Value: toDivisions(v.Offset)}}
		if len(v.Pitches) > 0 {
			p := v.Pitches[0]
			n.Pitch = &xmlPitch{Step: p.Step, Alter: p.Alter, Octave: p.Octave}
		}
		return n
	default:
		return xmlNote{Voice: voiceID}
	}
}

func toDivisions(r Rational) int {
	scaled := new(big.Rat).Mul(r.asRat(), new(big.Rat).SetInt64(divisionsPerQuarter))
	num := new(big.Int).Div(scaled.Num(), scaled.Denom())
	return int(num.Int64())
}

func (r Rational) asRat() *big.Rat {
	return &r.r
}

// durationTypeName returns the conventional MusicXML note-type name closest
// to the given duration (in quarter notes): whole, half, quarter, eighth,
// 16th, 32nd, or 64th. Informational only — Duration carries the exact
// value.
func durationTypeName(d Rational) string {
	q := d.Float64()
	switch {
	case q >= 4:
		return "whole"
	case q >= 2:
		return "half"
	case q >= 1:
		return "quarter"
	case q >= 0.5:
		return "eighth"
	case q >= 0.25:
		return "16th"
	case q >= 0.125:
		return "32nd"
	default:
		return "64th"
	}
}
