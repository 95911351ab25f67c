package score

// Pitch identifies a sounding pitch by step, chromatic alteration (in
// semitones), and octave (MusicXML octave numbering, middle C = 4).
type Pitch struct {
	Step   string
	Alter  int
	Octave int
}

// Syllabic values for Lyric.Syllabic, per spec.md's glossary.
const (
	SyllabicSingle = "single"
	SyllabicBegin  = "begin"
	SyllabicMiddle = "middle"
	SyllabicEnd    = "end"
)

// Lyric is a text syllable attached to a Note.
type Lyric struct {
	Text     string
	Syllabic string
	Line     int
}

// Clef identifies the staff's predominant clef. OctaveChange is -1 for a
// treble clef sounding an octave lower than written (treble-8vb, used for
// tenor in SATB engraving), 0 otherwise.
type Clef struct {
	Sign         string // "G", "F"
	Line         int    // staff line the clef sits on
	OctaveChange int
}

var (
	ClefTreble    = Clef{Sign: "G", Line: 2, OctaveChange: 0}
	ClefTreble8vb = Clef{Sign: "G", Line: 2, OctaveChange: -1}
	ClefBass      = Clef{Sign: "F", Line: 4, OctaveChange: 0}
)

// Equal reports whether two clefs denote the same sign/line/octave change.
func (c Clef) Equal(o Clef) bool {
	return c.Sign == o.Sign && c.Line == o.Line && c.OctaveChange == o.OctaveChange
}

// TimeSignature is a measure-level time signature mark.
type TimeSignature struct {
	Numerator   int
	Denominator int
}

// KeySignature is a measure-level key signature mark, in fifths (negative
// for flats, positive for sharps).
type KeySignature struct {
	Fifths int
}

// Placement values used by Dynamic.Placement.
const (
	PlacementAbove = "above"
	PlacementBelow = "below"
)

// Dynamic is a dynamic mark (p, f, mp, ...) placed at a measure offset.
type Dynamic struct {
	Offset    Rational
	Text      string
	Placement string
	Staff     int
}

// TempoMark is a tempo/metronome mark placed at a measure offset.
type TempoMark struct {
	Offset Rational
	Text   string
	BPM    float64
}

// RehearsalMark is a rehearsal letter/number placed at a measure offset.
type RehearsalMark struct {
	Offset Rational
	Text   string
}

// Layout mark kinds.
const (
	LayoutSystemBreak = "system-break"
	LayoutPageBreak    = "page-break"
)

// LayoutMark is a system/page break placed at a measure offset (offset 0
// for the start-of-measure break convention used throughout this pipeline).
type LayoutMark struct {
	Offset Rational
	Kind   string
}

// SpannerType distinguishes the first-class spanner variants the pipeline
// reasons about. "Line" covers any other untyped line spanner the input
// preserves but that the unifier never creates or copies itself.
type SpannerType int

const (
	SpannerSlur SpannerType = iota
	SpannerTie
	SpannerCrescendo
	SpannerDiminuendo
	SpannerLine
)

func (t SpannerType) String() string {
	switch t {
	case SpannerSlur:
		return "slur"
	case SpannerTie:
		return "tie"
	case SpannerCrescendo:
		return "crescendo"
	case SpannerDiminuendo:
		return "diminuendo"
	case SpannerLine:
		return "line"
	default:
		return "unknown"
	}
}

// IsWedge reports whether t is a crescendo or diminuendo hairpin.
func (t SpannerType) IsWedge() bool {
	return t == SpannerCrescendo || t == SpannerDiminuendo
}

// Spanner is a first-class entity connecting an ordered list of Notes by
// identity. Spanners live in Score.Spanners, never inside a Measure.
type Spanner struct {
	Type      SpannerType
	Notes     []*Note
	Placement string
}

// FirstNote returns the spanner's first endpoint, or nil if it has none.
func (s *Spanner) FirstNote() *Note {
	if len(s.Notes) == 0 {
		return nil
	}
	return s.Notes[0]
}

// LastNote returns the spanner's last endpoint, or nil if it has none.
func (s *Spanner) LastNote() *Note {
	if len(s.Notes) == 0 {
		return nil
	}
	return s.Notes[len(s.Notes)-1]
}
