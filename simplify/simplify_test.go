package simplify

import (
	"testing"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

func singlePartScore() *score.Score {
	v := &score.Voice{ID: "5", Elements: []score.Timed{&score.Note{Pitch: score.Pitch{Step: "G", Octave: 3}, Duration: score.RationalFromInt(1)}}}
	m := &score.Measure{Number: 1, Voices: []*score.Voice{v}}
	p := &score.Part{Name: "Tenor/Bass", Measures: []*score.Measure{m}}
	return &score.Score{WorkTitle: "Evening Hymn", Parts: []*score.Part{p}}
}

func TestSimplifySetsClefAndName(t *testing.T) {
	s := singlePartScore()
	loc := voiceid.VoiceLocation{PartIndex: 1, VoiceID: "5", ExpectedClef: score.ClefTreble8vb}

	Simplify(s, voiceid.Tenor, loc, s.WorkTitle, "input.mscz")

	if s.Parts[0].Clef != score.ClefTreble8vb {
		t.Errorf("expected treble-8vb clef, got %+v", s.Parts[0].Clef)
	}
	if s.Parts[0].Name != "Tenor" {
		t.Errorf("expected part name Tenor, got %q", s.Parts[0].Name)
	}
	if s.WorkTitle != "Evening Hymn (Tenor)" {
		t.Errorf("unexpected title: %q", s.WorkTitle)
	}
}

func TestSimplifyFallsBackToBasenameWhenTitleEmpty(t *testing.T) {
	s := singlePartScore()
	s.WorkTitle = ""
	loc := voiceid.VoiceLocation{PartIndex: 0, VoiceID: "1", ExpectedClef: score.ClefTreble}

	Simplify(s, voiceid.Soprano, loc, "", "/tmp/convert-9213.musicxml")

	if s.WorkTitle != "convert-9213 (Soprano)" {
		t.Errorf("expected title derived from basename, got %q", s.WorkTitle)
	}
}
