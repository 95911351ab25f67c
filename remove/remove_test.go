package remove

import (
	"testing"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

func note(step string, dur int64) *score.Note {
	return &score.Note{Pitch: score.Pitch{Step: step, Octave: 4}, Duration: score.RationalFromInt(dur)}
}

func twoPartScore() *score.Score {
	soprano := &score.Voice{ID: "1", Elements: []score.Timed{note("C", 1), note("D", 1)}}
	alto := &score.Voice{ID: "2", Elements: []score.Timed{note("E", 1), note("F", 1)}}
	upperMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{soprano, alto}, TimeSignature: &score.TimeSignature{Numerator: 2, Denominator: 4}}
	upperPart := &score.Part{Name: "Soprano/Alto", Measures: []*score.Measure{upperMeasure}}

	tenor := &score.Voice{ID: "5", Elements: []score.Timed{note("G", 1), note("A", 1)}}
	bass := &score.Voice{ID: "6", Elements: []score.Timed{note("B", 1), note("C", 1)}}
	lowerMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{tenor, bass}, TimeSignature: &score.TimeSignature{Numerator: 2, Denominator: 4}}
	lowerPart := &score.Part{Name: "Tenor/Bass", Measures: []*score.Measure{lowerMeasure}}

	return &score.Score{Parts: []*score.Part{upperPart, lowerPart}}
}

func TestRemoveKeepsOnlyTargetVoice(t *testing.T) {
	s := twoPartScore()
	loc := voiceid.VoiceLocation{PartIndex: 0, VoiceID: "1"}

	if err := Remove(s, loc); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if len(s.Parts) != 1 {
		t.Fatalf("expected 1 part after removal, got %d", len(s.Parts))
	}
	m := s.Parts[0].Measures[0]
	if len(m.Voices) != 1 {
		t.Fatalf("expected 1 voice after removal, got %d", len(m.Voices))
	}
	if m.Voices[0].ID != "1" {
		t.Errorf("expected surviving voice id 1, got %s", m.Voices[0].ID)
	}
	notes := m.Voices[0].Notes()
	if len(notes) != 2 || notes[0].Pitch.Step != "C" {
		t.Errorf("unexpected notes after removal: %+v", notes)
	}
}

func TestRemoveInsertsRestWhenVoiceMissing(t *testing.T) {
	s := twoPartScore()
	loc := voiceid.VoiceLocation{PartIndex: 0, VoiceID: "9"}

	if err := Remove(s, loc); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	m := s.Parts[0].Measures[0]
	if len(m.Voices) != 1 {
		t.Fatalf("expected 1 voice after removal, got %d", len(m.Voices))
	}
	els := m.Voices[0].Elements
	if len(els) != 1 {
		t.Fatalf("expected a single full-measure rest, got %d elements", len(els))
	}
	if _, ok := els[0].(*score.Rest); !ok {
		t.Errorf("expected a Rest, got %T", els[0])
	}
	if !els[0].GetDuration().Equal(score.RationalFromInt(2)) {
		t.Errorf("expected rest duration 2 (2/4 time), got %s", els[0].GetDuration())
	}
}

// TestRemoveInsertsRestWhenVoiceEmpty covers the case where the target
// voice exists but carries no elements, distinct from the voice being
// absent entirely: it must still receive a synthesized full-measure
// rest rather than being left as an empty voice.
func TestRemoveInsertsRestWhenVoiceEmpty(t *testing.T) {
	s := twoPartScore()
	s.Parts[0].Measures[0].Voices = append(s.Parts[0].Measures[0].Voices,
		&score.Voice{ID: "9", Elements: nil})
	loc := voiceid.VoiceLocation{PartIndex: 0, VoiceID: "9"}

	if err := Remove(s, loc); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	m := s.Parts[0].Measures[0]
	if len(m.Voices) != 1 {
		t.Fatalf("expected 1 voice after removal, got %d", len(m.Voices))
	}
	els := m.Voices[0].Elements
	if len(els) != 1 {
		t.Fatalf("expected a single full-measure rest, got %d elements", len(els))
	}
	if _, ok := els[0].(*score.Rest); !ok {
		t.Errorf("expected a Rest, got %T", els[0])
	}
	if !els[0].GetDuration().Equal(score.RationalFromInt(2)) {
		t.Errorf("expected rest duration 2 (2/4 time), got %s", els[0].GetDuration())
	}
}

func TestRemoveRepairsDanglingSpanners(t *testing.T) {
	s := twoPartScore()
	n1 := s.Parts[0].Measures[0].Voices[1].Notes()[0] // alto note, will be removed
	n2 := s.Parts[1].Measures[0].Voices[0].Notes()[0] // tenor note, will be removed too
	s.Spanners = append(s.Spanners, &score.Spanner{Type: score.SpannerSlur, Notes: []*score.Note{n1, n2}})

	loc := voiceid.VoiceLocation{PartIndex: 0, VoiceID: "1"}
	if err := Remove(s, loc); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	if len(s.Spanners) != 0 {
		t.Errorf("expected dangling spanner across removed voices to be dropped, got %d", len(s.Spanners))
	}
}

func TestRemoveRejectsOutOfRangePart(t *testing.T) {
	s := twoPartScore()
	loc := voiceid.VoiceLocation{PartIndex: 5, VoiceID: "1"}
	if err := Remove(s, loc); err == nil {
		t.Errorf("expected error for out-of-range part index")
	}
}
