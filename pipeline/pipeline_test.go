package pipeline

import (
	"testing"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

func note(step string, octave int, offset, dur int64) *score.Note {
	return &score.Note{
		Pitch:    score.Pitch{Step: step, Octave: octave},
		Offset:   score.RationalFromInt(offset),
		Duration: score.RationalFromInt(dur),
	}
}

func satbInput() *score.Score {
	soprano := &score.Voice{ID: "1", Elements: []score.Timed{note("C", 5, 0, 4)}}
	alto := &score.Voice{ID: "2", Elements: []score.Timed{note("A", 4, 0, 4)}}
	upperMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{soprano, alto}, TimeSignature: &score.TimeSignature{Numerator: 4, Denominator: 4}}
	upperPart := &score.Part{Name: "Soprano/Alto", Measures: []*score.Measure{upperMeasure}}

	tenor := &score.Voice{ID: "5", Elements: []score.Timed{note("F", 3, 0, 4)}}
	bass := &score.Voice{ID: "6", Elements: []score.Timed{note("C", 3, 0, 4)}}
	lowerMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{tenor, bass}, TimeSignature: &score.TimeSignature{Numerator: 4, Denominator: 4}}
	lowerPart := &score.Part{Name: "Tenor/Bass", Measures: []*score.Measure{lowerMeasure}}

	return &score.Score{WorkTitle: "Test Hymn", Parts: []*score.Part{upperPart, lowerPart}}
}

func TestRunProducesFourValidatedVoices(t *testing.T) {
	input := satbInput()
	result, err := Run(input, input.WorkTitle, "test.mscz", DefaultOptions())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(result.Scores) != len(voiceid.All) {
		t.Fatalf("expected %d split scores, got %d", len(voiceid.All), len(result.Scores))
	}

	bass := result.Scores[voiceid.Bass]
	if bass.Parts[0].Clef != score.ClefBass {
		t.Errorf("expected bass clef, got %+v", bass.Parts[0].Clef)
	}
	if bass.WorkTitle != "Test Hymn (Bass)" {
		t.Errorf("unexpected bass title: %q", bass.WorkTitle)
	}
}

func TestRunRejectsNonCanonicalScore(t *testing.T) {
	input := &score.Score{Parts: []*score.Part{{}}}
	_, err := Run(input, "", "test.mscz", DefaultOptions())
	if err == nil {
		t.Fatalf("expected error for a score with only one part")
	}
	if _, ok := err.(*VoiceDetectionError); !ok {
		t.Errorf("expected a *VoiceDetectionError, got %T", err)
	}
}

func TestRunWithUnifierStagesDisabled(t *testing.T) {
	input := satbInput()
	opts := Options{Validate: true}
	result, err := Run(input, input.WorkTitle, "test.mscz", opts)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Scores) != len(voiceid.All) {
		t.Fatalf("expected %d split scores, got %d", len(voiceid.All), len(result.Scores))
	}
}
