package replicate

import (
	"testing"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

func sampleInput() *score.Score {
	n := &score.Note{Pitch: score.Pitch{Step: "C", Octave: 4}, Duration: score.RationalFromInt(1)}
	v := &score.Voice{ID: "1", Elements: []score.Timed{n}}
	m := &score.Measure{Number: 1, Voices: []*score.Voice{v}}
	p := &score.Part{Name: "Soprano/Alto", Measures: []*score.Measure{m}}
	return &score.Score{WorkTitle: "Hymn", Parts: []*score.Part{p}}
}

func TestReplicateProducesFourIndependentCopies(t *testing.T) {
	input := sampleInput()
	set := Replicate(input)

	if len(set) != len(voiceid.All) {
		t.Fatalf("expected %d copies, got %d", len(voiceid.All), len(set))
	}

	sopranoNote := set[voiceid.Soprano].Parts[0].Measures[0].Voices[0].Notes()[0]
	sopranoNote.Pitch.Step = "E"

	altoNote := set[voiceid.Alto].Parts[0].Measures[0].Voices[0].Notes()[0]
	if altoNote.Pitch.Step != "C" {
		t.Errorf("mutating the soprano copy affected the alto copy")
	}
	if input.Parts[0].Measures[0].Voices[0].Notes()[0].Pitch.Step != "C" {
		t.Errorf("mutating the soprano copy affected the original input")
	}
}
