package score

import "testing"

func sampleScore() *Score {
	n1 := &Note{Offset: Zero, Duration: RationalFromInt(1), Pitch: Pitch{Step: "C", Octave: 4}}
	n2 := &Note{Offset: RationalFromInt(1), Duration: RationalFromInt(1), Pitch: Pitch{Step: "D", Octave: 4}}

	voice := &Voice{ID: "1", Elements: []Timed{n1, n2}}
	measure := &Measure{Number: 1, Voices: []*Voice{voice}}
	part := &Part{Name: "Soprano", Clef: ClefTreble, Measures: []*Measure{measure}}

	slur := &Spanner{Type: SpannerSlur, Notes: []*Note{n1, n2}}

	return &Score{WorkTitle: "Test", Parts: []*Part{part}, Spanners: []*Spanner{slur}}
}

func TestDeepCopyIsolation(t *testing.T) {
	original := sampleScore()
	copy1 := original.DeepCopy()
	copy2 := original.DeepCopy()

	// Mutate copy1's first note; original and copy2 must be unaffected.
	copy1.Parts[0].Measures[0].Voices[0].Elements[0].(*Note).Pitch.Step = "E"

	if original.Parts[0].Measures[0].Voices[0].Elements[0].(*Note).Pitch.Step != "C" {
		t.Errorf("mutating copy1 affected the original score")
	}
	if copy2.Parts[0].Measures[0].Voices[0].Elements[0].(*Note).Pitch.Step != "C" {
		t.Errorf("mutating copy1 affected an unrelated copy")
	}
}

func TestDeepCopySpannerRemap(t *testing.T) {
	original := sampleScore()
	cp := original.DeepCopy()

	if len(cp.Spanners) != 1 {
		t.Fatalf("expected 1 spanner in copy, got %d", len(cp.Spanners))
	}

	copiedNote := cp.Parts[0].Measures[0].Voices[0].Elements[0].(*Note)
	if cp.Spanners[0].Notes[0] != copiedNote {
		t.Errorf("spanner endpoint does not reference the copy's own Note")
	}
	if cp.Spanners[0].Notes[0] == original.Spanners[0].Notes[0] {
		t.Errorf("spanner endpoint still aliases the original score's Note")
	}
}

func TestRepairSpannersRemovesDangling(t *testing.T) {
	s := sampleScore()
	// Simulate voice removal deleting the second note without updating spanners.
	voice := s.Parts[0].Measures[0].Voices[0]
	voice.Elements = voice.Elements[:1]

	s.RepairSpanners()

	if len(s.Spanners) != 0 {
		t.Errorf("expected dangling spanner to be removed, got %d spanners", len(s.Spanners))
	}
}

func TestRepairSpannersKeepsSurviving(t *testing.T) {
	s := sampleScore()
	s.RepairSpanners()

	if len(s.Spanners) != 1 {
		t.Errorf("expected surviving spanner to remain, got %d", len(s.Spanners))
	}
}
