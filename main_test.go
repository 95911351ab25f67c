package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leafo/satbsplit/pipeline"
	"github.com/leafo/satbsplit/score"
)

func writeFixtureSATB(t *testing.T, path string) {
	t.Helper()

	soprano := &score.Voice{ID: "1", Elements: []score.Timed{&score.Note{Pitch: score.Pitch{Step: "C", Octave: 5}, Duration: score.RationalFromInt(4)}}}
	alto := &score.Voice{ID: "2", Elements: []score.Timed{&score.Note{Pitch: score.Pitch{Step: "A", Octave: 4}, Duration: score.RationalFromInt(4)}}}
	upperMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{soprano, alto}, TimeSignature: &score.TimeSignature{Numerator: 4, Denominator: 4}}
	upperPart := &score.Part{Name: "Soprano/Alto", Measures: []*score.Measure{upperMeasure}}

	tenor := &score.Voice{ID: "5", Elements: []score.Timed{&score.Note{Pitch: score.Pitch{Step: "F", Octave: 3}, Duration: score.RationalFromInt(4)}}}
	bass := &score.Voice{ID: "6", Elements: []score.Timed{&score.Note{Pitch: score.Pitch{Step: "C", Octave: 3}, Duration: score.RationalFromInt(4)}}}
	lowerMeasure := &score.Measure{Number: 1, Voices: []*score.Voice{tenor, bass}, TimeSignature: &score.TimeSignature{Numerator: 4, Denominator: 4}}
	lowerPart := &score.Part{Name: "Tenor/Bass", Measures: []*score.Measure{lowerMeasure}}

	s := &score.Score{WorkTitle: "Fixture Hymn", Parts: []*score.Part{upperPart, lowerPart}}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture file: %v", err)
	}
	defer f.Close()
	if err := score.Write(f, s); err != nil {
		t.Fatalf("writing fixture musicxml: %v", err)
	}
}

func TestLoadScoreReadsMusicXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.musicxml")
	writeFixtureSATB(t, path)

	s, title, base, err := loadScore(path, "")
	if err != nil {
		t.Fatalf("loadScore returned error: %v", err)
	}
	if title != "Fixture Hymn" {
		t.Errorf("title = %q, want %q", title, "Fixture Hymn")
	}
	if base != "fixture" {
		t.Errorf("base = %q, want %q", base, "fixture")
	}
	if len(s.Parts) != 2 {
		t.Errorf("expected 2 parts, got %d", len(s.Parts))
	}
}

func TestWriteResultsProducesFourFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.musicxml")
	writeFixtureSATB(t, path)

	s, title, base, err := loadScore(path, "")
	if err != nil {
		t.Fatalf("loadScore returned error: %v", err)
	}

	result, err := pipeline.Run(s, title, base, pipeline.DefaultOptions())
	if err != nil {
		t.Fatalf("pipeline.Run returned error: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	written, err := writeResults(result, outDir, base, true)
	if err != nil {
		t.Fatalf("writeResults returned error: %v", err)
	}
	if len(written) != 4 {
		t.Fatalf("expected 4 written voices, got %d", len(written))
	}
	for _, w := range written {
		if _, err := os.Stat(w.MusicXML); err != nil {
			t.Errorf("expected %s to exist: %v", w.MusicXML, err)
		}
		if _, err := os.Stat(w.ReferenceMid); err != nil {
			t.Errorf("expected %s to exist: %v", w.ReferenceMid, err)
		}
	}
}
