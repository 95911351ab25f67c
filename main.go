package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leafo/satbsplit/mscz"
	"github.com/leafo/satbsplit/pipeline"
	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

func main() {
	inputPath := flag.String("input", "", "Path to the input score file (.musicxml, .xml, or .mscz)")
	msczTool := flag.String("mscz-tool", mscz.DefaultTool, "External notation editor used to convert .mscz input to MusicXML")
	outDir := flag.String("out-dir", "", "Directory to write the four split voice files into (defaults to the input file's directory)")
	noDynamics := flag.Bool("no-dynamics", false, "Skip the dynamics unification sub-policy")
	noLyrics := flag.Bool("no-lyrics", false, "Skip the lyrics unification sub-policy")
	noSpanners := flag.Bool("no-spanners", false, "Skip the spanner unification sub-policy")
	noLayout := flag.Bool("no-layout", false, "Skip the layout unification sub-policy")
	noValidate := flag.Bool("no-validate", false, "Skip post-split validation against the source score")
	clickTrack := flag.Bool("click-track", false, "Also render each split voice as a reference MIDI file alongside the MusicXML")
	jsonOutput := flag.Bool("json", false, "Print a JSON summary of the split result instead of plain text")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -input <score file> [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	input, originalTitle, baseName, err := loadScore(*inputPath, *msczTool)
	if err != nil {
		log.Fatalf("loading %s: %v", *inputPath, err)
	}

	opts := pipeline.Options{
		ApplyDynamics: !*noDynamics,
		ApplyLyrics:   !*noLyrics,
		ApplySpanners: !*noSpanners,
		ApplyLayout:   !*noLayout,
		Validate:      !*noValidate,
	}

	result, err := pipeline.Run(input, originalTitle, baseName, opts)
	if err != nil {
		log.Fatalf("splitting %s: %v", *inputPath, err)
	}

	dir := *outDir
	if dir == "" {
		dir = filepath.Dir(*inputPath)
	}

	written, err := writeResults(result, dir, baseName, *clickTrack)
	if err != nil {
		log.Fatalf("writing split output: %v", err)
	}

	if *jsonOutput {
		printJSONSummary(written)
		return
	}
	printTextSummary(written)
}

// loadScore reads input either directly as MusicXML or, for a .mscz
// project file, by shelling out to an external notation editor first.
// baseName is always derived from the input path, never from the
// converted intermediate file, so a split's title never leaks a temp
// directory name.
func loadScore(inputPath, tool string) (s *score.Score, originalTitle, baseName string, err error) {
	baseName = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	xmlPath := inputPath
	if strings.ToLower(filepath.Ext(inputPath)) == ".mscz" {
		converter := mscz.Converter{Tool: tool}
		converted, cleanup, convErr := converter.Convert(inputPath)
		if convErr != nil {
			return nil, "", "", convErr
		}
		defer cleanup()
		xmlPath = converted
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, "", "", fmt.Errorf("opening %s: %w", xmlPath, err)
	}
	defer f.Close()

	s, err = score.Read(f)
	if err != nil {
		return nil, "", "", fmt.Errorf("parsing %s: %w", xmlPath, err)
	}

	return s, s.WorkTitle, baseName, nil
}

type writtenVoice struct {
	Voice          string `json:"voice"`
	MusicXML       string `json:"musicxml"`
	ReferenceMid   string `json:"reference_midi,omitempty"`
	Measures       int    `json:"measures"`
	Voices         int    `json:"voices"`
	DynamicMarks   int    `json:"dynamic_marks"`
	LyricSyllables int    `json:"lyric_syllables"`
}

// summarizeScore counts the measures, voices, dynamic marks, and lyric
// syllables in s, for the -json summary.
func summarizeScore(s *score.Score) (measures, voices, dynamics, lyrics int) {
	for _, p := range s.Parts {
		measures += len(p.Measures)
		for _, m := range p.Measures {
			voices += len(m.Voices)
			dynamics += len(m.Dynamics)
		}
	}
	for _, n := range s.AllNotes() {
		lyrics += len(n.Lyrics)
	}
	return measures, voices, dynamics, lyrics
}

func writeResults(result *pipeline.Result, dir, baseName string, renderClickTrack bool) ([]writtenVoice, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	var out []writtenVoice
	for _, name := range voiceid.All {
		s := result.Scores[name]
		suffix := voiceid.DisplayName(name)

		xmlPath := filepath.Join(dir, fmt.Sprintf("%s-%s.musicxml", baseName, suffix))
		if err := writeMusicXML(xmlPath, s); err != nil {
			return nil, err
		}

		measures, voices, dynamics, lyrics := summarizeScore(s)
		entry := writtenVoice{
			Voice:          string(name),
			MusicXML:       xmlPath,
			Measures:       measures,
			Voices:         voices,
			DynamicMarks:   dynamics,
			LyricSyllables: lyrics,
		}

		if renderClickTrack {
			midPath := filepath.Join(dir, fmt.Sprintf("%s-%s.mid", baseName, suffix))
			if err := writeReferenceMidi(midPath, s); err != nil {
				return nil, err
			}
			entry.ReferenceMid = midPath
		}

		out = append(out, entry)
	}
	return out, nil
}

func writeMusicXML(path string, s *score.Score) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := score.Write(f, s); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeReferenceMidi(path string, s *score.Score) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := mscz.RenderReferenceMidi(f, s, mscz.GMChoirAahs); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

func printTextSummary(written []writtenVoice) {
	for _, w := range written {
		fmt.Printf("%s: %s\n", w.Voice, w.MusicXML)
		if w.ReferenceMid != "" {
			fmt.Printf("%s: %s\n", w.Voice, w.ReferenceMid)
		}
	}
}

func printJSONSummary(written []writtenVoice) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(written); err != nil {
		log.Fatalf("encoding JSON summary: %v", err)
	}
}
