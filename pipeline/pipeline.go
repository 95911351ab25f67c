// Package pipeline sequences the five SATB voice-splitting stages --
// Voice Identifier, Score Replicator, Voice Remover, Staff Simplifier,
// and Contextual Unifier -- into a single Run call, and validates the
// result against the source score's note and offset counts.
package pipeline

import (
	"fmt"

	"github.com/leafo/satbsplit/remove"
	"github.com/leafo/satbsplit/replicate"
	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/simplify"
	"github.com/leafo/satbsplit/unify"
	"github.com/leafo/satbsplit/voiceid"
)

// Options controls which Contextual Unifier sub-policies run and
// whether the result is checked against the source score afterward.
// Every field defaults to true; the CLI's -no-* flags clear them.
type Options struct {
	ApplyDynamics bool
	ApplyLyrics   bool
	ApplySpanners bool
	ApplyLayout   bool
	Validate      bool
}

// DefaultOptions runs every sub-policy and validates the result.
func DefaultOptions() Options {
	return Options{ApplyDynamics: true, ApplyLyrics: true, ApplySpanners: true, ApplyLayout: true, Validate: true}
}

// Result holds the four split scores and the voice mapping that
// produced them.
type Result struct {
	Mapping *voiceid.VoiceMapping
	Scores  map[voiceid.VoiceName]*score.Score
}

// Run splits input into four single-voice scores. originalTitle and
// baseName feed the Staff Simplifier's title fallback (see
// simplify.Simplify); baseName should be the input file's basename
// without extension, never an intermediate conversion path.
func Run(input *score.Score, originalTitle, baseName string, opts Options) (*Result, error) {
	mapping, err := voiceid.Identify(input)
	if err != nil {
		return nil, &VoiceDetectionError{Err: err}
	}

	splits := replicate.Replicate(input)

	for _, name := range voiceid.All {
		loc := mapping.Location(name)
		if err := remove.Remove(splits[name], loc); err != nil {
			return nil, &VoiceRemovalError{Voice: string(name), Err: err}
		}
		simplify.Simplify(splits[name], name, loc, originalTitle, baseName)
	}

	ctx := &unify.Context{Original: input, Mapping: mapping, Splits: splits}
	uopts := unify.Options{
		Dynamics: opts.ApplyDynamics,
		Lyrics:   opts.ApplyLyrics,
		Spanners: opts.ApplySpanners,
		Layout:   opts.ApplyLayout,
	}
	if err := unify.Unify(ctx, uopts); err != nil {
		return nil, &UnificationError{Err: err}
	}

	result := &Result{Mapping: mapping, Scores: splits}

	if opts.Validate {
		if err := Validate(input, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Validate checks that every split has exactly one part with exactly
// one voice per measure, and that it preserved the note count and exact
// offsets/durations of its source voice. It never passes on a score
// that silently dropped or shifted content.
func Validate(original *score.Score, result *Result) error {
	for _, name := range voiceid.All {
		loc := result.Mapping.Location(name)
		srcPart := original.Parts[loc.PartIndex]
		if n := len(result.Scores[name].Parts); n != 1 {
			return &ProcessingError{Voice: string(name), Expected: "1 part", Actual: fmt.Sprintf("%d parts", n)}
		}
		dstPart := result.Scores[name].Parts[0]

		if len(dstPart.Measures) != len(srcPart.Measures) {
			return &ProcessingError{
				Voice:    string(name),
				Expected: fmt.Sprintf("%d measures", len(srcPart.Measures)),
				Actual:   fmt.Sprintf("%d measures", len(dstPart.Measures)),
			}
		}

		for _, sm := range srcPart.Measures {
			dm := dstPart.MeasureByNumber(sm.Number)
			if dm == nil {
				return &ProcessingError{Voice: string(name), Measure: sm.Number, Expected: "measure present", Actual: "missing"}
			}
			if len(dm.Voices) != 1 {
				return &ProcessingError{Voice: string(name), Measure: sm.Number, Expected: "1 voice", Actual: fmt.Sprintf("%d voices", len(dm.Voices))}
			}

			srcVoice := sm.VoiceByID(loc.VoiceID)
			if srcVoice == nil {
				continue
			}

			srcNotes := srcVoice.Notes()
			dstNotes := dm.Voices[0].Notes()
			if len(srcNotes) != len(dstNotes) {
				return &ProcessingError{
					Voice:    string(name),
					Measure:  sm.Number,
					Expected: fmt.Sprintf("%d notes", len(srcNotes)),
					Actual:   fmt.Sprintf("%d notes", len(dstNotes)),
				}
			}
			for i, sn := range srcNotes {
				dn := dstNotes[i]
				if !sn.Offset.Equal(dn.Offset) || !sn.Duration.Equal(dn.Duration) {
					return &ProcessingError{
						Voice:    string(name),
						Measure:  sm.Number,
						Expected: fmt.Sprintf("offset %s duration %s", sn.Offset, sn.Duration),
						Actual:   fmt.Sprintf("offset %s duration %s", dn.Offset, dn.Duration),
					}
				}
			}
		}
	}
	return nil
}
