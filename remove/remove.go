// Package remove implements the Voice Remover stage: given a score
// copy and the location of the voice to keep, it strips every other
// voice and part, leaving a single monophonic line per measure.
package remove

import (
	"fmt"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// Error reports a failure to remove voices around loc.
type Error struct {
	Measure int
	Reason  string
}

func (e *Error) Error() string {
	if e.Measure > 0 {
		return fmt.Sprintf("remove: measure %d: %s", e.Measure, e.Reason)
	}
	return fmt.Sprintf("remove: %s", e.Reason)
}

// Remove mutates s in place so that only the voice described by loc
// survives: every other part is dropped, and within the kept part
// every voice but loc.VoiceID is discarded. A measure that loses its
// only voice is given a single full-measure rest so the staff stays
// rhythmically complete. Spanner references left dangling by the
// removed material are dropped via score.RepairSpanners.
func Remove(s *score.Score, loc voiceid.VoiceLocation) error {
	if loc.PartIndex < 0 || loc.PartIndex >= len(s.Parts) {
		return &Error{Reason: fmt.Sprintf("part index %d out of range", loc.PartIndex)}
	}

	kept := s.Parts[loc.PartIndex]
	s.Parts = []*score.Part{kept}

	for _, m := range kept.Measures {
		if err := keepOnlyVoice(m, loc.VoiceID); err != nil {
			return err
		}
	}

	s.RepairSpanners()
	return nil
}

func keepOnlyVoice(m *score.Measure, voiceID string) error {
	target := m.VoiceByID(voiceID)

	if target == nil || len(target.Elements) == 0 {
		duration := wholeMeasureDuration(m)
		target = &score.Voice{
			ID:       voiceID,
			Elements: []score.Timed{&score.Rest{Offset: score.Zero, Duration: duration}},
		}
	}

	m.Voices = []*score.Voice{target}
	return nil
}

// wholeMeasureDuration derives the duration of a full measure from
// whatever voices are present before they are discarded, falling back
// to the measure's time signature when it carries no voices at all.
func wholeMeasureDuration(m *score.Measure) score.Rational {
	total := score.Zero
	for _, v := range m.Voices {
		sum := score.Zero
		for _, el := range v.Elements {
			sum = sum.Add(el.GetDuration())
		}
		if total.Less(sum) {
			total = sum
		}
	}
	if !total.Equal(score.Zero) {
		return total
	}
	if m.TimeSignature != nil && m.TimeSignature.Denominator > 0 {
		return score.NewRational(int64(4*m.TimeSignature.Numerator), int64(m.TimeSignature.Denominator))
	}
	return score.RationalFromInt(4)
}
