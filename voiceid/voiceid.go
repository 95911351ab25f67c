// Package voiceid identifies the four SATB voices within a two-staff
// choral score by their canonical part index and voice id, rejecting
// any score that does not match the convention exactly.
package voiceid

import (
	"fmt"

	"github.com/leafo/satbsplit/score"
)

// VoiceName identifies one of the four SATB voices.
type VoiceName string

const (
	Soprano VoiceName = "soprano"
	Alto    VoiceName = "alto"
	Tenor   VoiceName = "tenor"
	Bass    VoiceName = "bass"
)

// All lists the four voices in canonical top-to-bottom order.
var All = []VoiceName{Soprano, Alto, Tenor, Bass}

// VoiceLocation pinpoints where a voice lives in the source score and
// which clef it is expected to carry once split onto its own staff.
type VoiceLocation struct {
	PartIndex    int
	VoiceID      string
	ExpectedClef score.Clef
}

// VoiceMapping is the resolved location of all four SATB voices.
type VoiceMapping struct {
	Soprano VoiceLocation
	Alto    VoiceLocation
	Tenor   VoiceLocation
	Bass    VoiceLocation
}

// DisplayName returns the capitalized form of name used in titles, part
// names, and output filenames ("soprano" -> "Soprano").
func DisplayName(name VoiceName) string {
	switch name {
	case Soprano:
		return "Soprano"
	case Alto:
		return "Alto"
	case Tenor:
		return "Tenor"
	case Bass:
		return "Bass"
	}
	return string(name)
}

// Location returns the VoiceLocation for the given voice name.
func (m *VoiceMapping) Location(name VoiceName) VoiceLocation {
	switch name {
	case Soprano:
		return m.Soprano
	case Alto:
		return m.Alto
	case Tenor:
		return m.Tenor
	case Bass:
		return m.Bass
	}
	panic(fmt.Sprintf("voiceid: unknown voice name %q", name))
}

// canonical is the fixed SATB convention this package enforces: no
// heuristic fallback is attempted when a score deviates from it.
var canonical = VoiceMapping{
	Soprano: VoiceLocation{PartIndex: 0, VoiceID: "1", ExpectedClef: score.ClefTreble},
	Alto:    VoiceLocation{PartIndex: 0, VoiceID: "2", ExpectedClef: score.ClefTreble},
	Tenor:   VoiceLocation{PartIndex: 1, VoiceID: "5", ExpectedClef: score.ClefTreble8vb},
	Bass:    VoiceLocation{PartIndex: 1, VoiceID: "6", ExpectedClef: score.ClefBass},
}

// Error reports why a score could not be matched to the canonical
// SATB voice convention.
type Error struct {
	Measure int
	Reason  string
}

func (e *Error) Error() string {
	if e.Measure > 0 {
		return fmt.Sprintf("voiceid: measure %d: %s", e.Measure, e.Reason)
	}
	return fmt.Sprintf("voiceid: %s", e.Reason)
}

// Identify locates the four SATB voices within s using the strict
// two-staff convention: part 0 carries voices "1" (soprano) and "2"
// (alto); part 1 carries voices "5" (tenor) and "6" (bass). Every
// non-empty measure in both parts must contain both of its expected
// voices. No other layout is accepted.
func Identify(s *score.Score) (*VoiceMapping, error) {
	if len(s.Parts) != 2 {
		return nil, &Error{Reason: fmt.Sprintf("expected 2 parts, found %d", len(s.Parts))}
	}

	upper, lower := s.Parts[0], s.Parts[1]

	if err := requireVoices(upper, canonical.Soprano.VoiceID, canonical.Alto.VoiceID); err != nil {
		return nil, err
	}
	if err := requireVoices(lower, canonical.Tenor.VoiceID, canonical.Bass.VoiceID); err != nil {
		return nil, err
	}

	mapping := canonical
	return &mapping, nil
}

func requireVoices(p *score.Part, idA, idB string) error {
	for _, m := range p.Measures {
		if measureIsEmpty(m) {
			continue
		}
		if m.VoiceByID(idA) == nil {
			return &Error{Measure: m.Number, Reason: fmt.Sprintf("missing expected voice %q", idA)}
		}
		if m.VoiceByID(idB) == nil {
			return &Error{Measure: m.Number, Reason: fmt.Sprintf("missing expected voice %q", idB)}
		}
	}
	return nil
}

func measureIsEmpty(m *score.Measure) bool {
	for _, v := range m.Voices {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}
