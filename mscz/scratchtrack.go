package mscz

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leafo/satbsplit/score"
)

const ticksPerQuarter = 480

// GMChoirAahs is the General MIDI program used for reference renders
// unless the caller overrides it.
const GMChoirAahs uint8 = 52

// midiEvent pairs an absolute tick time with the message to emit there,
// mirroring how the teacher's exporter accumulates events before
// sorting them into delta-time order.
type midiEvent struct {
	tick    uint32
	message smf.Message
}

// RenderReferenceMidi renders a single split voice as a one-track GM
// MIDI file, one note-on/note-off pair per Note, so a split can be
// spot-checked by ear without reopening it in a notation editor.
func RenderReferenceMidi(w io.Writer, s *score.Score, program uint8) error {
	if len(s.Parts) == 0 {
		return fmt.Errorf("score has no parts to render")
	}

	file := smf.NewSMF1()
	file.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var events []midiEvent
	for _, part := range s.Parts {
		measureStart := score.Zero
		for _, m := range part.Measures {
			for _, v := range m.Voices {
				for _, n := range v.Notes() {
					key := midiKeyFor(n.Pitch)
					onTick := toTicks(measureStart.Add(n.Offset))
					offTick := toTicks(measureStart.Add(n.Offset).Add(n.Duration))
					events = append(events,
						midiEvent{tick: onTick, message: smf.Message(midi.NoteOn(0, key, 96))},
						midiEvent{tick: offTick, message: smf.Message(midi.NoteOff(0, key))},
					)
				}
			}
			measureStart = measureStart.Add(measureDuration(m))
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].tick < events[j].tick })

	track := smf.Track{}
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(smf.MetaTrackSequenceName(s.WorkTitle))})
	track = append(track, smf.Event{Delta: 0, Message: smf.Message(midi.ProgramChange(0, program))})

	var lastTick uint32
	for _, ev := range events {
		track = append(track, smf.Event{Delta: ev.tick - lastTick, Message: ev.message})
		lastTick = ev.tick
	}
	track = append(track, smf.Event{Delta: 0, Message: smf.EOT})

	file.Add(track)

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("writing reference midi: %w", err)
	}
	return nil
}

func toTicks(r score.Rational) uint32 {
	return uint32(r.Float64() * float64(ticksPerQuarter))
}

// measureDuration derives how far m advances the timeline, from
// whatever voices it carries, falling back to its time signature when
// it has none -- the same derivation remove.Remove uses to size a
// synthesized rest.
func measureDuration(m *score.Measure) score.Rational {
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

var pitchClassSemitones = map[string]int{"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11}

func midiKeyFor(p score.Pitch) uint8 {
	base := 12*(p.Octave+1) + pitchClassSemitones[p.Step] + p.Alter
	switch {
	case base < 0:
		base = 0
	case base > 127:
		base = 127
	}
	return uint8(base)
}
