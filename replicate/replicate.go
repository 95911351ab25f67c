// Package replicate produces one isolated deep copy of a score per
// SATB voice, so later stages can remove voices from each copy
// independently without any cross-copy mutation.
package replicate

import (
	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// Set holds one deep copy of the source score per voice, keyed by
// voice name so the pipeline can process them in a stable order.
type Set map[voiceid.VoiceName]*score.Score

// Replicate returns a Set containing one independent deep copy of
// input for each of the four SATB voices. Mutating one copy never
// affects another or the original.
func Replicate(input *score.Score) Set {
	out := make(Set, len(voiceid.All))
	for _, name := range voiceid.All {
		out[name] = input.DeepCopy()
	}
	return out
}
