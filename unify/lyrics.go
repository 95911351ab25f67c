package unify

import (
	"sort"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// applyLyrics fills in lyrics for notes that survived voice removal
// without their own syllable, by borrowing one from whichever note in
// any of the four original voices best matches the destination note's
// onset: a candidate donates its syllable when the destination note's
// offset falls within the candidate's own time window
// [candidate.offset, candidate.offset+candidate.duration).
//
// Candidates that sit in the interior of a slur are rejected: a
// melisma continuation note never starts a new syllable, so it cannot
// donate lyric text to another voice. Among the remaining candidates
// the winner is chosen by longest duration, then earliest offset, then
// canonical voice order (soprano, alto, tenor, bass) as a stable
// tiebreak.
func applyLyrics(ctx *Context) error {
	for _, name := range voiceid.All {
		part := ctx.Splits[name].Parts[0]

		for _, m := range part.Measures {
			if len(m.Voices) == 0 {
				continue
			}
			for _, n := range m.Voices[0].Notes() {
				if n.HasLyric() {
					continue
				}
				candidate := bestLyricCandidate(ctx, m.Number, n.Offset)
				if candidate != nil {
					n.Lyrics = append([]score.Lyric(nil), candidate.Lyrics...)
				}
			}
		}
	}
	return nil
}

type lyricCandidate struct {
	note     *score.Note
	priority int
	index    int
}

func bestLyricCandidate(ctx *Context, measureNumber int, destOffset score.Rational) *score.Note {
	var candidates []lyricCandidate

	for priority, name := range voiceid.All {
		loc := ctx.Mapping.Location(name)
		part := ctx.Original.Parts[loc.PartIndex]
		m := part.MeasureByNumber(measureNumber)
		if m == nil {
			continue
		}
		v := m.VoiceByID(loc.VoiceID)
		if v == nil {
			continue
		}
		for idx, n := range v.Notes() {
			if !n.HasLyric() {
				continue
			}
			lo, hi := n.Offset, n.Offset.Add(n.Duration)
			if !destOffset.InHalfOpenInterval(lo, hi) {
				continue
			}
			if isSlurMiddle(ctx.Original, n) {
				continue
			}
			candidates = append(candidates, lyricCandidate{note: n, priority: priority, index: idx})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.note.Duration.Equal(b.note.Duration) {
			return b.note.Duration.Less(a.note.Duration)
		}
		if !a.note.Offset.Equal(b.note.Offset) {
			return a.note.Offset.Less(b.note.Offset)
		}
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return a.index < b.index
	})

	return candidates[0].note
}

// isSlurMiddle reports whether n is an interior endpoint of a slur in
// s -- neither the slur's first nor last note.
func isSlurMiddle(s *score.Score, n *score.Note) bool {
	for _, sp := range s.Spanners {
		if sp.Type != score.SpannerSlur {
			continue
		}
		if sp.FirstNote() == n || sp.LastNote() == n {
			continue
		}
		for _, cn := range sp.Notes {
			if cn == n {
				return true
			}
		}
	}
	return false
}
