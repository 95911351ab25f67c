package unify

import (
	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// applySpanners copies system-wide wedges (crescendo/diminuendo
// hairpins) across the staff boundary they were drawn on. Slurs and
// ties are per-voice by nature and already survive intact through
// replicate+remove's spanner repair, so this sub-policy only concerns
// itself with wedges.
//
// A wedge that originates on the upper staff (soprano or alto)
// propagates down to tenor and bass unless the lower staff already
// carries its own overlapping wedge -- mirroring the dynamics R1/R2
// vs. R4 distinction: a staff with its own independent marking keeps
// it, a silent staff inherits the other's.
func applySpanners(ctx *Context) error {
	for _, sp := range ctx.Original.Spanners {
		if !sp.Type.IsWedge() {
			continue
		}
		origin, ok := voiceOwningSpanner(ctx, sp)
		if !ok {
			continue
		}

		var targets []voiceid.VoiceName
		if origin == voiceid.Soprano || origin == voiceid.Alto {
			targets = lowerVoices
		} else {
			targets = upperVoices
		}

		lo, hi, ok := spannerWindow(ctx.Original, sp)
		if !ok {
			continue
		}
		for _, name := range targets {
			if voiceHasOverlappingWedge(ctx, name, sp.Type, lo, hi) {
				continue
			}
			copyWedgeToVoice(ctx, sp, name, lo, hi)
		}
	}

	for _, s := range ctx.Splits {
		s.RepairSpanners()
	}
	return nil
}

// position locates a point in time unambiguously across measure
// boundaries, since Rational offsets alone reset at the start of every
// measure.
type position struct {
	measure int
	offset  score.Rational
}

func (p position) less(o position) bool {
	if p.measure != o.measure {
		return p.measure < o.measure
	}
	return p.offset.Less(o.offset)
}

// spannerWindow returns the [lo, hi) position window spanned by sp,
// measure-qualified using s (the score sp's Notes belong to), or false
// if either endpoint's measure cannot be located.
func spannerWindow(s *score.Score, sp *score.Spanner) (lo, hi position, ok bool) {
	first, last := sp.FirstNote(), sp.LastNote()
	if first == nil || last == nil {
		return position{}, position{}, false
	}
	firstMeasure, ok1 := s.MeasureNumberOf(first)
	lastMeasure, ok2 := s.MeasureNumberOf(last)
	if !ok1 || !ok2 {
		return position{}, position{}, false
	}
	lo = position{measure: firstMeasure, offset: first.Offset}
	hi = position{measure: lastMeasure, offset: last.Offset.Add(last.Duration)}
	return lo, hi, true
}

func voiceOwningSpanner(ctx *Context, sp *score.Spanner) (voiceid.VoiceName, bool) {
	first := sp.FirstNote()
	if first == nil {
		return "", false
	}
	for _, name := range voiceid.All {
		loc := ctx.Mapping.Location(name)
		part := ctx.Original.Parts[loc.PartIndex]
		for _, m := range part.Measures {
			v := m.VoiceByID(loc.VoiceID)
			if v == nil {
				continue
			}
			for _, n := range v.Notes() {
				if n == first {
					return name, true
				}
			}
		}
	}
	return "", false
}

func voiceHasOverlappingWedge(ctx *Context, name voiceid.VoiceName, t score.SpannerType, lo, hi position) bool {
	split := ctx.Splits[name]
	for _, sp := range split.Spanners {
		if sp.Type != t {
			continue
		}
		spLo, spHi, ok := spannerWindow(split, sp)
		if !ok {
			continue
		}
		if spLo.less(hi) && lo.less(spHi) {
			return true
		}
	}
	return false
}

func copyWedgeToVoice(ctx *Context, sp *score.Spanner, name voiceid.VoiceName, lo, hi position) {
	loc := ctx.Mapping.Location(name)
	part := ctx.Splits[name].Parts[0]

	var notes []*score.Note
	for _, m := range part.Measures {
		v := m.VoiceByID(loc.VoiceID)
		if v == nil {
			continue
		}
		for _, n := range v.Notes() {
			start := position{measure: m.Number, offset: n.Offset}
			end := position{measure: m.Number, offset: n.Offset.Add(n.Duration)}
			if start.less(hi) && lo.less(end) {
				notes = append(notes, n)
			}
		}
	}
	if len(notes) == 0 {
		return
	}

	ctx.Splits[name].Spanners = append(ctx.Splits[name].Spanners, &score.Spanner{
		Type:      sp.Type,
		Placement: sp.Placement,
		Notes:     notes,
	})
}
