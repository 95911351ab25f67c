package unify

import "github.com/leafo/satbsplit/score"

// applyLayout copies system/page breaks, tempo marks, and rehearsal
// marks from every part of the original score onto the corresponding
// measure of all four splits. These marks apply to the whole system
// rather than to an individual voice, so unlike dynamics they need no
// staff-leadership rule -- only duplicate suppression, since the
// original commonly repeats the same mark on both staves.
func applyLayout(ctx *Context) error {
	for _, part := range ctx.Original.Parts {
		for _, m := range part.Measures {
			for _, split := range ctx.Splits {
				dest := split.Parts[0].MeasureByNumber(m.Number)
				if dest == nil {
					continue
				}
				copyLayoutMarks(dest, m.Layout)
				copyTempoMarks(dest, m.Tempos)
				copyRehearsalMarks(dest, m.Rehearsals)
			}
		}
	}
	return nil
}

func copyLayoutMarks(dest *score.Measure, marks []*score.LayoutMark) {
	for _, lm := range marks {
		if hasLayoutMark(dest, lm.Offset, lm.Kind) {
			continue
		}
		cp := *lm
		dest.Layout = append(dest.Layout, &cp)
	}
}

func hasLayoutMark(m *score.Measure, offset score.Rational, kind string) bool {
	for _, l := range m.Layout {
		if l.Offset.Equal(offset) && l.Kind == kind {
			return true
		}
	}
	return false
}

func copyTempoMarks(dest *score.Measure, marks []*score.TempoMark) {
	for _, tm := range marks {
		if hasTempoMark(dest, tm.Offset) {
			continue
		}
		cp := *tm
		dest.Tempos = append(dest.Tempos, &cp)
	}
}

func hasTempoMark(m *score.Measure, offset score.Rational) bool {
	for _, t := range m.Tempos {
		if t.Offset.Equal(offset) {
			return true
		}
	}
	return false
}

func copyRehearsalMarks(dest *score.Measure, marks []*score.RehearsalMark) {
	for _, rm := range marks {
		if hasRehearsalMark(dest, rm.Offset) {
			continue
		}
		cp := *rm
		dest.Rehearsals = append(dest.Rehearsals, &cp)
	}
}

func hasRehearsalMark(m *score.Measure, offset score.Rational) bool {
	for _, r := range m.Rehearsals {
		if r.Offset.Equal(offset) {
			return true
		}
	}
	return false
}
