package unify

import (
	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// applyDynamics implements the four dynamic-unification rules against
// the two physical staves of ctx.Original:
//
//   - R1 system-wide: the same mark appears on both staves at the same
//     offset -> broadcast to all four voices. This also covers R3
//     soprano-and-bass-lead, since soprano and bass sit on different
//     staves.
//   - R2 soprano-lead: a mark on the upper staff with no counterpart on
//     the lower staff -> broadcast to all four voices.
//   - R4 voice-specific: both staves carry a mark at the same offset
//     but with different text -> each stays confined to its own staff's
//     pair of voices.
//   - A mark on the lower staff with no upper counterpart -> confined
//     to the lower staff's pair of voices.
//
// Dynamics live at measure granularity, so the model cannot
// distinguish a soprano-only mark from an alto-only one when both
// share a staff; R4 is resolved at staff, not individual-voice,
// granularity for that reason.
func applyDynamics(ctx *Context) error {
	upperPart := ctx.Original.Parts[ctx.Mapping.Soprano.PartIndex]
	lowerPart := ctx.Original.Parts[ctx.Mapping.Tenor.PartIndex]

	for _, upperMeasure := range upperPart.Measures {
		lowerMeasure := lowerPart.MeasureByNumber(upperMeasure.Number)
		if lowerMeasure == nil {
			continue
		}

		handled := make(map[int]bool) // index into lowerMeasure.Dynamics

		for _, ud := range upperMeasure.Dynamics {
			matchIdx := -1
			for i, ld := range lowerMeasure.Dynamics {
				if ld.Offset.Equal(ud.Offset) {
					matchIdx = i
					break
				}
			}

			switch {
			case matchIdx >= 0 && lowerMeasure.Dynamics[matchIdx].Text == ud.Text:
				broadcastDynamic(ctx, ud, upperMeasure.Number, voiceid.All)
				handled[matchIdx] = true
			case matchIdx >= 0:
				broadcastDynamic(ctx, ud, upperMeasure.Number, upperVoices)
				broadcastDynamic(ctx, lowerMeasure.Dynamics[matchIdx], upperMeasure.Number, lowerVoices)
				handled[matchIdx] = true
			default:
				broadcastDynamic(ctx, ud, upperMeasure.Number, voiceid.All)
			}
		}

		for i, ld := range lowerMeasure.Dynamics {
			if handled[i] {
				continue
			}
			broadcastDynamic(ctx, ld, upperMeasure.Number, lowerVoices)
		}
	}
	return nil
}

func broadcastDynamic(ctx *Context, d *score.Dynamic, measureNumber int, voices []voiceid.VoiceName) {
	for _, name := range voices {
		part := ctx.Splits[name].Parts[0]
		m := part.MeasureByNumber(measureNumber)
		if m == nil || m.DynamicAt(d.Offset) != nil {
			continue
		}
		cp := *d
		m.Dynamics = append(m.Dynamics, &cp)
	}
}
