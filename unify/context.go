// Package unify implements the Contextual Unifier stage: it restores,
// onto each of the four single-voice split scores, the ensemble-level
// context a solo staff loses when its siblings are removed --
// dynamics, borrowed lyrics, system-wide spanners, and shared layout
// marks -- following a fixed sub-policy order.
package unify

import (
	"fmt"

	"github.com/leafo/satbsplit/score"
	"github.com/leafo/satbsplit/voiceid"
)

// Context bundles the untouched four-voice source score, its resolved
// voice locations, and the four already-split single-voice scores
// that the sub-policies enrich in place.
type Context struct {
	Original *score.Score
	Mapping  *voiceid.VoiceMapping
	Splits   map[voiceid.VoiceName]*score.Score
}

// Options toggles each sub-policy independently; the pipeline maps
// these directly onto its -no-dynamics/-no-lyrics/-no-spanners/
// -no-layout flags.
type Options struct {
	Dynamics bool
	Lyrics   bool
	Spanners bool
	Layout   bool
}

// DefaultOptions runs every sub-policy.
func DefaultOptions() Options {
	return Options{Dynamics: true, Lyrics: true, Spanners: true, Layout: true}
}

// upperVoices and lowerVoices group the two voices that physically
// share a staff in the canonical two-part SATB layout.
var (
	upperVoices = []voiceid.VoiceName{voiceid.Soprano, voiceid.Alto}
	lowerVoices = []voiceid.VoiceName{voiceid.Tenor, voiceid.Bass}
)

// Unify runs the four sub-policies in their fixed order: dynamics,
// lyrics, spanners, then layout. Each reads from ctx.Original and
// writes into ctx.Splits. Each policy writes a different kind of
// element (measure dynamics, note lyrics, score spanners, measure
// layout/tempo/rehearsal marks), and none of them reads what an
// earlier one wrote.
func Unify(ctx *Context, opts Options) error {
	if opts.Dynamics {
		if err := applyDynamics(ctx); err != nil {
			return fmt.Errorf("unify: dynamics: %w", err)
		}
	}
	if opts.Lyrics {
		if err := applyLyrics(ctx); err != nil {
			return fmt.Errorf("unify: lyrics: %w", err)
		}
	}
	if opts.Spanners {
		if err := applySpanners(ctx); err != nil {
			return fmt.Errorf("unify: spanners: %w", err)
		}
	}
	if opts.Layout {
		if err := applyLayout(ctx); err != nil {
			return fmt.Errorf("unify: layout: %w", err)
		}
	}
	return nil
}
