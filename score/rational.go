// Package score provides the musical object model the satbsplit pipeline
// operates on: Score, Part, Measure, Voice, Note, Chord, Rest, Lyric,
// Spanner, and Dynamic, plus MusicXML serialization. It stands in for the
// external music-notation library the pipeline treats as a narrow
// collaborator; no such library exists in the public Go ecosystem, so this
// package implements the boundary directly, deliberately kept narrow to the
// operations the pipeline actually needs.
package score

import (
	"fmt"
	"math/big"
)

// Rational represents an exact quarter-note position or duration within a
// measure. Offsets and durations must compare exactly equal across the
// pipeline's copy-and-prune stages, so this wraps math/big.Rat rather than
// floating point.
type Rational struct {
	r big.Rat
}

// NewRational builds a Rational equal to num/den quarter notes.
func NewRational(num, den int64) Rational {
	var out Rational
	out.r.SetFrac64(num, den)
	return out
}

// RationalFromInt builds a Rational equal to n quarter notes.
func RationalFromInt(n int64) Rational {
	return NewRational(n, 1)
}

// Zero is the Rational for offset/duration 0.
var Zero = RationalFromInt(0)

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	var out Rational
	out.r.Add(&a.r, &b.r)
	return out
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	var out Rational
	out.r.Sub(&a.r, &b.r)
	return out
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Rational) Cmp(b Rational) int {
	return a.r.Cmp(&b.r)
}

// Less reports whether a < b.
func (a Rational) Less(b Rational) bool {
	return a.Cmp(b) < 0
}

// LessOrEqual reports whether a <= b.
func (a Rational) LessOrEqual(b Rational) bool {
	return a.Cmp(b) <= 0
}

// Equal reports whether a == b.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

// InHalfOpenInterval reports whether lo <= a < hi, the window rule used by
// the lyric and spanner unification sub-policies.
func (a Rational) InHalfOpenInterval(lo, hi Rational) bool {
	return lo.LessOrEqual(a) && a.Less(hi)
}

// Float64 returns an approximate floating point value, for display only.
func (a Rational) Float64() float64 {
	f, _ := a.r.Float64()
	return f
}

// String renders the rational in lowest terms, e.g. "3/2" or "4".
func (a Rational) String() string {
	if a.r.IsInt() {
		return a.r.Num().String()
	}
	return fmt.Sprintf("%s/%s", a.r.Num().String(), a.r.Denom().String())
}

// MarshalText implements encoding.TextMarshaler so Rational values serialize
// cleanly in JSON summaries.
func (a Rational) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
