package score

import "testing"

func TestRationalArithmetic(t *testing.T) {
	half := NewRational(1, 2)
	quarter := NewRational(1, 4)

	if got := half.Add(quarter).String(); got != "3/4" {
		t.Errorf("half+quarter = %s, want 3/4", got)
	}
	if got := half.Sub(quarter).String(); got != "1/4" {
		t.Errorf("half-quarter = %s, want 1/4", got)
	}
	if !quarter.Less(half) {
		t.Errorf("expected 1/4 < 1/2")
	}
	if RationalFromInt(2).String() != "2" {
		t.Errorf("expected integral rational to print without denominator")
	}
}

func TestRationalHalfOpenInterval(t *testing.T) {
	start := RationalFromInt(0)
	end := NewRational(3, 1) // dotted half

	cases := []struct {
		offset Rational
		want   bool
	}{
		{RationalFromInt(0), true},
		{NewRational(1, 2), true},
		{RationalFromInt(2), true},
		{RationalFromInt(3), false},
		{NewRational(7, 2), false},
	}

	for _, c := range cases {
		if got := c.offset.InHalfOpenInterval(start, end); got != c.want {
			t.Errorf("offset %s in [%s,%s) = %v, want %v", c.offset, start, end, got, c.want)
		}
	}
}

func TestRationalEqualAcrossConstruction(t *testing.T) {
	a := NewRational(2, 4)
	b := NewRational(1, 2)
	if !a.Equal(b) {
		t.Errorf("expected 2/4 == 1/2")
	}
}
