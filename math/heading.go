// math/heading.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Figure out which way is closest: first find the angle to rotate the
// target heading by so that it's aligned with 180 degrees. This lets us
// not worry about the complexities of the wrap around at 0/360..
func HeadingSignedTurn(cur, target float32) float32 {
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot) // w.r.t. 180 target
}

// NormalizeAngleError maps an angular difference in degrees to [-180,180).
func NormalizeAngleError(d float32) float32 {
	return NormalizeHeading(d+180) - 180
}

// Reduces it to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		h = 360 - NormalizeHeading(-h)
		if h == 360 {
			// -360, or float32 rounding of tiny negative inputs
			return 0
		}
		return h
	}
	return Mod(h, 360)
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// VectorHeading returns the heading in degrees [0,360) of the vector v,
// given as (east, north). Note that atan2() normally measures w.r.t. the
// +x axis with counter-clockwise angles positive; passing (x,y) rather
// than (y,x) gives angles w.r.t. +y that are positive clockwise, as
// headings are.
func VectorHeading(v [2]float32) float32 {
	return NormalizeHeading(Degrees(Atan2(v[0], v[1])))
}

// HeadingVector returns the unit (east, north) vector for the given
// heading in degrees.
func HeadingVector(hdg float32) [2]float32 {
	return SinCos(Radians(hdg))
}
