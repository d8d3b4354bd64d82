/*
Copyright © 2025 the Stakeout authors.
This file is part of Stakeout.

Stakeout is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Stakeout is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Stakeout.  If not, see <http://www.gnu.org/licenses/>.
*/

package stakeout

import (
	"math"

	"github.com/ctessum/geom"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b geom.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// CircleCenter returns the center of the circle passing through p1, pMid and
// p2, found by intersecting the perpendicular bisectors of the two chords.
// A horizontal chord makes its bisector vertical; that case is solved
// directly for the x coordinate. Collinear points have parallel bisectors
// and fail with a *DegenerateGeometryError.
func CircleCenter(p1, pMid, p2 geom.Point) (geom.Point, error) {
	mid1 := geom.Point{X: (p1.X + pMid.X) / 2, Y: (p1.Y + pMid.Y) / 2}
	mid2 := geom.Point{X: (pMid.X + p2.X) / 2, Y: (pMid.Y + p2.Y) / 2}

	slope1, vertical1 := bisectorSlope(p1, pMid)
	slope2, vertical2 := bisectorSlope(pMid, p2)

	switch {
	case vertical1 && vertical2:
		return geom.Point{}, &DegenerateGeometryError{Shape: -1, Reason: "arc points are collinear"}
	case vertical1:
		x := mid1.X
		return geom.Point{X: x, Y: slope2*(x-mid2.X) + mid2.Y}, nil
	case vertical2:
		x := mid2.X
		return geom.Point{X: x, Y: slope1*(x-mid1.X) + mid1.Y}, nil
	}
	if slope1 == slope2 {
		return geom.Point{}, &DegenerateGeometryError{Shape: -1, Reason: "arc points are collinear"}
	}
	x := (slope1*mid1.X - slope2*mid2.X + mid2.Y - mid1.Y) / (slope1 - slope2)
	return geom.Point{X: x, Y: slope1*(x-mid1.X) + mid1.Y}, nil
}

// bisectorSlope returns the slope of the perpendicular bisector of chord
// a-b. vertical is true when the chord is horizontal, which makes the
// bisector slope infinite.
func bisectorSlope(a, b geom.Point) (slope float64, vertical bool) {
	if b.Y == a.Y {
		return 0, true
	}
	return -(b.X - a.X) / (b.Y - a.Y), false
}

// Curvature returns the swept angle between p1 and p2 about center in
// degrees, signed by the direction of travel: positive for clockwise arcs
// (center-relative cross product of p1 and p2 negative), negative for
// counterclockwise ones. pMid is part of the three-point arc convention and
// carried for symmetry with CircleCenter.
func Curvature(p1, pMid, p2, center geom.Point) float64 {
	_ = pMid
	cross := (p1.X-center.X)*(p2.Y-center.Y) - (p1.Y-center.Y)*(p2.X-center.X)

	angleStart := math.Atan2(p1.Y-center.Y, p1.X-center.X)
	angleEnd := math.Atan2(p2.Y-center.Y, p2.X-center.X)
	delta := math.Atan2(math.Sin(angleEnd-angleStart), math.Cos(angleEnd-angleStart))

	deg := math.Abs(delta) * 180 / math.Pi
	if cross > 0 { // counterclockwise
		return -deg
	}
	return deg
}

// normalizeAngle maps an angle in radians onto [0, 2π).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// angleOf returns the angle of p about center.
func angleOf(p, center geom.Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}
