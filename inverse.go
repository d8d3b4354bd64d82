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
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Locate inverts Project: it returns the Cartesian point at the given
// station, offset and side on alignment a. A station outside every
// segment's measure range fails with an *OutOfRangeError; an offset that
// would pass through an arc's center fails with an
// *OffsetExceedsRadiusError carrying the maximum valid offset.
func Locate(a *Alignment, station, offset float64, side Side) (geom.Point, error) {
	segment := a.segmentAt(station)
	if segment == nil {
		return geom.Point{}, &OutOfRangeError{
			Msg: fmt.Sprintf("station %g is outside every segment's measure range", station)}
	}
	if offset >= onLineTolerance && side == OnLine {
		return geom.Point{}, fmt.Errorf("stakeout: side must be left or right when offset is nonzero")
	}
	if segment.Kind == Arc {
		return segment.arcLocate(station, offset, side)
	}
	return segment.lineLocate(station, offset, side), nil
}

// lineLocate interpolates the point at station along the line and moves it
// perpendicular to the direction of travel by offset on the requested side.
func (s *Segment) lineLocate(station, offset float64, side Side) geom.Point {
	start := s.Geometry[0]
	end := s.Geometry[len(s.Geometry)-1]
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)

	t := (station - s.StartMeasure) / length
	pt := geom.Point{X: start.X + dx*t, Y: start.Y + dy*t}
	if math.Abs(offset) < onLineTolerance {
		return pt
	}

	dx, dy = dx/length, dy/length
	px, py := -dy, dx // left perpendicular
	if side == Right {
		px, py = dy, -dx
	}
	return geom.Point{X: pt.X + px*offset, Y: pt.Y + py*offset}
}

// arcLocate rotates from the arc's start angle by the station's arc length
// and applies the offset radially. The side that converges toward the
// center (right on a clockwise arc, left on a counterclockwise one) cannot
// take an offset at or beyond the radius.
func (s *Segment) arcLocate(station, offset float64, side Side) (geom.Point, error) {
	start := s.Geometry[0]
	startAngle := angleOf(start, s.Center)
	arcLength := station - s.StartMeasure

	angle := startAngle + arcLength/s.Radius
	if s.Clockwise() {
		angle = startAngle - arcLength/s.Radius
	}
	onArc := geom.Point{
		X: s.Center.X + s.Radius*math.Cos(angle),
		Y: s.Center.Y + s.Radius*math.Sin(angle),
	}
	if math.Abs(offset) < onLineTolerance {
		return onArc, nil
	}

	rx := (onArc.X - s.Center.X) / s.Radius
	ry := (onArc.Y - s.Center.Y) / s.Radius

	converging := (side == Right && s.Clockwise()) || (side == Left && !s.Clockwise())
	if converging {
		if offset >= s.Radius {
			return geom.Point{}, &OffsetExceedsRadiusError{Side: side, Max: s.Radius}
		}
		return geom.Point{X: onArc.X - rx*offset, Y: onArc.Y - ry*offset}, nil
	}
	return geom.Point{X: onArc.X + rx*offset, Y: onArc.Y + ry*offset}, nil
}
