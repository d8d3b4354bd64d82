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
	"github.com/gonum/floats"
)

// SegmentKind distinguishes the two segment geometries.
type SegmentKind int

const (
	// Line is a straight segment between two vertices.
	Line SegmentKind = iota
	// Arc is a circular segment through three vertices: start, an interior
	// point, and end.
	Arc
)

func (k SegmentKind) String() string {
	if k == Arc {
		return "arc"
	}
	return "line"
}

// A Segment is one piece of an alignment: a line or circular arc carrying a
// contiguous linear-measure range and a fixed-half-width corridor polygon.
// Segments are immutable once built.
type Segment struct {
	Kind     SegmentKind
	Geometry []geom.Point // 2 vertices for Line; 3 for Arc.

	StartMeasure float64
	EndMeasure   float64

	// Center and Radius are derived from the three defining points of an
	// arc. They are unset for lines.
	Center geom.Point
	Radius float64

	// SweepCorrection is the relative amount by which the corridor sweep
	// was adjusted to agree with the measure span; zero when the geometric
	// estimate already agreed.
	SweepCorrection float64

	curvature float64 // signed sweep in degrees; clockwise positive
	halfWidth float64
	buffer    geom.Polygon
}

// NewSegment builds a segment and its corridor polygon. halfWidth is the
// corridor half-width shared by all segments of one alignment. Degenerate
// input (collinear arc points, a zero-length line, too few vertices, an
// empty measure range) fails with a *DegenerateGeometryError.
func NewSegment(kind SegmentKind, vertices []geom.Point, startMeasure, endMeasure, halfWidth float64) (*Segment, error) {
	if endMeasure <= startMeasure {
		return nil, &DegenerateGeometryError{Shape: -1,
			Reason: fmt.Sprintf("measure range [%g, %g] is empty", startMeasure, endMeasure)}
	}
	s := &Segment{
		Kind:         kind,
		Geometry:     vertices,
		StartMeasure: startMeasure,
		EndMeasure:   endMeasure,
		halfWidth:    halfWidth,
	}
	switch kind {
	case Line:
		if len(vertices) < 2 {
			return nil, &DegenerateGeometryError{Shape: -1, Reason: "line has insufficient vertices"}
		}
		if Distance(vertices[0], vertices[len(vertices)-1]) == 0 {
			return nil, &DegenerateGeometryError{Shape: -1, Reason: "line has zero length"}
		}
		s.lineBuffer()
	case Arc:
		if len(vertices) < 3 {
			return nil, &DegenerateGeometryError{Shape: -1, Reason: "arc has insufficient vertices"}
		}
		center, err := CircleCenter(vertices[0], vertices[1], vertices[2])
		if err != nil {
			return nil, err
		}
		s.Center = center
		s.Radius = Distance(center, vertices[0])
		if s.Radius <= 0 {
			return nil, &DegenerateGeometryError{Shape: -1, Reason: "arc has zero radius"}
		}
		s.curvature = Curvature(vertices[0], vertices[1], vertices[2], center)
		s.arcBuffer()
	default:
		return nil, &DegenerateGeometryError{Shape: -1, Reason: fmt.Sprintf("unknown segment kind %d", kind)}
	}
	return s, nil
}

// Buffer returns the segment's corridor polygon. A nil buffer means the
// segment participates in no containment test.
func (s *Segment) Buffer() geom.Polygon { return s.buffer }

// HalfWidth returns the corridor half-width the buffer was built with.
func (s *Segment) HalfWidth() float64 { return s.halfWidth }

// Curvature returns the cached signed sweep of an arc in degrees; clockwise
// is positive. It is zero for lines.
func (s *Segment) Curvature() float64 { return s.curvature }

// Clockwise reports whether an arc sweeps clockwise.
func (s *Segment) Clockwise() bool { return s.curvature > 0 }

// Bounds returns the extent of the corridor polygon so segments can be held
// in a spatial index.
func (s *Segment) Bounds() *geom.Bounds {
	if s.buffer == nil {
		return geom.NewBoundsPoint(s.Geometry[0])
	}
	return s.buffer.Bounds()
}

// Contains reports whether p lies within the segment's corridor. Points on
// the corridor edge count as contained.
func (s *Segment) Contains(p geom.Point) bool {
	if s.buffer == nil {
		return false
	}
	return p.Within(s.buffer) != geom.Outside
}

// ClosestPoint returns the nearest point to p on the segment's centerline.
// For an arc this is the radial projection onto the circle of Radius; for a
// line it is the perpendicular projection clamped to the segment.
func (s *Segment) ClosestPoint(p geom.Point) geom.Point {
	if s.Kind == Arc {
		d := Distance(p, s.Center)
		if d == 0 {
			// The center projects ambiguously; pick the zero-angle point.
			return geom.Point{X: s.Center.X + s.Radius, Y: s.Center.Y}
		}
		return geom.Point{
			X: s.Center.X + (p.X-s.Center.X)/d*s.Radius,
			Y: s.Center.Y + (p.Y-s.Center.Y)/d*s.Radius,
		}
	}
	start := s.Geometry[0]
	end := s.Geometry[len(s.Geometry)-1]
	dx, dy := end.X-start.X, end.Y-start.Y
	t := ((p.X-start.X)*dx + (p.Y-start.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return geom.Point{X: start.X + t*dx, Y: start.Y + t*dy}
}

// lineBuffer builds the rectangular corridor around a line segment: each
// endpoint offset by the half-width along both perpendiculars of the line
// direction.
func (s *Segment) lineBuffer() {
	start := s.Geometry[0]
	end := s.Geometry[len(s.Geometry)-1]
	dx, dy := end.X-start.X, end.Y-start.Y
	length := math.Hypot(dx, dy)
	dx, dy = dx/length, dy/length
	px, py := -dy, dx

	w := s.halfWidth
	ring := []geom.Point{
		{X: start.X + px*w, Y: start.Y + py*w},
		{X: start.X - px*w, Y: start.Y - py*w},
		{X: end.X - px*w, Y: end.Y - py*w},
		{X: end.X + px*w, Y: end.Y + py*w},
	}
	ring = append(ring, ring[0])
	s.buffer = geom.Polygon{ring}
}

// arcDirection determines whether travel from p1 through pMid to p2 about
// center is clockwise, from the signs of the consecutive center-relative
// cross products. When the two cross products disagree in sign, the larger
// magnitude wins.
func arcDirection(p1, pMid, p2, center geom.Point) (clockwise bool) {
	crossStartMid := (p1.X-center.X)*(pMid.Y-center.Y) - (p1.Y-center.Y)*(pMid.X-center.X)
	crossMidEnd := (pMid.X-center.X)*(p2.Y-center.Y) - (pMid.Y-center.Y)*(p2.X-center.X)

	if crossStartMid*crossMidEnd > 0 {
		return crossStartMid < 0
	}
	if crossMidEnd < 0 {
		return math.Abs(crossStartMid) < math.Abs(crossMidEnd)
	}
	return math.Abs(crossStartMid) > math.Abs(crossMidEnd)
}

// arcSweep returns the swept angle in radians from p1 to p2 about center,
// traveling through pMid in the given direction. When the interior point
// does not lie between start and end the complementary angle is the correct
// reading.
func arcSweep(p1, pMid, p2, center geom.Point, clockwise bool) float64 {
	a1 := normalizeAngle(angleOf(p1, center))
	aMid := normalizeAngle(angleOf(pMid, center))
	a2 := normalizeAngle(angleOf(p2, center))

	var sweep float64
	if clockwise {
		if a1 > a2 {
			sweep = a1 - a2
		} else {
			sweep = a1 + 2*math.Pi - a2
		}
	} else {
		if a2 > a1 {
			sweep = a2 - a1
		} else {
			sweep = 2*math.Pi - a1 + a2
		}
	}
	if !angleBetween(a1, aMid, a2, clockwise) {
		sweep = 2*math.Pi - sweep
	}
	return sweep
}

// angleBetween reports whether mid lies on the way from a to b in the given
// direction, with all angles normalized to [0, 2π).
func angleBetween(a, mid, b float64, clockwise bool) bool {
	if clockwise {
		if a > b {
			return a >= mid && mid >= b
		}
		return a >= mid || mid >= b
	}
	if a < b {
		return a <= mid && mid <= b
	}
	return a <= mid || mid <= b
}

// arcBuffer builds the ring-sector corridor around an arc: the region
// between Radius+halfWidth and max(Radius-halfWidth, 0) swept through the
// arc's angular range.
func (s *Segment) arcBuffer() {
	p1, pMid, p2 := s.Geometry[0], s.Geometry[1], s.Geometry[2]
	c := s.Center

	clockwise := arcDirection(p1, pMid, p2, c)
	sweep := arcSweep(p1, pMid, p2, c, clockwise)

	// The three-point construction can land on the long way around the
	// circle. Trust the measure span when the implied arc length disagrees
	// with it by more than one unit.
	span := s.EndMeasure - s.StartMeasure
	if math.Abs(sweep*s.Radius-span) > 1 {
		corrected := span / s.Radius
		if sweep > 0 {
			s.SweepCorrection = math.Abs(corrected-sweep) / sweep
		}
		sweep = corrected
	}

	outer := s.Radius + s.halfWidth
	inner := math.Max(s.Radius-s.halfWidth, 0)

	a1 := normalizeAngle(angleOf(p1, c))
	n := int(math.Max(50, sweep*180/math.Pi/2))
	angles := make([]float64, n)
	if clockwise {
		floats.Span(angles, a1, a1-sweep)
	} else {
		floats.Span(angles, a1, a1+sweep)
	}

	ring := make([]geom.Point, 0, 2*n+1)
	for _, a := range angles {
		ring = append(ring, geom.Point{X: c.X + outer*math.Cos(a), Y: c.Y + outer*math.Sin(a)})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, geom.Point{X: c.X + inner*math.Cos(angles[i]), Y: c.Y + inner*math.Sin(angles[i])})
	}
	ring = append(ring, ring[0])
	s.buffer = geom.Polygon{ring}
}
