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

// Side classifies a point relative to the alignment direction of travel.
type Side int

const (
	OnLine Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "on-line"
}

// ParseSide reads a side choice from form or command-line input.
func ParseSide(s string) (Side, error) {
	switch {
	case s == "left" || s == "l" || s == "L" || s == "Left":
		return Left, nil
	case s == "right" || s == "r" || s == "R" || s == "Right":
		return Right, nil
	}
	return OnLine, fmt.Errorf("stakeout: %q is not a side; use left or right", s)
}

// A Result is the answer to a station-offset query.
type Result struct {
	Station float64
	Offset  float64
	Side    Side

	// Segment is the containing segment and Point the projection of the
	// query onto its centerline.
	Segment *Segment
	Point   geom.Point
}

const (
	// cacheTolerance is the per-axis distance within which two queries are
	// the same point for the one-entry containment cache.
	cacheTolerance = 1e-4
	// onLineTolerance is the threshold below which a signed offset counts
	// as on the line.
	onLineTolerance = 0.001
)

// A Projector answers station-offset queries against one alignment. It
// keeps a one-entry containment cache keyed on the query point, so the
// repeated queries a hovering cursor produces are not recomputed. Replace
// the projector (or call Reset) whenever the alignment is rebuilt.
type Projector struct {
	alignment *Alignment

	cached       bool
	cachePoint   geom.Point
	cacheSegment *Segment
	cacheProj    geom.Point
}

// NewProjector returns a projector for a.
func NewProjector(a *Alignment) *Projector {
	return &Projector{alignment: a}
}

// Reset drops the cached containment result.
func (p *Projector) Reset() {
	p.cached = false
	p.cacheSegment = nil
}

// Project maps a query point to (station, offset, side) using the nearest
// segment whose corridor contains it. When no corridor contains the point
// the failure is an *OutOfRangeError and the projector remains usable.
func (p *Projector) Project(q geom.Point) (Result, error) {
	segment, proj := p.contain(q)
	if segment == nil {
		return Result{}, &OutOfRangeError{
			Msg: fmt.Sprintf("point (%g, %g) is not inside any corridor", q.X, q.Y)}
	}

	r := Result{Segment: segment, Point: proj, Offset: Distance(proj, q)}
	if segment.Kind == Arc {
		r.Station = segment.arcStation(proj)
		r.Side = segment.arcSide(q)
	} else {
		r.Station = segment.StartMeasure + Distance(segment.Geometry[0], proj)
		r.Side = segment.lineSide(q, proj)
	}
	return r, nil
}

// contain finds the segment owning q: among all segments whose corridor
// contains q, the one whose centerline is closest. The result, including a
// miss, is cached for the next query at the same point.
func (p *Projector) contain(q geom.Point) (*Segment, geom.Point) {
	if p.cached &&
		math.Abs(q.X-p.cachePoint.X) < cacheTolerance &&
		math.Abs(q.Y-p.cachePoint.Y) < cacheTolerance {
		return p.cacheSegment, p.cacheProj
	}
	p.cached = true
	p.cachePoint = q
	p.cacheSegment = nil
	p.cacheProj = geom.Point{}

	minOffset := math.Inf(1)
	for _, segment := range p.alignment.candidates(q) {
		if !segment.Contains(q) {
			continue
		}
		proj := segment.ClosestPoint(q)
		if offset := Distance(proj, q); offset < minOffset {
			minOffset = offset
			p.cacheSegment = segment
			p.cacheProj = proj
		}
	}
	return p.cacheSegment, p.cacheProj
}

// arcStation converts a point on the arc's circle into a station: the
// angular progress from the arc's start in the direction of travel, scaled
// by the radius.
func (s *Segment) arcStation(proj geom.Point) float64 {
	start := s.Geometry[0]
	if Distance(start, proj) < onLineTolerance {
		return s.StartMeasure
	}
	diff := angleOf(proj, s.Center) - angleOf(start, s.Center)
	if s.Clockwise() {
		if diff > 0 {
			diff -= 2 * math.Pi
		}
	} else {
		if diff < 0 {
			diff += 2 * math.Pi
		}
	}
	return s.StartMeasure + s.Radius*math.Abs(diff)
}

// lineSide classifies q against the line's direction of travel: a positive
// cross product of the direction with the projection-to-query vector is
// left.
func (s *Segment) lineSide(q, proj geom.Point) Side {
	start := s.Geometry[0]
	end := s.Geometry[len(s.Geometry)-1]
	cross := (end.X-start.X)*(q.Y-proj.Y) - (end.Y-start.Y)*(q.X-proj.X)
	switch {
	case math.Abs(cross) < onLineTolerance:
		return OnLine
	case cross > 0:
		return Left
	default:
		return Right
	}
}

// arcSide classifies q against an arc: outside the circle is left on a
// clockwise arc and right on a counterclockwise one.
func (s *Segment) arcSide(q geom.Point) Side {
	direction := -1.0
	if s.Clockwise() {
		direction = 1
	}
	signed := direction * (Distance(q, s.Center) - s.Radius)
	switch {
	case math.Abs(signed) < onLineTolerance:
		return OnLine
	case signed > 0:
		return Left
	default:
		return Right
	}
}
