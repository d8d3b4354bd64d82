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

	"github.com/ctessum/geom"
)

// A Vertex is one curve vertex with its optional linear-measure attribute.
type Vertex struct {
	X, Y float64
	M    float64
	HasM bool
}

// Point returns the vertex coordinates.
func (v Vertex) Point() geom.Point { return geom.Point{X: v.X, Y: v.Y} }

// A Shape is one component of a curve definition: a polyline (Line) or a
// circular string of 3 or more points (Arc).
type Shape struct {
	Kind     SegmentKind
	Vertices []Vertex
}

// A CurveDef is a parsed curve definition: a single shape, or the ordered
// components of a compound curve.
type CurveDef struct {
	Shapes []Shape
}

// sweepCorrectionWarn is the relative sweep adjustment above which the
// measure-span override is reported instead of silently applied, since a
// large disagreement usually means the measure data contradicts the
// geometry rather than a minor fitting error.
const sweepCorrectionWarn = 0.05

// Decompose turns a curve definition into the ordered, measure-contiguous
// segment list for one alignment. Every consecutive vertex pair of a line
// shape becomes its own segment; a 3-point circular shape becomes one arc;
// longer circular strings are windows of 3 points advancing by 2, so
// consecutive arcs share their boundary point. End measures come from the
// measure attribute of each window's final vertex, falling back to
// accumulated chord or arc length when the vertex carries none.
//
// Shapes that cannot form a valid segment are skipped and reported in the
// returned warning list; decomposition continues with the remaining shapes.
func Decompose(def CurveDef, startMeasure, halfWidth float64) ([]*Segment, []error) {
	var segments []*Segment
	var warnings []error
	measure := startMeasure

	for i, shape := range def.Shapes {
		switch shape.Kind {
		case Line:
			if len(shape.Vertices) < 2 {
				warnings = append(warnings, &DegenerateGeometryError{Shape: i, Reason: "line has insufficient vertices"})
				continue
			}
			for j := 0; j+1 < len(shape.Vertices); j++ {
				a, b := shape.Vertices[j], shape.Vertices[j+1]
				pts := []geom.Point{a.Point(), b.Point()}
				end := measure + Distance(pts[0], pts[1])
				if b.HasM {
					end = b.M
				}
				seg, err := NewSegment(Line, pts, measure, end, halfWidth)
				if err != nil {
					warnings = append(warnings, shapeError(i, err))
					continue
				}
				segments = append(segments, seg)
				measure = end
			}
		case Arc:
			if len(shape.Vertices) < 3 {
				warnings = append(warnings, &DegenerateGeometryError{Shape: i, Reason: "circular string has insufficient vertices"})
				continue
			}
			for j := 0; j+2 < len(shape.Vertices); j += 2 {
				window := shape.Vertices[j : j+3]
				pts := []geom.Point{window[0].Point(), window[1].Point(), window[2].Point()}
				end, err := arcEndMeasure(window, pts, measure)
				if err != nil {
					warnings = append(warnings, shapeError(i, err))
					continue
				}
				seg, err := NewSegment(Arc, pts, measure, end, halfWidth)
				if err != nil {
					warnings = append(warnings, shapeError(i, err))
					continue
				}
				if seg.SweepCorrection > sweepCorrectionWarn {
					warnings = append(warnings, fmt.Errorf(
						"stakeout: shape %d: arc sweep adjusted by %.0f%% to match the declared measure span; the measure data may contradict the geometry",
						i, seg.SweepCorrection*100))
				}
				segments = append(segments, seg)
				measure = end
			}
		default:
			warnings = append(warnings, &DegenerateGeometryError{Shape: i, Reason: "empty or unknown shape"})
		}
	}
	return segments, warnings
}

// arcEndMeasure returns the end measure of a 3-point arc window: the measure
// attribute of the final vertex when present, otherwise the running measure
// plus the arc length implied by the window's geometry.
func arcEndMeasure(window []Vertex, pts []geom.Point, measure float64) (float64, error) {
	if window[2].HasM {
		return window[2].M, nil
	}
	center, err := CircleCenter(pts[0], pts[1], pts[2])
	if err != nil {
		return 0, err
	}
	radius := Distance(center, pts[0])
	clockwise := arcDirection(pts[0], pts[1], pts[2], center)
	return measure + radius*arcSweep(pts[0], pts[1], pts[2], center, clockwise), nil
}

// shapeError stamps err with the index of the shape being decomposed.
func shapeError(shape int, err error) error {
	if d, ok := err.(*DegenerateGeometryError); ok {
		return &DegenerateGeometryError{Shape: shape, Reason: d.Reason}
	}
	return fmt.Errorf("stakeout: shape %d: %w", shape, err)
}
