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

import "fmt"

// DegenerateGeometryError reports a shape that cannot form a valid segment:
// collinear arc points, a zero-length line, or too few vertices. During
// decomposition it is recoverable per shape; the offending shape is skipped
// and the remaining shapes are processed.
type DegenerateGeometryError struct {
	Shape  int // index of the offending shape within the curve definition, or -1
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	if e.Shape >= 0 {
		return fmt.Sprintf("stakeout: degenerate geometry in shape %d: %s", e.Shape, e.Reason)
	}
	return "stakeout: degenerate geometry: " + e.Reason
}

// OutOfRangeError reports a query no segment can answer: a point outside
// every corridor, or a station outside every measure range.
type OutOfRangeError struct {
	Msg string
}

func (e *OutOfRangeError) Error() string {
	return "stakeout: out of range: " + e.Msg
}

// OffsetExceedsRadiusError reports an inverse lookup whose offset, applied on
// the side of an arc that converges toward its center, would pass through the
// center. Max is the largest valid offset on that side.
type OffsetExceedsRadiusError struct {
	Side Side
	Max  float64
}

func (e *OffsetExceedsRadiusError) Error() string {
	return fmt.Sprintf("stakeout: offset exceeds corridor radius: the maximum offset on the %s side is %.2f", e.Side, e.Max)
}

// MalformedInputError reports curve text that cannot be parsed into shapes
// and vertices. Shape is the index of the shape being parsed, or -1 before
// any shape boundary was identified.
type MalformedInputError struct {
	Shape int
	Token string
	Msg   string
}

func (e *MalformedInputError) Error() string {
	s := "stakeout: malformed curve input"
	if e.Shape >= 0 {
		s += fmt.Sprintf(" in shape %d", e.Shape)
	}
	if e.Token != "" {
		s += fmt.Sprintf(" at %q", e.Token)
	}
	return s + ": " + e.Msg
}
