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
	"testing"

	"github.com/ctessum/geom"
)

func TestNewAlignmentSkipsDegenerateShape(t *testing.T) {
	// The circular component is collinear and cannot become an arc; the
	// alignment is still usable with the line component alone.
	a, warnings, err := NewAlignment("partial",
		"COMPOUNDCURVE(CIRCULARSTRING(0 0 0, 500 0 500, 1000 0 1000), (1000 0 1000, 2000 0 2000))", 0, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Fatalf("have %d warnings, want 1", len(warnings))
	}
	if _, ok := warnings[0].(*DegenerateGeometryError); !ok {
		t.Errorf("have %T, want *DegenerateGeometryError", warnings[0])
	}
	if len(a.Segments) != 1 {
		t.Fatalf("have %d segments, want 1", len(a.Segments))
	}
	if a.Segments[0].Kind != Line {
		t.Errorf("have kind %s, want line", a.Segments[0].Kind)
	}

	// The surviving segment still answers queries.
	r, err := NewProjector(a).Project(geom.Point{X: 1500, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	if r.Side != Left {
		t.Errorf("have side %s, want left", r.Side)
	}
}

func TestNewAlignmentHalfWidthRange(t *testing.T) {
	for _, halfWidth := range []float64{0, 0.5, -10, 10001} {
		_, _, err := NewAlignment("bad", "LINESTRING(0 0 0, 1000 0 1000)", 0, halfWidth)
		if err == nil {
			t.Errorf("half-width %g should be rejected", halfWidth)
		}
	}
}

func TestNewAlignmentMalformedCurve(t *testing.T) {
	_, _, err := NewAlignment("bad", "POLYGON((0 0, 1 0, 1 1, 0 0))", 0, 500)
	if err == nil {
		t.Fatal("unsupported curve text should be rejected")
	}
	if _, ok := err.(*MalformedInputError); !ok {
		t.Errorf("have %T, want *MalformedInputError", err)
	}
}

func TestEndMeasure(t *testing.T) {
	a := lineAlignment(t)
	if a.EndMeasure() != 1000 {
		t.Errorf("have %g, want 1000", a.EndMeasure())
	}

	empty, _, err := NewAlignmentFromDef("empty", CurveDef{Shapes: []Shape{
		{Kind: Arc, Vertices: []Vertex{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
	}}, 250, 500)
	if err != nil {
		t.Fatal(err)
	}
	if empty.EndMeasure() != 250 {
		t.Errorf("empty alignment: have %g, want the start measure 250", empty.EndMeasure())
	}
}
