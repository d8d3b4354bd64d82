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
)

func TestParseLinestring(t *testing.T) {
	def, err := ParseCurve("LINESTRING(0 0 100, 1000 0 1100, 1000 500 1600)")
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Shapes) != 1 {
		t.Fatalf("have %d shapes, want 1", len(def.Shapes))
	}
	shape := def.Shapes[0]
	if shape.Kind != Line {
		t.Errorf("have kind %s, want line", shape.Kind)
	}
	if len(shape.Vertices) != 3 {
		t.Fatalf("have %d vertices, want 3", len(shape.Vertices))
	}
	v := shape.Vertices[1]
	if v.X != 1000 || v.Y != 0 || !v.HasM || v.M != 1100 {
		t.Errorf("vertex 1: have %+v, want {X:1000 Y:0 M:1100 HasM:true}", v)
	}
}

func TestParseCircularStringNullZ(t *testing.T) {
	def, err := ParseCurve("CIRCULARSTRING(0 1000 NULL 0, 707.107 707.107 NULL 785.398, 1000 0 NULL 1570.796)")
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Shapes) != 1 || def.Shapes[0].Kind != Arc {
		t.Fatalf("have %+v, want one arc shape", def.Shapes)
	}
	v := def.Shapes[0].Vertices[2]
	if v.X != 1000 || v.Y != 0 || !v.HasM || v.M != 1570.796 {
		t.Errorf("vertex 2: have %+v, want {X:1000 Y:0 M:1570.796 HasM:true}", v)
	}
}

func TestParseCompoundCurve(t *testing.T) {
	text := "COMPOUNDCURVE((0 0 0, 1000 0 1000), CIRCULARSTRING(1000 0 1000, 1707.107 292.893 1785.398, 2000 1000 2570.796))"
	def, err := ParseCurve(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Shapes) != 2 {
		t.Fatalf("have %d shapes, want 2", len(def.Shapes))
	}
	if def.Shapes[0].Kind != Line || def.Shapes[1].Kind != Arc {
		t.Errorf("have kinds (%s, %s), want (line, arc)", def.Shapes[0].Kind, def.Shapes[1].Kind)
	}
	if len(def.Shapes[0].Vertices) != 2 || len(def.Shapes[1].Vertices) != 3 {
		t.Errorf("have %d and %d vertices, want 2 and 3",
			len(def.Shapes[0].Vertices), len(def.Shapes[1].Vertices))
	}
	// Component shapes share their junction vertex.
	if def.Shapes[0].Vertices[1].X != def.Shapes[1].Vertices[0].X {
		t.Error("junction vertex does not match between components")
	}
}

func TestParseVerticesWithoutMeasure(t *testing.T) {
	def, err := ParseCurve("LINESTRING(0 0, 1000 0)")
	if err != nil {
		t.Fatal(err)
	}
	if def.Shapes[0].Vertices[0].HasM {
		t.Error("two-value vertex should not carry a measure")
	}
}

func TestParseCurveMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"unknown type", "MULTIPOINT(0 0)"},
		{"bad number", "LINESTRING(0 zero 0, 1000 0 1000)"},
		{"lonely coordinate", "LINESTRING(5, 1000 0)"},
		{"no vertices", "LINESTRING()"},
		{"bare component", "COMPOUNDCURVE(0 0 0)"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseCurve(test.text)
			if err == nil {
				t.Fatal("parse should fail")
			}
			if _, ok := err.(*MalformedInputError); !ok {
				t.Errorf("have %T, want *MalformedInputError", err)
			}
		})
	}
}

func TestDetectStartMeasure(t *testing.T) {
	m, err := DetectStartMeasure("COMPOUNDCURVE((250 0 4250, 1000 0 5000))")
	if err != nil {
		t.Fatal(err)
	}
	if m != 4250 {
		t.Errorf("have %g, want 4250", m)
	}

	if _, err := DetectStartMeasure("LINESTRING(0 0, 1000 0)"); err == nil {
		t.Error("detection should fail without measure attributes")
	}
}
