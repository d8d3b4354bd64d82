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
	"strconv"
	"strings"
)

// ParseCurve parses measured curve text into a curve definition. The
// supported forms follow the common curve-text convention:
//
//	LINESTRING(x y [z] [m], ...)
//	CIRCULARSTRING(x y [z] [m], x y [z] [m], x y [z] [m], ...)
//	COMPOUNDCURVE((x y m, ...), CIRCULARSTRING(x y m, ...), ...)
//
// Each vertex carries 2 to 4 numeric attributes; with 3 the last is the
// measure, with 4 the third is Z and the fourth the measure. The literal
// NULL is accepted as an unknown Z and normalized to zero before numeric
// parsing. Failures are *MalformedInputError values naming the shape and
// token that could not be read.
func ParseCurve(text string) (CurveDef, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return CurveDef{}, &MalformedInputError{Shape: -1, Msg: "empty curve text"}
	}
	upper := strings.ToUpper(text)

	switch {
	case strings.HasPrefix(upper, "COMPOUNDCURVE"):
		return parseCompound(text)
	case strings.HasPrefix(upper, "CIRCULARSTRING"):
		vs, err := parseVertices(innerText(text), 0)
		if err != nil {
			return CurveDef{}, err
		}
		return CurveDef{Shapes: []Shape{{Kind: Arc, Vertices: vs}}}, nil
	case strings.HasPrefix(upper, "LINESTRING"):
		vs, err := parseVertices(innerText(text), 0)
		if err != nil {
			return CurveDef{}, err
		}
		return CurveDef{Shapes: []Shape{{Kind: Line, Vertices: vs}}}, nil
	}
	return CurveDef{}, &MalformedInputError{Shape: -1, Token: firstToken(text),
		Msg: "expected LINESTRING, CIRCULARSTRING or COMPOUNDCURVE"}
}

// DetectStartMeasure returns the measure attribute of the first vertex of
// the first shape in the curve text, the convention for an alignment's
// start measure.
func DetectStartMeasure(text string) (float64, error) {
	def, err := ParseCurve(text)
	if err != nil {
		return 0, err
	}
	for i, shape := range def.Shapes {
		if len(shape.Vertices) == 0 {
			continue
		}
		v := shape.Vertices[0]
		if !v.HasM {
			return 0, &MalformedInputError{Shape: i, Msg: "first vertex carries no measure attribute"}
		}
		return v.M, nil
	}
	return 0, &MalformedInputError{Shape: -1, Msg: "curve has no vertices"}
}

// parseCompound splits the body of a COMPOUNDCURVE into its component
// shapes. Components are separated by top-level commas; a component whose
// text names CIRCULARSTRING is an arc, any other parenthesized vertex list
// is a line component.
func parseCompound(text string) (CurveDef, error) {
	body, ok := bracketed(text)
	if !ok {
		return CurveDef{}, &MalformedInputError{Shape: -1, Msg: "unbalanced parentheses in compound curve"}
	}

	var def CurveDef
	for i, part := range splitTopLevel(body) {
		upper := strings.ToUpper(part)
		kind := Line
		if strings.Contains(upper, "CIRCULARSTRING") {
			kind = Arc
		}
		inner, ok := bracketed(part)
		if !ok {
			return CurveDef{}, &MalformedInputError{Shape: i, Token: firstToken(part),
				Msg: "component shape is not parenthesized"}
		}
		vs, err := parseVertices(inner, i)
		if err != nil {
			return CurveDef{}, err
		}
		def.Shapes = append(def.Shapes, Shape{Kind: kind, Vertices: vs})
	}
	if len(def.Shapes) == 0 {
		return CurveDef{}, &MalformedInputError{Shape: -1, Msg: "compound curve has no component shapes"}
	}
	return def, nil
}

// splitTopLevel splits s at commas that are not nested inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// bracketed returns the text between the first "(" and the last ")".
func bracketed(s string) (string, bool) {
	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end < open {
		return "", false
	}
	return s[open+1 : end], true
}

// innerText is bracketed for a single-shape text, tolerating a missing pair.
func innerText(s string) string {
	if body, ok := bracketed(s); ok {
		return body
	}
	return ""
}

// parseVertices reads a comma-separated vertex list. Each vertex has 2-4
// whitespace-separated values: x y, x y m, or x y z m. A NULL third value
// is an unknown Z and becomes zero.
func parseVertices(s string, shape int) ([]Vertex, error) {
	var vs []Vertex
	for _, pointText := range strings.Split(s, ",") {
		fields := strings.Fields(pointText)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &MalformedInputError{Shape: shape, Token: pointText,
				Msg: "vertex needs at least x and y"}
		}
		if len(fields) >= 3 && strings.EqualFold(fields[2], "NULL") {
			fields[2] = "0"
		}
		vals := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &MalformedInputError{Shape: shape, Token: f, Msg: "not a number"}
			}
			vals[i] = v
		}
		vertex := Vertex{X: vals[0], Y: vals[1]}
		switch {
		case len(vals) >= 4:
			vertex.M, vertex.HasM = vals[3], true
		case len(vals) == 3:
			vertex.M, vertex.HasM = vals[2], true
		}
		vs = append(vs, vertex)
	}
	if len(vs) == 0 {
		return nil, &MalformedInputError{Shape: shape, Msg: "shape has no vertices"}
	}
	return vs, nil
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		tok := fields[0]
		if i := strings.IndexAny(tok, "("); i > 0 {
			tok = tok[:i]
		}
		return tok
	}
	return s
}
