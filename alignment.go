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

// Package stakeout references points to measured road alignments: it
// decomposes compound measured curves into line and arc segments, builds a
// fixed-half-width corridor around each segment, and converts between
// Cartesian coordinates and (station, offset, side).
package stakeout

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// Version is the version of this copy of Stakeout.
const Version = "1.1.0"

// Corridor half-width limits in alignment units.
const (
	MinHalfWidth = 1
	MaxHalfWidth = 10000
)

// An Alignment is a measured reference curve decomposed into
// corridor-carrying segments. It is immutable once built; to change it,
// build a replacement.
type Alignment struct {
	Name         string
	StartMeasure float64
	HalfWidth    float64
	Segments     []*Segment

	index *rtree.Rtree
}

// NewAlignment parses and decomposes curve text into an alignment.
// halfWidth is the corridor half-width applied to every segment and must be
// within [MinHalfWidth, MaxHalfWidth]. The returned warnings describe
// component shapes that were skipped as degenerate; the error is non-nil
// only when no alignment could be built at all.
func NewAlignment(name, curveText string, startMeasure, halfWidth float64) (*Alignment, []error, error) {
	def, err := ParseCurve(curveText)
	if err != nil {
		return nil, nil, err
	}
	return NewAlignmentFromDef(name, def, startMeasure, halfWidth)
}

// NewAlignmentFromDef builds an alignment from an already-structured curve
// definition.
func NewAlignmentFromDef(name string, def CurveDef, startMeasure, halfWidth float64) (*Alignment, []error, error) {
	if halfWidth < MinHalfWidth || halfWidth > MaxHalfWidth {
		return nil, nil, fmt.Errorf("stakeout: corridor half-width %g is outside [%d, %d]",
			halfWidth, MinHalfWidth, MaxHalfWidth)
	}
	segments, warnings := Decompose(def, startMeasure, halfWidth)
	a := &Alignment{
		Name:         name,
		StartMeasure: startMeasure,
		HalfWidth:    halfWidth,
		Segments:     segments,
		index:        rtree.NewTree(25, 50),
	}
	for _, s := range segments {
		if s.Buffer() != nil {
			a.index.Insert(s)
		}
	}
	return a, warnings, nil
}

// EndMeasure returns the measure at the end of the last segment, or the
// start measure for an empty alignment.
func (a *Alignment) EndMeasure() float64 {
	if len(a.Segments) == 0 {
		return a.StartMeasure
	}
	return a.Segments[len(a.Segments)-1].EndMeasure
}

// candidates returns the segments whose corridor bounds contain p.
func (a *Alignment) candidates(p geom.Point) []*Segment {
	var segments []*Segment
	for _, item := range a.index.SearchIntersect(geom.NewBoundsPoint(p)) {
		segments = append(segments, item.(*Segment))
	}
	return segments
}

// segmentAt returns the segment whose measure range contains station,
// inclusive at both ends, or nil.
func (a *Alignment) segmentAt(station float64) *Segment {
	for _, s := range a.Segments {
		if s.StartMeasure <= station && station <= s.EndMeasure {
			return s
		}
	}
	return nil
}

// A PointRecord is the attribute set materialized for a clicked or located
// point.
type PointRecord struct {
	Point        geom.Point
	Station      float64
	Offset       float64
	Side         Side
	Alignment    string
	StartMeasure float64
}

// A Session holds the open alignments and the active selection. It replaces
// the host UI's global state with an explicit object: all interactive
// queries go through the session, and switching or replacing an alignment
// invalidates the projection cache. A session is not safe for concurrent
// use.
type Session struct {
	alignments []*Alignment
	active     int
	projector  *Projector
}

// NewSession returns an empty session with no active alignment.
func NewSession() *Session {
	return &Session{active: -1}
}

// Add appends a to the session and makes it the active alignment, returning
// its index.
func (s *Session) Add(a *Alignment) int {
	s.alignments = append(s.alignments, a)
	s.active = len(s.alignments) - 1
	s.projector = NewProjector(a)
	return s.active
}

// SetActive selects alignment i, dropping any cached projection state.
func (s *Session) SetActive(i int) error {
	if i < 0 || i >= len(s.alignments) {
		return fmt.Errorf("stakeout: no alignment at index %d", i)
	}
	s.active = i
	s.projector = NewProjector(s.alignments[i])
	return nil
}

// Active returns the active alignment, or nil when the session is empty.
func (s *Session) Active() *Alignment {
	if s.active < 0 {
		return nil
	}
	return s.alignments[s.active]
}

// Alignments returns the session's alignments in insertion order.
func (s *Session) Alignments() []*Alignment { return s.alignments }

// Clear removes every alignment and resets the selection.
func (s *Session) Clear() {
	s.alignments = nil
	s.active = -1
	s.projector = nil
}

// Project maps a query point to (station, offset, side) on the active
// alignment.
func (s *Session) Project(p geom.Point) (Result, error) {
	if s.projector == nil {
		return Result{}, &OutOfRangeError{Msg: "no active alignment"}
	}
	return s.projector.Project(p)
}

// Locate is the inverse of Project on the active alignment.
func (s *Session) Locate(station, offset float64, side Side) (geom.Point, error) {
	a := s.Active()
	if a == nil {
		return geom.Point{}, &OutOfRangeError{Msg: "no active alignment"}
	}
	return Locate(a, station, offset, side)
}

// MaterializePoint projects p and, when it is in range, returns the point
// record a click at p produces.
func (s *Session) MaterializePoint(p geom.Point) (PointRecord, error) {
	r, err := s.Project(p)
	if err != nil {
		return PointRecord{}, err
	}
	a := s.Active()
	return PointRecord{
		Point:        p,
		Station:      r.Station,
		Offset:       r.Offset,
		Side:         r.Side,
		Alignment:    a.Name,
		StartMeasure: a.StartMeasure,
	}, nil
}
