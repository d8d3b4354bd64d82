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

package stakeoututil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spatialroad/stakeout"
)

// runCommand runs the root command with args against the test alignment
// configuration and returns its output.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	Cfg.Set("Alignment.Name", "route 12")
	Cfg.Set("Alignment.Curve", "COMPOUNDCURVE((0 0 0, 1000 0 1000), CIRCULARSTRING(1000 0 1000, 1707.1067811865476 292.8932188134524 1785.3981633974483, 2000 1000 2570.7963267948966))")
	Cfg.Set("Alignment.StartMeasure", "0")
	Cfg.Set("Alignment.HalfWidth", 500.0)

	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestVersionCmd(t *testing.T) {
	out := runCommand(t, "version")
	if want := "Stakeout v" + stakeout.Version; !strings.Contains(out, want) {
		t.Errorf("have %q, want it to contain %q", out, want)
	}
}

func TestParseCmd(t *testing.T) {
	out := runCommand(t, "parse")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 { // header plus two segments
		t.Fatalf("have %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "line") || !strings.Contains(lines[2], "arc") {
		t.Errorf("have:\n%s\nwant a line segment then an arc segment", out)
	}
	if !strings.Contains(lines[2], "1000.000") {
		t.Errorf("have:\n%s\nwant the arc radius 1000.000", out)
	}
}

func TestProjectCmd(t *testing.T) {
	out := runCommand(t, "project", "500", "100")
	if !strings.Contains(out, "Station: 500.0000") {
		t.Errorf("have %q, want station 500.0000", out)
	}
	if !strings.Contains(out, "Side: left") {
		t.Errorf("have %q, want side left", out)
	}
}

func TestLocateCmd(t *testing.T) {
	out := runCommand(t, "locate", "500", "100", "right")
	if !strings.Contains(out, "X: 500.0000") || !strings.Contains(out, "Y: -100.0000") {
		t.Errorf("have %q, want (500.0000, -100.0000)", out)
	}
}

func TestBuffersCmd(t *testing.T) {
	out := runCommand(t, "buffers")
	if !strings.Contains(out, "FeatureCollection") {
		t.Errorf("have %q, want a GeoJSON feature collection", out)
	}
	if !strings.Contains(out, "segment_type") {
		t.Errorf("have %q, want segment_type properties", out)
	}
}
