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
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/lnashier/viper"

	"github.com/spatialroad/stakeout"
)

func init() {
	Log.SetOutput(io.Discard)
}

func testConfig() *viper.Viper {
	cfg := viper.New()
	cfg.Set("Alignment.Name", "route 12")
	cfg.Set("Alignment.Curve", "LINESTRING(0 0 100, 1000 0 1100)")
	cfg.Set("Alignment.StartMeasure", "100")
	cfg.Set("Alignment.HalfWidth", 500.0)
	return cfg
}

func TestAlignmentFromConfig(t *testing.T) {
	a, err := AlignmentFromConfig(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if a.Name != "route 12" {
		t.Errorf("have name %q, want \"route 12\"", a.Name)
	}
	if a.StartMeasure != 100 {
		t.Errorf("have start measure %g, want 100", a.StartMeasure)
	}
	if len(a.Segments) != 1 {
		t.Fatalf("have %d segments, want 1", len(a.Segments))
	}
	if a.EndMeasure() != 1100 {
		t.Errorf("have end measure %g, want 1100", a.EndMeasure())
	}
}

func TestAlignmentFromConfigAutoStartMeasure(t *testing.T) {
	cfg := testConfig()
	cfg.Set("Alignment.StartMeasure", "")
	a, err := AlignmentFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a.StartMeasure != 100 {
		t.Errorf("have start measure %g, want 100 detected from the curve", a.StartMeasure)
	}
}

func TestAlignmentFromConfigCurveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.txt")
	if err := os.WriteFile(path, []byte("LINESTRING(0 0 100, 1000 0 1100)\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.Set("Alignment.Curve", "@"+path)
	a, err := AlignmentFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Segments) != 1 {
		t.Errorf("have %d segments, want 1", len(a.Segments))
	}
}

func TestAlignmentFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(cfg *viper.Viper)
	}{
		{"no curve", func(cfg *viper.Viper) { cfg.Set("Alignment.Curve", "") }},
		{"missing curve file", func(cfg *viper.Viper) { cfg.Set("Alignment.Curve", "@/no/such/file") }},
		{"malformed curve", func(cfg *viper.Viper) { cfg.Set("Alignment.Curve", "MULTIPOINT(0 0)") }},
		{"bad start measure", func(cfg *viper.Viper) { cfg.Set("Alignment.StartMeasure", "the beginning") }},
		{"half-width out of range", func(cfg *viper.Viper) { cfg.Set("Alignment.HalfWidth", 0.5) }},
		{"all shapes degenerate", func(cfg *viper.Viper) {
			cfg.Set("Alignment.Curve", "CIRCULARSTRING(0 0 0, 500 0 500, 1000 0 1000)")
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := testConfig()
			test.edit(cfg)
			if _, err := AlignmentFromConfig(cfg); err == nil {
				t.Error("configuration should be rejected")
			}
		})
	}
}

func TestSessionFromConfig(t *testing.T) {
	session, err := SessionFromConfig(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if session.Active() == nil {
		t.Fatal("session has no active alignment")
	}
	r, err := session.Project(geom.Point{X: 500, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	if r.Station != 600 {
		t.Errorf("have station %g, want 600", r.Station)
	}
	if r.Side != stakeout.Left {
		t.Errorf("have side %s, want left", r.Side)
	}
}
