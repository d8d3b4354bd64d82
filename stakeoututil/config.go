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
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialroad/stakeout"
)

// AlignmentFromConfig builds the alignment described by the configuration:
// curve text (inline or from an '@'-prefixed file), start measure
// (auto-detected from the curve when unset) and corridor half-width.
// Skipped-shape warnings are logged, not fatal.
func AlignmentFromConfig(cfg *viper.Viper) (*stakeout.Alignment, error) {
	curve, err := curveText(cfg)
	if err != nil {
		return nil, err
	}

	startMeasure, err := startMeasure(cfg, curve)
	if err != nil {
		return nil, err
	}

	halfWidth := cfg.GetFloat64("Alignment.HalfWidth")
	name := cfg.GetString("Alignment.Name")

	alignment, warnings, err := stakeout.NewAlignment(name, curve, startMeasure, halfWidth)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		Log.WithField("alignment", name).Warn(w)
	}
	if len(alignment.Segments) == 0 {
		return nil, fmt.Errorf("stakeout: alignment %q: every component shape was degenerate", name)
	}
	return alignment, nil
}

// SessionFromConfig wraps the configured alignment in a session ready for
// queries.
func SessionFromConfig(cfg *viper.Viper) (*stakeout.Session, error) {
	alignment, err := AlignmentFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	session := stakeout.NewSession()
	session.Add(alignment)
	return session, nil
}

func curveText(cfg *viper.Viper) (string, error) {
	curve := strings.TrimSpace(cfg.GetString("Alignment.Curve"))
	if curve == "" {
		return "", fmt.Errorf("stakeout: no alignment curve configured; set Alignment.Curve")
	}
	if strings.HasPrefix(curve, "@") {
		b, err := os.ReadFile(os.ExpandEnv(curve[1:]))
		if err != nil {
			return "", fmt.Errorf("stakeout: reading alignment curve: %v", err)
		}
		curve = strings.TrimSpace(string(b))
	}
	return curve, nil
}

func startMeasure(cfg *viper.Viper, curve string) (float64, error) {
	raw := strings.TrimSpace(cfg.GetString("Alignment.StartMeasure"))
	if raw == "" {
		m, err := stakeout.DetectStartMeasure(curve)
		if err != nil {
			return 0, fmt.Errorf("stakeout: start measure not configured and not detectable from the curve: %v", err)
		}
		return m, nil
	}
	m, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("stakeout: parsing start measure: %v", err)
	}
	return m, nil
}
