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

// Package stakeoututil holds the configuration and command-line interface
// for the stakeout alignment engine.
package stakeoututil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/ctessum/geom"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialroad/stakeout"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to Stakeout.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Alignment.Name",
			usage: `
              Alignment.Name is the name of the road alignment being
              referenced. It is stored on every materialized point.`,
			shorthand:  "n",
			defaultVal: "alignment",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Alignment.Curve",
			usage: `
              Alignment.Curve is the measured curve text for the alignment
              (LINESTRING, CIRCULARSTRING or COMPOUNDCURVE with per-vertex
              measures), or an '@'-prefixed path to a file holding it.`,
			shorthand:  "c",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Alignment.StartMeasure",
			usage: `
              Alignment.StartMeasure is the measure at the alignment origin.
              Leave empty to detect it from the first vertex of the curve.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Alignment.HalfWidth",
			usage: `
              Alignment.HalfWidth is the corridor half-width around each
              segment centerline, in alignment units (1-10000). Points
              outside every corridor are out of range.`,
			shorthand:  "w",
			defaultVal: 500.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "addr",
			usage: `
              addr is the address for the interaction-surface server to
              listen on.`,
			defaultVal: "localhost:8080",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("STAKEOUT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(parseCmd)
	Root.AddCommand(projectCmd)
	Root.AddCommand(locateCmd)
	Root.AddCommand(buffersCmd)
	Root.AddCommand(serveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("stakeout: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Log is the logger for the command layer.
var Log = logrus.New()

// Root is the main command.
var Root = &cobra.Command{
	Use:   "stakeout",
	Short: "A station-offset engine for measured road alignments.",
	Long: `Stakeout references points to measured road alignments. It decomposes
a measured curve into line and circular-arc segments, builds a fixed-width
corridor around each one, and converts between map coordinates and the
(station, offset, side) coordinates used in road engineering.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'STAKEOUT_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Stakeout.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Stakeout v%s\n", stakeout.Version)
	},
	DisableAutoGenTag: true,
}

// parseCmd decomposes the configured alignment and reports its segments.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Decompose the alignment into segments",
	Long: `parse decomposes the configured curve into its line and arc segments
and prints each segment's kind, measure range and arc parameters, along
with a warning for every component shape that had to be skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alignment, err := AlignmentFromConfig(Cfg)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "SEGMENT\tKIND\tSTART\tEND\tRADIUS")
		for i, s := range alignment.Segments {
			radius := ""
			if s.Kind == stakeout.Arc {
				radius = fmt.Sprintf("%.3f", s.Radius)
			}
			fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%s\n", i, s.Kind, s.StartMeasure, s.EndMeasure, radius)
		}
		return w.Flush()
	},
	DisableAutoGenTag: true,
}

// projectCmd maps a map coordinate to station-offset.
var projectCmd = &cobra.Command{
	Use:   "project x y",
	Short: "Convert a coordinate to (station, offset, side)",
	Long: `project references the point (x, y) to the configured alignment and
prints its station, offset and side, or reports that the point is outside
every segment corridor.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := cast.ToFloat64E(args[0])
		if err != nil {
			return fmt.Errorf("stakeout: parsing x: %v", err)
		}
		y, err := cast.ToFloat64E(args[1])
		if err != nil {
			return fmt.Errorf("stakeout: parsing y: %v", err)
		}
		session, err := SessionFromConfig(Cfg)
		if err != nil {
			return err
		}
		result, err := session.Project(geom.Point{X: x, Y: y})
		if err != nil {
			return err
		}
		cmd.Printf("Station: %.4f\nOffset: %.2f\nSide: %s\n", result.Station, result.Offset, result.Side)
		return nil
	},
	DisableAutoGenTag: true,
}

// locateCmd is the inverse of projectCmd.
var locateCmd = &cobra.Command{
	Use:   "locate station offset side",
	Short: "Convert (station, offset, side) to a coordinate",
	Long: `locate places a point at the given station and perpendicular offset on
the configured alignment and prints its coordinates. side is either left
or right (ignored for a zero offset).`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		station, err := cast.ToFloat64E(args[0])
		if err != nil {
			return fmt.Errorf("stakeout: parsing station: %v", err)
		}
		offset, err := cast.ToFloat64E(args[1])
		if err != nil {
			return fmt.Errorf("stakeout: parsing offset: %v", err)
		}
		side := stakeout.OnLine
		if len(args) == 3 {
			if side, err = stakeout.ParseSide(args[2]); err != nil {
				return err
			}
		}
		session, err := SessionFromConfig(Cfg)
		if err != nil {
			return err
		}
		point, err := session.Locate(station, offset, side)
		if err != nil {
			return err
		}
		cmd.Printf("X: %.4f\nY: %.4f\n", point.X, point.Y)
		return nil
	},
	DisableAutoGenTag: true,
}

// buffersCmd exports the segment corridors.
var buffersCmd = &cobra.Command{
	Use:   "buffers",
	Short: "Export segment corridors as GeoJSON",
	Long: `buffers writes the corridor polygon of every segment of the configured
alignment to standard output as a GeoJSON feature collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		alignment, err := AlignmentFromConfig(Cfg)
		if err != nil {
			return err
		}
		collection, err := stakeout.CorridorsGeoJSON(alignment)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(collection)
	},
	DisableAutoGenTag: true,
}

// serveCmd starts the interaction-surface server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive monitoring surface",
	Long: `serve starts an HTTP server exposing the configured alignment to an
interactive map surface: a websocket cursor feed at /monitor answering
station-offset queries and materializing point records on clicks, and
GeoJSON views of the corridors and points at /buffers and /points.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := SessionFromConfig(Cfg)
		if err != nil {
			return err
		}
		addr := Cfg.GetString("addr")
		server := stakeout.NewWebServer(session, Log)
		Log.WithFields(logrus.Fields{
			"addr":      addr,
			"alignment": session.Active().Name,
		}).Info("serving station-offset monitor")
		return http.ListenAndServe(addr, server.Handler())
	},
	DisableAutoGenTag: true,
}

// Execute runs the root command, printing errors to standard error.
func Execute() {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
