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
	"encoding/json"
	"net/http"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// A CursorSample is one interaction-surface event in alignment coordinates.
// Click marks a non-drag click that should materialize a point record.
type CursorSample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Click bool    `json:"click"`
}

// A MonitorReply answers one cursor sample. InRange is false when the
// cursor is outside every corridor; Point is set only for in-range clicks.
type MonitorReply struct {
	InRange bool         `json:"inRange"`
	Station float64      `json:"station,omitempty"`
	Offset  float64      `json:"offset,omitempty"`
	Side    string       `json:"side,omitempty"`
	Point   *PointRecord `json:"point,omitempty"`
}

// A WebServer exposes one session to an interactive map surface: a
// websocket cursor feed answering station-offset queries, and GeoJSON views
// of the active alignment's corridors and the points materialized so far.
// The mutex serializes engine access, keeping the single-threaded engine
// contract when several surfaces connect.
type WebServer struct {
	mx       sync.Mutex
	session  *Session
	points   []PointRecord
	log      *logrus.Logger
	upgrader websocket.Upgrader
}

// NewWebServer returns a server for session, logging to log.
func NewWebServer(session *Session, log *logrus.Logger) *WebServer {
	return &WebServer{
		session:  session,
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler returns the server's route table.
func (ws *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/monitor", ws.monitorHandler)
	mux.HandleFunc("/buffers", ws.buffersHandler)
	mux.HandleFunc("/points", ws.pointsHandler)
	return mux
}

// monitorHandler upgrades the connection and answers each cursor sample
// with a station-offset reply. Out-of-range samples are normal traffic, not
// errors; a click inside a corridor appends a point record.
func (ws *WebServer) monitorHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		ws.log.WithError(err).Error("upgrading monitor connection")
		return
	}
	defer conn.Close()
	ws.log.WithField("remote", r.RemoteAddr).Info("monitor connected")

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			ws.log.WithField("remote", r.RemoteAddr).Info("monitor disconnected")
			return
		}
		var sample CursorSample
		if err := json.Unmarshal(message, &sample); err != nil {
			ws.log.WithError(err).Warn("unreadable cursor sample")
			continue
		}
		if err := conn.WriteJSON(ws.answer(sample)); err != nil {
			ws.log.WithError(err).Warn("writing monitor reply")
			return
		}
	}
}

func (ws *WebServer) answer(sample CursorSample) MonitorReply {
	ws.mx.Lock()
	defer ws.mx.Unlock()

	q := geom.Point{X: sample.X, Y: sample.Y}
	result, err := ws.session.Project(q)
	if err != nil {
		return MonitorReply{InRange: false}
	}
	reply := MonitorReply{
		InRange: true,
		Station: result.Station,
		Offset:  result.Offset,
		Side:    result.Side.String(),
	}
	if sample.Click {
		record, err := ws.session.MaterializePoint(q)
		if err == nil {
			ws.points = append(ws.points, record)
			reply.Point = &record
		}
	}
	return reply
}

// geoJSONFeature pairs a geometry with its attributes for export.
type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// buffersHandler serves the active alignment's corridor polygons as a
// GeoJSON feature collection.
func (ws *WebServer) buffersHandler(w http.ResponseWriter, r *http.Request) {
	ws.mx.Lock()
	a := ws.session.Active()
	ws.mx.Unlock()
	if a == nil {
		http.Error(w, "no active alignment", http.StatusNotFound)
		return
	}
	collection, err := CorridorsGeoJSON(a)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, collection, ws.log)
}

// pointsHandler serves the points materialized by clicks as GeoJSON.
func (ws *WebServer) pointsHandler(w http.ResponseWriter, r *http.Request) {
	ws.mx.Lock()
	points := append([]PointRecord(nil), ws.points...)
	ws.mx.Unlock()

	collection, err := PointsGeoJSON(points)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, collection, ws.log)
}

func writeJSON(w http.ResponseWriter, v interface{}, log *logrus.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("encoding response")
	}
}

// CorridorsGeoJSON renders every corridor polygon of a as a GeoJSON feature
// carrying the segment's kind and measure range.
func CorridorsGeoJSON(a *Alignment) (interface{}, error) {
	collection := geoJSONCollection{Type: "FeatureCollection"}
	for _, s := range a.Segments {
		if s.Buffer() == nil {
			continue
		}
		g, err := geojson.ToGeoJSON(s.Buffer())
		if err != nil {
			return nil, err
		}
		collection.Features = append(collection.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: g,
			Properties: map[string]interface{}{
				"segment_type":  s.Kind.String(),
				"start_measure": s.StartMeasure,
				"end_measure":   s.EndMeasure,
			},
		})
	}
	return collection, nil
}

// PointsGeoJSON renders point records as a GeoJSON feature collection with
// the same attribute set the records carry.
func PointsGeoJSON(points []PointRecord) (interface{}, error) {
	collection := geoJSONCollection{Type: "FeatureCollection"}
	for _, p := range points {
		g, err := geojson.ToGeoJSON(p.Point)
		if err != nil {
			return nil, err
		}
		collection.Features = append(collection.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: g,
			Properties: map[string]interface{}{
				"station":       p.Station,
				"offset":        p.Offset,
				"side":          p.Side.String(),
				"alignment":     p.Alignment,
				"start_measure": p.StartMeasure,
			},
		})
	}
	return collection, nil
}
