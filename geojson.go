// Copyright 2021 Airbus Defence and Space
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package geoengine

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
)

// MultiPointCollectionFromGeoJSON builds a MultiPointCollection from a
// parsed GeoJSON feature collection whose features are all Point or
// MultiPoint geometries. Every feature gets DefaultTimeInterval(); use
// NewMultiPointCollection directly when per-feature times are needed.
func MultiPointCollectionFromGeoJSON(fc *geojson.FeatureCollection) (*MultiPointCollection, error) {
	var coords []Coordinate2D
	offsets := []int32{0}
	times := make([]TimeInterval, 0, len(fc.Features))

	for i, feature := range fc.Features {
		geom := feature.Geometry
		if geom == nil {
			return nil, fmt.Errorf("geoengine: feature %d has no geometry", i)
		}

		var points [][]float64
		switch {
		case geom.IsPoint():
			points = [][]float64{geom.Point}
		case geom.IsMultiPoint():
			points = geom.MultiPoint
		default:
			return nil, fmt.Errorf("geoengine: feature %d has unsupported geometry type %q for a MultiPoint collection", i, geom.Type)
		}

		for _, p := range points {
			if len(p) < 2 {
				return nil, fmt.Errorf("geoengine: feature %d has a malformed coordinate pair", i)
			}
			coords = append(coords, Coordinate2D{X: p[0], Y: p[1]})
		}
		offsets = append(offsets, int32(len(coords)))
		times = append(times, DefaultTimeInterval())
	}

	return NewMultiPointCollection(coords, offsets, times)
}
