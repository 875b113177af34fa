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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataCollection(t *testing.T) {
	c := NewDataCollection(3).WithFloatColumn("value", []float64{1, 2, 3})
	assert.Equal(t, Data, c.GeometryKind())
	assert.Equal(t, 3, c.NumFeatures())

	typ, ok := c.ColumnType("value")
	require.True(t, ok)
	assert.Equal(t, AttrFloat, typ)

	_, ok = c.ColumnType("missing")
	assert.False(t, ok)
}

func TestNewMultiPointCollection(t *testing.T) {
	coords := []Coordinate2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	offsets := []int32{0, 1, 3, 4}
	times := []TimeInterval{DefaultTimeInterval(), DefaultTimeInterval(), DefaultTimeInterval()}

	mp, err := NewMultiPointCollection(coords, offsets, times)
	require.NoError(t, err)
	assert.Equal(t, 3, mp.NumFeatures())
	assert.Equal(t, 4, mp.NumCoords())

	tc := mp.AsTypedFeatureCollection()
	assert.Equal(t, MultiPoint, tc.GeometryKind())
	assert.Equal(t, 3, tc.NumFeatures())
	assert.Equal(t, 4, tc.NumCoords())
}

func TestNewMultiPointCollectionOffsetLengthMismatch(t *testing.T) {
	coords := []Coordinate2D{{X: 0, Y: 0}}
	offsets := []int32{0, 1}
	times := []TimeInterval{}
	_, err := NewMultiPointCollection(coords, offsets, times)
	require.Error(t, err)
}

func TestNewMultiPointCollectionBadPartition(t *testing.T) {
	coords := []Coordinate2D{{X: 0, Y: 0}}
	offsets := []int32{0, 2}
	times := []TimeInterval{DefaultTimeInterval()}
	_, err := NewMultiPointCollection(coords, offsets, times)
	require.Error(t, err)
}

func TestGeometryKindString(t *testing.T) {
	assert.Equal(t, "Data", Data.String())
	assert.Equal(t, "MultiPoint", MultiPoint.String())
	assert.Equal(t, "MultiLineString", MultiLineString.String())
	assert.Equal(t, "MultiPolygon", MultiPolygon.String())
}
