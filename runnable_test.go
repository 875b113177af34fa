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

func testCompiledProgram() *CompiledProgram {
	return &CompiledProgram{
		kernelName: "k",
		iterType:   Raster,
		inputRasters: []RasterArgument{
			{ElementType: I32},
		},
		outputRasters: []RasterArgument{
			{ElementType: I64},
		},
		inputFeatures: []VectorArgument{
			{Geometry: MultiPoint, Columns: []ColumnDescriptor{{Name: "category", Type: AttrCategory}}},
		},
		outputFeatures: []VectorArgument{
			{Geometry: MultiPoint},
		},
	}
}

func mustRaster(t *testing.T, typ PixelType, dim Dimension, data interface{}) *TypedRaster2D {
	t.Helper()
	r, err := NewTypedRaster2D(typ, dim, data, nil, DefaultTimeInterval(), DefaultGeoTransform())
	require.NoError(t, err)
	return r
}

func TestRunnableSetInputRaster(t *testing.T) {
	p := testCompiledProgram()
	r := p.Runnable()

	raster := mustRaster(t, I32, Dimension{Width: 2, Height: 1}, []int32{1, 2})
	require.NoError(t, r.SetInputRaster(0, raster))

	err := r.SetInputRaster(1, raster)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidRasterIndex, gerr.Kind)

	wrongType := mustRaster(t, U16, Dimension{Width: 2, Height: 1}, []uint16{1, 2})
	err = r.SetInputRaster(0, wrongType)
	require.Error(t, err)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidRasterDataType, gerr.Kind)
}

func TestRunnableSetOutputRaster(t *testing.T) {
	p := testCompiledProgram()
	r := p.Runnable()

	out := mustRaster(t, I64, Dimension{Width: 2, Height: 1}, []int64{0, 0})
	require.NoError(t, r.SetOutputRaster(0, out))

	wrongType := mustRaster(t, I32, Dimension{Width: 2, Height: 1}, []int32{0, 0})
	err := r.SetOutputRaster(0, wrongType)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidRasterDataType, gerr.Kind)
}

func TestRunnableSetInputFeatures(t *testing.T) {
	p := testCompiledProgram()
	r := p.Runnable()

	coords := []Coordinate2D{{X: 0, Y: 0}}
	mp, err := NewMultiPointCollection(coords, []int32{0, 1}, []TimeInterval{DefaultTimeInterval()})
	require.NoError(t, err)
	mp.attrs["category"] = attributeColumn{typ: AttrCategory, category: []int64{1}}
	coll := mp.AsTypedFeatureCollection()

	require.NoError(t, r.SetInputFeatures(0, coll))

	err = r.SetInputFeatures(1, coll)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidFeaturesIndex, gerr.Kind)

	dataColl := NewDataCollection(1)
	err = r.SetInputFeatures(0, dataColl)
	require.Error(t, err)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidVectorDataType, gerr.Kind)

	mp2, err := NewMultiPointCollection(coords, []int32{0, 1}, []TimeInterval{DefaultTimeInterval()})
	require.NoError(t, err)
	err = r.SetInputFeatures(0, mp2.AsTypedFeatureCollection())
	require.Error(t, err)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrMissingColumn, gerr.Kind)

	mp2.attrs["category"] = attributeColumn{typ: AttrFloat, floats: []float64{1}}
	err = r.SetInputFeatures(0, mp2.AsTypedFeatureCollection())
	require.Error(t, err)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrColumnTypeMismatch, gerr.Kind)
}

func TestRunnableAssertBound(t *testing.T) {
	p := testCompiledProgram()
	r := p.Runnable()

	err := r.assertBound()
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrUnspecifiedRaster, gerr.Kind)

	require.NoError(t, r.SetInputRaster(0, mustRaster(t, I32, Dimension{Width: 1, Height: 1}, []int32{1})))
	require.NoError(t, r.SetOutputRaster(0, mustRaster(t, I64, Dimension{Width: 1, Height: 1}, []int64{0})))

	err = r.assertBound()
	require.Error(t, err)
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrUnspecifiedFeatures, gerr.Kind)
}
