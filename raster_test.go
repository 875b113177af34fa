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

func TestNewTypedRaster2D(t *testing.T) {
	dim := Dimension{Width: 3, Height: 2}
	data := []int32{1, 2, 3, 4, 5, 6}

	r, err := NewTypedRaster2D(I32, dim, data, nil, DefaultTimeInterval(), DefaultGeoTransform())
	require.NoError(t, err)
	assert.Equal(t, I32, r.ElementType())
	assert.Equal(t, dim, r.Dimension())
	assert.False(t, r.HasNoData)
}

func TestNewTypedRaster2DNoData(t *testing.T) {
	dim := Dimension{Width: 2, Height: 1}
	noData := 1337.0
	r, err := NewTypedRaster2D(I32, dim, []int32{1, 2}, &noData, DefaultTimeInterval(), DefaultGeoTransform())
	require.NoError(t, err)
	assert.True(t, r.HasNoData)
	assert.Equal(t, 1337.0, r.NoData)
}

func TestNewTypedRaster2DTypeMismatch(t *testing.T) {
	dim := Dimension{Width: 2, Height: 1}
	_, err := NewTypedRaster2D(I32, dim, []uint16{1, 2}, nil, DefaultTimeInterval(), DefaultGeoTransform())
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrInvalidRasterDataType, gerr.Kind)
}

func TestNewTypedRaster2DLengthMismatch(t *testing.T) {
	dim := Dimension{Width: 3, Height: 2}
	_, err := NewTypedRaster2D(I32, dim, []int32{1, 2, 3}, nil, DefaultTimeInterval(), DefaultGeoTransform())
	require.Error(t, err)
}

type recordingVisitor struct {
	called string
}

func (v *recordingVisitor) VisitU8(b []uint8)    { v.called = "u8" }
func (v *recordingVisitor) VisitU16(b []uint16)  { v.called = "u16" }
func (v *recordingVisitor) VisitU32(b []uint32)  { v.called = "u32" }
func (v *recordingVisitor) VisitU64(b []uint64)  { v.called = "u64" }
func (v *recordingVisitor) VisitI8(b []int8)     { v.called = "i8" }
func (v *recordingVisitor) VisitI16(b []int16)   { v.called = "i16" }
func (v *recordingVisitor) VisitI32(b []int32)   { v.called = "i32" }
func (v *recordingVisitor) VisitI64(b []int64)   { v.called = "i64" }
func (v *recordingVisitor) VisitF32(b []float32) { v.called = "f32" }
func (v *recordingVisitor) VisitF64(b []float64) { v.called = "f64" }

func TestTypedRaster2DDispatch(t *testing.T) {
	r := &TypedRaster2D{Type: F32, Dim: Dimension{Width: 1, Height: 1}, Data: []float32{1.0}}
	v := &recordingVisitor{}
	r.Dispatch(v)
	assert.Equal(t, "f32", v.called)
}

func TestDimensionSize(t *testing.T) {
	assert.Equal(t, 6, Dimension{Width: 3, Height: 2}.Size())
}
