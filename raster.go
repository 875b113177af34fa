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
	"math"
)

// TimeInterval is a half-open [Start, End) validity interval, given as
// millisecond timestamps.
type TimeInterval struct {
	Start, End int64
}

// DefaultTimeInterval is the interval used when none is supplied: the
// full representable range.
func DefaultTimeInterval() TimeInterval {
	return TimeInterval{Start: math.MinInt64, End: math.MaxInt64}
}

// Dimension is a raster's (width, height) in pixels.
type Dimension struct {
	Width, Height int
}

// Size returns Width*Height, the number of elements a raster of this
// dimension holds.
func (d Dimension) Size() int {
	return d.Width * d.Height
}

// TypedRaster2D is a rectangular, row-major grid over a PixelType: the
// tagged union across all ten numeric element types. Data always holds
// one of []uint8, []uint16, []uint32, []uint64, []int8, []int16,
// []int32, []int64, []float32 or []float64, selected by Type.
//
// Invariant: len(Data as the concrete slice) == Dim.Size().
type TypedRaster2D struct {
	Type         PixelType
	Dim          Dimension
	Data         interface{}
	NoData       float64
	HasNoData    bool
	Time         TimeInterval
	GeoTransform GeoTransform
}

// ElementType returns the raster's PixelType tag.
func (r *TypedRaster2D) ElementType() PixelType {
	return r.Type
}

// Dimension returns the raster's (width, height).
func (r *TypedRaster2D) Dimension() Dimension {
	return r.Dim
}

// NewTypedRaster2D builds a TypedRaster2D, validating that data's
// concrete type matches typ and that its length matches dim.Size().
// noData, if present, is stored as a float64 regardless of typ (the
// device-side RasterInfo record always carries no_data as a double).
func NewTypedRaster2D(typ PixelType, dim Dimension, data interface{}, noData *float64, t TimeInterval, gt GeoTransform) (*TypedRaster2D, error) {
	if bufferPixelType(data) != typ {
		return nil, newError(ErrInvalidRasterDataType, "data is %T, declared type is %s", data, typ)
	}
	if sliceLen(data) != dim.Size() {
		return nil, fmt.Errorf("geoengine: raster data length %d does not match dimension %dx%d", sliceLen(data), dim.Width, dim.Height)
	}
	r := &TypedRaster2D{
		Type:         typ,
		Dim:          dim,
		Data:         data,
		Time:         t,
		GeoTransform: gt,
	}
	if noData != nil {
		r.NoData = *noData
		r.HasNoData = true
	}
	return r, nil
}

// bufferPixelType returns the PixelType tag matching the concrete type
// of a raster data buffer. This is the closed, ten-arm dispatch the
// element-type union relies on everywhere a buffer crosses the
// host/device boundary.
func bufferPixelType(data interface{}) PixelType {
	switch data.(type) {
	case []uint8:
		return U8
	case []uint16:
		return U16
	case []uint32:
		return U32
	case []uint64:
		return U64
	case []int8:
		return I8
	case []int16:
		return I16
	case []int32:
		return I32
	case []int64:
		return I64
	case []float32:
		return F32
	case []float64:
		return F64
	default:
		panic(fmt.Sprintf("geoengine: unsupported raster buffer type %T", data))
	}
}

// sliceLen returns the length of one of the ten supported raster
// buffer slice types.
func sliceLen(data interface{}) int {
	switch v := data.(type) {
	case []uint8:
		return len(v)
	case []uint16:
		return len(v)
	case []uint32:
		return len(v)
	case []uint64:
		return len(v)
	case []int8:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		panic(fmt.Sprintf("geoengine: unsupported raster buffer type %T", data))
	}
}

// RasterVisitor receives the concrete, element-typed view of a
// TypedRaster2D. Exactly one method is invoked per Dispatch call,
// matching the raster's PixelType tag. This is the "call this closure
// with the concrete element-typed view" dispatch the data model calls
// for, expressed as a visitor rather than a generic function since the
// ten element types are a closed set, not an open type parameter.
type RasterVisitor interface {
	VisitU8([]uint8)
	VisitU16([]uint16)
	VisitU32([]uint32)
	VisitU64([]uint64)
	VisitI8([]int8)
	VisitI16([]int16)
	VisitI32([]int32)
	VisitI64([]int64)
	VisitF32([]float32)
	VisitF64([]float64)
}

// Dispatch calls the RasterVisitor method matching r's element type.
func (r *TypedRaster2D) Dispatch(v RasterVisitor) {
	switch data := r.Data.(type) {
	case []uint8:
		v.VisitU8(data)
	case []uint16:
		v.VisitU16(data)
	case []uint32:
		v.VisitU32(data)
	case []uint64:
		v.VisitU64(data)
	case []int8:
		v.VisitI8(data)
	case []int16:
		v.VisitI16(data)
	case []int32:
		v.VisitI32(data)
	case []int64:
		v.VisitI64(data)
	case []float32:
		v.VisitF32(data)
	case []float64:
		v.VisitF64(data)
	default:
		panic(fmt.Sprintf("geoengine: unsupported raster buffer type %T", r.Data))
	}
}
