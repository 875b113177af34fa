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
	"unsafe"
)

// rasterBytes returns a byte-slice view that aliases data's backing
// array: no copy is made, so a readback that writes through the
// returned slice lands directly in the caller's typed raster buffer.
// This is the one place the ten-element-type union is reduced to raw
// bytes for the device boundary.
func rasterBytes(data interface{}) []byte {
	switch v := data.(type) {
	case []uint8:
		if len(v) == 0 {
			return nil
		}
		return v
	case []uint16:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*2)
	case []uint32:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
	case []uint64:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
	case []int8:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v))
	case []int16:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*2)
	case []int32:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
	case []int64:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
	case []float32:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
	case []float64:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
	default:
		panic(fmt.Sprintf("geoengine: unsupported raster buffer type %T", data))
	}
}

// coordBytes returns a byte-slice view aliasing a []Coordinate2D's
// backing array. Coordinate2D is two adjacent float64 fields with no
// padding, matching the device-side (f64,f64) pair layout of §4.E.
func coordBytes(coords []Coordinate2D) []byte {
	if len(coords) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&coords[0])), len(coords)*16)
}

// coordsFromBytes reinterprets a readback byte buffer of the given
// coordinate count as a fresh []Coordinate2D. The bytes are copied
// into newly allocated Coordinate2D values so the backing buffer can
// be released independently.
func coordsFromBytes(b []byte, numCoords int) []Coordinate2D {
	out := make([]Coordinate2D, numCoords)
	if numCoords == 0 {
		return out
	}
	src := unsafe.Slice((*Coordinate2D)(unsafe.Pointer(&b[0])), numCoords)
	copy(out, src)
	return out
}

// offsetBytes returns a byte-slice view aliasing a []int32's backing
// array.
func offsetBytes(offsets []int32) []byte {
	if len(offsets) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&offsets[0])), len(offsets)*4)
}

// offsetsFromBytes reinterprets a readback byte buffer as a fresh
// []int32 of length n.
func offsetsFromBytes(b []byte, n int) []int32 {
	out := make([]int32, n)
	if n == 0 {
		return out
	}
	src := unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), n)
	copy(out, src)
	return out
}
