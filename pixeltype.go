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

// PixelType is the closed set of element types a raster tile may be
// stored as. It is a tagged union in spirit: every place that needs to
// work generically over element types does so via a closed switch on
// PixelType, never via open extension.
type PixelType int

const (
	// U8 is an 8-bit unsigned integer.
	U8 PixelType = iota
	// U16 is a 16-bit unsigned integer.
	U16
	// U32 is a 32-bit unsigned integer.
	U32
	// U64 is a 64-bit unsigned integer.
	U64
	// I8 is an 8-bit signed integer.
	I8
	// I16 is a 16-bit signed integer.
	I16
	// I32 is a 32-bit signed integer.
	I32
	// I64 is a 64-bit signed integer.
	I64
	// F32 is a 32-bit IEEE float.
	F32
	// F64 is a 64-bit IEEE float.
	F64
)

// String returns the Go-side name of the pixel type.
func (t PixelType) String() string {
	switch t {
	case U8:
		return "U8"
	case U16:
		return "U16"
	case U32:
		return "U32"
	case U64:
		return "U64"
	case I8:
		return "I8"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	default:
		return "Unknown"
	}
}

// CLType returns the canonical OpenCL C device-source type name for t,
// used when generating the type prelude (see Program.Compile).
func (t PixelType) CLType() string {
	switch t {
	case U8:
		return "uchar"
	case U16:
		return "ushort"
	case U32:
		return "uint"
	case U64:
		return "ulong"
	case I8:
		return "char"
	case I16:
		return "short"
	case I32:
		return "int"
	case I64:
		return "long"
	case F32:
		return "float"
	case F64:
		return "double"
	default:
		panic("unsupported pixel type")
	}
}

// Size returns the number of bytes occupied by one element of t.
func (t PixelType) Size() int {
	switch t {
	case U8, I8:
		return 1
	case U16, I16:
		return 2
	case U32, I32, F32:
		return 4
	case U64, I64, F64:
		return 8
	default:
		panic("unsupported pixel type")
	}
}

// Floating reports whether t is a floating-point type. Floating types
// carry NaN-as-no-data semantics in addition to the explicit no-data
// sentinel.
func (t PixelType) Floating() bool {
	return t == F32 || t == F64
}
