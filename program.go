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
	"strings"
)

// RasterArgument describes one declared raster input or output slot:
// the element type a bound raster must carry.
type RasterArgument struct {
	ElementType PixelType
}

// ColumnDescriptor names one attribute column a VectorArgument
// requires on input, or will expose on a bound collection.
type ColumnDescriptor struct {
	Name string
	Type AttributeType
}

// VectorArgument describes one declared feature-collection input or
// output slot: its geometry kind and, for inputs, the attribute
// columns a bound collection must carry.
type VectorArgument struct {
	Geometry GeometryKind
	Columns  []ColumnDescriptor
}

// Program accumulates argument descriptors and an iteration-type tag
// during declaration. It is mutated only by the AddXxx methods; Compile
// consumes it and returns an immutable CompiledProgram.
type Program struct {
	iterType       IterationType
	inputRasters   []RasterArgument
	outputRasters  []RasterArgument
	inputFeatures  []VectorArgument
	outputFeatures []VectorArgument
}

// NewProgram begins a declaration for the given iteration type.
func NewProgram(iterType IterationType) *Program {
	return &Program{iterType: iterType}
}

// AddInputRaster declares one more input raster slot and returns its
// index.
func (p *Program) AddInputRaster(arg RasterArgument) int {
	p.inputRasters = append(p.inputRasters, arg)
	return len(p.inputRasters) - 1
}

// AddOutputRaster declares one more output raster slot and returns its
// index.
func (p *Program) AddOutputRaster(arg RasterArgument) int {
	p.outputRasters = append(p.outputRasters, arg)
	return len(p.outputRasters) - 1
}

// AddInputFeatures declares one more input feature-collection slot and
// returns its index.
func (p *Program) AddInputFeatures(arg VectorArgument) int {
	p.inputFeatures = append(p.inputFeatures, arg)
	return len(p.inputFeatures) - 1
}

// AddOutputFeatures declares one more output feature-collection slot
// and returns its index.
func (p *Program) AddOutputFeatures(arg VectorArgument) int {
	p.outputFeatures = append(p.outputFeatures, arg)
	return len(p.outputFeatures) - 1
}

// Compile validates the declaration against its iteration type,
// synthesizes the type prelude, submits prelude+userSource to the
// device compiler, and returns an immutable CompiledProgram bound to
// kernelName.
func (p *Program) Compile(userSource, kernelName string) (*CompiledProgram, error) {
	if err := p.validateForIterationType(); err != nil {
		return nil, err
	}

	prelude := p.typePrelude()
	fullSource := prelude + userSource

	dev, err := getDevice()
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"iterationType": p.iterType.String(),
		"kernelName":     kernelName,
	}).Debug("compiling kernel program")

	clProgram, err := dev.buildProgram(fullSource)
	if err != nil {
		log.WithError(err).Warn("kernel program build failed")
		return nil, err
	}

	log.Debug("kernel program build succeeded")

	return &CompiledProgram{
		clProgram:      clProgram,
		kernelName:     kernelName,
		iterType:       p.iterType,
		inputRasters:   append([]RasterArgument(nil), p.inputRasters...),
		outputRasters:  append([]RasterArgument(nil), p.outputRasters...),
		inputFeatures:  append([]VectorArgument(nil), p.inputFeatures...),
		outputFeatures: append([]VectorArgument(nil), p.outputFeatures...),
	}, nil
}

// validateForIterationType implements the compile contract of §4.D:
// for Raster, at least one input and one output raster; for the vector
// iteration types, at least one input and one output feature list.
func (p *Program) validateForIterationType() error {
	switch p.iterType {
	case Raster:
		if len(p.inputRasters) == 0 || len(p.outputRasters) == 0 {
			return newError(ErrInvalidInputsForIterationType, "Raster iteration requires at least one input and one output raster")
		}
	case VectorFeatures, VectorCoordinates:
		if len(p.inputFeatures) == 0 || len(p.outputFeatures) == 0 {
			return newError(ErrInvalidInputsForIterationType, "%s iteration requires at least one input and one output feature list", p.iterType)
		}
	default:
		panic("geoengine: unsupported iteration type")
	}
	return nil
}

// typePrelude synthesizes the OpenCL C source prepended to the user's
// kernel: the RasterInfo struct and R() accessor macro (if any raster
// arguments are declared), IN_TYPE<i>/OUT_TYPE<i> typedefs, and
// ISNODATA<i> macros per §4.D.
func (p *Program) typePrelude() string {
	var b strings.Builder

	if len(p.inputRasters) > 0 || len(p.outputRasters) > 0 {
		b.WriteString(rasterInfoStructSource)
		b.WriteString("#define R(t, x, y) (t##_data[(y) * t##_info->size[0] + (x)])\n\n")
	}

	for i, arg := range p.inputRasters {
		fmt.Fprintf(&b, "typedef %s IN_TYPE%d;\n", arg.ElementType.CLType(), i)
		if arg.ElementType.Floating() {
			fmt.Fprintf(&b, "#define ISNODATA%d(v, info) ((info)->has_no_data && (isnan(v) || (v) == (info)->no_data))\n", i)
		} else {
			fmt.Fprintf(&b, "#define ISNODATA%d(v, info) ((info)->has_no_data && ((v) == (info)->no_data))\n", i)
		}
	}
	for i, arg := range p.outputRasters {
		fmt.Fprintf(&b, "typedef %s OUT_TYPE%d;\n", arg.ElementType.CLType(), i)
	}
	b.WriteString("\n")

	return b.String()
}

// rasterInfoStructSource mirrors the field order and padding of the Go
// RasterInfo struct (see rasterinfo.go): do not reorder independently
// of that type.
const rasterInfoStructSource = `typedef struct __attribute__((aligned(16))) {
    uint size[3];
    double origin[3];
    double scale[3];
    double min;
    double max;
    double no_data;
    ushort crs_code;
    ushort has_no_data;
} RasterInfo;

`
