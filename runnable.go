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

// Runnable is a single-use, single-threaded binding of a
// CompiledProgram to concrete host inputs and outputs: construct, bind
// every declared slot, run once, discard. It must never be shared
// across goroutines; callers wanting overlap mint one Runnable per
// goroutine from the same CompiledProgram.
type Runnable struct {
	program *CompiledProgram

	inputRasters   []*TypedRaster2D
	outputRasters  []*TypedRaster2D
	inputFeatures  []*TypedFeatureCollection
	outputFeatures []FeatureCollectionBuilder
}

func newRunnable(p *CompiledProgram) *Runnable {
	return &Runnable{
		program:        p,
		inputRasters:   make([]*TypedRaster2D, len(p.inputRasters)),
		outputRasters:  make([]*TypedRaster2D, len(p.outputRasters)),
		inputFeatures:  make([]*TypedFeatureCollection, len(p.inputFeatures)),
		outputFeatures: make([]FeatureCollectionBuilder, len(p.outputFeatures)),
	}
}

// SetInputRaster binds raster as input slot i. raster is borrowed
// read-only for the duration of the run.
func (r *Runnable) SetInputRaster(i int, raster *TypedRaster2D) error {
	if i < 0 || i >= len(r.inputRasters) {
		return newError(ErrInvalidRasterIndex, "input raster index %d out of range [0,%d)", i, len(r.inputRasters))
	}
	decl := r.program.inputRasters[i]
	if raster.Type != decl.ElementType {
		return newError(ErrInvalidRasterDataType, "input raster %d is %s, declared type is %s", i, raster.Type, decl.ElementType)
	}
	r.inputRasters[i] = raster
	return nil
}

// SetOutputRaster binds raster as output slot i. raster is borrowed
// exclusively mutable for the duration of the run; Run overwrites its
// Data in place.
func (r *Runnable) SetOutputRaster(i int, raster *TypedRaster2D) error {
	if i < 0 || i >= len(r.outputRasters) {
		return newError(ErrInvalidRasterIndex, "output raster index %d out of range [0,%d)", i, len(r.outputRasters))
	}
	decl := r.program.outputRasters[i]
	if raster.Type != decl.ElementType {
		return newError(ErrInvalidRasterDataType, "output raster %d is %s, declared type is %s", i, raster.Type, decl.ElementType)
	}
	r.outputRasters[i] = raster
	return nil
}

// SetInputFeatures binds collection as input feature slot i. Every
// column declared on slot i's VectorArgument must be present on
// collection under the exact same attribute type.
func (r *Runnable) SetInputFeatures(i int, collection *TypedFeatureCollection) error {
	if i < 0 || i >= len(r.inputFeatures) {
		return newError(ErrInvalidFeaturesIndex, "input features index %d out of range [0,%d)", i, len(r.inputFeatures))
	}
	decl := r.program.inputFeatures[i]
	if collection.Kind != decl.Geometry {
		return newError(ErrInvalidVectorDataType, "input features %d is %s, declared geometry is %s", i, collection.Kind, decl.Geometry)
	}
	for _, col := range decl.Columns {
		typ, ok := collection.ColumnType(col.Name)
		if !ok {
			return newError(ErrMissingColumn, "input features %d missing column %q", i, col.Name)
		}
		if typ != col.Type {
			return newError(ErrColumnTypeMismatch, "input features %d column %q is %s, declared type is %s", i, col.Name, typ, col.Type)
		}
	}
	r.inputFeatures[i] = collection
	return nil
}

// SetOutputFeatures binds builder as output feature slot i. Index
// validation only: the output column and time schema are determined
// by the builder, not by the declaration.
func (r *Runnable) SetOutputFeatures(i int, builder FeatureCollectionBuilder) error {
	if i < 0 || i >= len(r.outputFeatures) {
		return newError(ErrInvalidFeaturesIndex, "output features index %d out of range [0,%d)", i, len(r.outputFeatures))
	}
	r.outputFeatures[i] = builder
	return nil
}

// assertBound verifies every declared slot was bound before run,
// surfacing the exact slot via UnspecifiedRaster/UnspecifiedFeatures.
func (r *Runnable) assertBound() error {
	for i, raster := range r.inputRasters {
		if raster == nil {
			return newError(ErrUnspecifiedRaster, "input raster %d was never bound", i)
		}
	}
	for i, raster := range r.outputRasters {
		if raster == nil {
			return newError(ErrUnspecifiedRaster, "output raster %d was never bound", i)
		}
	}
	for i, coll := range r.inputFeatures {
		if coll == nil {
			return newError(ErrUnspecifiedFeatures, "input features %d were never bound", i)
		}
	}
	for i, builder := range r.outputFeatures {
		if builder == nil {
			return newError(ErrUnspecifiedFeatures, "output features %d were never bound", i)
		}
	}
	return nil
}
