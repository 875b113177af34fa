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

/*
#include "geoengine.h"
*/
import "C"

import (
	"fmt"

	"github.com/google/uuid"
)

// CompiledProgram is the immutable result of Program.Compile: a
// compiled device program, its kernel entry name, the iteration type,
// and the four argument descriptor lists cloned from the consumed
// Program. It is safe for concurrent use by multiple goroutines for
// the purpose of minting Runnables.
type CompiledProgram struct {
	clProgram C.cl_program

	kernelName string
	iterType   IterationType

	inputRasters   []RasterArgument
	outputRasters  []RasterArgument
	inputFeatures  []VectorArgument
	outputFeatures []VectorArgument
}

// Runnable mints a fresh, unbound Runnable bound to this compiled
// program.
func (p *CompiledProgram) Runnable() *Runnable {
	return newRunnable(p)
}

// Close releases the compiled device program. Callers must not mint or
// run further Runnables from p afterwards.
func (p *CompiledProgram) Close() {
	releaseProgram(p.clProgram)
	p.clProgram = nil
}

// Run executes the full run protocol of §4.F against r: asserts every
// declared slot is bound, builds a fresh kernel, uploads inputs,
// dispatches, and reads outputs back into r's bound host buffers (and
// the output feature builders). A failed run leaves host outputs in an
// unspecified state.
func (p *CompiledProgram) Run(r *Runnable) error {
	if r.program != p {
		panic("geoengine: Runnable was not minted by this CompiledProgram")
	}

	runID := uuid.New()
	runLog := log.WithField("run", runID.String())
	runLog.Debug("run starting")

	if err := r.assertBound(); err != nil {
		runLog.WithError(err).Warn("run rejected: unbound argument")
		return err
	}

	dev, err := getDevice()
	if err != nil {
		return err
	}

	kernel, err := dev.createKernel(p.clProgram, p.kernelName)
	if err != nil {
		runLog.WithError(err).Warn("kernel creation failed")
		return err
	}
	defer releaseKernel(kernel)

	var allocated []C.cl_mem
	defer func() {
		for _, buf := range allocated {
			releaseMem(buf)
		}
	}()
	track := func(buf C.cl_mem) C.cl_mem {
		allocated = append(allocated, buf)
		return buf
	}

	// uploadInput implements §4.F.3's literal two-step for every
	// read-only device buffer: allocate, then host-copy.
	uploadInput := func(data []byte) (C.cl_mem, error) {
		buf, err := dev.createBuffer(clMemReadOnly, len(data), nil)
		if err != nil {
			return nil, err
		}
		if err := dev.writeBuffer(buf, data); err != nil {
			return nil, err
		}
		return buf, nil
	}

	argIndex := 0

	for _, raster := range r.inputRasters {
		buf, err := uploadInput(rasterBytes(raster.Data))
		if err != nil {
			return err
		}
		track(buf)
		if err := dev.setKernelArgMem(kernel, argIndex, buf); err != nil {
			return err
		}
		argIndex++

		info := RasterInfoFromRaster(raster)
		infoBuf, err := uploadInput(info.Bytes())
		if err != nil {
			return err
		}
		track(infoBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, infoBuf); err != nil {
			return err
		}
		argIndex++
	}

	for _, raster := range r.outputRasters {
		size := raster.Dim.Size() * raster.Type.Size()
		buf, err := dev.createBuffer(clMemWriteOnly, size, nil)
		if err != nil {
			return err
		}
		track(buf)
		if err := dev.setKernelArgMem(kernel, argIndex, buf); err != nil {
			return err
		}
		argIndex++

		info := RasterInfoFromRaster(raster)
		infoBuf, err := uploadInput(info.Bytes())
		if err != nil {
			return err
		}
		track(infoBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, infoBuf); err != nil {
			return err
		}
		argIndex++
	}

	for i, coll := range r.inputFeatures {
		if coll.Kind != MultiPoint {
			if coll.Kind == Data {
				continue
			}
			return newError(ErrUnsupportedGeometry, "input features %d: %s is not implemented", i, coll.Kind)
		}
		mp := coll.MultiPt
		coordBuf, err := uploadInput(coordBytes(mp.Coordinates))
		if err != nil {
			return err
		}
		track(coordBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, coordBuf); err != nil {
			return err
		}
		argIndex++

		offBuf, err := uploadInput(offsetBytes(mp.MultiPointOffsets))
		if err != nil {
			return err
		}
		track(offBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, offBuf); err != nil {
			return err
		}
		argIndex++
	}

	type pendingFeatureOutput struct {
		builder  FeatureCollectionBuilder
		coordBuf C.cl_mem
		offBuf   C.cl_mem
		numCoord int
		numFeat  int
	}
	var pendingFeatures []pendingFeatureOutput

	for i, decl := range p.outputFeatures {
		if decl.Geometry != MultiPoint {
			return newError(ErrUnsupportedGeometry, "output features %d: %s is not implemented", i, decl.Geometry)
		}
		builder := r.outputFeatures[i]
		numCoords := builder.NumCoords()
		numFeats := builder.NumFeatures()

		coordBuf, err := dev.createBuffer(clMemWriteOnly, numCoords*16, nil)
		if err != nil {
			return err
		}
		track(coordBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, coordBuf); err != nil {
			return err
		}
		argIndex++

		offBuf, err := dev.createBuffer(clMemWriteOnly, (numFeats+1)*4, nil)
		if err != nil {
			return err
		}
		track(offBuf)
		if err := dev.setKernelArgMem(kernel, argIndex, offBuf); err != nil {
			return err
		}
		argIndex++

		pendingFeatures = append(pendingFeatures, pendingFeatureOutput{
			builder:  builder,
			coordBuf: coordBuf,
			offBuf:   offBuf,
			numCoord: numCoords,
			numFeat:  numFeats,
		})
	}

	var outputRasterDim Dimension
	if len(r.outputRasters) > 0 {
		outputRasterDim = r.outputRasters[0].Dim
	}
	outputFeatureCount, outputCoordCount := 0, 0
	if len(pendingFeatures) > 0 {
		outputFeatureCount = pendingFeatures[0].numFeat
		outputCoordCount = pendingFeatures[0].numCoord
	}
	size, err := workSize(p.iterType, outputRasterDim, outputFeatureCount, outputCoordCount)
	if err != nil {
		runLog.WithError(err).Warn("run rejected: empty work size")
		return err
	}

	if err := dev.enqueueNDRange(kernel, size); err != nil {
		runLog.WithError(err).Warn("kernel dispatch failed")
		return err
	}

	// Raster output buffers were tracked, in order, right after the
	// input raster buffers (each raster contributes a data buffer and
	// an info buffer); recover them by replaying that allocation order.
	bufIdx := len(r.inputRasters) * 2
	for _, raster := range r.outputRasters {
		buf := allocated[bufIdx]
		bufIdx += 2
		if err := dev.readBuffer(buf, rasterBytes(raster.Data)); err != nil {
			return err
		}
	}

	for _, pf := range pendingFeatures {
		coordData := make([]byte, pf.numCoord*16)
		if err := dev.readBuffer(pf.coordBuf, coordData); err != nil {
			return err
		}
		offData := make([]byte, (pf.numFeat+1)*4)
		if err := dev.readBuffer(pf.offBuf, offData); err != nil {
			return err
		}
		coords := coordsFromBytes(coordData, pf.numCoord)
		offsets := offsetsFromBytes(offData, pf.numFeat+1)
		if err := pf.builder.SetPoints(coords, offsets); err != nil {
			return fmt.Errorf("geoengine: output feature builder rejected readback: %w", err)
		}
		if err := pf.builder.SetDefaultTimeIntervals(); err != nil {
			return fmt.Errorf("geoengine: output feature builder rejected default time intervals: %w", err)
		}
		if err := pf.builder.Finish(); err != nil {
			return fmt.Errorf("geoengine: output feature builder finish failed: %w", err)
		}
	}

	runLog.Debug("run finished")
	return nil
}
