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

// IterationType is the closed tag, fixed at declaration time, that
// selects the work-size policy a compiled program dispatches with.
type IterationType int

const (
	// Raster iterates one work item per output-raster-0 pixel.
	Raster IterationType = iota
	// VectorFeatures iterates one work item per output feature.
	VectorFeatures
	// VectorCoordinates iterates one work item per output coordinate.
	VectorCoordinates
)

func (t IterationType) String() string {
	switch t {
	case Raster:
		return "Raster"
	case VectorFeatures:
		return "VectorFeatures"
	case VectorCoordinates:
		return "VectorCoordinates"
	default:
		return "Unknown"
	}
}

// workSize maps a run's iteration type and declared outputs to an ND
// global work size. It is a pure function of dimensions the caller has
// already resolved, kept standalone (mirroring the original's
// CLProgram::work_size) so the EmptyWorkSize invariant is testable
// without a device.
//
// outputRasterDim is only consulted for Raster; outputFeatureCount and
// outputCoordCount are only consulted for VectorFeatures and
// VectorCoordinates respectively.
func workSize(iter IterationType, outputRasterDim Dimension, outputFeatureCount, outputCoordCount int) ([]int, error) {
	var size []int
	switch iter {
	case Raster:
		size = []int{outputRasterDim.Width, outputRasterDim.Height}
	case VectorFeatures:
		size = []int{outputFeatureCount}
	case VectorCoordinates:
		size = []int{outputCoordCount}
	default:
		panic("geoengine: unsupported iteration type")
	}
	for _, dim := range size {
		if dim == 0 {
			return nil, newError(ErrEmptyWorkSize, "derived work size %v is empty for %s iteration", size, iter)
		}
	}
	return size, nil
}
