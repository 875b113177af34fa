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

func TestWorkSizeRaster(t *testing.T) {
	size, err := workSize(Raster, Dimension{Width: 3, Height: 2}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, size)
}

func TestWorkSizeVectorFeatures(t *testing.T) {
	size, err := workSize(VectorFeatures, Dimension{}, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, size)
}

func TestWorkSizeVectorCoordinates(t *testing.T) {
	size, err := workSize(VectorCoordinates, Dimension{}, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, size)
}

func TestWorkSizeEmpty(t *testing.T) {
	_, err := workSize(Raster, Dimension{Width: 0, Height: 2}, 0, 0)
	require.Error(t, err)
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, ErrEmptyWorkSize, gerr.Kind)

	_, err = workSize(VectorFeatures, Dimension{}, 0, 0)
	require.Error(t, err)

	_, err = workSize(VectorCoordinates, Dimension{}, 0, 0)
	require.Error(t, err)
}
