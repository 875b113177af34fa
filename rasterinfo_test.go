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
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterInfoFromRaster(t *testing.T) {
	noData := 1337.0
	r, err := NewTypedRaster2D(I32, Dimension{Width: 3, Height: 2}, []int32{1, 2, 3, 4, 5, 6}, &noData, DefaultTimeInterval(), DefaultGeoTransform())
	require.NoError(t, err)

	info := RasterInfoFromRaster(r)
	assert.Equal(t, [3]uint32{3, 2, 1}, info.Size)
	assert.True(t, info.HasNoData == 1)
	assert.Equal(t, 1337.0, info.NoData)
	assert.Zero(t, info.Origin)
	assert.Zero(t, info.Scale)
	assert.Zero(t, info.CRSCode)
}

func TestRasterInfoBytesLayout(t *testing.T) {
	info := RasterInfo{
		Size:      [3]uint32{4, 5, 1},
		Origin:    [3]float64{1, 2, 3},
		Scale:     [3]float64{4, 5, 6},
		Min:       7,
		Max:       8,
		NoData:    9,
		CRSCode:   4326,
		HasNoData: 1,
	}
	b := info.Bytes()
	require.Len(t, b, RasterInfoSize)

	le := binary.LittleEndian
	assert.Equal(t, uint32(4), le.Uint32(b[0:4]))
	assert.Equal(t, uint32(5), le.Uint32(b[4:8]))
	assert.Equal(t, uint32(1), le.Uint32(b[8:12]))
	assert.Equal(t, 1.0, math.Float64frombits(le.Uint64(b[16:24])))
	assert.Equal(t, 2.0, math.Float64frombits(le.Uint64(b[24:32])))
	assert.Equal(t, 3.0, math.Float64frombits(le.Uint64(b[32:40])))
	assert.Equal(t, 4.0, math.Float64frombits(le.Uint64(b[40:48])))
	assert.Equal(t, 9.0, math.Float64frombits(le.Uint64(b[80:88])))
	assert.Equal(t, uint16(4326), le.Uint16(b[88:90]))
	assert.Equal(t, uint16(1), le.Uint16(b[90:92]))
}
