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
)

// RasterInfoSize is sizeof(RasterInfo) on the device: 12 bytes of
// size[3], 4 bytes of padding to reach 8-byte alignment for the
// doubles that follow, 3*8 bytes of origin, 3*8 bytes of scale, 3*8
// bytes of min/max/no_data, 2+2 bytes of crs_code/has_no_data, rounded
// up to a 16-byte boundary. This layout must be bit-exact between host
// and device; see §3/§4.C of the design notes.
const RasterInfoSize = 96

// RasterInfo is the fixed-layout, device-visible per-raster metadata
// record every raster argument carries into a kernel launch. Field
// order and padding are part of the ABI: do not reorder.
type RasterInfo struct {
	Size       [3]uint32
	Origin     [3]float64
	Scale      [3]float64
	Min        float64
	Max        float64
	NoData     float64
	CRSCode    uint16
	HasNoData  uint16
}

// RasterInfoFromRaster populates a RasterInfo from a raster's current
// dimension and no-data metadata. The third dimension is reserved and
// always set to 1. origin, scale, min, max and crs_code are left as
// zero: the extractor that would populate them from upstream
// georeferencing does not exist yet (see DESIGN.md's Open Question
// notes); implementers routing real values through later must not
// change this layout.
func RasterInfoFromRaster(r *TypedRaster2D) RasterInfo {
	info := RasterInfo{
		Size: [3]uint32{uint32(r.Dim.Width), uint32(r.Dim.Height), 1},
	}
	if r.HasNoData {
		info.NoData = r.NoData
		info.HasNoData = 1
	}
	return info
}

// Bytes packs info into RasterInfoSize bytes in device byte order
// (little-endian, matching the OpenCL ICDs this core targets).
func (info RasterInfo) Bytes() []byte {
	buf := make([]byte, RasterInfoSize)
	le := binary.LittleEndian
	le.PutUint32(buf[0:4], info.Size[0])
	le.PutUint32(buf[4:8], info.Size[1])
	le.PutUint32(buf[8:12], info.Size[2])
	// buf[12:16] is alignment padding.
	putFloat64(buf[16:24], info.Origin[0])
	putFloat64(buf[24:32], info.Origin[1])
	putFloat64(buf[32:40], info.Origin[2])
	putFloat64(buf[40:48], info.Scale[0])
	putFloat64(buf[48:56], info.Scale[1])
	putFloat64(buf[56:64], info.Scale[2])
	putFloat64(buf[64:72], info.Min)
	putFloat64(buf[72:80], info.Max)
	putFloat64(buf[80:88], info.NoData)
	le.PutUint16(buf[88:90], info.CRSCode)
	le.PutUint16(buf[90:92], info.HasNoData)
	// buf[92:96] is trailing padding to the 16-byte boundary.
	return buf
}

func putFloat64(dst []byte, v float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
}
