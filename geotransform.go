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

// Coordinate2D is a world-space (x,y) pair.
type Coordinate2D struct {
	X, Y float64
}

// GeoTransform is the rotation-free affine mapping between pixel
// indices (row, col) and world coordinates (x, y) that every raster
// tile carries. It mirrors the first, second, fourth and sixth
// entries of a classical six-element GDAL geotransform; the two
// rotation terms (indices 2 and 4) are always zero in this system.
type GeoTransform struct {
	UpperLeft Coordinate2D
	XPixelSize float64
	YPixelSize float64
}

// DefaultGeoTransform returns the identity-like transform used when no
// georeferencing has been established: upper-left at the origin, unit
// pixel size, north-up (negative y pixel size).
func DefaultGeoTransform() GeoTransform {
	return GeoTransform{
		UpperLeft:  Coordinate2D{X: 0, Y: 0},
		XPixelSize: 1,
		YPixelSize: -1,
	}
}

// PixelToWorld maps a (row, col) pixel index to a world coordinate.
// The mapping is exact; no clamping is performed.
func (gt GeoTransform) PixelToWorld(row, col int) (x, y float64) {
	x = gt.UpperLeft.X + float64(col)*gt.XPixelSize
	y = gt.UpperLeft.Y + float64(row)*gt.YPixelSize
	return x, y
}

// WorldToPixel maps a world coordinate back to a (row, col) pixel
// index by truncating the inverse affine transform toward zero. The
// result is undefined but non-panicking if the point lies outside the
// raster; callers are responsible for validating the result is
// in-range for their raster's dimension.
func (gt GeoTransform) WorldToPixel(x, y float64) (row, col int) {
	col = int((x - gt.UpperLeft.X) / gt.XPixelSize)
	row = int((y - gt.UpperLeft.Y) / gt.YPixelSize)
	return row, col
}

// GdalGeoTransform is the classical six-element affine transform
// array GDAL uses: [ul.x, sx, xRotation, ul.y, yRotation, sy].
type GdalGeoTransform [6]float64

// ToArray exports gt as a six-element GDAL geotransform, with the two
// rotation terms emitted as zero.
func (gt GeoTransform) ToArray() GdalGeoTransform {
	return GdalGeoTransform{
		gt.UpperLeft.X,
		gt.XPixelSize,
		0,
		gt.UpperLeft.Y,
		0,
		gt.YPixelSize,
	}
}

// GeoTransformFromArray builds a GeoTransform from a six-element GDAL
// geotransform, discarding the two rotation terms at indices 2 and 4.
func GeoTransformFromArray(arr GdalGeoTransform) GeoTransform {
	return GeoTransform{
		UpperLeft:  Coordinate2D{X: arr[0], Y: arr[3]},
		XPixelSize: arr[1],
		YPixelSize: arr[5],
	}
}
