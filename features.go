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

import "fmt"

// GeometryKind is the closed set of geometry kinds a feature
// collection may carry. Only Data (attribute-only, no geometry) and
// MultiPoint are implemented; MultiLineString and MultiPolygon are
// declared but fail hard at bind/dispatch time with
// ErrUnsupportedGeometry.
type GeometryKind int

const (
	// Data is an attribute-only feature collection: no geometry.
	Data GeometryKind = iota
	// MultiPoint is a feature collection of multi-point geometries.
	MultiPoint
	// MultiLineString is reserved for future work.
	MultiLineString
	// MultiPolygon is reserved for future work.
	MultiPolygon
)

func (g GeometryKind) String() string {
	switch g {
	case Data:
		return "Data"
	case MultiPoint:
		return "MultiPoint"
	case MultiLineString:
		return "MultiLineString"
	case MultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// AttributeType is the closed set of types a feature collection's
// attribute column may hold.
type AttributeType int

const (
	// AttrFloat is a float64 attribute column.
	AttrFloat AttributeType = iota
	// AttrInt is an int64 attribute column.
	AttrInt
	// AttrText is a string attribute column.
	AttrText
	// AttrCategory is a categorical (coded integer) attribute column.
	AttrCategory
)

func (t AttributeType) String() string {
	switch t {
	case AttrFloat:
		return "Float"
	case AttrInt:
		return "Int"
	case AttrText:
		return "Text"
	case AttrCategory:
		return "Category"
	default:
		return "Unknown"
	}
}

// lineBuffers and polygonBuffers describe the planned (but not yet
// implemented) device-side layouts for line and polygon geometries:
// flat coordinates plus nested per-ring/per-polygon/per-feature offset
// arrays. They document the shape implementations should eventually
// expose; nothing in this package constructs or consumes them today,
// and every code path that would reaches ErrUnsupportedGeometry first.
type lineBuffers struct {
	coords        []Coordinate2D
	lineOffsets   []int32
	featureOffsets []int32
}

type polygonBuffers struct {
	coords         []Coordinate2D
	ringOffsets    []int32
	polygonOffsets []int32
	featureOffsets []int32
}

// TypedFeatureCollection is the tagged union over geometry kinds,
// selected by Kind. MultiPt is non-nil only for MultiPoint collections;
// Data collections carry their feature count in numFeats.
type TypedFeatureCollection struct {
	Kind      GeometryKind
	MultiPt   *MultiPointCollection
	numFeats  int // valid for Data collections, which carry no geometry
	attrs     map[string]attributeColumn
}

// GeometryKind returns the collection's geometry tag.
func (c *TypedFeatureCollection) GeometryKind() GeometryKind {
	return c.Kind
}

// NumFeatures returns the number of features in the collection.
func (c *TypedFeatureCollection) NumFeatures() int {
	switch c.Kind {
	case MultiPoint:
		return c.MultiPt.NumFeatures()
	case Data:
		return c.numFeats
	default:
		panic(fmt.Sprintf("geoengine: NumFeatures unsupported for %s", c.Kind))
	}
}

// NumCoords returns the total number of coordinates across all
// features, which is only meaningful for geometry-bearing kinds.
func (c *TypedFeatureCollection) NumCoords() int {
	switch c.Kind {
	case MultiPoint:
		return c.MultiPt.NumCoords()
	default:
		panic(fmt.Sprintf("geoengine: NumCoords unsupported for %s", c.Kind))
	}
}

// ColumnType returns the attribute type of the named column and
// whether it exists.
func (c *TypedFeatureCollection) ColumnType(name string) (AttributeType, bool) {
	col, ok := c.attrs[name]
	if !ok {
		return 0, false
	}
	return col.typ, true
}

// attributeColumn is a single typed attribute column, keyed by name on
// the owning collection.
type attributeColumn struct {
	typ     AttributeType
	floats  []float64
	ints    []int64
	text    []string
	category []int64
}

// NewDataCollection builds an attribute-only feature collection with
// numFeatures rows and no geometry.
func NewDataCollection(numFeatures int) *TypedFeatureCollection {
	return &TypedFeatureCollection{
		Kind:     Data,
		numFeats: numFeatures,
		attrs:    map[string]attributeColumn{},
	}
}

// WithFloatColumn attaches a float64 attribute column to the
// collection and returns it for chaining.
func (c *TypedFeatureCollection) WithFloatColumn(name string, values []float64) *TypedFeatureCollection {
	c.attrs[name] = attributeColumn{typ: AttrFloat, floats: values}
	return c
}

// WithIntColumn attaches an int64 attribute column to the collection
// and returns it for chaining.
func (c *TypedFeatureCollection) WithIntColumn(name string, values []int64) *TypedFeatureCollection {
	c.attrs[name] = attributeColumn{typ: AttrInt, ints: values}
	return c
}

// WithTextColumn attaches a string attribute column to the collection
// and returns it for chaining.
func (c *TypedFeatureCollection) WithTextColumn(name string, values []string) *TypedFeatureCollection {
	c.attrs[name] = attributeColumn{typ: AttrText, text: values}
	return c
}

// MultiPointCollection is a columnar collection of multi-point
// features: a flat coordinate buffer partitioned into features by
// multipoint_offsets, one time interval per feature, and typed
// attribute columns keyed by name.
type MultiPointCollection struct {
	Coordinates        []Coordinate2D
	MultiPointOffsets  []int32 // length numFeatures+1
	TimeIntervals      []TimeInterval
	attrs              map[string]attributeColumn
}

// NewMultiPointCollection builds a MultiPointCollection. offsets must
// have length len(featureTimes)+1 and partition coords into features;
// offsets[0] must be 0 and offsets[len(offsets)-1] must equal
// len(coords).
func NewMultiPointCollection(coords []Coordinate2D, offsets []int32, featureTimes []TimeInterval) (*MultiPointCollection, error) {
	if len(offsets) != len(featureTimes)+1 {
		return nil, fmt.Errorf("geoengine: multipoint_offsets length %d does not match num_features+1 (%d)", len(offsets), len(featureTimes)+1)
	}
	if len(offsets) == 0 || offsets[0] != 0 || int(offsets[len(offsets)-1]) != len(coords) {
		return nil, fmt.Errorf("geoengine: multipoint_offsets do not partition %d coordinates", len(coords))
	}
	return &MultiPointCollection{
		Coordinates:       coords,
		MultiPointOffsets: offsets,
		TimeIntervals:     featureTimes,
		attrs:             map[string]attributeColumn{},
	}, nil
}

// NumFeatures returns the number of multi-point features.
func (m *MultiPointCollection) NumFeatures() int {
	if len(m.MultiPointOffsets) == 0 {
		return 0
	}
	return len(m.MultiPointOffsets) - 1
}

// NumCoords returns the total number of coordinates across all
// features.
func (m *MultiPointCollection) NumCoords() int {
	return len(m.Coordinates)
}

// AsTypedFeatureCollection wraps m as a TypedFeatureCollection tagged
// MultiPoint.
func (m *MultiPointCollection) AsTypedFeatureCollection() *TypedFeatureCollection {
	return &TypedFeatureCollection{Kind: MultiPoint, MultiPt: m, attrs: m.attrs}
}

// ColumnType returns the attribute type of the named column and
// whether it exists.
func (m *MultiPointCollection) ColumnType(name string) (AttributeType, bool) {
	col, ok := m.attrs[name]
	if !ok {
		return 0, false
	}
	return col.typ, true
}

// FeatureCollectionBuilder is handed in by the caller to receive the
// output of a vector-iterating run. The Runnable populates it with
// readback coordinates/offsets and default time intervals; Finish
// seals the collection. Output column and full time-handling support
// is intentionally not part of this interface: see DESIGN.md's Open
// Question notes.
type FeatureCollectionBuilder interface {
	// NumFeatures returns the number of output features this builder
	// is sized for.
	NumFeatures() int
	// NumCoords returns the number of output coordinates this builder
	// is sized for.
	NumCoords() int
	// SetPoints installs the readback coordinates and multipoint
	// offsets as the builder's geometry.
	SetPoints(coords []Coordinate2D, offsets []int32) error
	// SetDefaultTimeIntervals fills every feature's time interval with
	// DefaultTimeInterval().
	SetDefaultTimeIntervals() error
	// Finish seals the collection; no further mutation is permitted
	// afterwards.
	Finish() error
}
