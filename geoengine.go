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

// Package geoengine is a GPU kernel dispatch layer for geospatial
// raster and vector compute. It compiles user-supplied OpenCL source
// into a reusable, type-specialized pipeline, marshals typed raster
// tiles and multi-point feature collections in and out of device
// memory, and enforces that argument shapes, element types and
// iteration geometry agree before a kernel ever launches.
package geoengine

import (
	"github.com/sirupsen/logrus"
)

// log is the package-level logger for host-side lifecycle events
// (device initialization, compile, run start/finish). Failed program
// builds, kernel creation and dispatch are logged at Warn level with
// the error attached, and the same diagnostic is also returned
// verbatim to the caller as a Backend error.
var log = logrus.WithField("component", "geoengine")
