// Copyright 2026 the original author or authors.
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

package model

import (
	"fmt"
)

// EarthRadius is the mean Earth radius in meters used for path lengths.
const EarthRadius = 6_371_000.0

// Names of the two geometry groups carried by a lane-geometry layer.
const (
	GroupCenter   = "center"
	GroupBoundary = "boundary"
)

// Polyline is an ordered sequence of fixed-point vertices. The order is the
// direction of travel and must not be changed.
type Polyline []FixedCoordinate

// ToGeo converts every vertex, stopping at the first one that fails
// validation.
func (p Polyline) ToGeo() (GeoPath, error) {
	path := make(GeoPath, len(p))

	for i, c := range p {
		g, err := c.ToGeo()
		if err != nil {
			return nil, fmt.Errorf("vertex %d %s: %w", i, c, err)
		}

		path[i] = g
	}

	return path, nil
}

// Group is a named collection of polylines.
type Group struct {
	Name  string
	Lines []Polyline
}

// VertexCount returns the number of vertices over all lines in the group.
func (g Group) VertexCount() int {
	var n int
	for _, l := range g.Lines {
		n += len(l)
	}

	return n
}

// GeoPath is a converted polyline.
type GeoPath []GeoCoordinate

// Length returns the great-circle length of the path in meters. Elevation
// is ignored.
func (p GeoPath) Length() float64 {
	var length float64

	for i := 1; i < len(p); i++ {
		length += float64(p[i-1].LatLng().Distance(p[i].LatLng())) * EarthRadius
	}

	return length
}

// Bounds returns the bounding box of the path, or nil if it is empty.
func (p GeoPath) Bounds() *BoundingBox {
	if len(p) == 0 {
		return nil
	}

	bbox := InitialBoundingBox()
	for _, c := range p {
		bbox.ExpandWithLatLng(c.Lat, c.Lon)
	}

	return bbox
}
