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

// Package extract pulls the center-line and boundary polylines out of a
// decoded lane-geometry layer.
package extract

import (
	"m4o.io/lanekml/internal/tile"
	"m4o.io/lanekml/model"
)

// Geometry is the pair of polyline lists carried by one tile.
type Geometry struct {
	Center   []model.Polyline
	Boundary []model.Polyline
}

// Extract returns the center lines and boundaries of layer in layer order.
// A nil layer or a missing collection yields an empty list.
func Extract(layer *tile.LaneGeometryLayer) Geometry {
	g := Geometry{
		Center:   []model.Polyline{},
		Boundary: []model.Polyline{},
	}

	if layer == nil {
		return g
	}

	g.Center = lines(layer.CenterLines)
	g.Boundary = lines(layer.Boundaries)

	return g
}

func lines(c *tile.LineCollection) []model.Polyline {
	if c == nil || len(c.Lines) == 0 {
		return []model.Polyline{}
	}

	return c.Lines
}

// Groups returns the geometry as the center and boundary groups, in that
// order.
func (g Geometry) Groups() []model.Group {
	return []model.Group{
		{Name: model.GroupCenter, Lines: g.Center},
		{Name: model.GroupBoundary, Lines: g.Boundary},
	}
}
