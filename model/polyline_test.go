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

package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/lanekml/model"
)

func fixed(lon, lat float64, cm int32) model.FixedCoordinate {
	return model.FixedCoordinate{
		Lon:       model.DegreesLonToFixed(lon),
		Lat:       model.DegreesLatToFixed(lat),
		Elevation: cm,
	}
}

func TestPolylineToGeoKeepsOrder(t *testing.T) {
	line := model.Polyline{fixed(0, 0, 100), fixed(-90, 45, 200), fixed(90, -45, -300)}

	path, err := line.ToGeo()
	require.NoError(t, err)
	require.Len(t, path, 3)

	assert.Equal(t, model.Degrees(0), path[0].Lon)
	assert.Equal(t, model.Degrees(-90), path[1].Lon)
	assert.Equal(t, model.Degrees(45), path[1].Lat)
	assert.Equal(t, model.Degrees(-45), path[2].Lat)

	for i, c := range line {
		assert.Equal(t, float64(c.Elevation)/100.0, path[i].Elevation)
	}
}

func TestPolylineToGeoReportsVertex(t *testing.T) {
	line := model.Polyline{fixed(0, 0, 0), {Lon: 0, Lat: math.MaxUint32}}

	path, err := line.ToGeo()
	assert.Nil(t, path)
	assert.ErrorIs(t, err, model.ErrOutOfRange)
	assert.Contains(t, err.Error(), "vertex 1")
}

func TestEmptyPolyline(t *testing.T) {
	path, err := model.Polyline{}.ToGeo()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, 0.0, path.Length())
	assert.Nil(t, path.Bounds())
}

func TestGeoPathLength(t *testing.T) {
	path := model.GeoPath{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}}

	// two arcs of one degree each on a sphere of EarthRadius
	expected := 2 * model.EarthRadius * math.Pi / 180
	assert.InDelta(t, expected, path.Length(), 1e-6)
}

func TestGeoPathBounds(t *testing.T) {
	path := model.GeoPath{{Lon: 11, Lat: 48}, {Lon: 11.5, Lat: 47.5}, {Lon: 10.5, Lat: 48.25}}

	bbox := path.Bounds()
	require.NotNil(t, bbox)
	assert.Equal(t, &model.BoundingBox{Top: 48.25, Left: 10.5, Bottom: 47.5, Right: 11.5}, bbox)
}

func TestGroupVertexCount(t *testing.T) {
	g := model.Group{
		Name:  model.GroupCenter,
		Lines: []model.Polyline{{fixed(0, 0, 0)}, {fixed(0, 0, 0), fixed(1, 1, 0)}, {}},
	}

	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 0, model.Group{Name: model.GroupBoundary}.VertexCount())
}
