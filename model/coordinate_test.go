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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/lanekml/model"
)

func TestValidate(t *testing.T) {
	test_cases := []struct {
		name  string
		lon   model.Degrees
		lat   model.Degrees
		valid bool
	}{
		{"origin", 0, 0, true},
		{"north east corner", 180, 90, true},
		{"south west corner", -180, -90, true},
		{"lon too large", 181, 0, false},
		{"lon too small", -180.0000001, 0, false},
		{"lat too large", 0, 91, false},
		{"lat too small", 0, -90.0000001, false},
		{"lon NaN", model.Degrees(math.NaN()), 0, false},
		{"lat NaN", 0, model.Degrees(math.NaN()), false},
		{"lat infinite", 0, model.Degrees(math.Inf(1)), false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			err := model.Validate(tc.lon, tc.lat)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, model.ErrOutOfRange), "got %v", err)
			}
		})
	}
}

func TestNewGeoCoordinate(t *testing.T) {
	c, err := model.NewGeoCoordinate(11.5, 48.1, 520.25)
	require.NoError(t, err)
	assert.Equal(t, model.GeoCoordinate{Lon: 11.5, Lat: 48.1, Elevation: 520.25}, c)

	c, err = model.NewGeoCoordinate(181, 0, 1)
	assert.Equal(t, model.GeoCoordinate{}, c)

	var oor *model.OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, model.Degrees(181), oor.Lon)
	assert.Equal(t, model.Degrees(0), oor.Lat)
	assert.Contains(t, err.Error(), "lon=181")
}

func TestGeoCoordinateString(t *testing.T) {
	c, err := model.NewGeoCoordinate(-0.5, 51.25, 12.3)
	require.NoError(t, err)
	assert.Equal(t, "(-0.5, 51.25, 12.3m)", c.String())
}
