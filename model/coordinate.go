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
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
)

const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// ErrOutOfRange is matched by every *OutOfRangeError.
var ErrOutOfRange = errors.New("coordinate out of range")

// OutOfRangeError reports a longitude or latitude outside the WGS84 ranges.
type OutOfRangeError struct {
	Lon, Lat Degrees
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("coordinate out of range: lon=%s lat=%s (lon must be within ±180, lat within ±90)",
		ftoa(float64(e.Lon)), ftoa(float64(e.Lat)))
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// GeoCoordinate is a WGS84 position with elevation in meters. The zero value
// is valid; any other value should come from NewGeoCoordinate.
type GeoCoordinate struct {
	Lon       Degrees
	Lat       Degrees
	Elevation float64
}

// NewGeoCoordinate validates lon and lat and returns the coordinate.
func NewGeoCoordinate(lon, lat Degrees, elevation float64) (GeoCoordinate, error) {
	if err := Validate(lon, lat); err != nil {
		return GeoCoordinate{}, err
	}

	return GeoCoordinate{Lon: lon, Lat: lat, Elevation: elevation}, nil
}

// Validate checks lon ∈ [-180, 180] and lat ∈ [-90, 90]. NaN is rejected.
func Validate(lon, lat Degrees) error {
	if !(lon >= MinLon && lon <= MaxLon) || !(lat >= MinLat && lat <= MaxLat) {
		return &OutOfRangeError{Lon: lon, Lat: lat}
	}

	return nil
}

// LatLng returns the equivalent s2.LatLng.
func (c GeoCoordinate) LatLng() s2.LatLng {
	return s2.LatLng{Lat: c.Lat.Angle(), Lng: c.Lon.Angle()}
}

func (c GeoCoordinate) String() string {
	return fmt.Sprintf("(%s, %s, %sm)", ftoa(float64(c.Lon)), ftoa(float64(c.Lat)), ftoa(c.Elevation))
}
