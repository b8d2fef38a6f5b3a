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
	"math"
)

// Fixed-point angular encoding. A quarter circle (90°) spans 2^30 units, so
// longitude covers the full uint32 range (2^32 units = 360°) and latitude
// half of it (2^31 units = 180°).
const (
	unitsPerQuarter = 1 << 30
	lonModulus      = 1 << 32
	latModulus      = 1 << 31

	degreesPerQuarter = 90.0

	// Step is the angular size of one fixed-point unit, in degrees.
	Step Degrees = degreesPerQuarter / unitsPerQuarter

	centimetersPerMeter = 100.0
)

// FixedCoordinate is a point in the tile's native fixed-point encoding.
// Elevation is in centimeters.
type FixedCoordinate struct {
	Lon       uint32
	Lat       uint32
	Elevation int32
}

func (c FixedCoordinate) String() string {
	return fmt.Sprintf("(%d, %d, %dcm)", c.Lon, c.Lat, c.Elevation)
}

// ToGeo converts the coordinate to WGS84 degrees and meters. The result is
// validated; a coordinate that lands outside the geodetic ranges yields an
// *OutOfRangeError.
func (c FixedCoordinate) ToGeo() (GeoCoordinate, error) {
	return NewGeoCoordinate(
		FixedLonToDegrees(c.Lon),
		FixedLatToDegrees(c.Lat),
		ElevationToMeters(c.Elevation),
	)
}

// FixedFromGeo converts a WGS84 coordinate into the fixed-point encoding.
// The conversion floors, so it is lossy by up to one Step.
func FixedFromGeo(g GeoCoordinate) FixedCoordinate {
	return FixedCoordinate{
		Lon:       DegreesLonToFixed(float64(g.Lon)),
		Lat:       DegreesLatToFixed(float64(g.Lat)),
		Elevation: MetersToElevation(g.Elevation),
	}
}

// DegreesLonToFixed converts a longitude to the unsigned full-circle
// representation in [0, 2^32).
func DegreesLonToFixed(lon float64) uint32 {
	x := int64(math.Floor(lon / degreesPerQuarter * unitsPerQuarter))
	if x < 0 {
		x += lonModulus
	}

	return uint32(x)
}

// DegreesLatToFixed converts a latitude to the unsigned half-circle
// representation in [0, 2^31).
func DegreesLatToFixed(lat float64) uint32 {
	y := int64(math.Floor(lat / degreesPerQuarter * unitsPerQuarter))
	if y < 0 {
		y += latModulus
	}

	return uint32(y)
}

// FixedLonToDegrees is the inverse of DegreesLonToFixed. Values at or above
// 2^31 are the western hemisphere.
func FixedLonToDegrees(lon uint32) Degrees {
	v := int64(lon)
	if v >= latModulus {
		v -= lonModulus
	}

	return Degrees(degreesPerQuarter * float64(v) / unitsPerQuarter)
}

// FixedLatToDegrees is the inverse of DegreesLatToFixed. Values at or above
// 2^30 are the southern hemisphere.
func FixedLatToDegrees(lat uint32) Degrees {
	v := int64(lat)
	if v >= unitsPerQuarter {
		v -= latModulus
	}

	return Degrees(degreesPerQuarter * float64(v) / unitsPerQuarter)
}

// ElevationToMeters converts a fixed-point elevation in centimeters to meters.
func ElevationToMeters(cm int32) float64 {
	return float64(cm) / centimetersPerMeter
}

// MetersToElevation converts meters to centimeters, rounded to nearest.
func MetersToElevation(m float64) int32 {
	return int32(math.Round(m * centimetersPerMeter))
}
