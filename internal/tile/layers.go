// Copyright 2017-26 the original author or authors.
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

package tile

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/lanekml/model"
)

// LaneLayer holds the lanes of a tile.
type LaneLayer struct {
	Lanes []model.Lane
}

// LineCollection is an ordered collection of 3-D polylines.
type LineCollection struct {
	Lines []model.Polyline
}

// LaneGeometryLayer holds the two polyline collections of a tile. A
// collection that was not present in the tile is nil.
type LaneGeometryLayer struct {
	CenterLines *LineCollection
	Boundaries  *LineCollection
}

func decodeLaneLayer(buf []byte) (*LaneLayer, error) {
	l := &LaneLayer{}

	err := message(buf).each(func(f field) error {
		if f.num != laneLayerLane {
			return nil
		}

		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}

		lane, err := decodeLane(f.bytes)
		if err != nil {
			return fmt.Errorf("lane %d: %w", len(l.Lanes), err)
		}

		l.Lanes = append(l.Lanes, lane)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

func decodeLane(buf []byte) (model.Lane, error) {
	var lane model.Lane

	err := message(buf).each(func(f field) error {
		var dst *uint32

		switch f.num {
		case laneID:
			if err := f.expect(protowire.VarintType); err != nil {
				return err
			}

			lane.ID = f.varint

			return nil
		case laneCenterLine:
			dst = &lane.CenterLine
		case laneLeftBoundary:
			dst = &lane.LeftBoundary
		case laneRightBoundary:
			dst = &lane.RightBoundary
		default:
			return nil
		}

		if err := f.expect(protowire.VarintType); err != nil {
			return err
		}

		if f.varint > math.MaxUint32 {
			return fmt.Errorf("field %d: line index %d out of range", f.num, f.varint)
		}

		*dst = uint32(f.varint)

		return nil
	})

	return lane, err
}

func decodeLaneGeometryLayer(buf []byte) (*LaneGeometryLayer, error) {
	l := &LaneGeometryLayer{}

	err := message(buf).each(func(f field) error {
		var dst **LineCollection

		switch f.num {
		case geometryCenterLines:
			dst = &l.CenterLines
		case geometryBoundaries:
			dst = &l.Boundaries
		default:
			return nil
		}

		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}

		c, err := decodeLineCollection(f.bytes)
		if err != nil {
			return fmt.Errorf("collection %d: %w", f.num, err)
		}

		*dst = c

		return nil
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

func decodeLineCollection(buf []byte) (*LineCollection, error) {
	c := &LineCollection{Lines: []model.Polyline{}}

	err := message(buf).each(func(f field) error {
		if f.num != collectionLine {
			return nil
		}

		if err := f.expect(protowire.BytesType); err != nil {
			return err
		}

		line, err := decodeLine(f.bytes)
		if err != nil {
			return fmt.Errorf("line %d: %w", len(c.Lines), err)
		}

		c.Lines = append(c.Lines, line)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// decodeLine rebuilds a polyline from its delta-coded coordinate arrays.
func decodeLine(buf []byte) (model.Polyline, error) {
	var lons, lats, elevations []int64

	err := message(buf).each(func(f field) error {
		var dst *[]int64

		switch f.num {
		case lineLon:
			dst = &lons
		case lineLat:
			dst = &lats
		case lineElevation:
			dst = &elevations
		default:
			return nil
		}

		values, err := f.sint64s()
		if err != nil {
			return err
		}

		*dst = append(*dst, values...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(lats) != len(lons) || len(elevations) != len(lons) {
		return nil, fmt.Errorf("mismatched coordinate arrays: %d lon, %d lat, %d elevation",
			len(lons), len(lats), len(elevations))
	}

	line := make(model.Polyline, len(lons))

	var lon, lat, elevation int64
	for i := range lons {
		lon += lons[i]
		lat += lats[i]
		elevation += elevations[i]

		if lon < 0 || lon > math.MaxUint32 || lat < 0 || lat > math.MaxUint32 {
			return nil, fmt.Errorf("vertex %d: (%d, %d) outside the fixed-point domain", i, lon, lat)
		}

		if elevation < math.MinInt32 || elevation > math.MaxInt32 {
			return nil, fmt.Errorf("vertex %d: elevation %d out of range", i, elevation)
		}

		line[i] = model.FixedCoordinate{
			Lon:       uint32(lon),
			Lat:       uint32(lat),
			Elevation: int32(elevation),
		}
	}

	return line, nil
}

func encodeLaneLayer(l *LaneLayer) []byte {
	var b []byte

	if l == nil {
		return b
	}

	for _, lane := range l.Lanes {
		var lb []byte
		lb = appendVarintField(lb, laneID, lane.ID)
		lb = appendVarintField(lb, laneCenterLine, uint64(lane.CenterLine))
		lb = appendVarintField(lb, laneLeftBoundary, uint64(lane.LeftBoundary))
		lb = appendVarintField(lb, laneRightBoundary, uint64(lane.RightBoundary))

		b = appendBytesField(b, laneLayerLane, lb)
	}

	return b
}

func encodeLaneGeometryLayer(l *LaneGeometryLayer) []byte {
	var b []byte

	if l == nil {
		return b
	}

	if l.CenterLines != nil {
		b = appendBytesField(b, geometryCenterLines, encodeLineCollection(l.CenterLines))
	}

	if l.Boundaries != nil {
		b = appendBytesField(b, geometryBoundaries, encodeLineCollection(l.Boundaries))
	}

	return b
}

func encodeLineCollection(c *LineCollection) []byte {
	var b []byte
	for _, line := range c.Lines {
		b = appendBytesField(b, collectionLine, encodeLine(line))
	}

	return b
}

// encodeLine delta-codes the coordinates of a polyline.
func encodeLine(line model.Polyline) []byte {
	lons := make([]int64, len(line))
	lats := make([]int64, len(line))
	elevations := make([]int64, len(line))

	for i, c := range line {
		lons[i] = int64(c.Lon)
		lats[i] = int64(c.Lat)
		elevations[i] = int64(c.Elevation)
	}

	var b []byte
	b = appendPackedSint64(b, lineLon, calcDeltas(lons))
	b = appendPackedSint64(b, lineLat, calcDeltas(lats))
	b = appendPackedSint64(b, lineElevation, calcDeltas(elevations))

	return b
}

func calcDeltas[T constraints.Integer](values []T) []T {
	prev := T(0)
	deltas := make([]T, len(values))

	for i, v := range values {
		deltas[i] = v - prev
		prev = v
	}

	return deltas
}
