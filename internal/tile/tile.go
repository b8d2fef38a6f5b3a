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

// Package tile decodes and encodes lane tiles.
//
// A tile is a protobuf-encoded envelope carrying a tile id and a list of
// layers. Each layer payload may be compressed on its own. The first layer
// is the lane layer, the second the lane-geometry layer; layers are
// identified by position, their names are informational only.
package tile

import (
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/lanekml/model"
)

const (
	LaneLayerName         = "LaneLayer"
	LaneGeometryLayerName = "LaneGeometryLayer"

	// MaxLayerSize bounds the declared uncompressed size of a layer.
	MaxLayerSize = 256 * 1024 * 1024

	laneLayerIndex         = 0
	laneGeometryLayerIndex = 1
)

// ErrDecode is wrapped by every error returned from Decode.
var ErrDecode = errors.New("tile decode failure")

// Tile is a decoded lane tile.
type Tile struct {
	Header   model.TileHeader
	Lanes    *LaneLayer
	Geometry *LaneGeometryLayer
}

// packedLayer is a layer as stored in the envelope.
type packedLayer struct {
	name        string
	compression Compression
	rawSize     int64
	data        []byte
	hasData     bool
}

// Decode parses a tile envelope and decodes its lane and lane-geometry
// layers.
func Decode(buf []byte) (*Tile, error) {
	t, err := decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return t, nil
}

func decode(buf []byte) (*Tile, error) {
	if len(buf) == 0 {
		return nil, errors.New("empty tile")
	}

	t := &Tile{}

	var layers []packedLayer

	err := message(buf).each(func(f field) error {
		switch f.num {
		case tileID:
			if err := f.expect(protowire.VarintType); err != nil {
				return err
			}

			t.Header.ID = f.varint
		case tileLayer:
			if err := f.expect(protowire.BytesType); err != nil {
				return err
			}

			l, err := readLayer(f.bytes)
			if err != nil {
				return fmt.Errorf("layer %d: %w", len(layers), err)
			}

			layers = append(layers, l)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading tile envelope: %w", err)
	}

	if len(layers) <= laneGeometryLayerIndex {
		return nil, fmt.Errorf("tile %d has %d layers, expected a lane and a lane-geometry layer", t.Header.ID, len(layers))
	}

	payloads := make([][]byte, len(layers))

	for i, l := range layers {
		t.Header.Layers = append(t.Header.Layers, model.LayerInfo{
			Name:        l.name,
			Compression: l.compression.String(),
			RawSize:     l.rawSize,
			PackedSize:  int64(len(l.data)),
		})

		if i > laneGeometryLayerIndex {
			slog.Debug("ignoring extra layer", "tile", t.Header.ID, "index", i, "name", l.name)

			continue
		}

		payloads[i], err = unpack(l.compression, l.data, l.rawSize)
		if err != nil {
			return nil, fmt.Errorf("unable to unpack layer %d (%s): %w", i, l.name, err)
		}
	}

	if t.Lanes, err = decodeLaneLayer(payloads[laneLayerIndex]); err != nil {
		return nil, fmt.Errorf("unable to decode lane layer: %w", err)
	}

	if t.Geometry, err = decodeLaneGeometryLayer(payloads[laneGeometryLayerIndex]); err != nil {
		return nil, fmt.Errorf("unable to decode lane-geometry layer: %w", err)
	}

	return t, nil
}

func readLayer(buf []byte) (packedLayer, error) {
	var l packedLayer

	err := message(buf).each(func(f field) error {
		switch f.num {
		case layerName:
			if err := f.expect(protowire.BytesType); err != nil {
				return err
			}

			l.name = string(f.bytes)
		case layerRawSize:
			if err := f.expect(protowire.VarintType); err != nil {
				return err
			}

			if f.varint > MaxLayerSize {
				return fmt.Errorf("declared layer size %d exceeds %d", f.varint, MaxLayerSize)
			}

			l.rawSize = int64(f.varint)
		default:
			c, ok := compressionOf(f.num)
			if !ok {
				return nil
			}

			if err := f.expect(protowire.BytesType); err != nil {
				return err
			}

			if l.hasData {
				return errors.New("layer carries more than one payload")
			}

			l.compression, l.data, l.hasData = c, f.bytes, true
		}

		return nil
	})
	if err != nil {
		return l, err
	}

	if !l.hasData {
		return l, errors.New("layer has no payload")
	}

	return l, nil
}

// Encode writes t as a tile envelope, compressing both layers with c.
func Encode(t *Tile, c Compression) ([]byte, error) {
	payloads := []struct {
		name string
		data []byte
	}{
		{LaneLayerName, encodeLaneLayer(t.Lanes)},
		{LaneGeometryLayerName, encodeLaneGeometryLayer(t.Geometry)},
	}

	b := appendVarintField(nil, tileID, t.Header.ID)

	for _, p := range payloads {
		packed, err := pack(c, p.data)
		if err != nil {
			return nil, fmt.Errorf("could not pack %s: %w", p.name, err)
		}

		var lb []byte
		lb = protowire.AppendTag(lb, layerName, protowire.BytesType)
		lb = protowire.AppendString(lb, p.name)
		lb = appendVarintField(lb, layerRawSize, uint64(len(p.data)))
		lb = appendBytesField(lb, c.field(), packed)

		b = appendBytesField(b, tileLayer, lb)
	}

	return b, nil
}
