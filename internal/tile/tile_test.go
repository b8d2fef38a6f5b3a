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

package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/lanekml/model"
)

func sampleTile() *Tile {
	return &Tile{
		Header: model.TileHeader{ID: 545379780},
		Lanes: &LaneLayer{Lanes: []model.Lane{
			{ID: 1, CenterLine: 0, LeftBoundary: 0, RightBoundary: 1},
		}},
		Geometry: &LaneGeometryLayer{
			CenterLines: &LineCollection{Lines: []model.Polyline{
				{
					{Lon: 100, Lat: 200, Elevation: 12345},
					{Lon: 150, Lat: 180, Elevation: 12300},
					{Lon: 1<<32 - 1, Lat: 1<<31 - 1, Elevation: -50},
				},
			}},
			Boundaries: &LineCollection{Lines: []model.Polyline{
				{{Lon: 10, Lat: 20, Elevation: 0}, {Lon: 11, Lat: 21, Elevation: 1}},
				{{Lon: 1 << 31, Lat: 1 << 30, Elevation: 100}},
			}},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Compression{RAW, ZLIB, LZMA, LZ4, ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			in := sampleTile()

			buf, err := Encode(in, c)
			require.NoError(t, err)

			out, err := Decode(buf)
			require.NoError(t, err)

			assert.Equal(t, in.Header.ID, out.Header.ID)
			assert.Equal(t, in.Lanes, out.Lanes)
			assert.Equal(t, in.Geometry, out.Geometry)

			require.Len(t, out.Header.Layers, 2)
			assert.Equal(t, LaneLayerName, out.Header.Layers[0].Name)
			assert.Equal(t, LaneGeometryLayerName, out.Header.Layers[1].Name)

			for _, l := range out.Header.Layers {
				assert.Equal(t, c.String(), l.Compression)
				assert.Positive(t, l.RawSize)
				assert.Positive(t, l.PackedSize)
			}
		})
	}
}

func TestDecodeAbsentCollection(t *testing.T) {
	in := sampleTile()
	in.Geometry.Boundaries = nil

	buf, err := Encode(in, RAW)
	require.NoError(t, err)

	out, err := Decode(buf)
	require.NoError(t, err)

	assert.NotNil(t, out.Geometry.CenterLines)
	assert.Nil(t, out.Geometry.Boundaries)
}

func TestDecodeEmptyCollection(t *testing.T) {
	in := sampleTile()
	in.Geometry.Boundaries = &LineCollection{Lines: []model.Polyline{}}

	buf, err := Encode(in, ZLIB)
	require.NoError(t, err)

	out, err := Decode(buf)
	require.NoError(t, err)

	require.NotNil(t, out.Geometry.Boundaries)
	assert.Empty(t, out.Geometry.Boundaries.Lines)
}

func envelope(layers ...[]byte) []byte {
	b := appendVarintField(nil, tileID, 7)
	for _, l := range layers {
		b = appendBytesField(b, tileLayer, l)
	}

	return b
}

func rawLayer(name string, rawSize uint64, data []byte) []byte {
	b := appendBytesField(nil, layerName, []byte(name))
	b = appendVarintField(b, layerRawSize, rawSize)

	return appendBytesField(b, layerRaw, data)
}

func TestDecodeErrors(t *testing.T) {
	valid, err := Encode(sampleTile(), RAW)
	require.NoError(t, err)

	mismatched := appendPackedSint64(nil, lineLon, []int64{1, 2})
	mismatched = appendPackedSint64(mismatched, lineLat, []int64{1})
	mismatched = appendPackedSint64(mismatched, lineElevation, []int64{1, 2})
	geometry := appendBytesField(nil, geometryCenterLines, appendBytesField(nil, collectionLine, mismatched))

	negative := appendPackedSint64(nil, lineLon, []int64{-1})
	negative = appendPackedSint64(negative, lineLat, []int64{0})
	negative = appendPackedSint64(negative, lineElevation, []int64{0})
	outside := appendBytesField(nil, geometryBoundaries, appendBytesField(nil, collectionLine, negative))

	noPayload := appendBytesField(nil, layerName, []byte("LaneLayer"))

	test_cases := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-3]},
		{"garbage", []byte{0xff, 0xff, 0xff}},
		{"no layers", envelope()},
		{"one layer", envelope(rawLayer("LaneLayer", 0, nil))},
		{"size mismatch", envelope(rawLayer("LaneLayer", 5, []byte("abc")), rawLayer("LaneGeometryLayer", 0, nil))},
		{"no payload", envelope(noPayload, rawLayer("LaneGeometryLayer", 0, nil))},
		{"oversized", envelope(rawLayer("LaneLayer", MaxLayerSize+1, nil), rawLayer("LaneGeometryLayer", 0, nil))},
		{"mismatched arrays", envelope(rawLayer("LaneLayer", 0, nil), rawLayer("LaneGeometryLayer", uint64(len(geometry)), geometry))},
		{"negative coordinate", envelope(rawLayer("LaneLayer", 0, nil), rawLayer("LaneGeometryLayer", uint64(len(outside)), outside))},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			tile, err := Decode(tc.buf)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Nil(t, tile)
		})
	}
}

func TestDecodeIgnoresExtraLayers(t *testing.T) {
	buf, err := Encode(sampleTile(), RAW)
	require.NoError(t, err)

	buf = appendBytesField(buf, tileLayer, rawLayer("Extra", 3, []byte{1, 2, 3}))

	out, err := Decode(buf)
	require.NoError(t, err)

	assert.Len(t, out.Header.Layers, 3)
	assert.Equal(t, "Extra", out.Header.Layers[2].Name)
}

func TestDecodeUnpackedLine(t *testing.T) {
	var b []byte
	for _, v := range []int64{5, 3} {
		b = protowire.AppendTag(b, lineLon, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v))
		b = protowire.AppendTag(b, lineLat, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v))
		b = protowire.AppendTag(b, lineElevation, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(-v))
	}

	line, err := decodeLine(b)
	require.NoError(t, err)

	assert.Equal(t, model.Polyline{
		{Lon: 5, Lat: 5, Elevation: -5},
		{Lon: 8, Lat: 8, Elevation: -8},
	}, line)
}

func TestParseCompression(t *testing.T) {
	c, err := ParseCompression("ZSTD")
	assert.NoError(t, err)
	assert.Equal(t, ZSTD, c)

	_, err = ParseCompression("brotli")
	assert.Error(t, err)

	assert.Equal(t, "compression(9)", Compression(9).String())
}

func TestEncodeUnknownCompression(t *testing.T) {
	_, err := Encode(sampleTile(), Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompressionType)
}

func TestCalcDeltas(t *testing.T) {
	values := []int64{1, 1, 2, 3, 5, 7, 12, 4}
	deltas := []int64{1, 0, 1, 1, 2, 2, 5, -8}

	assert.Equal(t, deltas, calcDeltas(values))
}
