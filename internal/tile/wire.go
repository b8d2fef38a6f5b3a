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
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the tile wire format.
const (
	tileID    protowire.Number = 1
	tileLayer protowire.Number = 2

	layerName    protowire.Number = 1
	layerRawSize protowire.Number = 2
	layerRaw     protowire.Number = 3
	layerZlib    protowire.Number = 4
	layerLzma    protowire.Number = 5
	layerLz4     protowire.Number = 6
	layerZstd    protowire.Number = 7

	laneLayerLane protowire.Number = 1

	laneID            protowire.Number = 1
	laneCenterLine    protowire.Number = 2
	laneLeftBoundary  protowire.Number = 3
	laneRightBoundary protowire.Number = 4

	geometryCenterLines protowire.Number = 1
	geometryBoundaries  protowire.Number = 2

	collectionLine protowire.Number = 1

	lineLon       protowire.Number = 1
	lineLat       protowire.Number = 2
	lineElevation protowire.Number = 3
)

// field is one decoded protobuf field. Only varint and length-delimited
// values are kept; other wire types are skipped.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

// message iterates over the fields of an encoded protobuf message.
type message []byte

// next consumes one field. It must not be called once the message is empty.
func (m *message) next() (field, error) {
	b := *m

	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return field{}, fmt.Errorf("invalid field tag: %w", protowire.ParseError(n))
	}

	b = b[n:]
	f := field{num: num, typ: typ}

	switch typ {
	case protowire.VarintType:
		f.varint, n = protowire.ConsumeVarint(b)
	case protowire.BytesType:
		f.bytes, n = protowire.ConsumeBytes(b)
	default:
		n = protowire.ConsumeFieldValue(num, typ, b)
	}

	if n < 0 {
		return field{}, fmt.Errorf("invalid value for field %d: %w", num, protowire.ParseError(n))
	}

	*m = b[n:]

	return f, nil
}

// each calls fn for every field of the message.
func (m message) each(fn func(f field) error) error {
	for len(m) > 0 {
		f, err := m.next()
		if err != nil {
			return err
		}

		if err := fn(f); err != nil {
			return err
		}
	}

	return nil
}

// sint64s returns the zig-zag encoded values of a repeated sint64 field,
// packed or not.
func (f field) sint64s() ([]int64, error) {
	if f.typ == protowire.VarintType {
		return []int64{protowire.DecodeZigZag(f.varint)}, nil
	}

	if f.typ != protowire.BytesType {
		return nil, fmt.Errorf("field %d: unexpected wire type %d", f.num, f.typ)
	}

	values := make([]int64, 0, len(f.bytes))

	for b := f.bytes; len(b) > 0; {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("field %d: %w", f.num, protowire.ParseError(n))
		}

		values = append(values, protowire.DecodeZigZag(v))
		b = b[n:]
	}

	return values, nil
}

// expect checks the wire type of a known field.
func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return fmt.Errorf("field %d: wire type %d, expected %d", f.num, f.typ, typ)
	}

	return nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

func appendPackedSint64(b []byte, num protowire.Number, values []int64) []byte {
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(v))
	}

	return appendBytesField(b, num, packed)
}
