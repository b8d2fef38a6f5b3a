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

package model

// TileHeader describes a decoded tile without its geometry.
type TileHeader struct {
	ID     uint64      `json:"id"`
	Layers []LayerInfo `json:"layers,omitempty"`
}

// LayerInfo describes one layer of a tile as it was stored.
type LayerInfo struct {
	Name        string `json:"name,omitempty"`
	Compression string `json:"compression"`
	RawSize     int64  `json:"raw_size"`
	PackedSize  int64  `json:"packed_size"`
}

// Lane references the geometry of one lane by index into the center-line
// and boundary collections of the lane-geometry layer.
type Lane struct {
	ID            uint64
	CenterLine    uint32
	LeftBoundary  uint32
	RightBoundary uint32
}
