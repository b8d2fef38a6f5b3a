// Copyright 2025-26 the original author or authors.
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
	"strings"

	"google.golang.org/protobuf/encoding/protowire"
)

// Compression is the codec used for a layer payload.
type Compression int

const (
	RAW Compression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

var compressionNames = [...]string{"raw", "zlib", "lzma", "lz4", "zstd"}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("compression(%d)", int(c))
	}

	return compressionNames[c]
}

// ParseCompression returns the Compression with the given name.
func ParseCompression(s string) (Compression, error) {
	for i, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return Compression(i), nil
		}
	}

	return RAW, fmt.Errorf("unknown compression %q", s)
}

// field returns the layer field number that carries a payload compressed
// with c.
func (c Compression) field() protowire.Number {
	return layerRaw + protowire.Number(c)
}

// compressionOf is the inverse of Compression.field.
func compressionOf(n protowire.Number) (Compression, bool) {
	if n < layerRaw || n > layerZstd {
		return RAW, false
	}

	return Compression(n - layerRaw), true
}
