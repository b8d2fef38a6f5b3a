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
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
)

type nopCloserWriter struct {
	io.Writer
}

func (w nopCloserWriter) Close() error {
	return nil
}

// newPacker creates the compressing writer for c on top of buf.
func newPacker(c Compression, buf *bytes.Buffer) (io.WriteCloser, error) {
	switch c {
	case RAW:
		return nopCloserWriter{buf}, nil
	case ZLIB:
		return zlib.NewWriter(buf), nil
	case LZMA:
		return lzma.NewWriter(buf)
	case LZ4:
		return lz4.NewWriter(buf), nil
	case ZSTD:
		return zstd.NewWriter(buf)
	default:
		return nil, ErrUnknownCompressionType
	}
}

// pack compresses data with c.
func pack(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer

	p, err := newPacker(c, &buf)
	if err != nil {
		return nil, fmt.Errorf("could not create %s packer: %w", c, err)
	}

	if _, err = p.Write(data); err != nil {
		return nil, fmt.Errorf("could not compress layer: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	return buf.Bytes(), nil
}
