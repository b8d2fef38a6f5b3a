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
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
)

var ErrUnknownCompressionType = errors.New("unknown layer compression type")

// unpack uncompresses a layer payload. The result must be exactly rawSize
// bytes long.
func unpack(c Compression, data []byte, rawSize int64) ([]byte, error) {
	var factory func(r io.Reader) (io.Reader, error)

	switch c {
	case RAW:
		if int64(len(data)) != rawSize {
			return nil, fmt.Errorf("raw layer data size %d but expected %d", len(data), rawSize)
		}

		return data, nil
	case ZLIB:
		factory = func(r io.Reader) (io.Reader, error) {
			return zlib.NewReader(r)
		}
	case LZMA:
		factory = func(r io.Reader) (io.Reader, error) {
			return lzma.NewReader(r)
		}
	case LZ4:
		factory = func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}
	case ZSTD:
		factory = func(r io.Reader) (io.Reader, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	default:
		return nil, ErrUnknownCompressionType
	}

	rdr, err := factory(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	if closer, ok := rdr.(io.Closer); ok {
		defer closer.Close()
	}

	buf := bytes.NewBuffer(make([]byte, 0, rawSize+bytes.MinRead))

	// read one byte past the declared size so oversized payloads are caught
	if n, err := buf.ReadFrom(io.LimitReader(rdr, rawSize+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if n != rawSize {
		return nil, fmt.Errorf("unpacked layer data size %d but expected %d", n, rawSize)
	}

	return buf.Bytes(), nil
}
