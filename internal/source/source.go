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

// Package source fetches encoded tiles from a tile service or from disk.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrTransport is wrapped by every fetch failure.
var ErrTransport = errors.New("tile transport failure")

// Source fetches the encoded bytes of a tile.
type Source interface {
	Fetch(ctx context.Context, tileID string) ([]byte, error)
}

// File reads a tile from a local file; the tile id is ignored.
type File struct {
	Path string
}

func (f File) Fetch(ctx context.Context, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	buf, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return buf, nil
}
