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

// Package lanekml converts the lane geometry of a navigation data tile into
// a KML document.
//
// A conversion fetches the encoded tile, decodes its lane-geometry layer,
// converts every fixed-point vertex to WGS84 and writes one folder of
// styled placemarks per geometry group.
package lanekml

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"m4o.io/lanekml/internal/extract"
	"m4o.io/lanekml/internal/tile"
	"m4o.io/lanekml/kml"
	"m4o.io/lanekml/model"
)

// Stage names a step of the conversion pipeline.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageDecode  Stage = "decode"
	StageConvert Stage = "convert"
	StageWrite   Stage = "write"
)

// StageError tags a pipeline failure with the stage it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Source provides the encoded bytes of a tile.
type Source interface {
	Fetch(ctx context.Context, tileID string) ([]byte, error)
}

// GroupStats summarizes one geometry group.
type GroupStats struct {
	Name     string  `json:"name"`
	Lines    int     `json:"lines"`
	Vertices int     `json:"vertices"`
	Length   float64 `json:"length_m"`
}

// Result describes a finished conversion.
type Result struct {
	TileID    string             `json:"tile_id"`
	Output    string             `json:"output"`
	TileBytes int                `json:"tile_bytes"`
	Groups    []GroupStats       `json:"groups"`
	Bounds    *model.BoundingBox `json:"bounds,omitempty"`
}

// Convert fetches tileID from src and writes its lane geometry as KML to
// output. Nothing is written unless every earlier stage succeeds. Errors are
// *StageError.
func Convert(ctx context.Context, src Source, tileID, output string, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	start := time.Now()

	buf, err := src.Fetch(ctx, tileID)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}

	o.trace(StageFetch, start, "tile", tileID, "size", humanize.Bytes(uint64(len(buf))))

	_, doc, err := render(buf, o)
	if err != nil {
		return nil, err
	}

	start = time.Now()

	if err = kml.WriteFile(output, doc); err != nil {
		return nil, &StageError{Stage: StageWrite, Err: err}
	}

	o.trace(StageWrite, start, "output", output)

	return &Result{
		TileID:    tileID,
		Output:    output,
		TileBytes: len(buf),
		Groups:    stats(doc),
		Bounds:    doc.Bounds(),
	}, nil
}

// render runs the decode and convert stages.
func render(buf []byte, o options) (*tile.Tile, *kml.Document, error) {
	start := time.Now()

	t, err := tile.Decode(buf)
	if err != nil {
		return nil, nil, &StageError{Stage: StageDecode, Err: err}
	}

	o.trace(StageDecode, start, "tile", t.Header.ID, "layers", len(t.Header.Layers))

	start = time.Now()

	groups := extract.Extract(t.Geometry).Groups()

	doc, err := kml.Build(o.name, groups, o.styleOf, kml.WithFolderPrefix(o.folderPrefix))
	if err != nil {
		return nil, nil, &StageError{Stage: StageConvert, Err: err}
	}

	o.trace(StageConvert, start,
		"center", groups[0].VertexCount(),
		"boundary", groups[1].VertexCount())

	return t, doc, nil
}

func stats(doc *kml.Document) []GroupStats {
	s := make([]GroupStats, 0, len(doc.Folders))

	for i := range doc.Folders {
		f := &doc.Folders[i]
		s = append(s, GroupStats{
			Name:     f.ID,
			Lines:    len(f.Placemarks),
			Vertices: f.VertexCount(),
			Length:   f.Length(),
		})
	}

	return s
}

func (o options) trace(stage Stage, start time.Time, attrs ...any) {
	o.logger.Debug("stage done", append([]any{"stage", string(stage), "elapsed", time.Since(start)}, attrs...)...)
}
