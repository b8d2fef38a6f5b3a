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

package lanekml

import (
	"m4o.io/lanekml/model"
)

// Summary describes a decoded tile.
type Summary struct {
	Header model.TileHeader   `json:"header"`
	Lanes  int                `json:"lanes"`
	Groups []GroupStats       `json:"groups"`
	Bounds *model.BoundingBox `json:"bounds,omitempty"`
}

// Inspect decodes and converts buf without writing anything.
func Inspect(buf []byte, opts ...Option) (*Summary, error) {
	t, doc, err := render(buf, newOptions(opts))
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Header: t.Header,
		Groups: stats(doc),
		Bounds: doc.Bounds(),
	}

	if t.Lanes != nil {
		s.Lanes = len(t.Lanes.Lanes)
	}

	return s, nil
}
