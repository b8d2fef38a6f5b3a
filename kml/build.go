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

package kml

import (
	"fmt"
	"strings"

	"m4o.io/lanekml/model"
)

const (
	centerColor   = "ff00a5ff"
	boundaryColor = "ffffffff"

	centerWidth   = 4
	boundaryWidth = 2
)

var (
	// CenterStyle is a solid orange line for lane center lines.
	CenterStyle = Style{
		ID:        "centerStyle",
		LineStyle: LineStyle{Color: centerColor, Width: centerWidth},
	}

	// BoundaryStyle is a solid white line for lane boundaries.
	BoundaryStyle = Style{
		ID:        "boundaryStyle",
		LineStyle: LineStyle{Color: boundaryColor, Width: boundaryWidth},
	}
)

// StyleOf returns CenterStyle for the center group and BoundaryStyle for
// everything else.
func StyleOf(g model.Group) Style {
	if g.Name == model.GroupCenter {
		return CenterStyle
	}

	return BoundaryStyle
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	folderPrefix string
}

// WithFolderPrefix prepends label to every folder display name, so the
// center group of "Island 1" is shown as "Island 1 Center".
func WithFolderPrefix(label string) BuildOption {
	return func(o *buildOptions) {
		o.folderPrefix = label
	}
}

// Build creates a document with one folder per group and one placemark per
// polyline. Vertices are converted and validated in order; the first
// invalid vertex aborts the build.
func Build(name string, groups []model.Group, styleOf func(model.Group) Style, opts ...BuildOption) (*Document, error) {
	o := buildOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	doc := &Document{
		Name:    name,
		Open:    true,
		Folders: make([]Folder, 0, len(groups)),
	}

	styles := make(map[string]bool)

	for _, g := range groups {
		style := styleOf(g)
		if !styles[style.ID] {
			styles[style.ID] = true
			doc.Styles = append(doc.Styles, style)
		}

		folder := Folder{
			ID:         g.Name,
			Name:       o.folderName(g.Name),
			Open:       true,
			Placemarks: make([]Placemark, 0, len(g.Lines)),
		}

		for i, line := range g.Lines {
			path, err := line.ToGeo()
			if err != nil {
				return nil, fmt.Errorf("group %s line %d: %w", g.Name, i, err)
			}

			folder.Placemarks = append(folder.Placemarks, Placemark{
				StyleURL: "#" + style.ID,
				LineString: LineString{
					Extrude:      false,
					Tessellate:   true,
					AltitudeMode: RelativeToGround,
					Coordinates:  Coordinates(path),
				},
			})
		}

		doc.Folders = append(doc.Folders, folder)
	}

	return doc, nil
}

func (o buildOptions) folderName(group string) string {
	label := group
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	if o.folderPrefix == "" {
		return label
	}

	return o.folderPrefix + " " + label
}
