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

// Package kml builds and writes KML 2.2 documents of styled lane polylines.
package kml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"m4o.io/lanekml/model"
)

const (
	Namespace = "http://www.opengis.net/kml/2.2"

	RelativeToGround = "relativeToGround"
)

// KML is the root element.
type KML struct {
	XMLName  xml.Name  `xml:"http://www.opengis.net/kml/2.2 kml"`
	Document *Document `xml:"Document"`
}

// Document is the visual document: a style table and one folder per group.
type Document struct {
	Name    string   `xml:"name"`
	Open    Flag     `xml:"open"`
	Styles  []Style  `xml:"Style"`
	Folders []Folder `xml:"Folder"`
}

// Style is a shared line style referenced by placemarks.
type Style struct {
	ID        string    `xml:"id,attr"`
	LineStyle LineStyle `xml:"LineStyle"`
}

// LineStyle colors are KML aabbggrr hex strings.
type LineStyle struct {
	Color string  `xml:"color"`
	Width float64 `xml:"width"`
}

// Folder holds the placemarks of one group.
type Folder struct {
	ID         string      `xml:"id,attr"`
	Name       string      `xml:"name"`
	Open       Flag        `xml:"open"`
	Placemarks []Placemark `xml:"Placemark"`
}

// Placemark is one styled polyline.
type Placemark struct {
	Name       string     `xml:"name,omitempty"`
	StyleURL   string     `xml:"styleUrl"`
	LineString LineString `xml:"LineString"`
}

type LineString struct {
	Extrude      Flag        `xml:"extrude"`
	Tessellate   Flag        `xml:"tessellate"`
	AltitudeMode string      `xml:"altitudeMode"`
	Coordinates  Coordinates `xml:"coordinates"`
}

// Flag is a KML boolean, written as 0 or 1.
type Flag bool

func (f Flag) MarshalText() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}

	return []byte("0"), nil
}

func (f *Flag) UnmarshalText(text []byte) error {
	switch strings.TrimSpace(string(text)) {
	case "1", "true":
		*f = true
	case "0", "false", "":
		*f = false
	default:
		return fmt.Errorf("invalid KML boolean %q", text)
	}

	return nil
}

// Coordinates is the ordered vertex list of a LineString.
type Coordinates []model.GeoCoordinate

// Path returns the coordinates as a model.GeoPath.
func (c Coordinates) Path() model.GeoPath {
	return model.GeoPath(c)
}

var errNonFinite = errors.New("non-finite coordinate")

// MarshalText writes lon,lat,alt tuples separated by spaces, each number in
// its shortest exact decimal form.
func (c Coordinates) MarshalText() ([]byte, error) {
	var b []byte

	for i, g := range c {
		lon, lat := float64(g.Lon), float64(g.Lat)
		if !finite(lon) || !finite(lat) || !finite(g.Elevation) {
			return nil, fmt.Errorf("vertex %d: %w", i, errNonFinite)
		}

		if i > 0 {
			b = append(b, ' ')
		}

		b = strconv.AppendFloat(b, lon, 'f', -1, 64)
		b = append(b, ',')
		b = strconv.AppendFloat(b, lat, 'f', -1, 64)
		b = append(b, ',')
		b = strconv.AppendFloat(b, g.Elevation, 'f', -1, 64)
	}

	return b, nil
}

func (c *Coordinates) UnmarshalText(text []byte) error {
	tuples := strings.Fields(string(text))
	coords := make(Coordinates, 0, len(tuples))

	for i, t := range tuples {
		parts := strings.Split(t, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("vertex %d: malformed tuple %q", i, t)
		}

		var values [3]float64

		for j, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}

			values[j] = v
		}

		g, err := model.NewGeoCoordinate(model.Degrees(values[0]), model.Degrees(values[1]), values[2])
		if err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}

		coords = append(coords, g)
	}

	*c = coords

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Folder returns the folder with the given id, or nil.
func (d *Document) Folder(id string) *Folder {
	for i := range d.Folders {
		if d.Folders[i].ID == id {
			return &d.Folders[i]
		}
	}

	return nil
}

// Bounds returns the extent of every coordinate in the document, or nil if
// it has none.
func (d *Document) Bounds() *model.BoundingBox {
	var bbox *model.BoundingBox

	for _, f := range d.Folders {
		for _, p := range f.Placemarks {
			b := p.LineString.Coordinates.Path().Bounds()
			if b == nil {
				continue
			}

			if bbox == nil {
				bbox = model.InitialBoundingBox()
			}

			bbox.ExpandWithBoundingBox(b)
		}
	}

	return bbox
}

// VertexCount returns the number of coordinates in the folder.
func (f *Folder) VertexCount() int {
	var n int
	for _, p := range f.Placemarks {
		n += len(p.LineString.Coordinates)
	}

	return n
}

// Length returns the summed length of the folder's polylines in meters.
func (f *Folder) Length() float64 {
	var length float64
	for _, p := range f.Placemarks {
		length += p.LineString.Coordinates.Path().Length()
	}

	return length
}
