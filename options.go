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

package lanekml

import (
	"log/slog"

	"m4o.io/lanekml/kml"
	"m4o.io/lanekml/model"
)

const (
	// DefaultName is the default document name.
	DefaultName = "NDS.live Island 1"

	// DefaultFolderPrefix is the default folder label prefix.
	DefaultFolderPrefix = "Island 1"
)

// options provides optional configuration parameters for a conversion.
type options struct {
	name         string                      // document name
	folderPrefix string                      // prepended to folder display names
	styleOf      func(model.Group) kml.Style // style per group
	logger       *slog.Logger                // stage tracing
}

// Option configures a conversion.
type Option func(*options)

// WithName lets you set the document name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithFolderPrefix lets you set the label put in front of folder names.
func WithFolderPrefix(prefix string) Option {
	return func(o *options) {
		o.folderPrefix = prefix
	}
}

// WithStyle lets you replace the fixed center and boundary styles.
func WithStyle(styleOf func(model.Group) kml.Style) Option {
	return func(o *options) {
		o.styleOf = styleOf
	}
}

// WithLogger lets you set the logger that receives stage traces.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		name:         DefaultName,
		folderPrefix: DefaultFolderPrefix,
		styleOf:      kml.StyleOf,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}
