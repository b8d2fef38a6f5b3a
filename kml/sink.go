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
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSink is wrapped by every error returned from WriteFile.
var ErrSink = errors.New("document sink failure")

const indent = "  "

// Encode writes the document as indented KML 2.2 with an XML header.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", indent)

	if err := enc.Encode(KML{Document: d}); err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}

	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

// Decode reads a KML document written by Encode.
func Decode(r io.Reader) (*Document, error) {
	var k KML
	if err := xml.NewDecoder(r).Decode(&k); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}

	if k.Document == nil {
		return nil, errors.New("kml has no document")
	}

	return k.Document, nil
}

// WriteFile writes doc to path atomically: the document is written into a
// temporary file next to path, synced and renamed over it. On failure the
// temporary file is removed and path is left untouched.
func WriteFile(path string, doc *Document) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}

	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			err = fmt.Errorf("%w: %w", ErrSink, err)
		}
	}()

	w := bufio.NewWriter(f)

	if err = doc.Encode(w); err != nil {
		return err
	}

	if err = w.Flush(); err != nil {
		return fmt.Errorf("error writing %s: %w", tmp, err)
	}

	if err = f.Sync(); err != nil {
		return fmt.Errorf("error syncing %s: %w", tmp, err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmp, err)
	}

	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error renaming %s to %s: %w", tmp, path, err)
	}

	return nil
}
