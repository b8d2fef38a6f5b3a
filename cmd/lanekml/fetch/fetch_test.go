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

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/lanekml/internal/config"
	"m4o.io/lanekml/internal/source"
)

func TestRunFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tiles/42/layers" || r.Header.Get(source.APIKeyHeader) != "secret" {
			w.WriteHeader(http.StatusForbidden)

			return
		}

		_, _ = w.Write([]byte("tile bytes"))
	}))
	defer srv.Close()

	cfg := &config.Config{TileID: "42", BaseURL: srv.URL, APIKey: "secret"}

	src, err := source.NewHTTP(cfg.BaseURL, cfg.APIKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "42.tile")

	n, err := runFetch(context.Background(), src, cfg, path)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tile bytes", string(b))

	cfg.TileID = "43"
	missing := filepath.Join(t.TempDir(), "43.tile")

	_, err = runFetch(context.Background(), src, cfg, missing)
	assert.ErrorIs(t, err, source.ErrTransport)

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}
