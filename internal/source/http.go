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

package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-cleanhttp"
)

const (
	APIKeyHeader = "X-Api-Key"

	DefaultTimeout = 60 * time.Second

	// MaxTileSize bounds the size of a downloaded tile.
	MaxTileSize = 512 * 1024 * 1024
)

// BodyWrapper wraps a response body, e.g. with a progress bar. size is the
// announced content length, or -1.
type BodyWrapper func(body io.ReadCloser, size int64) io.ReadCloser

// HTTP fetches tiles from GET {base}/tiles/{tileID}/layers.
type HTTP struct {
	base   string
	apiKey string
	client *http.Client
	wrap   BodyWrapper
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		h.client.Timeout = d
	}
}

// WithClient replaces the pooled cleanhttp client.
func WithClient(c *http.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// WithBodyWrapper installs a wrapper around every response body.
func WithBodyWrapper(w BodyWrapper) HTTPOption {
	return func(h *HTTP) {
		h.wrap = w
	}
}

// NewHTTP creates a source for the tile service at base.
func NewHTTP(base, apiKey string, opts ...HTTPOption) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", base)
	}

	client := cleanhttp.DefaultPooledClient()
	client.Timeout = DefaultTimeout

	h := &HTTP{
		base:   strings.TrimRight(base, "/"),
		apiKey: apiKey,
		client: client,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// URL returns the layer endpoint of a tile.
func (h *HTTP) URL(tileID string) string {
	return h.base + "/tiles/" + url.PathEscape(tileID) + "/layers"
}

func (h *HTTP) Fetch(ctx context.Context, tileID string) ([]byte, error) {
	buf, err := h.fetch(ctx, tileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return buf, nil
}

func (h *HTTP) fetch(ctx context.Context, tileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL(tileID), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/octet-stream")

	if h.apiKey != "" {
		req.Header.Set(APIKeyHeader, h.apiKey)
	}

	start := time.Now()

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error requesting tile %s: %w", tileID, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("tile %s: unexpected status %s: %s", tileID, resp.Status, bytes.TrimSpace(msg))
	}

	if resp.ContentLength > MaxTileSize {
		return nil, fmt.Errorf("tile %s: content length %d exceeds %d", tileID, resp.ContentLength, MaxTileSize)
	}

	body := io.ReadCloser(resp.Body)
	if h.wrap != nil {
		body = h.wrap(body, resp.ContentLength)
		defer body.Close()
	}

	var b bytes.Buffer
	if resp.ContentLength > 0 {
		b.Grow(int(resp.ContentLength))
	}

	n, err := b.ReadFrom(io.LimitReader(body, MaxTileSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading tile %s: %w", tileID, err)
	}

	if n > MaxTileSize {
		return nil, fmt.Errorf("tile %s exceeds %d bytes", tileID, MaxTileSize)
	}

	slog.Debug("fetched tile", "tile", tileID, "size", humanize.Bytes(uint64(n)), "elapsed", time.Since(start))

	return b.Bytes(), nil
}
