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
	"fmt"
	"io"
	"log/slog"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/lanekml/cmd/lanekml/cli"
	"m4o.io/lanekml/internal/config"
	"m4o.io/lanekml/internal/source"
)

// outputFlag is not bound to the shared output setting, which names the
// KML document.
const outputFlag = "tile-file"

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(fetchCmd)
	cli.AddTileFlags(fetchCmd)

	fetchCmd.Flags().StringP(outputFlag, "o", "", "file to store the tile in (default <tile>.tile)")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a raw tile",
	Long:  "Download a raw tile from the tile service, e.g. to inspect it or convert it offline with --input",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := cli.Config(cmd)
		if err != nil {
			return err
		}

		if err = cfg.Validate(); err != nil {
			return err
		}

		path, err := cmd.Flags().GetString(outputFlag)
		if err != nil {
			return err
		}

		if path == "" {
			path = cfg.TileID + ".tile"
		}

		src, err := cli.NewSource(cfg)
		if err != nil {
			return err
		}

		n, err := runFetch(cmd.Context(), src, cfg, path)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Fetched tile %s into %s (%s)\n", cfg.TileID, path, humanize.Bytes(uint64(n)))

		return nil
	},
}

func runFetch(ctx context.Context, src source.Source, cfg *config.Config, path string) (int, error) {
	buf, err := src.Fetch(ctx, cfg.TileID)
	if err != nil {
		return 0, fmt.Errorf("fetch failed: %w", err)
	}

	if err = os.WriteFile(path, buf, 0o644); err != nil {
		return 0, fmt.Errorf("write failed: %w", err)
	}

	slog.Debug("stored tile", "tile", cfg.TileID, "path", path)

	return len(buf), nil
}
