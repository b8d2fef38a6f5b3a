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

package convert

import (
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/lanekml"
	"m4o.io/lanekml/cmd/lanekml/cli"
	"m4o.io/lanekml/internal/config"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(convertCmd)
	cli.AddTileFlags(convertCmd)

	flags := convertCmd.Flags()
	flags.StringP(config.KeyOutput, "o", config.DefaultOutput, "KML file to write")
	flags.String(config.KeyName, config.DefaultName, "document name")
	flags.String(config.KeyPrefix, config.DefaultFolderPrefix, "label put in front of folder names")
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the lane geometry of a tile to KML",
	Long:  "Fetch a tile, convert its center lines and lane boundaries to WGS84 and write them as a KML document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := cli.Config(cmd)
		if err != nil {
			return err
		}

		if err = cfg.Validate(); err != nil {
			return err
		}

		src, err := cli.NewSource(cfg)
		if err != nil {
			return err
		}

		res, err := lanekml.Convert(cmd.Context(), src, cfg.TileID, cfg.Output,
			lanekml.WithName(cfg.Name),
			lanekml.WithFolderPrefix(cfg.FolderPrefix))
		if err != nil {
			return err
		}

		renderResult(res)

		return nil
	},
}

func renderResult(res *lanekml.Result) {
	fmt.Fprintf(out, "Wrote %s from tile %s (%s):", res.Output, res.TileID, humanize.Bytes(uint64(res.TileBytes)))

	for i, g := range res.Groups {
		sep := ","
		if i == 0 {
			sep = ""
		}

		fmt.Fprintf(out, "%s %s %s lines, %s vertices", sep, g.Name,
			humanize.Comma(int64(g.Lines)), humanize.Comma(int64(g.Vertices)))
	}

	fmt.Fprintln(out)
}
