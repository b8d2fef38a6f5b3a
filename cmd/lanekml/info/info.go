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

package info

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/lanekml"
	"m4o.io/lanekml/cmd/lanekml/cli"
)

var (
	out io.Writer = os.Stdout

	in *os.File
)

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("progress", "p", false, "show read progress")
	flags.VarP(cli.NewReaderValue(os.Stdin, &in, "file"), "file", "f", "tile file to read, - for stdin")
}

var infoCmd = &cobra.Command{
	Use:   "info [<tile file>]",
	Short: "Print information about a tile",
	Long:  "Print the layers, lane and line counts, extent and lane lengths of a raw tile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		if len(args) == 1 {
			if err := flags.Set("file", args[0]); err != nil {
				return err
			}
		}

		progress, err := flags.GetBool("progress")
		if err != nil {
			return err
		}

		var r io.ReadCloser = in
		if progress {
			if r, err = cli.WrapInputFile(in); err != nil {
				return err
			}
		}

		summary, err := runInfo(r)
		if err != nil {
			return err
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			return err
		}

		if jsonfmt {
			return renderJSON(summary)
		}

		renderTxt(summary)

		return nil
	},
}

func runInfo(r io.ReadCloser) (*lanekml.Summary, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading tile: %w", err)
	}

	if err = r.Close(); err != nil {
		return nil, err
	}

	return lanekml.Inspect(buf)
}

func renderJSON(s *lanekml.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(b))

	return err
}

func renderTxt(s *lanekml.Summary) {
	fmt.Fprintf(out, "Tile: %d\n", s.Header.ID)

	for i, l := range s.Header.Layers {
		fmt.Fprintf(out, "Layer %d: %s (%s, %s raw, %s packed)\n", i, l.Name, l.Compression,
			humanize.Bytes(uint64(l.RawSize)), humanize.Bytes(uint64(l.PackedSize)))
	}

	fmt.Fprintf(out, "Lanes: %s\n", humanize.Comma(int64(s.Lanes)))

	for _, g := range s.Groups {
		name := strings.ToUpper(g.Name[:1]) + g.Name[1:]
		fmt.Fprintf(out, "%s: %s lines, %s vertices, %s\n", name,
			humanize.Comma(int64(g.Lines)), humanize.Comma(int64(g.Vertices)),
			humanize.SIWithDigits(g.Length, 2, "m"))
	}

	if s.Bounds != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", s.Bounds)
	}
}
