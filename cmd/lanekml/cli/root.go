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

// Package cli holds the root command and helpers shared by the lanekml
// subcommands.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"m4o.io/lanekml/internal/config"
	"m4o.io/lanekml/internal/logging"
	"m4o.io/lanekml/internal/source"
)

type configKey struct{}

// RootCmd is the lanekml command; subcommands register themselves in init.
var RootCmd = &cobra.Command{
	Use:   "lanekml",
	Short: "Convert lane geometry tiles to KML",
	Long: "Convert the lane geometry of navigation data tiles into KML documents.\n\n" +
		"Settings come from flags, LANEKML_* environment variables (e.g. LANEKML_API_KEY)\n" +
		"and an optional lanekml.yaml, in that order of precedence.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		file, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		cfg, err := config.Load(file, cmd.Flags())
		if err != nil {
			return err
		}

		if err = logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("config", "", "config file (default ./lanekml.yaml if present)")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(config.KeyLogFormat, "text", "log format: text or json")
}

// Config returns the settings resolved for cmd before it ran.
func Config(cmd *cobra.Command) (*config.Config, error) {
	if ctx := cmd.Context(); ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg, nil
		}
	}

	return nil, errors.New("configuration not loaded")
}

// AddTileFlags declares the flags that select and fetch a tile.
func AddTileFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP(config.KeyTile, "t", config.DefaultTileID, "tile id")
	flags.StringP(config.KeyInput, "i", "", "read the tile from a local file instead of the tile service")
	flags.String(config.KeyBaseURL, config.DefaultBaseURL, "tile service base URL")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "tile service request timeout")
	flags.BoolP(config.KeyProgress, "p", false, "show download progress")
}

// NewSource returns a file source when an input file is configured and an
// HTTP source otherwise.
func NewSource(cfg *config.Config) (source.Source, error) {
	if cfg.Input != "" {
		return source.File{Path: cfg.Input}, nil
	}

	opts := []source.HTTPOption{source.WithTimeout(cfg.Timeout)}
	if cfg.Progress {
		opts = append(opts, source.WithBodyWrapper(WrapReader))
	}

	h, err := source.NewHTTP(cfg.BaseURL, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	return h, nil
}
