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

// Package config loads run settings from defaults, an optional config file,
// the environment and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "LANEKML"

	DefaultTileID       = "545379780"
	DefaultOutput       = "island1.kml"
	DefaultBaseURL      = "https://api.nds.live/island1"
	DefaultName         = "NDS.live Island 1"
	DefaultFolderPrefix = "Island 1"
	DefaultTimeout      = 60 * time.Second
)

// Keys shared by viper, the environment (LANEKML_API_KEY) and flags
// (--api-key).
const (
	KeyTile      = "tile"
	KeyOutput    = "output"
	KeyInput     = "input"
	KeyBaseURL   = "base-url"
	KeyAPIKey    = "api-key"
	KeyName      = "name"
	KeyPrefix    = "prefix"
	KeyTimeout   = "timeout"
	KeyProgress  = "progress"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
)

// Config holds the settings of one run.
type Config struct {
	TileID       string        `mapstructure:"tile"`
	Output       string        `mapstructure:"output"`
	Input        string        `mapstructure:"input"`
	BaseURL      string        `mapstructure:"base-url"`
	APIKey       string        `mapstructure:"api-key"`
	Name         string        `mapstructure:"name"`
	FolderPrefix string        `mapstructure:"prefix"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Progress     bool          `mapstructure:"progress"`
	LogLevel     string        `mapstructure:"log-level"`
	LogFormat    string        `mapstructure:"log-format"`
}

// Load resolves the configuration. file names an explicit config file; when
// empty, lanekml.yaml is looked up in the working directory and ignored if
// missing. Flags in flags that were set on the command line win over
// everything else.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(KeyTile, DefaultTileID)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyInput, "")
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyName, DefaultName)
	v.SetDefault(KeyPrefix, DefaultFolderPrefix)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyProgress, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("lanekml")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// LANEKML_BASE_URL → base-url
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every invalid setting at once. Settings that only the
// HTTP source needs are checked only when no input file is given.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Input == "" {
		if _, err := strconv.ParseUint(c.TileID, 10, 64); err != nil {
			result = multierror.Append(result, fmt.Errorf("tile must be a decimal tile id, got %q", c.TileID))
		}

		if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			result = multierror.Append(result, fmt.Errorf("base-url must be an absolute http(s) URL, got %q", c.BaseURL))
		}

		if c.APIKey == "" {
			result = multierror.Append(result, fmt.Errorf("api-key is required, set %s_API_KEY", EnvPrefix))
		}

		if c.Timeout <= 0 {
			result = multierror.Append(result, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
		}
	}

	if c.Output == "" {
		result = multierror.Append(result, errors.New("output is required"))
	}

	if c.Name == "" {
		result = multierror.Append(result, errors.New("name is required"))
	}

	return result.ErrorOrNil()
}
