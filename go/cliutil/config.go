// Copyright 2023 The Vitess Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Modifications Copyright 2025 Supabase, Inc.

// Package cliutil loads configuration and sets up logging for the edgeqlkw
// tool. Values come from flags, EDGEQLKW_* environment variables and an
// optional edgeqlkw.{yaml,toml,json} file, in that order of precedence.
package cliutil

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mitchellh/mapstructure"
)

const (
	// EnvPrefix is prepended to every environment variable, so --log-level
	// can also be set with EDGEQLKW_LOG_LEVEL.
	EnvPrefix = "EDGEQLKW"

	// DefaultConfigName is the config file name searched for, without
	// extension.
	DefaultConfigName = "edgeqlkw"
)

// Output formats accepted by --format.
var Formats = []string{"text", "json", "yaml", "toml"}

// Color modes accepted by --color.
var ColorModes = []string{"auto", "always", "never"}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config is the decoded tool configuration. It only controls how the tool
// behaves; the keyword table itself is not configurable.
type Config struct {
	Format  string `mapstructure:"format"`
	Color   string `mapstructure:"color"`
	Workers int    `mapstructure:"workers"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	LogOutput string `mapstructure:"log-output"`

	ConfigFile         string                     `mapstructure:"config-file"`
	ConfigPaths        []string                   `mapstructure:"config-path"`
	ConfigFileNotFound ConfigFileNotFoundHandling `mapstructure:"config-file-not-found-handling"`
	ConfigFileUsed     string                     `mapstructure:"-"`

	// ConfigFileMissing is set when no config file was found and the
	// handling is warn. SetupLogging reports it through the configured
	// handler.
	ConfigFileMissing error `mapstructure:"-"`
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("invalid format %q (options: %s)", c.Format, strings.Join(Formats, ", ")))
	}
	if !slices.Contains(ColorModes, c.Color) {
		errs = append(errs, fmt.Errorf("invalid color mode %q (options: %s)", c.Color, strings.Join(ColorModes, ", ")))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("invalid log level %q (options: %s)", c.LogLevel, strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, strings.ToLower(c.LogFormat)) {
		errs = append(errs, fmt.Errorf("invalid log format %q (options: %s)", c.LogFormat, strings.Join(logFormats, ", ")))
	}
	return errors.Join(errs...)
}

// Loader binds flags, environment variables and a config file into a
// single viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader that reads config files from fs.
func NewLoader(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("color", "auto")
	v.SetDefault("workers", 4)
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
	v.SetDefault("log-output", "stderr")
	v.SetDefault("config-file", "")
	v.SetDefault("config-path", []string{"."})
	v.SetDefault("config-file-not-found-handling", IgnoreConfigFileNotFound.String())

	return &Loader{v: v}
}

// RegisterFlags installs the configuration flags on fs and binds them.
func (l *Loader) RegisterFlags(fs *pflag.FlagSet) {
	fs.String("format", l.v.GetString("format"), fmt.Sprintf("Output format (%s)", strings.Join(Formats, ", ")))
	fs.String("color", l.v.GetString("color"), fmt.Sprintf("Colored output (%s)", strings.Join(ColorModes, ", ")))
	fs.Int("workers", l.v.GetInt("workers"), "Maximum number of files tokenized concurrently")
	fs.String("log-level", l.v.GetString("log-level"), "Log level (debug, info, warn, error)")
	fs.String("log-format", l.v.GetString("log-format"), "Log format (json, text)")
	fs.String("log-output", l.v.GetString("log-output"), "Log output (stdout, stderr, or file path)")
	fs.String("config-file", "", "Full path of the config file (with extension) to use. If set, --config-path is ignored.")
	fs.StringSlice("config-path", l.v.GetStringSlice("config-path"), "Paths to search for "+DefaultConfigName+".{yaml,toml,json} in.")

	h := IgnoreConfigFileNotFound
	fs.Var(&h, "config-file-not-found-handling", fmt.Sprintf("Behavior when a config file is not found. (Options: %s)", strings.Join(handlingNames, ", ")))

	// BindPFlags only fails on a nil flag set
	_ = l.v.BindPFlags(fs)
}

// Load reads the config file, if any, and decodes all settings.
func (l *Loader) Load() (*Config, error) {
	handling, err := l.handling()
	if err != nil {
		return nil, err
	}

	missing, err := l.readConfigFile(handling)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decodeHandlingValue, mapstructure.StringToSliceHookFunc(",")),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(l.v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFileUsed = l.v.ConfigFileUsed()
	cfg.ConfigFileMissing = missing

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// handling resolves --config-file-not-found-handling before the file is read.
func (l *Loader) handling() (ConfigFileNotFoundHandling, error) {
	var h ConfigFileNotFoundHandling
	if err := h.Set(l.v.GetString("config-file-not-found-handling")); err != nil {
		return h, err
	}
	return h, nil
}

func (l *Loader) readConfigFile(handling ConfigFileNotFoundHandling) (missing error, err error) {
	if file := l.v.GetString("config-file"); file != "" {
		l.v.SetConfigFile(file)
	} else {
		l.v.SetConfigName(DefaultConfigName)
		for _, path := range l.v.GetStringSlice("config-path") {
			l.v.AddConfigPath(path)
		}
	}

	err = l.v.ReadInConfig()
	if err == nil {
		return nil, nil
	}
	if !isConfigFileNotFoundError(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	switch handling {
	case IgnoreConfigFileNotFound:
		return nil, nil
	case WarnOnConfigFileNotFound:
		// Logged by SetupLogging, once --log-* are in effect
		return err, nil
	default:
		return nil, fmt.Errorf("config file not found: %w", err)
	}
}

// isConfigFileNotFoundError checks if the error is caused because the file wasn't found.
func isConfigFileNotFoundError(err error) bool {
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// ConfigFileNotFoundHandling controls how Load treats a missing config file.
type ConfigFileNotFoundHandling int

const (
	// IgnoreConfigFileNotFound proceeds silently with flags, environment
	// variables and defaults.
	IgnoreConfigFileNotFound ConfigFileNotFoundHandling = iota
	// WarnOnConfigFileNotFound logs a warning and proceeds.
	WarnOnConfigFileNotFound
	// ErrorOnConfigFileNotFound makes Load return an error.
	ErrorOnConfigFileNotFound
)

var (
	handlingNames         []string
	handlingNamesToValues = map[string]int{
		"ignore": int(IgnoreConfigFileNotFound),
		"warn":   int(WarnOnConfigFileNotFound),
		"error":  int(ErrorOnConfigFileNotFound),
	}
	handlingValuesToNames map[int]string
)

func decodeHandlingValue(from, to reflect.Type, data any) (any, error) {
	var h ConfigFileNotFoundHandling
	if to != reflect.TypeOf(h) {
		return data, nil
	}

	switch {
	case from == reflect.TypeOf(h):
		return data.(ConfigFileNotFoundHandling), nil
	case from.Kind() == reflect.Int:
		return ConfigFileNotFoundHandling(data.(int)), nil
	case from.Kind() == reflect.String:
		if err := h.Set(data.(string)); err != nil {
			return h, err
		}

		return h, nil
	}

	return data, fmt.Errorf("invalid value for ConfigFileNotFoundHandling: %v", data)
}

func init() {
	handlingNames = make([]string, 0, len(handlingNamesToValues))
	handlingValuesToNames = make(map[int]string, len(handlingNamesToValues))

	for name, val := range handlingNamesToValues {
		handlingValuesToNames[val] = name
		handlingNames = append(handlingNames, name)
	}

	sort.Strings(handlingNames)
}

func (h *ConfigFileNotFoundHandling) Set(arg string) error {
	larg := strings.ToLower(arg)
	if v, ok := handlingNamesToValues[larg]; ok {
		*h = ConfigFileNotFoundHandling(v)
		return nil
	}

	return fmt.Errorf("unknown handling name %s", arg)
}

func (h ConfigFileNotFoundHandling) String() string {
	if name, ok := handlingValuesToNames[int(h)]; ok {
		return name
	}

	return "<UNKNOWN>"
}

func (h *ConfigFileNotFoundHandling) Type() string { return "ConfigFileNotFoundHandling" }
