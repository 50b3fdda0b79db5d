// Copyright 2025 Supabase, Inc.
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

package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Logger owns the slog logger built from a Config and the file it writes
// to, if any.
type Logger struct {
	*slog.Logger

	closer io.Closer
}

// Close releases the log file. It is a no-op for stdout and stderr, and
// for a Logger that is already closed.
func (lg *Logger) Close() error {
	if lg == nil || lg.closer == nil {
		return nil
	}
	closer := lg.closer
	lg.closer = nil
	return closer.Close()
}

// SetupLogging builds a logger from cfg and installs it as the slog
// default. Log files are opened on fs; stdout and stderr map to the given
// writers so commands can redirect them.
func SetupLogging(cfg *Config, fs afero.Fs, stdout, stderr io.Writer) (*Logger, error) {
	level := ParseLogLevel(cfg.LogLevel)

	lg := &Logger{}
	var output io.Writer
	outputStr := cfg.LogOutput
	if outputStr == "" {
		outputStr = "stderr"
	}
	switch strings.ToLower(outputStr) {
	case "stdout":
		output = stdout
	case "stderr":
		output = stderr
	default:
		// Treat as file path
		file, err := fs.OpenFile(outputStr, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log output %s: %w", outputStr, err)
		}
		output = file
		lg.closer = file
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	lg.Logger = slog.New(handler)
	slog.SetDefault(lg.Logger)

	lg.Debug("logging initialized",
		"level", level.String(),
		"format", cfg.LogFormat,
		"output", outputStr,
	)
	if cfg.ConfigFileUsed != "" {
		lg.Debug("loaded config file", "path", cfg.ConfigFileUsed)
	}
	if cfg.ConfigFileMissing != nil {
		lg.Warn("config file not found", "err", cfg.ConfigFileMissing)
	}
	return lg, nil
}

// ParseLogLevel maps a level name to a slog.Level, falling back to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
