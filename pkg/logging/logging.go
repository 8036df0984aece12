// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvLogLevel overrides the configured level when set.
	EnvLogLevel = "LOG_LEVEL"

	// FormatJSON selects slog's JSON handler.
	FormatJSON = "json"
	// FormatText selects slog's text handler.
	FormatText = "text"
)

// ParseLogLevel converts a level name into a slog.Level.
// Unknown or empty names resolve to INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger on stderr tagged with module and
// version. Debug level also records source locations.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, FormatJSON, module, version, ParseLogLevel(level), false)
}

// SetDefaultStructuredLogger installs a structured logger as the slog default,
// using LOG_LEVEL for its level.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger with an
// explicit level as the slog default.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// New builds a logger from a logging configuration, writing to w.
func New(w io.Writer, cfg *Config, module, version string) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := cfg.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	return newLogger(w, cfg.Format, module, version, ParseLogLevel(level), cfg.AddSource)
}

func newLogger(w io.Writer, format, module, version string, lvl slog.Level, addSource bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource || lvl == slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(format, FormatText) {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// Discard returns a logger that drops every record. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
