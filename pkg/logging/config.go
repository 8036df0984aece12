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
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
)

// Config is the content of the logging configuration file referenced by
// logging.log_config_file in the settings.
type Config struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	Console   bool   `yaml:"console"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns INFO level JSON output without console mirroring.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: FormatJSON,
	}
}

// LoadConfig reads a logging configuration file. A missing file is a
// NOT_FOUND error; fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				"log configuration file does not exist", err,
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read log configuration file %q", path), err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse log configuration file %q", path), err)
	}
	return cfg, nil
}

// NewFileLogger opens (or creates) the log file in append mode and returns a
// logger writing to it, mirrored to stderr when cfg.Console is set.
// The returned closer releases the file.
func NewFileLogger(path string, cfg *Config, module, version string) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := os.MkdirAll(filepath.Dir(path), defaults.DirMode); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, "failed to create log directory", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, defaults.FileMode)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to open log file %q", path), err)
	}

	var w io.Writer = f
	if cfg.Console {
		w = io.MultiWriter(f, os.Stderr)
	}

	return New(w, cfg, module, version), f, nil
}
