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

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
	"github.com/NVIDIA/network-auditor/pkg/logging"
	"github.com/NVIDIA/network-auditor/pkg/serializer"
	"github.com/NVIDIA/network-auditor/pkg/settings"
)

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

func loadSettings(cmd *cli.Command) (*settings.Settings, error) {
	s, err := settings.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	slog.Debug("settings loaded", slog.String("path", s.Path()))
	return s, nil
}

// loadInventory reads the inventory from --inventory, falling back to the
// file named in settings.
func loadInventory(cmd *cli.Command, s *settings.Settings) ([]inventory.Device, error) {
	path := cmd.String("inventory")
	if path == "" {
		path = s.InventoryPath()
	}
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"inventory file is not configured, set auditor.inventory_file or --inventory")
	}
	return inventory.Load(path)
}

// newRunLogger builds the file logger described by the logging section of
// the settings. The logging config file is required. An explicit
// --log-level wins over the configured level.
func newRunLogger(cmd *cli.Command, s *settings.Settings) (*slog.Logger, io.Closer, error) {
	p := s.LogConfigPath()
	if p == "" {
		return nil, nil, errors.New(errors.ErrCodeNotFound,
			"log configuration file does not exist: logging.log_config_file is not set")
	}
	cfg, err := logging.LoadConfig(p)
	if err != nil {
		return nil, nil, err
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.Level = lvl
	}
	return logging.NewFileLogger(s.LogFilePath(), cfg, name, version)
}
