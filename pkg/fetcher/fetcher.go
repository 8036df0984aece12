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

package fetcher

import (
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/network-auditor/pkg/connection"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
)

// Fetcher retrieves running configurations from devices.
type Fetcher struct {
	Dialer connection.Dialer
	Logger *slog.Logger
}

// New returns a Fetcher using dialer. A nil logger means slog.Default().
func New(dialer connection.Dialer, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{Dialer: dialer, Logger: logger}
}

// Fetch connects to the device, runs its configuration command and closes
// the session. CRLF line endings are converted to LF. Any failure, including
// empty output, is logged with the device name and reported as ok == false;
// the caller skips the device.
func (f *Fetcher) Fetch(ctx context.Context, d inventory.Device) (config string, ok bool) {
	config, err := f.fetch(ctx, d)
	if err != nil {
		f.logger().Error("failed to fetch configuration",
			slog.String("device", d.Hostname),
			slog.String("address", d.Address()),
			slog.Any("error", err))
		return "", false
	}
	return config, true
}

func (f *Fetcher) fetch(ctx context.Context, d inventory.Device) (string, error) {
	logger := f.logger()
	logger.Info("connecting", slog.String("device", d.Hostname), slog.String("address", d.Address()))

	sess, err := f.Dialer.Dial(ctx, connection.ParamsFor(d))
	if err != nil {
		return "", err
	}

	cmd := d.Command
	if cmd == "" {
		cmd = connection.CommandFor(d.DeviceType)
	}

	config, err := sess.Run(ctx, cmd)
	if closeErr := sess.Close(); closeErr != nil {
		logger.Debug("session close returned error",
			slog.String("device", d.Hostname),
			slog.String("error", closeErr.Error()))
	}
	if err != nil {
		return "", err
	}

	config = strings.ReplaceAll(config, "\r\n", "\n")
	if config == "" {
		return "", errors.NewWithContext(errors.ErrCodeUnavailable,
			"device returned an empty configuration", map[string]any{"command": cmd})
	}

	logger.Debug("configuration retrieved",
		slog.String("device", d.Hostname),
		slog.String("command", cmd),
		slog.Int("bytes", len(config)))

	return config, nil
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
