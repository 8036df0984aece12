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
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/auditor"
	"github.com/NVIDIA/network-auditor/pkg/server"
)

func serveCmd() *cli.Command {
	defaults := server.NewConfig()
	return &cli.Command{
		Name:  "serve",
		Usage: "Run as a service exposing audits, health and metrics over HTTP",
		Description: `Starts an HTTP server. Audits run on demand (POST /v1/audits) and, with
--interval, on a fixed schedule. Only one audit runs at a time.

  netauditor serve --interval 1h --audit-on-start`,
		Flags: []cli.Flag{
			inventoryFlag(),
			&cli.StringFlag{
				Name:  "address",
				Usage: "Listen address",
				Value: defaults.Address,
			},
			&cli.IntFlag{
				Name:    "port",
				Usage:   "Listen port",
				Sources: cli.EnvVars("PORT"),
				Value:   defaults.Port,
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Run an audit at this interval (0 disables the schedule)",
			},
			&cli.BoolFlag{
				Name:  "audit-on-start",
				Usage: "Run an audit immediately after start",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			logger, closer, err := newRunLogger(cmd, s)
			if err != nil {
				return err
			}
			defer closer.Close()

			devices, err := loadInventory(cmd, s)
			if err != nil {
				return err
			}

			a, err := auditor.New(s, devices, auditor.WithLogger(logger), auditor.WithVersion(version))
			if err != nil {
				return err
			}

			cfg := server.NewConfig()
			cfg.Address = cmd.String("address")
			cfg.Port = int(cmd.Int("port"))
			cfg.Interval = cmd.Duration("interval")
			cfg.AuditOnStart = cmd.Bool("audit-on-start")

			slog.Info("serving",
				slog.String("address", cfg.Addr()),
				slog.Int("devices", len(devices)),
				slog.Duration("interval", cfg.Interval))

			return server.New(cfg, a, server.WithLogger(logger)).Start(ctx)
		},
	}
}
