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
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/auditor"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/serializer"
)

func auditCmd() *cli.Command {
	return &cli.Command{
		Name:                  "audit",
		EnableShellCompletion: true,
		Usage:                 "Audit every device in the inventory against the golden configuration",
		Description: `For each device in inventory order:
  1. Fetch the running configuration over SSH
  2. Archive it as configs/{hostname}_{YYYYMMDD_HHMMSS}.cfg
  3. Diff it against the golden file
  4. Write reports/{hostname}_report.txt

Unreachable devices are logged and skipped. A summary of the run is written
to stdout, or to the file given by --summary.

# Examples

  netauditor audit
  netauditor --config /etc/netauditor/netauditor.yaml audit --summary out/summary.json --format json
  netauditor audit --fail-on-drift --metrics-file /var/lib/node_exporter/netauditor.prom`,
		Flags: []cli.Flag{
			inventoryFlag(),
			&cli.StringFlag{
				Name:    "summary",
				Aliases: []string{"o"},
				Usage:   "Write the run summary to this file (default: stdout)",
			},
			formatFlag(serializer.FormatTable),
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics in text exposition format to this file",
			},
			&cli.BoolFlag{
				Name:  "fail-on-drift",
				Usage: "Exit with an error when any device is not compliant",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

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

			summary, runErr := a.Run(ctx)
			if summary != nil {
				if err := writeSummary(ctx, outFormat, cmd.String("summary"), summary); err != nil {
					return err
				}
			}

			if path := cmd.String("metrics-file"); path != "" {
				if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
					return errors.WrapWithContext(errors.ErrCodeInternal,
						"failed to write metrics file", err, map[string]any{"path": path})
				}
				slog.Debug("metrics written", slog.String("path", path))
			}

			if runErr != nil {
				return runErr
			}

			if cmd.Bool("fail-on-drift") && !summary.Compliant() {
				return fmt.Errorf("%d of %d devices are not compliant",
					len(summary.Devices)-summary.Totals[auditor.StatusCompliant], len(summary.Devices))
			}
			return nil
		},
	}
}

func writeSummary(ctx context.Context, format serializer.Format, path string, summary *auditor.Summary) error {
	ser := serializer.NewFileWriterOrStdout(format, path)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close summary writer", slog.String("error", err.Error()))
		}
	}()

	if err := ser.Serialize(ctx, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
