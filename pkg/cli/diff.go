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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/golden"
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "Compare a saved device configuration with a golden file",
		Description: `Prints the unified diff between two local files without contacting any
device. When --golden is omitted the golden file from the settings is used.

  netauditor diff --device configs/core-rtr-01_20250601_143005.cfg`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "golden",
				Aliases: []string{"g"},
				Usage:   "Golden configuration file (default: auditor.golden_file from settings)",
			},
			&cli.StringFlag{
				Name:     "device",
				Aliases:  []string{"d"},
				Usage:    "Device configuration file",
				Required: true,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			goldenPath := cmd.String("golden")
			if goldenPath == "" {
				s, err := loadSettings(cmd)
				if err != nil {
					return err
				}
				goldenPath = s.GoldenPath()
			}

			goldenText, err := golden.Read(goldenPath)
			if err != nil {
				return err
			}
			devicePath := cmd.String("device")
			deviceText, err := golden.Read(devicePath)
			if err != nil {
				return err
			}

			diff := golden.CompareText(goldenText, deviceText, goldenPath, devicePath)
			if diff.Empty() {
				_, err = fmt.Fprint(cmd.Root().Writer, defaults.CompliantMessage)
				return err
			}
			_, err = fmt.Fprint(cmd.Root().Writer, diff.String())
			return err
		},
	}
}
