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
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/connection"
	"github.com/NVIDIA/network-auditor/pkg/header"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
	"github.com/NVIDIA/network-auditor/pkg/serializer"
)

// deviceRow is the credential-free view of an inventory entry.
type deviceRow struct {
	Hostname   string `json:"hostname" yaml:"hostname"`
	Address    string `json:"address" yaml:"address"`
	DeviceType string `json:"device_type" yaml:"device_type"`
	Username   string `json:"username" yaml:"username"`
	Command    string `json:"command" yaml:"command"`
}

type deviceList struct {
	header.Header `json:",inline" yaml:",inline"`

	Devices []deviceRow `json:"devices" yaml:"devices"`
}

func newDeviceList(devices []inventory.Device, ts time.Time) *deviceList {
	out := make([]deviceRow, 0, len(devices))
	for _, d := range devices {
		cmd := d.Command
		if cmd == "" {
			cmd = connection.CommandFor(d.DeviceType)
		}
		out = append(out, deviceRow{
			Hostname:   d.Hostname,
			Address:    d.Address(),
			DeviceType: d.DeviceType,
			Username:   d.Username,
			Command:    cmd,
		})
	}
	l := &deviceList{Devices: out}
	l.Init(header.KindDeviceList, version, ts)
	return l
}

func (l *deviceList) TableHeader() []string {
	return []string{"#", "HOSTNAME", "ADDRESS", "TYPE", "USER", "COMMAND"}
}

func (l *deviceList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Devices))
	for i, d := range l.Devices {
		rows = append(rows, []string{strconv.Itoa(i + 1), d.Hostname, d.Address, d.DeviceType, d.Username, d.Command})
	}
	return rows
}

func inventoryCmd() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "List the devices that would be audited",
		Description: `Loads the inventory and prints each device with the command that will be
used to fetch its configuration. Passwords and secrets are never printed.`,
		Flags: []cli.Flag{
			inventoryFlag(),
			formatFlag(serializer.FormatTable),
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

			devices, err := loadInventory(cmd, s)
			if err != nil {
				return err
			}

			return serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(ctx, newDeviceList(devices, time.Now()))
		},
	}
}
