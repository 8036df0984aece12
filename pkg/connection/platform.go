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

package connection

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultConfigCommand retrieves the full running configuration on most
// IOS-like platforms.
const DefaultConfigCommand = "show running-config"

var configCommands = map[string]string{
	"cisco_ios":     DefaultConfigCommand,
	"cisco_xe":      DefaultConfigCommand,
	"cisco_xr":      DefaultConfigCommand,
	"cisco_nxos":    DefaultConfigCommand,
	"cisco_asa":     DefaultConfigCommand,
	"arista_eos":    DefaultConfigCommand,
	"dell_os10":     DefaultConfigCommand,
	"hp_procurve":   DefaultConfigCommand,
	"juniper":       "show configuration",
	"juniper_junos": "show configuration",
	"huawei":        "display current-configuration",
	"hp_comware":    "display current-configuration",
}

// NormalizeDeviceType case-folds and trims a device type for lookup.
func NormalizeDeviceType(deviceType string) string {
	return cases.Fold().String(strings.TrimSpace(deviceType))
}

// CommandFor returns the configuration command for a device type.
// Unknown types get DefaultConfigCommand.
func CommandFor(deviceType string) string {
	if cmd, ok := configCommands[NormalizeDeviceType(deviceType)]; ok {
		return cmd
	}
	return DefaultConfigCommand
}

// SupportedDeviceTypes returns the device types with a known command.
func SupportedDeviceTypes() []string {
	types := make([]string, 0, len(configCommands))
	for t := range configCommands {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
