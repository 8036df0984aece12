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

package inventory

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
)

// Device is one inventory entry: everything needed to open a management
// session plus the display name used for archive and report filenames.
type Device struct {
	// Hostname is the display name; it should be unique within a run.
	Hostname string `json:"hostname" yaml:"hostname"`

	// Host is the management address (IP or DNS name).
	Host string `json:"host" yaml:"host"`

	// Port defaults to 22 when zero.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// DeviceType selects the platform, e.g. cisco_ios or juniper_junos.
	DeviceType string `json:"device_type" yaml:"device_type"`

	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"-" yaml:"password,omitempty"`

	// Command overrides the platform's configuration command.
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

// Address returns host:port, defaulting the port to 22.
func (d Device) Address() string {
	port := d.Port
	if port == 0 {
		port = defaults.SSHPort
	}
	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}

// LogValue keeps credentials out of log records.
func (d Device) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("hostname", d.Hostname),
		slog.String("host", d.Host),
		slog.String("device_type", d.DeviceType),
	)
}

// file accepts either a bare list or a devices: key.
type file struct {
	Devices []Device `yaml:"devices"`
}

// Load reads the inventory at path. Entries are returned in file order and
// are not validated; bad entries surface later as connection failures.
func Load(path string) ([]Device, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				"inventory file does not exist", err,
				map[string]any{"path": path})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read inventory file %q", path), err)
	}

	return Parse(b)
}

// Parse decodes inventory YAML.
func Parse(b []byte) ([]Device, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to parse inventory", err)
	}

	// empty document
	if len(node.Content) == 0 {
		return []Device{}, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var devices []Device
		if err := root.Decode(&devices); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode inventory list", err)
		}
		return devices, nil
	case yaml.MappingNode:
		var f file
		if err := root.Decode(&f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode inventory devices", err)
		}
		if f.Devices == nil {
			f.Devices = []Device{}
		}
		return f.Devices, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			"inventory must be a list of devices or a mapping with a devices key")
	}
}
