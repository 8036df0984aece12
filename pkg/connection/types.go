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
	"context"

	"github.com/NVIDIA/network-auditor/pkg/inventory"
)

// Params are the connection parameters taken from an inventory entry.
type Params struct {
	Address    string
	Username   string
	Password   string
	DeviceType string
}

// ParamsFor builds connection parameters from an inventory entry.
func ParamsFor(d inventory.Device) Params {
	return Params{
		Address:    d.Address(),
		Username:   d.Username,
		Password:   d.Password,
		DeviceType: d.DeviceType,
	}
}

// Session is an open management session on a device.
type Session interface {
	// Run executes a single command and returns its textual output.
	Run(ctx context.Context, command string) (string, error)

	// Close tears the session down. It is safe to call more than once.
	Close() error
}

// Dialer opens sessions. Implementations enable dependency injection
// for testing.
type Dialer interface {
	Dial(ctx context.Context, p Params) (Session, error)
}
