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

package defaults

import "time"

// Connection timeouts for device sessions.
const (
	// SSHDialTimeout bounds TCP connect plus SSH handshake.
	SSHDialTimeout = 10 * time.Second

	// SSHPort is used when an inventory entry does not set a port.
	SSHPort = 22
)

// Filesystem layout, relative to the working directory unless overridden
// in the settings file.
const (
	// ConfigsFolder holds archived device configurations.
	ConfigsFolder = "configs"

	// ReportsFolder holds per-device compliance reports.
	ReportsFolder = "reports"

	// ArchiveExtension is appended to archived configuration files.
	ArchiveExtension = ".cfg"

	// ReportSuffix is appended to the device name to form the report filename.
	ReportSuffix = "_report.txt"

	// ArchiveTimeLayout formats the archive timestamp as YYYYMMDD_HHMMSS.
	ArchiveTimeLayout = "20060102_150405"
)

// File modes for created artifacts.
const (
	DirMode  = 0o755
	FileMode = 0o644
)

// Golden comparison.
const (
	// DiffContextLines is the number of unchanged lines around each hunk.
	DiffContextLines = 3

	// DeviceConfigLabel is the "to" label of every golden diff.
	DeviceConfigLabel = "device_config"

	// CompliantMessage is written to a report when no drift was found.
	CompliantMessage = "No differences found. Configuration is compliant.\n"
)

// Server timeouts for the serve command.
const (
	// ServerReadTimeout is the maximum duration for reading a request.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout bounds reading request headers.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Synchronous audit requests must finish within it.
	ServerWriteTimeout = 5 * time.Minute

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 10 * time.Minute

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// ServerPort is the default listen port.
	ServerPort = 8080
)
