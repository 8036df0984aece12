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

package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/utils/clock"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
)

// Archiver stores fetched configurations under timestamped filenames.
type Archiver struct {
	dir   string
	ext   string
	clock clock.PassiveClock
}

// Option configures an Archiver.
type Option func(*Archiver)

// WithClock replaces the wall clock used for filenames.
func WithClock(c clock.PassiveClock) Option {
	return func(a *Archiver) {
		a.clock = c
	}
}

// WithExtension sets the file extension, including the dot. Default ".cfg".
func WithExtension(ext string) Option {
	return func(a *Archiver) {
		a.ext = ext
	}
}

// New creates an Archiver writing into dir.
func New(dir string, opts ...Option) *Archiver {
	a := &Archiver{
		dir:   dir,
		ext:   defaults.ArchiveExtension,
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string {
	return a.dir
}

// Filename returns {hostname}_{YYYYMMDD_HHMMSS}{ext} for the current time.
func (a *Archiver) Filename(hostname string) string {
	return fmt.Sprintf("%s_%s%s", hostname, a.clock.Now().Format(defaults.ArchiveTimeLayout), a.ext)
}

// Save writes config for the device and returns the file path. The
// directory is created when absent and an existing file with the same
// name is overwritten.
func (a *Archiver) Save(config string, d inventory.Device) (string, error) {
	if err := os.MkdirAll(a.dir, defaults.DirMode); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create archive directory", err, map[string]any{"dir": a.dir})
	}

	path := filepath.Join(a.dir, a.Filename(d.Hostname))
	if err := os.WriteFile(path, []byte(config), defaults.FileMode); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to write archived configuration", err, map[string]any{"path": path})
	}

	return path, nil
}
