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

package golden

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
)

// Comparator diffs device configurations against the golden file.
type Comparator struct {
	path    string
	toLabel string
	context int
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithContextLines sets the number of context lines around each hunk.
func WithContextLines(n int) Option {
	return func(c *Comparator) {
		c.context = n
	}
}

// WithToLabel sets the label of the device side of the diff.
func WithToLabel(label string) Option {
	return func(c *Comparator) {
		c.toLabel = label
	}
}

// New creates a Comparator for the golden file at path.
func New(path string, opts ...Option) *Comparator {
	c := &Comparator{
		path:    path,
		toLabel: defaults.DeviceConfigLabel,
		context: defaults.DiffContextLines,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the golden file path.
func (c *Comparator) Path() string {
	return c.path
}

// Compare reads the golden file and diffs it against config. The golden
// file is read on every call so edits take effect without a restart.
func (c *Comparator) Compare(config string) (Diff, error) {
	golden, err := Read(c.path)
	if err != nil {
		return nil, err
	}
	return Unified(SplitLines(golden), SplitLines(config), c.path, c.toLabel, c.context), nil
}

// CompareText diffs two in-memory texts with the default context.
func CompareText(golden, config, fromLabel, toLabel string) Diff {
	return Unified(SplitLines(golden), SplitLines(config), fromLabel, toLabel, defaults.DiffContextLines)
}

// Read loads a text file, reporting a missing file as NOT_FOUND.
func Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.WrapWithContext(errors.ErrCodeNotFound,
				"file does not exist", err, map[string]any{"path": path})
		}
		return "", errors.Wrap(errors.ErrCodeInternal, fmt.Sprintf("failed to read %q", path), err)
	}
	return string(b), nil
}
