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

package report

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/golden"
)

// Writer renders compliance reports, one file per device.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for the reports directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the reports directory.
func (w *Writer) Dir() string {
	return w.dir
}

// PathFor returns the report path for a device.
func (w *Writer) PathFor(deviceName string) string {
	return filepath.Join(w.dir, deviceName+defaults.ReportSuffix)
}

// Write renders diff into {dir}/{deviceName}_report.txt, replacing any
// previous report. An empty diff yields the compliance notice.
func (w *Writer) Write(deviceName string, diff golden.Diff) (string, error) {
	if err := os.MkdirAll(w.dir, defaults.DirMode); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create reports directory", err, map[string]any{"dir": w.dir})
	}

	path := w.PathFor(deviceName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to create report", err, map[string]any{"path": path})
	}

	if err := render(f, diff); err != nil {
		f.Close()
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to write report", err, map[string]any{"path": path})
	}

	if err := f.Close(); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to close report", err, map[string]any{"path": path})
	}

	return path, nil
}

func render(f *os.File, diff golden.Diff) error {
	bw := bufio.NewWriter(f)
	if diff.Empty() {
		if _, err := bw.WriteString(defaults.CompliantMessage); err != nil {
			return err
		}
		return bw.Flush()
	}

	for _, line := range diff {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
