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

package auditor

import (
	"strconv"
	"time"

	"github.com/NVIDIA/network-auditor/pkg/header"
)

// Status is the outcome of auditing one device.
type Status string

const (
	// StatusCompliant means the configuration matches the golden file.
	StatusCompliant Status = "compliant"
	// StatusDrifted means a non-empty diff was reported.
	StatusDrifted Status = "drifted"
	// StatusUnreachable means the configuration could not be fetched.
	StatusUnreachable Status = "unreachable"
	// StatusFailed means archive, compare or report failed after a fetch.
	StatusFailed Status = "failed"
)

// DeviceResult records what happened to one inventory entry.
type DeviceResult struct {
	Hostname    string `json:"hostname" yaml:"hostname"`
	Host        string `json:"host" yaml:"host"`
	Status      Status `json:"status" yaml:"status"`
	ArchivePath string `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
	ReportPath  string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Added       int    `json:"added" yaml:"added"`
	Removed     int    `json:"removed" yaml:"removed"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary describes a complete audit run.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	RunID      string         `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Devices    []DeviceResult `json:"devices" yaml:"devices"`
	Totals     map[Status]int `json:"totals" yaml:"totals"`
}

func newSummary(runID, version string, startedAt time.Time, capacity int) *Summary {
	s := &Summary{
		RunID:     runID,
		StartedAt: startedAt,
		Devices:   make([]DeviceResult, 0, capacity),
		Totals: map[Status]int{
			StatusCompliant:   0,
			StatusDrifted:     0,
			StatusUnreachable: 0,
			StatusFailed:      0,
		},
	}
	s.Init(header.KindAuditSummary, version, startedAt)
	return s
}

func (s *Summary) add(r DeviceResult) {
	s.Devices = append(s.Devices, r)
	s.Totals[r.Status]++
}

// Compliant reports whether every audited device matched the golden file.
func (s *Summary) Compliant() bool {
	for _, d := range s.Devices {
		if d.Status != StatusCompliant {
			return false
		}
	}
	return true
}

// TableHeader implements serializer.Tabular.
func (s *Summary) TableHeader() []string {
	return []string{"DEVICE", "HOST", "STATUS", "ADDED", "REMOVED", "REPORT"}
}

// TableRows implements serializer.Tabular.
func (s *Summary) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Devices))
	for _, d := range s.Devices {
		report := d.ReportPath
		if d.Error != "" {
			report = d.Error
		}
		rows = append(rows, []string{
			d.Hostname,
			d.Host,
			string(d.Status),
			strconv.Itoa(d.Added),
			strconv.Itoa(d.Removed),
			report,
		})
	}
	return rows
}
