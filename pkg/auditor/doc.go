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

// Package auditor orchestrates a configuration audit over an inventory.
//
// For each device, in inventory order and one at a time, the Auditor:
//
//  1. Fetches the running configuration over SSH
//  2. Archives it as {hostname}_{YYYYMMDD_HHMMSS}.cfg
//  3. Diffs it against the golden file
//  4. Writes {hostname}_report.txt
//
// Outcomes per device:
//   - compliant: empty diff
//   - drifted: non-empty diff, report holds the diff
//   - unreachable: fetch failed, no archive and no report
//   - failed: archive, compare or report failed; the run continues
//
// Usage:
//
//	s, err := settings.Load("netauditor.yaml")
//	devices, err := inventory.Load(s.InventoryPath())
//	a, err := auditor.New(s, devices, auditor.WithLogger(logger))
//	summary, err := a.Run(ctx)
//
// Every component can be replaced through options (WithFetcher,
// WithArchiver, WithComparator, WithReporter, WithDialer), which is how
// tests run the pipeline without network access.
//
// Metrics:
//   - netauditor_run_duration_seconds
//   - netauditor_devices_total{status}
//   - netauditor_device_duration_seconds{stage}
//   - netauditor_drift_lines{device,change}
package auditor
