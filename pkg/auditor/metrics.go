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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Audit run metrics
	auditRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netauditor_run_duration_seconds",
			Help:    "Time taken to audit the complete inventory",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	auditDevicesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netauditor_devices_total",
			Help: "Total number of audited devices by outcome",
		},
		[]string{"status"}, // compliant, drifted, unreachable, failed
	)

	auditDeviceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "netauditor_device_duration_seconds",
			Help:    "Time taken by individual pipeline stages",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"stage"}, // fetch, archive, compare, report
	)

	auditDriftLines = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netauditor_drift_lines",
			Help: "Changed lines against the golden configuration in the last run",
		},
		[]string{"device", "change"}, // added, removed
	)
)
