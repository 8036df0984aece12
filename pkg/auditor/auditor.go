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
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/NVIDIA/network-auditor/pkg/archive"
	"github.com/NVIDIA/network-auditor/pkg/connection"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/fetcher"
	"github.com/NVIDIA/network-auditor/pkg/golden"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
	"github.com/NVIDIA/network-auditor/pkg/report"
	"github.com/NVIDIA/network-auditor/pkg/settings"
)

// Fetcher retrieves a device configuration. ok is false when the device
// could not be reached; the failure has already been logged.
type Fetcher interface {
	Fetch(ctx context.Context, d inventory.Device) (config string, ok bool)
}

// Archiver persists a fetched configuration.
type Archiver interface {
	Save(config string, d inventory.Device) (string, error)
}

// Comparator diffs a configuration against the golden file.
type Comparator interface {
	Compare(config string) (golden.Diff, error)
}

// Reporter writes the per-device report.
type Reporter interface {
	Write(deviceName string, diff golden.Diff) (string, error)
}

// Auditor runs the fetch, archive, compare and report pipeline over an
// inventory.
type Auditor struct {
	settings   *settings.Settings
	devices    []inventory.Device
	dialer     connection.Dialer
	fetcher    Fetcher
	archiver   Archiver
	comparator Comparator
	reporter   Reporter
	logger     *slog.Logger
	clock      clock.PassiveClock
	newRunID   func() string
	version    string
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithLogger sets the logger. A nil logger means slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = l
	}
}

// WithClock sets the clock used for summary timestamps and archive names.
func WithClock(c clock.PassiveClock) Option {
	return func(a *Auditor) {
		a.clock = c
	}
}

// WithDialer sets the connection dialer used by the default fetcher.
func WithDialer(d connection.Dialer) Option {
	return func(a *Auditor) {
		a.dialer = d
	}
}

// WithFetcher replaces the fetcher.
func WithFetcher(f Fetcher) Option {
	return func(a *Auditor) {
		a.fetcher = f
	}
}

// WithArchiver replaces the archiver.
func WithArchiver(ar Archiver) Option {
	return func(a *Auditor) {
		a.archiver = ar
	}
}

// WithComparator replaces the golden comparator.
func WithComparator(c Comparator) Option {
	return func(a *Auditor) {
		a.comparator = c
	}
}

// WithReporter replaces the report writer.
func WithReporter(r Reporter) Option {
	return func(a *Auditor) {
		a.reporter = r
	}
}

// WithVersion records the tool version in summaries.
func WithVersion(v string) Option {
	return func(a *Auditor) {
		a.version = v
	}
}

// WithRunID overrides run id generation.
func WithRunID(fn func() string) Option {
	return func(a *Auditor) {
		a.newRunID = fn
	}
}

// New composes an Auditor from settings and the loaded inventory.
// Components not supplied through options are built from settings; the
// default dialer is SSH configured from the ssh section.
func New(s *settings.Settings, devices []inventory.Device, opts ...Option) (*Auditor, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "settings are required")
	}

	a := &Auditor{
		settings: s,
		devices:  devices,
		clock:    clock.RealClock{},
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	if a.fetcher == nil {
		if a.dialer == nil {
			d, err := newSSHDialer(s.SSH())
			if err != nil {
				return nil, err
			}
			a.dialer = d
		}
		a.fetcher = fetcher.New(a.dialer, a.logger)
	}
	if a.archiver == nil {
		a.archiver = archive.New(s.ConfigsDir(), archive.WithClock(a.clock))
	}
	if a.comparator == nil {
		a.comparator = golden.New(s.GoldenPath())
	}
	if a.reporter == nil {
		a.reporter = report.NewWriter(s.ReportsDir())
	}

	return a, nil
}

func newSSHDialer(o settings.SSHOptions) (*connection.SSHDialer, error) {
	opts := []connection.SSHOption{
		connection.WithTimeout(o.Timeout),
		connection.WithLegacyAlgorithms(o.LegacyAlgorithms),
	}
	if o.KnownHostsFile != "" {
		opts = append(opts, connection.WithKnownHosts(o.KnownHostsFile))
	}
	return connection.NewSSHDialer(opts...)
}

// Devices returns the inventory being audited.
func (a *Auditor) Devices() []inventory.Device {
	return a.devices
}

// Run audits every device in inventory order, one at a time. A device that
// cannot be fetched is recorded as unreachable and skipped. Archive,
// compare and report failures mark that device failed and the run moves on.
// When ctx is canceled the loop stops before the next device and the
// partial summary is returned together with ctx.Err().
func (a *Auditor) Run(ctx context.Context) (*Summary, error) {
	runID := a.newRunID()
	logger := a.logger.With(slog.String("run_id", runID))

	start := a.clock.Now()
	summary := newSummary(runID, a.version, start, len(a.devices))

	wallStart := time.Now()
	defer func() {
		auditRunDuration.Observe(time.Since(wallStart).Seconds())
	}()

	logger.Info("starting audit",
		slog.Int("devices", len(a.devices)),
		slog.String("golden", a.settings.GoldenPath()))

	for _, d := range a.devices {
		if err := ctx.Err(); err != nil {
			summary.FinishedAt = a.clock.Now()
			logger.Warn("audit interrupted",
				slog.Int("audited", len(summary.Devices)),
				slog.String("error", err.Error()))
			return summary, err
		}

		result := a.audit(ctx, logger, d)
		auditDevicesTotal.WithLabelValues(string(result.Status)).Inc()
		summary.add(result)
	}

	summary.FinishedAt = a.clock.Now()
	logger.Info("audit complete",
		slog.Int(string(StatusCompliant), summary.Totals[StatusCompliant]),
		slog.Int(string(StatusDrifted), summary.Totals[StatusDrifted]),
		slog.Int(string(StatusUnreachable), summary.Totals[StatusUnreachable]),
		slog.Int(string(StatusFailed), summary.Totals[StatusFailed]))

	return summary, nil
}

// audit runs the pipeline for one device.
func (a *Auditor) audit(ctx context.Context, logger *slog.Logger, d inventory.Device) DeviceResult {
	result := DeviceResult{Hostname: d.Hostname, Host: d.Host}
	logger = logger.With(slog.String("device", d.Hostname))

	stage := time.Now()
	config, ok := a.fetcher.Fetch(ctx, d)
	observeStage("fetch", stage)
	if !ok {
		logger.Warn("skipping unreachable device")
		clearDrift(d.Hostname)
		result.Status = StatusUnreachable
		return result
	}

	stage = time.Now()
	archivePath, err := a.archiver.Save(config, d)
	observeStage("archive", stage)
	if err != nil {
		return a.fail(logger, result, "archive", err)
	}
	result.ArchivePath = archivePath
	logger.Info("configuration archived", slog.String("path", archivePath))

	stage = time.Now()
	diff, err := a.comparator.Compare(config)
	observeStage("compare", stage)
	if err != nil {
		return a.fail(logger, result, "compare", err)
	}

	stage = time.Now()
	reportPath, err := a.reporter.Write(d.Hostname, diff)
	observeStage("report", stage)
	if err != nil {
		return a.fail(logger, result, "report", err)
	}
	result.ReportPath = reportPath

	result.Added, result.Removed = diff.Stats()
	auditDriftLines.WithLabelValues(d.Hostname, "added").Set(float64(result.Added))
	auditDriftLines.WithLabelValues(d.Hostname, "removed").Set(float64(result.Removed))

	if diff.Empty() {
		result.Status = StatusCompliant
		logger.Info("configuration is compliant", slog.String("report", reportPath))
	} else {
		result.Status = StatusDrifted
		logger.Info("configuration drift detected",
			slog.String("report", reportPath),
			slog.String("changes", "+"+strconv.Itoa(result.Added)+"/-"+strconv.Itoa(result.Removed)))
	}
	return result
}

func (a *Auditor) fail(logger *slog.Logger, result DeviceResult, stage string, err error) DeviceResult {
	logger.Error("device audit failed",
		slog.String("stage", stage),
		slog.Any("error", err))
	clearDrift(result.Hostname)
	result.Status = StatusFailed
	result.Error = err.Error()
	return result
}

// clearDrift drops the drift series of a device that produced no diff this
// run so a previous value is not reported again.
func clearDrift(hostname string) {
	auditDriftLines.DeleteLabelValues(hostname, "added")
	auditDriftLines.DeleteLabelValues(hostname, "removed")
}

func observeStage(stage string, start time.Time) {
	auditDeviceDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
