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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/network-auditor/pkg/connection"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/golden"
	"github.com/NVIDIA/network-auditor/pkg/header"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
	"github.com/NVIDIA/network-auditor/pkg/settings"
)

const goldenConfig = "hostname GOLDEN-ROUTER\n!\ninterface GigabitEthernet0/1\n ip address 192.168.1.1 255.255.255.0\n"

const driftedConfig = "hostname TEST-ROUTER\n!\ninterface GigabitEthernet0/1\n ip address 192.168.1.1 255.255.255.0\n"

// fakeSession returns canned output.
type fakeSession struct {
	output string
	err    error
}

func (s *fakeSession) Run(context.Context, string) (string, error) { return s.output, s.err }
func (s *fakeSession) Close() error                                 { return nil }

// fakeDialer maps device addresses to sessions; unknown addresses are refused.
type fakeDialer struct {
	sessions map[string]*fakeSession
	dialed   []string
}

func (d *fakeDialer) Dial(_ context.Context, p connection.Params) (connection.Session, error) {
	d.dialed = append(d.dialed, p.Address)
	s, ok := d.sessions[p.Address]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnavailable, "connection refused")
	}
	return s, nil
}

type env struct {
	settings   *settings.Settings
	configsDir string
	reportsDir string
	goldenPath string
}

func newEnv(t *testing.T, golden string) env {
	t.Helper()
	root := t.TempDir()
	configsDir := filepath.Join(root, "configs")
	reportsDir := filepath.Join(root, "reports")

	content := fmt.Sprintf(`auditor:
  templates_folder: templates
  golden_file: golden.cfg
  inventory_file: inventory.yaml
  configs_folder: %s
  reports_folder: %s
logging:
  log_folder: logs
`, configsDir, reportsDir)

	settingsPath := filepath.Join(root, "netauditor.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte(content), 0o644))

	goldenPath := filepath.Join(root, "templates", "golden.cfg")
	if golden != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(golden), 0o644))
	}

	s, err := settings.Load(settingsPath)
	require.NoError(t, err)

	return env{settings: s, configsDir: configsDir, reportsDir: reportsDir, goldenPath: goldenPath}
}

func device(name, host string) inventory.Device {
	return inventory.Device{
		Hostname:   name,
		Host:       host,
		DeviceType: "cisco_ios",
		Username:   "admin",
		Password:   "s3cret",
	}
}

func testOptions(dialer connection.Dialer) []Option {
	return []Option{
		WithDialer(dialer),
		WithLogger(slog.New(slog.DiscardHandler)),
		WithClock(clocktesting.NewFakePassiveClock(time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC))),
		WithRunID(func() string { return "run-1" }),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRun_DriftDetected(t *testing.T) {
	e := newEnv(t, goldenConfig)
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"192.168.1.1:22": {output: driftedConfig},
	}}
	before := testutil.ToFloat64(auditDevicesTotal.WithLabelValues(string(StatusDrifted)))

	a, err := New(e.settings, []inventory.Device{device("test-device", "192.168.1.1")}, testOptions(dialer)...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Devices, 1)
	r := summary.Devices[0]
	assert.Equal(t, StatusDrifted, r.Status)
	assert.Equal(t, 1, r.Added)
	assert.Equal(t, 1, r.Removed)
	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "2025-06-01T14:30:05Z", summary.Metadata["timestamp"])
	assert.False(t, summary.Compliant())

	assert.Equal(t, filepath.Join(e.configsDir, "test-device_20250601_143005.cfg"), r.ArchivePath)
	assert.Equal(t, driftedConfig, readFile(t, r.ArchivePath))

	assert.Equal(t, filepath.Join(e.reportsDir, "test-device_report.txt"), r.ReportPath)
	want := "--- " + e.goldenPath + "\n" +
		"+++ device_config\n" +
		"@@ -1,4 +1,4 @@\n" +
		"-hostname GOLDEN-ROUTER\n" +
		"+hostname TEST-ROUTER\n" +
		" !\n" +
		" interface GigabitEthernet0/1\n" +
		"  ip address 192.168.1.1 255.255.255.0\n"
	assert.Equal(t, want, readFile(t, r.ReportPath))

	after := testutil.ToFloat64(auditDevicesTotal.WithLabelValues(string(StatusDrifted)))
	assert.InDelta(t, 1, after-before, 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(auditDriftLines.WithLabelValues("test-device", "added")), 0.001)
}

func TestRun_Compliant(t *testing.T) {
	e := newEnv(t, goldenConfig)
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"192.168.1.1:22": {output: goldenConfig},
	}}

	a, err := New(e.settings, []inventory.Device{device("test-device", "192.168.1.1")}, testOptions(dialer)...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)

	r := summary.Devices[0]
	assert.Equal(t, StatusCompliant, r.Status)
	assert.True(t, summary.Compliant())
	assert.Equal(t, "No differences found. Configuration is compliant.\n", readFile(t, r.ReportPath))
	assert.FileExists(t, r.ArchivePath)
}

func TestRun_UnreachableDeviceIsSkipped(t *testing.T) {
	e := newEnv(t, goldenConfig)
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"10.0.0.2:22": {output: goldenConfig},
	}}
	devices := []inventory.Device{
		device("down-rtr", "10.0.0.1"),
		device("up-rtr", "10.0.0.2"),
	}

	a, err := New(e.settings, devices, testOptions(dialer)...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Devices, 2)
	assert.Equal(t, StatusUnreachable, summary.Devices[0].Status)
	assert.Empty(t, summary.Devices[0].ArchivePath)
	assert.Empty(t, summary.Devices[0].ReportPath)
	assert.NoFileExists(t, filepath.Join(e.reportsDir, "down-rtr_report.txt"))

	matches, err := filepath.Glob(filepath.Join(e.configsDir, "down-rtr_*"))
	require.NoError(t, err)
	assert.Empty(t, matches)

	assert.Equal(t, StatusCompliant, summary.Devices[1].Status)
	assert.Equal(t, []string{"10.0.0.1:22", "10.0.0.2:22"}, dialer.dialed, "devices are processed in inventory order")
	assert.Equal(t, 1, summary.Totals[StatusUnreachable])
	assert.Equal(t, 1, summary.Totals[StatusCompliant])
}

func TestRun_CommandFailureIsUnreachable(t *testing.T) {
	e := newEnv(t, goldenConfig)
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"10.0.0.1:22": {err: errors.New(errors.ErrCodeUnavailable, "command failed")},
	}}

	a, err := New(e.settings, []inventory.Device{device("r1", "10.0.0.1")}, testOptions(dialer)...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnreachable, summary.Devices[0].Status)
}

func TestRun_MissingGoldenFailsDeviceAndContinues(t *testing.T) {
	e := newEnv(t, "")
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"10.0.0.1:22": {output: goldenConfig},
		"10.0.0.2:22": {output: goldenConfig},
	}}
	devices := []inventory.Device{device("r1", "10.0.0.1"), device("r2", "10.0.0.2")}

	a, err := New(e.settings, devices, testOptions(dialer)...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Devices, 2)
	for _, r := range summary.Devices {
		assert.Equal(t, StatusFailed, r.Status)
		assert.Contains(t, r.Error, "file does not exist")
		assert.NotEmpty(t, r.ArchivePath, "archive happens before compare")
		assert.Empty(t, r.ReportPath)
	}
	assert.Equal(t, 2, summary.Totals[StatusFailed])
}

func TestRun_DriftGaugeClearedWhenDeviceStopsReporting(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		degrade func(e env, d *fakeDialer)
		want    Status
	}{
		{
			name:    "unreachable",
			host:    "10.0.1.1",
			degrade: func(_ env, d *fakeDialer) { delete(d.sessions, "10.0.1.1:22") },
			want:    StatusUnreachable,
		},
		{
			name:    "failed",
			host:    "10.0.1.2",
			degrade: func(e env, _ *fakeDialer) { require.NoError(t, os.Remove(e.goldenPath)) },
			want:    StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, goldenConfig)
			name := "flap-" + tt.name
			dialer := &fakeDialer{sessions: map[string]*fakeSession{
				tt.host + ":22": {output: driftedConfig},
			}}
			a, err := New(e.settings, []inventory.Device{device(name, tt.host)}, testOptions(dialer)...)
			require.NoError(t, err)

			summary, err := a.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, StatusDrifted, summary.Devices[0].Status)
			assert.InDelta(t, 1, testutil.ToFloat64(auditDriftLines.WithLabelValues(name, "removed")), 0.001)

			tt.degrade(e, dialer)
			summary, err = a.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.want, summary.Devices[0].Status)

			assert.False(t, auditDriftLines.DeleteLabelValues(name, "added"), "added series should be gone")
			assert.False(t, auditDriftLines.DeleteLabelValues(name, "removed"), "removed series should be gone")
		})
	}
}

type failingReporter struct{}

func (failingReporter) Write(string, golden.Diff) (string, error) {
	return "", errors.New(errors.ErrCodeInternal, "disk full")
}

func TestRun_ReportFailureIsIsolated(t *testing.T) {
	e := newEnv(t, goldenConfig)
	dialer := &fakeDialer{sessions: map[string]*fakeSession{
		"10.0.0.1:22": {output: goldenConfig},
	}}
	opts := append(testOptions(dialer), WithReporter(failingReporter{}))

	a, err := New(e.settings, []inventory.Device{device("r1", "10.0.0.1")}, opts...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, summary.Devices[0].Status)
	assert.Equal(t, "[INTERNAL] disk full", summary.Devices[0].Error)
}

type cancelingFetcher struct {
	cancel  context.CancelFunc
	fetched []string
}

func (f *cancelingFetcher) Fetch(_ context.Context, d inventory.Device) (string, bool) {
	f.fetched = append(f.fetched, d.Hostname)
	f.cancel()
	return goldenConfig, true
}

func TestRun_CanceledBetweenDevices(t *testing.T) {
	e := newEnv(t, goldenConfig)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := &cancelingFetcher{cancel: cancel}
	opts := append(testOptions(nil), WithFetcher(f))
	devices := []inventory.Device{device("r1", "10.0.0.1"), device("r2", "10.0.0.2")}

	a, err := New(e.settings, devices, opts...)
	require.NoError(t, err)

	summary, err := a.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Equal(t, []string{"r1"}, f.fetched)
	require.Len(t, summary.Devices, 1)
	assert.Equal(t, StatusCompliant, summary.Devices[0].Status)
}

func TestRun_EmptyInventory(t *testing.T) {
	e := newEnv(t, goldenConfig)
	a, err := New(e.settings, nil, testOptions(&fakeDialer{})...)
	require.NoError(t, err)

	summary, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Devices)
	assert.True(t, summary.Compliant())
	assert.Equal(t, summary.StartedAt, summary.FinishedAt)
}

func TestNew(t *testing.T) {
	t.Run("nil settings", func(t *testing.T) {
		_, err := New(nil, nil)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
	})

	t.Run("default ssh dialer", func(t *testing.T) {
		e := newEnv(t, goldenConfig)
		a, err := New(e.settings, nil)
		require.NoError(t, err)
		assert.IsType(t, &connection.SSHDialer{}, a.dialer)
	})
}

func TestSummary_Table(t *testing.T) {
	s := newSummary("run-1", "v1.0.0", time.Time{}, 2)
	s.add(DeviceResult{Hostname: "r1", Host: "10.0.0.1", Status: StatusDrifted, Added: 2, Removed: 1, ReportPath: "reports/r1_report.txt"})
	s.add(DeviceResult{Hostname: "r2", Host: "10.0.0.2", Status: StatusFailed, Error: "boom"})

	assert.Equal(t, []string{"DEVICE", "HOST", "STATUS", "ADDED", "REMOVED", "REPORT"}, s.TableHeader())
	assert.Equal(t, [][]string{
		{"r1", "10.0.0.1", "drifted", "2", "1", "reports/r1_report.txt"},
		{"r2", "10.0.0.2", "failed", "0", "0", "boom"},
	}, s.TableRows())
	assert.Equal(t, 1, s.Totals[StatusDrifted])
	assert.Equal(t, 1, s.Totals[StatusFailed])
	assert.Equal(t, 0, s.Totals[StatusCompliant])
	assert.Equal(t, header.KindAuditSummary, s.Kind)
	assert.Equal(t, "v1.0.0", s.Metadata["version"])
}
