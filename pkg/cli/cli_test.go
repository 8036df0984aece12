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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/network-auditor/pkg/auditor"
	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/header"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
)

const goldenConfig = "hostname GOLDEN-ROUTER\n!\ninterface GigabitEthernet0/1\n"

type workspace struct {
	root     string
	settings string
}

// closedPort returns a loopback port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func newWorkspace(t *testing.T, withLogConfig bool) workspace {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	write("netauditor.yaml", fmt.Sprintf(`auditor:
  templates_folder: templates
  golden_file: golden.cfg
  inventory_file: inventory.yaml
  configs_folder: %s
  reports_folder: %s
ssh:
  timeout: 2s
logging:
  log_folder: logs
  log_filename: auditor.log
  log_config_file: logging.yaml
`, filepath.Join(root, "configs"), filepath.Join(root, "reports")))

	write("templates/golden.cfg", goldenConfig)
	write("inventory.yaml", fmt.Sprintf(`devices:
  - hostname: lab-rtr-01
    host: 127.0.0.1
    port: %d
    device_type: cisco_ios
    username: admin
    password: s3cret
`, closedPort(t)))

	if withLogConfig {
		write("logging.yaml", "level: debug\nformat: text\n")
	}

	return workspace{root: root, settings: filepath.Join(root, "netauditor.yaml")}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := newRootCmd()
	root.Writer = &buf
	root.ErrWriter = &buf
	err := root.Run(context.Background(), append([]string{name}, args...))
	return buf.String(), err
}

func TestRootCmd_Structure(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotNil(t, c.Action, "command %q has no action", c.Name)
	}
	assert.Equal(t, []string{"audit", "diff", "inventory", "serve"}, names)

	for _, flag := range []string{"config", "log-level"} {
		found := false
		for _, f := range root.Flags {
			for _, n := range f.Names() {
				if n == flag {
					found = true
				}
			}
		}
		assert.True(t, found, "global flag %q not found", flag)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"yaml", false},
		{"json", false},
		{"table", false},
		{"xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var gotErr error
			cmd := &cli.Command{
				Name:  "test",
				Flags: []cli.Flag{formatFlag("yaml")},
				Action: func(_ context.Context, cmd *cli.Command) error {
					_, gotErr = parseOutputFormat(cmd)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), []string{"test", "--format", tt.format}))
			assert.Equal(t, tt.wantErr, gotErr != nil)
		})
	}
}

func TestAudit_UnreachableDevice(t *testing.T) {
	ws := newWorkspace(t, true)
	summaryPath := filepath.Join(ws.root, "out", "summary.json")
	metricsPath := filepath.Join(ws.root, "metrics.prom")

	_, err := run(t, "--config", ws.settings, "audit",
		"--summary", summaryPath, "--format", "json", "--metrics-file", metricsPath)
	require.NoError(t, err)

	b, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	var summary auditor.Summary
	require.NoError(t, json.Unmarshal(b, &summary))
	require.Len(t, summary.Devices, 1)
	assert.Equal(t, "lab-rtr-01", summary.Devices[0].Hostname)
	assert.Equal(t, auditor.StatusUnreachable, summary.Devices[0].Status)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, header.KindAuditSummary, summary.Kind)
	assert.Equal(t, header.APIVersion, summary.APIVersion)

	assert.NoFileExists(t, filepath.Join(ws.root, "reports", "lab-rtr-01_report.txt"))

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `netauditor_devices_total{status="unreachable"}`)

	logs, err := os.ReadFile(filepath.Join(ws.root, "logs", "auditor.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "failed to fetch configuration")
	assert.Contains(t, string(logs), "lab-rtr-01")
	assert.NotContains(t, string(logs), "s3cret")
}

func TestAudit_FailOnDrift(t *testing.T) {
	ws := newWorkspace(t, true)
	_, err := run(t, "--config", ws.settings, "audit",
		"--summary", filepath.Join(ws.root, "summary.yaml"), "--fail-on-drift")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 devices are not compliant")
}

func TestAudit_FatalStartupErrors(t *testing.T) {
	t.Run("missing settings", func(t *testing.T) {
		_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "audit")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("missing logging config", func(t *testing.T) {
		ws := newWorkspace(t, false)
		_, err := run(t, "--config", ws.settings, "audit")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
		assert.Contains(t, err.Error(), "log configuration file does not exist")
	})

	t.Run("logging config not set", func(t *testing.T) {
		ws := newWorkspace(t, true)
		b, err := os.ReadFile(ws.settings)
		require.NoError(t, err)
		content := strings.Replace(string(b), "  log_config_file: logging.yaml\n", "", 1)
		require.NoError(t, os.WriteFile(ws.settings, []byte(content), 0o644))

		_, err = run(t, "--config", ws.settings, "audit")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
		assert.Contains(t, err.Error(), "log_config_file is not set")
		assert.NoDirExists(t, filepath.Join(ws.root, "reports"))
	})

	t.Run("missing inventory", func(t *testing.T) {
		ws := newWorkspace(t, true)
		_, err := run(t, "--config", ws.settings, "audit",
			"--inventory", filepath.Join(ws.root, "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})

	t.Run("unknown format", func(t *testing.T) {
		ws := newWorkspace(t, true)
		_, err := run(t, "--config", ws.settings, "audit", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown output format")
	})
}

func TestDiff(t *testing.T) {
	ws := newWorkspace(t, true)
	goldenPath := filepath.Join(ws.root, "templates", "golden.cfg")

	t.Run("drift", func(t *testing.T) {
		devicePath := filepath.Join(ws.root, "r1.cfg")
		require.NoError(t, os.WriteFile(devicePath,
			[]byte(strings.Replace(goldenConfig, "GOLDEN-ROUTER", "TEST-ROUTER", 1)), 0o644))

		out, err := run(t, "diff", "--golden", goldenPath, "--device", devicePath)
		require.NoError(t, err)
		assert.Contains(t, out, "--- "+goldenPath+"\n")
		assert.Contains(t, out, "+++ "+devicePath+"\n")
		assert.Contains(t, out, "-hostname GOLDEN-ROUTER\n+hostname TEST-ROUTER\n")
	})

	t.Run("golden from settings", func(t *testing.T) {
		devicePath := filepath.Join(ws.root, "same.cfg")
		require.NoError(t, os.WriteFile(devicePath, []byte(goldenConfig), 0o644))

		out, err := run(t, "--config", ws.settings, "diff", "--device", devicePath)
		require.NoError(t, err)
		assert.Equal(t, "No differences found. Configuration is compliant.\n", out)
	})

	t.Run("missing device file", func(t *testing.T) {
		_, err := run(t, "diff", "--golden", goldenPath, "--device", filepath.Join(ws.root, "absent.cfg"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
	})
}

func TestInventory(t *testing.T) {
	ws := newWorkspace(t, true)

	t.Run("table", func(t *testing.T) {
		out, err := run(t, "--config", ws.settings, "inventory")
		require.NoError(t, err)
		assert.Contains(t, out, "HOSTNAME")
		assert.Contains(t, out, "lab-rtr-01")
		assert.Contains(t, out, "show running-config")
		assert.NotContains(t, out, "s3cret")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "--config", ws.settings, "inventory", "--format", "json")
		require.NoError(t, err)
		var list deviceList
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		assert.Equal(t, header.KindDeviceList, list.Kind)
		require.Len(t, list.Devices, 1)
		assert.Equal(t, "cisco_ios", list.Devices[0].DeviceType)
		assert.True(t, strings.HasPrefix(list.Devices[0].Address, "127.0.0.1:"))
		assert.NotContains(t, out, "s3cret")
	})
}

func TestNewDeviceList(t *testing.T) {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	list := newDeviceList([]inventory.Device{
		{Hostname: "a", Host: "10.0.0.1", DeviceType: "juniper_junos"},
		{Hostname: "b", Host: "10.0.0.2", Port: 2222, DeviceType: "cisco_ios", Command: "show run all"},
	}, ts)

	assert.Equal(t, "2025-06-01T00:00:00Z", list.Metadata["timestamp"])
	rows := list.TableRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "a", "10.0.0.1:22", "juniper_junos", "", "show configuration"}, rows[0])
	assert.Equal(t, "10.0.0.2:"+strconv.Itoa(2222), rows[1][2])
	assert.Equal(t, "show run all", rows[1][5])
}
