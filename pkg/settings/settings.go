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

package settings

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/network-auditor/pkg/defaults"
	"github.com/NVIDIA/network-auditor/pkg/errors"
)

// Setting keys understood by the auditor.
const (
	KeyTemplatesFolder = "auditor.templates_folder"
	KeyGoldenFile      = "auditor.golden_file"
	KeyInventoryFile   = "auditor.inventory_file"
	KeyConfigsFolder   = "auditor.configs_folder"
	KeyReportsFolder   = "auditor.reports_folder"

	KeyLogFolder     = "logging.log_folder"
	KeyLogFilename   = "logging.log_filename"
	KeyLogConfigFile = "logging.log_config_file"

	KeySSHTimeout          = "ssh.timeout"
	KeySSHKnownHostsFile   = "ssh.known_hosts_file"
	KeySSHLegacyAlgorithms = "ssh.legacy_algorithms"
)

// Settings is a loaded settings file. Lookups never fail; missing keys
// resolve to the caller's default.
type Settings struct {
	path       string
	installDir string
	values     map[string]any
}

// SSHOptions groups the ssh.* settings.
type SSHOptions struct {
	Timeout          time.Duration
	KnownHostsFile   string
	LegacyAlgorithms bool
}

// Load reads the settings file at path. Relative paths inside the file are
// resolved against the directory holding it. The log directory is created
// as a side effect so the run logger can open its file.
func Load(path string) (*Settings, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid settings path", err)
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound,
				"configuration file does not exist", err,
				map[string]any{"path": abs})
		}
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to read configuration file %q", abs), err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(b, &values); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse configuration file %q", abs), err)
	}

	s := &Settings{
		path:       abs,
		installDir: filepath.Dir(abs),
		values:     values,
	}

	if err := os.MkdirAll(s.LogDir(), defaults.DirMode); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal,
			fmt.Sprintf("failed to create log directory %q", s.LogDir()), err)
	}

	return s, nil
}

// Path returns the absolute path of the loaded settings file.
func (s *Settings) Path() string {
	return s.path
}

// InstallDir returns the directory relative paths are resolved against.
func (s *Settings) InstallDir() string {
	return s.installDir
}

// Get returns the value at the dotted key, or def when any segment is absent.
func (s *Settings) Get(key string, def any) any {
	var cur any = s.values
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return def
		}
		v, ok := m[part]
		if !ok || v == nil {
			return def
		}
		cur = v
	}
	return cur
}

// GetString returns the value at key rendered as a string, or def.
func (s *Settings) GetString(key, def string) string {
	switch v := s.Get(key, nil).(type) {
	case nil:
		return def
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// GetBool returns the boolean at key, or def when absent or not a boolean.
func (s *Settings) GetBool(key string, def bool) bool {
	if v, ok := s.Get(key, nil).(bool); ok {
		return v
	}
	return def
}

// GetDuration parses the value at key as a Go duration ("10s") or a number
// of seconds. Unparsable values resolve to def.
func (s *Settings) GetDuration(key string, def time.Duration) time.Duration {
	switch v := s.Get(key, nil).(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return def
}

// Resolve returns p unchanged when absolute, otherwise joined to InstallDir.
func (s *Settings) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.installDir, p)
}

// TemplateDir is the resolved templates folder.
func (s *Settings) TemplateDir() string {
	return s.Resolve(s.GetString(KeyTemplatesFolder, ""))
}

// GoldenPath is the golden file, relative to the templates folder.
func (s *Settings) GoldenPath() string {
	name := s.GetString(KeyGoldenFile, "")
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.TemplateDir(), name)
}

// InventoryPath is the resolved inventory file, empty when unset.
func (s *Settings) InventoryPath() string {
	return s.Resolve(s.GetString(KeyInventoryFile, ""))
}

// LogDir is the resolved log folder.
func (s *Settings) LogDir() string {
	folder := s.GetString(KeyLogFolder, "")
	if folder == "" {
		return s.installDir
	}
	return s.Resolve(folder)
}

// LogFilePath is the run log file inside LogDir.
func (s *Settings) LogFilePath() string {
	return filepath.Join(s.LogDir(), s.GetString(KeyLogFilename, "auditor.log"))
}

// LogConfigPath is the resolved logging configuration file.
func (s *Settings) LogConfigPath() string {
	return s.Resolve(s.GetString(KeyLogConfigFile, ""))
}

// ConfigsDir is where fetched configurations are archived. Relative values
// are kept relative to the working directory.
func (s *Settings) ConfigsDir() string {
	return s.GetString(KeyConfigsFolder, defaults.ConfigsFolder)
}

// ReportsDir is where compliance reports are written. Relative values are
// kept relative to the working directory.
func (s *Settings) ReportsDir() string {
	return s.GetString(KeyReportsFolder, defaults.ReportsFolder)
}

// SSH returns the connection options.
func (s *Settings) SSH() SSHOptions {
	return SSHOptions{
		Timeout:          s.GetDuration(KeySSHTimeout, defaults.SSHDialTimeout),
		KnownHostsFile:   s.Resolve(s.GetString(KeySSHKnownHostsFile, "")),
		LegacyAlgorithms: s.GetBool(KeySSHLegacyAlgorithms, false),
	}
}
