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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/NVIDIA/network-auditor/pkg/errors"
	"github.com/NVIDIA/network-auditor/pkg/inventory"
)

var fixedTime = time.Date(2025, 6, 1, 14, 30, 5, 0, time.UTC)

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "configs")
	a := New(dir, WithClock(clocktesting.NewFakePassiveClock(fixedTime)))

	path, err := a.Save("hostname r1\n", inventory.Device{Hostname: "r1"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "r1_20250601_143005.cfg"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hostname r1\n", string(b))
}

func TestSave_DirectoryAlreadyExists(t *testing.T) {
	dir := t.TempDir()
	a := New(dir, WithClock(clocktesting.NewFakePassiveClock(fixedTime)))

	_, err := a.Save("one\n", inventory.Device{Hostname: "r1"})
	require.NoError(t, err)

	// same second, same name: last write wins
	path, err := a.Save("two\n", inventory.Device{Hostname: "r1"})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(b))
}

func TestSave_TimestampAdvances(t *testing.T) {
	clk := clocktesting.NewFakePassiveClock(fixedTime)
	a := New(t.TempDir(), WithClock(clk), WithExtension(".txt"))

	first, err := a.Save("a", inventory.Device{Hostname: "r1"})
	require.NoError(t, err)

	clk.SetTime(fixedTime.Add(time.Second))
	second, err := a.Save("b", inventory.Device{Hostname: "r1"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "r1_20250601_143006.txt", filepath.Base(second))
}

func TestSave_UnwritableDirectory(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "configs")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := New(blocker).Save("x", inventory.Device{Hostname: "r1"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestNew_Defaults(t *testing.T) {
	a := New("configs")
	assert.Equal(t, "configs", a.Dir())
	assert.Regexp(t, `^r1_\d{8}_\d{6}\.cfg$`, a.Filename("r1"))
}
