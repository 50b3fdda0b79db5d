// Copyright 2025 Supabase, Inc.
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

package command

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// result holds what a command wrote
type result struct {
	stdout string
	stderr string
}

// execute runs the root command against fs with colors disabled.
func execute(t *testing.T, fs afero.Fs, stdin string, args ...string) (result, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root, ec := NewRootCommand(fs)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--color=never", "--config-path=/nonexistent"))

	err := root.Execute()
	if closeErr := ec.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

func TestRootCommand(t *testing.T) {
	root, ec := NewRootCommand(afero.NewMemMapFs())

	t.Run("subcommands are registered", func(t *testing.T) {
		var names []string
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		for _, want := range []string{"list", "classify", "tokenize", "check", "errors"} {
			assert.Contains(t, names, want)
		}
	})

	t.Run("config flags are persistent", func(t *testing.T) {
		for _, name := range []string{"format", "color", "workers", "log-level", "log-format", "log-output", "config-file", "config-path", "config-file-not-found-handling"} {
			assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
		}
		assert.Equal(t, "text", root.PersistentFlags().Lookup("format").DefValue)
	})

	t.Run("config is nil before run", func(t *testing.T) {
		assert.Nil(t, ec.Config())
	})
}

func TestInvalidFormatFails(t *testing.T) {
	_, err := execute(t, afero.NewMemMapFs(), "", "list", "--format=xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestConfigFileSelectsFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/edgeqlkw/edgeqlkw.yaml", []byte("format: json\n"), 0o644))

	res, err := execute(t, fs, "", "check", "--config-path=/etc/edgeqlkw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(res.stdout), "{"), res.stdout)
}

func TestLogOutputGoesToStderr(t *testing.T) {
	res, err := execute(t, afero.NewMemMapFs(), "", "classify", "select", "--log-level=debug", "--log-format=json")
	require.NoError(t, err)
	assert.Contains(t, res.stderr, `"msg":"classified word"`)
	assert.NotContains(t, res.stdout, "classified word")
}

func TestLogOutputFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := execute(t, fs, "", "classify", "select", "--log-level=debug", "--log-output=/tmp/edgeqlkw.log")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/tmp/edgeqlkw.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), "classified word")
}

// countingFs tracks how many files opened with OpenFile are still open
type countingFs struct {
	afero.Fs

	mu   sync.Mutex
	open map[string]int
}

func newCountingFs() *countingFs {
	return &countingFs{Fs: afero.NewMemMapFs(), open: make(map[string]int)}
}

func (f *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.open[name]++
	f.mu.Unlock()
	return &countedFile{File: file, fs: f, name: name}, nil
}

func (f *countingFs) openCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open[name]
}

type countedFile struct {
	afero.File
	fs   *countingFs
	name string
}

func (c *countedFile) Close() error {
	c.fs.mu.Lock()
	c.fs.open[c.name]--
	c.fs.mu.Unlock()
	return c.File.Close()
}

func TestLogFileClosedAfterFailedCommand(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	fs := newCountingFs()
	root, ec := NewRootCommand(fs)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"tokenize", "/missing.edgeql", "--log-output=/edgeqlkw.log", "--config-path=/nonexistent"})

	require.Error(t, root.Execute())
	assert.Equal(t, 1, fs.openCount("/edgeqlkw.log"))

	require.NoError(t, ec.Close())
	assert.Equal(t, 0, fs.openCount("/edgeqlkw.log"))
	assert.NoError(t, ec.Close())
}

func TestMissingConfigWarningUsesLogSettings(t *testing.T) {
	fs := afero.NewMemMapFs()
	res, err := execute(t, fs, "", "check",
		"--config-file=/missing.yaml", "--config-file-not-found-handling=warn",
		"--log-format=json", "--log-output=/edgeqlkw.log")
	require.NoError(t, err)
	assert.NotContains(t, res.stderr, "config file not found")

	data, err := afero.ReadFile(fs, "/edgeqlkw.log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"WARN","msg":"config file not found"`)
}

func TestMissingConfigWarningRespectsLevel(t *testing.T) {
	res, err := execute(t, afero.NewMemMapFs(), "", "check",
		"--config-file=/missing.yaml", "--config-file-not-found-handling=warn", "--log-level=error")
	require.NoError(t, err)
	assert.NotContains(t, res.stderr, "config file not found")
}
