// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edespino/condabox/internal/shell"
)

// Mock command executor for testing
type MockCommander struct {
	Results []shell.Result
	Errors  []error
	index   int
	cmds    []string
}

func (m *MockCommander) Execute(args ...string) (shell.Result, error) {
	line := shell.Line(args...)
	m.cmds = append(m.cmds, line)

	var result shell.Result
	var err error
	if m.index < len(m.Results) {
		result = m.Results[m.index]
	}
	if m.index < len(m.Errors) {
		err = m.Errors[m.index]
	}
	m.index++
	result.Command = line
	return result, err
}

func (m *MockCommander) GetCommands() []string {
	return m.cmds
}

// setupCommand installs mock as the commander, resets every flag variable
// and restores the defaults when the test ends.
func setupCommand(t *testing.T, mock *MockCommander) {
	t.Helper()
	t.Setenv("CONDA_EXE", "")

	reset := func() {
		formatFlag = "yaml"
		condaFlag = ""
		shellFlag = "/bin/sh"
		verboseFlag = false
		yesFlag = true
		dryRunFlag = false
		pythonFlag = ""
		scenariosFile = ""
		outputDir = ""
		SetCommander(nil)
	}
	reset()
	if mock != nil {
		SetCommander(mock)
	}
	t.Cleanup(reset)
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr.
func executeCommand(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("yaml"))

	err := validateFormat("invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format: invalid")
}

func TestCondaExecutable(t *testing.T) {
	setupCommand(t, nil)

	assert.Equal(t, "conda", condaExecutable())

	t.Setenv("CONDA_EXE", "/opt/conda/bin/conda")
	assert.Equal(t, "/opt/conda/bin/conda", condaExecutable())

	condaFlag = "/usr/local/bin/conda"
	assert.Equal(t, "/usr/local/bin/conda", condaExecutable())
}

func TestNewCommander(t *testing.T) {
	setupCommand(t, nil)

	shellFlag = "/bin/bash"
	c, ok := newCommander().(shell.RealCommander)
	require.True(t, ok)
	assert.Equal(t, "/bin/bash", c.Shell)
	assert.Equal(t, []string{"CONDA_ALWAYS_YES=true"}, c.Env)

	yesFlag = false
	c, ok = newCommander().(shell.RealCommander)
	require.True(t, ok)
	assert.Empty(t, c.Env)

	mock := &MockCommander{}
	SetCommander(mock)
	assert.Same(t, mock, newCommander())
}

func TestEnvCommands(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantCmd string
	}{
		{
			name:    "create with packages",
			args:    []string{"create", "test_ml", "numpy", "pandas"},
			wantCmd: "conda create -y -n test_ml numpy pandas",
		},
		{
			name:    "create pinned to python",
			args:    []string{"create", "test_python_3_10", "--python", "3.10"},
			wantCmd: "conda create -y -n test_python_3_10 python=3.10",
		},
		{
			name:    "activate",
			args:    []string{"activate", "test_ml"},
			wantCmd: "conda activate test_ml",
		},
		{
			name:    "install",
			args:    []string{"install", "test_ml", "pytest", "pytest-html", "requests"},
			wantCmd: "conda install -n test_ml pytest pytest-html requests",
		},
		{
			name:    "install without packages",
			args:    []string{"install", "test_ml"},
			wantCmd: "conda install -n test_ml",
		},
		{
			name:    "search",
			args:    []string{"search", "numpy"},
			wantCmd: "conda search numpy",
		},
		{
			name:    "list",
			args:    []string{"list", "test_ml"},
			wantCmd: "conda list -n test_ml",
		},
		{
			name:    "remove",
			args:    []string{"remove", "test_ml"},
			wantCmd: "conda env remove -y -n test_ml --all",
		},
		{
			name:    "custom conda executable",
			args:    []string{"list", "base", "--conda", "/opt/conda/bin/conda"},
			wantCmd: "/opt/conda/bin/conda list -n base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockCommander{Results: []shell.Result{{Stdout: "done"}}}
			setupCommand(t, mock)

			output, err := executeCommand(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantCmd}, mock.GetCommands())
			assert.Contains(t, output, "command: "+tt.wantCmd)
			assert.Contains(t, output, "stdout: done")
			assert.Contains(t, output, "exit_code: 0")
		})
	}
}

func TestEnvCommandErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		results    []shell.Result
		errs       []error
		errorMsg   string
		wantOutput string
	}{
		{
			name:       "non-zero exit",
			args:       []string{"list", "missing_env"},
			results:    []shell.Result{{Stderr: "EnvironmentLocationNotFound", ExitCode: 1}},
			errorMsg:   "conda exited with status 1",
			wantOutput: "EnvironmentLocationNotFound",
		},
		{
			name:     "shell cannot start",
			args:     []string{"search", "numpy"},
			results:  []shell.Result{{ExitCode: -1}},
			errs:     []error{errors.New("shell: failed to run [conda search numpy]")},
			errorMsg: "shell: failed to run",
		},
		{
			name:     "missing environment name",
			args:     []string{"list"},
			errorMsg: "accepts 1 arg(s), received 0",
		},
		{
			name:     "invalid format",
			args:     []string{"list", "test_ml", "--format", "invalid"},
			errorMsg: "invalid format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCommand(t, &MockCommander{Results: tt.results, Errors: tt.errs})

			output, err := executeCommand(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
			if tt.wantOutput != "" {
				assert.Contains(t, output, tt.wantOutput)
			}
		})
	}
}

func TestEnvCommandJSON(t *testing.T) {
	setupCommand(t, &MockCommander{Results: []shell.Result{{Stdout: "numpy 1.26.4"}}})

	output, err := executeCommand("list", "test_ml", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, output, `"command": "conda list -n test_ml"`)
	assert.Contains(t, output, `"exit_code": 0`)
}

func TestDryRun(t *testing.T) {
	mock := &MockCommander{}
	setupCommand(t, mock)

	output, err := executeCommand("remove", "test_ml", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "conda env remove -y -n test_ml --all\n", output)
	assert.Empty(t, mock.GetCommands())
}

func TestVerifyCommand(t *testing.T) {
	tmpDir := t.TempDir()
	scenarioPath := filepath.Join(tmpDir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(scenarioPath, []byte(`scenarios:
  - name: test_ml
    packages: [numpy, pandas]
`), 0644))

	listing := shell.Result{Stdout: "numpy 1.26.4\npandas 2.2.2\n"}

	t.Run("passing scenario with report", func(t *testing.T) {
		mock := &MockCommander{Results: []shell.Result{{}, {}, listing, {}}}
		setupCommand(t, mock)
		reportDir := filepath.Join(tmpDir, "reports")

		output, err := executeCommand("verify", "--scenarios", scenarioPath, "--output-dir", reportDir)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"conda create -y -n test_ml",
			"conda install -n test_ml numpy pandas",
			"conda list -n test_ml",
			"conda env remove -y -n test_ml --all",
		}, mock.GetCommands())
		assert.Contains(t, output, "SCENARIO")
		assert.Contains(t, output, "PASS")
		assert.Contains(t, output, "1 passed, 0 failed")
		assert.Contains(t, output, "Report saved to: ")

		files, err := os.ReadDir(reportDir)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.True(t, strings.HasPrefix(files[0].Name(), "verify_report_"))
		assert.True(t, strings.HasSuffix(files[0].Name(), ".yaml"))

		data, err := os.ReadFile(filepath.Join(reportDir, files[0].Name()))
		require.NoError(t, err)
		assert.Contains(t, string(data), "passed: 1")
	})

	t.Run("failing scenario", func(t *testing.T) {
		mock := &MockCommander{Results: []shell.Result{{Stderr: "CondaValueError: prefix already exists", ExitCode: 1}, {}}}
		setupCommand(t, mock)

		output, err := executeCommand("verify", "--scenarios", scenarioPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 1 scenarios failed")
		assert.Contains(t, output, "FAIL")
		assert.Contains(t, output, "failed to create test_ml: CondaValueError: prefix already exists")
		assert.Equal(t, "conda env remove -y -n test_ml --all", mock.GetCommands()[1])
	})

	t.Run("missing scenario file", func(t *testing.T) {
		setupCommand(t, &MockCommander{})

		_, err := executeCommand("verify", "--scenarios", filepath.Join(tmpDir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scenarios: failed to read file")
	})

	t.Run("dry run of default scenarios", func(t *testing.T) {
		mock := &MockCommander{}
		setupCommand(t, mock)

		output, err := executeCommand("verify", "--dry-run")
		require.NoError(t, err)
		assert.Empty(t, mock.GetCommands())
		assert.Contains(t, output, "# test_ml\nconda create -y -n test_ml\n")
		assert.Contains(t, output, "conda create -y -n test_python_3_13 python=3.13")
		assert.Contains(t, output, "conda install -n test_data_science scipy bottleneck")
	})
}

func TestEnvInfoCommand(t *testing.T) {
	t.Run("conda available", func(t *testing.T) {
		mock := &MockCommander{Results: []shell.Result{{Stdout: "conda 24.1.2\n"}}}
		setupCommand(t, mock)
		t.Setenv("CONDA_DEFAULT_ENV", "test_ml")

		output, err := executeCommand("envinfo")
		require.NoError(t, err)
		assert.Equal(t, []string{"conda --version"}, mock.GetCommands())
		assert.Contains(t, output, "os: ")
		assert.Contains(t, output, "conda_executable: conda")
		assert.Contains(t, output, "conda_version: conda 24.1.2")
		assert.Contains(t, output, "active_env: test_ml")
	})

	t.Run("json", func(t *testing.T) {
		setupCommand(t, &MockCommander{Results: []shell.Result{{Stdout: "conda 24.1.2\n"}}})

		output, err := executeCommand("envinfo", "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, output, `"conda_version": "conda 24.1.2"`)
	})

	t.Run("dry run skips conda", func(t *testing.T) {
		mock := &MockCommander{Results: []shell.Result{{Stdout: "conda 24.1.2\n"}}}
		setupCommand(t, mock)

		output, err := executeCommand("envinfo", "--dry-run")
		require.NoError(t, err)
		assert.Empty(t, mock.GetCommands())
		assert.Contains(t, output, "conda_executable: conda")
		assert.NotContains(t, output, "conda_version")
	})

	t.Run("conda missing", func(t *testing.T) {
		setupCommand(t, &MockCommander{Results: []shell.Result{{Stderr: "sh: 1: conda: not found\n", ExitCode: 127}}})

		output, err := executeCommand("envinfo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "errors occurred during environment info collection")
		assert.Contains(t, output, "Summary of errors:")
		assert.Contains(t, output, "conda: version check exited with status 127")
	})
}

func TestRootCommandExecution(t *testing.T) {
	setupCommand(t, &MockCommander{})

	output, err := executeCommand()
	require.NoError(t, err)
	assert.Contains(t, output, "condabox")
	assert.Contains(t, output, "verify")
}
