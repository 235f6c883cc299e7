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

// Description:
// This file is part of the condabox toolbox. It implements the `envinfo` command
// to gather and display information about the host and its conda installation.
//
// Features:
// - Concurrent data collection.
// - Flexible output formats: YAML and JSON.
// - Host information such as OS, architecture, hostname and CPU count.
// - conda information:
//   * the resolved conda executable
//   * conda version from conda --version
//   * the active environment from CONDA_DEFAULT_ENV and CONDA_PREFIX
//
// Usage:
// - Example: `condabox envinfo --format=json`
//
// Note:
// - Errors are collected and printed as a summary before the command fails.
//

// Package cmd provides command-line interface functionality for condabox.
package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/edespino/condabox/internal/conda"
)

// EnvInfo contains host and conda information collected by the envinfo command.
type EnvInfo struct {
	// OS is the operating system name.
	OS string `json:"os" yaml:"os"`

	// Architecture is the system's CPU architecture.
	Architecture string `json:"architecture" yaml:"architecture"`

	// Hostname is the system's network name.
	Hostname string `json:"hostname" yaml:"hostname"`

	// CPUs is the number of CPU cores available in the system.
	CPUs int `json:"cpus" yaml:"cpus"`

	// CondaExecutable is the conda binary condabox invokes.
	CondaExecutable string `json:"conda_executable" yaml:"conda_executable"`

	// CondaVersion is the output of conda --version.
	CondaVersion string `json:"conda_version,omitempty" yaml:"conda_version,omitempty"`

	// ActiveEnv is the environment named by CONDA_DEFAULT_ENV.
	// This field is omitted if no environment is active.
	ActiveEnv string `json:"active_env,omitempty" yaml:"active_env,omitempty"`

	// CondaPrefix is the path of the active environment from CONDA_PREFIX.
	// This field is omitted if no environment is active.
	CondaPrefix string `json:"conda_prefix,omitempty" yaml:"conda_prefix,omitempty"`
}

// envinfoCmd represents the envinfo command that gathers and displays host
// and conda information.
var envinfoCmd = &cobra.Command{
	Use:   "envinfo",
	Short: "Display host and conda information",
	Long:  `Gather and display host information and details of the conda installation.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunEnvInfo(cmd.OutOrStdout())
	},
}

// getHostname returns the system's network hostname.
func getHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("hostname: failed to retrieve hostname: %w", err)
	}
	return hostname, nil
}

// getCondaVersion runs conda --version through r.
// Returns an error if conda cannot be run or exits non-zero.
func getCondaVersion(r *conda.Runner) (string, error) {
	result, err := r.Version()
	if err != nil {
		return "", fmt.Errorf("conda: failed to execute version check: %w", err)
	}
	if !result.Success() {
		return "", fmt.Errorf("conda: version check exited with status %d: %s",
			result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// RunEnvInfo gathers host and conda information concurrently and writes it
// to out in the format selected by --format. Collection errors are printed
// as a summary and make the command fail. With --dry-run the conda version
// is left out.
func RunEnvInfo(out io.Writer) error {
	if err := validateFormat(formatFlag); err != nil {
		return err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	r := newRunner()
	info := EnvInfo{
		OS:              runtime.GOOS,
		Architecture:    runtime.GOARCH,
		CPUs:            runtime.NumCPU(),
		CondaExecutable: r.Executable,
		ActiveEnv:       os.Getenv("CONDA_DEFAULT_ENV"),
		CondaPrefix:     os.Getenv("CONDA_PREFIX"),
	}
	errs := make([]error, 0)

	wg.Add(1)
	go func() {
		defer wg.Done()
		hostname, err := getHostname()
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
			return
		}
		info.Hostname = hostname
	}()
	// conda itself is not run under --dry-run.
	if !dryRunFlag {
		wg.Add(1)
		go func() {
			defer wg.Done()
			version, err := getCondaVersion(r)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			info.CondaVersion = version
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		fmt.Fprintln(out, "\nSummary of errors:")
		for _, err := range errs {
			fmt.Fprintln(out, "-", err)
		}
		return fmt.Errorf("errors occurred during environment info collection")
	}

	return writeOutput(out, info)
}

func init() {
	rootCmd.AddCommand(envinfoCmd)
}
