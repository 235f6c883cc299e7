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

// File: cmd/env.go
//
// Description:
// Subcommands mapping one-to-one onto conda environment operations:
// create, activate, install, search, list and remove. Each prints the
// captured stdout, stderr and exit status of the conda invocation in the
// selected --format and fails when conda exits non-zero.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edespino/condabox/internal/shell"
)

var pythonFlag string

var createCmd = &cobra.Command{
	Use:   "create NAME [PACKAGE...]",
	Short: "Create a conda environment",
	Long: `Create a conda environment with the given packages, optionally pinned
to a python version:
  condabox create test_ml numpy pandas
  condabox create test_python_3_10 --python 3.10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		name, pkgs := args[0], args[1:]
		return runConda(cmd, r.CreateArgs(name, pkgs, pythonFlag), func() (shell.Result, error) {
			return r.CreatePythonEnv(name, pkgs, pythonFlag)
		})
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate NAME",
	Short: "Activate a conda environment",
	Long: `Run "conda activate NAME" in a child shell. conda usually rejects this
unless the shell has been initialized for conda; the result is reported as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		return runConda(cmd, r.ActivateArgs(args[0]), func() (shell.Result, error) {
			return r.ActivateEnv(args[0])
		})
	},
}

var installCmd = &cobra.Command{
	Use:   "install NAME [PACKAGE...]",
	Short: "Install packages into a conda environment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		name, pkgs := args[0], args[1:]
		return runConda(cmd, r.InstallArgs(name, pkgs), func() (shell.Result, error) {
			return r.InstallPkgs(name, pkgs)
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search PACKAGE",
	Short: "Search the configured channels for a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		return runConda(cmd, r.SearchArgs(args[0]), func() (shell.Result, error) {
			return r.SearchPkg(args[0])
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list NAME",
	Short: "List the packages installed in a conda environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		return runConda(cmd, r.ListArgs(args[0]), func() (shell.Result, error) {
			return r.ListPkgs(args[0])
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove NAME",
	Short: "Remove a conda environment and everything installed in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newRunner()
		return runConda(cmd, r.RemoveArgs(args[0]), func() (shell.Result, error) {
			return r.RemoveEnv(args[0])
		})
	},
}

// runConda prints the command line under --dry-run, otherwise runs it and
// prints the result.
func runConda(cmd *cobra.Command, args []string, run func() (shell.Result, error)) error {
	if err := validateFormat(formatFlag); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if dryRunFlag {
		fmt.Fprintln(out, shell.Line(args...))
		return nil
	}

	result, err := run()
	if err != nil {
		return err
	}
	if err := writeOutput(out, result); err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("conda exited with status %d", result.ExitCode)
	}
	return nil
}

func init() {
	createCmd.Flags().StringVar(&pythonFlag, "python", "", "Pin the environment to this python version, e.g. 3.10")

	rootCmd.AddCommand(createCmd, activateCmd, installCmd, searchCmd, listCmd, removeCmd)
}
