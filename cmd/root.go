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

// File: root.go
// Package: cmd
//
// Description:
// This file contains the entry point and base configuration for the `condabox` CLI.
// It defines the root command (`rootCmd`) that acts as the main command for the
// application and manages subcommands like `create`, `verify` and `envinfo`.
// The root command also owns the application-wide flags.
//
// Usage:
// - Run the `condabox` command without any arguments to see the help message:
//   `./condabox`
//
// Authors:
// - Cloudberry Open Source Contributors

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/edespino/condabox/internal/log"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "condabox",
	Short: "Create, inspect and tear down conda environments",
	Long: `The condabox CLI drives the conda command to create, inspect and
remove isolated environments, and verifies a conda installation by running
create/install/list/remove scenarios end to end.

Examples:
  - Create an environment pinned to python 3.10:
    ./condabox create test_python_3_10 --python 3.10

  - Install packages into it:
    ./condabox install test_python_3_10 pytest requests

  - Run the built-in verification scenarios:
    ./condabox verify --format json`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Initialize(cmd.ErrOrStderr(), verboseFlag)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This function is called by main.main() to start the application.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	initSharedFlags()
}
