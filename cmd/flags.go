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

// File: cmd/flags.go
package cmd

import (
	"fmt"
)

// Shared command flags
var (
	formatFlag  string // Output format (yaml/json)
	condaFlag   string // conda executable; see condaExecutable
	shellFlag   string // shell interpreting the command lines
	verboseFlag bool   // info logging to stderr
	yesFlag     bool   // export CONDA_ALWAYS_YES to conda
	dryRunFlag  bool   // print command lines instead of running them
)

// validateFormat checks if the provided format is either "json" or "yaml"
func validateFormat(format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("invalid format: %s. Valid options are 'json' or 'yaml'", format)
	}
	return nil
}

// initSharedFlags initializes flags that are shared across multiple commands
func initSharedFlags() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&formatFlag, "format", "yaml", "Output format: yaml or json")
	pf.StringVar(&condaFlag, "conda", "", "conda executable (default $CONDA_EXE, then conda)")
	pf.StringVar(&shellFlag, "shell", "/bin/sh", "Shell used to run conda command lines")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "Log every command line to stderr")
	pf.BoolVar(&yesFlag, "yes", true, "Answer yes to every conda prompt (sets CONDA_ALWAYS_YES)")
	pf.BoolVar(&dryRunFlag, "dry-run", false, "Print the conda command lines without running them")
}
