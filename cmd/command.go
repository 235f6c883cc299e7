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

// File: cmd/command.go
package cmd

import (
	"os"

	"github.com/edespino/condabox/internal/conda"
	"github.com/edespino/condabox/internal/shell"
)

// cmdExecutor overrides the shell commander built from flags when set.
var cmdExecutor shell.Commander

// SetCommander allows changing the commander for tests
func SetCommander(c shell.Commander) {
	cmdExecutor = c
}

// condaExecutable resolves the conda binary: --conda, then $CONDA_EXE,
// then "conda" from PATH.
func condaExecutable() string {
	if condaFlag != "" {
		return condaFlag
	}
	if exe := os.Getenv("CONDA_EXE"); exe != "" {
		return exe
	}
	return conda.DefaultExecutable
}

// newCommander returns the commander every subcommand runs conda through.
func newCommander() shell.Commander {
	if cmdExecutor != nil {
		return cmdExecutor
	}
	c := shell.RealCommander{Shell: shellFlag}
	if yesFlag {
		c.Env = []string{"CONDA_ALWAYS_YES=true"}
	}
	return c
}

func newRunner() *conda.Runner {
	return &conda.Runner{
		Executable: condaExecutable(),
		Commander:  newCommander(),
	}
}
