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

// File: internal/shell/shell.go
// Package shell runs command lines through a system shell and captures
// their standard output, standard error and exit status.
//
// Tokens are joined with single spaces and handed to the shell unescaped,
// so any token containing shell metacharacters is interpreted by the
// shell. Only pass trusted input.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/edespino/condabox/internal/log"
)

// DefaultShell is the interpreter used when RealCommander.Shell is empty.
const DefaultShell = "/bin/sh"

// Result is the captured outcome of one command invocation.
type Result struct {
	Command  string `json:"command" yaml:"command"`
	Stdout   string `json:"stdout" yaml:"stdout"`
	Stderr   string `json:"stderr" yaml:"stderr"`
	ExitCode int    `json:"exit_code" yaml:"exit_code"`
}

// Success reports whether the command exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Commander interface for command execution
type Commander interface {
	Execute(args ...string) (Result, error)
}

// RealCommander executes command lines with "<Shell> -c <line>".
type RealCommander struct {
	// Shell is the interpreter path; DefaultShell when empty.
	Shell string
	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string
}

// Line joins args with single spaces into the command line the shell sees.
func Line(args ...string) string {
	return strings.Join(args, " ")
}

// Execute runs the command line built from args and blocks until it exits.
// A non-zero exit status is reported in Result.ExitCode with a nil error,
// and a shell killed by a signal reports 128+signal the way sh does. An
// error is returned only when the shell could not be started, in which case
// ExitCode is -1.
func (c RealCommander) Execute(args ...string) (Result, error) {
	line := Line(args...)
	log.InfoLog.Printf("Running [%s]", line)

	sh := c.Shell
	if sh == "" {
		sh = DefaultShell
	}

	cmd := exec.Command(sh, "-c", line)
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := Result{Command: line}
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			result.ExitCode = -1
			return result, fmt.Errorf("shell: failed to run [%s]: %w", line, err)
		}
		result.ExitCode = exitCode(exitErr)
	}

	log.DebugLog.Printf("[%s] exited with status %d", line, result.ExitCode)
	return result, nil
}

func exitCode(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return exitErr.ExitCode()
}
