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

// File: internal/log/log.go
// Package log provides the leveled loggers shared by condabox.
//
// All loggers discard their output until Initialize is called, so the
// shell and conda packages can log freely when used as a library.
package log

import (
	"io"
	"log"
	"os"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	DebugLog   *log.Logger
)

var debugEnabled = os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"

func init() {
	setOutput(io.Discard, io.Discard, io.Discard)
}

// Initialize points the loggers at w. Warnings are always
// written; info is written only when verbose is set, debug only when the
// DEBUG environment variable is "true" or "1".
func Initialize(w io.Writer, verbose bool) {
	info := io.Discard
	if verbose {
		info = w
	}
	debug := io.Discard
	if debugEnabled {
		debug = w
	}
	setOutput(w, info, debug)
}

func setOutput(w, info, debug io.Writer) {
	InfoLog = log.New(info, "INFO: ", log.Ldate|log.Ltime|log.Lmsgprefix)
	WarningLog = log.New(w, "WARNING: ", log.Ldate|log.Ltime|log.Lmsgprefix)
	DebugLog = log.New(debug, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile|log.Lmsgprefix)
}
