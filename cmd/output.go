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

// File: cmd/output.go
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

// marshalOutput renders v in the format selected by --format.
func marshalOutput(v interface{}) ([]byte, error) {
	if formatFlag == "json" {
		return json.MarshalIndent(v, "", "  ")
	}
	return yaml.Marshal(v)
}

// writeOutput renders v to w in the selected format.
func writeOutput(w io.Writer, v interface{}) error {
	data, err := marshalOutput(v)
	if err != nil {
		return fmt.Errorf("output: failed to generate: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// saveReport writes v to <dir>/<prefix>_<timestamp>.<format> and returns
// the file name.
func saveReport(w io.Writer, dir, prefix string, v interface{}) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, timestamp, formatFlag))

	data, err := marshalOutput(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	fmt.Fprintf(w, "Report saved to: %s\n", filename)
	return filename, nil
}
