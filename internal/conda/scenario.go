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

// File: internal/conda/scenario.go
package conda

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/edespino/condabox/internal/log"
	"github.com/edespino/condabox/internal/shell"
)

// Scenario describes one create/install/list/remove round trip.
type Scenario struct {
	// Name is the environment to create and remove.
	Name string `json:"name" yaml:"name"`
	// Python pins the runtime version of the new environment when set.
	Python string `json:"python,omitempty" yaml:"python,omitempty"`
	// Packages are installed after creation and must show up in the listing.
	Packages []string `json:"packages" yaml:"packages"`
}

// StepResult records one conda invocation made by a scenario.
type StepResult struct {
	Step   string       `json:"step" yaml:"step"`
	Result shell.Result `json:"result" yaml:"result"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// ScenarioResult is the outcome of RunScenario.
type ScenarioResult struct {
	Scenario Scenario     `json:"scenario" yaml:"scenario"`
	Steps    []StepResult `json:"steps" yaml:"steps"`
	Missing  []string     `json:"missing,omitempty" yaml:"missing,omitempty"`
	Passed   bool         `json:"passed" yaml:"passed"`
	Failure  string       `json:"failure,omitempty" yaml:"failure,omitempty"`
}

// Report aggregates the results of RunScenarios.
type Report struct {
	Results []ScenarioResult `json:"results" yaml:"results"`
	Passed  int              `json:"passed" yaml:"passed"`
	Failed  int              `json:"failed" yaml:"failed"`
}

// OK reports whether every scenario passed.
func (r Report) OK() bool {
	return r.Failed == 0
}

// scenarioFile is the on-disk layout read by LoadScenarios.
type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// DefaultScenarios returns the built-in verification scenarios.
func DefaultScenarios() []Scenario {
	pytestPkgs := []string{"pytest", "pytest-html", "requests"}
	return []Scenario{
		{Name: "test_ml", Packages: []string{"numpy", "pandas"}},
		{Name: "test_data_science", Packages: []string{"scipy", "bottleneck"}},
		{Name: "test_python_3_5", Python: "3.5", Packages: pytestPkgs},
		{Name: "test_python_3_10", Python: "3.10", Packages: pytestPkgs},
		{Name: "test_python_3_13", Python: "3.13", Packages: pytestPkgs},
	}
}

// LoadScenarios reads scenarios from a YAML file of the form
//
//	scenarios:
//	  - name: test_ml
//	    packages: [numpy, pandas]
//	  - name: test_python_3_10
//	    python: "3.10"
//	    packages: [pytest]
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenarios: failed to read file: %w", err)
	}

	var f scenarioFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("scenarios: failed to parse %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("scenarios: no scenarios defined in %s", path)
	}
	return f.Scenarios, nil
}

// MissingPackages returns the entries of pkgs that do not appear in output.
// The comparison is a case-insensitive substring match.
func MissingPackages(output string, pkgs []string) []string {
	lower := strings.ToLower(output)
	var missing []string
	for _, pkg := range pkgs {
		if !strings.Contains(lower, strings.ToLower(pkg)) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

// RunScenario creates the environment without packages, installs the
// scenario packages, lists the environment and checks every package is
// present. The environment is removed afterwards whatever the outcome.
func RunScenario(r *Runner, s Scenario) ScenarioResult {
	res := ScenarioResult{Scenario: s}
	res.Failure = res.runSteps(r)

	out, err := r.RemoveEnv(s.Name)
	res.record("remove", out, err)
	log.InfoLog.Printf("conda remove env output:\n%s", out.Stdout)

	res.Passed = res.Failure == ""
	return res
}

// RunScenarios runs each scenario in order.
func RunScenarios(r *Runner, scenarios []Scenario) Report {
	var report Report
	for _, s := range scenarios {
		res := RunScenario(r, s)
		if res.Passed {
			report.Passed++
		} else {
			report.Failed++
			log.WarningLog.Printf("scenario %s failed: %s", s.Name, res.Failure)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

// runSteps returns an empty string on success and the failure message
// otherwise.
func (res *ScenarioResult) runSteps(r *Runner) string {
	s := res.Scenario

	out, err := r.CreatePythonEnv(s.Name, nil, s.Python)
	res.record("create", out, err)
	log.InfoLog.Printf("conda create env output:\n%s", out.Stdout)
	if msg := failure(out, err); msg != "" {
		return fmt.Sprintf("failed to create %s: %s", s.Name, msg)
	}

	out, err = r.InstallPkgs(s.Name, s.Packages)
	res.record("install", out, err)
	log.InfoLog.Printf("conda install package output:\n%s", out.Stdout)
	if msg := failure(out, err); msg != "" {
		return fmt.Sprintf("failed to install packages [%s] in environment [%s]: %s",
			strings.Join(s.Packages, " "), s.Name, msg)
	}

	out, err = r.ListPkgs(s.Name)
	res.record("list", out, err)
	log.InfoLog.Printf("conda env list packages output:\n%s", out.Stdout)
	if msg := failure(out, err); msg != "" {
		return fmt.Sprintf("failed to list packages for %s: %s", s.Name, msg)
	}

	res.Missing = MissingPackages(out.Stdout, s.Packages)
	if len(res.Missing) > 0 {
		return fmt.Sprintf("%s not found in %s", strings.Join(res.Missing, ", "), s.Name)
	}
	return ""
}

func (res *ScenarioResult) record(step string, out shell.Result, err error) {
	sr := StepResult{Step: step, Result: out}
	if err != nil {
		sr.Error = err.Error()
	}
	res.Steps = append(res.Steps, sr)
}

// failure describes a failed invocation, or returns "" when it succeeded.
func failure(out shell.Result, err error) string {
	if err != nil {
		return err.Error()
	}
	if !out.Success() {
		msg := strings.TrimSpace(out.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", out.ExitCode)
		}
		return msg
	}
	return ""
}
