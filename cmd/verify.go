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

// File: cmd/verify.go
package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/edespino/condabox/internal/conda"
	"github.com/edespino/condabox/internal/shell"
)

var (
	scenariosFile string
	outputDir     string
)

// verifyCmd runs create/install/list/remove scenarios against conda
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify conda by creating, checking and removing environments",
	Long: `Run verification scenarios against the local conda installation.
Each scenario creates an environment (optionally pinned to a python version),
installs packages into it, checks that every package shows up in
"conda list", and removes the environment again whatever the outcome.

Without --scenarios the built-in scenarios are used. A scenario file looks like:
  scenarios:
    - name: test_ml
      packages: [numpy, pandas]
    - name: test_python_3_10
      python: "3.10"
      packages: [pytest, pytest-html, requests]`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&scenariosFile, "scenarios", "", "YAML file with the scenarios to run")
	verifyCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory to store the full report in")
}

func runVerify(out io.Writer) error {
	if err := validateFormat(formatFlag); err != nil {
		return err
	}

	scenarios := conda.DefaultScenarios()
	if scenariosFile != "" {
		loaded, err := conda.LoadScenarios(scenariosFile)
		if err != nil {
			return err
		}
		scenarios = loaded
	}

	r := newRunner()
	if dryRunFlag {
		printPlan(out, r, scenarios)
		return nil
	}

	report := conda.RunScenarios(r, scenarios)
	printSummary(out, report)

	if outputDir != "" {
		if _, err := saveReport(out, outputDir, "verify_report", report); err != nil {
			return err
		}
	}

	if !report.OK() {
		return fmt.Errorf("%d of %d scenarios failed", report.Failed, len(report.Results))
	}
	return nil
}

// printPlan lists the command lines each scenario would run.
func printPlan(out io.Writer, r *conda.Runner, scenarios []conda.Scenario) {
	for _, s := range scenarios {
		fmt.Fprintf(out, "# %s\n", s.Name)
		fmt.Fprintln(out, shell.Line(r.CreateArgs(s.Name, nil, s.Python)...))
		fmt.Fprintln(out, shell.Line(r.InstallArgs(s.Name, s.Packages)...))
		fmt.Fprintln(out, shell.Line(r.ListArgs(s.Name)...))
		fmt.Fprintln(out, shell.Line(r.RemoveArgs(s.Name)...))
	}
}

// printSummary writes one row per scenario followed by the totals.
func printSummary(out io.Writer, report conda.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tPYTHON\tPACKAGES\tRESULT\tDETAIL")
	for _, res := range report.Results {
		python := res.Scenario.Python
		if python == "" {
			python = "-"
		}
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			res.Scenario.Name,
			python,
			strings.Join(res.Scenario.Packages, ","),
			status,
			firstLine(res.Failure))
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d passed, %d failed\n", report.Passed, report.Failed)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
