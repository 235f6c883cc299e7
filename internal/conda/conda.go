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

// File: internal/conda/conda.go
// Package conda wraps the conda command for common environment and package
// operations.
//
// Every method builds a conda argument list and hands it to a
// shell.Commander; results are returned unmodified. Inputs are not
// validated: an empty environment name, an empty package list or a
// malformed version is passed through and conda decides.
package conda

import (
	"github.com/edespino/condabox/internal/shell"
)

// DefaultExecutable is the conda binary used by New.
const DefaultExecutable = "conda"

// Runner issues conda commands through a Commander.
type Runner struct {
	Executable string
	Commander  shell.Commander
}

// New returns a Runner invoking DefaultExecutable through c.
func New(c shell.Commander) *Runner {
	return &Runner{
		Executable: DefaultExecutable,
		Commander:  c,
	}
}

func (r *Runner) executable() string {
	if r.Executable == "" {
		return DefaultExecutable
	}
	return r.Executable
}

// CreateArgs builds "conda create -y -n <name> <pkgs...> [python=<version>]".
// The python token is added only when version is non-empty.
func (r *Runner) CreateArgs(name string, pkgs []string, version string) []string {
	args := append([]string{r.executable(), "create", "-y", "-n", name}, pkgs...)
	if version != "" {
		args = append(args, "python="+version)
	}
	return args
}

// ActivateArgs builds "conda activate <name>".
func (r *Runner) ActivateArgs(name string) []string {
	return []string{r.executable(), "activate", name}
}

// InstallArgs builds "conda install -n <name> <pkgs...>".
func (r *Runner) InstallArgs(name string, pkgs []string) []string {
	return append([]string{r.executable(), "install", "-n", name}, pkgs...)
}

// SearchArgs builds "conda search <pkg>".
func (r *Runner) SearchArgs(pkg string) []string {
	return []string{r.executable(), "search", pkg}
}

// ListArgs builds "conda list -n <name>".
func (r *Runner) ListArgs(name string) []string {
	return []string{r.executable(), "list", "-n", name}
}

// RemoveArgs builds "conda env remove -y -n <name> --all".
func (r *Runner) RemoveArgs(name string) []string {
	return []string{r.executable(), "env", "remove", "-y", "-n", name, "--all"}
}

// VersionArgs builds "conda --version".
func (r *Runner) VersionArgs() []string {
	return []string{r.executable(), "--version"}
}

// CreateEnv creates environment name with the given packages.
func (r *Runner) CreateEnv(name string, pkgs []string) (shell.Result, error) {
	return r.Commander.Execute(r.CreateArgs(name, pkgs, "")...)
}

// CreatePythonEnv creates environment name with the given packages, pinned
// to the python major.minor version.
func (r *Runner) CreatePythonEnv(name string, pkgs []string, version string) (shell.Result, error) {
	return r.Commander.Execute(r.CreateArgs(name, pkgs, version)...)
}

// ActivateEnv activates environment name. Outside an initialized
// interactive shell conda normally refuses; the result is returned as-is.
func (r *Runner) ActivateEnv(name string) (shell.Result, error) {
	return r.Commander.Execute(r.ActivateArgs(name)...)
}

// InstallPkgs installs pkgs into environment name.
func (r *Runner) InstallPkgs(name string, pkgs []string) (shell.Result, error) {
	return r.Commander.Execute(r.InstallArgs(name, pkgs)...)
}

// SearchPkg searches the configured channels for pkg.
func (r *Runner) SearchPkg(pkg string) (shell.Result, error) {
	return r.Commander.Execute(r.SearchArgs(pkg)...)
}

// ListPkgs lists the packages installed in environment name.
func (r *Runner) ListPkgs(name string) (shell.Result, error) {
	return r.Commander.Execute(r.ListArgs(name)...)
}

// RemoveEnv force-removes environment name and everything in it.
func (r *Runner) RemoveEnv(name string) (shell.Result, error) {
	return r.Commander.Execute(r.RemoveArgs(name)...)
}

// Version runs "conda --version".
func (r *Runner) Version() (shell.Result, error) {
	return r.Commander.Execute(r.VersionArgs()...)
}
