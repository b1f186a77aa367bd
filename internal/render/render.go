// Copyright 2025 The graphvar Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render turns Graphviz dot files into images.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pangenomics/graphvar/internal/tools"
)

// Executable is the name of the Graphviz layout binary expected on PATH.
const Executable = "dot"

// Dot renders dot files with Graphviz.
type Dot struct {
	runner tools.Runner
	dot    string
}

// New returns a Dot renderer using the Graphviz binary found on PATH.
func New(runner tools.Runner) *Dot {
	return &Dot{runner: runner, dot: Executable}
}

// Render lays out the graph in input and writes an image in the given
// format (png, svg, ...) to out.
func (d *Dot) Render(ctx context.Context, input, format, out string) error {
	if input == "" || format == "" || out == "" {
		return errors.New("render: input, format and output are required")
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %v", out, err)
	}
	cmd := tools.Command{Name: d.dot, Args: []string{"-T" + format, input}, Stdout: f}
	if err := d.runner.Run(ctx, cmd); err != nil {
		f.Close()
		os.Remove(out)
		return fmt.Errorf("rendering %s: %v", input, err)
	}
	return f.Close()
}
