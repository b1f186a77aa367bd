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

// Package workflow executes ordered analysis steps with resume semantics.
package workflow

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
)

// Step is one unit of a workflow run.
type Step struct {
	Name string
	// Outputs lists the files the step produces.  A step whose outputs
	// all exist already is skipped, which is what lets an interrupted run
	// be resumed.
	Outputs []string
	Run     func(ctx context.Context) error
}

// Engine executes steps sequentially.  Workflows here are deliberately
// single-threaded: every step shells out to tools that saturate the machine
// on their own.
type Engine struct {
	logf func(format string, args ...interface{})
}

// New returns an Engine that logs through the standard logger.
func New() *Engine {
	return &Engine{logf: log.Printf}
}

// Execute runs the steps in order.  Each invocation is tagged with a fresh
// run ID in the log output.  The first failing step aborts the run.
func (e *Engine) Execute(ctx context.Context, steps []Step) error {
	run := uuid.New()
	e.logf("run %s: starting %d steps", run, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if outputsExist(step.Outputs) {
			e.logf("run %s: [%d/%d] %s: outputs up to date, skipping", run, i+1, len(steps), step.Name)
			continue
		}
		e.logf("run %s: [%d/%d] %s", run, i+1, len(steps), step.Name)
		if err := step.Run(ctx); err != nil {
			return fmt.Errorf("step %s: %v", step.Name, err)
		}
	}

	e.logf("run %s: complete", run)
	return nil
}

func outputsExist(outputs []string) bool {
	if len(outputs) == 0 {
		return false
	}
	for _, output := range outputs {
		if _, err := os.Stat(output); err != nil {
			return false
		}
	}
	return true
}
