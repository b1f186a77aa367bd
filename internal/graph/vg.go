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

// Package graph wraps the vg pangenome toolkit.  All graph algorithms
// (indexing, alignment, subgraph extraction) run inside the external vg
// executable; this package only assembles invocations and reads back the
// small outputs graphvar needs.
package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/tools"
)

// Executable is the name of the vg binary expected on PATH.
const Executable = "vg"

// Toolkit wraps one vg executable.
type Toolkit struct {
	runner tools.Runner
	vg     string
}

// New returns a Toolkit that runs the vg binary found on PATH.
func New(runner tools.Runner) *Toolkit {
	return &Toolkit{runner: runner, vg: Executable}
}

// NewWithPath returns a Toolkit that runs a specific vg binary.
func NewWithPath(runner tools.Runner, path string) *Toolkit {
	return &Toolkit{runner: runner, vg: path}
}

// Stats summarizes the size of a graph.
type Stats struct {
	Nodes, Edges int64
	// Length is the total sequence length over all nodes, in base pairs.
	Length int64
}

// Stats reports node, edge and sequence-length counts for the graph file.
func (t *Toolkit) Stats(ctx context.Context, graph string) (Stats, error) {
	var out bytes.Buffer
	cmd := tools.Command{Name: t.vg, Args: []string{"stats", "-z", "-l", graph}, Stdout: &out}
	if err := t.runner.Run(ctx, cmd); err != nil {
		return Stats{}, fmt.Errorf("vg stats: %v", err)
	}
	return parseStats(out.String())
}

// parseStats reads the tab-separated key/value lines emitted by vg stats.
func parseStats(output string) (Stats, error) {
	var stats Stats
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return Stats{}, fmt.Errorf("parsing stat %q: %v", line, err)
		}
		switch fields[0] {
		case "nodes":
			stats.Nodes = n
		case "edges":
			stats.Edges = n
		case "length":
			stats.Length = n
		}
	}
	return stats, nil
}

// AutoindexOptions control index construction for the giraffe mapper.
type AutoindexOptions struct {
	// Graph is the input pangenome, typically a GFA file.
	Graph string
	// Prefix is the output prefix for the generated index files.
	Prefix string
	Threads int
}

// Autoindex builds the .gbz, .min and .dist indexes giraffe needs.
func (t *Toolkit) Autoindex(ctx context.Context, opts AutoindexOptions) error {
	if opts.Graph == "" || opts.Prefix == "" {
		return errors.New("vg autoindex: graph and prefix are required")
	}
	args := []string{"autoindex", "--workflow", "giraffe", "-g", opts.Graph, "-p", opts.Prefix}
	if opts.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(opts.Threads))
	}
	if err := t.runner.Run(ctx, tools.Command{Name: t.vg, Args: args}); err != nil {
		return fmt.Errorf("vg autoindex: %v", err)
	}
	return nil
}

// GiraffeOptions control a short-read mapping run.
type GiraffeOptions struct {
	// Index is the .gbz index produced by Autoindex.
	Index string
	// Reads1 and Reads2 are FASTQ files; Reads2 may be empty for
	// single-end data.
	Reads1, Reads2 string
	// Output receives the surjected BAM.
	Output  string
	Threads int
}

// Giraffe maps reads against the graph and writes a surjected BAM that
// downstream variant callers can consume.
func (t *Toolkit) Giraffe(ctx context.Context, opts GiraffeOptions) error {
	if opts.Index == "" || opts.Reads1 == "" || opts.Output == "" {
		return errors.New("vg giraffe: index, reads and output are required")
	}
	args := []string{"giraffe", "-Z", opts.Index, "-f", opts.Reads1}
	if opts.Reads2 != "" {
		args = append(args, "-f", opts.Reads2)
	}
	args = append(args, "--output-format", "BAM")
	if opts.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(opts.Threads))
	}
	if err := t.runToFile(ctx, opts.Output, args); err != nil {
		return fmt.Errorf("vg giraffe: %v", err)
	}
	return nil
}

// Chunk extracts the subgraph overlapping region into out.
func (t *Toolkit) Chunk(ctx context.Context, graph string, region genomics.Region, out string) error {
	if graph == "" || out == "" {
		return errors.New("vg chunk: graph and output are required")
	}
	args := []string{"chunk", "-x", graph, "-p", region.String()}
	if err := t.runToFile(ctx, out, args); err != nil {
		return fmt.Errorf("vg chunk: %v", err)
	}
	return nil
}

// ViewDot converts a graph to Graphviz dot form for rendering.
func (t *Toolkit) ViewDot(ctx context.Context, graph, out string) error {
	if graph == "" || out == "" {
		return errors.New("vg view: graph and output are required")
	}
	args := []string{"view", "-dp", graph}
	if err := t.runToFile(ctx, out, args); err != nil {
		return fmt.Errorf("vg view: %v", err)
	}
	return nil
}

// runToFile runs vg with the tool's standard output captured into out.  A
// partially written file is removed on failure.
func (t *Toolkit) runToFile(ctx context.Context, out string, args []string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %v", out, err)
	}
	if err := t.runner.Run(ctx, tools.Command{Name: t.vg, Args: args, Stdout: f}); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}
