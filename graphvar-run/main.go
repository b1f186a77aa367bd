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

// This binary runs the pangenome analysis workflow end to end: it stages
// inputs, indexes the graph, maps reads with vg giraffe, calls variants
// with DeepVariant, locates the first homozygous-alternate variant in the
// region of interest, and extracts and renders the subgraph around it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"

	"github.com/pangenomics/graphvar/internal/caller"
	"github.com/pangenomics/graphvar/internal/fetch"
	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/graph"
	"github.com/pangenomics/graphvar/internal/render"
	"github.com/pangenomics/graphvar/internal/tabix"
	"github.com/pangenomics/graphvar/internal/tools"
	"github.com/pangenomics/graphvar/internal/variants"
	"github.com/pangenomics/graphvar/internal/workflow"
)

var (
	graphInput = flag.String("graph", "", "pangenome graph (GFA), a local path or gs:// URL")
	reads1     = flag.String("reads1", "", "first FASTQ of the read pair, a local path or gs:// URL")
	reads2     = flag.String("reads2", "", "second FASTQ of the read pair (optional)")
	reference  = flag.String("reference", "", "linear reference FASTA of the slice, inside (or staged into) the work directory")
	workDir    = flag.String("workdir", ".", "directory that receives all intermediate and final outputs")

	contig = flag.String("contig", "", "contig name of the local slice")
	offset = flag.Uint("offset", 0, "whole-genome position at which the slice starts")
	start  = flag.Uint("start", 0, "whole-genome start of the region of interest")
	end    = flag.Uint("end", 0, "whole-genome end of the region of interest")

	runtimeName = flag.String("runtime", "docker", "container runtime for the variant caller")
	image       = flag.String("image", caller.DefaultImage, "variant caller image")
	threads     = flag.Int("threads", 4, "worker threads for mapping and calling")

	token      = flag.String("token", "", "OAuth2 bearer token for non-public input buckets")
	cpuProfile = flag.Bool("cpu_profile", false, "write a CPU profile into the work directory")
)

func main() {
	flag.Parse()

	if *graphInput == "" || *reads1 == "" || *reference == "" || *contig == "" {
		log.Fatalf("You must specify -graph, -reads1, -reference and -contig.")
	}
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*workDir)).Stop()
	}

	if err := tools.Check(graph.Executable, *runtimeName, render.Executable); err != nil {
		log.Fatalf("Dependency check failed: %v", err)
	}

	ctx := context.Background()
	runner := tools.ExecRunner{}
	vg := graph.New(runner)
	dv := caller.New(runner, *runtimeName, *image)
	slice := genomics.Slice{Contig: *contig, Offset: uint32(*offset)}

	graphPath := staged(*graphInput)
	reads1Path := staged(*reads1)
	reads2Path := staged(*reads2)
	refPath := staged(*reference)

	var (
		prefix   = filepath.Join(*workDir, "pan")
		index    = prefix + ".giraffe.gbz"
		mapped   = filepath.Join(*workDir, "mapped.bam")
		calls    = filepath.Join(*workDir, "calls.vcf.gz")
		chunk    = filepath.Join(*workDir, "chunk.vg")
		chunkDot = filepath.Join(*workDir, "chunk.dot")
		chunkPNG = filepath.Join(*workDir, "chunk.png")
	)

	// The located site flows from the scan step into the chunk step.
	var site *variants.Record

	steps := []workflow.Step{
		{
			Name:    "stage inputs",
			Outputs: stagedOutputs(),
			Run: func(ctx context.Context) error {
				return stageInputs(ctx)
			},
		},
		{
			Name:    "index graph",
			Outputs: []string{index},
			Run: func(ctx context.Context) error {
				opts := graph.AutoindexOptions{Graph: graphPath, Prefix: prefix, Threads: *threads}
				return vg.Autoindex(ctx, opts)
			},
		},
		{
			Name: "graph stats",
			Run: func(ctx context.Context) error {
				stats, err := vg.Stats(ctx, index)
				if err != nil {
					return err
				}
				log.Printf("Graph: %d nodes, %d edges, %d bp", stats.Nodes, stats.Edges, stats.Length)
				return nil
			},
		},
		{
			Name:    "map reads",
			Outputs: []string{mapped},
			Run: func(ctx context.Context) error {
				opts := graph.GiraffeOptions{
					Index:   index,
					Reads1:  reads1Path,
					Reads2:  reads2Path,
					Output:  mapped,
					Threads: *threads,
				}
				return vg.Giraffe(ctx, opts)
			},
		},
		{
			Name:    "call variants",
			Outputs: []string{calls},
			Run: func(ctx context.Context) error {
				opts := caller.CallOptions{
					WorkDir:   *workDir,
					Reference: filepath.Base(refPath),
					Reads:     filepath.Base(mapped),
					OutputVCF: filepath.Base(calls),
					Shards:    *threads,
				}
				return dv.Call(ctx, opts)
			},
		},
		{
			Name: "locate variant",
			Run: func(ctx context.Context) error {
				region := slice.TranslateRegion(uint32(*start), uint32(*end))
				log.Printf("Region of interest in slice coordinates: %s", region)

				stream, err := tabix.Query(calls, region)
				if err != nil {
					return err
				}
				defer stream.Close()

				site, err = variants.FirstHomozygousAlt(stream)
				if err != nil {
					return err
				}
				log.Printf("Homozygous-alt site: %s genotype %s", site, site.Genotypes[0])
				return nil
			},
		},
		{
			Name: "extract subgraph",
			Run: func(ctx context.Context) error {
				region := genomics.Region{Contig: site.Contig, Start: site.Start, End: site.Start}
				return vg.Chunk(ctx, index, region, chunk)
			},
		},
		{
			Name:    "render subgraph",
			Outputs: []string{chunkPNG},
			Run: func(ctx context.Context) error {
				if err := vg.ViewDot(ctx, chunk, chunkDot); err != nil {
					return err
				}
				return render.New(runner).Render(ctx, chunkDot, "png", chunkPNG)
			},
		},
	}

	if err := workflow.New().Execute(ctx, steps); err != nil {
		log.Fatalf("Workflow failed: %v", err)
	}
	fmt.Printf("Subgraph image: %s\n", chunkPNG)
}

// staged maps a gs:// input URL to its local path under the work directory;
// local paths pass through unchanged.
func staged(input string) string {
	if input == "" || !strings.HasPrefix(input, "gs://") {
		return input
	}
	return filepath.Join(*workDir, path.Base(input))
}

func remoteInputs() []string {
	var remote []string
	for _, input := range []string{*graphInput, *reads1, *reads2, *reference} {
		if strings.HasPrefix(input, "gs://") {
			remote = append(remote, input)
		}
	}
	return remote
}

func stagedOutputs() []string {
	var outputs []string
	for _, input := range remoteInputs() {
		outputs = append(outputs, staged(input))
	}
	return outputs
}

func stageInputs(ctx context.Context) error {
	remote := remoteInputs()
	if len(remote) == 0 {
		return nil
	}

	var store fetch.Store
	var err error
	if *token != "" {
		store, err = fetch.NewStoreFromToken(ctx, *token)
	} else {
		store, err = fetch.NewPublicStore()
	}
	if err != nil {
		return err
	}

	for _, input := range remote {
		if err := fetch.Fetch(ctx, store, input, staged(input)); err != nil {
			return err
		}
	}
	return nil
}
