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

// Package caller wraps the DeepVariant small-variant caller.  DeepVariant
// ships as a container image, so invocations go through a container
// runtime with the work directory bind mounted.
package caller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/tools"
)

// DefaultImage is the caller image used when none is configured.
const DefaultImage = "google/deepvariant:1.6.1"

// mountPoint is where the work directory appears inside the container.
const mountPoint = "/data"

// DeepVariant invokes the DeepVariant caller.
type DeepVariant struct {
	runner  tools.Runner
	runtime string
	image   string
}

// New returns a DeepVariant wrapper using the docker runtime and image.
// Empty strings select the defaults.
func New(runner tools.Runner, runtime, image string) *DeepVariant {
	if runtime == "" {
		runtime = "docker"
	}
	if image == "" {
		image = DefaultImage
	}
	return &DeepVariant{runner: runner, runtime: runtime, image: image}
}

// CallOptions describe one variant calling run.  Reference, Reads and
// OutputVCF are paths relative to WorkDir, which is bind mounted into the
// caller's container.
type CallOptions struct {
	// Model selects the DeepVariant model type, e.g. "WGS".
	Model     string
	WorkDir   string
	Reference string
	Reads     string
	OutputVCF string
	// Region optionally restricts calling to one region.
	Region genomics.Region
	Shards int
}

// Call runs the variant caller and leaves a bgzip-compressed VCF (plus its
// tabix index, which DeepVariant writes alongside) under WorkDir.
func (d *DeepVariant) Call(ctx context.Context, opts CallOptions) error {
	if opts.WorkDir == "" || opts.Reference == "" || opts.Reads == "" || opts.OutputVCF == "" {
		return errors.New("deepvariant: workdir, reference, reads and output are required")
	}
	model := opts.Model
	if model == "" {
		model = "WGS"
	}

	args := []string{
		"run", "-v", opts.WorkDir + ":" + mountPoint, d.image,
		"/opt/deepvariant/bin/run_deepvariant",
		"--model_type", model,
		"--ref", mountPoint + "/" + opts.Reference,
		"--reads", mountPoint + "/" + opts.Reads,
		"--output_vcf", mountPoint + "/" + opts.OutputVCF,
	}
	if opts.Region != (genomics.Region{}) {
		args = append(args, "--regions", opts.Region.String())
	}
	if opts.Shards > 0 {
		args = append(args, "--num_shards", strconv.Itoa(opts.Shards))
	}

	if err := d.runner.Run(ctx, tools.Command{Name: d.runtime, Args: args}); err != nil {
		return fmt.Errorf("deepvariant: %v", err)
	}
	return nil
}
