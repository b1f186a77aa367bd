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

package caller

import (
	"context"
	"strings"
	"testing"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/tools"
)

type fakeRunner struct {
	commands []tools.Command
}

func (r *fakeRunner) Run(ctx context.Context, cmd tools.Command) error {
	r.commands = append(r.commands, cmd)
	return nil
}

func TestCall(t *testing.T) {
	runner := &fakeRunner{}
	dv := New(runner, "", "")

	err := dv.Call(context.Background(), CallOptions{
		WorkDir:   "/work",
		Reference: "slice.fa",
		Reads:     "mapped.bam",
		OutputVCF: "calls.vcf.gz",
		Region:    genomics.Region{Contig: "chr4", Start: 355036, End: 355222},
		Shards:    8,
	})
	if err != nil {
		t.Fatalf("Call() returned error: %v", err)
	}

	if len(runner.commands) != 1 {
		t.Fatalf("Wrong command count: got %d, want 1", len(runner.commands))
	}
	cmd := runner.commands[0]
	if cmd.Name != "docker" {
		t.Errorf("Wrong runtime: got %q, want docker", cmd.Name)
	}
	line := cmd.String()
	for _, want := range []string{
		"-v /work:/data",
		DefaultImage,
		"--model_type WGS",
		"--ref /data/slice.fa",
		"--reads /data/mapped.bam",
		"--output_vcf /data/calls.vcf.gz",
		"--regions chr4:355036-355222",
		"--num_shards 8",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("Command %q is missing %q", line, want)
		}
	}
}

func TestCall_NoRegion(t *testing.T) {
	runner := &fakeRunner{}
	dv := New(runner, "podman", "google/deepvariant:1.5.0")

	err := dv.Call(context.Background(), CallOptions{
		WorkDir:   "/work",
		Reference: "slice.fa",
		Reads:     "mapped.bam",
		OutputVCF: "calls.vcf.gz",
	})
	if err != nil {
		t.Fatalf("Call() returned error: %v", err)
	}
	cmd := runner.commands[0]
	if cmd.Name != "podman" {
		t.Errorf("Wrong runtime: got %q, want podman", cmd.Name)
	}
	if strings.Contains(cmd.String(), "--regions") {
		t.Errorf("Unexpected region restriction in %q", cmd.String())
	}
}

func TestCall_MissingOptions(t *testing.T) {
	dv := New(&fakeRunner{}, "", "")
	if err := dv.Call(context.Background(), CallOptions{WorkDir: "/work"}); err == nil {
		t.Fatal("Call() succeeded without inputs")
	}
}
