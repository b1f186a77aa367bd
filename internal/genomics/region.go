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

// Package genomics contains definitions related to genomic coordinates.
package genomics

import (
	"fmt"
	"strconv"
	"strings"
)

// Region defines a region of genomic interest.
type Region struct {
	// Contig names the reference sequence the region lies on.
	Contig string
	// Start and End specify the range (in base pairs) on the contig.  If End
	// is zero, the region extends to the last position on the contig.
	Start, End uint32
}

// String renders the region in the canonical query form "contig:start-end"
// understood by indexed variant and alignment stores.
func (region Region) String() string {
	return fmt.Sprintf("%s:%d-%d", region.Contig, region.Start, region.End)
}

// Parse parses a region string of the form "contig:start-end".
func Parse(s string) (Region, error) {
	colon := strings.LastIndex(s, ":")
	if colon < 1 {
		return Region{}, fmt.Errorf("missing contig in region %q", s)
	}

	bounds := strings.SplitN(s[colon+1:], "-", 2)
	if len(bounds) != 2 {
		return Region{}, fmt.Errorf("missing bounds in region %q", s)
	}

	start, err := strconv.ParseUint(bounds[0], 10, 32)
	if err != nil {
		return Region{}, fmt.Errorf("parsing start: %v", err)
	}
	end, err := strconv.ParseUint(bounds[1], 10, 32)
	if err != nil {
		return Region{}, fmt.Errorf("parsing end: %v", err)
	}

	return Region{Contig: s[:colon], Start: uint32(start), End: uint32(end)}, nil
}
