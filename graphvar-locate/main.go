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

// This binary translates a whole-genome region into the coordinate system
// of a locally extracted graph slice and reports the first
// homozygous-alternate variant inside it, together with the region string
// to use for subgraph extraction.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/tabix"
	"github.com/pangenomics/graphvar/internal/variants"
)

var (
	vcfPath = flag.String("vcf", "", "tabix-indexed VCF of called variants, in slice coordinates")
	contig  = flag.String("contig", "", "contig name of the local slice")
	offset  = flag.Uint("offset", 0, "whole-genome position at which the slice starts")
	length  = flag.Uint("length", 0, "slice length in base pairs (0 disables the upper bounds warning)")
	start   = flag.Uint("start", 0, "whole-genome start of the region of interest")
	end     = flag.Uint("end", 0, "whole-genome end of the region of interest")
)

func main() {
	flag.Parse()

	if *vcfPath == "" || *contig == "" {
		log.Fatalf("You must specify both -vcf and -contig.")
	}

	slice := genomics.Slice{Contig: *contig, Offset: uint32(*offset), Length: uint32(*length)}
	for _, pos := range []uint{*start, *end} {
		if !slice.Contains(uint32(pos)) {
			// The arithmetic below still applies; the warning just
			// flags that the result is outside the slice.
			log.Printf("Warning: position %d lies outside the slice at offset %d", pos, *offset)
		}
	}

	region := slice.TranslateRegion(uint32(*start), uint32(*end))
	fmt.Printf("region: %s\n", region)

	stream, err := tabix.Query(*vcfPath, region)
	if err != nil {
		log.Fatalf("Failed to query variants: %v", err)
	}
	defer stream.Close()

	record, err := variants.FirstHomozygousAlt(stream)
	if err == variants.ErrNoHomozygousAlt {
		log.Fatalf("No homozygous-alternate variant in %s.", region)
	}
	if err != nil {
		log.Fatalf("Failed to scan variants: %v", err)
	}

	fmt.Printf("site: %s genotype: %s\n", record, record.Genotypes[0])
	fmt.Printf("subgraph: %s\n", genomics.Region{Contig: record.Contig, Start: record.Start, End: record.Start})
}
