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

package tabix

import (
	"io"
	"testing"

	"github.com/brentp/irelate/parsers"
	"github.com/brentp/vcfgo"

	"github.com/pangenomics/graphvar/internal/genomics"
	"github.com/pangenomics/graphvar/internal/variants"
)

func TestPositionAdapter(t *testing.T) {
	p := position{genomics.Region{Contig: "chr4", Start: 355036, End: 355222}}

	if got, want := p.Chrom(), "chr4"; got != want {
		t.Errorf("Wrong chrom: got %q, want %q", got, want)
	}
	if got, want := p.Start(), uint32(355036); got != want {
		t.Errorf("Wrong start: got %d, want %d", got, want)
	}
	if got, want := p.End(), uint32(355222); got != want {
		t.Errorf("Wrong end: got %d, want %d", got, want)
	}
}

func TestRawVariant(t *testing.T) {
	v := &vcfgo.Variant{
		Chromosome: "chr4",
		Pos:        355041,
		Reference:  "A",
		Alternate:  []string{"G"},
	}

	raw, err := rawVariant(parsers.NewVariant(v, 0, nil))
	if err != nil {
		t.Fatalf("rawVariant() returned error: %v", err)
	}
	if raw != v {
		t.Fatalf("Wrong variant unwrapped: got %v, want %v", raw, v)
	}
}

func TestQuery(t *testing.T) {
	stream, err := Query("testdata/sliced.vcf.gz", genomics.Region{Contig: "chr4", Start: 355036, End: 355222})
	if err != nil {
		t.Fatalf("Query() returned error: %v", err)
	}
	defer stream.Close()

	var records []*variants.Record
	for {
		record, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() returned error: %v", err)
		}
		records = append(records, record)
	}

	if len(records) != 3 {
		t.Fatalf("Wrong record count: got %d, want 3", len(records))
	}
	for i, record := range records {
		if len(record.Genotypes) == 0 {
			t.Fatalf("Record %d has no genotype calls: %v", i, record)
		}
	}
	if records[0].Genotypes[0].HomozygousAlt() {
		t.Errorf("Heterozygous site reported homozygous: %v", records[0])
	}
	if records[1].Start != 355040 || !records[1].Genotypes[0].HomozygousAlt() {
		t.Errorf("Wrong homozygous-alt site: %v", records[1])
	}
	if !records[2].Genotypes[0].Phased {
		t.Errorf("Phase lost in conversion: %v", records[2])
	}
}

func TestQueryThenLocate(t *testing.T) {
	stream, err := Query("testdata/sliced.vcf.gz", genomics.Region{Contig: "chr4", Start: 355036, End: 355222})
	if err != nil {
		t.Fatalf("Query() returned error: %v", err)
	}
	defer stream.Close()

	record, err := variants.FirstHomozygousAlt(stream)
	if err != nil {
		t.Fatalf("FirstHomozygousAlt() returned error: %v", err)
	}
	if record.Start != 355040 {
		t.Fatalf("Wrong site located: got %d, want 355040", record.Start)
	}
}

func TestQuery_MissingIndex(t *testing.T) {
	if _, err := Query("testdata/absent.vcf.gz", genomics.Region{Contig: "chr4"}); err == nil {
		t.Fatal("Query() succeeded on missing file")
	}
}
